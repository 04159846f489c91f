// Package ui is the terminal front end: a menu, the journey screen,
// and the end-of-journey summary. All simulation decisions live in
// internal/journey; this package only renders prompts and forwards
// choices.
package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/boreal-interactive/timbertrek/internal/content"
	"github.com/boreal-interactive/timbertrek/internal/journey"
	"github.com/boreal-interactive/timbertrek/internal/update"
)

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string
	NoUpdate  bool
	Seed      int64
	CrewSize  int
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	return &App{cfg: cfg}
}

func (a *App) Run() error {
	bundle, err := content.Load()
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	m := newMenuModel(a.cfg, bundle)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// --- Styles (retro green) ---
var (
	green       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	brightGreen = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimGreen    = lipgloss.NewStyle().Foreground(lipgloss.Color("22"))
	amber       = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	border      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

type screen int

const (
	screenMenu screen = iota
	screenRun
	screenDone
)

type menuItem int

const (
	itemStartField menuItem = iota
	itemStartDesk
	itemCheckUpdate
	itemQuit

	menuItemCount = 4
)

type menuModel struct {
	cfg     AppConfig
	bundle  *journey.ContentBundle
	screen  screen
	idx     int
	session *journey.Session
	prompt  journey.Prompt

	input       textinput.Model
	runMessages []string

	status string
	busy   bool
}

func newMenuModel(cfg AppConfig, bundle *journey.ContentBundle) menuModel {
	input := textinput.New()
	input.Placeholder = "type a choice, or its number"
	input.CharLimit = 80
	return menuModel{cfg: cfg, bundle: bundle, input: input}
}

func (m menuModel) Init() tea.Cmd {
	// Update checks stay opt-in via the menu.
	return nil
}

type updateResultMsg struct {
	status string
	err    error
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenRun:
			return m.updateRun(msg)
		case screenDone:
			return m.updateDone(msg)
		}
	case updateResultMsg:
		m.busy = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Update check failed: %v", msg.err)
			return m, nil
		}
		m.status = msg.status
		return m, nil
	}
	return m, nil
}

func (m menuModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		m.idx = (m.idx + menuItemCount - 1) % menuItemCount
		return m, nil
	case "down", "j":
		m.idx = (m.idx + 1) % menuItemCount
		return m, nil
	case "enter":
		switch menuItem(m.idx) {
		case itemStartField:
			return m.startJourney(journey.JourneyField)
		case itemStartDesk:
			return m.startJourney(journey.JourneyDesk)
		case itemCheckUpdate:
			if m.cfg.NoUpdate {
				m.status = "Update checks disabled (--no-update)."
				return m, nil
			}
			m.busy = true
			m.status = "Checking for updates..."
			return m, checkUpdateCmd(m.cfg.Version)
		case itemQuit:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m menuModel) startJourney(journeyType journey.JourneyType) (tea.Model, tea.Cmd) {
	crewSize := m.cfg.CrewSize
	if crewSize == 0 {
		crewSize = 5
		if journeyType == journey.JourneyDesk {
			crewSize = 3
		}
	}
	state, err := journey.NewState(journey.Config{
		Type:     journeyType,
		CrewSize: crewSize,
		Seed:     m.cfg.Seed,
	}, m.bundle)
	if err != nil {
		m.status = fmt.Sprintf("Could not start: %v", err)
		return m, nil
	}
	m.session = journey.NewSession(state)
	m.prompt = m.session.NextPrompt()
	m.runMessages = nil
	m.status = ""
	m.screen = screenRun
	m.input.SetValue("")
	m.input.Focus()
	return m, textinput.Blink
}

func (m menuModel) View() string {
	switch m.screen {
	case screenRun:
		return m.viewRun()
	case screenDone:
		return m.viewDone()
	default:
		return m.viewMenu()
	}
}

func (m menuModel) viewMenu() string {
	title := brightGreen.Render("TIMBERTREK")
	ver := dimGreen.Render(fmt.Sprintf("v%s  (%s)  %s", m.cfg.Version, m.cfg.Commit, m.cfg.BuildDate))

	items := []string{
		"Field journey (cruise the back blocks)",
		"Desk campaign (beat the permit deadline)",
		"Check for updates",
		"Quit",
	}

	out := title + "\n" + ver + "\n"
	out += border.Render("----------------------------------------") + "\n\n"
	for i, item := range items {
		cursor := "  "
		line := green.Render(item)
		if i == m.idx {
			cursor = "> "
			line = brightGreen.Render(item)
		}
		out += cursor + line + "\n"
	}
	out += "\n" + border.Render("----------------------------------------") + "\n"
	out += dimGreen.Render("up/down to move, Enter to select, q to quit") + "\n"
	if m.status != "" {
		out += "\n" + green.Render(m.status) + "\n"
	}
	return out
}

func checkUpdateCmd(currentVersion string) tea.Cmd {
	return func() tea.Msg {
		// Tiny delay so the UI visibly switches to busy state.
		time.Sleep(150 * time.Millisecond)

		res, err := update.Apply(currentVersion)
		if err != nil {
			return updateResultMsg{err: err}
		}
		return updateResultMsg{status: res}
	}
}
