package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/boreal-interactive/timbertrek/internal/journey"
	"github.com/boreal-interactive/timbertrek/internal/parser"
)

const historyLines = 12

func (m menuModel) updateRun(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.screen = screenMenu
		m.status = "Journey paused. Enter resumes where you left off."
		return m, nil
	case "enter":
		raw := m.input.Value()
		m.input.SetValue("")
		return m.submitRunInput(raw)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitRunInput routes one line of input: meta commands first, then
// the prompt's option list through the fuzzy matcher.
func (m menuModel) submitRunInput(raw string) (tea.Model, tea.Cmd) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	switch trimmed {
	case "":
		return m, nil
	case "help", "?":
		m.status = "Pick an option by number or name. Also: status, menu, quit."
		return m, nil
	case "status":
		m.status = m.statusLine()
		return m, nil
	case "menu":
		m.screen = screenMenu
		m.status = "Journey paused. Enter resumes where you left off."
		return m, nil
	case "quit", "exit":
		return m, tea.Quit
	}

	result := parser.MatchOption(raw, m.prompt.Options)
	if result.Best == nil {
		m.status = fmt.Sprintf("Didn't catch that. Try a number 1-%d, or 'help'.", len(m.prompt.Options))
		return m, nil
	}
	if len(result.Ambiguous) > 0 {
		m.status = fmt.Sprintf("Ambiguous: did you mean %q?", result.Best.Label)
		return m, nil
	}

	messages := m.session.SubmitChoice(result.Best.Index)
	m.appendMessages(messages)
	m.status = ""

	m.prompt = m.session.NextPrompt()
	if m.prompt.Kind == journey.PromptNone {
		m.screen = screenDone
	}
	return m, nil
}

func (m *menuModel) appendMessages(messages []string) {
	day := m.session.State.Day
	for _, message := range messages {
		m.runMessages = append(m.runMessages, fmt.Sprintf("[Day %d] %s", day, message))
	}
}

func (m menuModel) statusLine() string {
	state := m.session.State
	summary := state.Summarize()
	parts := []string{
		fmt.Sprintf("Day %d", summary.Day),
		fmt.Sprintf("crew %d", summary.ActiveCrew),
		fmt.Sprintf("morale %.0f", summary.AverageMorale),
		fmt.Sprintf("progress %.0f%%", summary.Progress*100),
	}
	switch state.Type {
	case journey.JourneyField:
		parts = append(parts,
			fmt.Sprintf("fuel %.0f", summary.Resources[journey.ResourceFuel]),
			fmt.Sprintf("food %.0f", summary.Resources[journey.ResourceFood]),
			fmt.Sprintf("gear %.0f%%", summary.Resources[journey.ResourceEquipment]))
	case journey.JourneyDesk:
		parts = append(parts,
			fmt.Sprintf("budget $%.0f", summary.Resources[journey.ResourceBudget]),
			fmt.Sprintf("capital %.0f", summary.Resources[journey.ResourcePolitical]),
			fmt.Sprintf("energy %.0f", summary.Resources[journey.ResourceEnergy]))
	}
	return strings.Join(parts, " | ")
}

// bodyText is the run screen without chrome; split out so tests can
// assert on content.
func (m menuModel) bodyText() string {
	var b strings.Builder

	b.WriteString("Message History\n")
	start := 0
	if len(m.runMessages) > historyLines {
		start = len(m.runMessages) - historyLines
	}
	for _, line := range m.runMessages[start:] {
		b.WriteString(line + "\n")
	}
	if len(m.runMessages) == 0 {
		b.WriteString("(nothing yet)\n")
	}

	b.WriteString("\n" + m.prompt.Title + "\n")
	if m.prompt.Kind == journey.PromptEventOption && m.prompt.Event != nil && m.prompt.Event.Description != "" {
		b.WriteString(m.prompt.Event.Description + "\n")
	}
	for i, option := range m.prompt.Options {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, option))
	}
	return b.String()
}

func (m menuModel) viewRun() string {
	out := brightGreen.Render("TIMBERTREK") + "  " + dimGreen.Render(m.statusLine()) + "\n"
	out += border.Render("----------------------------------------") + "\n"

	body := m.bodyText()
	lines := strings.SplitN(body, "\n", 2)
	out += amber.Render(lines[0]) + "\n"
	if len(lines) > 1 {
		out += green.Render(lines[1])
	}

	out += "\n" + m.input.View() + "\n"
	out += dimGreen.Render("number or name to choose; status, help, menu, quit") + "\n"
	if m.status != "" {
		out += amber.Render(m.status) + "\n"
	}
	return out
}

func (m menuModel) updateDone(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "enter", "esc":
		m.screen = screenMenu
		m.session = nil
		m.status = ""
		return m, nil
	}
	return m, nil
}

func (m menuModel) viewDone() string {
	state := m.session.State
	summary := state.Summarize()

	headline := "JOURNEY COMPLETE"
	detail := "The crew made it through."
	if summary.IsGameOver {
		headline = "JOURNEY OVER"
		detail = summary.GameOverReason
	}

	out := brightGreen.Render(headline) + "\n"
	out += border.Render("----------------------------------------") + "\n"
	out += green.Render(detail) + "\n\n"
	out += green.Render(fmt.Sprintf("Days on the job: %d", summary.Day)) + "\n"
	out += green.Render(fmt.Sprintf("Crew still standing: %d", summary.ActiveCrew)) + "\n"
	out += green.Render(fmt.Sprintf("Progress: %.0f%%", summary.Progress*100)) + "\n"

	start := 0
	if len(m.runMessages) > 5 {
		start = len(m.runMessages) - 5
	}
	if len(m.runMessages) > 0 {
		out += "\n" + dimGreen.Render("Last entries:") + "\n"
		for _, line := range m.runMessages[start:] {
			out += dimGreen.Render(line) + "\n"
		}
	}

	out += "\n" + dimGreen.Render("Enter for the menu, q to quit") + "\n"
	return out
}
