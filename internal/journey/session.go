package journey

import "fmt"

// PromptKind tags what decision the session is suspended on.
type PromptKind int

const (
	PromptNone PromptKind = iota
	PromptPace
	PromptDeskAction
	PromptEventOption
)

// Prompt is the fixed menu of legal choices the engine computes before
// suspending. No state mutation happens between the prompt being
// produced and SubmitChoice being called.
type Prompt struct {
	Kind    PromptKind
	Title   string
	Options []string
	Event   *Event
}

// Session drives one journey through the suspend-for-input cycle:
// compute options, suspend, resume deterministically on SubmitChoice.
// Each session owns its State exclusively; concurrent sessions must
// each construct their own.
type Session struct {
	State *State

	pendingEvent *Event
	eventChoices []int
	fieldPaces   []Pace
	deskActions  []DeskAction
}

func NewSession(state *State) *Session {
	return &Session{
		State:       state,
		fieldPaces:  []Pace{PaceRest, PaceCampWork, PaceSteady, PaceHard, PacePunishing},
		deskActions: []DeskAction{DeskAdvancePermit, DeskMeeting, DeskCrisis, DeskBoostMorale, DeskEndDay},
	}
}

// NextPrompt computes the current legal menu. Finished journeys get a
// PromptNone; the UI should stop the loop there.
func (s *Session) NextPrompt() Prompt {
	state := s.State
	if state == nil || state.Finished() {
		return Prompt{Kind: PromptNone}
	}

	if s.pendingEvent != nil {
		event := s.pendingEvent
		s.eventChoices = s.eventChoices[:0]
		var labels []string
		for i, option := range event.Options {
			if option.RequiresRole != "" && !state.hasActiveRole(option.RequiresRole) {
				continue
			}
			s.eventChoices = append(s.eventChoices, i)
			labels = append(labels, option.Label)
		}
		title := event.Title
		if event.Reporter != "" {
			title = event.Reporter + " " + event.Title
		}
		return Prompt{Kind: PromptEventOption, Title: title, Options: labels, Event: event}
	}

	switch state.Type {
	case JourneyField:
		labels := make([]string, len(s.fieldPaces))
		for i, pace := range s.fieldPaces {
			labels[i] = paceLabel(pace)
		}
		return Prompt{
			Kind:    PromptPace,
			Title:   fmt.Sprintf("Day %d: set the pace", state.Day),
			Options: labels,
		}
	case JourneyDesk:
		labels := make([]string, len(s.deskActions))
		for i, action := range s.deskActions {
			labels[i] = deskActionLabel(action)
		}
		return Prompt{
			Kind: PromptDeskAction,
			Title: fmt.Sprintf("Day %d: %.0fh left at the desk",
				state.Day, state.Desk.HoursRemaining),
			Options: labels,
		}
	}
	return Prompt{Kind: PromptNone}
}

// SubmitChoice resumes the session with the player's pick and runs the
// tick work to completion. An out-of-range index is a no-op.
func (s *Session) SubmitChoice(index int) []string {
	state := s.State
	if state == nil || state.Finished() {
		return nil
	}

	if s.pendingEvent != nil {
		if index < 0 || index >= len(s.eventChoices) {
			return nil
		}
		event := s.pendingEvent
		s.pendingEvent = nil
		return state.ResolveEvent(event, s.eventChoices[index])
	}

	switch state.Type {
	case JourneyField:
		if index < 0 || index >= len(s.fieldPaces) {
			return nil
		}
		messages := state.ExecuteFieldDay(s.fieldPaces[index])
		messages = append(messages, s.runEventCheck()...)
		return messages
	case JourneyDesk:
		if index < 0 || index >= len(s.deskActions) {
			return nil
		}
		dayBefore := state.Day
		messages := state.ExecuteDeskDay(s.deskActions[index], DeskActionParams{})
		if state.Day != dayBefore {
			messages = append(messages, s.runEventCheck()...)
		}
		return messages
	}
	return nil
}

// runEventCheck fires at most one event per tick: scheduled events
// take precedence over the random draw. The event suspends the
// session until its option is chosen.
func (s *Session) runEventCheck() []string {
	state := s.State
	if state.Finished() {
		return nil
	}
	event := state.CheckScheduledEvents()
	if event == nil {
		event = state.CheckForEvent()
	}
	if event == nil {
		return nil
	}
	s.pendingEvent = event
	line := event.Title
	if event.Description != "" {
		line = fmt.Sprintf("%s: %s", event.Title, event.Description)
	}
	if event.Reporter != "" {
		line = event.Reporter + " " + line
	}
	return []string{line}
}

func paceLabel(pace Pace) string {
	switch pace {
	case PaceRest:
		return "Rest day (recover, burn supplies)"
	case PaceCampWork:
		return "Camp work (maintain gear, no travel)"
	case PaceSteady:
		return "Steady travel"
	case PaceHard:
		return "Hard push (faster, harder on everyone)"
	case PacePunishing:
		return "Punishing pace (fastest, risky)"
	default:
		return string(pace)
	}
}

func deskActionLabel(action DeskAction) string {
	switch action {
	case DeskAdvancePermit:
		return "Push a permit through the pipeline (3h)"
	case DeskMeeting:
		return "Meet a stakeholder (2h)"
	case DeskCrisis:
		return "Handle the crisis in person (rest of day)"
	case DeskBoostMorale:
		return "Boost office morale ($2,000, 2h)"
	case DeskEndDay:
		return "Call it a day"
	default:
		return string(action)
	}
}
