package journey

import (
	"fmt"
	"strings"
)

// Temptation payout bands are tuned content, not contract: field
// offers are envelope-of-cash sized, desk offers are line-item sized.
const (
	fieldPayoutMin = 800
	fieldPayoutMax = 5000
	deskPayoutMin  = 5000
	deskPayoutMax  = 25000
)

// synthesizeTemptation builds a one-off ethically loaded offer from
// the template pool: payout and offering actor are rolled now, not
// pre-authored. Templates gated on a role the crew no longer has are
// filtered out. Returns nil when no template fits.
func (s *State) synthesizeTemptation() *Event {
	var pool []TemptationTemplate
	for _, t := range s.Content.Temptations {
		if t.Journey != s.Type {
			continue
		}
		if t.RequiresRole != "" && !s.hasActiveRole(t.RequiresRole) {
			continue
		}
		pool = append(pool, t)
	}
	if len(pool) == 0 {
		return nil
	}

	src := s.random()
	template := pool[src.IntN(len(pool))]

	min, max := fieldPayoutMin, fieldPayoutMax
	if s.Type == JourneyDesk {
		min, max = deskPayoutMin, deskPayoutMax
	}
	payout := float64(min + src.IntN(max-min+1))

	actor := "a stranger"
	if member := s.randomActiveMember(); member != nil {
		actor = member.Name
	}
	description := strings.ReplaceAll(template.Description, "{actor}", actor)

	accept := Option{
		Label:   fmt.Sprintf("Take the deal ($%.0f)", payout),
		Outcome: "You shake on it and try not to think about it.",
		Effects: Effects{
			Budget:     payout,
			CrewMorale: -template.MoraleCost,
			Political:  -template.CapitalCost,
		},
	}
	refuse := Option{
		Label:   "Turn it down",
		Outcome: "You pass. Word gets around that you play it straight.",
		Effects: Effects{CrewMorale: 2},
	}

	event := Event{
		ID:          "temptation_" + template.ID,
		Title:       template.Title,
		Description: description,
		Journey:     s.Type,
		Options:     []Option{accept, refuse},
	}
	if template.RequiresRole != "" {
		event.Options[0].RequiresRole = template.RequiresRole
	}
	return &event
}

func (s *State) hasActiveRole(role Role) bool {
	for i := range s.Crew {
		if s.Crew[i].Active && s.Crew[i].Role == role {
			return true
		}
	}
	return false
}
