package journey

import "fmt"

// Role tags a crew member with the job they were hired for. Roles gate
// some event options (RequiresRole) and drive flavor tasks.
type Role string

const (
	RoleFaller   Role = "faller"
	RoleMedic    Role = "medic"
	RoleSurveyor Role = "surveyor"
	RoleOperator Role = "operator"
	RolePlanner  Role = "planner"
	RoleLiaison  Role = "liaison"
	RoleAnalyst  Role = "analyst"
)

const (
	maxHealth = 100
	maxMorale = 100

	// Passive recovery applied when no draining effect is active.
	dailyHealthRecovery = 3

	// Morale at or below this triggers a departure roll.
	departureMoraleThreshold = 10
	departureChance          = 0.25
)

// ActiveEffect is one timed affliction on a crew member. At most one
// instance of a given effect id is active at a time; reapplication
// refreshes DaysRemaining instead of stacking.
type ActiveEffect struct {
	EffectID      string `json:"effect_id" yaml:"effect_id"`
	DaysRemaining int    `json:"days_remaining" yaml:"days_remaining"`
}

type CrewMember struct {
	ID      int            `json:"id" yaml:"id"`
	Name    string         `json:"name" yaml:"name"`
	Role    Role           `json:"role" yaml:"role"`
	Health  int            `json:"health" yaml:"health"`
	Morale  int            `json:"morale" yaml:"morale"`
	Traits  []string       `json:"traits,omitempty" yaml:"traits,omitempty"`
	Effects []ActiveEffect `json:"effects,omitempty" yaml:"effects,omitempty"`
	Active  bool           `json:"active" yaml:"active"`
	Dead    bool           `json:"dead" yaml:"dead"`
	Quit    bool           `json:"quit" yaml:"quit"`
}

// NewCrew builds a starting roster for the journey type. Field crews
// skew toward fallers and operators, desk crews toward planners and
// analysts. Names and traits are drawn from the content tables.
func NewCrew(journeyType JourneyType, size int, content *ContentBundle, src Source) []CrewMember {
	if size <= 0 {
		return nil
	}

	fieldRoles := []Role{RoleFaller, RoleOperator, RoleSurveyor, RoleMedic, RoleFaller}
	deskRoles := []Role{RolePlanner, RoleAnalyst, RoleLiaison, RolePlanner, RoleAnalyst}

	roles := fieldRoles
	if journeyType == JourneyDesk {
		roles = deskRoles
	}

	crew := make([]CrewMember, size)
	for i := 0; i < size; i++ {
		name := fmt.Sprintf("Crew %d", i+1)
		if len(content.CrewNames) > 0 {
			name = content.CrewNames[src.IntN(len(content.CrewNames))]
		}

		member := CrewMember{
			ID:     i + 1,
			Name:   name,
			Role:   roles[i%len(roles)],
			Health: maxHealth,
			Morale: 70 + src.IntN(26),
			Active: true,
		}

		if len(content.Traits) > 0 && src.Float64() < 0.4 {
			member.Traits = append(member.Traits, content.randomTraitID(src))
		}

		crew[i] = member
	}

	return crew
}

// ApplyStatusEffect attaches the effect to the member, or refreshes the
// remaining duration when the member already carries it. Inactive
// members are left untouched.
func ApplyStatusEffect(member *CrewMember, effectID string, content *ContentBundle) string {
	if member == nil || !member.Active {
		return ""
	}
	def, ok := content.Effects[effectID]
	if !ok {
		return ""
	}

	for i := range member.Effects {
		if member.Effects[i].EffectID == effectID {
			member.Effects[i].DaysRemaining = def.DurationDays
			return fmt.Sprintf("%s's %s has worsened.", member.Name, def.Name)
		}
	}

	member.Effects = append(member.Effects, ActiveEffect{
		EffectID:      effectID,
		DaysRemaining: def.DurationDays,
	})
	return fmt.Sprintf("%s is now suffering from %s.", member.Name, def.Name)
}

// RemoveStatusEffect deletes the entry and returns a flavor message;
// it is a no-op when the member does not carry the effect.
func RemoveStatusEffect(member *CrewMember, effectID string, content *ContentBundle, src Source) string {
	if member == nil {
		return ""
	}
	for i := range member.Effects {
		if member.Effects[i].EffectID != effectID {
			continue
		}
		member.Effects = append(member.Effects[:i], member.Effects[i+1:]...)

		name := effectID
		if def, ok := content.Effects[effectID]; ok {
			name = def.Name
		}
		lines := []string{
			"%s has recovered from %s.",
			"%s has shaken off %s.",
			"%s is over the worst of %s.",
		}
		return fmt.Sprintf(lines[src.IntN(len(lines))], member.Name, name)
	}
	return ""
}

func (m *CrewMember) hasEffect(effectID string) bool {
	for _, e := range m.Effects {
		if e.EffectID == effectID {
			return true
		}
	}
	return false
}

// WorkCapacity reports how much of a full day's work the member can
// deliver, in [0, 1]. Inactive members contribute nothing.
func WorkCapacity(member *CrewMember, content *ContentBundle) float64 {
	if member == nil || !member.Active {
		return 0
	}

	capacity := 1.0
	if member.Health < 50 {
		capacity *= float64(member.Health) / 50.0
	}
	for _, e := range member.Effects {
		if def, ok := content.Effects[e.EffectID]; ok && def.CapacityMult > 0 {
			capacity *= def.CapacityMult
		}
	}
	for _, t := range member.Traits {
		if def, ok := content.Traits[t]; ok && def.CapacityMult > 0 {
			capacity *= def.CapacityMult
		}
	}

	return clampFloat(capacity, 0, 1)
}

// ActiveCrewCount counts members still on the journey.
func ActiveCrewCount(crew []CrewMember) int {
	count := 0
	for i := range crew {
		if crew[i].Active {
			count++
		}
	}
	return count
}

// AverageMorale averages morale over active members only, 0 if none.
func AverageMorale(crew []CrewMember) float64 {
	total, count := 0, 0
	for i := range crew {
		if crew[i].Active {
			total += crew[i].Morale
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}

func clamp(number, min, max int) int {
	if number < min {
		return min
	}
	if number > max {
		return max
	}
	return number
}

func clampFloat(number, min, max float64) float64 {
	if number < min {
		return min
	}
	if number > max {
		return max
	}
	return number
}
