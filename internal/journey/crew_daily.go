package journey

import "fmt"

// DailyConditions captures the tick-level flags that feed the crew
// update: derived from the chosen pace, the day's weather, and the
// current food level.
type DailyConditions struct {
	ForcedRest    bool
	PunishingPace bool
	LowFood       bool
	ColdExposure  bool
}

// ProcessDailyUpdate runs one member's daily upkeep: status-effect
// drain and countdown, passive recovery, condition deltas, then the
// two terminal checks (death before departure). Inactive members are
// skipped entirely.
func ProcessDailyUpdate(member *CrewMember, cond DailyConditions, content *ContentBundle, src Source) []string {
	if member == nil || !member.Active {
		return nil
	}

	var messages []string
	draining := false
	remaining := member.Effects[:0]
	var expired []string
	for _, effect := range member.Effects {
		def, ok := content.Effects[effect.EffectID]
		if ok {
			member.Health -= def.HealthDrain
			member.Morale += def.MoraleDelta
			if def.HealthDrain > 0 {
				draining = true
			}
		}
		effect.DaysRemaining--
		if effect.DaysRemaining <= 0 {
			expired = append(expired, effect.EffectID)
			continue
		}
		remaining = append(remaining, effect)
	}
	member.Effects = remaining
	for _, id := range expired {
		name := id
		if def, ok := content.Effects[id]; ok {
			name = def.Name
		}
		messages = append(messages, fmt.Sprintf("%s has recovered from %s.", member.Name, name))
	}

	if !draining && member.Health < maxHealth {
		member.Health += dailyHealthRecovery
	}

	if cond.ForcedRest {
		member.Morale += 5
		member.Health += 2
	}
	if cond.PunishingPace {
		member.Morale -= 4
	}
	if cond.LowFood {
		member.Morale -= 6
		member.Health -= 4
	}
	if cond.ColdExposure {
		member.Health -= 3
		member.Morale -= 2
	}

	member.Health = clamp(member.Health, 0, maxHealth)
	member.Morale = clamp(member.Morale, 0, maxMorale)

	if member.Health <= 0 {
		member.Dead = true
		member.Active = false
		messages = append(messages, fmt.Sprintf("%s has died.", member.Name))
		return messages
	}

	if member.Morale <= departureMoraleThreshold && src.Float64() < departureChance {
		member.Quit = true
		member.Active = false
		messages = append(messages, fmt.Sprintf("%s has had enough and walks off the job.", member.Name))
	}

	return messages
}
