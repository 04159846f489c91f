package journey

import (
	"fmt"
	"math"
)

const moderateInjuryBand = 0.2

// ResolveEvent applies the chosen option's consequences to the journey
// state. It selects nothing and never fails: absent effect fields are
// no-ops, every numeric write is clamped, and invalid targets degrade
// to nothing happening.
func (s *State) ResolveEvent(event *Event, optionIndex int) []string {
	if event == nil || s.Finished() {
		return nil
	}
	if optionIndex < 0 || optionIndex >= len(event.Options) {
		return nil
	}
	option := event.Options[optionIndex]
	src := s.random()

	var messages []string
	if option.Outcome != "" {
		messages = append(messages, option.Outcome)
	}

	s.applyResourceEffects(option.Effects)

	if option.Effects.Crew != nil {
		messages = append(messages, s.applyCrewEffect(*option.Effects.Crew)...)
	}

	if option.RiskInjury > 0 && src.Float64() < option.RiskInjury {
		messages = append(messages, s.rollInjury(option.RiskInjury)...)
	}

	if s.Type == JourneyField && s.Field != nil && option.Effects.TimeUsedHours > 0 {
		s.Field.TravelDelayHours = clampFloat(
			s.Field.TravelDelayHours+option.Effects.TimeUsedHours, 0, maxTravelDelayHours)
	}

	if s.Type == JourneyDesk && s.Desk != nil && option.Effects.PermitsApproved > 0 {
		moved := s.approveFromReview(option.Effects.PermitsApproved)
		if moved > 0 {
			messages = append(messages, fmt.Sprintf("%d permit(s) fast-tracked to approval.", moved))
		}
	}

	if option.Effects.Progress != 0 {
		messages = append(messages, s.applyProgressEffect(option.Effects.Progress)...)
	}

	s.applyCrewWideEffects(option.Effects)

	if option.SchedulesEvent != nil {
		s.ScheduledEvents = append(s.ScheduledEvents, ScheduledEvent{
			EventID:    option.SchedulesEvent.EventID,
			TriggerDay: s.Day + option.SchedulesEvent.DelayDays,
		})
	}

	if option.GameOverReason != "" {
		s.setGameOver(option.GameOverReason)
		messages = append(messages, option.GameOverReason)
	}

	s.appendLog("event", fmt.Sprintf("%s (%s): %s", event.Title, event.ID, option.Label))
	return messages
}

// applyResourceEffects maps the option's numeric fields onto the
// journey-type-appropriate pools. Budget means cash on a field journey
// and budget on a desk campaign; kinds the pool does not declare are
// silently skipped by the clamped writes.
func (s *State) applyResourceEffects(effects Effects) {
	if effects.Budget != 0 {
		if s.Type == JourneyField {
			s.Pool.Apply(ResourceCash, effects.Budget)
		} else {
			s.Pool.Apply(ResourceBudget, effects.Budget)
		}
	}
	s.Pool.Apply(ResourceFuel, effects.Fuel)
	s.Pool.Apply(ResourceFood, effects.Food)
	s.Pool.Apply(ResourceEquipment, effects.Equipment)
	s.Pool.Apply(ResourceFirstAid, effects.FirstAid)
	s.Pool.Apply(ResourcePolitical, effects.Political)
	s.Pool.Apply(ResourceEnergy, effects.Energy)
}

func (s *State) applyCrewEffect(effect CrewEffect) []string {
	switch effect.Kind {
	case CrewEffectInjury:
		member := s.randomActiveMember()
		if member == nil {
			return nil
		}
		if msg := ApplyStatusEffect(member, effect.EffectID, s.Content); msg != "" {
			return []string{msg}
		}
	case CrewEffectIllness:
		count := effect.Count
		if count <= 0 {
			count = 1
		}
		return s.afflictDistinct(count, effect.EffectID)
	case CrewEffectEvacuate:
		for i := range s.Crew {
			member := &s.Crew[i]
			if member.Active && member.hasEffect(effect.EffectID) {
				member.Active = false
				return []string{fmt.Sprintf("%s is evacuated to town for treatment.", member.Name)}
			}
		}
	}
	return nil
}

// afflictDistinct applies the effect to up to count distinct active
// members; fewer available targets means fewer afflicted, not an
// error.
func (s *State) afflictDistinct(count int, effectID string) []string {
	var active []*CrewMember
	for i := range s.Crew {
		if s.Crew[i].Active {
			active = append(active, &s.Crew[i])
		}
	}
	src := s.random()
	var messages []string
	for i := 0; i < count && len(active) > 0; i++ {
		pick := src.IntN(len(active))
		if msg := ApplyStatusEffect(active[pick], effectID, s.Content); msg != "" {
			messages = append(messages, msg)
		}
		active = append(active[:pick], active[pick+1:]...)
	}
	return messages
}

// rollInjury applies a severity-banded injury to one random active
// member after a successful risk draw.
func (s *State) rollInjury(risk float64) []string {
	member := s.randomActiveMember()
	if member == nil {
		return nil
	}
	pool := s.Content.MinorInjuries
	if risk > moderateInjuryBand {
		pool = s.Content.ModerateInjuries
	}
	if len(pool) == 0 {
		return nil
	}
	effectID := pool[s.random().IntN(len(pool))]
	if msg := ApplyStatusEffect(member, effectID, s.Content); msg != "" {
		return []string{msg}
	}
	return nil
}

// approveFromReview moves up to n permits from in-review to approved,
// capped at the pipeline target.
func (s *State) approveFromReview(n int) int {
	permits := &s.Desk.Permits
	headroom := s.Desk.TargetApprovals - permits.Approved
	moved := n
	if moved > permits.InReview {
		moved = permits.InReview
	}
	if moved > headroom {
		moved = headroom
	}
	if moved < 0 {
		moved = 0
	}
	permits.InReview -= moved
	permits.Approved += moved
	return moved
}

// applyProgressEffect is mode-dispatched: field treats progress as raw
// distance (and re-syncs the block index); desk converts the magnitude
// into pipeline-slot moves, each bounded by its source bucket.
// Requested movement beyond what is available truncates silently.
func (s *State) applyProgressEffect(progress float64) []string {
	switch s.Type {
	case JourneyField:
		if s.Field == nil {
			return nil
		}
		s.Field.DistanceTraveled = clampFloat(s.Field.DistanceTraveled+progress, 0, s.Field.TotalDistance)
		s.syncBlockIndex()
		if progress > 0 {
			return []string{fmt.Sprintf("The route opens up: %.1f km gained.", progress)}
		}
		return []string{fmt.Sprintf("Backtracking costs the crew %.1f km.", -progress)}
	case JourneyDesk:
		if s.Desk == nil {
			return nil
		}
		slots := int(math.Round(math.Abs(progress) / 10.0))
		moved := 0
		permits := &s.Desk.Permits
		for i := 0; i < slots; i++ {
			ok := false
			if progress > 0 {
				ok = permits.threadForward()
			} else {
				ok = permits.threadBackward()
			}
			if !ok {
				break
			}
			moved++
		}
		if moved == 0 {
			return nil
		}
		if progress > 0 {
			return []string{fmt.Sprintf("The pipeline lurches forward: %d permit move(s).", moved)}
		}
		return []string{fmt.Sprintf("The pipeline slides backward: %d permit move(s).", moved)}
	}
	return nil
}

// threadForward moves one permit one step along
// backlog→submitted→inReview→approved, furthest-along first. Reports
// false when every source bucket is empty.
func (p *PermitCounts) threadForward() bool {
	switch {
	case p.InReview > 0:
		p.InReview--
		p.Approved++
	case p.Submitted > 0:
		p.Submitted--
		p.InReview++
	case p.Backlog > 0:
		p.Backlog--
		p.Submitted++
	default:
		return false
	}
	return true
}

// threadBackward regresses one permit: inReview→needsRevision,
// approved→needsRevision, submitted→backlog.
func (p *PermitCounts) threadBackward() bool {
	switch {
	case p.InReview > 0:
		p.InReview--
		p.NeedsRevision++
	case p.Approved > 0:
		p.Approved--
		p.NeedsRevision++
	case p.Submitted > 0:
		p.Submitted--
		p.Backlog++
	default:
		return false
	}
	return true
}

func (s *State) applyCrewWideEffects(effects Effects) {
	if effects.CrewMorale == 0 && effects.CrewHealth == 0 {
		return
	}
	for i := range s.Crew {
		member := &s.Crew[i]
		if !member.Active {
			continue
		}
		member.Morale = clamp(member.Morale+effects.CrewMorale, 0, maxMorale)
		member.Health = clamp(member.Health+effects.CrewHealth, 0, maxHealth)
	}
}

// CheckScheduledEvents pops and returns the first queued event whose
// trigger day has arrived, nil otherwise. A queued id missing from the
// content table is dropped: no event today is the ordinary case.
func (s *State) CheckScheduledEvents() *Event {
	if s.Finished() {
		return nil
	}
	for i, scheduled := range s.ScheduledEvents {
		if scheduled.TriggerDay > s.Day {
			continue
		}
		s.ScheduledEvents = append(s.ScheduledEvents[:i], s.ScheduledEvents[i+1:]...)
		event, ok := s.Content.EventByID(scheduled.EventID)
		if !ok {
			return nil
		}
		if s.Type == JourneyField {
			s.decorateReporter(&event)
		}
		return &event
	}
	return nil
}
