package journey

import "fmt"

// DeskAction is one hour-budgeted move in a desk-mode day.
type DeskAction string

const (
	DeskAdvancePermit DeskAction = "advance_permit"
	DeskMeeting       DeskAction = "stakeholder_meeting"
	DeskCrisis        DeskAction = "handle_crisis"
	DeskBoostMorale   DeskAction = "boost_morale"
	DeskEndDay        DeskAction = "end_day"
)

// DeskActionParams carries the optional inputs an action needs.
type DeskActionParams struct {
	Stakeholder string
}

const (
	permitHours   = 3.0
	meetingHours  = 2.0
	boostHours    = 2.0
	permitEnergy  = 6.0
	meetingEnergy = 4.0
	boostEnergy   = 3.0
	boostCost     = 2000.0

	reviewApprovalChance  = 0.7
	fastTrackMood         = 70
	fastTrackChance       = 0.5
	crisisGoodChance      = 0.65
	deadlineApprovalRatio = 0.8
)

// ExecuteDeskDay applies one action. When the action exhausts the
// remaining hours, or is an explicit end-of-day, the end-of-day
// bookkeeping runs as part of the same call.
func (s *State) ExecuteDeskDay(action DeskAction, params DeskActionParams) []string {
	if s.Finished() || s.Desk == nil {
		return nil
	}

	desk := s.Desk
	var messages []string

	switch action {
	case DeskAdvancePermit:
		messages = append(messages, s.advancePermit()...)
		s.spendHours(permitHours)
		s.Pool.Apply(ResourceEnergy, -permitEnergy)
	case DeskMeeting:
		messages = append(messages, s.holdMeeting(params.Stakeholder)...)
		s.spendHours(meetingHours)
		s.Pool.Apply(ResourceEnergy, -meetingEnergy)
	case DeskCrisis:
		messages = append(messages, s.handleCrisis()...)
	case DeskBoostMorale:
		messages = append(messages, s.boostMorale()...)
		s.spendHours(boostHours)
		s.Pool.Apply(ResourceEnergy, -boostEnergy)
	case DeskEndDay:
		desk.HoursRemaining = 0
	default:
		return nil
	}

	if desk.HoursRemaining <= 0 {
		messages = append(messages, s.endDeskDay()...)
	}

	return messages
}

func (s *State) spendHours(hours float64) {
	desk := s.Desk
	desk.HoursRemaining -= hours
	if desk.HoursRemaining < 0 {
		desk.OvertimeHours += -desk.HoursRemaining
		desk.HoursRemaining = 0
	}
}

// advancePermit moves the furthest-along permit one pipeline stage.
// Completing a review splits stochastically, majority toward approval.
// Every transition decrements exactly one bucket and increments
// exactly one other.
func (s *State) advancePermit() []string {
	permits := &s.Desk.Permits
	switch {
	case permits.InReview > 0:
		permits.InReview--
		if s.random().Float64() < reviewApprovalChance {
			permits.Approved++
			return []string{"A permit clears final review. Approved."}
		}
		permits.NeedsRevision++
		return []string{"The reviewer kicks a permit back for revisions."}
	case permits.InReferral > 0:
		permits.InReferral--
		permits.InReview++
		return []string{"Referral responses are in; a permit moves to review."}
	case permits.Submitted > 0:
		permits.Submitted--
		permits.InReferral++
		return []string{"A submitted permit goes out for agency referral."}
	case permits.NeedsRevision > 0:
		permits.NeedsRevision--
		permits.Submitted++
		return []string{"Revisions finished; the permit is resubmitted."}
	case permits.Backlog > 0:
		permits.Backlog--
		permits.Submitted++
		return []string{"A backlog application is drafted and submitted."}
	default:
		return []string{"Nothing in the pipeline to push today."}
	}
}

// holdMeeting improves one stakeholder's mood. If the mood was already
// high, there is a chance they walk a permit straight through review.
func (s *State) holdMeeting(stakeholder string) []string {
	desk := s.Desk
	if stakeholder == "" || !s.hasStakeholder(stakeholder) {
		stakeholder = s.coolestStakeholder()
	}
	if stakeholder == "" {
		return []string{"There is nobody to meet with."}
	}

	desk.MeetingsToday++
	before := desk.Stakeholders[stakeholder]
	desk.Stakeholders[stakeholder] = clamp(before+10+s.random().IntN(6), 0, 100)
	messages := []string{fmt.Sprintf("Productive meeting with the %s.", stakeholder)}

	if before >= fastTrackMood && desk.Permits.InReview > 0 && s.random().Float64() < fastTrackChance {
		desk.Permits.InReview--
		desk.Permits.Approved++
		messages = append(messages, fmt.Sprintf("The %s pulls strings: a permit in review is approved on the spot.", stakeholder))
	}
	return messages
}

func (s *State) hasStakeholder(name string) bool {
	_, ok := s.Desk.Stakeholders[name]
	return ok
}

func (s *State) coolestStakeholder() string {
	name, mood := "", 101
	for candidate, m := range s.Desk.Stakeholders {
		if name == "" || m < mood || (m == mood && candidate < name) {
			name, mood = candidate, m
		}
	}
	return name
}

// handleCrisis eats the rest of the day. Most crises resolve in the
// campaign's favor; the rest cost standing and money.
func (s *State) handleCrisis() []string {
	desk := s.Desk
	desk.CrisisToday = true
	desk.HoursRemaining = 0

	if s.random().Float64() < crisisGoodChance {
		s.Pool.Apply(ResourcePolitical, 10)
		return []string{"You defuse the crisis in person. The ministry takes notice."}
	}
	s.Pool.Apply(ResourcePolitical, -8)
	s.Pool.Apply(ResourceBudget, -3000)
	return []string{"The crisis blows up anyway. Lawyers get involved; it costs you."}
}

// boostMorale buys the office a good afternoon.
func (s *State) boostMorale() []string {
	s.Pool.Apply(ResourceBudget, -boostCost)
	for i := range s.Crew {
		if s.Crew[i].Active {
			s.Crew[i].Morale = clamp(s.Crew[i].Morale+8, 0, maxMorale)
		}
	}
	return []string{"You spring for a proper team lunch. Spirits lift."}
}

// endDeskDay applies consumption and regen, advances the day, resets
// the hour budget, then evaluates the deadline and the independent
// resource-exhaustion failures.
func (s *State) endDeskDay() []string {
	desk := s.Desk
	var messages []string

	deltas := deskConsumption(desk.OvertimeHours, desk.MeetingsToday, desk.CrisisToday)
	messages = append(messages, s.Pool.ApplyConsumption(deltas)...)
	s.Pool.ApplyRegen()

	cond := DailyConditions{}
	for i := range s.Crew {
		messages = append(messages, ProcessDailyUpdate(&s.Crew[i], cond, s.Content, s.random())...)
	}

	s.appendLog("desk_day", fmt.Sprintf("approved=%d/%d overtime=%.1fh meetings=%d crisis=%v",
		desk.Permits.Approved, desk.TargetApprovals, desk.OvertimeHours, desk.MeetingsToday, desk.CrisisToday))

	s.Day++
	desk.HoursRemaining = desk.HoursPerDay
	desk.OvertimeHours = 0
	desk.MeetingsToday = 0
	desk.CrisisToday = false

	if desk.DeadlineDays-s.Day <= 0 && !s.Finished() {
		ratio := 0.0
		if desk.TargetApprovals > 0 {
			ratio = float64(desk.Permits.Approved) / float64(desk.TargetApprovals)
		}
		if ratio >= deadlineApprovalRatio {
			message := fmt.Sprintf("Deadline day: %d of %d permits approved. The season is saved.",
				desk.Permits.Approved, desk.TargetApprovals)
			s.setComplete(message)
			messages = append(messages, message)
		} else {
			reason := fmt.Sprintf("Deadline missed: only %d of %d permits approved.",
				desk.Permits.Approved, desk.TargetApprovals)
			s.setGameOver(reason)
			messages = append(messages, reason)
		}
	}

	if !s.Finished() {
		switch {
		case s.Pool.Level(ResourceBudget) <= 0:
			reason := "The campaign budget is spent. Head office pulls the plug."
			s.setGameOver(reason)
			messages = append(messages, reason)
		case s.Pool.Level(ResourcePolitical) <= 0:
			reason := "Your political capital is gone. Nobody returns your calls."
			s.setGameOver(reason)
			messages = append(messages, reason)
		}
	}

	return messages
}
