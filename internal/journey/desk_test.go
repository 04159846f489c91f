package journey

import (
	"strings"
	"testing"
)

func TestAdvancePermitFurthestFirstConservesTotal(t *testing.T) {
	state := newTestState(t, JourneyDesk)
	state.SetRandom(&scriptedSource{floats: []float64{0.5}})
	before := state.Desk.Permits.total()

	// Only the backlog is populated, so the pipeline fills front to
	// back over successive pushes.
	state.advancePermit()
	if state.Desk.Permits.Submitted != 1 {
		t.Fatalf("first push should draft from backlog, got %+v", state.Desk.Permits)
	}
	state.advancePermit()
	if state.Desk.Permits.InReferral != 1 {
		t.Fatalf("second push should send to referral, got %+v", state.Desk.Permits)
	}
	state.advancePermit()
	if state.Desk.Permits.InReview != 1 {
		t.Fatalf("third push should reach review, got %+v", state.Desk.Permits)
	}
	state.advancePermit() // 0.5 < 0.7 approval chance
	if state.Desk.Permits.Approved != 1 {
		t.Fatalf("review with a favorable roll should approve, got %+v", state.Desk.Permits)
	}

	if got := state.Desk.Permits.total(); got != before {
		t.Fatalf("pipeline total must be conserved: before=%d after=%d", before, got)
	}
}

func TestAdvancePermitReviewKickback(t *testing.T) {
	state := newTestState(t, JourneyDesk)
	state.Desk.Permits = PermitCounts{InReview: 1}
	state.SetRandom(&scriptedSource{floats: []float64{0.9}})

	messages := state.advancePermit()

	if state.Desk.Permits.NeedsRevision != 1 || state.Desk.Permits.Approved != 0 {
		t.Fatalf("unfavorable review should kick back, got %+v", state.Desk.Permits)
	}
	if len(messages) != 1 || !strings.Contains(messages[0], "revisions") {
		t.Fatalf("expected a kickback message, got %v", messages)
	}
}

func TestAdvancePermitEmptyPipeline(t *testing.T) {
	state := newTestState(t, JourneyDesk)
	state.Desk.Permits = PermitCounts{Approved: 3}

	messages := state.advancePermit()
	if state.Desk.Permits.Approved != 3 {
		t.Fatalf("nothing to move, got %+v", state.Desk.Permits)
	}
	if len(messages) != 1 || !strings.Contains(messages[0], "Nothing in the pipeline") {
		t.Fatalf("expected the empty-pipeline message, got %v", messages)
	}
}

func TestHoldMeetingFastTracks(t *testing.T) {
	state := newTestState(t, JourneyDesk)
	state.Desk.Stakeholders["mill_owner"] = 75
	state.Desk.Permits = PermitCounts{InReview: 1}
	state.SetRandom(&scriptedSource{ints: []int{3}, floats: []float64{0.3}})

	messages := state.holdMeeting("mill_owner")

	if got := state.Desk.Stakeholders["mill_owner"]; got != 88 {
		t.Fatalf("expected mood 75+10+3=88, got %d", got)
	}
	if state.Desk.Permits.Approved != 1 || state.Desk.Permits.InReview != 0 {
		t.Fatalf("warm stakeholder should fast-track the review, got %+v", state.Desk.Permits)
	}
	if len(messages) != 2 || !strings.Contains(messages[1], "pulls strings") {
		t.Fatalf("expected the fast-track message, got %v", messages)
	}
}

func TestHoldMeetingDefaultsToCoolestStakeholder(t *testing.T) {
	state := newTestState(t, JourneyDesk)
	state.Desk.Stakeholders = map[string]int{"band_council": 30, "mill_owner": 30, "ministry_clerk": 80}
	state.SetRandom(&scriptedSource{ints: []int{0}})

	state.holdMeeting("")

	// Tied lowest mood breaks lexicographically.
	if got := state.Desk.Stakeholders["band_council"]; got != 40 {
		t.Fatalf("expected the band_council meeting (30+10), got %d", got)
	}
	if got := state.Desk.Stakeholders["mill_owner"]; got != 30 {
		t.Fatalf("mill_owner should be untouched, got %d", got)
	}
}

func TestHandleCrisisOutcomes(t *testing.T) {
	good := newTestState(t, JourneyDesk)
	good.Pool.Levels[ResourcePolitical] = 50
	good.SetRandom(&scriptedSource{floats: []float64{0.2}})
	good.handleCrisis()
	if got := good.Pool.Level(ResourcePolitical); got != 60 {
		t.Fatalf("a defused crisis should gain standing, got %v", got)
	}
	if good.Desk.HoursRemaining != 0 || !good.Desk.CrisisToday {
		t.Fatalf("a crisis eats the rest of the day")
	}

	bad := newTestState(t, JourneyDesk)
	bad.Pool.Levels[ResourcePolitical] = 50
	bad.SetRandom(&scriptedSource{floats: []float64{0.9}})
	bad.handleCrisis()
	if got := bad.Pool.Level(ResourcePolitical); got != 42 {
		t.Fatalf("a blown crisis should cost standing, got %v", got)
	}
	if got := bad.Pool.Level(ResourceBudget); got != 97000 {
		t.Fatalf("a blown crisis should cost budget, got %v", got)
	}
}

func TestBoostMorale(t *testing.T) {
	state := newTestState(t, JourneyDesk)
	before := make([]int, len(state.Crew))
	for i := range state.Crew {
		state.Crew[i].Morale = 50
		before[i] = 50
	}
	state.Crew[1].Active = false

	state.boostMorale()

	if got := state.Pool.Level(ResourceBudget); got != 98000 {
		t.Fatalf("boost should cost 2000, got budget %v", got)
	}
	if state.Crew[0].Morale != 58 {
		t.Fatalf("active member should gain 8 morale, got %d", state.Crew[0].Morale)
	}
	if state.Crew[1].Morale != 50 {
		t.Fatalf("inactive member should be untouched, got %d", state.Crew[1].Morale)
	}
}

func TestEndDayResetsCountersAndOvertime(t *testing.T) {
	state := newTestState(t, JourneyDesk)
	state.SetRandom(&scriptedSource{floats: []float64{0.5, 0.5, 0.5}, ints: []int{0, 0, 0}})

	// Three 3h pushes overflow the 8h budget into 1h of overtime and
	// trigger end-of-day inside the last call.
	state.ExecuteDeskDay(DeskAdvancePermit, DeskActionParams{})
	state.ExecuteDeskDay(DeskAdvancePermit, DeskActionParams{})
	state.ExecuteDeskDay(DeskAdvancePermit, DeskActionParams{})

	if state.Day != 2 {
		t.Fatalf("overflowing the hour budget should end the day, got day %d", state.Day)
	}
	desk := state.Desk
	if desk.HoursRemaining != desk.HoursPerDay {
		t.Fatalf("hours should reset to %v, got %v", desk.HoursPerDay, desk.HoursRemaining)
	}
	if desk.OvertimeHours != 0 || desk.MeetingsToday != 0 || desk.CrisisToday {
		t.Fatalf("day counters should reset, got %+v", desk)
	}
}

func TestDeadlineMet(t *testing.T) {
	state := newTestState(t, JourneyDesk)
	state.Day = 19
	state.Desk.Permits = PermitCounts{Approved: 9, Backlog: 5}

	messages := state.ExecuteDeskDay(DeskEndDay, DeskActionParams{})

	if !state.IsComplete {
		t.Fatalf("9 of 10 approved at the deadline should complete the campaign")
	}
	if state.IsGameOver {
		t.Fatalf("a met deadline is not a game over")
	}
	found := false
	for _, msg := range messages {
		if strings.Contains(msg, "season is saved") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the deadline-met message, got %v", messages)
	}
}

func TestDeadlineMissed(t *testing.T) {
	state := newTestState(t, JourneyDesk)
	state.Day = 19
	state.Desk.Permits = PermitCounts{Approved: 5, Backlog: 9}

	state.ExecuteDeskDay(DeskEndDay, DeskActionParams{})

	if !state.IsGameOver {
		t.Fatalf("5 of 10 approved at the deadline should end the campaign")
	}
	if !strings.Contains(state.GameOverReason, "Deadline missed") {
		t.Fatalf("unexpected reason %q", state.GameOverReason)
	}
}

func TestBudgetExhaustionEndsCampaign(t *testing.T) {
	state := newTestState(t, JourneyDesk)
	state.Pool.Levels[ResourceBudget] = 100

	state.ExecuteDeskDay(DeskEndDay, DeskActionParams{})

	if !state.IsGameOver {
		t.Fatalf("a spent budget should end the campaign")
	}
	if !strings.Contains(state.GameOverReason, "budget") {
		t.Fatalf("unexpected reason %q", state.GameOverReason)
	}
}

func TestDeskDayNoOpWhenFinished(t *testing.T) {
	state := newTestState(t, JourneyDesk)
	state.setComplete("done")
	if messages := state.ExecuteDeskDay(DeskAdvancePermit, DeskActionParams{}); messages != nil {
		t.Fatalf("finished campaigns must not tick, got %v", messages)
	}
}
