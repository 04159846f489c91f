package journey

import (
	"strings"
	"testing"
)

func TestResolveAppliesResourceEffectsByMode(t *testing.T) {
	field := newTestState(t, JourneyField)
	field.Pool.Levels[ResourceCash] = 1000
	event := Event{ID: "windfall", Title: "Windfall", Options: []Option{
		{Label: "Take it", Outcome: "Money changes hands.", Effects: Effects{Budget: 500, Fuel: -20}},
	}}

	messages := field.ResolveEvent(&event, 0)

	if got := field.Pool.Level(ResourceCash); got != 1500 {
		t.Fatalf("field budget effect should hit cash, got %v", got)
	}
	if got := field.Pool.Level(ResourceFuel); got != 380 {
		t.Fatalf("fuel effect should apply, got %v", got)
	}
	if len(messages) == 0 || messages[0] != "Money changes hands." {
		t.Fatalf("expected the outcome line first, got %v", messages)
	}

	desk := newTestState(t, JourneyDesk)
	desk.ResolveEvent(&event, 0)
	if got := desk.Pool.Level(ResourceBudget); got != 100000 {
		t.Fatalf("desk budget is already at max and must clamp, got %v", got)
	}
	if desk.Pool.Has(ResourceFuel) {
		t.Fatalf("desk pool must not grow a fuel entry")
	}
}

func TestResolveGuards(t *testing.T) {
	state := newTestState(t, JourneyField)
	event := Event{ID: "x", Title: "X", Options: []Option{{Label: "ok", Outcome: "fine"}}}

	if messages := state.ResolveEvent(nil, 0); messages != nil {
		t.Fatalf("nil event should be a no-op, got %v", messages)
	}
	if messages := state.ResolveEvent(&event, 5); messages != nil {
		t.Fatalf("out-of-range option should be a no-op, got %v", messages)
	}
	state.setGameOver("done")
	if messages := state.ResolveEvent(&event, 0); messages != nil {
		t.Fatalf("finished journey should not resolve, got %v", messages)
	}
}

func TestResolveTimeUsedAccruesAndClamps(t *testing.T) {
	state := newTestState(t, JourneyField)
	event := Event{ID: "slow", Title: "Slow going", Options: []Option{
		{Label: "Dig", Outcome: "It takes hours.", Effects: Effects{TimeUsedHours: 5}},
	}}

	state.ResolveEvent(&event, 0)
	if got := state.Field.TravelDelayHours; got != 5 {
		t.Fatalf("expected 5h delay, got %v", got)
	}
	state.ResolveEvent(&event, 0)
	if got := state.Field.TravelDelayHours; got != 8 {
		t.Fatalf("delay must clamp at 8h, got %v", got)
	}
}

func TestResolveInjuryRisk(t *testing.T) {
	state := newTestState(t, JourneyField)
	state.SetRandom(&scriptedSource{floats: []float64{0.3}, ints: []int{0, 0}})
	event := Event{ID: "chancy", Title: "Chancy work", Options: []Option{
		{Label: "Risk it", Outcome: "Someone slips.", RiskInjury: 0.5},
	}}

	messages := state.ResolveEvent(&event, 0)

	if !state.Crew[0].hasEffect("broken_arm") {
		t.Fatalf("risk above the moderate band should draw from the moderate pool: %+v", state.Crew[0])
	}
	found := false
	for _, msg := range messages {
		if strings.Contains(msg, "broken arm") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an injury message, got %v", messages)
	}

	// A failed roll injures nobody.
	safe := newTestState(t, JourneyField)
	safe.SetRandom(&scriptedSource{floats: []float64{0.9}})
	safe.ResolveEvent(&event, 0)
	for i := range safe.Crew {
		if len(safe.Crew[i].Effects) != 0 {
			t.Fatalf("failed risk roll should leave the crew untouched: %+v", safe.Crew[i])
		}
	}
}

func TestResolveCrewIllnessHitsDistinctMembers(t *testing.T) {
	state := newTestState(t, JourneyField)
	state.SetRandom(&scriptedSource{ints: []int{0, 0}})
	event := Event{ID: "outbreak", Title: "Outbreak", Options: []Option{
		{Label: "Endure", Outcome: "It spreads.", Effects: Effects{
			Crew: &CrewEffect{Kind: CrewEffectIllness, EffectID: "camp_flu", Count: 2},
		}},
	}}

	state.ResolveEvent(&event, 0)

	sick := 0
	for i := range state.Crew {
		if state.Crew[i].hasEffect("camp_flu") {
			sick++
		}
	}
	if sick != 2 {
		t.Fatalf("expected exactly 2 distinct members sick, got %d", sick)
	}
}

func TestResolveCrewEvacuate(t *testing.T) {
	state := newTestState(t, JourneyField)
	state.Crew[1].Effects = []ActiveEffect{{EffectID: "broken_arm", DaysRemaining: 6}}
	event := Event{ID: "medevac", Title: "Medevac", Options: []Option{
		{Label: "Call it in", Outcome: "The helicopter comes.", Effects: Effects{
			Crew: &CrewEffect{Kind: CrewEffectEvacuate, EffectID: "broken_arm"},
		}},
	}}

	messages := state.ResolveEvent(&event, 0)

	if state.Crew[1].Active {
		t.Fatalf("the afflicted member should be evacuated")
	}
	if state.Crew[1].Dead || state.Crew[1].Quit {
		t.Fatalf("evacuation is neither death nor departure: %+v", state.Crew[1])
	}
	found := false
	for _, msg := range messages {
		if strings.Contains(msg, "evacuated") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an evacuation message, got %v", messages)
	}
}

func TestResolveProgressFieldSyncsBlocks(t *testing.T) {
	state := newTestState(t, JourneyField)
	event := Event{ID: "shortcut", Title: "Shortcut", Options: []Option{
		{Label: "Take it", Outcome: "A logging road nobody mapped.", Effects: Effects{Progress: 50}},
	}}

	state.ResolveEvent(&event, 0)

	if state.Field.DistanceTraveled != 50 {
		t.Fatalf("expected 50 km, got %v", state.Field.DistanceTraveled)
	}
	if state.Field.CurrentBlock != 1 {
		t.Fatalf("block index must follow the distance, got %d", state.Field.CurrentBlock)
	}
}

func TestResolveProgressDeskThreadsAndTruncates(t *testing.T) {
	state := newTestState(t, JourneyDesk)
	state.Desk.Permits = PermitCounts{Backlog: 1}
	event := Event{ID: "blitz", Title: "Paperwork blitz", Options: []Option{
		{Label: "Go", Outcome: "Everything moves.", Effects: Effects{Progress: 50}},
	}}

	messages := state.ResolveEvent(&event, 0)

	// Five slots requested; the single permit can only thread three
	// steps before every source bucket is empty.
	permits := state.Desk.Permits
	if permits.Approved != 1 || permits.total() != 1 {
		t.Fatalf("the lone permit should thread through to approved, got %+v", permits)
	}
	found := false
	for _, msg := range messages {
		if strings.Contains(msg, "3 permit move(s)") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 3 moves reported, got %v", messages)
	}
}

func TestResolveProgressDeskBackward(t *testing.T) {
	state := newTestState(t, JourneyDesk)
	state.Desk.Permits = PermitCounts{InReview: 1, Submitted: 1}
	event := Event{ID: "setback", Title: "Setback", Options: []Option{
		{Label: "Absorb it", Outcome: "Files come back.", Effects: Effects{Progress: -20}},
	}}

	state.ResolveEvent(&event, 0)

	permits := state.Desk.Permits
	if permits.NeedsRevision != 1 || permits.Backlog != 1 {
		t.Fatalf("expected one regression to revision and one to backlog, got %+v", permits)
	}
	if permits.total() != 2 {
		t.Fatalf("pipeline total must be conserved, got %d", permits.total())
	}
}

func TestResolvePermitsApprovedRespectsHeadroom(t *testing.T) {
	state := newTestState(t, JourneyDesk)
	state.Desk.Permits = PermitCounts{InReview: 3, Approved: 9}
	event := Event{ID: "favor", Title: "A favor called in", Options: []Option{
		{Label: "Accept", Outcome: "Stamps fall.", Effects: Effects{PermitsApproved: 3}},
	}}

	state.ResolveEvent(&event, 0)

	permits := state.Desk.Permits
	if permits.Approved != 10 || permits.InReview != 2 {
		t.Fatalf("only one approval of headroom remained, got %+v", permits)
	}
}

func TestResolveCrewWideEffectsSkipInactive(t *testing.T) {
	state := newTestState(t, JourneyField)
	for i := range state.Crew {
		state.Crew[i].Morale = 50
	}
	state.Crew[2].Active = false
	event := Event{ID: "good_news", Title: "Good news", Options: []Option{
		{Label: "Share it", Outcome: "Spirits lift.", Effects: Effects{CrewMorale: 10}},
	}}

	state.ResolveEvent(&event, 0)

	if state.Crew[0].Morale != 60 {
		t.Fatalf("active member should gain morale, got %d", state.Crew[0].Morale)
	}
	if state.Crew[2].Morale != 50 {
		t.Fatalf("inactive member should be untouched, got %d", state.Crew[2].Morale)
	}
}

func TestResolveSchedulesFollowupEvent(t *testing.T) {
	state := newTestState(t, JourneyField)
	event := Event{ID: "omen", Title: "An omen", Options: []Option{
		{Label: "Note it", Outcome: "The sky darkens.",
			SchedulesEvent: &ScheduledRef{EventID: "followup_storm", DelayDays: 2}},
	}}

	state.ResolveEvent(&event, 0)

	if len(state.ScheduledEvents) != 1 || state.ScheduledEvents[0].TriggerDay != 3 {
		t.Fatalf("expected a follow-up queued for day 3, got %+v", state.ScheduledEvents)
	}

	// Not due yet.
	if got := state.CheckScheduledEvents(); got != nil {
		t.Fatalf("the follow-up must not fire early, got %+v", got)
	}
	if len(state.ScheduledEvents) != 1 {
		t.Fatalf("an unfired record stays queued")
	}

	state.Day = 3
	got := state.CheckScheduledEvents()
	if got == nil || got.ID != "followup_storm" {
		t.Fatalf("expected the storm on day 3, got %+v", got)
	}
	if len(state.ScheduledEvents) != 0 {
		t.Fatalf("a fired record must be dequeued, got %+v", state.ScheduledEvents)
	}
}

func TestCheckScheduledEventsDropsUnknownID(t *testing.T) {
	state := newTestState(t, JourneyField)
	state.ScheduledEvents = []ScheduledEvent{{EventID: "ghost", TriggerDay: 1}}

	if got := state.CheckScheduledEvents(); got != nil {
		t.Fatalf("an unknown id resolves to no event, got %+v", got)
	}
	if len(state.ScheduledEvents) != 0 {
		t.Fatalf("the stale record should still be consumed, got %+v", state.ScheduledEvents)
	}
}

func TestResolveGameOverOption(t *testing.T) {
	state := newTestState(t, JourneyField)
	event := Event{ID: "fatal", Title: "A bad call", Options: []Option{
		{Label: "Push on", Outcome: "It goes wrong.", GameOverReason: "The crossing fails. The journey ends here."},
	}}

	state.ResolveEvent(&event, 0)

	if !state.IsGameOver {
		t.Fatalf("the option should end the journey")
	}
	if !strings.Contains(state.GameOverReason, "crossing fails") {
		t.Fatalf("unexpected reason %q", state.GameOverReason)
	}
}
