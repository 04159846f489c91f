package journey

// Shared fixtures for the engine tests: a scripted random source and a
// small content bundle.

type scriptedSource struct {
	floats []float64
	ints   []int
	fi, ii int
}

// Float64 pops the next scripted value; once the script runs out it
// returns 0.99 so no further probabilistic branch fires.
func (s *scriptedSource) Float64() float64 {
	if s.fi < len(s.floats) {
		v := s.floats[s.fi]
		s.fi++
		return v
	}
	return 0.99
}

func (s *scriptedSource) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	if s.ii < len(s.ints) {
		v := s.ints[s.ii] % n
		s.ii++
		return v
	}
	return 0
}

func testContent() *ContentBundle {
	return &ContentBundle{
		Effects: map[string]StatusEffectDef{
			"sprained_ankle": {ID: "sprained_ankle", Name: "a sprained ankle", HealthDrain: 2, MoraleDelta: -1, CapacityMult: 0.7, DurationDays: 3},
			"broken_arm":     {ID: "broken_arm", Name: "a broken arm", HealthDrain: 4, MoraleDelta: -3, CapacityMult: 0.4, DurationDays: 8},
			"camp_flu":       {ID: "camp_flu", Name: "camp flu", HealthDrain: 3, MoraleDelta: -2, CapacityMult: 0.6, DurationDays: 4},
		},
		Traits: map[string]TraitDef{
			"workhorse": {ID: "workhorse", Name: "Workhorse", CapacityMult: 1.1},
			"grumbler":  {ID: "grumbler", Name: "Grumbler", CapacityMult: 0.95},
		},
		FieldBlocks: []Block{
			{ID: "b1", Name: "Kilometer 0 staging", DistanceKm: 40, Terrain: TerrainMainline},
			{ID: "b2", Name: "Moose Creek crossing", DistanceKm: 40, Terrain: TerrainMuskeg, Hazards: []string{"washout"}},
			{ID: "b3", Name: "Ridge block 7-Alpha", DistanceKm: 20, Terrain: TerrainAlpine},
		},
		MinorInjuries:    []string{"sprained_ankle"},
		ModerateInjuries: []string{"broken_arm"},
		CrewNames:        []string{"Marta", "Deke", "Sawyer", "Lena", "Olaf", "Priya"},
		Events: []Event{
			{
				ID:          "washout_culvert",
				Title:       "Washed-out culvert",
				Description: "The road ahead is gone.",
				Journey:     JourneyField,
				Weight:      2,
				Hazards:     []string{"washout"},
				Options: []Option{
					{Label: "Rebuild it", Outcome: "Half a day with shovels.", Effects: Effects{TimeUsedHours: 4}},
					{Label: "Detour", Outcome: "The long way around.", Effects: Effects{Fuel: -20, TimeUsedHours: 2}},
				},
			},
			{
				ID:      "ministry_audit",
				Title:   "Surprise ministry audit",
				Journey: JourneyDesk,
				Phases:  []DeskPhase{PhaseMid, PhaseLate},
				Options: []Option{
					{Label: "Cooperate fully", Outcome: "Tedious but clean.", Effects: Effects{Energy: -10}},
					{Label: "Stonewall", Outcome: "They will remember this.", Effects: Effects{Political: -15}},
				},
			},
			{
				ID:      "followup_storm",
				Title:   "The storm arrives",
				Journey: JourneyField,
				Options: []Option{
					{Label: "Hunker down", Outcome: "You wait it out.", Effects: Effects{TimeUsedHours: 6}},
				},
			},
			{
				ID:            "tow_bill",
				Title:         "The tow bill arrives",
				Journey:       JourneyField,
				ScheduledOnly: true,
				Options: []Option{
					{Label: "Pay it", Outcome: "Ouch.", Effects: Effects{Budget: -500}},
				},
			},
		},
		Temptations: []TemptationTemplate{
			{
				ID:          "side_scale",
				Title:       "Off-the-books scaling job",
				Description: "{actor} knows a buyer who doesn't ask questions.",
				Journey:     JourneyField,
				MoraleCost:  5,
			},
			{
				ID:          "expedite_fee",
				Title:       "An unofficial expediting fee",
				Description: "{actor} hints the file could move faster, for a consideration.",
				Journey:     JourneyDesk,
				MoraleCost:  4,
				CapitalCost: 5,
			},
		},
	}
}

func newTestState(t interface{ Fatalf(string, ...any) }, journeyType JourneyType) *State {
	config := Config{Type: journeyType, CrewSize: 4, Seed: 42}
	if journeyType == JourneyDesk {
		config.DeadlineDays = 20
		config.TargetApprovals = 10
		config.StartingBacklog = 14
	}
	state, err := NewState(config, testContent())
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	return state
}
