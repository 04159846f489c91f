package journey

import "fmt"

// DeskPhase tags where a desk campaign sits relative to its deadline;
// desk events declare which phases they can fire in.
type DeskPhase string

const (
	PhaseEarly DeskPhase = "early"
	PhaseMid   DeskPhase = "mid"
	PhaseLate  DeskPhase = "late"
)

// CrewEffectKind selects the crew sub-effect an option dispatches.
type CrewEffectKind string

const (
	CrewEffectInjury   CrewEffectKind = "injury"
	CrewEffectIllness  CrewEffectKind = "illness"
	CrewEffectEvacuate CrewEffectKind = "evacuate"
)

// CrewEffect targets one or more members: a single random injury, a
// multi-target illness, or the evacuation of an afflicted member.
type CrewEffect struct {
	Kind     CrewEffectKind `yaml:"kind"`
	EffectID string         `yaml:"effect_id,omitempty"`
	Count    int            `yaml:"count,omitempty"`
}

// Effects is the tagged optional-field record an option applies.
// Absent (zero) fields are no-ops; dispatch is exhaustive over the
// named fields rather than key-sniffing.
type Effects struct {
	Budget          float64     `yaml:"budget,omitempty"` // cash in field mode, budget in desk mode
	Fuel            float64     `yaml:"fuel,omitempty"`
	Food            float64     `yaml:"food,omitempty"`
	Equipment       float64     `yaml:"equipment,omitempty"`
	FirstAid        float64     `yaml:"first_aid,omitempty"`
	Political       float64     `yaml:"political,omitempty"`
	Energy          float64     `yaml:"energy,omitempty"`
	CrewMorale      int         `yaml:"crew_morale,omitempty"`
	CrewHealth      int         `yaml:"crew_health,omitempty"`
	Progress        float64     `yaml:"progress,omitempty"`
	PermitsApproved int         `yaml:"permits_approved,omitempty"`
	TimeUsedHours   float64     `yaml:"time_used_hours,omitempty"`
	Crew            *CrewEffect `yaml:"crew,omitempty"`
}

// ScheduledRef queues a follow-up event a fixed number of days out.
type ScheduledRef struct {
	EventID   string `yaml:"event_id"`
	DelayDays int    `yaml:"delay_days"`
}

// Option is one player response to an event.
type Option struct {
	Label          string        `yaml:"label"`
	Outcome        string        `yaml:"outcome"`
	Effects        Effects       `yaml:"effects,omitempty"`
	RiskInjury     float64       `yaml:"risk_injury,omitempty"`
	RequiresRole   Role          `yaml:"requires_role,omitempty"`
	GameOverReason string        `yaml:"game_over_reason,omitempty"`
	SchedulesEvent *ScheduledRef `yaml:"schedules_event,omitempty"`
}

// Event is an immutable template; resolution only ever mutates the
// journey state, never the template.
type Event struct {
	ID          string        `yaml:"id"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Journey     JourneyType   `yaml:"journey"`
	Weight      float64       `yaml:"weight"`
	Terrain     []TerrainType `yaml:"terrain,omitempty"`
	Weather     []WeatherType `yaml:"weather,omitempty"`
	Hazards     []string      `yaml:"hazards,omitempty"`
	Phases      []DeskPhase   `yaml:"phases,omitempty"`
	Options     []Option      `yaml:"options"`

	// ScheduledOnly events never enter the random draw; they fire only
	// when a resolution queues them.
	ScheduledOnly bool `yaml:"scheduled_only,omitempty"`

	// Reporter is presentation-only decoration added at selection
	// time for field events; resolution ignores it.
	Reporter string `yaml:"-"`
}

const (
	baseFieldEventChance = 0.35
	baseDeskEventChance  = 0.30
	fieldTemptationRate  = 0.04
	deskTemptationRate   = 0.03
	maxEventChance       = 0.95
)

// CheckForEvent draws at most one event for the current tick, or nil
// when the day passes quietly. A small independent roll can instead
// inject a synthesized temptation offer.
func (s *State) CheckForEvent() *Event {
	if s.Finished() || s.Content == nil {
		return nil
	}
	src := s.random()

	candidates := s.applicableEvents()
	chance := s.eventChance()
	if len(candidates) > 0 && src.Float64() < chance {
		event := weightedPick(candidates, src)
		if s.Type == JourneyField {
			s.decorateReporter(&event)
		}
		return &event
	}

	rate := fieldTemptationRate
	if s.Type == JourneyDesk {
		rate = deskTemptationRate
	}
	if src.Float64() < rate {
		return s.synthesizeTemptation()
	}

	return nil
}

func (s *State) eventChance() float64 {
	base := baseFieldEventChance
	modifier := 1.0
	if s.Type == JourneyField && s.Field != nil {
		switch s.Field.Pace {
		case PaceRest:
			modifier *= 0.6
		case PaceCampWork:
			modifier *= 0.8
		case PaceHard:
			modifier *= 1.25
		case PacePunishing:
			modifier *= 1.6
		}
		switch s.currentTerrain() {
		case TerrainMainline:
			modifier *= 0.8
		case TerrainSkid:
			modifier *= 1.15
		case TerrainMuskeg:
			modifier *= 1.3
		case TerrainAlpine:
			modifier *= 1.4
		}
		switch s.Field.Weather.Type {
		case WeatherClear:
			modifier *= 0.9
		case WeatherHeavyRain:
			modifier *= 1.2
		case WeatherSnow:
			modifier *= 1.25
		case WeatherBlizzard:
			modifier *= 1.5
		}
	}
	if s.Type == JourneyDesk && s.Desk != nil {
		base = baseDeskEventChance
		if s.Desk.DeadlineDays > 0 {
			pressure := clampFloat(float64(s.Day)/float64(s.Desk.DeadlineDays), 0, 1)
			modifier *= 1.0 + 0.6*pressure
		}
		morale := AverageMorale(s.Crew)
		modifier *= clampFloat(1.0+(60.0-morale)/100.0, 0.7, 1.6)
	}
	return clampFloat(base*modifier, 0, maxEventChance)
}

// applicableEvents narrows the content table to events that match the
// journey type and the current terrain, weather, hazards, or phase.
func (s *State) applicableEvents() []Event {
	var out []Event
	for _, ev := range s.Content.Events {
		if ev.Journey != s.Type || len(ev.Options) == 0 || ev.ScheduledOnly {
			continue
		}
		if s.Type == JourneyField && !s.fieldEventApplies(ev) {
			continue
		}
		if s.Type == JourneyDesk && !s.deskEventApplies(ev) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func (s *State) fieldEventApplies(ev Event) bool {
	if len(ev.Terrain) > 0 && !containsTerrain(ev.Terrain, s.currentTerrain()) {
		return false
	}
	if len(ev.Weather) > 0 && !containsWeather(ev.Weather, s.Field.Weather.Type) {
		return false
	}
	if len(ev.Hazards) > 0 && !s.currentBlockHasAnyHazard(ev.Hazards) {
		return false
	}
	return true
}

func (s *State) deskEventApplies(ev Event) bool {
	if len(ev.Phases) == 0 {
		return true
	}
	phase := s.deskPhase()
	for _, p := range ev.Phases {
		if p == phase {
			return true
		}
	}
	return false
}

func (s *State) deskPhase() DeskPhase {
	if s.Desk == nil || s.Desk.DeadlineDays <= 0 {
		return PhaseEarly
	}
	ratio := float64(s.Day) / float64(s.Desk.DeadlineDays)
	switch {
	case ratio < 1.0/3.0:
		return PhaseEarly
	case ratio < 2.0/3.0:
		return PhaseMid
	default:
		return PhaseLate
	}
}

func (s *State) currentBlockHasAnyHazard(hazards []string) bool {
	if s.Field == nil || len(s.Field.Blocks) == 0 {
		return false
	}
	block := s.Field.Blocks[clamp(s.Field.CurrentBlock, 0, len(s.Field.Blocks)-1)]
	for _, want := range hazards {
		for _, have := range block.Hazards {
			if want == have {
				return true
			}
		}
	}
	return false
}

func weightedPick(events []Event, src Source) Event {
	total := 0.0
	for _, ev := range events {
		total += eventWeight(ev)
	}
	roll := src.Float64() * total
	for _, ev := range events {
		roll -= eventWeight(ev)
		if roll < 0 {
			return ev
		}
	}
	return events[len(events)-1]
}

func eventWeight(ev Event) float64 {
	if ev.Weight <= 0 {
		return 1.0
	}
	return ev.Weight
}

// decorateReporter attaches "who noticed" flavor to a field event.
// Purely presentational; resolution semantics are unaffected.
func (s *State) decorateReporter(ev *Event) {
	member := s.randomActiveMember()
	if member == nil {
		return
	}
	task := map[Role]string{
		RoleFaller:   "walking the felling boundary",
		RoleMedic:    "restocking the first-aid kits",
		RoleSurveyor: "checking the traverse",
		RoleOperator: "greasing the skidder",
		RolePlanner:  "marking up the site plan",
		RoleLiaison:  "radioing the office",
		RoleAnalyst:  "tallying the load slips",
	}[member.Role]
	if task == "" {
		task = "on watch"
	}
	ev.Reporter = fmt.Sprintf("%s, %s, reports:", member.Name, task)
}

func containsTerrain(items []TerrainType, want TerrainType) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}

func containsWeather(items []WeatherType, want WeatherType) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
