package journey

import (
	"fmt"
)

type JourneyType string

const (
	// JourneyField is a multi-day cruise into the operating area:
	// spatial progress along a chain of harvest blocks.
	JourneyField JourneyType = "field"
	// JourneyDesk is a multi-day permitting campaign: pipeline
	// progress against a filing deadline.
	JourneyDesk JourneyType = "desk"
)

// Pace is the field-mode speed/risk profile chosen each day. Rest and
// camp work move zero distance but are still full simulation ticks.
type Pace string

const (
	PaceRest      Pace = "rest"
	PaceCampWork  Pace = "camp_work"
	PaceSteady    Pace = "steady"
	PaceHard      Pace = "hard"
	PacePunishing Pace = "punishing"
)

func (p Pace) moves() bool {
	return p == PaceSteady || p == PaceHard || p == PacePunishing
}

func paceMultiplier(p Pace) float64 {
	switch p {
	case PaceSteady:
		return 1.0
	case PaceHard:
		return 1.3
	case PacePunishing:
		return 1.6
	default:
		return 0
	}
}

// Config describes one journey setup. Zero Seed means "pick one".
type Config struct {
	Type     JourneyType
	CrewSize int
	Seed     int64

	// Desk-mode tuning; ignored for field journeys.
	DeadlineDays    int
	TargetApprovals int
	StartingBacklog int
}

var (
	ErrUnknownJourneyType = fmt.Errorf("unknown journey type")
	ErrBadCrewSize        = fmt.Errorf("crew size must be between 1 and 8")
)

func (c Config) Validate() error {
	switch c.Type {
	case JourneyField, JourneyDesk:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownJourneyType, c.Type)
	}
	if c.CrewSize < 1 || c.CrewSize > 8 {
		return fmt.Errorf("%w, got %d", ErrBadCrewSize, c.CrewSize)
	}
	return nil
}

// FieldProgress is the spatial half of the journey record.
type FieldProgress struct {
	Blocks           []Block      `json:"blocks"`
	DistanceTraveled float64      `json:"distance_traveled"`
	TotalDistance    float64      `json:"total_distance"`
	CurrentBlock     int          `json:"current_block"`
	Pace             Pace         `json:"pace"`
	Weather          WeatherState `json:"weather"`
	TravelDelayHours float64      `json:"travel_delay_hours"`
	MilestonesFired  []int        `json:"milestones_fired,omitempty"`
}

// PermitCounts are the disjoint pipeline buckets. Their sum is
// conserved except for effects that explicitly add or remove permits.
type PermitCounts struct {
	Backlog       int `json:"backlog"`
	Submitted     int `json:"submitted"`
	InReferral    int `json:"in_referral"`
	InReview      int `json:"in_review"`
	NeedsRevision int `json:"needs_revision"`
	Approved      int `json:"approved"`
	Rejected      int `json:"rejected"`
}

func (p PermitCounts) total() int {
	return p.Backlog + p.Submitted + p.InReferral + p.InReview + p.NeedsRevision + p.Approved + p.Rejected
}

// DeskProgress is the pipeline half of the journey record.
type DeskProgress struct {
	Permits         PermitCounts   `json:"permits"`
	TargetApprovals int            `json:"target_approvals"`
	DeadlineDays    int            `json:"deadline_days"`
	HoursRemaining  float64        `json:"hours_remaining"`
	HoursPerDay     float64        `json:"hours_per_day"`
	OvertimeHours   float64        `json:"overtime_hours"`
	MeetingsToday   int            `json:"meetings_today"`
	CrisisToday     bool           `json:"crisis_today"`
	Stakeholders    map[string]int `json:"stakeholders"`
}

// LogEntry is one structured line in the chronological journey log.
type LogEntry struct {
	Day  int    `json:"day"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// ScheduledEvent is a delayed event insertion queued by a resolution.
type ScheduledEvent struct {
	EventID    string `json:"event_id"`
	TriggerDay int    `json:"trigger_day"`
}

// State is the root aggregate for one journey session. It owns the
// crew and the resource pool exclusively; the tick drivers and the
// resolution engine are the only writers, in strict sequence.
type State struct {
	Config Config       `json:"config"`
	Type   JourneyType  `json:"type"`
	Day    int          `json:"day"`
	Crew   []CrewMember `json:"crew"`
	Pool   ResourcePool `json:"pool"`

	Field *FieldProgress `json:"field,omitempty"`
	Desk  *DeskProgress  `json:"desk,omitempty"`

	IsComplete     bool   `json:"is_complete"`
	IsGameOver     bool   `json:"is_game_over"`
	GameOverReason string `json:"game_over_reason,omitempty"`

	Log             []LogEntry       `json:"log,omitempty"`
	ScheduledEvents []ScheduledEvent `json:"scheduled_events,omitempty"`

	Content *ContentBundle `json:"-"`

	rng Source
}

// NewState builds a journey from a validated config and content
// tables. Sessions never share state; every call returns an
// independent aggregate with its own random stream.
func NewState(config Config, content *ContentBundle) (*State, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if content == nil {
		return nil, fmt.Errorf("content bundle is required")
	}

	if config.Seed == 0 {
		seed, err := NewSeed()
		if err != nil {
			return nil, err
		}
		config.Seed = seed
	}

	src := NewSource(config.Seed)

	state := &State{
		Config:  config,
		Type:    config.Type,
		Day:     1,
		Pool:    newFieldPool(),
		Content: content,
		rng:     src,
	}
	state.Crew = NewCrew(config.Type, config.CrewSize, content, src)

	switch config.Type {
	case JourneyField:
		blocks := content.FieldBlocks
		total := 0.0
		for _, b := range blocks {
			total += b.DistanceKm
		}
		state.Field = &FieldProgress{
			Blocks:        blocks,
			TotalDistance: total,
			Pace:          PaceSteady,
		}
		state.Field.Weather = rollWeather(state.currentTerrain(), src)
	case JourneyDesk:
		state.Pool = newDeskPool()
		deadline := config.DeadlineDays
		if deadline <= 0 {
			deadline = 20
		}
		target := config.TargetApprovals
		if target <= 0 {
			target = 10
		}
		backlog := config.StartingBacklog
		if backlog <= 0 {
			backlog = target + 4
		}
		state.Desk = &DeskProgress{
			Permits:         PermitCounts{Backlog: backlog},
			TargetApprovals: target,
			DeadlineDays:    deadline,
			HoursPerDay:     8,
			HoursRemaining:  8,
			Stakeholders: map[string]int{
				"district_manager": 55,
				"band_council":     50,
				"mill_owner":       60,
				"ministry_clerk":   50,
			},
		}
	}

	return state, nil
}

// SetRandom swaps the random source; tests use this to make every
// stochastic draw scripted.
func (s *State) SetRandom(src Source) {
	if src != nil {
		s.rng = src
	}
}

func (s *State) random() Source {
	if s.rng == nil {
		s.rng = NewSource(s.Config.Seed)
	}
	return s.rng
}

// Finished reports whether the terminal flags suppress further
// gameplay mutation.
func (s *State) Finished() bool {
	return s.IsComplete || s.IsGameOver
}

func (s *State) appendLog(kind, text string) {
	s.Log = append(s.Log, LogEntry{Day: s.Day, Kind: kind, Text: text})
}

func (s *State) setGameOver(reason string) {
	if s.Finished() {
		return
	}
	s.IsGameOver = true
	s.GameOverReason = reason
	s.appendLog("game_over", reason)
}

func (s *State) setComplete(message string) {
	if s.Finished() {
		return
	}
	s.IsComplete = true
	s.appendLog("complete", message)
}

func (s *State) currentTerrain() TerrainType {
	if s.Field == nil || len(s.Field.Blocks) == 0 {
		return TerrainGravel
	}
	idx := clamp(s.Field.CurrentBlock, 0, len(s.Field.Blocks)-1)
	return s.Field.Blocks[idx].Terrain
}

func (s *State) randomActiveMember() *CrewMember {
	var active []*CrewMember
	for i := range s.Crew {
		if s.Crew[i].Active {
			active = append(active, &s.Crew[i])
		}
	}
	if len(active) == 0 {
		return nil
	}
	return active[s.random().IntN(len(active))]
}
