package journey

// Read-only status queries for the presentation layer. Nothing here
// mutates the journey.

// Progress reports overall completion in [0, 1]: distance ratio for
// field journeys, approved-over-target for desk campaigns.
func (s *State) Progress() float64 {
	switch s.Type {
	case JourneyField:
		if s.Field == nil || s.Field.TotalDistance <= 0 {
			return 0
		}
		return clampFloat(s.Field.DistanceTraveled/s.Field.TotalDistance, 0, 1)
	case JourneyDesk:
		if s.Desk == nil || s.Desk.TargetApprovals <= 0 {
			return 0
		}
		return clampFloat(float64(s.Desk.Permits.Approved)/float64(s.Desk.TargetApprovals), 0, 1)
	}
	return 0
}

// FieldProgressInfo is the field-mode status snapshot.
type FieldProgressInfo struct {
	DistanceTraveled float64
	TotalDistance    float64
	Percent          float64
	CurrentBlock     Block
	BlocksRemaining  int
	Pace             Pace
	Weather          WeatherState
	TravelDelayHours float64
}

// FieldInfo returns the field snapshot; the zero value for desk
// journeys.
func (s *State) FieldInfo() FieldProgressInfo {
	if s.Field == nil {
		return FieldProgressInfo{}
	}
	field := s.Field
	info := FieldProgressInfo{
		DistanceTraveled: field.DistanceTraveled,
		TotalDistance:    field.TotalDistance,
		Percent:          s.Progress() * 100,
		Pace:             field.Pace,
		Weather:          field.Weather,
		TravelDelayHours: field.TravelDelayHours,
	}
	if len(field.Blocks) > 0 {
		idx := clamp(field.CurrentBlock, 0, len(field.Blocks)-1)
		info.CurrentBlock = field.Blocks[idx]
		info.BlocksRemaining = len(field.Blocks) - 1 - idx
	}
	return info
}

// Summary is the mode-independent status snapshot.
type Summary struct {
	Type           JourneyType
	Day            int
	ActiveCrew     int
	AverageMorale  float64
	Resources      map[ResourceKind]float64
	Progress       float64
	IsComplete     bool
	IsGameOver     bool
	GameOverReason string
}

// Summarize builds a Summary without touching state. The resource map
// is a copy; callers may keep it.
func (s *State) Summarize() Summary {
	resources := make(map[ResourceKind]float64, len(s.Pool.Levels))
	for kind, level := range s.Pool.Levels {
		resources[kind] = level
	}
	return Summary{
		Type:           s.Type,
		Day:            s.Day,
		ActiveCrew:     ActiveCrewCount(s.Crew),
		AverageMorale:  AverageMorale(s.Crew),
		Resources:      resources,
		Progress:       s.Progress(),
		IsComplete:     s.IsComplete,
		IsGameOver:     s.IsGameOver,
		GameOverReason: s.GameOverReason,
	}
}
