package journey

import "fmt"

const (
	baseDailyDistanceKm = 30.0
	maxTravelDelayHours = 8.0
)

var progressMilestones = []int{25, 50, 75, 90}

// ExecuteFieldDay advances one field-mode day: travel, milestones,
// block arrivals, consumption, crew upkeep, end conditions, then the
// roll-over to the next day. A zero-distance day (rest or forced camp
// work) is a full tick, not a skip.
func (s *State) ExecuteFieldDay(pace Pace) []string {
	if s.Finished() || s.Field == nil {
		return nil
	}

	src := s.random()
	field := s.Field
	requested := pace
	fuelAtStart := s.Pool.Level(ResourceFuel)
	var messages []string

	// Defensive downgrade: no moving without fuel and working gear.
	if pace.moves() && (fuelAtStart <= 0 || s.Pool.Level(ResourceEquipment) <= 0) {
		pace = PaceCampWork
		messages = append(messages, "The trucks can't roll. The crew stays in camp and works on gear.")
	}
	field.Pace = pace

	distance := 0.0
	if mult := paceMultiplier(pace); mult > 0 {
		variance := 0.88 + 0.24*src.Float64()
		delayFactor := 1.0 - clampFloat(field.TravelDelayHours/maxTravelDelayHours, 0, 1)
		distance = baseDailyDistanceKm * mult *
			terrainSpeedFactor(s.currentTerrain()) *
			weatherTravelModifier(field.Weather.Type) *
			delayFactor * variance
	}
	if distance > 0 {
		field.DistanceTraveled = clampFloat(field.DistanceTraveled+distance, 0, field.TotalDistance)
		messages = append(messages, fmt.Sprintf("The convoy covers %.1f km.", distance))
	}

	messages = append(messages, s.fireMilestones()...)
	messages = append(messages, s.advanceBlocks()...)

	if field.TotalDistance > 0 &&
		(field.DistanceTraveled >= field.TotalDistance || field.CurrentBlock >= len(field.Blocks)-1) {
		s.setComplete("The crew has reached the last block on the plan. Journey complete.")
		messages = append(messages, "The crew has reached the last block on the plan. Journey complete.")
	}

	deltas := fieldConsumption(pace, s.currentTerrain(), field.Weather, ActiveCrewCount(s.Crew))
	messages = append(messages, s.Pool.ApplyConsumption(deltas)...)

	cond := DailyConditions{
		ForcedRest:    pace == PaceRest,
		PunishingPace: pace == PacePunishing,
		LowFood:       s.Pool.Classify(ResourceFood) == ThresholdCritical,
		ColdExposure:  field.Weather.TemperatureC < -5,
	}
	for i := range s.Crew {
		messages = append(messages, ProcessDailyUpdate(&s.Crew[i], cond, s.Content, src)...)
	}

	// Ordered end checks; the first true condition wins.
	if !s.Finished() {
		switch {
		case requested.moves() && fuelAtStart <= 0:
			reason := "Fuel exhausted. The crew is stranded on the forest service road."
			s.setGameOver(reason)
			messages = append(messages, reason)
		case ActiveCrewCount(s.Crew) == 0:
			reason := "No crew left standing. The journey is over."
			s.setGameOver(reason)
			messages = append(messages, reason)
		}
	}

	s.appendLog("field_day", fmt.Sprintf("pace=%s distance=%.1fkm total=%.1fkm block=%d",
		pace, distance, field.DistanceTraveled, field.CurrentBlock))

	s.Day++
	field.Weather = rollWeather(s.currentTerrain(), src)
	field.TravelDelayHours = 0

	return messages
}

// fireMilestones emits each progress threshold exactly once.
func (s *State) fireMilestones() []string {
	field := s.Field
	if field.TotalDistance <= 0 {
		return nil
	}
	percent := int(field.DistanceTraveled / field.TotalDistance * 100)

	var messages []string
	for _, milestone := range progressMilestones {
		if percent < milestone || s.milestoneFired(milestone) {
			continue
		}
		field.MilestonesFired = append(field.MilestonesFired, milestone)
		messages = append(messages, fmt.Sprintf("Milestone: %d%% of the route behind you.", milestone))
	}
	return messages
}

func (s *State) milestoneFired(milestone int) bool {
	for _, fired := range s.Field.MilestonesFired {
		if fired == milestone {
			return true
		}
	}
	return false
}

// advanceBlocks walks the block index forward while the next block's
// cumulative start distance has been passed. A loop, not a single
// step: one oversized day can cross several block boundaries.
func (s *State) advanceBlocks() []string {
	field := s.Field
	var messages []string
	for field.CurrentBlock+1 < len(field.Blocks) &&
		blockStartDistance(field.Blocks, field.CurrentBlock+1) <= field.DistanceTraveled {
		field.CurrentBlock++
		messages = append(messages, fmt.Sprintf("Arrived at %s.", field.Blocks[field.CurrentBlock].Name))
	}
	return messages
}

// blockStartDistance is the cumulative distance from the route start
// to the beginning of block idx.
func blockStartDistance(blocks []Block, idx int) float64 {
	total := 0.0
	for i := 0; i < idx && i < len(blocks); i++ {
		total += blocks[i].DistanceKm
	}
	return total
}

// syncBlockIndex recomputes the current block from the cumulative
// distance after a direct progress effect, so index and distance can
// never disagree.
func (s *State) syncBlockIndex() {
	field := s.Field
	if field == nil {
		return
	}
	idx := 0
	for idx+1 < len(field.Blocks) && blockStartDistance(field.Blocks, idx+1) <= field.DistanceTraveled {
		idx++
	}
	field.CurrentBlock = idx
}
