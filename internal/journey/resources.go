package journey

import "fmt"

// ResourceKind names one bounded scalar in a journey's pool.
type ResourceKind string

const (
	// Field pools.
	ResourceFuel      ResourceKind = "fuel"
	ResourceFood      ResourceKind = "food"
	ResourceEquipment ResourceKind = "equipment"
	ResourceFirstAid  ResourceKind = "first_aid"
	ResourceCash      ResourceKind = "cash"

	// Desk pools.
	ResourceBudget    ResourceKind = "budget"
	ResourcePolitical ResourceKind = "political_capital"
	ResourceEnergy    ResourceKind = "energy"
)

// ThresholdLevel classifies a pool level against its declared maximum.
type ThresholdLevel string

const (
	ThresholdNormal   ThresholdLevel = "normal"
	ThresholdLow      ThresholdLevel = "low"
	ThresholdCritical ThresholdLevel = "critical"
)

const (
	lowFraction      = 0.25
	criticalFraction = 0.10
)

// ResourcePool is a named set of bounded scalars. Every write is
// clamped into [0, max]; levels never go negative and never exceed
// their declared ceiling.
type ResourcePool struct {
	Levels map[ResourceKind]float64 `json:"levels" yaml:"levels"`
	Max    map[ResourceKind]float64 `json:"max" yaml:"max"`
}

func newFieldPool() ResourcePool {
	return poolFrom(map[ResourceKind]float64{
		ResourceFuel:      400, // liters
		ResourceFood:      120, // crew-days
		ResourceEquipment: 100, // percent serviceable
		ResourceFirstAid:  6,   // kits
		ResourceCash:      5000,
	})
}

func newDeskPool() ResourcePool {
	return poolFrom(map[ResourceKind]float64{
		ResourceBudget:    100000,
		ResourcePolitical: 100,
		ResourceEnergy:    100,
	})
}

func poolFrom(maxes map[ResourceKind]float64) ResourcePool {
	pool := ResourcePool{
		Levels: make(map[ResourceKind]float64, len(maxes)),
		Max:    make(map[ResourceKind]float64, len(maxes)),
	}
	for kind, max := range maxes {
		pool.Levels[kind] = max
		pool.Max[kind] = max
	}
	return pool
}

// Level returns the current value, 0 for kinds the pool does not hold.
func (p *ResourcePool) Level(kind ResourceKind) float64 {
	return p.Levels[kind]
}

// Has reports whether the pool declares this kind at all.
func (p *ResourcePool) Has(kind ResourceKind) bool {
	_, ok := p.Max[kind]
	return ok
}

// Apply adds delta (negative for consumption) to the kind, clamped to
// [0, declared max]. Kinds the pool does not declare are a no-op.
func (p *ResourcePool) Apply(kind ResourceKind, delta float64) {
	max, ok := p.Max[kind]
	if !ok {
		return
	}
	p.Levels[kind] = clampFloat(p.Levels[kind]+delta, 0, max)
}

// Classify reports where the level sits against the declared
// thresholds for the kind.
func (p *ResourcePool) Classify(kind ResourceKind) ThresholdLevel {
	max, ok := p.Max[kind]
	if !ok || max <= 0 {
		return ThresholdNormal
	}
	ratio := p.Levels[kind] / max
	switch {
	case ratio <= criticalFraction:
		return ThresholdCritical
	case ratio <= lowFraction:
		return ThresholdLow
	default:
		return ThresholdNormal
	}
}

// ApplyConsumption applies every delta through the clamp and returns
// warnings for kinds that crossed into low or critical territory.
func (p *ResourcePool) ApplyConsumption(deltas map[ResourceKind]float64) []string {
	var warnings []string
	for kind, delta := range deltas {
		if !p.Has(kind) {
			continue
		}
		before := p.Classify(kind)
		p.Apply(kind, delta)
		after := p.Classify(kind)
		if after == before || after == ThresholdNormal {
			continue
		}
		switch after {
		case ThresholdCritical:
			warnings = append(warnings, fmt.Sprintf("CRITICAL: %s is nearly exhausted (%.0f remaining).", kind, p.Levels[kind]))
		case ThresholdLow:
			warnings = append(warnings, fmt.Sprintf("Warning: %s is running low (%.0f remaining).", kind, p.Levels[kind]))
		}
	}
	return warnings
}

// ApplyRegen adds the small fixed desk-mode recovery, bounded by max.
func (p *ResourcePool) ApplyRegen() {
	p.Apply(ResourceEnergy, 35)
	p.Apply(ResourcePolitical, 2)
}

// fieldConsumption builds the day's field deltas. The exact multiplier
// tables are content; the contract is that harder pace, rougher
// terrain, and harsher weather monotonically increase consumption.
func fieldConsumption(pace Pace, terrain TerrainType, weather WeatherState, activeCrew int) map[ResourceKind]float64 {
	paceFactor := map[Pace]float64{
		PaceRest:      0.0,
		PaceCampWork:  0.15,
		PaceSteady:    1.0,
		PaceHard:      1.35,
		PacePunishing: 1.8,
	}[pace]

	terrainFactor := map[TerrainType]float64{
		TerrainMainline: 0.8,
		TerrainGravel:   1.0,
		TerrainSkid:     1.25,
		TerrainMuskeg:   1.5,
		TerrainAlpine:   1.7,
	}[terrain]
	if terrainFactor == 0 {
		terrainFactor = 1.0
	}

	weatherFuel := 1.0
	switch weather.Type {
	case WeatherRain:
		weatherFuel = 1.1
	case WeatherHeavyRain:
		weatherFuel = 1.25
	case WeatherSnow:
		weatherFuel = 1.3
	case WeatherBlizzard:
		weatherFuel = 1.5
	}

	foodPerHead := 1.0
	if pace == PaceHard || pace == PacePunishing {
		foodPerHead = 1.3
	}
	if weather.TemperatureC < -5 {
		foodPerHead += 0.2
	}

	deltas := map[ResourceKind]float64{
		ResourceFuel:      -18.0 * paceFactor * terrainFactor * weatherFuel,
		ResourceEquipment: -1.2 * (0.5 + paceFactor) * terrainFactor,
		ResourceFood:      -foodPerHead * float64(activeCrew),
	}
	if pace == PaceCampWork {
		// Camp work burns saw gas and files, not road fuel.
		deltas[ResourceFuel] = -2.0
		deltas[ResourceEquipment] = -0.4
	}
	return deltas
}

// deskConsumption builds the day's desk deltas from how the day was
// spent. More overtime and more meetings cost more; a crisis day
// burns budget regardless of outcome.
func deskConsumption(overtimeHours float64, meetings int, crisis bool) map[ResourceKind]float64 {
	budget := -800.0 - 350.0*float64(meetings)
	energy := -10.0 - 6.0*overtimeHours - 4.0*float64(meetings)
	if crisis {
		budget -= 1500
		energy -= 15
	}
	return map[ResourceKind]float64{
		ResourceBudget: budget,
		ResourceEnergy: energy,
	}
}
