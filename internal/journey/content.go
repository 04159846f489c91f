package journey

import "sort"

// Content types consumed by the engine. The tables themselves are
// authored in internal/content and handed in at setup; the engine
// never reads files.

// TerrainType categorizes the ground a field block sits on.
type TerrainType string

const (
	TerrainMainline TerrainType = "mainline"
	TerrainGravel   TerrainType = "gravel"
	TerrainSkid     TerrainType = "skid_trail"
	TerrainMuskeg   TerrainType = "muskeg"
	TerrainAlpine   TerrainType = "alpine"
)

// Block is one leg of a field journey: the stretch of road or trail
// leading to a named harvest block.
type Block struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	DistanceKm float64     `json:"distance_km" yaml:"distance_km"`
	Terrain    TerrainType `json:"terrain" yaml:"terrain"`
	Hazards    []string    `json:"hazards,omitempty" yaml:"hazards,omitempty"`
}

// StatusEffectDef declares a timed affliction: daily drain, morale
// delta, the fraction of work capacity it leaves, and how long it
// lasts when first applied.
type StatusEffectDef struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	HealthDrain  int     `yaml:"health_drain"`
	MoraleDelta  int     `yaml:"morale_delta"`
	CapacityMult float64 `yaml:"capacity_mult"`
	DurationDays int     `yaml:"duration_days"`
}

// TraitDef declares a performance-affecting crew trait.
type TraitDef struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	CapacityMult float64 `yaml:"capacity_mult"`
}

// TemptationTemplate seeds a synthesized high-stakes side offer. The
// payout and the actor making the offer are rolled at selection time.
type TemptationTemplate struct {
	ID           string      `yaml:"id"`
	Title        string      `yaml:"title"`
	Description  string      `yaml:"description"` // may contain {actor}
	Journey      JourneyType `yaml:"journey"`
	RequiresRole Role        `yaml:"requires_role,omitempty"`
	MoraleCost   int         `yaml:"morale_cost"`
	CapitalCost  float64     `yaml:"capital_cost"`
}

// ContentBundle is everything the engine consumes from the content
// layer: authored events, temptation templates, effect and trait
// definitions, the field route, and naming pools.
type ContentBundle struct {
	Events           []Event              `yaml:"events"`
	Temptations      []TemptationTemplate `yaml:"temptations"`
	Effects          map[string]StatusEffectDef
	Traits           map[string]TraitDef
	FieldBlocks      []Block  `yaml:"field_blocks"`
	MinorInjuries    []string `yaml:"minor_injuries"`
	ModerateInjuries []string `yaml:"moderate_injuries"`
	CrewNames        []string `yaml:"crew_names"`
}

func (c *ContentBundle) randomTraitID(src Source) string {
	ids := make([]string, 0, len(c.Traits))
	for id := range c.Traits {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return ""
	}
	sort.Strings(ids)
	return ids[src.IntN(len(ids))]
}

// EventByID looks an authored event up; a miss is the ordinary
// "no event" case, not an error.
func (c *ContentBundle) EventByID(id string) (Event, bool) {
	for _, ev := range c.Events {
		if ev.ID == id {
			return ev, true
		}
	}
	return Event{}, false
}
