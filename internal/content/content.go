// Package content owns the authored game tables: events, temptation
// templates, status effects, traits, the default field route, and the
// naming pools. Everything ships embedded; the engine receives a
// validated bundle and never touches the files.
package content

import (
	"embed"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/boreal-interactive/timbertrek/internal/journey"
)

//go:embed data/*.yaml
var dataFS embed.FS

// fileSchema is the union of every table a data file may carry; each
// file fills in the sections it owns.
type fileSchema struct {
	Events           []journey.Event              `yaml:"events"`
	Temptations      []journey.TemptationTemplate `yaml:"temptations"`
	Effects          []journey.StatusEffectDef    `yaml:"effects"`
	Traits           []journey.TraitDef           `yaml:"traits"`
	FieldBlocks      []journey.Block              `yaml:"field_blocks"`
	MinorInjuries    []string                     `yaml:"minor_injuries"`
	ModerateInjuries []string                     `yaml:"moderate_injuries"`
	CrewNames        []string                     `yaml:"crew_names"`
}

// Load parses and merges the embedded tables into one bundle, then
// validates the cross-references. A broken table is a build problem,
// so callers treat an error here as fatal.
func Load() (*journey.ContentBundle, error) {
	bundle := &journey.ContentBundle{
		Effects: make(map[string]journey.StatusEffectDef),
		Traits:  make(map[string]journey.TraitDef),
	}

	entries, err := fs.Glob(dataFS, "data/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("list content files: %w", err)
	}
	for _, path := range entries {
		raw, err := dataFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var file fileSchema
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if err := merge(bundle, file, path); err != nil {
			return nil, err
		}
	}

	if err := validate(bundle); err != nil {
		return nil, err
	}
	return bundle, nil
}

func merge(bundle *journey.ContentBundle, file fileSchema, path string) error {
	bundle.Events = append(bundle.Events, file.Events...)
	bundle.Temptations = append(bundle.Temptations, file.Temptations...)
	bundle.FieldBlocks = append(bundle.FieldBlocks, file.FieldBlocks...)
	bundle.MinorInjuries = append(bundle.MinorInjuries, file.MinorInjuries...)
	bundle.ModerateInjuries = append(bundle.ModerateInjuries, file.ModerateInjuries...)
	bundle.CrewNames = append(bundle.CrewNames, file.CrewNames...)

	for _, def := range file.Effects {
		if _, dup := bundle.Effects[def.ID]; dup {
			return fmt.Errorf("%s: duplicate effect id %q", path, def.ID)
		}
		bundle.Effects[def.ID] = def
	}
	for _, def := range file.Traits {
		if _, dup := bundle.Traits[def.ID]; dup {
			return fmt.Errorf("%s: duplicate trait id %q", path, def.ID)
		}
		bundle.Traits[def.ID] = def
	}
	return nil
}

func validate(bundle *journey.ContentBundle) error {
	for id, def := range bundle.Effects {
		if def.ID != id || def.Name == "" {
			return fmt.Errorf("effect %q: missing id or name", id)
		}
		if def.DurationDays <= 0 {
			return fmt.Errorf("effect %q: duration must be positive", id)
		}
		if def.CapacityMult <= 0 || def.CapacityMult > 1 {
			return fmt.Errorf("effect %q: capacity_mult must be in (0, 1]", id)
		}
	}

	for _, id := range bundle.MinorInjuries {
		if _, ok := bundle.Effects[id]; !ok {
			return fmt.Errorf("minor injury %q: no such effect", id)
		}
	}
	for _, id := range bundle.ModerateInjuries {
		if _, ok := bundle.Effects[id]; !ok {
			return fmt.Errorf("moderate injury %q: no such effect", id)
		}
	}

	seenEvents := make(map[string]bool, len(bundle.Events))
	for _, event := range bundle.Events {
		if event.ID == "" || event.Title == "" {
			return fmt.Errorf("event %q: missing id or title", event.ID)
		}
		if seenEvents[event.ID] {
			return fmt.Errorf("duplicate event id %q", event.ID)
		}
		seenEvents[event.ID] = true
		if event.Journey != journey.JourneyField && event.Journey != journey.JourneyDesk {
			return fmt.Errorf("event %q: unknown journey %q", event.ID, event.Journey)
		}
		if len(event.Options) == 0 {
			return fmt.Errorf("event %q: needs at least one option", event.ID)
		}
		for i, option := range event.Options {
			if option.Label == "" {
				return fmt.Errorf("event %q option %d: missing label", event.ID, i)
			}
			if option.RiskInjury < 0 || option.RiskInjury > 1 {
				return fmt.Errorf("event %q option %d: risk_injury out of [0,1]", event.ID, i)
			}
			if crew := option.Effects.Crew; crew != nil && crew.EffectID != "" {
				if _, ok := bundle.Effects[crew.EffectID]; !ok {
					return fmt.Errorf("event %q option %d: no such effect %q", event.ID, i, crew.EffectID)
				}
			}
			if ref := option.SchedulesEvent; ref != nil {
				if !eventIDExists(bundle.Events, ref.EventID) {
					return fmt.Errorf("event %q option %d: schedules unknown event %q", event.ID, i, ref.EventID)
				}
				if ref.DelayDays <= 0 {
					return fmt.Errorf("event %q option %d: delay must be positive", event.ID, i)
				}
			}
		}
	}

	for _, template := range bundle.Temptations {
		if template.ID == "" || template.Title == "" {
			return fmt.Errorf("temptation %q: missing id or title", template.ID)
		}
		if template.Journey != journey.JourneyField && template.Journey != journey.JourneyDesk {
			return fmt.Errorf("temptation %q: unknown journey %q", template.ID, template.Journey)
		}
	}

	if len(bundle.FieldBlocks) == 0 {
		return fmt.Errorf("the field route has no blocks")
	}
	for _, block := range bundle.FieldBlocks {
		if block.ID == "" || block.Name == "" {
			return fmt.Errorf("block %q: missing id or name", block.ID)
		}
		if block.DistanceKm <= 0 {
			return fmt.Errorf("block %q: distance must be positive", block.ID)
		}
	}

	if len(bundle.CrewNames) == 0 {
		return fmt.Errorf("the crew name pool is empty")
	}
	return nil
}

func eventIDExists(events []journey.Event, id string) bool {
	for _, event := range events {
		if event.ID == id {
			return true
		}
	}
	return false
}
