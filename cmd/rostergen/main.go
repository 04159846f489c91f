// Command rostergen prints a generated crew roster as YAML. Handy for
// eyeballing trait and role distributions after editing the content
// tables.
package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/boreal-interactive/timbertrek/internal/content"
	"github.com/boreal-interactive/timbertrek/internal/journey"
)

func main() {
	var (
		journeyType string
		size        int
		seed        int64
		count       int
	)

	flag.StringVar(&journeyType, "journey", "field", "journey type (field or desk)")
	flag.IntVar(&size, "size", 5, "crew size")
	flag.Int64Var(&seed, "seed", 0, "roster seed (0 picks one)")
	flag.IntVar(&count, "count", 1, "number of rosters to generate")
	flag.Parse()

	if err := run(journey.JourneyType(journeyType), size, seed, count); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(journeyType journey.JourneyType, size int, seed int64, count int) error {
	switch journeyType {
	case journey.JourneyField, journey.JourneyDesk:
	default:
		return fmt.Errorf("unknown journey type %q", journeyType)
	}
	if size < 1 || size > 8 {
		return fmt.Errorf("crew size must be 1-8, got %d", size)
	}
	if count < 1 {
		return fmt.Errorf("count must be positive, got %d", count)
	}

	bundle, err := content.Load()
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	if seed == 0 {
		seed, err = journey.NewSeed()
		if err != nil {
			return fmt.Errorf("pick seed: %w", err)
		}
	}
	src := journey.NewSource(seed)

	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()

	for i := 0; i < count; i++ {
		roster := struct {
			Seed    int64                `yaml:"seed"`
			Journey journey.JourneyType  `yaml:"journey"`
			Crew    []journey.CrewMember `yaml:"crew"`
		}{
			Seed:    seed,
			Journey: journeyType,
			Crew:    journey.NewCrew(journeyType, size, bundle, src),
		}
		if err := enc.Encode(roster); err != nil {
			return fmt.Errorf("encode roster: %w", err)
		}
	}

	return nil
}
