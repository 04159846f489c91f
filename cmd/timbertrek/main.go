package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/boreal-interactive/timbertrek/internal/config"
	"github.com/boreal-interactive/timbertrek/internal/ui"
)

// version, commit, date are injected at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion bool
		noUpdate    bool
		seed        int64
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.BoolVar(&noUpdate, "no-update", false, "disable update checks")
	flag.Int64Var(&seed, "seed", 0, "fix the simulation seed (0 picks one)")
	flag.Parse()

	if showVersion {
		fmt.Printf("Timbertrek %s (%s) %s\n", version, commit, date)
		return
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if noUpdate {
		cfg.NoUpdate = true
	}

	app := ui.NewApp(ui.AppConfig{
		Version:   version,
		Commit:    commit,
		BuildDate: date,
		NoUpdate:  cfg.NoUpdate,
		Seed:      cfg.Seed,
		CrewSize:  cfg.CrewSize,
	})

	if err := app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
