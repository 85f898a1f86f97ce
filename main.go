// Command guns-germs-steel runs the creature simulation headless.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/oleksiy-korniychuk/guns-germs-steel/config"
	"github.com/oleksiy-korniychuk/guns-germs-steel/sim"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 10000, "Stop after N ticks (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Log window stats via slog")
	statsWindow := flag.Int64("stats-window", 0, "Stats window size in ticks (0 = use config)")
	quiet := flag.Bool("quiet", false, "Only log warnings and errors")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *quiet {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	s, err := sim.New(sim.Options{
		Seed:        rngSeed,
		Config:      cfg,
		LogStats:    *logStats,
		OutputDir:   *outputDir,
		StatsWindow: *statsWindow,
	})
	if err != nil {
		slog.Error("failed to build simulation", "error", err)
		os.Exit(1)
	}
	defer s.Close()

	slog.Info("starting simulation",
		"seed", rngSeed,
		"grid_width", cfg.World.Width,
		"grid_height", cfg.World.Height,
		"creatures", s.Population(),
		"plants", s.PlantCount(),
		"max_ticks", *maxTicks,
	)

	start := time.Now()
	for *maxTicks == 0 || s.Tick() < *maxTicks {
		s.Step()

		if s.Population() == 0 {
			slog.Info("population extinct", "tick", s.Tick())
			break
		}
	}
	elapsed := time.Since(start)

	totals := s.Totals()
	slog.Info("run complete",
		"tick", s.Tick(),
		"elapsed", elapsed.Round(time.Millisecond).String(),
		"population", s.Population(),
		"plants", s.PlantCount(),
		"band_center_x", s.BandCenter().X,
		"band_center_y", s.BandCenter().Y,
		"births", totals.Births,
		"starvations", totals.Starvations,
		"meals", totals.Meals,
		"nav_failures", totals.NavFailures,
		"contentions", totals.Contentions,
		"plants_seeded", totals.PlantsSeeded,
	)
	s.PerfStats().LogStats()
}
