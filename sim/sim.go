// Package sim assembles the world, the system pipeline, and telemetry
// into a tick-stepped simulation.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/oleksiy-korniychuk/guns-germs-steel/components"
	"github.com/oleksiy-korniychuk/guns-germs-steel/config"
	"github.com/oleksiy-korniychuk/guns-germs-steel/systems"
	"github.com/oleksiy-korniychuk/guns-germs-steel/telemetry"
	"github.com/oleksiy-korniychuk/guns-germs-steel/worldgen"
)

// Options configures a new Simulation.
type Options struct {
	Seed    int64
	Config  *config.Config       // nil = embedded defaults
	Terrain *systems.TerrainGrid // nil = generated from Seed

	LogStats  bool
	OutputDir string

	// StatsWindow overrides the configured window length in ticks when > 0.
	StatsWindow int64

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Simulation owns the ECS world and advances it one tick at a time.
// Step is the only mutation entry point; everything else is read-only.
type Simulation struct {
	cfg   *config.Config
	seed  int64
	world *ecs.World
	rng   *rand.Rand

	terrain *systems.TerrainGrid
	band    *systems.BandState
	ctx     *systems.Context

	collector     *telemetry.Collector
	perf          *telemetry.PerfCollector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// Pipeline systems in tick order.
	spatial      *systems.SpatialSystem
	bandSys      *systems.BandSystem
	goals        *systems.GoalSystem
	intents      *systems.IntentSystem
	forage       *systems.ForageSystem
	preconds     *systems.PreconditionSystem
	pathfinder   *systems.PathfindingSystem
	recovery     *systems.RecoverySystem
	movement     *systems.MovementSystem
	eat          *systems.EatSystem
	reproduction *systems.ReproductionSystem
	flora        *systems.FloraSystem
	vitals       *systems.VitalsSystem

	// Spawning and read-API lookups.
	creatureMapper *ecs.Map4[components.Position, components.Calories, components.Agenda, components.Creature]
	creatureFilter *ecs.Filter2[components.Calories, components.Creature]
	plantFilter    *ecs.Filter1[components.Position]
	posMap         *ecs.Map[components.Position]
	calMap         *ecs.Map[components.Calories]
	creatureMap    *ecs.Map[components.Creature]
	agendaMap      *ecs.Map[components.Agenda]
	pathMap        *ecs.Map[components.Path]
	pregMap        *ecs.Map[components.Pregnancy]
	awayMap        *ecs.Map[components.AwayFromBand]
}

// New builds a simulation from the given options.
func New(opts Options) (*Simulation, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.Load("")
		if err != nil {
			return nil, fmt.Errorf("loading default config: %w", err)
		}
	}

	terrain := opts.Terrain
	if terrain == nil {
		terrain = worldgen.Generate(cfg.Terrain, cfg.World.Width, cfg.World.Height, opts.Seed)
	}

	windowTicks := cfg.Telemetry.StatsWindow
	if opts.StatsWindow > 0 {
		windowTicks = opts.StatsWindow
	}

	s := &Simulation{
		cfg:     cfg,
		seed:    opts.Seed,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		terrain: terrain,
		band: &systems.BandState{
			Mode:   systems.BandAuto,
			Center: components.Position{X: cfg.World.Width / 2, Y: cfg.World.Height / 2},
			Radius: cfg.Band.Radius,
		},
		collector:     telemetry.NewCollector(windowTicks),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
	s.world = ecs.NewWorld()
	w := s.world

	s.ctx = systems.NewContext(w, terrain, s.band, s.rng, s.collector)

	planner := systems.NewAStarPlanner(terrain,
		cfg.Pathfinding.OpenCost, cfg.Pathfinding.WaterPenalty, cfg.Pathfinding.CostCap)

	s.spatial = systems.NewSpatialSystem(w)
	s.bandSys = systems.NewBandSystem(w)
	s.goals = systems.NewGoalSystem(w, systems.GoalParams{
		HungerRatio:    cfg.Creature.HungerRatio,
		ProcreateRatio: cfg.Creature.ProcreateRatio,
	})
	s.intents = systems.NewIntentSystem(w)
	s.forage = systems.NewForageSystem(w, systems.ForageParams{
		SearchRadius: cfg.Forage.SearchRadius,
		EatTicks:     cfg.Forage.EatTicks,
	})
	s.preconds = systems.NewPreconditionSystem(w)
	s.pathfinder = systems.NewPathfindingSystem(w, planner)
	s.recovery = systems.NewRecoverySystem(w)
	s.movement = systems.NewMovementSystem(w, systems.MovementParams{MoveCost: cfg.Vitals.MoveCost})
	s.eat = systems.NewEatSystem(w, systems.EatParams{WorkCost: cfg.Vitals.WorkCost})
	s.reproduction = systems.NewReproductionSystem(w, systems.ReproductionParams{
		PregnancyTicks: cfg.Reproduction.PregnancyTicks,
	})
	s.flora = systems.NewFloraSystem(w, systems.FloraParams{
		Nutrition:  cfg.Flora.Nutrition,
		SeedChance: cfg.Flora.SeedChance,
		MaxPlants:  cfg.Flora.MaxPlants,
	})
	s.vitals = systems.NewVitalsSystem(w, systems.VitalsParams{LiveCost: cfg.Vitals.LiveCost})

	s.creatureMapper = ecs.NewMap4[components.Position, components.Calories, components.Agenda, components.Creature](w)
	s.creatureFilter = ecs.NewFilter2[components.Calories, components.Creature](w)
	s.plantFilter = ecs.NewFilter1[components.Position](w).With(ecs.C[components.Plant]())
	s.posMap = ecs.NewMap[components.Position](w)
	s.calMap = ecs.NewMap[components.Calories](w)
	s.creatureMap = ecs.NewMap[components.Creature](w)
	s.agendaMap = ecs.NewMap[components.Agenda](w)
	s.pathMap = ecs.NewMap[components.Path](w)
	s.pregMap = ecs.NewMap[components.Pregnancy](w)
	s.awayMap = ecs.NewMap[components.AwayFromBand](w)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("creating output manager: %w", err)
		}
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			return nil, fmt.Errorf("writing config snapshot: %w", err)
		}
		s.output = om
	}

	s.spawnInitialPopulation()

	// Prime the index so read APIs work before the first Step.
	s.spatial.Update(s.ctx)

	return s, nil
}

// Step advances the simulation by exactly one tick, running every
// pipeline stage in order.
func (s *Simulation) Step() {
	s.perf.StartTick()
	s.ctx.BeginTick()

	s.perf.StartPhase(telemetry.PhaseSpatial)
	s.spatial.Update(s.ctx)

	s.perf.StartPhase(telemetry.PhaseBand)
	s.bandSys.Update(s.ctx)

	s.perf.StartPhase(telemetry.PhasePlanning)
	s.goals.Update(s.ctx)
	s.intents.Update(s.ctx)
	s.forage.Update(s.ctx)

	s.perf.StartPhase(telemetry.PhaseNavigation)
	s.preconds.Update(s.ctx)
	s.pathfinder.Update(s.ctx)
	s.recovery.Update(s.ctx)

	s.perf.StartPhase(telemetry.PhaseMovement)
	s.movement.Update(s.ctx)

	s.perf.StartPhase(telemetry.PhaseFeeding)
	s.eat.Update(s.ctx)

	s.perf.StartPhase(telemetry.PhaseReproduction)
	s.reproduction.Update(s.ctx)

	s.perf.StartPhase(telemetry.PhaseFlora)
	s.flora.Update(s.ctx)

	s.perf.StartPhase(telemetry.PhaseVitals)
	s.vitals.Update(s.ctx)

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.ctx.Tick++
	s.flushTelemetry()

	s.perf.EndTick()
}

// Close flushes and closes any CSV outputs.
func (s *Simulation) Close() error {
	if s.output != nil {
		return s.output.Close()
	}
	return nil
}
