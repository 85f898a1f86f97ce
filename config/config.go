// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World        WorldConfig        `yaml:"world"`
	Terrain      TerrainConfig      `yaml:"terrain"`
	Creature     CreatureConfig     `yaml:"creature"`
	Vitals       VitalsConfig       `yaml:"vitals"`
	Forage       ForageConfig       `yaml:"forage"`
	Pathfinding  PathfindingConfig  `yaml:"pathfinding"`
	Band         BandConfig         `yaml:"band"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Flora        FloraConfig        `yaml:"flora"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds grid dimensions and initial populations.
type WorldConfig struct {
	Width            int `yaml:"width"`
	Height           int `yaml:"height"`
	InitialCreatures int `yaml:"initial_creatures"`
	InitialPlants    int `yaml:"initial_plants"`
}

// TerrainConfig holds terrain generation parameters.
type TerrainConfig struct {
	NoiseScale  float64 `yaml:"noise_scale"`   // Noise frequency; smaller = larger features
	WaterLevel  float64 `yaml:"water_level"`   // Noise below this becomes water
	DirtLevel   float64 `yaml:"dirt_level"`    // Noise above this becomes dirt
	DirtCostMin int     `yaml:"dirt_cost_min"` // Cheapest dirt tile move cost
	DirtCostMax int     `yaml:"dirt_cost_max"` // Most expensive dirt tile move cost
}

// CreatureConfig holds creature vitals and decision thresholds.
type CreatureConfig struct {
	InitialCalories int     `yaml:"initial_calories"`
	MaxCalories     int     `yaml:"max_calories"`
	HungerRatio     float64 `yaml:"hunger_ratio"`    // Seek food below this fraction of max
	ProcreateRatio  float64 `yaml:"procreate_ratio"` // Procreate at or above this fraction of max
}

// VitalsConfig holds per-tick calorie costs.
type VitalsConfig struct {
	LiveCost int `yaml:"live_cost"` // Burned every tick for being alive
	MoveCost int `yaml:"move_cost"` // Burned per tile moved
	WorkCost int `yaml:"work_cost"` // Burned per tick of eating
}

// ForageConfig holds food search parameters.
type ForageConfig struct {
	SearchRadius int `yaml:"search_radius"` // Max ring radius scanned for food (0 = auto)
	EatTicks     int `yaml:"eat_ticks"`     // Ticks of work to consume a plant
}

// PathfindingConfig holds terrain traversal cost parameters.
type PathfindingConfig struct {
	OpenCost     int `yaml:"open_cost"`     // Step cost on open ground
	WaterPenalty int `yaml:"water_penalty"` // Multiplier applied to water tiles
	CostCap      int `yaml:"cost_cap"`      // Tiles costing more than this are impassable
}

// BandConfig holds band cohesion parameters.
type BandConfig struct {
	Radius int `yaml:"radius"` // Manhattan distance from center counted as inside (0 = auto)
}

// ReproductionConfig holds pregnancy parameters.
type ReproductionConfig struct {
	PregnancyTicks int `yaml:"pregnancy_ticks"` // Ticks from conception to birth
}

// FloraConfig holds plant growth parameters.
type FloraConfig struct {
	Nutrition  int     `yaml:"nutrition"`   // Calories granted by a consumed plant
	SeedChance float64 `yaml:"seed_chance"` // Per-plant per-tick chance to spread
	MaxPlants  int     `yaml:"max_plants"`  // Spread stops at this population (0 = auto)
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int64 `yaml:"stats_window"` // Ticks per stats window
	PerfWindow  int   `yaml:"perf_window"`  // Tick samples in the perf rolling window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldTiles int // World.Width * World.Height
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.WorldTiles = c.World.Width * c.World.Height

	// Zero means auto-size from the grid
	if c.Forage.SearchRadius == 0 {
		c.Forage.SearchRadius = c.World.Width + c.World.Height
	}
	if c.Band.Radius == 0 {
		c.Band.Radius = (c.World.Width + c.World.Height) / 8
	}
	if c.Flora.MaxPlants == 0 {
		c.Flora.MaxPlants = c.Derived.WorldTiles / 5
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
