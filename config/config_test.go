package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_EmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.World.Width != 40 || cfg.World.Height != 30 {
		t.Errorf("world = %dx%d, want 40x30", cfg.World.Width, cfg.World.Height)
	}
	if cfg.World.InitialCreatures != 8 {
		t.Errorf("initial creatures = %d, want 8", cfg.World.InitialCreatures)
	}
	if cfg.World.InitialPlants != 80 {
		t.Errorf("initial plants = %d, want 80", cfg.World.InitialPlants)
	}
	if cfg.Creature.MaxCalories != 100 {
		t.Errorf("max calories = %d, want 100", cfg.Creature.MaxCalories)
	}
	if cfg.Vitals.LiveCost != 1 || cfg.Vitals.MoveCost != 1 || cfg.Vitals.WorkCost != 1 {
		t.Errorf("vitals = %+v, want all costs 1", cfg.Vitals)
	}
	if cfg.Forage.EatTicks != 3 {
		t.Errorf("eat ticks = %d, want 3", cfg.Forage.EatTicks)
	}
	if cfg.Band.Radius != 10 {
		t.Errorf("band radius = %d, want 10", cfg.Band.Radius)
	}
	if cfg.Reproduction.PregnancyTicks != 10 {
		t.Errorf("pregnancy ticks = %d, want 10", cfg.Reproduction.PregnancyTicks)
	}
	if cfg.Flora.SeedChance != 0.002 {
		t.Errorf("seed chance = %v, want 0.002", cfg.Flora.SeedChance)
	}
	if cfg.Telemetry.StatsWindow != 100 {
		t.Errorf("stats window = %d, want 100", cfg.Telemetry.StatsWindow)
	}

	if cfg.Derived.WorldTiles != 1200 {
		t.Errorf("world tiles = %d, want 40*30", cfg.Derived.WorldTiles)
	}
}

func TestLoad_FileOverridesMergeWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	override := `
world:
  width: 10
  height: 10
vitals:
  live_cost: 2
`
	if err := os.WriteFile(path, []byte(override), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.World.Width != 10 || cfg.World.Height != 10 {
		t.Errorf("world = %dx%d, want the 10x10 override", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Vitals.LiveCost != 2 {
		t.Errorf("live cost = %d, want overridden 2", cfg.Vitals.LiveCost)
	}

	// Untouched sections keep their defaults.
	if cfg.World.InitialCreatures != 8 {
		t.Errorf("initial creatures = %d, want default 8", cfg.World.InitialCreatures)
	}
	if cfg.Vitals.MoveCost != 1 {
		t.Errorf("move cost = %d, want default 1", cfg.Vitals.MoveCost)
	}
	if cfg.Flora.Nutrition != 20 {
		t.Errorf("nutrition = %d, want default 20", cfg.Flora.Nutrition)
	}

	if cfg.Derived.WorldTiles != 100 {
		t.Errorf("world tiles = %d, want 10*10", cfg.Derived.WorldTiles)
	}
}

func TestLoad_ZeroAutoSizesFromGrid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auto.yaml")
	override := `
world:
  width: 10
  height: 10
forage:
  search_radius: 0
band:
  radius: 0
flora:
  max_plants: 0
`
	if err := os.WriteFile(path, []byte(override), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Forage.SearchRadius != 20 {
		t.Errorf("search radius = %d, want width+height", cfg.Forage.SearchRadius)
	}
	if cfg.Band.Radius != 2 {
		t.Errorf("band radius = %d, want (width+height)/8", cfg.Band.Radius)
	}
	if cfg.Flora.MaxPlants != 20 {
		t.Errorf("max plants = %d, want a fifth of the grid", cfg.Flora.MaxPlants)
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestLoad_MalformedYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("world: [not a mapping"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestWriteYAML_RoundTrips(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.World.Width = 17
	cfg.Flora.SeedChance = 0.01

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written file: %v", err)
	}
	if back.World.Width != 17 {
		t.Errorf("width = %d, want 17 back", back.World.Width)
	}
	if back.Flora.SeedChance != 0.01 {
		t.Errorf("seed chance = %v, want 0.01 back", back.Flora.SeedChance)
	}
	if back.World.Height != cfg.World.Height {
		t.Errorf("height = %d, want %d preserved", back.World.Height, cfg.World.Height)
	}
}

func TestInitAndCfg(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if Cfg() == nil {
		t.Fatal("Cfg() returned nil after Init")
	}
	if Cfg().World.Width != 40 {
		t.Errorf("global width = %d, want 40", Cfg().World.Width)
	}
}
