package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/oleksiy-korniychuk/guns-germs-steel/components"
)

func TestFloraSystem_SpawnPlantComponents(t *testing.T) {
	tw := newTestWorld(10, 10)
	flora := NewFloraSystem(tw.world, FloraParams{Nutrition: 20, SeedChance: 0, MaxPlants: 100})

	p := flora.SpawnPlant(components.Position{X: 3, Y: 4})

	if got := *tw.pos.Get(p); got != (components.Position{X: 3, Y: 4}) {
		t.Errorf("position = %v, want (3,4)", got)
	}
	if got := tw.cal.Get(p); got.Current != 20 || got.Max != 20 {
		t.Errorf("calories = %d/%d, want 20/20", got.Current, got.Max)
	}
	if !tw.plant.Has(p) {
		t.Error("plant tag missing")
	}
	if got := tw.plant.Get(p).Kind; got != components.PlantCerealGrass {
		t.Errorf("kind = %v, want cereal_grass", got)
	}
	food := ecs.NewMap[components.FoodSource](tw.world)
	if got := food.Get(p).Nutrition; got != 20 {
		t.Errorf("nutrition = %d, want 20", got)
	}
	harvest := ecs.NewMap[components.Harvestable](tw.world)
	edible := ecs.NewMap[components.Edible](tw.world)
	if !harvest.Has(p) || !edible.Has(p) {
		t.Error("spawned plant should be harvestable and edible")
	}
}

func TestFloraSystem_CertainSeedPropagates(t *testing.T) {
	tw := newTestWorld(5, 5)
	tw.spawnPlant(2, 2, 20)
	flora := NewFloraSystem(tw.world, FloraParams{Nutrition: 20, SeedChance: 1.0, MaxPlants: 100})

	tw.refresh()
	flora.Update(tw.ctx)

	if got := tw.countPlants(); got != 2 {
		t.Fatalf("plants = %d, want 2 with a certain seed chance", got)
	}
	if got := tw.ctx.Stats.Totals().PlantsSeeded; got != 1 {
		t.Errorf("seeded recorded = %d, want 1", got)
	}

	// The seedling sits one orthogonal step from the parent.
	parent := components.Position{X: 2, Y: 2}
	query := flora.filter.Query()
	for query.Next() {
		pos := *query.Get()
		if pos == parent {
			continue
		}
		if d := pos.Manhattan(parent); d != 1 {
			t.Errorf("seedling at %v is %d tiles from the parent, want 1", pos, d)
		}
	}
}

func TestFloraSystem_ZeroChanceNeverSeeds(t *testing.T) {
	tw := newTestWorld(5, 5)
	tw.spawnPlant(2, 2, 20)
	flora := NewFloraSystem(tw.world, FloraParams{Nutrition: 20, SeedChance: 0, MaxPlants: 100})

	for i := 0; i < 20; i++ {
		tw.refresh()
		flora.Update(tw.ctx)
	}

	if got := tw.countPlants(); got != 1 {
		t.Errorf("plants = %d, want 1 with zero seed chance", got)
	}
}

func TestFloraSystem_NeverSeedsWater(t *testing.T) {
	tw := newTestWorld(3, 3)
	for _, p := range [][2]int{{1, 0}, {1, 2}, {0, 1}, {2, 1}} {
		tw.ctx.Terrain.Set(p[0], p[1], Tile{Kind: TileWater, MoveCost: 1})
	}
	tw.spawnPlant(1, 1, 20)
	flora := NewFloraSystem(tw.world, FloraParams{Nutrition: 20, SeedChance: 1.0, MaxPlants: 100})

	for i := 0; i < 20; i++ {
		tw.refresh()
		flora.Update(tw.ctx)
	}

	if got := tw.countPlants(); got != 1 {
		t.Errorf("plants = %d, want 1; every neighbor is water", got)
	}
}

func TestFloraSystem_CapHoldsPopulation(t *testing.T) {
	tw := newTestWorld(5, 5)
	tw.spawnPlant(2, 2, 20)
	tw.spawnPlant(0, 0, 20)
	flora := NewFloraSystem(tw.world, FloraParams{Nutrition: 20, SeedChance: 1.0, MaxPlants: 2})

	for i := 0; i < 20; i++ {
		tw.refresh()
		flora.Update(tw.ctx)
	}

	if got := tw.countPlants(); got != 2 {
		t.Errorf("plants = %d, want capped at 2", got)
	}
}

func TestFloraSystem_NoTileEverHoldsTwoPlants(t *testing.T) {
	tw := newTestWorld(4, 4)
	tw.spawnPlant(1, 1, 20)
	tw.spawnPlant(2, 1, 20)
	flora := NewFloraSystem(tw.world, FloraParams{Nutrition: 20, SeedChance: 1.0, MaxPlants: 16})

	for i := 0; i < 30; i++ {
		tw.refresh()
		flora.Update(tw.ctx)

		seen := make(map[components.Position]int)
		query := flora.filter.Query()
		for query.Next() {
			seen[*query.Get()]++
		}
		for pos, n := range seen {
			if n > 1 {
				t.Fatalf("round %d: %d plants stacked on %v", i, n, pos)
			}
		}
	}
}
