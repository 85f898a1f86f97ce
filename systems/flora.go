package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/oleksiy-korniychuk/guns-germs-steel/components"
)

// FloraParams tunes plant spawning and propagation.
type FloraParams struct {
	Nutrition  int     // calories granted by a finished plant
	SeedChance float64 // per-plant per-tick chance to seed a neighbor
	MaxPlants  int     // global cap on living plants
}

// FloraSystem owns plant entities: it spawns them (world setup and
// propagation both go through it) and runs the per-tick seeding pass.
// A plant seeds at most one orthogonal neighbor, and only onto an
// in-bounds, non-water tile not already holding a plant.
type FloraSystem struct {
	params   FloraParams
	filter   ecs.Filter1[components.Position]
	plantMap *ecs.Map[components.Plant]
	mapper   *ecs.Map6[components.Position, components.Calories, components.Plant, components.FoodSource, components.Harvestable, components.Edible]
}

// NewFloraSystem creates the system.
func NewFloraSystem(w *ecs.World, params FloraParams) *FloraSystem {
	return &FloraSystem{
		params:   params,
		filter:   *ecs.NewFilter1[components.Position](w).With(ecs.C[components.Plant]()),
		plantMap: ecs.NewMap[components.Plant](w),
		mapper:   ecs.NewMap6[components.Position, components.Calories, components.Plant, components.FoodSource, components.Harvestable, components.Edible](w),
	}
}

// SpawnPlant creates a cereal grass plant at pos. Must not be called
// while a query is open.
func (s *FloraSystem) SpawnPlant(pos components.Position) ecs.Entity {
	cal := components.Calories{Current: s.params.Nutrition, Max: s.params.Nutrition}
	plant := components.Plant{Kind: components.PlantCerealGrass}
	food := components.FoodSource{Nutrition: s.params.Nutrition}
	return s.mapper.NewEntity(&pos, &cal, &plant, &food, &components.Harvestable{}, &components.Edible{})
}

// Update runs the propagation pass.
func (s *FloraSystem) Update(ctx *Context) {
	var seeds []components.Position
	seededTiles := make(map[components.Position]struct{})
	count := 0

	query := s.filter.Query()
	for query.Next() {
		pos := query.Get()
		count++
		if ctx.Rand.Float64() >= s.params.SeedChance {
			continue
		}

		dest := *pos
		switch ctx.Rand.Intn(4) {
		case 0:
			dest.Y--
		case 1:
			dest.Y++
		case 2:
			dest.X--
		case 3:
			dest.X++
		}

		if !ctx.Terrain.InBounds(dest.X, dest.Y) {
			continue
		}
		if ctx.Terrain.At(dest.X, dest.Y).Kind == TileWater {
			continue
		}
		if _, taken := seededTiles[dest]; taken {
			continue
		}
		if s.plantAt(ctx, dest) {
			continue
		}

		seededTiles[dest] = struct{}{}
		seeds = append(seeds, dest)
	}

	for _, pos := range seeds {
		if count >= s.params.MaxPlants {
			break
		}
		s.SpawnPlant(pos)
		count++
		ctx.Stats.RecordSeeded()
	}
}

// plantAt reports whether the spatial index already holds a plant on
// the tile.
func (s *FloraSystem) plantAt(ctx *Context, pos components.Position) bool {
	for _, e := range ctx.Index.At(pos.X, pos.Y) {
		if s.plantMap.Has(e) {
			return true
		}
	}
	return false
}
