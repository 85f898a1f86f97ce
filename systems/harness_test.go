package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/oleksiy-korniychuk/guns-germs-steel/components"
	"github.com/oleksiy-korniychuk/guns-germs-steel/telemetry"
)

// testWorld bundles a world, context and component maps for system
// tests. Terrain defaults to flat open ground and the band radius
// covers the whole grid, so tests only override what they exercise.
type testWorld struct {
	world *ecs.World
	ctx   *Context

	spatial *SpatialSystem

	creatures *ecs.Map4[components.Position, components.Calories, components.Agenda, components.Creature]
	flora     *ecs.Map6[components.Position, components.Calories, components.Plant, components.FoodSource, components.Harvestable, components.Edible]

	pos      *ecs.Map[components.Position]
	cal      *ecs.Map[components.Calories]
	agenda   *ecs.Map[components.Agenda]
	travel   *ecs.Map[components.Travel]
	path     *ecs.Map[components.Path]
	precond  *ecs.Map[components.Precondition]
	pregnant *ecs.Map[components.Pregnancy]
	away     *ecs.Map[components.AwayFromBand]
	plant    *ecs.Map[components.Plant]
}

func newTestWorld(width, height int) *testWorld {
	tw := &testWorld{world: ecs.NewWorld()}
	w := tw.world

	terrain := NewTerrainGrid(width, height)
	band := &BandState{
		Mode:   BandAuto,
		Center: components.Position{X: width / 2, Y: height / 2},
		Radius: width + height,
	}
	tw.ctx = NewContext(w, terrain, band, rand.New(rand.NewSource(1)), telemetry.NewCollector(1000))

	tw.spatial = NewSpatialSystem(w)

	tw.creatures = ecs.NewMap4[components.Position, components.Calories, components.Agenda, components.Creature](w)
	tw.flora = ecs.NewMap6[components.Position, components.Calories, components.Plant, components.FoodSource, components.Harvestable, components.Edible](w)

	tw.pos = ecs.NewMap[components.Position](w)
	tw.cal = ecs.NewMap[components.Calories](w)
	tw.agenda = ecs.NewMap[components.Agenda](w)
	tw.travel = ecs.NewMap[components.Travel](w)
	tw.path = ecs.NewMap[components.Path](w)
	tw.precond = ecs.NewMap[components.Precondition](w)
	tw.pregnant = ecs.NewMap[components.Pregnancy](w)
	tw.away = ecs.NewMap[components.AwayFromBand](w)
	tw.plant = ecs.NewMap[components.Plant](w)

	return tw
}

func (tw *testWorld) spawnCreature(x, y, current, max int) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	cal := components.Calories{Current: current, Max: max}
	agenda := components.Agenda{}
	creature := components.Creature{ID: tw.ctx.NextCreatureID()}
	return tw.creatures.NewEntity(&pos, &cal, &agenda, &creature)
}

func (tw *testWorld) spawnPlant(x, y, nutrition int) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	cal := components.Calories{Current: nutrition, Max: nutrition}
	plant := components.Plant{Kind: components.PlantCerealGrass}
	food := components.FoodSource{Nutrition: nutrition}
	return tw.flora.NewEntity(&pos, &cal, &plant, &food, &components.Harvestable{}, &components.Edible{})
}

// refresh starts a fresh tick: tick-scoped state cleared and the
// spatial index rebuilt from current positions.
func (tw *testWorld) refresh() {
	tw.ctx.BeginTick()
	tw.spatial.Update(tw.ctx)
}

// countCreatures returns the number of living creatures.
func (tw *testWorld) countCreatures() int {
	filter := ecs.NewFilter1[components.Creature](tw.world)
	n := 0
	query := filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// countPlants returns the number of living plants.
func (tw *testWorld) countPlants() int {
	filter := ecs.NewFilter1[components.Plant](tw.world)
	n := 0
	query := filter.Query()
	for query.Next() {
		n++
	}
	return n
}
