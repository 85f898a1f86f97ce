package sim

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/oleksiy-korniychuk/guns-germs-steel/components"
	"github.com/oleksiy-korniychuk/guns-germs-steel/systems"
)

// spawnInitialPopulation places the starting creatures and plants on
// random land tiles.
func (s *Simulation) spawnInitialPopulation() {
	for i := 0; i < s.cfg.World.InitialCreatures; i++ {
		s.spawnCreature(s.randomLandTile(), s.cfg.Creature.InitialCalories)
	}
	s.scatterInitialPlants()
}

// spawnCreature creates a creature with an empty agenda and a fresh ID.
func (s *Simulation) spawnCreature(pos components.Position, calories int) ecs.Entity {
	cal := components.Calories{Current: calories, Max: s.cfg.Creature.MaxCalories}
	agenda := components.Agenda{}
	creature := components.Creature{ID: s.ctx.NextCreatureID()}
	return s.creatureMapper.NewEntity(&pos, &cal, &agenda, &creature)
}

// scatterInitialPlants places the starting plant population, at most
// one plant per tile and never on water.
func (s *Simulation) scatterInitialPlants() {
	target := s.cfg.World.InitialPlants
	attempts := s.cfg.Derived.WorldTiles * 4
	taken := make(map[int]struct{}, target)

	placed := 0
	for i := 0; i < attempts && placed < target; i++ {
		x := s.rng.Intn(s.cfg.World.Width)
		y := s.rng.Intn(s.cfg.World.Height)
		if s.terrain.At(x, y).Kind == systems.TileWater {
			continue
		}
		key := y*s.cfg.World.Width + x
		if _, dup := taken[key]; dup {
			continue
		}
		taken[key] = struct{}{}
		s.flora.SpawnPlant(components.Position{X: x, Y: y})
		placed++
	}
}

// randomLandTile picks a uniformly random non-water tile. If the grid
// is nearly all water the grid center wins by forfeit.
func (s *Simulation) randomLandTile() components.Position {
	for i := 0; i < s.cfg.Derived.WorldTiles; i++ {
		x := s.rng.Intn(s.cfg.World.Width)
		y := s.rng.Intn(s.cfg.World.Height)
		if s.terrain.At(x, y).Kind != systems.TileWater {
			return components.Position{X: x, Y: y}
		}
	}
	return s.terrain.Clamp(components.Position{X: s.cfg.World.Width / 2, Y: s.cfg.World.Height / 2})
}
