package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/oleksiy-korniychuk/guns-germs-steel/components"
)

// ForageParams tunes food targeting.
type ForageParams struct {
	SearchRadius int // expanding ring cap, in tiles
	EatTicks     int // bites to finish a plant
}

// ForageSystem turns seek-food intents into eat actions. Each hungry
// creature scans the spatial index in expanding square rings for the
// nearest harvestable, edible plant not yet claimed this tick. A find
// installs the eat action plus a positional precondition at the
// plant's tile; a fruitless scan clears the intent so the planner
// reconsiders next tick.
type ForageSystem struct {
	params     ForageParams
	filter     ecs.Filter2[components.Position, components.Agenda]
	posMap     *ecs.Map[components.Position]
	plantMap   *ecs.Map[components.Plant]
	harvestMap *ecs.Map[components.Harvestable]
	edibleMap  *ecs.Map[components.Edible]
	precondMap *ecs.Map[components.Precondition]
}

// NewForageSystem creates the targeting system.
func NewForageSystem(w *ecs.World, params ForageParams) *ForageSystem {
	return &ForageSystem{
		params:     params,
		filter:     *ecs.NewFilter2[components.Position, components.Agenda](w).With(ecs.C[components.Creature]()),
		posMap:     ecs.NewMap[components.Position](w),
		plantMap:   ecs.NewMap[components.Plant](w),
		harvestMap: ecs.NewMap[components.Harvestable](w),
		edibleMap:  ecs.NewMap[components.Edible](w),
		precondMap: ecs.NewMap[components.Precondition](w),
	}
}

type precondAdd struct {
	entity ecs.Entity
	pos    components.Position
}

// Update resolves every seek-food intent. The claim set lives only
// for this pass; exclusivity across ticks is re-established by
// re-running the search.
func (s *ForageSystem) Update(ctx *Context) {
	claimed := make(map[ecs.Entity]struct{})
	var adds []precondAdd

	query := s.filter.Query()
	for query.Next() {
		pos, agenda := query.Get()
		if agenda.Kind != components.AgendaSeekFood {
			continue
		}

		target, ok := s.findClosestFood(ctx, *pos, claimed)
		if !ok {
			agenda.Clear()
			continue
		}

		claimed[target] = struct{}{}
		agenda.StartEating(target, s.params.EatTicks)
		adds = append(adds, precondAdd{entity: query.Entity(), pos: *s.posMap.Get(target)})
	}

	for _, a := range adds {
		s.precondMap.Add(a.entity, &components.Precondition{Pos: a.pos})
	}
}

// findClosestFood scans square rings of increasing radius around
// start. Within a ring, columns run west to east and rows north to
// south; within a tile, entities keep index insertion order. The
// first qualifying unclaimed plant wins.
func (s *ForageSystem) findClosestFood(ctx *Context, start components.Position, claimed map[ecs.Entity]struct{}) (ecs.Entity, bool) {
	for radius := 0; radius < s.params.SearchRadius; radius++ {
		for dx := -radius; dx <= radius; dx++ {
			for dy := -radius; dy <= radius; dy++ {
				if abs(dx) != radius && abs(dy) != radius {
					continue
				}
				for _, e := range ctx.Index.At(start.X+dx, start.Y+dy) {
					if _, taken := claimed[e]; taken {
						continue
					}
					if s.plantMap.Has(e) && s.harvestMap.Has(e) && s.edibleMap.Has(e) {
						return e, true
					}
				}
			}
		}
	}
	return ecs.Entity{}, false
}

// EatParams tunes the eat executor.
type EatParams struct {
	WorkCost int // calories burned per bite
}

// EatSystem advances eat actions for creatures that are at their
// target and did not travel this tick. One creature per plant per
// tick; losers of the claim are requeued to seek food, as are
// creatures whose target vanished. A finished meal credits the
// plant's nutrition and despawns it.
type EatSystem struct {
	params     EatParams
	filter     ecs.Filter3[components.Position, components.Calories, components.Agenda]
	posMap     *ecs.Map[components.Position]
	foodMap    *ecs.Map[components.FoodSource]
	precondMap *ecs.Map[components.Precondition]
}

// NewEatSystem creates the eat executor.
func NewEatSystem(w *ecs.World, params EatParams) *EatSystem {
	return &EatSystem{
		params:     params,
		filter:     *ecs.NewFilter3[components.Position, components.Calories, components.Agenda](w).With(ecs.C[components.Creature]()),
		posMap:     ecs.NewMap[components.Position](w),
		foodMap:    ecs.NewMap[components.FoodSource](w),
		precondMap: ecs.NewMap[components.Precondition](w),
	}
}

// Update advances every ready eat action by one bite.
func (s *EatSystem) Update(ctx *Context) {
	eating := make(map[ecs.Entity]struct{})
	var dropPrecond []ecs.Entity
	var eaten []ecs.Entity

	query := s.filter.Query()
	for query.Next() {
		pos, cal, agenda := query.Get()
		if agenda.Kind != components.AgendaEat {
			continue
		}
		entity := query.Entity()

		// A creature that spent this tick walking settles first
		// and bites next tick.
		if ctx.MovedThisTick(entity) {
			continue
		}

		target := agenda.Target
		if !ctx.World.Alive(target) || !s.foodMap.Has(target) {
			agenda.SetIntent(components.AgendaSeekFood)
			dropPrecond = append(dropPrecond, entity)
			continue
		}
		if *pos != *s.posMap.Get(target) {
			continue
		}

		if _, taken := eating[target]; taken {
			agenda.SetIntent(components.AgendaSeekFood)
			dropPrecond = append(dropPrecond, entity)
			ctx.Stats.RecordContention()
			continue
		}
		eating[target] = struct{}{}

		agenda.Progress++
		cal.Current -= s.params.WorkCost

		if agenda.Progress >= agenda.MaxProgress {
			cal.Current += s.foodMap.Get(target).Nutrition
			agenda.Clear()
			dropPrecond = append(dropPrecond, entity)
			eaten = append(eaten, target)
			ctx.Stats.RecordMeal()
		}
	}

	for _, e := range dropPrecond {
		if s.precondMap.Has(e) {
			s.precondMap.Remove(e)
		}
	}
	for _, plant := range eaten {
		ctx.World.RemoveEntity(plant)
	}
}
