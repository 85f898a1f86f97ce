package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/oleksiy-korniychuk/guns-germs-steel/components"
)

// GoalParams tunes the planner's priority thresholds.
type GoalParams struct {
	HungerRatio    float64 // seek food below this calorie fraction
	ProcreateRatio float64 // procreate at or above this fraction
}

// GoalSystem assigns an intent to every creature whose agenda slot is
// free and which has no travel or path in flight. Priority order:
// return home, seek food, procreate, idle.
type GoalSystem struct {
	params       GoalParams
	filter       ecs.Filter2[components.Calories, components.Agenda]
	awayMap      *ecs.Map[components.AwayFromBand]
	pregnancyMap *ecs.Map[components.Pregnancy]
}

// NewGoalSystem creates the planner.
func NewGoalSystem(w *ecs.World, params GoalParams) *GoalSystem {
	return &GoalSystem{
		params: params,
		filter: *ecs.NewFilter2[components.Calories, components.Agenda](w).
			With(ecs.C[components.Creature]()).
			Without(ecs.C[components.Travel](), ecs.C[components.Path]()),
		awayMap:      ecs.NewMap[components.AwayFromBand](w),
		pregnancyMap: ecs.NewMap[components.Pregnancy](w),
	}
}

// Update assigns intents. Pure value writes; no structural changes.
func (s *GoalSystem) Update(ctx *Context) {
	query := s.filter.Query()
	for query.Next() {
		cal, agenda := query.Get()
		if !agenda.Empty() {
			continue
		}
		entity := query.Entity()

		switch {
		case s.awayMap.Has(entity):
			agenda.SetIntent(components.AgendaReturnHome)
		case cal.Ratio() < s.params.HungerRatio:
			agenda.SetIntent(components.AgendaSeekFood)
		case cal.Ratio() >= s.params.ProcreateRatio && !s.pregnancyMap.Has(entity):
			agenda.SetIntent(components.AgendaProcreate)
		default:
			agenda.SetIntent(components.AgendaIdle)
		}
	}
}

// IntentSystem resolves the two movement-flavored intents into
// actions: idle creatures either upgrade to seeking food (when below
// a full pool) or wander one tile; return-home creatures get a travel
// toward the band center. Installing the action clears the intent.
type IntentSystem struct {
	filter    ecs.Filter3[components.Position, components.Calories, components.Agenda]
	travelMap *ecs.Map[components.Travel]
}

// NewIntentSystem creates the resolver.
func NewIntentSystem(w *ecs.World) *IntentSystem {
	return &IntentSystem{
		filter:    *ecs.NewFilter3[components.Position, components.Calories, components.Agenda](w).With(ecs.C[components.Creature]()),
		travelMap: ecs.NewMap[components.Travel](w),
	}
}

type travelAdd struct {
	entity ecs.Entity
	dest   components.Position
}

// Update resolves idle and return-home intents. Travel components are
// attached after the query closes; the world is locked during
// iteration.
func (s *IntentSystem) Update(ctx *Context) {
	var adds []travelAdd

	query := s.filter.Query()
	for query.Next() {
		pos, cal, agenda := query.Get()

		switch agenda.Kind {
		case components.AgendaIdle:
			if cal.Current < cal.Max {
				agenda.SetIntent(components.AgendaSeekFood)
				continue
			}
			dest := wanderTarget(ctx, *pos)
			agenda.Clear()
			if dest != *pos {
				adds = append(adds, travelAdd{entity: query.Entity(), dest: dest})
			}
		case components.AgendaReturnHome:
			agenda.Clear()
			adds = append(adds, travelAdd{entity: query.Entity(), dest: ctx.Band.Center})
		}
	}

	for _, a := range adds {
		s.travelMap.Add(a.entity, &components.Travel{Dest: a.dest})
	}
}

// wanderTarget rolls a one-tile step (or staying put) and clamps it
// to the grid.
func wanderTarget(ctx *Context, pos components.Position) components.Position {
	dest := pos
	switch ctx.Rand.Intn(5) {
	case 0:
		dest.Y--
	case 1:
		dest.Y++
	case 2:
		dest.X--
	case 3:
		dest.X++
	}
	return ctx.Terrain.Clamp(dest)
}
