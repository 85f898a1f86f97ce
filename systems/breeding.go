package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/oleksiy-korniychuk/guns-germs-steel/components"
)

// ReproductionParams tunes procreation and gestation.
type ReproductionParams struct {
	PregnancyTicks int // gestation length
}

// ReproductionSystem resolves procreate intents and advances
// pregnancies. Resolving an intent charges half the creature's
// maximum pool up front and attaches a pregnancy; a pregnancy
// reaching term spawns a child with half the mother's maximum pool
// on the first in-bounds neighbor tile (north, south, west, east),
// falling back to the mother's own tile on a degenerate grid.
type ReproductionSystem struct {
	params       ReproductionParams
	intentFilter ecs.Filter1[components.Agenda]
	dueFilter    ecs.Filter3[components.Position, components.Calories, components.Pregnancy]
	pregnancyMap *ecs.Map[components.Pregnancy]
	mapper       *ecs.Map4[components.Position, components.Calories, components.Agenda, components.Creature]
	calMap       *ecs.Map[components.Calories]
}

// NewReproductionSystem creates the executor.
func NewReproductionSystem(w *ecs.World, params ReproductionParams) *ReproductionSystem {
	return &ReproductionSystem{
		params:       params,
		intentFilter: *ecs.NewFilter1[components.Agenda](w).With(ecs.C[components.Creature]()),
		dueFilter:    *ecs.NewFilter3[components.Position, components.Calories, components.Pregnancy](w).With(ecs.C[components.Creature]()),
		pregnancyMap: ecs.NewMap[components.Pregnancy](w),
		mapper:       ecs.NewMap4[components.Position, components.Calories, components.Agenda, components.Creature](w),
		calMap:       ecs.NewMap[components.Calories](w),
	}
}

type birth struct {
	pos components.Position
	max int
}

// Update runs gestation, then intent resolution, so a pregnancy
// conceived this tick first advances next tick and delivery lands
// exactly PregnancyTicks after conception.
func (s *ReproductionSystem) Update(ctx *Context) {
	s.advancePregnancies(ctx)
	s.resolveIntents(ctx)
}

// resolveIntents charges the procreation cost and starts gestation.
// A pregnancy attached here starts advancing next tick; the add is
// applied after the query closes.
func (s *ReproductionSystem) resolveIntents(ctx *Context) {
	var conceived []ecs.Entity

	query := s.intentFilter.Query()
	for query.Next() {
		agenda := query.Get()
		if agenda.Kind != components.AgendaProcreate {
			continue
		}
		entity := query.Entity()
		if cal := s.calMap.Get(entity); cal != nil {
			cal.Current -= cal.Max / 2
		}
		agenda.Clear()
		conceived = append(conceived, entity)
	}

	for _, e := range conceived {
		s.pregnancyMap.Add(e, &components.Pregnancy{Duration: s.params.PregnancyTicks})
	}
}

// advancePregnancies ticks every gestation forward and delivers the
// ones at term.
func (s *ReproductionSystem) advancePregnancies(ctx *Context) {
	var delivered []ecs.Entity
	var births []birth

	query := s.dueFilter.Query()
	for query.Next() {
		pos, cal, pregnancy := query.Get()
		pregnancy.Progress++
		if pregnancy.Progress < pregnancy.Duration {
			continue
		}
		delivered = append(delivered, query.Entity())
		births = append(births, birth{pos: birthTile(ctx.Terrain, *pos), max: cal.Max})
	}

	for _, e := range delivered {
		s.pregnancyMap.Remove(e)
	}
	for _, b := range births {
		childPos := b.pos
		childCal := components.Calories{Current: b.max / 2, Max: b.max}
		childAgenda := components.Agenda{}
		child := components.Creature{ID: ctx.NextCreatureID()}
		s.mapper.NewEntity(&childPos, &childCal, &childAgenda, &child)
		ctx.Stats.RecordBirth()
	}
}

// birthTile picks the first in-bounds neighbor of pos, probing
// north, south, west, east.
func birthTile(terrain *TerrainGrid, pos components.Position) components.Position {
	candidates := [4]components.Position{
		{X: pos.X, Y: pos.Y - 1},
		{X: pos.X, Y: pos.Y + 1},
		{X: pos.X - 1, Y: pos.Y},
		{X: pos.X + 1, Y: pos.Y},
	}
	for _, c := range candidates {
		if terrain.InBounds(c.X, c.Y) {
			return c
		}
	}
	return pos
}
