package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/oleksiy-korniychuk/guns-germs-steel/components"
)

// VitalsParams tunes the calorie economy.
type VitalsParams struct {
	LiveCost int // unconditional per-tick burn for creatures
}

// VitalsSystem applies the living cost to every creature, then
// destroys every calorie holder at or below zero. The death rule is
// capability-scoped on purpose: anything carrying a pool is subject,
// creatures and plants alike, with no grace period.
type VitalsSystem struct {
	params      VitalsParams
	burnFilter  ecs.Filter1[components.Calories]
	deathFilter ecs.Filter1[components.Calories]
	creatureMap *ecs.Map[components.Creature]
}

// NewVitalsSystem creates the system.
func NewVitalsSystem(w *ecs.World, params VitalsParams) *VitalsSystem {
	return &VitalsSystem{
		params:      params,
		burnFilter:  *ecs.NewFilter1[components.Calories](w).With(ecs.C[components.Creature]()),
		deathFilter: *ecs.NewFilter1[components.Calories](w),
		creatureMap: ecs.NewMap[components.Creature](w),
	}
}

// Update burns, then reaps. Removal is deferred past the query; the
// world is locked while iterating.
func (s *VitalsSystem) Update(ctx *Context) {
	burn := s.burnFilter.Query()
	for burn.Next() {
		cal := burn.Get()
		cal.Current -= s.params.LiveCost
	}

	var dead []ecs.Entity
	reap := s.deathFilter.Query()
	for reap.Next() {
		if cal := reap.Get(); cal.Current <= 0 {
			dead = append(dead, reap.Entity())
		}
	}

	for _, e := range dead {
		if s.creatureMap.Has(e) {
			ctx.Stats.RecordStarvation()
		}
		ctx.World.RemoveEntity(e)
	}
}
