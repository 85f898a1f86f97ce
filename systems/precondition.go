package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/oleksiy-korniychuk/guns-germs-steel/components"
)

// PreconditionSystem steers creatures toward unmet positional
// requirements. It decouples "what requires a location" from "how to
// get there": any action carrying a precondition reuses the same
// travel/path machinery for arrival.
type PreconditionSystem struct {
	filter    ecs.Filter2[components.Position, components.Precondition]
	travelMap *ecs.Map[components.Travel]
	pathMap   *ecs.Map[components.Path]
}

// NewPreconditionSystem creates the enforcer.
func NewPreconditionSystem(w *ecs.World) *PreconditionSystem {
	return &PreconditionSystem{
		filter:    *ecs.NewFilter2[components.Position, components.Precondition](w),
		travelMap: ecs.NewMap[components.Travel](w),
		pathMap:   ecs.NewMap[components.Path](w),
	}
}

// Update inserts travel toward unmet requirements when nothing is in
// flight, and clears travel that lingers after arrival.
func (s *PreconditionSystem) Update(ctx *Context) {
	var addTravel []travelAdd
	var dropTravel []ecs.Entity

	query := s.filter.Query()
	for query.Next() {
		pos, precond := query.Get()
		entity := query.Entity()
		hasTravel := s.travelMap.Has(entity)

		if !precond.Met(*pos) {
			if !hasTravel && !s.pathMap.Has(entity) {
				addTravel = append(addTravel, travelAdd{entity: entity, dest: precond.Pos})
			}
		} else if hasTravel {
			dropTravel = append(dropTravel, entity)
		}
	}

	for _, a := range addTravel {
		s.travelMap.Add(a.entity, &components.Travel{Dest: a.dest})
	}
	for _, e := range dropTravel {
		s.travelMap.Remove(e)
	}
}
