package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/oleksiy-korniychuk/guns-germs-steel/components"
)

// MovementParams tunes the movement executor.
type MovementParams struct {
	MoveCost int // calories per step
}

// MovementSystem advances every pathed entity one waypoint per tick.
// The tile hop is unconditional: the path was planned over passable
// terrain and nothing re-checks it here. Emptying the path clears
// both the path and its travel intent, releasing the entity to the
// planner on the next tick.
type MovementSystem struct {
	params    MovementParams
	filter    ecs.Filter3[components.Position, components.Calories, components.Path]
	travelMap *ecs.Map[components.Travel]
	pathMap   *ecs.Map[components.Path]
}

// NewMovementSystem creates the executor.
func NewMovementSystem(w *ecs.World, params MovementParams) *MovementSystem {
	return &MovementSystem{
		params:    params,
		filter:    *ecs.NewFilter3[components.Position, components.Calories, components.Path](w),
		travelMap: ecs.NewMap[components.Travel](w),
		pathMap:   ecs.NewMap[components.Path](w),
	}
}

// Update steps every path forward and marks the movers.
func (s *MovementSystem) Update(ctx *Context) {
	var done []ecs.Entity

	query := s.filter.Query()
	for query.Next() {
		pos, cal, path := query.Get()

		if len(path.Nodes) > 0 {
			*pos = path.Nodes[0]
			path.Nodes = path.Nodes[1:]
			cal.Current -= s.params.MoveCost
			ctx.MarkMoved(query.Entity())
		}
		if len(path.Nodes) == 0 {
			done = append(done, query.Entity())
		}
	}

	for _, e := range done {
		s.pathMap.Remove(e)
		if s.travelMap.Has(e) {
			s.travelMap.Remove(e)
		}
	}
}
