package systems

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/oleksiy-korniychuk/guns-germs-steel/components"
)

// PathfindingSystem computes paths for travel intents that have none.
// Arrival at the destination clears the travel on the spot; an
// unreachable destination clears it too and raises a navigation
// failure for same-tick recovery.
type PathfindingSystem struct {
	planner   *AStarPlanner
	filter    ecs.Filter2[components.Position, components.Travel]
	travelMap *ecs.Map[components.Travel]
	pathMap   *ecs.Map[components.Path]
}

// NewPathfindingSystem creates the system around an A* planner.
func NewPathfindingSystem(w *ecs.World, planner *AStarPlanner) *PathfindingSystem {
	return &PathfindingSystem{
		planner:   planner,
		filter:    *ecs.NewFilter2[components.Position, components.Travel](w).Without(ecs.C[components.Path]()),
		travelMap: ecs.NewMap[components.Travel](w),
		pathMap:   ecs.NewMap[components.Path](w),
	}
}

type pathAdd struct {
	entity ecs.Entity
	nodes  []components.Position
}

// Update plans a path for every pathless travel intent.
func (s *PathfindingSystem) Update(ctx *Context) {
	var adds []pathAdd
	var arrived []ecs.Entity
	var failed []ecs.Entity
	var dests []components.Position

	query := s.filter.Query()
	for query.Next() {
		pos, travel := query.Get()
		entity := query.Entity()

		nodes := s.planner.FindPath(*pos, travel.Dest)
		switch {
		case nodes == nil:
			failed = append(failed, entity)
			dests = append(dests, travel.Dest)
			ctx.RaiseNavFailure(entity, travel.Dest)
		case len(nodes) == 0:
			arrived = append(arrived, entity)
		default:
			adds = append(adds, pathAdd{entity: entity, nodes: nodes})
		}
	}

	for _, e := range arrived {
		s.travelMap.Remove(e)
	}
	for i, e := range failed {
		s.travelMap.Remove(e)
		ctx.Stats.RecordNavFailure()
		slog.Debug("no path to destination",
			"tick", ctx.Tick,
			"dest_x", dests[i].X,
			"dest_y", dests[i].Y,
		)
	}
	for _, a := range adds {
		s.pathMap.Add(a.entity, &components.Path{Nodes: a.nodes})
	}
}

// RecoverySystem drains the navigation failures raised earlier in the
// tick. A creature that was feeding loses the whole chain (action,
// precondition; travel and path are already gone) and is requeued to
// seek food. Failures unrelated to eating are left for the next
// planner pass.
type RecoverySystem struct {
	agendaMap  *ecs.Map[components.Agenda]
	precondMap *ecs.Map[components.Precondition]
}

// NewRecoverySystem creates the recovery handler.
func NewRecoverySystem(w *ecs.World) *RecoverySystem {
	return &RecoverySystem{
		agendaMap:  ecs.NewMap[components.Agenda](w),
		precondMap: ecs.NewMap[components.Precondition](w),
	}
}

// Update tears down feeding chains hit by a navigation failure.
func (s *RecoverySystem) Update(ctx *Context) {
	for _, fail := range ctx.DrainNavFailures() {
		e := fail.Creature
		if !ctx.World.Alive(e) || !s.agendaMap.Has(e) {
			continue
		}
		agenda := s.agendaMap.Get(e)
		if agenda.Kind != components.AgendaEat && !s.precondMap.Has(e) {
			continue
		}
		agenda.SetIntent(components.AgendaSeekFood)
		if s.precondMap.Has(e) {
			s.precondMap.Remove(e)
		}
	}
}
