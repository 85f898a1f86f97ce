package systems

import (
	"testing"

	"github.com/oleksiy-korniychuk/guns-germs-steel/components"
)

func TestMovementSystem_OneWaypointPerTick(t *testing.T) {
	tw := newTestWorld(10, 10)
	e := tw.spawnCreature(0, 0, 50, 100)
	tw.travel.Add(e, &components.Travel{Dest: components.Position{X: 2, Y: 0}})
	tw.path.Add(e, &components.Path{Nodes: []components.Position{{X: 1, Y: 0}, {X: 2, Y: 0}}})
	movement := NewMovementSystem(tw.world, MovementParams{MoveCost: 1})

	tw.refresh()
	movement.Update(tw.ctx)

	if got := *tw.pos.Get(e); got != (components.Position{X: 1, Y: 0}) {
		t.Errorf("position = %v, want (1,0) after one step", got)
	}
	if got := tw.cal.Get(e).Current; got != 49 {
		t.Errorf("calories = %d, want 49", got)
	}
	if !tw.ctx.MovedThisTick(e) {
		t.Error("mover should be marked for the settle rule")
	}
	if !tw.path.Has(e) || !tw.travel.Has(e) {
		t.Error("path and travel must persist while waypoints remain")
	}

	tw.refresh()
	movement.Update(tw.ctx)

	if got := *tw.pos.Get(e); got != (components.Position{X: 2, Y: 0}) {
		t.Errorf("position = %v, want (2,0) after two steps", got)
	}
	if tw.path.Has(e) || tw.travel.Has(e) {
		t.Error("path and travel should clear on arrival")
	}
}

func TestMovementSystem_FinalStepClearsSameTick(t *testing.T) {
	tw := newTestWorld(10, 10)
	e := tw.spawnCreature(4, 4, 50, 100)
	tw.travel.Add(e, &components.Travel{Dest: components.Position{X: 4, Y: 5}})
	tw.path.Add(e, &components.Path{Nodes: []components.Position{{X: 4, Y: 5}}})
	movement := NewMovementSystem(tw.world, MovementParams{MoveCost: 2})

	tw.refresh()
	movement.Update(tw.ctx)

	if got := *tw.pos.Get(e); got != (components.Position{X: 4, Y: 5}) {
		t.Errorf("position = %v, want (4,5)", got)
	}
	if got := tw.cal.Get(e).Current; got != 48 {
		t.Errorf("calories = %d, want 48 with move cost 2", got)
	}
	if tw.path.Has(e) || tw.travel.Has(e) {
		t.Error("single-step path should clear within the tick")
	}
}

func TestMovementSystem_EmptyPathCleansUpWithoutMoving(t *testing.T) {
	tw := newTestWorld(10, 10)
	e := tw.spawnCreature(4, 4, 50, 100)
	tw.travel.Add(e, &components.Travel{Dest: components.Position{X: 4, Y: 4}})
	tw.path.Add(e, &components.Path{Nodes: []components.Position{}})
	movement := NewMovementSystem(tw.world, MovementParams{MoveCost: 1})

	tw.refresh()
	movement.Update(tw.ctx)

	if got := *tw.pos.Get(e); got != (components.Position{X: 4, Y: 4}) {
		t.Errorf("position = %v, want unchanged", got)
	}
	if got := tw.cal.Get(e).Current; got != 50 {
		t.Errorf("calories = %d, want 50; empty paths are free", got)
	}
	if tw.ctx.MovedThisTick(e) {
		t.Error("no step taken, mover must not be marked")
	}
	if tw.path.Has(e) || tw.travel.Has(e) {
		t.Error("empty path should clear path and travel")
	}
}

func TestMovementSystem_PathWithoutTravel(t *testing.T) {
	tw := newTestWorld(10, 10)
	e := tw.spawnCreature(0, 0, 50, 100)
	tw.path.Add(e, &components.Path{Nodes: []components.Position{{X: 0, Y: 1}}})
	movement := NewMovementSystem(tw.world, MovementParams{MoveCost: 1})

	tw.refresh()
	movement.Update(tw.ctx)

	if got := *tw.pos.Get(e); got != (components.Position{X: 0, Y: 1}) {
		t.Errorf("position = %v, want (0,1)", got)
	}
	if tw.path.Has(e) {
		t.Error("drained path should be removed even with no travel attached")
	}
}
