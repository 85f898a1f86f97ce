package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/oleksiy-korniychuk/guns-germs-steel/components"
	"github.com/oleksiy-korniychuk/guns-germs-steel/telemetry"
)

// Context is the shared simulation state passed by reference to every
// system each tick. Nothing in the pipeline reaches for globals; all
// cross-system state lives here.
type Context struct {
	World   *ecs.World
	Terrain *TerrainGrid
	Index   *SpatialIndex
	Band    *BandState
	Rand    *rand.Rand
	Stats   *telemetry.Collector

	// Tick is the current tick number, monotonically increasing,
	// never reset.
	Tick int64

	// moved holds creatures that advanced along a path this tick.
	// Written by movement, read by the eat executor, cleared at the
	// start of each tick.
	moved map[ecs.Entity]struct{}

	// navFails holds navigation failures raised by pathfinding this
	// tick, drained by recovery in the same tick.
	navFails []NavFailure

	nextID uint64
}

// NavFailure signals that no path could be produced for a creature's
// travel destination.
type NavFailure struct {
	Creature ecs.Entity
	Dest     components.Position
}

// NewContext assembles the shared state for a simulation run.
func NewContext(w *ecs.World, terrain *TerrainGrid, band *BandState, rng *rand.Rand, stats *telemetry.Collector) *Context {
	return &Context{
		World:   w,
		Terrain: terrain,
		Index:   NewSpatialIndex(terrain.Width, terrain.Height),
		Band:    band,
		Rand:    rng,
		Stats:   stats,
		moved:   make(map[ecs.Entity]struct{}),
	}
}

// BeginTick resets tick-scoped state. The simulation calls it before
// running the pipeline.
func (c *Context) BeginTick() {
	for e := range c.moved {
		delete(c.moved, e)
	}
	c.navFails = c.navFails[:0]
}

// MarkMoved records that e advanced along its path this tick.
func (c *Context) MarkMoved(e ecs.Entity) {
	c.moved[e] = struct{}{}
}

// MovedThisTick reports whether e advanced along a path this tick.
func (c *Context) MovedThisTick(e ecs.Entity) bool {
	_, ok := c.moved[e]
	return ok
}

// RaiseNavFailure queues a navigation failure for recovery.
func (c *Context) RaiseNavFailure(e ecs.Entity, dest components.Position) {
	c.navFails = append(c.navFails, NavFailure{Creature: e, Dest: dest})
}

// DrainNavFailures returns and clears the queued failures.
func (c *Context) DrainNavFailures() []NavFailure {
	out := c.navFails
	c.navFails = nil
	return out
}

// NextCreatureID hands out stable creature identifiers, never reused.
func (c *Context) NextCreatureID() uint64 {
	c.nextID++
	return c.nextID
}
