// Package systems provides the simulation's tick-pipeline systems.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/oleksiy-korniychuk/guns-germs-steel/components"
)

// SpatialIndex provides O(1) tile-to-entities lookups. It is rebuilt
// from scratch at the start of every tick, so within a tick it
// reflects positions as of the tick boundary; systems that mutate
// positions mid-tick re-verify against live components.
type SpatialIndex struct {
	width  int
	height int
	cells  [][]ecs.Entity // flat grid of entity lists, row-major
}

// NewSpatialIndex creates an index covering a width x height grid.
func NewSpatialIndex(width, height int) *SpatialIndex {
	cells := make([][]ecs.Entity, width*height)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 4)
	}
	return &SpatialIndex{width: width, height: height, cells: cells}
}

// Clear removes all entities, keeping bucket capacity.
func (s *SpatialIndex) Clear() {
	for i := range s.cells {
		s.cells[i] = s.cells[i][:0]
	}
}

// Insert records e at tile p. Out-of-bounds positions are dropped.
func (s *SpatialIndex) Insert(e ecs.Entity, p components.Position) {
	if p.X < 0 || p.X >= s.width || p.Y < 0 || p.Y >= s.height {
		return
	}
	idx := p.Y*s.width + p.X
	s.cells[idx] = append(s.cells[idx], e)
}

// At returns the entities recorded on tile (x, y) in insertion order.
// Out-of-bounds tiles return nil. The slice is owned by the index;
// callers must not retain it past the current tick.
func (s *SpatialIndex) At(x, y int) []ecs.Entity {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return nil
	}
	return s.cells[y*s.width+x]
}

// SpatialSystem rebuilds the spatial index each tick from every
// positioned entity. It runs first in the pipeline.
type SpatialSystem struct {
	filter ecs.Filter1[components.Position]
}

// NewSpatialSystem creates the system for the given world.
func NewSpatialSystem(w *ecs.World) *SpatialSystem {
	return &SpatialSystem{
		filter: *ecs.NewFilter1[components.Position](w),
	}
}

// Update clears and refills ctx.Index.
func (s *SpatialSystem) Update(ctx *Context) {
	ctx.Index.Clear()
	query := s.filter.Query()
	for query.Next() {
		pos := query.Get()
		ctx.Index.Insert(query.Entity(), *pos)
	}
}
