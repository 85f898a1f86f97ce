package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/stat"

	"github.com/oleksiy-korniychuk/guns-germs-steel/components"
)

// BandMode selects how the territory center is maintained.
type BandMode uint8

const (
	BandAuto   BandMode = iota // mean of creature positions, every tick
	BandPinned                 // fixed until unpinned
)

// BandState holds the territory center and radius. Pinning suppresses
// the per-tick mean recomputation entirely until unpinned.
type BandState struct {
	Mode   BandMode
	Center components.Position
	Radius int
}

// Pin fixes the center at p.
func (b *BandState) Pin(p components.Position) {
	b.Mode = BandPinned
	b.Center = p
}

// Unpin resumes automatic center tracking on the next tick.
func (b *BandState) Unpin() {
	b.Mode = BandAuto
}

// RadiusSq returns the squared territory radius.
func (b *BandState) RadiusSq() int {
	return b.Radius * b.Radius
}

// Contains reports whether p lies within the territory.
func (b *BandState) Contains(p components.Position) bool {
	return p.DistSq(b.Center) <= b.RadiusSq()
}

// BandSystem keeps the population inside the territory. Each tick it
// recomputes the center (unless pinned), flags creatures that strayed
// outside and forces a recall travel on them, and releases creatures
// that made it back, requeuing an interrupted meal as a fresh
// seek-food intent.
type BandSystem struct {
	filter     ecs.Filter2[components.Position, components.Agenda]
	awayMap    *ecs.Map[components.AwayFromBand]
	travelMap  *ecs.Map[components.Travel]
	pathMap    *ecs.Map[components.Path]
	precondMap *ecs.Map[components.Precondition]
	xs, ys     []float64 // scratch for the mean
}

// NewBandSystem creates the coordinator.
func NewBandSystem(w *ecs.World) *BandSystem {
	return &BandSystem{
		filter:     *ecs.NewFilter2[components.Position, components.Agenda](w).With(ecs.C[components.Creature]()),
		awayMap:    ecs.NewMap[components.AwayFromBand](w),
		travelMap:  ecs.NewMap[components.Travel](w),
		pathMap:    ecs.NewMap[components.Path](w),
		precondMap: ecs.NewMap[components.Precondition](w),
	}
}

// Update recomputes the center and reconciles every creature's
// inside/outside state against it.
func (s *BandSystem) Update(ctx *Context) {
	if ctx.Band.Mode == BandAuto {
		s.recomputeCenter(ctx)
	}

	var toFlag, toRelease []ecs.Entity

	query := s.filter.Query()
	for query.Next() {
		pos, agenda := query.Get()
		entity := query.Entity()
		inside := ctx.Band.Contains(*pos)
		away := s.awayMap.Has(entity)

		switch {
		case !inside && !away:
			// A held intent yields to the forced recall; an
			// in-progress eat rides along and is resolved on
			// re-entry.
			if agenda.IsIntent() {
				agenda.Clear()
			}
			toFlag = append(toFlag, entity)
		case inside && away:
			if agenda.Kind == components.AgendaEat {
				agenda.SetIntent(components.AgendaSeekFood)
			}
			toRelease = append(toRelease, entity)
		}
	}

	for _, e := range toFlag {
		s.awayMap.Add(e, &components.AwayFromBand{})
		if s.pathMap.Has(e) {
			s.pathMap.Remove(e)
		}
		if s.travelMap.Has(e) {
			s.travelMap.Get(e).Dest = ctx.Band.Center
		} else {
			s.travelMap.Add(e, &components.Travel{Dest: ctx.Band.Center})
		}
	}
	for _, e := range toRelease {
		s.awayMap.Remove(e)
		if s.travelMap.Has(e) {
			s.travelMap.Remove(e)
		}
		if s.pathMap.Has(e) {
			s.pathMap.Remove(e)
		}
		if s.precondMap.Has(e) {
			s.precondMap.Remove(e)
		}
	}
}

// recomputeCenter sets the center to the rounded mean of creature
// positions. With no creatures the previous center stands.
func (s *BandSystem) recomputeCenter(ctx *Context) {
	s.xs = s.xs[:0]
	s.ys = s.ys[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, _ := query.Get()
		s.xs = append(s.xs, float64(pos.X))
		s.ys = append(s.ys, float64(pos.Y))
	}
	if len(s.xs) == 0 {
		return
	}
	ctx.Band.Center = components.Position{
		X: int(math.Round(stat.Mean(s.xs, nil))),
		Y: int(math.Round(stat.Mean(s.ys, nil))),
	}
}
