package sim

import (
	"github.com/oleksiy-korniychuk/guns-germs-steel/components"
	"github.com/oleksiy-korniychuk/guns-germs-steel/config"
)

// CreatureInfo is a read-only snapshot of one creature for selection
// and inspection surfaces.
type CreatureInfo struct {
	ID       uint64
	Pos      components.Position
	Calories components.Calories
	Agenda   components.AgendaKind
	Pregnant bool
	Recalled bool
}

// CreaturesAt returns snapshots of every creature standing on p, in
// spatial-index order. The slice is nil when the tile is empty.
func (s *Simulation) CreaturesAt(p components.Position) []CreatureInfo {
	var out []CreatureInfo
	for _, e := range s.ctx.Index.At(p.X, p.Y) {
		if !s.creatureMap.Has(e) {
			continue
		}
		out = append(out, CreatureInfo{
			ID:       s.creatureMap.Get(e).ID,
			Pos:      *s.posMap.Get(e),
			Calories: *s.calMap.Get(e),
			Agenda:   s.agendaMap.Get(e).Kind,
			Pregnant: s.pregMap.Has(e),
			Recalled: s.awayMap.Has(e),
		})
	}
	return out
}

// PathOf returns a copy of the remaining waypoints for the creature
// with the given ID, or nil if it has no path or does not exist.
func (s *Simulation) PathOf(id uint64) []components.Position {
	var nodes []components.Position

	query := s.creatureFilter.Query()
	for query.Next() {
		_, creature := query.Get()
		if creature.ID != id {
			continue
		}
		if s.pathMap.Has(query.Entity()) {
			nodes = s.pathMap.Get(query.Entity()).Nodes
		}
	}
	if nodes == nil {
		return nil
	}
	out := make([]components.Position, len(nodes))
	copy(out, nodes)
	return out
}

// PinBandCenter fixes the territory center at p until unpinned.
func (s *Simulation) PinBandCenter(p components.Position) {
	s.band.Pin(s.terrain.Clamp(p))
}

// UnpinBandCenter resumes automatic center tracking.
func (s *Simulation) UnpinBandCenter() {
	s.band.Unpin()
}

// BandCenter returns the current territory center.
func (s *Simulation) BandCenter() components.Position {
	return s.band.Center
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() int64 {
	return s.ctx.Tick
}

// Population counts the living creatures.
func (s *Simulation) Population() int {
	n := 0
	query := s.creatureFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// PlantCount counts the living plants.
func (s *Simulation) PlantCount() int {
	n := 0
	query := s.plantFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Seed returns the RNG seed the simulation was built with.
func (s *Simulation) Seed() int64 {
	return s.seed
}

// Config returns the effective configuration.
func (s *Simulation) Config() *config.Config {
	return s.cfg
}
