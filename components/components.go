// Package components defines ECS components for the simulation.
package components

// Position is an entity's tile coordinate on the grid.
type Position struct {
	X, Y int
}

// Manhattan returns the Manhattan distance to other.
func (p Position) Manhattan(other Position) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// DistSq returns the squared Euclidean distance to other.
func (p Position) DistSq(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// Adjacent reports whether other is exactly one orthogonal step away.
func (p Position) Adjacent(other Position) bool {
	return p.Manhattan(other) == 1
}

// Calories is a vital pool. Current may dip below zero within a tick;
// the vitals pass destroys any holder at or below zero at tick end.
type Calories struct {
	Current int
	Max     int
}

// Ratio returns Current/Max, or 0 for an empty pool.
func (c Calories) Ratio() float64 {
	if c.Max <= 0 {
		return 0
	}
	return float64(c.Current) / float64(c.Max)
}

// Creature tags an entity as a creature and carries its stable
// external identifier (used by inspection, never recycled).
type Creature struct {
	ID uint64
}

// PlantKind identifies a plant species.
type PlantKind uint8

const (
	PlantCerealGrass PlantKind = iota
)

func (k PlantKind) String() string {
	switch k {
	case PlantCerealGrass:
		return "cereal_grass"
	default:
		return "unknown"
	}
}

// Plant tags an entity as a plant.
type Plant struct {
	Kind PlantKind
}

// FoodSource marks an entity as granting calories when consumed.
type FoodSource struct {
	Nutrition int
}

// Harvestable marks a food source as ready to be gathered.
type Harvestable struct{}

// Edible marks a food source as safe to consume.
type Edible struct{}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
