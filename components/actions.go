package components

// Travel is the subordinate movement action: walk to Dest. It stands
// alone for wandering (Agenda empty) and coexists with an eat action
// when precondition enforcement is steering the creature to its meal.
type Travel struct {
	Dest Position
}

// Path holds the remaining waypoints toward a travel destination,
// consumed front-first, one per tick.
type Path struct {
	Nodes []Position
}

// Precondition is a positional requirement attached alongside an eat
// action: the holder must be within Radius (Manhattan) of Pos before
// the action can execute.
type Precondition struct {
	Pos    Position
	Radius int
}

// Met reports whether p satisfies the requirement from at.
func (p Precondition) Met(at Position) bool {
	return at.Manhattan(p.Pos) <= p.Radius
}

// Pregnancy is a timed gestation; Progress advances once per tick and
// a child spawns when it reaches Duration.
type Pregnancy struct {
	Progress int
	Duration int
}

// AwayFromBand flags a creature outside the band territory that is
// being recalled; removed on re-entry.
type AwayFromBand struct{}
