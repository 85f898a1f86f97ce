package systems

import (
	"container/heap"

	"github.com/oleksiy-korniychuk/guns-germs-steel/components"
)

// AStarPlanner computes 4-connected paths over the terrain grid with
// tile-dependent step costs. Water tiles cost MoveCost * WaterPenalty;
// any step cost above CostCap makes the tile impassable.
type AStarPlanner struct {
	terrain      *TerrainGrid
	openCost     int
	waterPenalty int
	costCap      int

	// Reusable data structures (cleared between searches)
	openHeap  *nodeHeap
	closedSet map[int]struct{}
	cameFrom  map[int]int
	gScore    map[int]int
	inOpen    map[int]struct{}
}

// astarNode is a node in the A* search.
type astarNode struct {
	x, y  int
	f     int // g + h (priority)
	index int // heap index
}

// nodeHeap implements heap.Interface for the A* open set.
type nodeHeap []*astarNode

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *nodeHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[0 : n-1]
	return node
}

// NewAStarPlanner creates a planner over terrain with the given cost
// model. openCost is the step cost for open tiles, waterPenalty the
// multiplier for water, costCap the threshold above which a tile is
// impassable.
func NewAStarPlanner(terrain *TerrainGrid, openCost, waterPenalty, costCap int) *AStarPlanner {
	return &AStarPlanner{
		terrain:      terrain,
		openCost:     openCost,
		waterPenalty: waterPenalty,
		costCap:      costCap,
		openHeap:     &nodeHeap{},
		closedSet:    make(map[int]struct{}, 256),
		cameFrom:     make(map[int]int, 256),
		gScore:       make(map[int]int, 256),
		inOpen:       make(map[int]struct{}, 256),
	}
}

// StepCost returns the cost of stepping onto (x, y), or -1 if the
// tile is impassable (out of bounds or over the cost cap).
func (a *AStarPlanner) StepCost(x, y int) int {
	if !a.terrain.InBounds(x, y) {
		return -1
	}
	t := a.terrain.At(x, y)
	var cost int
	switch t.Kind {
	case TileOpen:
		cost = a.openCost
	case TileDirt:
		cost = t.MoveCost
	case TileWater:
		cost = t.MoveCost * a.waterPenalty
	default:
		return -1
	}
	if cost > a.costCap {
		return -1
	}
	return cost
}

// FindPath computes the cheapest path from start to goal. The returned
// waypoints exclude the start tile; the first element is the first
// step. Returns an empty slice when start == goal and nil when no
// path exists. The cost of the start tile is never charged.
func (a *AStarPlanner) FindPath(start, goal components.Position) []components.Position {
	if !a.terrain.InBounds(start.X, start.Y) || !a.terrain.InBounds(goal.X, goal.Y) {
		return nil
	}
	if start == goal {
		return []components.Position{}
	}
	if a.StepCost(goal.X, goal.Y) < 0 {
		return nil
	}

	// Clear reusable data structures
	*a.openHeap = (*a.openHeap)[:0]
	for k := range a.closedSet {
		delete(a.closedSet, k)
	}
	for k := range a.cameFrom {
		delete(a.cameFrom, k)
	}
	for k := range a.gScore {
		delete(a.gScore, k)
	}
	for k := range a.inOpen {
		delete(a.inOpen, k)
	}

	w := a.terrain.Width
	startID := start.Y*w + start.X
	goalID := goal.Y*w + goal.X

	a.gScore[startID] = 0
	heap.Push(a.openHeap, &astarNode{x: start.X, y: start.Y, f: a.heuristic(start.X, start.Y, goal)})
	a.inOpen[startID] = struct{}{}

	maxIterations := a.terrain.Width * a.terrain.Height
	iterations := 0

	for a.openHeap.Len() > 0 && iterations < maxIterations {
		iterations++

		current := heap.Pop(a.openHeap).(*astarNode)
		currentID := current.y*w + current.x
		delete(a.inOpen, currentID)

		if currentID == goalID {
			return a.reconstructPath(startID, goalID)
		}

		a.closedSet[currentID] = struct{}{}

		neighbors := [4][2]int{
			{current.x, current.y - 1}, // N
			{current.x, current.y + 1}, // S
			{current.x - 1, current.y}, // W
			{current.x + 1, current.y}, // E
		}

		for _, n := range neighbors {
			nx, ny := n[0], n[1]

			stepCost := a.StepCost(nx, ny)
			if stepCost < 0 {
				continue
			}

			neighborID := ny*w + nx
			if _, ok := a.closedSet[neighborID]; ok {
				continue
			}

			tentativeG := a.gScore[currentID] + stepCost
			existingG, exists := a.gScore[neighborID]
			if exists && tentativeG >= existingG {
				continue
			}

			a.cameFrom[neighborID] = currentID
			a.gScore[neighborID] = tentativeG

			if _, open := a.inOpen[neighborID]; !open {
				heap.Push(a.openHeap, &astarNode{x: nx, y: ny, f: tentativeG + a.heuristic(nx, ny, goal)})
				a.inOpen[neighborID] = struct{}{}
			}
		}
	}

	return nil
}

// heuristic is the Manhattan distance scaled by the cheapest step
// cost, which keeps it admissible under the terrain cost model.
func (a *AStarPlanner) heuristic(x, y int, goal components.Position) int {
	return (abs(goal.X-x) + abs(goal.Y-y)) * a.openCost
}

// reconstructPath walks cameFrom back from the goal, dropping the
// start tile so the result begins with the first step.
func (a *AStarPlanner) reconstructPath(startID, goalID int) []components.Position {
	w := a.terrain.Width

	var pathIDs []int
	current := goalID
	for current != startID {
		pathIDs = append(pathIDs, current)
		var ok bool
		current, ok = a.cameFrom[current]
		if !ok {
			break
		}
	}

	path := make([]components.Position, len(pathIDs))
	for i := 0; i < len(pathIDs); i++ {
		id := pathIDs[len(pathIDs)-1-i]
		path[i] = components.Position{X: id % w, Y: id / w}
	}
	return path
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
