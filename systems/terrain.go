package systems

import (
	"github.com/oleksiy-korniychuk/guns-germs-steel/components"
)

// TileKind represents the type of terrain in a tile.
type TileKind uint8

const (
	TileOpen  TileKind = iota
	TileDirt           // Loose ground, slower to cross
	TileWater          // Shallow water is slow, deep water impassable
)

func (k TileKind) String() string {
	switch k {
	case TileOpen:
		return "open"
	case TileDirt:
		return "dirt"
	case TileWater:
		return "water"
	default:
		return "unknown"
	}
}

// Tile is one grid cell of terrain. MoveCost is the base cost of
// stepping onto the tile; the pathfinder scales and caps it by kind.
type Tile struct {
	Kind     TileKind
	MoveCost int
}

// TerrainGrid is the world's tile grid. The simulation treats it as
// opaque input: the generator (or a test fixture) fills it, nothing
// in the pipeline mutates it.
type TerrainGrid struct {
	Width  int
	Height int
	tiles  []Tile
}

// NewTerrainGrid allocates a width x height grid of open tiles with
// unit move cost.
func NewTerrainGrid(width, height int) *TerrainGrid {
	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = Tile{Kind: TileOpen, MoveCost: 1}
	}
	return &TerrainGrid{Width: width, Height: height, tiles: tiles}
}

// InBounds reports whether (x, y) lies on the grid.
func (g *TerrainGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at (x, y). Out-of-bounds coordinates return a
// zero-cost open tile; callers gate on InBounds first.
func (g *TerrainGrid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return Tile{}
	}
	return g.tiles[y*g.Width+x]
}

// Set replaces the tile at (x, y); out-of-bounds writes are ignored.
func (g *TerrainGrid) Set(x, y int, t Tile) {
	if !g.InBounds(x, y) {
		return
	}
	g.tiles[y*g.Width+x] = t
}

// Clamp snaps p to the nearest in-bounds coordinate.
func (g *TerrainGrid) Clamp(p components.Position) components.Position {
	if p.X < 0 {
		p.X = 0
	}
	if p.X >= g.Width {
		p.X = g.Width - 1
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y >= g.Height {
		p.Y = g.Height - 1
	}
	return p
}
