package systems

import (
	"testing"

	"github.com/oleksiy-korniychuk/guns-germs-steel/components"
)

func TestTerrainGrid_DefaultsToOpenGround(t *testing.T) {
	g := NewTerrainGrid(4, 3)

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			tile := g.At(x, y)
			if tile.Kind != TileOpen || tile.MoveCost != 1 {
				t.Fatalf("tile (%d,%d) = %+v, want open with unit cost", x, y, tile)
			}
		}
	}
}

func TestTerrainGrid_SetAndAt(t *testing.T) {
	g := NewTerrainGrid(4, 3)
	g.Set(2, 1, Tile{Kind: TileWater, MoveCost: 3})

	if got := g.At(2, 1); got.Kind != TileWater || got.MoveCost != 3 {
		t.Errorf("tile = %+v, want the written water tile", got)
	}
	g.Set(7, 7, Tile{Kind: TileDirt, MoveCost: 2})
	if got := g.At(7, 7); got != (Tile{}) {
		t.Errorf("out-of-bounds read = %+v, want zero tile", got)
	}
}

func TestTerrainGrid_Bounds(t *testing.T) {
	g := NewTerrainGrid(4, 3)

	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{3, 2, true},
		{-1, 0, false},
		{4, 0, false},
		{0, 3, false},
	}
	for _, tc := range cases {
		if got := g.InBounds(tc.x, tc.y); got != tc.want {
			t.Errorf("InBounds(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestTerrainGrid_Clamp(t *testing.T) {
	g := NewTerrainGrid(4, 3)

	cases := []struct {
		in, want components.Position
	}{
		{components.Position{X: 2, Y: 1}, components.Position{X: 2, Y: 1}},
		{components.Position{X: -5, Y: 1}, components.Position{X: 0, Y: 1}},
		{components.Position{X: 9, Y: 9}, components.Position{X: 3, Y: 2}},
		{components.Position{X: 1, Y: -1}, components.Position{X: 1, Y: 0}},
	}
	for _, tc := range cases {
		if got := g.Clamp(tc.in); got != tc.want {
			t.Errorf("Clamp(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
