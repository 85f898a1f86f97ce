// Package worldgen builds terrain grids from coherent noise.
package worldgen

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/oleksiy-korniychuk/guns-germs-steel/config"
	"github.com/oleksiy-korniychuk/guns-germs-steel/systems"
)

// Generate fills a terrain grid from simplex noise. The same seed and
// parameters always produce the same grid.
//
// Noise below the water level becomes water, graded by depth so that
// shallow fringes stay crossable while deep water exceeds the
// pathfinder's cost cap. Noise above the dirt level becomes dirt with
// a move cost scaled across the configured band. Everything between
// is open ground.
func Generate(cfg config.TerrainConfig, width, height int, seed int64) *systems.TerrainGrid {
	grid := systems.NewTerrainGrid(width, height)
	noise := opensimplex.New(seed)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := noise.Eval2(float64(x)*cfg.NoiseScale, float64(y)*cfg.NoiseScale)
			switch {
			case v < cfg.WaterLevel:
				grid.Set(x, y, systems.Tile{Kind: systems.TileWater, MoveCost: waterCost(v, cfg.WaterLevel)})
			case v > cfg.DirtLevel:
				grid.Set(x, y, systems.Tile{Kind: systems.TileDirt, MoveCost: dirtCost(v, cfg)})
			}
		}
	}
	return grid
}

// waterCost grades water by depth below the water level. Noise values
// run down to -1, so depth normalizes to (0, 1].
func waterCost(v, waterLevel float64) int {
	depth := (waterLevel - v) / (waterLevel + 1.0)
	cost := 1 + int(depth*4.0)
	if cost < 1 {
		cost = 1
	}
	return cost
}

// dirtCost maps the noise range above the dirt level onto the
// configured cost band.
func dirtCost(v float64, cfg config.TerrainConfig) int {
	span := cfg.DirtCostMax - cfg.DirtCostMin
	if span <= 0 {
		return cfg.DirtCostMin
	}
	t := (v - cfg.DirtLevel) / (1.0 - cfg.DirtLevel)
	cost := cfg.DirtCostMin + int(t*float64(span+1))
	if cost > cfg.DirtCostMax {
		cost = cfg.DirtCostMax
	}
	return cost
}
