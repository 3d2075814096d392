package grid

import "math"

const (
	terrainOctaves = 4
	terrainScale   = 0.1
	waterScale     = 0.13

	// Noise buckets for the primary terrain channel.
	grassCeiling = 0.45
	dirtCeiling  = 0.62

	// Water is carved from a second channel, but only where the primary
	// channel is low. That keeps lakes out of stone biomes.
	waterThreshold = 0.66

	// Grass tiles near the map center become a packed path so structures
	// cluster around a village green.
	centerPathRadius = 3.0
)

// Grid is a fixed-size rectangular field of tiles generated from a seed.
type Grid struct {
	width  int
	height int
	tiles  []Tile
}

// Generate builds a grid deterministically from its dimensions and seed.
func Generate(width, height int, seed int64) *Grid {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	g := &Grid{
		width:  width,
		height: height,
		tiles:  make([]Tile, width*height),
	}

	centerX := float64(width) / 2
	centerZ := float64(height) / 2

	for z := 0; z < height; z++ {
		for x := 0; x < width; x++ {
			primary := fractalNoise(float64(x)*terrainScale, float64(z)*terrainScale, seed, terrainOctaves)
			kind := TerrainStone
			switch {
			case primary < grassCeiling:
				kind = TerrainGrass
			case primary < dirtCeiling:
				kind = TerrainDirt
			}

			if primary < grassCeiling {
				water := fractalNoise(float64(x)*waterScale, float64(z)*waterScale, seed+101, terrainOctaves)
				if water > waterThreshold {
					kind = TerrainWater
				}
			}

			if kind == TerrainGrass {
				dx := float64(x) + 0.5 - centerX
				dz := float64(z) + 0.5 - centerZ
				if math.Hypot(dx, dz) <= centerPathRadius {
					kind = TerrainPath
				}
			}

			g.tiles[z*width+x] = Tile{
				X:        x,
				Z:        z,
				Kind:     kind,
				Walkable: kind != TerrainWater,
			}
		}
	}
	return g
}

// Width returns the grid width in cells.
func (g *Grid) Width() int {
	if g == nil {
		return 0
	}
	return g.width
}

// Height returns the grid height in cells.
func (g *Grid) Height() int {
	if g == nil {
		return 0
	}
	return g.height
}

// InBounds reports whether the cell coordinate lies inside the grid.
func (g *Grid) InBounds(x, z int) bool {
	return g != nil && x >= 0 && z >= 0 && x < g.width && z < g.height
}

// Tile returns the tile at (x, z). The second return is false outside bounds;
// callers treat absence as non-walkable.
func (g *Grid) Tile(x, z int) (Tile, bool) {
	if !g.InBounds(x, z) {
		return Tile{}, false
	}
	return g.tiles[z*g.width+x], true
}

// Walkable reports whether the cell exists and can be traversed.
func (g *Grid) Walkable(x, z int) bool {
	if !g.InBounds(x, z) {
		return false
	}
	return g.tiles[z*g.width+x].Walkable
}

// SetTile edits a single cell in place, used for structure placement. It
// reports whether the edit landed inside bounds.
func (g *Grid) SetTile(x, z int, kind TerrainKind, walkable bool) bool {
	if !g.InBounds(x, z) {
		return false
	}
	g.tiles[z*g.width+x] = Tile{X: x, Z: z, Kind: kind, Walkable: walkable}
	return true
}

// Tiles copies every tile into a broadcast-friendly slice, row-major.
func (g *Grid) Tiles() []Tile {
	if g == nil {
		return nil
	}
	copied := make([]Tile, len(g.tiles))
	copy(copied, g.tiles)
	return copied
}
