package grid

// TerrainKind labels the surface material of a single tile.
type TerrainKind string

const (
	TerrainGrass TerrainKind = "grass"
	TerrainDirt  TerrainKind = "dirt"
	TerrainStone TerrainKind = "stone"
	TerrainWater TerrainKind = "water"
	TerrainPath  TerrainKind = "path"
)

// Tile is one cell of the world grid. Tiles are immutable once generated
// except through Grid.SetTile.
type Tile struct {
	X        int         `json:"x"`
	Z        int         `json:"z"`
	Kind     TerrainKind `json:"kind"`
	Walkable bool        `json:"walkable"`
}
