package grid

import "testing"

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate(24, 24, 7)
	b := Generate(24, 24, 7)
	for z := 0; z < 24; z++ {
		for x := 0; x < 24; x++ {
			ta, _ := a.Tile(x, z)
			tb, _ := b.Tile(x, z)
			if ta != tb {
				t.Fatalf("tile (%d,%d) differs between identical seeds: %+v vs %+v", x, z, ta, tb)
			}
		}
	}

	c := Generate(24, 24, 8)
	same := 0
	for z := 0; z < 24; z++ {
		for x := 0; x < 24; x++ {
			ta, _ := a.Tile(x, z)
			tc, _ := c.Tile(x, z)
			if ta.Kind == tc.Kind {
				same++
			}
		}
	}
	if same == 24*24 {
		t.Fatal("different seeds produced identical terrain")
	}
}

func TestTileOutOfBoundsReturnsNone(t *testing.T) {
	g := Generate(10, 10, 1)
	cases := [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 10}, {-5, -5}, {100, 100}}
	for _, c := range cases {
		if _, ok := g.Tile(c[0], c[1]); ok {
			t.Fatalf("expected no tile at (%d,%d)", c[0], c[1])
		}
		if g.Walkable(c[0], c[1]) {
			t.Fatalf("out-of-bounds cell (%d,%d) reported walkable", c[0], c[1])
		}
	}
}

func TestWaterIsNotWalkable(t *testing.T) {
	g := Generate(64, 64, 3)
	for z := 0; z < 64; z++ {
		for x := 0; x < 64; x++ {
			tile, _ := g.Tile(x, z)
			if tile.Kind == TerrainWater && tile.Walkable {
				t.Fatalf("water tile (%d,%d) is walkable", x, z)
			}
			if tile.Kind != TerrainWater && !tile.Walkable {
				t.Fatalf("%s tile (%d,%d) is not walkable", tile.Kind, x, z)
			}
		}
	}
}

func TestWaterOnlyCarvedFromLowTerrain(t *testing.T) {
	g := Generate(64, 64, 5)
	for z := 0; z < 64; z++ {
		for x := 0; x < 64; x++ {
			tile, _ := g.Tile(x, z)
			if tile.Kind != TerrainWater {
				continue
			}
			primary := fractalNoise(float64(x)*terrainScale, float64(z)*terrainScale, 5, terrainOctaves)
			if primary >= grassCeiling {
				t.Fatalf("water carved into mid/high terrain at (%d,%d), primary=%.3f", x, z, primary)
			}
		}
	}
}

func TestSetTileEditsInPlace(t *testing.T) {
	g := Generate(10, 10, 1)
	if !g.SetTile(4, 4, TerrainStone, false) {
		t.Fatal("in-bounds edit rejected")
	}
	tile, ok := g.Tile(4, 4)
	if !ok || tile.Kind != TerrainStone || tile.Walkable {
		t.Fatalf("edit did not stick: %+v", tile)
	}
	if g.SetTile(-1, 4, TerrainStone, false) {
		t.Fatal("out-of-bounds edit accepted")
	}
}

func TestTilesSnapshotIsACopy(t *testing.T) {
	g := Generate(6, 6, 2)
	before, _ := g.Tile(0, 0)
	tiles := g.Tiles()
	if len(tiles) != 36 {
		t.Fatalf("expected 36 tiles, got %d", len(tiles))
	}
	tiles[0] = Tile{X: 0, Z: 0, Kind: TerrainStone, Walkable: false}
	after, _ := g.Tile(0, 0)
	if before != after {
		t.Fatal("snapshot mutation leaked into the grid")
	}
}
