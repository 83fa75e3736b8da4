package game

import (
	"bytes"
	"testing"
	"testing/fstest"

	"mask-maze/internal/assets"
	"mask-maze/internal/config"
	"mask-maze/internal/geom"
	"mask-maze/internal/maps"
	"mask-maze/internal/render"
)

// Test atlas layout.
const (
	tileFloor = iota
	tileWall
	tileRedDoor
	tileBlueDoor
	tileClear // fully transparent
	tilePlayer
	tileRedMask
	tileBlueMask
	tileGreenMask
	tileTreasure
	tilePlayerRed
	tilePlayerBlue
	testTileCount
)

var testColors = map[int]render.Color{
	tileFloor:      render.RGB(40, 40, 40),
	tileWall:       render.RGB(90, 90, 90),
	tileRedDoor:    render.RGB(200, 0, 0),
	tileBlueDoor:   render.RGB(0, 0, 200),
	tilePlayer:     render.RGB(250, 250, 0),
	tileRedMask:    render.RGB(255, 60, 60),
	tileBlueMask:   render.RGB(60, 60, 255),
	tileGreenMask:  render.RGB(60, 255, 60),
	tileTreasure:   render.RGB(255, 200, 0),
	tilePlayerRed:  render.RGB(250, 120, 0),
	tilePlayerBlue: render.RGB(120, 120, 250),
}

// testAtlas returns an atlas where every tile is a solid color, except
// tileClear which is fully transparent and the actor tiles whose outer ring
// is transparent.
func testAtlas() *render.Atlas {
	tiles := make([]render.Tile, testTileCount)
	for i := range tiles {
		c, ok := testColors[i]
		if !ok {
			tiles[i] = render.FillTile(render.Transparent())
			continue
		}
		tiles[i] = render.FillTile(c)
		if i >= tilePlayer {
			for k := 0; k < render.TileSize; k++ {
				tiles[i][0][k] = render.Transparent()
				tiles[i][k][0] = render.Transparent()
			}
		}
	}
	return render.NewAtlasFromTiles(tiles, 4)
}

func testActors() config.ActorTiles {
	return config.ActorTiles{
		Player: tilePlayer,
		MaskedPlayer: map[int]int{
			maps.ColorRed:  tilePlayerRed,
			maps.ColorBlue: tilePlayerBlue,
		},
		Masks: map[int]int{
			maps.ColorRed:   tileRedMask,
			maps.ColorGreen: tileGreenMask,
			maps.ColorBlue:  tileBlueMask,
		},
		Treasure: tileTreasure,
	}
}

var testEntities = map[string]string{
	"entities/..json": `{"tile_index": 0, "wall": false, "door_colors": []}`,
	"entities/#.json": `{"tile_index": 1, "wall": true, "door_colors": []}`,
	"entities/r.json": `{"tile_index": 2, "wall": true, "door_colors": [0]}`,
	"entities/b.json": `{"tile_index": 3, "wall": true, "door_colors": [2]}`,
	"entities/!.json": `{"tile_index": 99, "wall": true, "door_colors": []}`,
}

// grid builds a full-size symbol grid filled with fill, with marks placed
// at cell coordinates.
func grid(fill byte, marks map[[2]int]byte) []byte {
	rows := make([][]byte, maps.GridHeight)
	for y := range rows {
		rows[y] = bytes.Repeat([]byte{fill}, maps.GridWidth)
	}
	for pos, sym := range marks {
		rows[pos[1]][pos[0]] = sym
	}
	return maps.EncodeSymbols(rows)
}

// testLevel describes one level for testFS.
type testLevel struct {
	terrain map[[2]int]byte
	items   map[[2]int]byte
}

func testFS(levels map[string]testLevel) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range testEntities {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	for name, lvl := range levels {
		fsys["levels/"+maps.LevelFile(name)] = &fstest.MapFile{Data: grid('.', lvl.terrain)}
		fsys["levels/"+maps.ItemsFile(name)] = &fstest.MapFile{Data: grid('.', lvl.items)}
	}
	return fsys
}

func testWorld(t *testing.T, names []string, levels map[string]testLevel) *World {
	t.Helper()
	cfg := config.NewDefault()
	cfg.Levels = names
	cfg.Speed = 2
	cfg.Actors = testActors()
	return NewWorldWithAtlas(assets.NewFSLoader(testFS(levels)), testAtlas(), cfg)
}

// terrainFrom builds a terrain sprite from short rows of symbols.
func terrainFrom(rows []string, legend map[byte]*maps.Entity) *Sprite {
	cells := make([][]*maps.Entity, len(rows))
	for y, row := range rows {
		cells[y] = make([]*maps.Entity, len(row))
		for x := 0; x < len(row); x++ {
			cells[y][x] = legend[row[x]]
		}
	}
	return NewSprite(geom.Vec{}, cells)
}

// sameCanvas reports whether both canvases have the same size and pixels.
func sameCanvas(a, b *render.Canvas) bool {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return false
	}
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			if a.At(x, y) != b.At(x, y) {
				return false
			}
		}
	}
	return true
}
