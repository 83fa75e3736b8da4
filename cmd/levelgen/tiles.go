package main

import (
	"mask-maze/internal/maps"
	"mask-maze/internal/render"
)

// Atlas layout written with -atlas. The actor slots match config.NewDefault.
const (
	tileFloor     = 0
	tileWall      = 1
	tileDoorFirst = 2 // one door per mask color, red..yellow
	tileDualDoor  = 6 // opened by red or blue
	tileRock      = 7
	tilePlayer    = 8
	tileMaskedMin = 9  // masked player, one per color
	tileMaskMin   = 13 // world mask, one per color
	tileTreasure  = 17
	tileCount     = 18

	atlasColumns = 6
)

var maskColors = []int{maps.ColorRed, maps.ColorGreen, maps.ColorBlue, maps.ColorYellow}

var palette = map[int]render.Color{
	maps.ColorRed:    render.RGB(210, 50, 40),
	maps.ColorGreen:  render.RGB(60, 190, 70),
	maps.ColorBlue:   render.RGB(60, 100, 220),
	maps.ColorYellow: render.RGB(225, 195, 40),
}

// doorSymbols are the terrain symbols of the single-color doors.
var doorSymbols = map[int]byte{
	maps.ColorRed:    'r',
	maps.ColorGreen:  'g',
	maps.ColorBlue:   'b',
	maps.ColorYellow: 'y',
}

// entities returns the descriptors the generator's levels use.
func entities() []*maps.Entity {
	list := []*maps.Entity{
		maps.NewEntity('.', tileFloor, false),
		maps.NewEntity('#', tileWall, true),
		maps.NewEntity('%', tileRock, true),
		maps.NewEntity('+', tileDualDoor, true, maps.ColorRed, maps.ColorBlue),
	}
	for _, c := range maskColors {
		list = append(list, maps.NewEntity(doorSymbols[c], tileDoorFirst+c, true, c))
	}
	return list
}

func shade(c render.Color, d int) render.Color {
	clamp := func(v int) int { return min(max(v, 0), 254) }
	return render.RGB(clamp(c.R+d), clamp(c.G+d), clamp(c.B+d))
}

func paint(f func(x, y int) render.Color) render.Tile {
	var t render.Tile
	for y := 0; y < render.TileSize; y++ {
		for x := 0; x < render.TileSize; x++ {
			t[y][x] = f(x, y)
		}
	}
	return t
}

// inDisc reports whether pixel (x, y) lies within r of the tile centre.
func inDisc(x, y int, r float64) bool {
	dx, dy := float64(x)-7.5, float64(y)-7.5
	return dx*dx+dy*dy <= r*r
}

func floorTile() render.Tile {
	base := render.RGB(38, 38, 46)
	return paint(func(x, y int) render.Color {
		if x == 0 || y == 0 {
			return shade(base, 8)
		}
		return base
	})
}

func wallTile() render.Tile {
	brick, mortar := render.RGB(125, 70, 50), render.RGB(85, 80, 78)
	return paint(func(x, y int) render.Color {
		offset := (y / 8) * 8
		if y%8 == 7 || (x+offset)%16 == 15 {
			return mortar
		}
		return brick
	})
}

func rockTile() render.Tile {
	base := render.RGB(100, 100, 112)
	return paint(func(x, y int) render.Color {
		if (x*7+y*13)%5 == 0 {
			return shade(base, -25)
		}
		return base
	})
}

func doorTile(left, right render.Color) render.Tile {
	return paint(func(x, y int) render.Color {
		c := left
		if x >= render.TileSize/2 {
			c = right
		}
		if x%4 == 1 {
			return shade(c, 40)
		}
		if y == 0 || y == render.TileSize-1 {
			return shade(c, -50)
		}
		return shade(c, -20)
	})
}

func playerTile(band render.Color) render.Tile {
	face, eye := render.RGB(240, 215, 130), render.RGB(30, 30, 30)
	return paint(func(x, y int) render.Color {
		if !inDisc(x, y, 6.5) {
			return render.Transparent()
		}
		if band.Opaque() && y >= 5 && y <= 7 {
			if (x == 5 || x == 10) && y == 6 {
				return eye
			}
			return band
		}
		if (x == 5 || x == 10) && y == 6 {
			return eye
		}
		if y == 10 && x >= 6 && x <= 9 {
			return shade(face, -80)
		}
		return face
	})
}

func maskTile(c render.Color) render.Tile {
	return paint(func(x, y int) render.Color {
		dx, dy := float64(x)-7.5, float64(y)-7.5
		if dx*dx/36+dy*dy/12 > 1 {
			return render.Transparent()
		}
		if (x == 5 || x == 10) && (y == 7 || y == 8) {
			return render.RGB(20, 20, 20)
		}
		return c
	})
}

func treasureTile() render.Tile {
	wood, gold := render.RGB(150, 90, 30), render.RGB(240, 200, 40)
	return paint(func(x, y int) render.Color {
		if x < 2 || x > 13 || y < 4 || y > 13 {
			return render.Transparent()
		}
		if y == 7 || (x >= 7 && x <= 8 && y >= 7 && y <= 9) {
			return gold
		}
		if x == 2 || x == 13 || y == 4 || y == 13 {
			return shade(wood, -40)
		}
		return wood
	})
}

// atlasTiles returns the placeholder art in atlas order.
func atlasTiles() []render.Tile {
	tiles := make([]render.Tile, tileCount)
	tiles[tileFloor] = floorTile()
	tiles[tileWall] = wallTile()
	tiles[tileDualDoor] = doorTile(palette[maps.ColorRed], palette[maps.ColorBlue])
	tiles[tileRock] = rockTile()
	tiles[tilePlayer] = playerTile(render.Transparent())
	tiles[tileTreasure] = treasureTile()
	for _, c := range maskColors {
		tiles[tileDoorFirst+c] = doorTile(palette[c], palette[c])
		tiles[tileMaskedMin+c] = playerTile(palette[c])
		tiles[tileMaskMin+c] = maskTile(palette[c])
	}
	return tiles
}
