package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // PNG atlases are accepted alongside BMP

	"golang.org/x/image/bmp"
)

// TileSize is the edge length of a tile in pixels.
const TileSize = 16

var (
	// ErrDecode marks a malformed atlas bitmap or asset descriptor.
	ErrDecode = errors.New("decode error")
	// ErrTileIndex is returned for tile lookups outside the atlas.
	ErrTileIndex = errors.New("tile index out of range")
)

// Tile is a TileSize x TileSize block of pixels indexed [y][x].
type Tile [TileSize][TileSize]Color

// FillTile creates a tile filled with a single color.
func FillTile(c Color) Tile {
	var t Tile
	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			t[y][x] = c
		}
	}
	return t
}

// Atlas is the ordered, read-only set of tiles cut from one bitmap.
//
// Tiles are numbered row-major: tile (col, row) of the bitmap has index
// row*Columns()+col. Entity descriptors refer to tiles by this flat index.
type Atlas struct {
	tiles   []Tile
	columns int
}

// NewAtlas decodes a BMP or PNG bitmap and cuts it into tiles. Pure white
// pixels (255,255,255) become transparent, everything else is opaque.
func NewAtlas(data []byte) (*Atlas, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: atlas bitmap: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 || w%TileSize != 0 || h%TileSize != 0 {
		return nil, fmt.Errorf("%w: %s atlas is %dx%d, not a multiple of %d", ErrDecode, format, w, h, TileSize)
	}

	cols, rows := w/TileSize, h/TileSize
	a := &Atlas{
		tiles:   make([]Tile, 0, cols*rows),
		columns: cols,
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			var t Tile
			for y := 0; y < TileSize; y++ {
				for x := 0; x < TileSize; x++ {
					px := bounds.Min.X + col*TileSize + x
					py := bounds.Min.Y + row*TileSize + y
					t[y][x] = keyColor(img.At(px, py))
				}
			}
			a.tiles = append(a.tiles, t)
		}
	}
	return a, nil
}

// keyColor applies the white color-key rule.
func keyColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	r8, g8, b8 := int(r>>8), int(g>>8), int(b>>8)
	if r8 == 0xFF && g8 == 0xFF && b8 == 0xFF {
		return Color{R: r8, G: g8, B: b8, A: 0}
	}
	return Color{R: r8, G: g8, B: b8, A: 255}
}

// NewAtlasFromTiles builds an atlas directly from tiles, laid out in rows of
// columns tiles.
func NewAtlasFromTiles(tiles []Tile, columns int) *Atlas {
	cp := make([]Tile, len(tiles))
	copy(cp, tiles)
	if columns < 1 {
		columns = 1
	}
	return &Atlas{tiles: cp, columns: columns}
}

// Len returns the number of tiles.
func (a *Atlas) Len() int {
	return len(a.tiles)
}

// Columns returns how many tiles make up one row of the source bitmap.
func (a *Atlas) Columns() int {
	return a.columns
}

// Tile returns tile i.
func (a *Atlas) Tile(i int) (*Tile, error) {
	if i < 0 || i >= len(a.tiles) {
		return nil, fmt.Errorf("%w: %d (atlas has %d tiles)", ErrTileIndex, i, len(a.tiles))
	}
	return &a.tiles[i], nil
}

// EncodeAtlas lays tiles out row-major in rows of columns tiles and encodes
// the result as a 24-bit BMP. Transparent pixels are written as pure white so
// the bitmap decodes back to the same alpha. Unused trailing slots are white.
func EncodeAtlas(tiles []Tile, columns int) ([]byte, error) {
	if columns < 1 || len(tiles) == 0 {
		return nil, fmt.Errorf("encode atlas: need at least one tile and one column")
	}
	rows := (len(tiles) + columns - 1) / columns
	img := image.NewRGBA(image.Rect(0, 0, columns*TileSize, rows*TileSize))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}

	for i, t := range tiles {
		col, row := i%columns, i/columns
		for y := 0; y < TileSize; y++ {
			for x := 0; x < TileSize; x++ {
				p := t[y][x]
				c := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
				if p.Opaque() {
					c = color.RGBA{R: uint8(p.R), G: uint8(p.G), B: uint8(p.B), A: 0xFF}
				}
				img.SetRGBA(col*TileSize+x, row*TileSize+y, c)
			}
		}
	}

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode atlas: %w", err)
	}
	return buf.Bytes(), nil
}
