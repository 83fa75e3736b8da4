package game

import (
	"mask-maze/internal/geom"
	"mask-maze/internal/maps"
	"mask-maze/internal/render"
)

// Sprite is a positioned rectangle of cells. The terrain is one large
// sprite; actors are 1x1 sprites. Cells are indexed [y][x].
type Sprite struct {
	Pos   geom.Vec
	Cells [][]*maps.Entity
}

// NewSprite creates a sprite over cells, which must be rectangular and
// non-empty.
func NewSprite(pos geom.Vec, cells [][]*maps.Entity) *Sprite {
	return &Sprite{Pos: pos, Cells: cells}
}

// NewActor creates a single-cell sprite drawing the given atlas tile.
func NewActor(pos geom.Vec, tile int) *Sprite {
	return &Sprite{
		Pos:   pos,
		Cells: [][]*maps.Entity{{maps.NewEntity(0, tile, false)}},
	}
}

// CellsX returns the width in cells.
func (s *Sprite) CellsX() int {
	if len(s.Cells) == 0 {
		return 0
	}
	return len(s.Cells[0])
}

// CellsY returns the height in cells.
func (s *Sprite) CellsY() int {
	return len(s.Cells)
}

// Width returns the width in pixels.
func (s *Sprite) Width() int {
	return s.CellsX() * render.TileSize
}

// Height returns the height in pixels.
func (s *Sprite) Height() int {
	return s.CellsY() * render.TileSize
}

// Extent returns (Width, Height) as a vector.
func (s *Sprite) Extent() geom.Vec {
	return geom.V(s.Width(), s.Height())
}

// Bounds returns the sprite's pixel rectangle.
func (s *Sprite) Bounds() geom.Rect {
	return geom.NewRect(s.Pos, s.Extent())
}

// Overlaps reports whether the two sprites' rectangles share a pixel.
func (s *Sprite) Overlaps(o *Sprite) bool {
	return s.Bounds().Intersects(o.Bounds())
}

// CellAt returns the entity at cell (cx, cy), or nil outside the sprite.
func (s *Sprite) CellAt(cx, cy int) *maps.Entity {
	if cy < 0 || cy >= len(s.Cells) || cx < 0 || cx >= len(s.Cells[cy]) {
		return nil
	}
	return s.Cells[cy][cx]
}

// SetTile changes the tile drawn by a single-cell actor.
func (s *Sprite) SetTile(tile int) {
	if e := s.CellAt(0, 0); e != nil && e.TileIndex != tile {
		s.Cells[0][0] = maps.NewEntity(e.Symbol, tile, e.Wall)
	}
}

// Composite paints the sprite onto canvas. Only opaque tile pixels are
// written; transparent pixels leave whatever is underneath. Cells whose tile
// is missing from the atlas are skipped.
func (s *Sprite) Composite(atlas *render.Atlas, canvas *render.Canvas) {
	for cy, row := range s.Cells {
		for cx, e := range row {
			if e == nil {
				continue
			}
			tile, err := atlas.Tile(e.TileIndex)
			if err != nil {
				continue
			}
			baseX := s.Pos.X + cx*render.TileSize
			baseY := s.Pos.Y + cy*render.TileSize
			for py := 0; py < render.TileSize; py++ {
				for px := 0; px < render.TileSize; px++ {
					c := tile[py][px]
					if !c.Opaque() {
						continue
					}
					canvas.Set(baseX+px, baseY+py, c)
				}
			}
		}
	}
}
