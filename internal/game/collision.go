package game

import (
	"mask-maze/internal/geom"
	"mask-maze/internal/maps"
	"mask-maze/internal/render"
)

// Collide returns the wall cells of terrain that a mover of the given pixel
// extent would overlap after moving from pos by d. An empty result means the
// move hits nothing. Cells outside the terrain are never walls.
func Collide(terrain *Sprite, pos, extent, d geom.Vec) []*maps.Entity {
	box := geom.NewRect(pos.Add(d), extent)
	if box.Empty() || terrain.CellsX() == 0 {
		return nil
	}

	local := geom.V(box.X, box.Y).Sub(terrain.Pos)
	firstX := geom.FloorDiv(local.X, render.TileSize)
	firstY := geom.FloorDiv(local.Y, render.TileSize)
	// Last covered cell plus one cell of trailing margin.
	lastX := geom.FloorDiv(local.X+box.W-1, render.TileSize) + 1
	lastY := geom.FloorDiv(local.Y+box.H-1, render.TileSize) + 1

	firstX, lastX = max(firstX, 0), min(lastX, terrain.CellsX()-1)
	firstY, lastY = max(firstY, 0), min(lastY, terrain.CellsY()-1)

	var hits []*maps.Entity
	for cy := firstY; cy <= lastY; cy++ {
		for cx := firstX; cx <= lastX; cx++ {
			e := terrain.CellAt(cx, cy)
			if e == nil || !e.Wall {
				continue
			}
			cell := geom.Rect{
				X: terrain.Pos.X + cx*render.TileSize,
				Y: terrain.Pos.Y + cy*render.TileSize,
				W: render.TileSize,
				H: render.TileSize,
			}
			if box.Intersects(cell) {
				hits = append(hits, e)
			}
		}
	}
	return hits
}

// Permits applies the door rule to a collision result: the move is allowed
// when nothing was hit, or when the mover carries a mask whose color opens
// every cell that was hit.
func Permits(hits []*maps.Entity, hasMask bool, color int) bool {
	if len(hits) == 0 {
		return true
	}
	if !hasMask {
		return false
	}
	for _, e := range hits {
		if !e.Opens(color) {
			return false
		}
	}
	return true
}
