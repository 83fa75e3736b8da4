package main

import (
	"fmt"

	"mask-maze/internal/game"
	"mask-maze/internal/geom"
	"mask-maze/internal/maps"
	"mask-maze/internal/render"
)

// report collects the findings for one level.
type report struct {
	Errors   []string
	Warnings []string
}

func (r *report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func cellOf(s *game.Sprite) geom.Vec {
	return s.Pos.Div(render.TileSize)
}

// checkLevel runs every structural check on a loaded level.
func checkLevel(l *game.Level) *report {
	r := &report{}
	checkBorder(l, r)
	checkDoorColors(l, r)
	checkReachable(l, r)
	return r
}

// checkBorder requires the outer ring to be solid. A door on the border
// would let a masked player walk off the canvas.
func checkBorder(l *game.Level, r *report) {
	t := l.Terrain
	w, h := t.CellsX(), t.CellsY()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x != 0 && y != 0 && x != w-1 && y != h-1 {
				continue
			}
			e := t.CellAt(x, y)
			switch {
			case !e.Wall:
				r.errorf("border cell (%d,%d) %q is open", x, y, e.Symbol)
			case e.IsDoor():
				r.errorf("border cell (%d,%d) %q is a door", x, y, e.Symbol)
			}
		}
	}
}

// checkDoorColors warns about doors no mask in the level can open.
func checkDoorColors(l *game.Level, r *report) {
	have := make(map[int]bool)
	for _, m := range l.Masks {
		have[m.Color] = true
	}
	seen := make(map[byte]bool)
	for y, row := range l.Terrain.Cells {
		for x, e := range row {
			if !e.IsDoor() || seen[e.Symbol] {
				continue
			}
			seen[e.Symbol] = true
			usable := false
			for _, c := range e.Colors() {
				usable = usable || have[c]
			}
			if !usable {
				r.warnf("door %q first seen at (%d,%d) has no matching mask", e.Symbol, x, y)
			}
		}
	}
}

// floodFrom returns every cell reachable from start when walls are blocked
// unless open reports true for them.
func floodFrom(t *game.Sprite, start geom.Vec, open func(*maps.Entity) bool) map[geom.Vec]bool {
	seen := map[geom.Vec]bool{start: true}
	queue := []geom.Vec{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range []geom.Vec{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
			n := p.Add(d)
			e := t.CellAt(n.X, n.Y)
			if e == nil || seen[n] {
				continue
			}
			if e.Wall && !open(e) {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return seen
}

// checkReachable floods outward from the player start, widening the set of
// passable doors with the color of every mask reached, until nothing new
// opens. It is optimistic: the player can carry only one mask, so a level
// that passes may still need a particular order of swaps, but a level that
// fails cannot be finished.
func checkReachable(l *game.Level, r *report) {
	start := cellOf(l.Player.Sprite)
	if e := l.Terrain.CellAt(start.X, start.Y); e == nil || e.Wall {
		r.errorf("player start (%d,%d) is not on open floor", start.X, start.Y)
	}

	colors := make(map[int]bool)
	open := func(e *maps.Entity) bool {
		for _, c := range e.Colors() {
			if colors[c] {
				return true
			}
		}
		return false
	}

	var reached map[geom.Vec]bool
	for {
		reached = floodFrom(l.Terrain, start, open)
		grew := false
		for _, m := range l.Masks {
			if reached[cellOf(m.Sprite)] && !colors[m.Color] {
				colors[m.Color] = true
				grew = true
			}
		}
		if !grew {
			break
		}
	}

	goal := cellOf(l.Treasure)
	if !reached[goal] {
		r.errorf("treasure (%d,%d) is unreachable from the player start", goal.X, goal.Y)
	}
	for _, m := range l.Masks {
		if c := cellOf(m.Sprite); !reached[c] {
			r.warnf("%s mask (%d,%d) is unreachable", maps.ColorName(m.Color), c.X, c.Y)
		}
	}
}
