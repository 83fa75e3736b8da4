package game

import (
	"fmt"

	"mask-maze/internal/config"
	"mask-maze/internal/geom"
	"mask-maze/internal/maps"
	"mask-maze/internal/render"
)

// Level is one playable screen: the terrain, the player, the masks lying
// around and the treasure. Only actor positions and mask ownership change
// during play; a new Level is built for every transition.
type Level struct {
	Name     string
	Index    int
	Terrain  *Sprite
	Player   *Player
	Masks    []*Mask
	Treasure *Sprite

	tiles config.ActorTiles
}

// NewLevel builds a level from its two symbol grids. Every terrain symbol
// goes through the store, and every tile the level can draw must exist in
// the atlas. The item grid must place exactly one player and one treasure.
func NewLevel(data *maps.LevelData, store *maps.Store, atlas *render.Atlas, tiles config.ActorTiles) (*Level, error) {
	checkTile := func(what string, tile int) error {
		if tile < 0 || tile >= atlas.Len() {
			return fmt.Errorf("%w: level %q: %s uses tile %d, atlas has %d",
				maps.ErrDecode, data.Name, what, tile, atlas.Len())
		}
		return nil
	}

	cells := make([][]*maps.Entity, len(data.Terrain))
	for y, row := range data.Terrain {
		cells[y] = make([]*maps.Entity, len(row))
		for x, sym := range row {
			e, err := store.Resolve(sym)
			if err != nil {
				return nil, fmt.Errorf("level %q cell (%d,%d): %w", data.Name, x, y, err)
			}
			if err := checkTile(fmt.Sprintf("symbol %q", sym), e.TileIndex); err != nil {
				return nil, err
			}
			cells[y][x] = e
		}
	}

	lvl := &Level{
		Name:    data.Name,
		Terrain: NewSprite(geom.Vec{}, cells),
		tiles:   tiles,
	}

	if err := checkTile("player", tiles.Player); err != nil {
		return nil, err
	}
	if err := checkTile("treasure", tiles.Treasure); err != nil {
		return nil, err
	}
	for color, tile := range tiles.MaskedPlayer {
		if err := checkTile("masked player "+maps.ColorName(color), tile); err != nil {
			return nil, err
		}
	}

	for y, row := range data.Items {
		for x, sym := range row {
			pos := geom.V(x*render.TileSize, y*render.TileSize)
			item := maps.ItemFor(sym)
			switch item.Kind {
			case maps.ItemMask:
				tile, ok := tiles.Masks[item.Color]
				if !ok {
					return nil, fmt.Errorf("%w: level %q: no tile for %s mask",
						maps.ErrDecode, data.Name, maps.ColorName(item.Color))
				}
				if err := checkTile(maps.ColorName(item.Color)+" mask", tile); err != nil {
					return nil, err
				}
				lvl.Masks = append(lvl.Masks, &Mask{Sprite: NewActor(pos, tile), Color: item.Color})
			case maps.ItemPlayer:
				if lvl.Player != nil {
					return nil, fmt.Errorf("%w: level %q: second player start at (%d,%d)", maps.ErrDecode, data.Name, x, y)
				}
				lvl.Player = &Player{Sprite: NewActor(pos, tiles.Player)}
			case maps.ItemTreasure:
				if lvl.Treasure != nil {
					return nil, fmt.Errorf("%w: level %q: second treasure at (%d,%d)", maps.ErrDecode, data.Name, x, y)
				}
				lvl.Treasure = NewActor(pos, tiles.Treasure)
			}
		}
	}

	if lvl.Player == nil {
		return nil, fmt.Errorf("%w: level %q has no player start", maps.ErrDecode, data.Name)
	}
	if lvl.Treasure == nil {
		return nil, fmt.Errorf("%w: level %q has no treasure", maps.ErrDecode, data.Name)
	}
	return lvl, nil
}

// newMask creates a world mask of color c at pos. Colors without a mask tile
// fall back to the plain player tile so a dropped mask is never invisible.
func (l *Level) newMask(c int, pos geom.Vec) *Mask {
	tile, ok := l.tiles.Masks[c]
	if !ok {
		tile = l.tiles.Player
	}
	return &Mask{Sprite: NewActor(pos, tile), Color: c}
}

func (l *Level) updatePlayerTile() {
	tile := l.tiles.Player
	if l.Player.HasMask {
		if t, ok := l.tiles.MaskedPlayer[l.Player.MaskColor]; ok {
			tile = t
		}
	}
	l.Player.Sprite.SetTile(tile)
}

// Swap handles the mask action. A carried mask is dropped at the player's
// position first; then the first other mask the player overlaps is picked
// up. Doing both in one action swaps masks.
func (l *Level) Swap() {
	var dropped *Mask
	if c, ok := l.Player.DropMask(); ok {
		dropped = l.newMask(c, l.Player.Sprite.Pos)
		l.Masks = append(l.Masks, dropped)
	}

	for i, m := range l.Masks {
		if m == dropped {
			continue
		}
		if l.Player.Sprite.Overlaps(m.Sprite) {
			l.Player.TakeMask(m)
			l.Masks = append(l.Masks[:i], l.Masks[i+1:]...)
			break
		}
	}
	l.updatePlayerTile()
}

// TryMove moves the player by d if the terrain allows it and reports
// whether the player moved. A blocked move is dropped. The player can never
// leave the terrain rectangle.
func (l *Level) TryMove(d geom.Vec) bool {
	if d.IsZero() {
		return false
	}
	ps := l.Player.Sprite
	next := geom.NewRect(ps.Pos.Add(d), ps.Extent())
	tb := l.Terrain.Bounds()
	if next.X < tb.X || next.Y < tb.Y || next.Right() > tb.Right() || next.Bottom() > tb.Bottom() {
		return false
	}

	hits := Collide(l.Terrain, ps.Pos, ps.Extent(), d)
	if !Permits(hits, l.Player.HasMask, l.Player.MaskColor) {
		return false
	}
	ps.Pos = ps.Pos.Add(d)
	return true
}

// ReachedGoal reports whether the player touches the treasure.
func (l *Level) ReachedGoal() bool {
	return l.Player.Sprite.Overlaps(l.Treasure)
}

// Draw clears canvas and paints the level back to front: terrain, masks,
// treasure, player.
func (l *Level) Draw(atlas *render.Atlas, canvas *render.Canvas, clear render.Color) {
	canvas.Clear(clear)
	l.Terrain.Composite(atlas, canvas)
	for _, m := range l.Masks {
		m.Sprite.Composite(atlas, canvas)
	}
	l.Treasure.Composite(atlas, canvas)
	l.Player.Sprite.Composite(atlas, canvas)
}
