package maps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"mask-maze/internal/render"
)

// ErrDecode is render.ErrDecode, so every malformed-asset failure in the game
// matches one sentinel.
var ErrDecode = render.ErrDecode

// Entity is the semantic payload of one terrain cell. Cells with the same
// grid symbol share a single *Entity.
type Entity struct {
	Symbol     byte
	TileIndex  int
	Wall       bool
	DoorColors mapset.Set[int]
}

// NewEntity builds an entity; used by tests and generators.
func NewEntity(symbol byte, tile int, wall bool, doorColors ...int) *Entity {
	set := mapset.New[int]()
	for _, c := range doorColors {
		set.Put(c)
	}
	return &Entity{Symbol: symbol, TileIndex: tile, Wall: wall, DoorColors: set}
}

// Opens reports whether a mask of the given color lets the holder through.
func (e *Entity) Opens(color int) bool {
	return e.DoorColors.Has(color)
}

// IsDoor reports whether the entity is a wall some mask can pass.
func (e *Entity) IsDoor() bool {
	return e.Wall && e.DoorColors.Size() > 0
}

// Colors returns the door colors in ascending order.
func (e *Entity) Colors() []int {
	colors := make([]int, 0, e.DoorColors.Size())
	e.DoorColors.Each(func(c int) {
		colors = append(colors, c)
	})
	sort.Ints(colors)
	return colors
}

// jsonEntity is the on-disk descriptor format. Pointer fields let the parser
// tell a missing field from a zero value.
type jsonEntity struct {
	TileIndex  *int   `json:"tile_index"`
	Wall       *bool  `json:"wall"`
	DoorColors *[]int `json:"door_colors"`
}

// ParseEntity decodes a descriptor. Every field is required and unknown
// fields are rejected.
func ParseEntity(symbol byte, data []byte) (*Entity, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var je jsonEntity
	if err := dec.Decode(&je); err != nil {
		return nil, fmt.Errorf("%w: entity %q: %v", ErrDecode, symbol, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: entity %q: trailing data after descriptor", ErrDecode, symbol)
	}

	switch {
	case je.TileIndex == nil:
		return nil, fmt.Errorf("%w: entity %q: missing tile_index", ErrDecode, symbol)
	case je.Wall == nil:
		return nil, fmt.Errorf("%w: entity %q: missing wall", ErrDecode, symbol)
	case je.DoorColors == nil:
		return nil, fmt.Errorf("%w: entity %q: missing door_colors", ErrDecode, symbol)
	case *je.TileIndex < 0:
		return nil, fmt.Errorf("%w: entity %q: negative tile_index %d", ErrDecode, symbol, *je.TileIndex)
	}
	for _, c := range *je.DoorColors {
		if c < 0 {
			return nil, fmt.Errorf("%w: entity %q: negative door color %d", ErrDecode, symbol, c)
		}
	}

	return NewEntity(symbol, *je.TileIndex, *je.Wall, *je.DoorColors...), nil
}

// MarshalEntity encodes an entity in the descriptor format.
func MarshalEntity(e *Entity) ([]byte, error) {
	tile, wall, colors := e.TileIndex, e.Wall, e.Colors()
	return json.MarshalIndent(jsonEntity{TileIndex: &tile, Wall: &wall, DoorColors: &colors}, "", "  ")
}
