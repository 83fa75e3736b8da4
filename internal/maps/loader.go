package maps

import (
	"fmt"

	"mask-maze/internal/assets"
)

const (
	// GridWidth is the terrain width in cells (640px at 16px tiles).
	GridWidth = 40
	// GridHeight is the terrain height in cells (480px at 16px tiles).
	GridHeight = 30

	// LevelsDir is the asset directory holding the level symbol grids.
	LevelsDir = "levels"
)

// Mask colors used by the item grid and door descriptors.
const (
	ColorRed = iota
	ColorGreen
	ColorBlue
	ColorYellow
)

// colorNames maps mask colors to display names.
var colorNames = map[int]string{
	ColorRed:    "red",
	ColorGreen:  "green",
	ColorBlue:   "blue",
	ColorYellow: "yellow",
}

// ColorName returns the display name of a mask color.
func ColorName(c int) string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("color %d", c)
}

// ItemKind classifies a symbol of the item grid.
type ItemKind int

const (
	ItemNone ItemKind = iota
	ItemMask
	ItemPlayer
	ItemTreasure
)

// Item is the meaning of one item-grid symbol.
type Item struct {
	Kind  ItemKind
	Color int // mask color, only for ItemMask
}

// ItemFor decodes an item-grid symbol. Unlisted symbols are empty cells.
func ItemFor(symbol byte) Item {
	switch symbol {
	case 'R':
		return Item{Kind: ItemMask, Color: ColorRed}
	case 'G':
		return Item{Kind: ItemMask, Color: ColorGreen}
	case 'B':
		return Item{Kind: ItemMask, Color: ColorBlue}
	case 'Y':
		return Item{Kind: ItemMask, Color: ColorYellow}
	case 'P':
		return Item{Kind: ItemPlayer}
	case 'T':
		return Item{Kind: ItemTreasure}
	default:
		return Item{Kind: ItemNone}
	}
}

// MaskSymbol returns the item-grid symbol for a mask color, or 0 if the
// color has none.
func MaskSymbol(color int) byte {
	switch color {
	case ColorRed:
		return 'R'
	case ColorGreen:
		return 'G'
	case ColorBlue:
		return 'B'
	case ColorYellow:
		return 'Y'
	}
	return 0
}

// LevelFile returns the terrain grid file name for a level.
func LevelFile(name string) string {
	return name + ".lvl"
}

// ItemsFile returns the item grid file name for a level.
func ItemsFile(name string) string {
	return name + ".lvl.items"
}

// LevelData is the raw content of one level: two parallel symbol grids,
// each indexed [y][x].
type LevelData struct {
	Name    string
	Terrain [][]byte
	Items   [][]byte
}

// DecodeSymbols splits a symbol grid of w columns and h rows. Every row is
// followed by one terminator byte, so data must be exactly (w+1)*h bytes.
func DecodeSymbols(data []byte, w, h int) ([][]byte, error) {
	if len(data) != (w+1)*h {
		return nil, fmt.Errorf("%w: symbol grid is %d bytes, want %d (%dx%d plus row terminators)",
			ErrDecode, len(data), (w+1)*h, w, h)
	}
	rows := make([][]byte, h)
	for y := 0; y < h; y++ {
		start := y * (w + 1)
		rows[y] = append([]byte(nil), data[start:start+w]...)
	}
	return rows, nil
}

// LoadLevelData reads both symbol grids of a level.
func LoadLevelData(loader assets.Loader, name string) (*LevelData, error) {
	terrainBytes, err := loader.Read(LevelFile(name), LevelsDir)
	if err != nil {
		return nil, fmt.Errorf("read level %q: %w", name, err)
	}
	itemBytes, err := loader.Read(ItemsFile(name), LevelsDir)
	if err != nil {
		return nil, fmt.Errorf("read level %q items: %w", name, err)
	}

	terrain, err := DecodeSymbols(terrainBytes, GridWidth, GridHeight)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", name, err)
	}
	items, err := DecodeSymbols(itemBytes, GridWidth, GridHeight)
	if err != nil {
		return nil, fmt.Errorf("level %q items: %w", name, err)
	}

	return &LevelData{Name: name, Terrain: terrain, Items: items}, nil
}

// EncodeSymbols joins rows back into the on-disk format.
func EncodeSymbols(rows [][]byte) []byte {
	var out []byte
	for _, row := range rows {
		out = append(out, row...)
		out = append(out, '\n')
	}
	return out
}
