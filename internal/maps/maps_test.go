package maps

import (
	"bytes"
	"errors"
	"testing"
	"testing/fstest"

	"mask-maze/internal/assets"
	"mask-maze/internal/render"
)

func TestParseEntity(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"floor", `{"tile_index": 0, "wall": false, "door_colors": []}`, false},
		{"red door", `{"tile_index": 3, "wall": true, "door_colors": [0]}`, false},
		{"missing wall", `{"tile_index": 3, "door_colors": []}`, true},
		{"missing tile", `{"wall": true, "door_colors": []}`, true},
		{"missing colors", `{"tile_index": 1, "wall": true}`, true},
		{"unknown field", `{"tile_index": 1, "wall": true, "door_colors": [], "tile_x": 2}`, true},
		{"wrong type", `{"tile_index": "1", "wall": true, "door_colors": []}`, true},
		{"negative tile", `{"tile_index": -1, "wall": true, "door_colors": []}`, true},
		{"negative color", `{"tile_index": 1, "wall": true, "door_colors": [-2]}`, true},
		{"trailing object", `{"tile_index": 1, "wall": true, "door_colors": []} {}`, true},
		{"not json", `tile_index=1`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := ParseEntity('#', []byte(tt.data))
			if tt.wantErr {
				if !errors.Is(err, ErrDecode) {
					t.Fatalf("err = %v, want ErrDecode", err)
				}
				if !errors.Is(err, render.ErrDecode) {
					t.Fatalf("err = %v does not match render.ErrDecode", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if e.Symbol != '#' {
				t.Errorf("Symbol = %q", e.Symbol)
			}
		})
	}
}

func TestParseEntityFields(t *testing.T) {
	e, err := ParseEntity('b', []byte(`{"tile_index": 4, "wall": true, "door_colors": [2, 0, 2]}`))
	if err != nil {
		t.Fatal(err)
	}
	if e.TileIndex != 4 || !e.Wall {
		t.Errorf("got tile %d wall %v", e.TileIndex, e.Wall)
	}
	if got := e.Colors(); len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("Colors = %v, want [0 2]", got)
	}
	if !e.Opens(ColorBlue) || e.Opens(ColorGreen) {
		t.Error("Opens mismatch")
	}
	if !e.IsDoor() {
		t.Error("expected door")
	}

	data, err := MarshalEntity(e)
	if err != nil {
		t.Fatal(err)
	}
	back, err := ParseEntity('b', data)
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if back.TileIndex != 4 || !back.Wall || back.DoorColors.Size() != 2 {
		t.Errorf("re-parsed entity differs: %+v", back)
	}
}

func TestStoreResolve(t *testing.T) {
	fsys := fstest.MapFS{
		"entities/#.json": {Data: []byte(`{"tile_index": 1, "wall": true, "door_colors": []}`)},
		"entities/..json": {Data: []byte(`{"tile_index": 0, "wall": false, "door_colors": []}`)},
		"entities/x.json": {Data: []byte(`{"tile_index": 0}`)},
	}
	s := NewStore(assets.NewFSLoader(fsys))

	wall, err := s.Resolve('#')
	if err != nil {
		t.Fatalf("Resolve('#'): %v", err)
	}
	again, err := s.Resolve('#')
	if err != nil {
		t.Fatal(err)
	}
	if wall != again {
		t.Error("entities for one symbol should be interned")
	}
	if floor, err := s.Resolve('.'); err != nil || floor.Wall {
		t.Errorf("Resolve('.') = %+v, %v", floor, err)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}

	var unknown *UnknownSymbolError
	if _, err := s.Resolve('?'); !errors.As(err, &unknown) || unknown.Symbol != '?' {
		t.Errorf("Resolve('?') err = %v, want UnknownSymbolError", err)
	}
	if _, err := s.Resolve('/'); !errors.As(err, &unknown) {
		t.Errorf("Resolve('/') err = %v, want UnknownSymbolError", err)
	}
	if _, err := s.Resolve('x'); !errors.Is(err, ErrDecode) {
		t.Errorf("Resolve('x') err = %v, want ErrDecode", err)
	}
}

func TestDecodeSymbols(t *testing.T) {
	rows, err := DecodeSymbols([]byte("ab\ncd\n"), 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if string(rows[0]) != "ab" || string(rows[1]) != "cd" {
		t.Errorf("rows = %q", rows)
	}
	if !bytes.Equal(EncodeSymbols(rows), []byte("ab\ncd\n")) {
		t.Error("EncodeSymbols did not restore the input")
	}

	for _, bad := range []string{"ab\ncd", "ab\ncd\n\n", ""} {
		if _, err := DecodeSymbols([]byte(bad), 2, 2); !errors.Is(err, ErrDecode) {
			t.Errorf("DecodeSymbols(%q) err = %v, want ErrDecode", bad, err)
		}
	}
}

func TestLoadLevelData(t *testing.T) {
	row := bytes.Repeat([]byte{'.'}, GridWidth)
	var grid []byte
	for y := 0; y < GridHeight; y++ {
		grid = append(grid, row...)
		grid = append(grid, '\n')
	}
	fsys := fstest.MapFS{
		"levels/a.lvl":       {Data: grid},
		"levels/a.lvl.items": {Data: grid},
		"levels/b.lvl":       {Data: grid},
	}
	l := assets.NewFSLoader(fsys)

	ld, err := LoadLevelData(l, "a")
	if err != nil {
		t.Fatalf("LoadLevelData: %v", err)
	}
	if len(ld.Terrain) != GridHeight || len(ld.Items[0]) != GridWidth {
		t.Errorf("unexpected grid shape %dx%d", len(ld.Terrain[0]), len(ld.Terrain))
	}

	if _, err := LoadLevelData(l, "b"); !errors.Is(err, assets.ErrNotFound) {
		t.Errorf("missing items err = %v, want ErrNotFound", err)
	}
}

func TestItemFor(t *testing.T) {
	for _, c := range []int{ColorRed, ColorGreen, ColorBlue, ColorYellow} {
		item := ItemFor(MaskSymbol(c))
		if item.Kind != ItemMask || item.Color != c {
			t.Errorf("color %d: got %+v", c, item)
		}
	}
	if ItemFor('P').Kind != ItemPlayer || ItemFor('T').Kind != ItemTreasure || ItemFor('.').Kind != ItemNone {
		t.Error("player/treasure/empty symbols misdecoded")
	}
}
