package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"mask-maze/internal/assets"
	"mask-maze/internal/config"
	"mask-maze/internal/game"
	"mask-maze/internal/maps"
	"mask-maze/internal/render"
)

func main() {
	seed := flag.Int64("seed", 0, "random seed (0 = random)")
	name := flag.String("name", "level0", "level name")
	out := flag.String("out", "assets", "asset directory to write into")
	doors := flag.Int("doors", 2, "number of door bands (0-4)")
	rough := flag.Float64("rough", 0.62, "noise level above which interior cells become walls (0-1)")
	withAtlas := flag.Bool("atlas", false, "also write the placeholder atlas")
	configPath := flag.String("config", "", "config file to add the level to (created with defaults if missing)")
	flag.Parse()

	if *doors < 0 || *doors > len(maskColors) {
		fmt.Fprintf(os.Stderr, "Error: -doors must be between 0 and %d\n", len(maskColors))
		os.Exit(1)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	fmt.Fprintf(os.Stderr, "Generating level %q with %d door bands (seed %d)...\n", *name, *doors, *seed)
	lvl := generate(*seed, *doors, *rough)

	if err := writeAssets(*out, *name, lvl, *withAtlas); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printDistribution(lvl.terrain)

	if *configPath != "" {
		if err := registerLevel(*configPath, *name, *out); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Registered %q in %s\n", *name, *configPath)
	}

	// Load the result back the way the game does, when there is an atlas.
	cfg := config.NewDefault()
	cfg.Levels = []string{*name}
	world, err := game.NewWorld(assets.NewFSLoader(os.DirFS(*out)), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Skipping load check: %v\n", err)
		return
	}
	if _, err := world.LoadLevel(0); err != nil {
		fmt.Fprintf(os.Stderr, "Error: generated level does not load: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Load check OK\n")
}

type point struct{ x, y int }

// generated is one level's pair of symbol grids.
type generated struct {
	terrain [][]byte
	items   [][]byte
}

func filled(w, h int, sym byte) [][]byte {
	rows := make([][]byte, h)
	for y := range rows {
		rows[y] = make([]byte, w)
		for x := range rows[y] {
			rows[y][x] = sym
		}
	}
	return rows
}

// generate builds a bordered level split by door bands into regions. The
// player starts in the first region, each region holds the mask for the door
// on its right, and the treasure sits in the last region. A carved path
// links every region's entry, mask and exit, so the level is always solvable.
func generate(seed int64, doors int, rough float64) *generated {
	w, h := maps.GridWidth, maps.GridHeight
	rng := rand.New(rand.NewSource(seed))
	walls := newSimplex(seed)
	detail := newSimplex(seed + 1)

	lvl := &generated{terrain: filled(w, h, '.'), items: filled(w, h, '.')}
	t := lvl.terrain

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if walls.fbm(float64(x), float64(y), 0.15, 3) > rough {
				t[y][x] = '#'
				if detail.fbm(float64(x), float64(y), 0.4, 2) > 0.6 {
					t[y][x] = '%'
				}
			}
		}
	}

	// Outermost ring is always solid
	for x := 0; x < w; x++ {
		t[0][x], t[h-1][x] = '#', '#'
	}
	for y := 0; y < h; y++ {
		t[y][0], t[y][w-1] = '#', '#'
	}

	bandX := make([]int, doors)
	gapY := make([]int, doors)
	for i := range bandX {
		bandX[i] = (i + 1) * w / (doors + 1)
		gapY[i] = 2 + rng.Intn(h-4)
		for y := 1; y < h-1; y++ {
			t[y][bandX[i]] = '#'
		}
		t[gapY[i]][bandX[i]] = doorSymbols[maskColors[i]]
	}
	isBand := func(x int) bool {
		for _, bx := range bandX {
			if x == bx {
				return true
			}
		}
		return false
	}

	carve := func(a, b point) {
		dig := func(x, y int) {
			if x > 0 && x < w-1 && y > 0 && y < h-1 && !isBand(x) {
				t[y][x] = '.'
			}
		}
		for x := a.x; x != b.x; x += sign(b.x - a.x) {
			dig(x, a.y)
		}
		for y := a.y; y != b.y; y += sign(b.y - a.y) {
			dig(b.x, y)
		}
		dig(b.x, b.y)
	}

	place := func(left, right int) point {
		for {
			p := point{left + rng.Intn(right-left+1), 1 + rng.Intn(h-2)}
			if lvl.items[p.y][p.x] == '.' {
				return p
			}
		}
	}

	left := 1
	var entry point
	for i := 0; i <= doors; i++ {
		right := w - 2
		if i < doors {
			right = bandX[i] - 1
		}

		if i == 0 {
			entry = place(left, right)
			lvl.items[entry.y][entry.x] = 'P'
		} else {
			entry = point{bandX[i-1] + 1, gapY[i-1]}
		}

		target := place(left, right)
		carve(entry, target)
		if i < doors {
			lvl.items[target.y][target.x] = maps.MaskSymbol(maskColors[i])
			carve(target, point{bandX[i] - 1, gapY[i]})
			left = bandX[i] + 1
		} else {
			lvl.items[target.y][target.x] = 'T'
		}
	}
	return lvl
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func writeAssets(dir, name string, lvl *generated, withAtlas bool) error {
	levelsDir := filepath.Join(dir, maps.LevelsDir)
	entitiesDir := filepath.Join(dir, maps.EntitiesDir)
	for _, d := range []string{levelsDir, entitiesDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}

	files := map[string][]byte{
		filepath.Join(levelsDir, maps.LevelFile(name)): maps.EncodeSymbols(lvl.terrain),
		filepath.Join(levelsDir, maps.ItemsFile(name)): maps.EncodeSymbols(lvl.items),
	}
	for _, e := range entities() {
		data, err := maps.MarshalEntity(e)
		if err != nil {
			return fmt.Errorf("entity %q: %w", e.Symbol, err)
		}
		files[filepath.Join(entitiesDir, string(e.Symbol)+".json")] = append(data, '\n')
	}
	if withAtlas {
		data, err := render.EncodeAtlas(atlasTiles(), atlasColumns)
		if err != nil {
			return err
		}
		files[filepath.Join(dir, config.NewDefault().AtlasFile)] = data
	}

	for path, data := range files {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", path, len(data))
	}
	return nil
}

// registerLevel appends name to the level list of the config at path and
// points it at the asset directory. A level already listed is not repeated.
func registerLevel(path, name, assetsDir string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		// Fresh config: play only what this tool generates.
		cfg.Levels = nil
	}
	cfg.AssetsDir = assetsDir
	if !slices.Contains(cfg.Levels, name) {
		cfg.Levels = append(cfg.Levels, name)
	}
	if err := config.Save(cfg, path); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

func printDistribution(terrain [][]byte) {
	counts := make(map[byte]int)
	total := 0
	for _, row := range terrain {
		for _, sym := range row {
			counts[sym]++
			total++
		}
	}
	syms := make([]byte, 0, len(counts))
	for sym := range counts {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return counts[syms[i]] > counts[syms[j]] })

	fmt.Fprintf(os.Stderr, "\nSymbol distribution:\n")
	for _, sym := range syms {
		c := counts[sym]
		fmt.Fprintf(os.Stderr, "  %q %5d (%5.1f%%)\n", sym, c, float64(c)/float64(total)*100)
	}
}
