package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"mask-maze/internal/assets"
	"mask-maze/internal/config"
	"mask-maze/internal/game"
	"mask-maze/internal/maps"
	"mask-maze/internal/render"
)

func main() {
	configPath := flag.String("config", "config.json", "config file naming the levels (defaults are used if missing)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		printUsage()
		os.Exit(1)
	}
	cmd, dir, only := args[0], args[1], args[2:]

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(only) > 0 {
		cfg.Levels = only
	}
	world, err := game.NewWorld(assets.NewFSLoader(os.DirFS(dir)), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		os.Exit(1)
	}

	switch cmd {
	case "validate":
		os.Exit(runValidate(os.Stdout, world))
	case "viz":
		os.Exit(forEachLevel(world, func(l *game.Level) { runViz(os.Stdout, world, l) }))
	case "stats":
		os.Exit(forEachLevel(world, func(l *game.Level) { runStats(os.Stdout, l) }))
	case "all":
		os.Exit(runAll(os.Stdout, world))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: leveltool [-config file] <command> <assets-dir> [level...]

Commands:
  validate   Load and check every level
  viz        Render levels as colored ASCII art
  stats      Show symbol distribution and door colors
  all        Run validate + viz + stats

Levels default to the ones listed in the config.`)
}

func forEachLevel(world *game.World, fn func(*game.Level)) int {
	for i := range world.Levels {
		l, err := world.LoadLevel(i)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fn(l)
	}
	return 0
}

// --- validate ---

func runValidate(w io.Writer, world *game.World) int {
	errors := 0
	for i, name := range world.Levels {
		fmt.Fprintf(w, "Validating %q...\n", name)

		l, err := world.LoadLevel(i)
		if err != nil {
			fmt.Fprintf(w, "  ERROR: %v\n", err)
			errors++
			continue
		}

		r := checkLevel(l)
		for _, msg := range r.Errors {
			fmt.Fprintf(w, "  ERROR: %s\n", msg)
		}
		for _, msg := range r.Warnings {
			fmt.Fprintf(w, "  WARN: %s\n", msg)
		}
		errors += len(r.Errors)

		if len(r.Errors) == 0 {
			fmt.Fprintf(w, "  OK (%d masks)\n", len(l.Masks))
		}
	}

	if errors > 0 {
		fmt.Fprintf(w, "\n%d error(s) found\n", errors)
		return 1
	}
	fmt.Fprintf(w, "\nAll %d levels valid\n", len(world.Levels))
	return 0
}

// --- viz ---

// tileShade is the mean of a tile's opaque pixels, or black if it has none.
func tileShade(atlas *render.Atlas, index int) render.Color {
	t, err := atlas.Tile(index)
	if err != nil {
		return render.Black
	}
	var r, g, b, n int
	for _, row := range t {
		for _, c := range row {
			if c.Opaque() {
				r, g, b = r+c.R, g+c.G, b+c.B
				n++
			}
		}
	}
	if n == 0 {
		return render.Black
	}
	return render.RGB(r/n, g/n, b/n)
}

// contrast picks black or white text for a background.
func contrast(bg render.Color) render.Color {
	if bg.R*299+bg.G*587+bg.B*114 > 128*1000 {
		return render.Black
	}
	return render.White
}

func runViz(w io.Writer, world *game.World, l *game.Level) {
	fmt.Fprintf(w, "%s (%dx%d)\n", l.Name, l.Terrain.CellsX(), l.Terrain.CellsY())

	overlay := make(map[[2]int]byte)
	mark := func(s *game.Sprite, sym byte) {
		c := cellOf(s)
		overlay[[2]int{c.X, c.Y}] = sym
	}
	for _, m := range l.Masks {
		mark(m.Sprite, maps.MaskSymbol(m.Color))
	}
	mark(l.Treasure, 'T')
	mark(l.Player.Sprite, 'P')

	var sb strings.Builder
	for y, row := range l.Terrain.Cells {
		for x, e := range row {
			bg := tileShade(world.Atlas, e.TileIndex)
			fg := contrast(bg)
			ch, bold := rune(e.Symbol), false
			if sym, ok := overlay[[2]int{x, y}]; ok {
				ch, bold = rune(sym), true
			}
			render.WriteCell(&sb, render.Cell{
				Ch:   ch,
				FgR:  uint8(fg.R),
				FgG:  uint8(fg.G),
				FgB:  uint8(fg.B),
				BgR:  uint8(bg.R),
				BgG:  uint8(bg.G),
				BgB:  uint8(bg.B),
				Bold: bold,
			})
		}
		sb.WriteString(render.Reset)
		sb.WriteByte('\n')
	}
	io.WriteString(w, sb.String())

	start, goal := cellOf(l.Player.Sprite), cellOf(l.Treasure)
	fmt.Fprintf(w, "\nPlayer:   (%d,%d)\n", start.X, start.Y)
	fmt.Fprintf(w, "Treasure: (%d,%d)\n", goal.X, goal.Y)
	for _, m := range l.Masks {
		c := cellOf(m.Sprite)
		fmt.Fprintf(w, "Mask:     (%d,%d) %s\n", c.X, c.Y, maps.ColorName(m.Color))
	}
}

// --- stats ---

func runStats(w io.Writer, l *game.Level) {
	cw, ch := l.Terrain.CellsX(), l.Terrain.CellsY()
	total := cw * ch
	fmt.Fprintf(w, "%s (%dx%d = %d cells)\n\n", l.Name, cw, ch, total)

	counts := make(map[byte]int)
	var walls, doors int
	doorColors := make(map[int]int)
	for _, row := range l.Terrain.Cells {
		for _, e := range row {
			counts[e.Symbol]++
			switch {
			case e.IsDoor():
				doors++
				for _, c := range e.Colors() {
					doorColors[c]++
				}
			case e.Wall:
				walls++
			}
		}
	}

	syms := make([]byte, 0, len(counts))
	for sym := range counts {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		if counts[syms[i]] != counts[syms[j]] {
			return counts[syms[i]] > counts[syms[j]]
		}
		return syms[i] < syms[j]
	})
	for _, sym := range syms {
		pct := float64(counts[sym]) / float64(total) * 100
		bar := strings.Repeat("█", int(pct/2))
		fmt.Fprintf(w, "  %q %4d (%5.1f%%) %s\n", sym, counts[sym], pct, bar)
	}

	open := total - walls - doors
	fmt.Fprintf(w, "\nOpen:  %d/%d (%.1f%%)\n", open, total, float64(open)/float64(total)*100)
	fmt.Fprintf(w, "Walls: %d\n", walls)
	fmt.Fprintf(w, "Doors: %d\n", doors)

	colors := make([]int, 0, len(doorColors))
	for c := range doorColors {
		colors = append(colors, c)
	}
	sort.Ints(colors)
	for _, c := range colors {
		fmt.Fprintf(w, "  %-7s door cells %d\n", maps.ColorName(c), doorColors[c])
	}

	masks := make([]string, 0, len(l.Masks))
	for _, m := range l.Masks {
		masks = append(masks, maps.ColorName(m.Color))
	}
	fmt.Fprintf(w, "Masks: %d %v\n", len(l.Masks), masks)
}

// --- all ---

func runAll(w io.Writer, world *game.World) int {
	fmt.Fprintln(w, "=== VALIDATE ===")
	if code := runValidate(w, world); code != 0 {
		return code
	}

	for i, name := range world.Levels {
		l, err := world.LoadLevel(i)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(w, "\n=== VIZ: %s ===\n", name)
		runViz(w, world, l)
		fmt.Fprintf(w, "\n=== STATS: %s ===\n", name)
		runStats(w, l)
	}
	return 0
}
