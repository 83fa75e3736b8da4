package render

import (
	"strings"
)

// HUDRows is how many terminal rows the status line takes at the bottom.
const HUDRows = 1

// HalfBlock paints the top half of a cell in the foreground color and the
// bottom half in the background color, giving two pixel rows per text row.
const HalfBlock = '▀'

// Cell represents a single terminal cell with full RGB color.
type Cell struct {
	Ch            rune
	FgR, FgG, FgB uint8
	BgR, BgG, BgB uint8
	Bold          bool
}

var sentinel = Cell{Ch: '\x00', FgR: 255, BgB: 255, Bold: true}

// HUD is the text shown on the status line under the picture.
type HUD struct {
	Title  string // level name
	Mask   string // carried mask, e.g. "unmasked"
	Swatch Color  // mask color; not drawn when transparent
	Banner string // transient message, replaces the help text
	Help   string
}

// Engine is a per-session double-buffer diff renderer. It samples a canvas
// every scale pixels and packs two sampled rows into each terminal row.
type Engine struct {
	width, height int
	scale         int
	current       [][]Cell
	next          [][]Cell
	firstFrame    bool
	background    Cell
}

// NewEngine creates a renderer for the given terminal dimensions. Scale is
// how many canvas pixels one sample covers per axis.
func NewEngine(width, height, scale int) *Engine {
	if scale < 1 {
		scale = 1
	}
	e := &Engine{
		width:      width,
		height:     height,
		scale:      scale,
		firstFrame: true,
		background: Cell{Ch: ' ', BgR: 10, BgG: 10, BgB: 15},
	}
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	return e
}

// Resize adjusts the renderer for a new terminal size.
func (e *Engine) Resize(width, height int) {
	e.width = width
	e.height = height
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	e.firstFrame = true
}

// Size returns the terminal dimensions the engine renders for.
func (e *Engine) Size() (int, int) {
	return e.width, e.height
}

func (e *Engine) makeBuffer(fill Cell) [][]Cell {
	buf := make([][]Cell, e.height)
	for y := 0; y < e.height; y++ {
		buf[y] = make([]Cell, e.width)
		for x := 0; x < e.width; x++ {
			buf[y][x] = fill
		}
	}
	return buf
}

// View returns the viewport the engine would use for a canvas of the given
// size centred on (focusX, focusY), in canvas pixels.
func (e *Engine) View(focusX, focusY, canvasW, canvasH int) Viewport {
	viewH := e.height - HUDRows
	if viewH < 0 {
		viewH = 0
	}
	return NewViewport(focusX, focusY, e.width*e.scale, viewH*2*e.scale, canvasW, canvasH)
}

// Frame fills the next buffer from canvas and hud without emitting anything.
// Render calls it; displays that draw cells themselves call it and then read
// the cells with CellAt.
func (e *Engine) Frame(canvas *Canvas, focusX, focusY int, hud HUD) {
	vp := e.View(focusX, focusY, canvas.Width(), canvas.Height())

	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			e.next[y][x] = e.background
		}
	}

	for ty := 0; ty < e.height-HUDRows; ty++ {
		for tx := 0; tx < e.width; tx++ {
			px := vp.CamX + tx*e.scale - vp.OffsetX
			top := vp.CamY + 2*ty*e.scale - vp.OffsetY
			bottom := top + e.scale
			tc, tok := e.sample(canvas, px, top)
			bc, bok := e.sample(canvas, px, bottom)
			if !tok && !bok {
				continue
			}
			cell := Cell{Ch: HalfBlock}
			cell.FgR, cell.FgG, cell.FgB = e.channels(tc, tok)
			cell.BgR, cell.BgG, cell.BgB = e.channels(bc, bok)
			e.next[ty][tx] = cell
		}
	}

	e.drawHUD(hud)
}

// CellAt returns a cell of the most recent Frame.
func (e *Engine) CellAt(x, y int) Cell {
	if y < 0 || y >= e.height || x < 0 || x >= e.width {
		return e.background
	}
	return e.next[y][x]
}

// Render produces the ANSI byte output for the canvas: only cells that
// changed since the previous frame are emitted.
func (e *Engine) Render(canvas *Canvas, focusX, focusY int, hud HUD) string {
	e.Frame(canvas, focusX, focusY, hud)
	return e.flush()
}

func (e *Engine) sample(canvas *Canvas, x, y int) (Color, bool) {
	if x < 0 || y < 0 || x >= canvas.Width() || y >= canvas.Height() {
		return Color{}, false
	}
	return canvas.At(x, y), true
}

func (e *Engine) channels(c Color, ok bool) (uint8, uint8, uint8) {
	if !ok {
		return e.background.BgR, e.background.BgG, e.background.BgB
	}
	return clamp8(c.R), clamp8(c.G), clamp8(c.B)
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// flush diffs next against current, emits the changed cells and swaps.
func (e *Engine) flush() string {
	var sb strings.Builder
	sb.Grow(16384)

	lastRow, lastCol := -1, -1
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			nc := e.next[y][x]
			if e.firstFrame || nc != e.current[y][x] {
				// Only emit cursor position if not consecutive
				if y != lastRow || x != lastCol {
					sb.WriteString(MoveTo(y+1, x+1))
				}
				WriteCell(&sb, nc)
				lastRow = y
				lastCol = x + 1
			}
		}
	}

	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}

	// Swap buffers
	e.current, e.next = e.next, e.current
	e.firstFrame = false

	return sb.String()
}

// --- HUD ---

func (e *Engine) drawHUD(hud HUD) {
	hudY := e.height - HUDRows
	if hudY < 0 {
		return
	}

	bgR, bgG, bgB := uint8(15), uint8(18), uint8(30)
	for x := 0; x < e.width; x++ {
		e.next[hudY][x] = Cell{Ch: ' ', BgR: bgR, BgG: bgG, BgB: bgB}
	}

	col := e.writeText(hudY, 1, e.width, hud.Title, 100, 220, 220, bgR, bgG, bgB, true)
	col = e.writeText(hudY, col, e.width, "  │  ", 60, 65, 85, bgR, bgG, bgB, false)
	if hud.Swatch.Opaque() {
		r, g, b := clamp8(hud.Swatch.R), clamp8(hud.Swatch.G), clamp8(hud.Swatch.B)
		col = e.writeText(hudY, col, e.width, "■ ", r, g, b, bgR, bgG, bgB, false)
	}
	col = e.writeText(hudY, col, e.width, hud.Mask, 180, 180, 195, bgR, bgG, bgB, false)
	col = e.writeText(hudY, col, e.width, "  │  ", 60, 65, 85, bgR, bgG, bgB, false)

	if hud.Banner != "" {
		e.writeText(hudY, col, e.width, hud.Banner, 255, 220, 100, bgR, bgG, bgB, true)
		return
	}
	e.writeText(hudY, col, e.width, hud.Help, 130, 130, 145, bgR, bgG, bgB, false)
}

// writeText writes colored text into a bounded region [col, maxCol). Returns the next column position.
func (e *Engine) writeText(row, col, maxCol int, text string, fgR, fgG, fgB, bgR, bgG, bgB uint8, bold bool) int {
	for _, r := range text {
		if col >= maxCol || col >= e.width {
			break
		}
		if row >= 0 && row < e.height && col >= 0 {
			e.next[row][col] = Cell{Ch: r, FgR: fgR, FgG: fgG, FgB: fgB, BgR: bgR, BgG: bgG, BgB: bgB, Bold: bold}
		}
		col++
	}
	return col
}
