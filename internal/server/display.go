package server

import (
	"io"
	"sync"

	"mask-maze/internal/game"
	"mask-maze/internal/render"
)

// sessionDisplay presents frames as ANSI output on a PTY stream. Only the
// cells that changed since the last frame are written.
type sessionDisplay struct {
	out    io.Writer
	engine *render.Engine

	mu    sync.Mutex
	termW int
	termH int
}

func newSessionDisplay(out io.Writer, termW, termH, scale int) *sessionDisplay {
	return &sessionDisplay{
		out:    out,
		engine: render.NewEngine(termW, termH, scale),
		termW:  termW,
		termH:  termH,
	}
}

// resize records a new terminal size; the next frame repaints everything.
func (d *sessionDisplay) resize(w, h int) {
	d.mu.Lock()
	d.termW, d.termH = w, h
	d.mu.Unlock()
}

// Present implements game.Display.
func (d *sessionDisplay) Present(canvas *render.Canvas, st game.Status) error {
	d.mu.Lock()
	w, h := d.termW, d.termH
	d.mu.Unlock()

	if ew, eh := d.engine.Size(); ew != w || eh != h {
		d.engine.Resize(w, h)
	}

	x, y := st.Focus()
	output := d.engine.Render(canvas, x, y, st.HUD())
	if len(output) == 0 {
		return nil
	}
	_, err := io.WriteString(d.out, output)
	return err
}
