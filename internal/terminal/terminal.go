// Package terminal plays the game in the local terminal through tcell.
package terminal

import (
	"github.com/gdamore/tcell/v2"

	"mask-maze/internal/game"
	"mask-maze/internal/render"
)

// Display draws frames on a tcell screen with the same half-block sampling
// as the SSH renderer. tcell does its own diffing, so every cell is set on
// every frame.
type Display struct {
	screen tcell.Screen
	engine *render.Engine
}

// NewDisplay wraps an initialised screen.
func NewDisplay(screen tcell.Screen, scale int) *Display {
	w, h := screen.Size()
	return &Display{
		screen: screen,
		engine: render.NewEngine(w, h, scale),
	}
}

// Present implements game.Display.
func (d *Display) Present(canvas *render.Canvas, st game.Status) error {
	w, h := d.screen.Size()
	if ew, eh := d.engine.Size(); ew != w || eh != h {
		d.engine.Resize(w, h)
	}

	x, y := st.Focus()
	d.engine.Frame(canvas, x, y, st.HUD())
	for cy := 0; cy < h; cy++ {
		for cx := 0; cx < w; cx++ {
			c := d.engine.CellAt(cx, cy)
			d.screen.SetContent(cx, cy, c.Ch, nil, cellStyle(c))
		}
	}
	d.screen.Show()
	return nil
}

func cellStyle(c render.Cell) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(c.FgR), int32(c.FgG), int32(c.FgB))).
		Background(tcell.NewRGBColor(int32(c.BgR), int32(c.BgG), int32(c.BgB))).
		Bold(c.Bold)
}

// KeyAction maps a key event to a game action.
func KeyAction(ev *tcell.EventKey) (game.Action, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return game.ActionUp, true
	case tcell.KeyDown:
		return game.ActionDown, true
	case tcell.KeyLeft:
		return game.ActionLeft, true
	case tcell.KeyRight:
		return game.ActionRight, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.ActionQuit, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return game.ActionUp, true
		case 's', 'S':
			return game.ActionDown, true
		case 'a', 'A':
			return game.ActionLeft, true
		case 'd', 'D':
			return game.ActionRight, true
		case ' ', 'e', 'E':
			return game.ActionMask, true
		case 'q', 'Q':
			return game.ActionQuit, true
		}
	}
	return game.ActionNone, false
}

// PumpEvents reads screen events until the screen is finalised or a quit key
// arrives, forwarding actions to input without blocking. It calls stop
// before returning.
func PumpEvents(screen tcell.Screen, input chan<- game.Action, stop func()) {
	defer stop()
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			action, ok := KeyAction(ev)
			if !ok {
				continue
			}
			if action == game.ActionQuit {
				return
			}
			select {
			case input <- action:
			default:
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}
