package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"mask-maze/internal/game"
	"mask-maze/internal/geom"
	"mask-maze/internal/render"
)

func TestKeyAction(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want game.Action
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), game.ActionUp, true},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), game.ActionLeft, true},
		{tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), game.ActionRight, true},
		{tcell.NewEventKey(tcell.KeyRune, 'S', tcell.ModNone), game.ActionDown, true},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), game.ActionMask, true},
		{tcell.NewEventKey(tcell.KeyRune, 'e', tcell.ModNone), game.ActionMask, true},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), game.ActionQuit, true},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), game.ActionQuit, true},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), game.ActionNone, false},
		{tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), game.ActionNone, false},
	}
	for _, tt := range tests {
		got, ok := KeyAction(tt.ev)
		if got != tt.want || ok != tt.ok {
			t.Errorf("KeyAction(%v) = %v, %v; want %v, %v", tt.ev.Name(), got, ok, tt.want, tt.ok)
		}
	}
}

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func TestDisplayPresent(t *testing.T) {
	s := newSimScreen(t, 30, 5)
	d := NewDisplay(s, 4)

	c := render.NewCanvas(render.CanvasWidth, render.CanvasHeight)
	c.Clear(render.RGB(0, 100, 0))
	st := game.Status{Level: "level0", LevelCount: 1, Pos: geom.V(0, 0)}
	if err := d.Present(c, st); err != nil {
		t.Fatalf("Present: %v", err)
	}

	if r, _, _, _ := s.GetContent(0, 0); r != render.HalfBlock {
		t.Errorf("picture cell = %q, want a half block", r)
	}
	var hud []rune
	for x := 1; x <= 6; x++ {
		r, _, _, _ := s.GetContent(x, 4)
		hud = append(hud, r)
	}
	if string(hud) != "level0" {
		t.Errorf("HUD row starts %q", string(hud))
	}
}

func TestPumpEvents(t *testing.T) {
	s := newSimScreen(t, 10, 5)
	input := make(chan game.Action, 4)
	stopped := make(chan struct{})
	go PumpEvents(s, input, func() { close(stopped) })

	s.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("PumpEvents did not stop on quit")
	}
	if got := <-input; got != game.ActionRight {
		t.Errorf("first action = %v", got)
	}
	if got := <-input; got != game.ActionMask {
		t.Errorf("second action = %v", got)
	}
	if len(input) != 0 {
		t.Errorf("%d unexpected actions queued", len(input))
	}
}
