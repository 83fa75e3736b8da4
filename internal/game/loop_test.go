package game

import (
	"errors"
	"testing"
	"time"

	"mask-maze/internal/assets"
	"mask-maze/internal/geom"
	"mask-maze/internal/maps"
	"mask-maze/internal/render"
)

// twoLevels has the treasure right next to the player in both levels, so a
// single step to the right clears each one.
var twoLevels = map[string]testLevel{
	"first":  {items: map[[2]int]byte{{1, 1}: 'P', {2, 1}: 'T'}},
	"second": {items: map[[2]int]byte{{5, 5}: 'P', {6, 5}: 'T', {9, 9}: 'B'}},
}

func newTestGame(t *testing.T, names []string, levels map[string]testLevel) *Game {
	t.Helper()
	g, err := NewGame(testWorld(t, names, levels))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func TestGameMovesEveryTick(t *testing.T) {
	g := newTestGame(t, []string{"one"}, map[string]testLevel{
		"one": {items: map[[2]int]byte{{1, 1}: 'P', {30, 20}: 'T'}},
	})
	start := g.Status().Pos

	mustStep(t, g, ActionRight)
	mustStep(t, g, ActionNone)
	mustStep(t, g, ActionNone)
	if got := g.Status().Pos; got != start.Add(geom.V(6, 0)) {
		t.Fatalf("after 3 ticks pos = %v, want %v", got, start.Add(geom.V(6, 0)))
	}

	// Pressing Left while moving right stops without moving back.
	mustStep(t, g, ActionLeft)
	stopped := g.Status().Pos
	mustStep(t, g, ActionNone)
	if got := g.Status().Pos; got != stopped || !g.Level().Player.Move.IsZero() {
		t.Errorf("player still moving: pos %v -> %v", stopped, got)
	}
	if g.Status().Tick != 5 {
		t.Errorf("tick = %d, want 5", g.Status().Tick)
	}
}

func TestGameToggleSameKey(t *testing.T) {
	g := newTestGame(t, []string{"one"}, map[string]testLevel{
		"one": {items: map[[2]int]byte{{10, 10}: 'P', {30, 20}: 'T'}},
	})
	mustStep(t, g, ActionLeft)
	mustStep(t, g, ActionLeft)
	if !g.Level().Player.Move.IsZero() {
		t.Fatalf("Left, Left: move = %v, want zero", g.Level().Player.Move)
	}
	at := g.Status().Pos
	for i := 0; i < 10; i++ {
		mustStep(t, g, ActionNone)
	}
	if got := g.Status().Pos; got != at {
		t.Errorf("pos drifted from %v to %v", at, got)
	}
}

func TestGameBlockedKeepsDirection(t *testing.T) {
	g := newTestGame(t, []string{"one"}, map[string]testLevel{
		"one": {
			terrain: map[[2]int]byte{{3, 1}: '#'},
			items:   map[[2]int]byte{{1, 1}: 'P', {30, 20}: 'T'},
		},
	})
	mustStep(t, g, ActionRight)
	for i := 0; i < 20; i++ {
		mustStep(t, g, ActionNone)
	}
	if got := g.Status().Pos; got != cellPos(2, 1) {
		t.Errorf("pos = %v, want flush against the wall at %v", got, cellPos(2, 1))
	}
	if g.Level().Player.Move != geom.V(1, 0) {
		t.Errorf("move = %v, a blocked move should keep the direction", g.Level().Player.Move)
	}
}

func TestGameLevelTransition(t *testing.T) {
	g := newTestGame(t, []string{"first", "second"}, twoLevels)
	if st := g.Status(); st.Level != "first" || st.LevelCount != 2 || st.Banner != "first" {
		t.Fatalf("initial status = %+v", st)
	}

	// Carry a mask into the treasure; the next level starts unmasked.
	g.Level().Player.TakeMask(&Mask{Color: maps.ColorRed})
	mustStep(t, g, ActionRight)

	st := g.Status()
	if st.Level != "second" || st.LevelIndex != 1 {
		t.Fatalf("after goal: level %q #%d", st.Level, st.LevelIndex)
	}
	if st.Mask != Unmasked {
		t.Errorf("mask = %v, want unmasked", st.Mask)
	}
	if st.Pos != cellPos(5, 5) {
		t.Errorf("pos = %v, want the new start", st.Pos)
	}
	if !g.Level().Player.Move.IsZero() {
		t.Error("movement carried across levels")
	}
	if st.Banner != "second" || st.Done {
		t.Errorf("status = %+v", st)
	}

	mustStep(t, g, ActionRight)
	st = g.Status()
	if !st.Done || !g.Done() {
		t.Fatal("game not done after the last level")
	}
	if st.Level != "second" {
		t.Errorf("done game left level %q", st.Level)
	}

	// A finished game ignores further input.
	tick := st.Tick
	mustStep(t, g, ActionLeft)
	if g.Status().Tick != tick {
		t.Error("finished game kept ticking")
	}
}

func TestGameBannerExpires(t *testing.T) {
	g := newTestGame(t, []string{"first", "second"}, twoLevels)
	n := SecsToTicks(bannerSecs, g.world.TickRate)
	for i := 0; i < n; i++ {
		mustStep(t, g, ActionNone)
	}
	if got := g.Status().Banner; got != "" {
		t.Errorf("banner = %q after %d ticks", got, n)
	}
}

func TestGameFailedTransition(t *testing.T) {
	g := newTestGame(t, []string{"first", "missing"}, twoLevels)
	err := g.Step(ActionRight)
	if !errors.Is(err, assets.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if g.Status().Level != "first" {
		t.Errorf("level = %q, the old level should be kept", g.Status().Level)
	}
}

func TestNewGameNoLevels(t *testing.T) {
	if _, err := NewGame(testWorld(t, nil, nil)); err == nil {
		t.Fatal("NewGame with no levels should fail")
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, []string{"first", "second"}, twoLevels)
	c := g.Render()
	if c != g.Canvas() {
		t.Fatal("Render should paint the game canvas")
	}
	if c.Width() != render.CanvasWidth || c.Height() != render.CanvasHeight {
		t.Errorf("canvas %dx%d", c.Width(), c.Height())
	}
	if got := c.At(16+8, 16+8); got != testColors[tilePlayer] {
		t.Errorf("player pixel = %+v", got)
	}
	if got := c.At(100, 100); got != testColors[tileFloor] {
		t.Errorf("floor pixel = %+v", got)
	}
}

func mustStep(t *testing.T, g *Game, a Action) {
	t.Helper()
	if err := g.Step(a); err != nil {
		t.Fatalf("Step(%v): %v", a, err)
	}
}

// recordDisplay keeps every presented status.
type recordDisplay struct {
	frames []Status
	err    error
}

func (d *recordDisplay) Present(c *render.Canvas, st Status) error {
	d.frames = append(d.frames, st)
	return d.err
}

func TestGameLoopTick(t *testing.T) {
	g := newTestGame(t, []string{"one"}, map[string]testLevel{
		"one": {items: map[[2]int]byte{{10, 10}: 'P', {30, 20}: 'T'}},
	})
	d := &recordDisplay{}
	gl := NewGameLoop(g, d)
	start := g.Status().Pos

	// Two queued events are consumed one per tick.
	gl.InputChan() <- ActionRight
	gl.InputChan() <- ActionRight
	for i := 0; i < 2; i++ {
		more, err := gl.Tick()
		if err != nil || !more {
			t.Fatalf("tick %d: more=%v err=%v", i, more, err)
		}
	}
	if len(d.frames) != 2 {
		t.Fatalf("presented %d frames, want 2", len(d.frames))
	}
	if got := d.frames[0].Pos; got != start.Add(geom.V(2, 0)) {
		t.Errorf("first frame pos = %v", got)
	}
	if got := d.frames[1].Pos; got != d.frames[0].Pos {
		t.Errorf("second Right should stop: %v -> %v", d.frames[0].Pos, got)
	}

	gl.InputChan() <- ActionQuit
	more, err := gl.Tick()
	if more || err != nil {
		t.Errorf("quit: more=%v err=%v", more, err)
	}
	if len(d.frames) != 2 {
		t.Error("quit tick presented a frame")
	}
}

func TestGameLoopPresentError(t *testing.T) {
	g := newTestGame(t, []string{"first", "second"}, twoLevels)
	boom := errors.New("closed")
	gl := NewGameLoop(g, &recordDisplay{err: boom})
	if _, err := gl.Tick(); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestGameLoopRunStops(t *testing.T) {
	g := newTestGame(t, []string{"first", "second"}, twoLevels)
	gl := NewGameLoop(g, &recordDisplay{})

	done := make(chan error, 1)
	go func() { done <- gl.Run() }()
	gl.Stop()
	gl.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestGameLoopRunFinishes(t *testing.T) {
	g := newTestGame(t, []string{"first"}, twoLevels)
	d := &recordDisplay{}
	gl := NewGameLoop(g, d)
	gl.InputChan() <- ActionRight

	done := make(chan error, 1)
	go func() { done <- gl.Run() }()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(5 * time.Second):
		gl.Stop()
		t.Fatal("Run did not return after the last level")
	}
	if n := len(d.frames); n == 0 || !d.frames[n-1].Done {
		t.Error("last frame should report the finished game")
	}
}

func TestGameLoopShowsFinalBanner(t *testing.T) {
	g := newTestGame(t, []string{"first"}, twoLevels)
	d := &recordDisplay{}
	gl := NewGameLoop(g, d)
	gl.InputChan() <- ActionRight

	more, err := gl.Tick()
	if err != nil || !more || !g.Done() {
		t.Fatalf("clearing tick: more=%v err=%v done=%v", more, err, g.Done())
	}
	if got := d.frames[0].Banner; got != "All levels cleared!" {
		t.Fatalf("banner = %q", got)
	}

	n := SecsToTicks(bannerSecs, g.world.TickRate)
	for i := 1; i < n; i++ {
		if more, err := gl.Tick(); err != nil || !more {
			t.Fatalf("tick %d of %d after the last level: more=%v err=%v", i, n, more, err)
		}
	}
	if more, err := gl.Tick(); err != nil || more {
		t.Errorf("loop kept running after the banner expired: more=%v err=%v", more, err)
	}
	if len(d.frames) != n+1 {
		t.Errorf("presented %d frames, want %d", len(d.frames), n+1)
	}
	for _, st := range d.frames {
		if !st.Done {
			t.Fatalf("frame %+v not marked done", st)
		}
	}
}
