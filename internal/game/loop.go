package game

import (
	"fmt"
	"log"
	"sync"
	"time"

	"mask-maze/internal/geom"
	"mask-maze/internal/render"
)

// InputChanSize bounds the number of queued input events.
const InputChanSize = 64

// Status is a read-only summary of the game for HUDs.
type Status struct {
	Level      string
	LevelIndex int
	LevelCount int
	Mask       MaskState
	Pos        geom.Vec
	Tick       uint64
	Banner     string // transient message, empty when none
	Done       bool
}

// Game is one player's run through the level sequence. It owns the canvas
// and the current level and is mutated only by Step, from one goroutine.
type Game struct {
	world  *World
	level  *Level
	canvas *render.Canvas

	tick        uint64
	done        bool
	banner      string
	bannerTicks int
}

// NewGame starts a game at the first level.
func NewGame(w *World) (*Game, error) {
	lvl, err := w.LoadLevel(0)
	if err != nil {
		return nil, fmt.Errorf("load first level: %w", err)
	}
	g := &Game{
		world:  w,
		level:  lvl,
		canvas: render.NewCanvas(render.CanvasWidth, render.CanvasHeight),
	}
	g.setBanner(lvl.Name)
	return g, nil
}

// Level returns the current level.
func (g *Game) Level() *Level {
	return g.level
}

// Canvas returns the canvas last painted by Render.
func (g *Game) Canvas() *render.Canvas {
	return g.canvas
}

// Done reports whether the last level has been cleared.
func (g *Game) Done() bool {
	return g.done
}

func (g *Game) setBanner(msg string) {
	g.banner = msg
	g.bannerTicks = SecsToTicks(bannerSecs, g.world.TickRate)
}

func (g *Game) expireBanner() {
	if g.bannerTicks > 0 {
		g.bannerTicks--
		if g.bannerTicks == 0 {
			g.banner = ""
		}
	}
}

// Step advances the game by one tick with one input event (ActionNone when
// there was no input). The mask action runs before movement; the goal check
// runs after it. Reaching the treasure replaces the level with the next one;
// a level that fails to load is returned as an error and the game keeps the
// old level. A finished game ignores input and only runs down its banner.
func (g *Game) Step(a Action) error {
	if g.done {
		g.expireBanner()
		return nil
	}
	g.tick++
	g.expireBanner()

	p := g.level.Player
	if a == ActionMask {
		g.level.Swap()
	} else if dir, ok := a.Dir(); ok {
		p.Steer(dir)
	}

	if !p.Move.IsZero() {
		g.level.TryMove(p.Move.Mul(g.world.Speed))
	}

	if g.level.ReachedGoal() {
		return g.advance()
	}
	return nil
}

func (g *Game) advance() error {
	next := g.level.Index + 1
	if next >= len(g.world.Levels) {
		log.Printf("Level %q cleared, no levels left", g.level.Name)
		g.done = true
		g.setBanner("All levels cleared!")
		return nil
	}

	// Build the new level completely before swapping it in.
	lvl, err := g.world.LoadLevel(next)
	if err != nil {
		return fmt.Errorf("level transition %q -> %q: %w", g.level.Name, g.world.LevelName(next), err)
	}
	log.Printf("Level %q cleared, entering %q", g.level.Name, lvl.Name)
	g.level = lvl
	g.setBanner(lvl.Name)
	return nil
}

// Render repaints the whole canvas for the current state.
func (g *Game) Render() *render.Canvas {
	g.level.Draw(g.world.Atlas, g.canvas, g.world.ClearColor)
	return g.canvas
}

// Status returns a snapshot for HUDs.
func (g *Game) Status() Status {
	return Status{
		Level:      g.level.Name,
		LevelIndex: g.level.Index,
		LevelCount: len(g.world.Levels),
		Mask:       g.level.Player.State(),
		Pos:        g.level.Player.Sprite.Pos,
		Tick:       g.tick,
		Banner:     g.banner,
		Done:       g.done,
	}
}

// Display presents a finished frame. Implementations decide how: a
// terminal, an SSH session, a window.
type Display interface {
	Present(canvas *render.Canvas, st Status) error
}

// GameLoop drives a Game at a fixed tick rate: each tick reads at most one
// queued input event, steps the game, repaints and presents the canvas.
type GameLoop struct {
	game     *Game
	display  Display
	inputCh  chan Action
	tickRate int

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewGameLoop creates a loop presenting game on display.
func NewGameLoop(game *Game, display Display) *GameLoop {
	rate := game.world.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return &GameLoop{
		game:     game,
		display:  display,
		inputCh:  make(chan Action, InputChanSize),
		tickRate: rate,
		stopCh:   make(chan struct{}),
	}
}

// InputChan returns the channel input sources send actions on. Senders
// should not block; drop the event when the channel is full.
func (gl *GameLoop) InputChan() chan<- Action {
	return gl.inputCh
}

// Run ticks until Stop is called, a quit action arrives, the game is done
// and its closing banner has expired, or a tick fails. Only a failed tick
// returns an error.
func (gl *GameLoop) Run() error {
	ticker := time.NewTicker(time.Second / time.Duration(gl.tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-gl.stopCh:
			return nil
		case <-ticker.C:
			more, err := gl.Tick()
			if err != nil || !more {
				return err
			}
		}
	}
}

// Stop shuts down the loop. Safe to call more than once.
func (gl *GameLoop) Stop() {
	gl.stopOnce.Do(func() { close(gl.stopCh) })
}

// Tick runs one iteration and reports whether the loop should continue.
func (gl *GameLoop) Tick() (bool, error) {
	action := ActionNone
	select {
	case action = <-gl.inputCh:
	default:
	}
	if action == ActionQuit {
		return false, nil
	}

	if err := gl.game.Step(action); err != nil {
		return false, err
	}

	canvas := gl.game.Render()
	if err := gl.display.Present(canvas, gl.game.Status()); err != nil {
		return false, fmt.Errorf("present frame: %w", err)
	}
	// A finished game stays on screen until its banner expires.
	return !gl.game.Done() || gl.game.Status().Banner != "", nil
}
