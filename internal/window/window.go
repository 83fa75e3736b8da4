// Package window plays the game in a desktop window through ebiten.
package window

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"mask-maze/internal/game"
	"mask-maze/internal/render"
)

// Window adapts a Game to ebiten.Game. ebiten calls Update once per tick,
// so the game runs at the TPS set with ebiten.SetTPS.
type Window struct {
	game  *game.Game
	frame *ebiten.Image
	pix   []byte
}

// New creates the adapter.
func New(g *game.Game) *Window {
	return &Window{
		game:  g,
		frame: ebiten.NewImage(render.CanvasWidth, render.CanvasHeight),
	}
}

var keyActions = []struct {
	keys   []ebiten.Key
	action game.Action
}{
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, game.ActionUp},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, game.ActionDown},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, game.ActionLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, game.ActionRight},
	{[]ebiten.Key{ebiten.KeySpace, ebiten.KeyE}, game.ActionMask},
	{[]ebiten.Key{ebiten.KeyEscape, ebiten.KeyQ}, game.ActionQuit},
}

// actionFor returns the first action whose key was pressed this tick. One
// action per tick matches the other displays.
func actionFor(justPressed func(ebiten.Key) bool) game.Action {
	for _, ka := range keyActions {
		for _, k := range ka.keys {
			if justPressed(k) {
				return ka.action
			}
		}
	}
	return game.ActionNone
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	a := actionFor(inpututil.IsKeyJustPressed)
	if a == game.ActionQuit {
		return ebiten.Termination
	}
	if err := w.game.Step(a); err != nil {
		log.Printf("Game stopped: %v", err)
		return fmt.Errorf("step: %w", err)
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	canvas := w.game.Render()
	w.pix = canvas.RGBA(w.pix)
	w.frame.WritePixels(w.pix)
	screen.DrawImage(w.frame, nil)

	st := w.game.Status()
	msg := fmt.Sprintf("%s (%d/%d)  %s", st.Level, st.LevelIndex+1, st.LevelCount, st.Mask)
	if st.Banner != "" {
		msg += "\n" + st.Banner
	}
	ebitenutil.DebugPrint(screen, msg)
}

// Layout implements ebiten.Game. The logical screen is always the canvas
// size; ebiten scales it to the window.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return render.CanvasWidth, render.CanvasHeight
}
