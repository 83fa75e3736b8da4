package game

import (
	"fmt"

	"mask-maze/internal/geom"
	"mask-maze/internal/maps"
)

// Action represents one discrete input event.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionMask // drop the carried mask and/or pick one up
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionMask:
		return "mask"
	case ActionQuit:
		return "quit"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Dir returns the unit vector of a directional action.
func (a Action) Dir() (geom.Vec, bool) {
	switch a {
	case ActionUp:
		return geom.V(0, -1), true
	case ActionDown:
		return geom.V(0, 1), true
	case ActionLeft:
		return geom.V(-1, 0), true
	case ActionRight:
		return geom.V(1, 0), true
	}
	return geom.Vec{}, false
}

// MaskState is the player's carried-mask state: Unmasked, or Masked with a
// color.
type MaskState struct {
	Masked bool
	Color  int
}

// Unmasked is the state of a player carrying nothing.
var Unmasked = MaskState{}

// Masked returns the state of a player carrying a mask of color c.
func Masked(c int) MaskState {
	return MaskState{Masked: true, Color: c}
}

func (s MaskState) String() string {
	if !s.Masked {
		return "unmasked"
	}
	return "masked(" + maps.ColorName(s.Color) + ")"
}

// Player is the controlled actor.
type Player struct {
	Sprite    *Sprite
	HasMask   bool
	MaskColor int
	Move      geom.Vec // unit direction of travel, zero when standing
}

// State returns the carried-mask state.
func (p *Player) State() MaskState {
	if !p.HasMask {
		return Unmasked
	}
	return Masked(p.MaskColor)
}

// Steer applies a direction key. A key on the axis the player is already
// moving along (same or opposite direction) stops the player; a key on the
// other axis, or any key while standing, sets that direction.
func (p *Player) Steer(dir geom.Vec) {
	sameAxis := (dir.X != 0 && p.Move.X != 0) || (dir.Y != 0 && p.Move.Y != 0)
	if sameAxis {
		p.Move = geom.Vec{}
		return
	}
	p.Move = dir
}

// TakeMask puts on the mask's color.
func (p *Player) TakeMask(m *Mask) {
	p.HasMask = true
	p.MaskColor = m.Color
}

// DropMask takes off the carried mask and returns its color.
func (p *Player) DropMask() (int, bool) {
	if !p.HasMask {
		return 0, false
	}
	p.HasMask = false
	return p.MaskColor, true
}

// Mask is a color token lying in the world.
type Mask struct {
	Sprite *Sprite
	Color  int
}
