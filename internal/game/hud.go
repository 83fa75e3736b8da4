package game

import (
	"fmt"

	"mask-maze/internal/maps"
	"mask-maze/internal/render"
)

// HelpText is the key reference shown on text HUDs.
const HelpText = "←↑↓→/WASD Move  │  Space Mask  │  Q Quit"

var maskSwatches = map[int]render.Color{
	maps.ColorRed:    render.RGB(220, 60, 50),
	maps.ColorGreen:  render.RGB(70, 200, 80),
	maps.ColorBlue:   render.RGB(70, 110, 230),
	maps.ColorYellow: render.RGB(230, 200, 50),
}

// Swatch returns the HUD color of a mask state, transparent when unmasked.
func (s MaskState) Swatch() render.Color {
	if !s.Masked {
		return render.Transparent()
	}
	if c, ok := maskSwatches[s.Color]; ok {
		return c
	}
	return render.White
}

// Focus returns the canvas point displays should centre on: the middle of
// the player tile.
func (st Status) Focus() (int, int) {
	return st.Pos.X + render.TileSize/2, st.Pos.Y + render.TileSize/2
}

// HUD builds the status line for text displays.
func (st Status) HUD() render.HUD {
	return render.HUD{
		Title:  fmt.Sprintf("%s (%d/%d)", st.Level, st.LevelIndex+1, st.LevelCount),
		Mask:   st.Mask.String(),
		Swatch: st.Mask.Swatch(),
		Banner: st.Banner,
		Help:   HelpText,
	}
}
