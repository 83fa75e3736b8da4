package server

import (
	"bytes"

	"mask-maze/internal/game"
)

// keyActions maps single input bytes to actions. Letters match either case.
var keyActions = map[byte]game.Action{
	'w':  game.ActionUp,
	's':  game.ActionDown,
	'a':  game.ActionLeft,
	'd':  game.ActionRight,
	' ':  game.ActionMask,
	'e':  game.ActionMask,
	'q':  game.ActionQuit,
	0x03: game.ActionQuit, // Ctrl-C
}

// arrowActions maps the final byte of a cursor key sequence.
var arrowActions = map[byte]game.Action{
	'A': game.ActionUp,
	'B': game.ActionDown,
	'C': game.ActionRight,
	'D': game.ActionLeft,
}

// parseInput converts one read from the session into actions. Cursor keys
// arrive as ESC [ x in normal mode and ESC O x in application mode; any other
// three-byte escape is skipped whole, and unknown bytes are dropped.
func parseInput(data []byte) []game.Action {
	var actions []game.Action
	for len(data) > 0 {
		if len(data) >= 3 && data[0] == 0x1b && (data[1] == '[' || data[1] == 'O') {
			if a, ok := arrowActions[data[2]]; ok {
				actions = append(actions, a)
			}
			data = data[3:]
			continue
		}
		if a, ok := keyActions[bytes.ToLower(data[:1])[0]]; ok {
			actions = append(actions, a)
		}
		data = data[1:]
	}
	return actions
}
