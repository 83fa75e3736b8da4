package render

import (
	"strconv"
	"strings"
)

// Control sequences written by the ANSI sinks.
const (
	csi = "\x1b["

	Reset          = csi + "0m"
	ClearScreen    = csi + "2J"
	HideCursor     = csi + "?25l"
	ShowCursor     = csi + "?25h"
	EnterAltScreen = csi + "?1049h"
	LeaveAltScreen = csi + "?1049l"
)

// MoveTo positions the cursor at row, col (both 1-based).
func MoveTo(row, col int) string {
	return csi + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

// WriteCell writes c as a single SGR sequence followed by its rune. The
// sequence starts with a reset so no attribute carries over between cells.
func WriteCell(sb *strings.Builder, c Cell) {
	sb.WriteString(csi + "0")
	if c.Bold {
		sb.WriteString(";1")
	}
	writeRGB(sb, ";38;2;", c.FgR, c.FgG, c.FgB)
	writeRGB(sb, ";48;2;", c.BgR, c.BgG, c.BgB)
	sb.WriteByte('m')
	sb.WriteRune(c.Ch)
}

func writeRGB(sb *strings.Builder, prefix string, r, g, b uint8) {
	sb.WriteString(prefix)
	sb.WriteString(strconv.Itoa(int(r)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(g)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(b)))
}
