package render

const (
	// CanvasWidth is the logical width of the off-screen canvas in pixels.
	CanvasWidth = 640
	// CanvasHeight is the logical height of the off-screen canvas in pixels.
	CanvasHeight = 480
)

// Color is an (r, g, b, a) pixel. Alpha is binary: A == 0 is fully
// transparent, any other value is fully opaque. Channels are expected to be
// in 0..255 and are not clamped.
type Color struct {
	R, G, B, A int
}

// Opaque reports whether the pixel should be drawn.
func (c Color) Opaque() bool {
	return c.A != 0
}

// RGB is a shorthand to create an opaque color.
func RGB(r, g, b int) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Transparent returns a fully transparent pixel.
func Transparent() Color {
	return Color{}
}

var (
	Black = RGB(0, 0, 0)
	White = RGB(255, 255, 255)
)

// Canvas is a width x height grid of colors. Writes outside the grid are
// silently dropped so sprites may hang partly or fully off screen.
type Canvas struct {
	width, height int
	pix           []Color // row-major, width*height
}

// NewCanvas creates a canvas filled with opaque black.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
	}
	c.Clear(Black)
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Clear overwrites every pixel with col.
func (c *Canvas) Clear(col Color) {
	for i := range c.pix {
		c.pix[i] = col
	}
}

// Set writes col at (x, y) if the position lies on the canvas.
func (c *Canvas) Set(x, y int, col Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.pix[y*c.width+x] = col
}

// At returns the pixel at (x, y), or the zero Color outside the canvas.
func (c *Canvas) At(x, y int) Color {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Color{}
	}
	return c.pix[y*c.width+x]
}

// RGBA packs the canvas into dst as 8-bit RGBA, growing dst when needed.
// Every pixel is emitted with alpha 255; the canvas has no see-through areas.
func (c *Canvas) RGBA(dst []byte) []byte {
	n := c.width * c.height * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, p := range c.pix {
		o := i * 4
		dst[o] = uint8(p.R)
		dst[o+1] = uint8(p.G)
		dst[o+2] = uint8(p.B)
		dst[o+3] = 0xFF
	}
	return dst
}
