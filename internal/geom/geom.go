// Package geom holds the integer vector and rectangle types shared by the
// compositor and the collision engine. Everything is in pixel space.
package geom

// Vec is a position or displacement in pixels.
type Vec struct {
	X, Y int
}

// V is a shorthand for Vec{X: x, Y: y}.
func V(x, y int) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul scales both components by k.
func (v Vec) Mul(k int) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Div divides both components by k, truncating toward zero.
func (v Vec) Div(k int) Vec {
	return Vec{X: v.X / k, Y: v.Y / k}
}

// IsZero reports whether v is the zero vector.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// FloorDiv divides a by b rounding toward negative infinity. b must be positive.
func FloorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// Rect is an axis-aligned bounding box covering [X, X+W) x [Y, Y+H).
type Rect struct {
	X, Y int
	W, H int
}

// NewRect builds a Rect at pos with the given extent.
func NewRect(pos, extent Vec) Rect {
	return Rect{X: pos.X, Y: pos.Y, W: extent.X, H: extent.Y}
}

// Right returns the exclusive right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects reports whether r and o share at least one pixel. Both axes
// must overlap; touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}
