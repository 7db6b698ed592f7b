package geom

import (
	"image"
	"math"
)

// Point32f is a point in single precision image coordinates
type Point32f struct {
	X float32
	Y float32
}

// Pt32f creates a new Point32f with the given coordinates
func Pt32f(x, y float32) Point32f {
	return Point32f{X: x, Y: y}
}

// Rect represents an axis aligned rectangle with integer coordinates in
// (x, y, width, height) format
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Rect32f represents an oriented rectangle.  X and Y locate the top left
// corner, Angle is the rotation in degrees applied around that corner
// before translation
type Rect32f struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
	Angle  float32
}

// Box32f represents the center based form of an oriented rectangle.  Cx and
// Cy locate the rectangle center, Angle is the rotation in degrees
type Box32f struct {
	Cx     float32
	Cy     float32
	Width  float32
	Height float32
	Angle  float32
}

// Shear holds the affine shear deformation parameters applied when computing
// rectangle corners.  The zero value means no shear
type Shear struct {
	X float32
	Y float32
}

// IsZero reports whether no shear deformation is set
func (s Shear) IsZero() bool {
	return s.X == 0 && s.Y == 0
}

// NewRect creates a new Rect with the given coordinates
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// NewRect32f creates a new Rect32f with the angle normalized into [0, 360)
func NewRect32f(x, y, width, height, angle float32) Rect32f {
	return Rect32f{X: x, Y: y, Width: width, Height: height,
		Angle: NormAngle(angle)}
}

// NewBox32f creates a new Box32f with the angle normalized into [0, 360)
func NewBox32f(cx, cy, width, height, angle float32) Box32f {
	return Box32f{Cx: cx, Cy: cy, Width: width, Height: height,
		Angle: NormAngle(angle)}
}

// NormAngle normalizes an angle in degrees into the range [0, 360)
func NormAngle(angle float32) float32 {
	a := math.Mod(float64(angle), 360)

	if a < 0 {
		a += 360
	}

	return float32(a)
}

// Rect32fFromRect widens an integer rectangle to the oriented form with
// angle zero
func Rect32fFromRect(r Rect) Rect32f {
	return Rect32f{
		X:      float32(r.X),
		Y:      float32(r.Y),
		Width:  float32(r.Width),
		Height: float32(r.Height),
	}
}

// RectFromRect32f narrows an oriented rectangle to the integer form by
// rounding, discarding the angle
func RectFromRect32f(r Rect32f) Rect {
	return Rect{
		X:      round32(r.X),
		Y:      round32(r.Y),
		Width:  round32(r.Width),
		Height: round32(r.Height),
	}
}

// Box32fFromRect32f converts the corner based form to the center based form.
// The center is the top left corner displaced by the rotated half extents
func Box32fFromRect32f(r Rect32f) Box32f {
	sin, cos := sincosDeg(r.Angle)
	hw := r.Width / 2
	hh := r.Height / 2

	return Box32f{
		Cx:     r.X + hw*cos - hh*sin,
		Cy:     r.Y + hw*sin + hh*cos,
		Width:  r.Width,
		Height: r.Height,
		Angle:  r.Angle,
	}
}

// Rect32fFromBox32f converts the center based form back to the corner based
// form
func Rect32fFromBox32f(b Box32f) Rect32f {
	sin, cos := sincosDeg(b.Angle)
	hw := b.Width / 2
	hh := b.Height / 2

	return Rect32f{
		X:      b.Cx - hw*cos + hh*sin,
		Y:      b.Cy - hw*sin - hh*cos,
		Width:  b.Width,
		Height: b.Height,
		Angle:  b.Angle,
	}
}

// Box32fFromRect widens an integer rectangle to the center based oriented
// form with angle zero
func Box32fFromRect(r Rect) Box32f {
	return Box32fFromRect32f(Rect32fFromRect(r))
}

// RectFromBox32f narrows the center based form to the integer form by
// rounding, discarding the angle
func RectFromBox32f(b Box32f) Rect {
	return RectFromRect32f(Rect32fFromBox32f(b))
}

// ImageRect converts a Rect to the standard library representation
func (r Rect) ImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// sincosDeg returns the sine and cosine of an angle given in degrees
func sincosDeg(angle float32) (sin, cos float32) {
	s, c := math.Sincos(float64(angle) * math.Pi / 180)
	return float32(s), float32(c)
}

// round32 rounds a float32 to the nearest integer
func round32(v float32) int {
	return int(math.Round(float64(v)))
}
