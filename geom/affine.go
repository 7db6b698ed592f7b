package geom

import (
	"gonum.org/v1/gonum/mat"
)

// Affine builds the 2x3 affine matrix mapping the unit square
// [(0,0),(1,0),(1,1),(0,1)] onto the corners of rect with the given shear.
// The transform composes translation, rotation, shear and scale in that
// order
func Affine(rect Rect32f, shear Shear) *mat.Dense {
	sin, cos := sincosDeg(rect.Angle)

	// rotation * shear, columns scaled by width and height
	a11 := (cos - sin*shear.Y) * rect.Width
	a12 := (cos*shear.X - sin) * rect.Height
	a21 := (sin + cos*shear.Y) * rect.Width
	a22 := (sin*shear.X + cos) * rect.Height

	return mat.NewDense(2, 3, []float64{
		float64(a11), float64(a12), float64(rect.X),
		float64(a21), float64(a22), float64(rect.Y),
	})
}

// affineApply maps a point through a 2x3 affine matrix
func affineApply(m *mat.Dense, p Point32f) Point32f {
	x := m.At(0, 0)*float64(p.X) + m.At(0, 1)*float64(p.Y) + m.At(0, 2)
	y := m.At(1, 0)*float64(p.X) + m.At(1, 1)*float64(p.Y) + m.At(1, 2)

	return Point32f{X: float32(x), Y: float32(y)}
}
