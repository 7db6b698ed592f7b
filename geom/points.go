package geom

// Rect32fCorners returns the four corners of an oriented rectangle in
// top left, top right, bottom right, bottom left order.  A zero shear takes
// the closed form rotated box path, any other shear maps the unit square
// through the full affine matrix
func Rect32fCorners(rect Rect32f, shear Shear) [4]Point32f {

	if shear.IsZero() {
		return boxCorners(Box32fFromRect32f(rect))
	}

	return affineCorners(rect, shear)
}

// Box32fCorners returns the four corners of a center based oriented
// rectangle in top left, top right, bottom right, bottom left order
func Box32fCorners(box Box32f, shear Shear) [4]Point32f {
	return Rect32fCorners(Rect32fFromBox32f(box), shear)
}

// RectCorners returns the four corners of an integer rectangle, widened to
// the oriented form with angle zero first
func RectCorners(rect Rect, shear Shear) [4]Point32f {
	return Rect32fCorners(Rect32fFromRect(rect), shear)
}

// boxCorners rotates the half extents around the box center
func boxCorners(box Box32f) [4]Point32f {
	sin, cos := sincosDeg(box.Angle)
	hw := box.Width / 2
	hh := box.Height / 2

	rotate := func(dx, dy float32) Point32f {
		return Point32f{
			X: box.Cx + dx*cos - dy*sin,
			Y: box.Cy + dx*sin + dy*cos,
		}
	}

	return [4]Point32f{
		rotate(-hw, -hh),
		rotate(hw, -hh),
		rotate(hw, hh),
		rotate(-hw, hh),
	}
}

// affineCorners maps the unit square corners through the affine matrix
func affineCorners(rect Rect32f, shear Shear) [4]Point32f {
	m := Affine(rect, shear)
	unit := [4]Point32f{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	var pts [4]Point32f

	for i, p := range unit {
		pts[i] = affineApply(m, p)
	}

	return pts
}
