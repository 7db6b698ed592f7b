package geom

import (
	"math"
)

// PointPolygonTest tests a point against a closed polygon contour.  With
// measureDist false it returns +1, -1 or 0 for a point strictly inside,
// strictly outside or exactly on the contour.  With measureDist true it
// returns the signed Euclidean distance to the nearest edge, positive
// inside and negative outside
func PointPolygonTest(contour []Point32f, pt Point32f, measureDist bool) float64 {

	n := len(contour)

	if n == 0 {
		return -1
	}

	px := float64(pt.X)
	py := float64(pt.Y)

	onEdge := false
	inside := false
	minDist := math.Inf(1)

	for i := 0; i < n; i++ {
		v0 := contour[i]
		v1 := contour[(i+1)%n]

		x0, y0 := float64(v0.X), float64(v0.Y)
		x1, y1 := float64(v1.X), float64(v1.Y)

		// exact on edge check, cross product zero and the point within
		// the segment span
		cross := (x1-x0)*(py-y0) - (y1-y0)*(px-x0)

		if cross == 0 &&
			px >= math.Min(x0, x1) && px <= math.Max(x0, x1) &&
			py >= math.Min(y0, y1) && py <= math.Max(y0, y1) {
			onEdge = true
		}

		// ray crossing toggle for the inside test
		if (y0 > py) != (y1 > py) {
			if px < (x1-x0)*(py-y0)/(y1-y0)+x0 {
				inside = !inside
			}
		}

		if measureDist {
			if d := segmentDistance(px, py, x0, y0, x1, y1); d < minDist {
				minDist = d
			}
		}
	}

	if !measureDist {
		if onEdge {
			return 0
		}
		if inside {
			return 1
		}
		return -1
	}

	if onEdge {
		return 0
	}
	if inside {
		return minDist
	}
	return -minDist
}

// PointRect32fTest tests a point against an oriented rectangle by building
// its 4 corner contour and delegating to PointPolygonTest
func PointRect32fTest(rect Rect32f, pt Point32f, measureDist bool,
	shear Shear) float64 {

	pts := Rect32fCorners(rect, shear)

	return PointPolygonTest(pts[:], pt, measureDist)
}

// PointRectTest tests a point against an integer rectangle, widened to the
// oriented form with angle zero first
func PointRectTest(rect Rect, pt Point32f, measureDist bool) float64 {
	return PointRect32fTest(Rect32fFromRect(rect), pt, measureDist, Shear{})
}

// segmentDistance returns the distance from point (px,py) to the segment
// (x0,y0)-(x1,y1)
func segmentDistance(px, py, x0, y0, x1, y1 float64) float64 {

	dx := x1 - x0
	dy := y1 - y0

	lenSq := dx*dx + dy*dy

	t := 0.0

	if lenSq > 0 {
		t = ((px-x0)*dx + (py-y0)*dy) / lenSq
		t = math.Max(0, math.Min(1, t))
	}

	cx := x0 + t*dx
	cy := y0 + t*dy

	return math.Hypot(px-cx, py-cy)
}
