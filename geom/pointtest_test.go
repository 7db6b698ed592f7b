package geom

import (
	"math"
	"testing"
)

func TestPointRect32fTestCenterInside(t *testing.T) {

	angles := []float32{0, 30, 123.4, 300}
	shears := []Shear{{}, {X: 0.2, Y: 0.1}}

	for _, angle := range angles {
		for _, shear := range shears {

			rect := Rect32f{X: 50, Y: 50, Width: 30, Height: 20, Angle: angle}

			// the exact center is the corner average
			pts := Rect32fCorners(rect, shear)

			var cx, cy float32

			for _, p := range pts {
				cx += p.X / 4
				cy += p.Y / 4
			}

			if got := PointRect32fTest(rect, Pt32f(cx, cy), false, shear); got <= 0 {
				t.Errorf("angle %v shear %+v: center classified %v, want positive",
					angle, shear, got)
			}
		}
	}
}

func TestPointRect32fTestFarOutside(t *testing.T) {

	rect := Rect32f{X: 50, Y: 50, Width: 30, Height: 20, Angle: 77}

	diag := float32(math.Hypot(30, 20))
	far := Pt32f(50+10*diag, 50+10*diag)

	if got := PointRect32fTest(rect, far, false, Shear{}); got >= 0 {
		t.Errorf("far point classified %v, want negative", got)
	}
}

func TestPointRectTestBoundary(t *testing.T) {

	rect := NewRect(10, 10, 20, 10)

	// midpoint of the top edge lies exactly on the contour
	if got := PointRectTest(rect, Pt32f(20, 10), false); got != 0 {
		t.Errorf("edge midpoint classified %v, want 0", got)
	}

	if got := PointRectTest(rect, Pt32f(20, 10), true); math.Abs(got) > eps {
		t.Errorf("edge midpoint distance %v, want 0", got)
	}
}

func TestPointRect32fTestDistance(t *testing.T) {

	rect := Rect32f{X: 10, Y: 10, Width: 20, Height: 10}

	// center of an upright 20x10 rect is 5 from the nearest edge
	if got := PointRect32fTest(rect, Pt32f(20, 15), true, Shear{}); math.Abs(got-5) > eps {
		t.Errorf("center distance %v, want 5", got)
	}

	// 3 outside the left edge
	if got := PointRect32fTest(rect, Pt32f(7, 15), true, Shear{}); math.Abs(got+3) > eps {
		t.Errorf("outside distance %v, want -3", got)
	}

	// rotated edge midpoint stays on the contour within tolerance
	rot := Rect32f{X: 40, Y: 40, Width: 16, Height: 8, Angle: 33}
	pts := Rect32fCorners(rot, Shear{})
	mid := Pt32f((pts[0].X+pts[1].X)/2, (pts[0].Y+pts[1].Y)/2)

	if got := PointRect32fTest(rot, mid, true, Shear{}); math.Abs(got) > eps {
		t.Errorf("rotated edge midpoint distance %v, want 0", got)
	}
}
