package geom

import (
	"image"
	"testing"
)

// intNear compares integers within a one pixel tolerance left by the
// clipper integer lattice
func intNear(a, b int) bool {

	d := a - b

	if d < 0 {
		d = -d
	}

	return d <= 1
}

func TestSearchRegionUpright(t *testing.T) {

	rect := Rect32f{X: 10, Y: 10, Width: 20, Height: 10}
	bounds := image.Rect(0, 0, 100, 100)

	region := SearchRegion(rect, Shear{}, 5, bounds)

	if !intNear(region.Min.X, 5) || !intNear(region.Min.Y, 5) ||
		!intNear(region.Max.X, 35) || !intNear(region.Max.Y, 25) {
		t.Errorf("region = %v, want about (5,5)-(35,25)", region)
	}
}

func TestSearchRegionClamped(t *testing.T) {

	rect := Rect32f{X: 2, Y: 2, Width: 20, Height: 10}
	bounds := image.Rect(0, 0, 100, 100)

	region := SearchRegion(rect, Shear{}, 10, bounds)

	if region.Min.X != 0 || region.Min.Y != 0 {
		t.Errorf("region %v not clamped to frame origin", region)
	}

	if !region.In(bounds) {
		t.Errorf("region %v exceeds bounds %v", region, bounds)
	}
}

func TestSearchRegionContainsRotatedRect(t *testing.T) {

	rect := Rect32f{X: 40, Y: 40, Width: 24, Height: 12, Angle: 60}
	bounds := image.Rect(0, 0, 200, 200)

	region := SearchRegion(rect, Shear{}, 4, bounds)

	for _, p := range Rect32fCorners(rect, Shear{}) {
		if !image.Pt(int(p.X), int(p.Y)).In(region) {
			t.Errorf("corner %v outside search region %v", p, region)
		}
	}
}
