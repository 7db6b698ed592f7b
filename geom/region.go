package geom

import (
	"image"
	"math"

	clipper "github.com/ctessum/go.clipper"
)

// clipperScale converts float pixel coordinates to the integer lattice the
// polygon clipping library works on
const clipperScale = 1000

// SearchRegion returns the axis aligned bounding rectangle of an oriented
// rectangle offset outward by margin pixels, clamped to the frame bounds.
// Trackers use it to bound the image region worth sampling around a
// tracked object
func SearchRegion(rect Rect32f, shear Shear, margin float32,
	bounds image.Rectangle) image.Rectangle {

	pts := Rect32fCorners(rect, shear)

	var path clipper.Path

	for _, p := range pts {
		path = append(path, &clipper.IntPoint{
			X: clipper.CInt(math.Round(float64(p.X) * clipperScale)),
			Y: clipper.CInt(math.Round(float64(p.Y) * clipperScale)),
		})
	}

	co := clipper.NewClipperOffset()
	co.AddPath(path, clipper.JtRound, clipper.EtClosedPolygon)

	solution := co.Execute(float64(margin) * clipperScale)

	if len(solution) == 0 {
		// degenerate rectangle, fall back to the corner bounds
		return cornerBounds(pts).Intersect(bounds)
	}

	minX := math.Inf(1)
	minY := math.Inf(1)
	maxX := math.Inf(-1)
	maxY := math.Inf(-1)

	for _, sol := range solution {
		for _, pt := range sol {
			minX = math.Min(minX, float64(pt.X))
			minY = math.Min(minY, float64(pt.Y))
			maxX = math.Max(maxX, float64(pt.X))
			maxY = math.Max(maxY, float64(pt.Y))
		}
	}

	region := image.Rect(
		int(math.Floor(minX/clipperScale)),
		int(math.Floor(minY/clipperScale)),
		int(math.Ceil(maxX/clipperScale)),
		int(math.Ceil(maxY/clipperScale)),
	)

	return region.Intersect(bounds)
}

// cornerBounds returns the axis aligned bounds of a corner set
func cornerBounds(pts [4]Point32f) image.Rectangle {

	minX, minY := float64(pts[0].X), float64(pts[0].Y)
	maxX, maxY := minX, minY

	for _, p := range pts[1:] {
		minX = math.Min(minX, float64(p.X))
		minY = math.Min(minY, float64(p.Y))
		maxX = math.Max(maxX, float64(p.X))
		maxY = math.Max(maxY, float64(p.Y))
	}

	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)))
}
