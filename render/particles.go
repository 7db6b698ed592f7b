// Package render draws particle filter state onto image frames for
// debugging and visualization.  Rendering uses the same corner geometry as
// observation scoring, so what is drawn is exactly what gets scored.
package render

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	particletrack "github.com/tracklite/go-particletrack"
	"github.com/tracklite/go-particletrack/geom"
)

// Particles draws every particle's oriented rectangle onto img
func Particles(img *gocv.Mat, p *particletrack.Particle, shear geom.Shear,
	clr color.RGBA, thickness int) {

	for i := 0; i < p.NumParticles; i++ {
		Particle(img, p, i, shear, clr, thickness)
	}
}

// Particle draws one particle's oriented rectangle onto img
func Particle(img *gocv.Mat, p *particletrack.Particle, i int,
	shear geom.Shear, clr color.RGBA, thickness int) {

	s := particletrack.StateGet(p, i)

	box := geom.NewBox32f(float32(s.X), float32(s.Y),
		float32(s.Width), float32(s.Height), float32(s.Angle))

	drawCorners(img, geom.Box32fCorners(box, shear), clr, thickness)
}

// Estimate draws the maximum a posteriori particle with a pose label
func Estimate(img *gocv.Mat, p *particletrack.Particle, shear geom.Shear,
	clr color.RGBA, thickness int, font Font) {

	i := p.MaxParticle()
	Particle(img, p, i, shear, clr, thickness)

	s := particletrack.StateGet(p, i)

	text := fmt.Sprintf("%.0f,%.0f %.0fdeg", s.X, s.Y, s.Angle)
	anchor := image.Pt(int(s.X-s.Width/2)+font.XPad,
		int(s.Y-s.Height/2)-font.YPad)

	gocv.PutTextWithParams(img, text, anchor, font.Face, font.Scale,
		font.Color, font.Thickness, font.LineType, false)
}

// SearchWindow draws the padded axis aligned search region around the
// maximum a posteriori particle
func SearchWindow(img *gocv.Mat, p *particletrack.Particle, shear geom.Shear,
	margin float32, clr color.RGBA, thickness int) {

	s := particletrack.StateGet(p, p.MaxParticle())

	box := geom.NewBox32f(float32(s.X), float32(s.Y),
		float32(s.Width), float32(s.Height), float32(s.Angle))

	bounds := image.Rect(0, 0, img.Cols(), img.Rows())
	region := geom.SearchRegion(geom.Rect32fFromBox32f(box), shear, margin, bounds)

	gocv.Rectangle(img, region, clr, thickness)
}

// drawCorners connects a corner sequence as a closed contour
func drawCorners(img *gocv.Mat, pts [4]geom.Point32f, clr color.RGBA,
	thickness int) {

	for j := 0; j < 4; j++ {
		a := pts[j]
		b := pts[(j+1)%4]

		gocv.Line(img, image.Pt(int(a.X), int(a.Y)),
			image.Pt(int(b.X), int(b.Y)), clr, thickness)
	}
}
