package observe

import (
	"errors"
	"image"

	"gocv.io/x/gocv"

	particletrack "github.com/tracklite/go-particletrack"
	"github.com/tracklite/go-particletrack/geom"
)

// Template scores particles by direct template distance: the negative L2
// norm of the pixel difference between the patch under a particle's
// rectangle and a reference patch.  The crop is axis aligned and sized from
// the oriented rectangle's unrotated extents, the angle only positions the
// box.  This trades rotation accurate sampling for speed
type Template struct {
	featureSize image.Point
	// reference is held resized to the feature size
	reference gocv.Mat
}

// NewTemplate creates a template model from a reference patch, which is
// resized once to featureSize.  The reference must have the same channel
// layout as the frames scored against it
func NewTemplate(reference gocv.Mat, featureSize image.Point) (*Template, error) {

	if reference.Empty() {
		return nil, errors.New("empty reference patch")
	}

	ref := gocv.NewMat()
	gocv.Resize(reference, &ref, featureSize, 0, 0, gocv.InterpolationArea)

	return &Template{
		featureSize: featureSize,
		reference:   ref,
	}, nil
}

// SetReference replaces the reference patch
func (m *Template) SetReference(reference gocv.Mat) error {

	if reference.Empty() {
		return errors.New("empty reference patch")
	}

	gocv.Resize(reference, &m.reference, m.featureSize, 0, 0,
		gocv.InterpolationArea)

	return nil
}

// Close frees the reference patch
func (m *Template) Close() error {
	return m.reference.Close()
}

// FeatureSize returns the patch resolution the model scores at
func (m *Template) FeatureSize() image.Point {
	return m.featureSize
}

// Likelihood writes the negative L2 template distance per particle into the
// ensemble weights.  Particles are independent, each writes only its own
// weight slot
func (m *Template) Likelihood(p *particletrack.Particle, frame gocv.Mat) error {

	if m.reference.Empty() {
		return errors.New("model is closed")
	}

	resized := gocv.NewMat()
	defer resized.Close()

	for i := 0; i < p.NumParticles; i++ {

		s := particletrack.StateGet(p, i)

		box := geom.NewBox32f(float32(s.X), float32(s.Y),
			float32(s.Width), float32(s.Height), float32(s.Angle))

		rect := geom.RectFromRect32f(geom.Rect32fFromBox32f(box))

		patch := cropUpright(frame, rect)
		gocv.Resize(patch, &resized, m.featureSize, 0, 0,
			gocv.InterpolationArea)
		patch.Close()

		// log likelihood of a Gaussian model, exp(-d^2 / sigma^2) with
		// the common sigma omitted as it does not affect the ML estimate
		p.Weights.SetVec(i, -gocv.NormWithMats(resized, m.reference, gocv.NormL2))
	}

	return nil
}
