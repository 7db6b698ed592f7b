// Package observe implements the appearance observation models that score
// particle hypotheses against image content.  Both models share one
// contract: a scoring pass reads every particle's state, extracts the image
// patch under its oriented rectangle and writes one log likelihood per
// particle into the ensemble weight vector.  Higher is better, values are
// not normalized probabilities, the resampling step handles that.
package observe

import (
	"image"

	"gocv.io/x/gocv"

	particletrack "github.com/tracklite/go-particletrack"
)

// Model scores every particle in an ensemble against the current frame and
// writes one log likelihood per particle into the ensemble weights.  The
// scoring loop has no data dependency between particles, each reads only
// its own state column and writes only its own weight slot
type Model interface {
	Likelihood(p *particletrack.Particle, frame gocv.Mat) error
}

// DefaultFeatureSize returns the default patch resolution appearance models
// score at
func DefaultFeatureSize() image.Point {
	return image.Pt(24, 24)
}
