package observe

import (
	"image"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"

	particletrack "github.com/tracklite/go-particletrack"
	"github.com/tracklite/go-particletrack/geom"
)

// file names of the persisted subspace model matrices within the model
// directory
const (
	EigenvaluesFile  = "pcaval.bin"
	EigenvectorsFile = "pcavec.bin"
	MeanFile         = "pcaavg.bin"
)

// PCA scores particles by their reconstruction error against a trained PCA
// subspace: the distance in feature space (Mahalanobis over the retained
// eigenvalues) plus the distance from feature space (residual energy
// orthogonal to the retained eigenvectors).  The model matrices are loaded
// once and read only during scoring, so one PCA instance is shared by all
// particles
type PCA struct {
	featureSize image.Point
	// eigenvalues is k x 1, strictly positive
	eigenvalues *mat.VecDense
	// eigenvectors is k x d with one retained component per row
	eigenvectors *mat.Dense
	// mean is d x 1
	mean *mat.VecDense
}

// NewPCA loads the persisted eigenvalues, eigenvectors and mean from dir.
// There is no degraded mode scoring without a model, callers should treat a
// load failure as fatal.  featureSize must match the resolution the model
// was trained at
func NewPCA(dir string, featureSize image.Point) (*PCA, error) {

	eigenvalues, err := loadVec(filepath.Join(dir, EigenvaluesFile))

	if err != nil {
		return nil, errors.Wrap(err, "loading eigenvalues")
	}

	eigenvectors, err := loadDense(filepath.Join(dir, EigenvectorsFile))

	if err != nil {
		return nil, errors.Wrap(err, "loading eigenvectors")
	}

	mean, err := loadVec(filepath.Join(dir, MeanFile))

	if err != nil {
		return nil, errors.Wrap(err, "loading mean")
	}

	d := featureSize.X * featureSize.Y
	k, vd := eigenvectors.Dims()

	if vd != d || mean.Len() != d {
		return nil, errors.Errorf(
			"model trained on %d element features, feature size %dx%d needs %d",
			vd, featureSize.X, featureSize.Y, d)
	}

	if eigenvalues.Len() != k {
		return nil, errors.Errorf("%d eigenvalues for %d eigenvectors",
			eigenvalues.Len(), k)
	}

	// eigenvalues divide the in space term, zero or negative values mean
	// a broken training run rather than anything recoverable here
	for i := 0; i < k; i++ {
		if eigenvalues.AtVec(i) <= 0 {
			return nil, errors.Errorf("eigenvalue %d is not positive: %g",
				i, eigenvalues.AtVec(i))
		}
	}

	return &PCA{
		featureSize:  featureSize,
		eigenvalues:  eigenvalues,
		eigenvectors: eigenvectors,
		mean:         mean,
	}, nil
}

// Close releases the model matrices.  Call once at shutdown, the model must
// not be scoring concurrently
func (m *PCA) Close() error {
	m.eigenvalues = nil
	m.eigenvectors = nil
	m.mean = nil
	return nil
}

// FeatureSize returns the patch resolution the model scores at
func (m *PCA) FeatureSize() image.Point {
	return m.featureSize
}

// Likelihood extracts the feature vector under every particle's oriented
// rectangle and writes -(DIFS + DFFS) per particle into the ensemble
// weights.  Either all particles get a score or none do
func (m *PCA) Likelihood(p *particletrack.Particle, frame gocv.Mat) error {

	if m.eigenvectors == nil {
		return errors.New("model is closed")
	}

	features, err := m.features(p, frame)

	if err != nil {
		return err
	}

	m.scoreDiffs(features, p.Weights)

	return nil
}

// features assembles all particles' feature vectors as columns of one d x N
// matrix
func (m *PCA) features(p *particletrack.Particle, frame gocv.Mat) (*mat.Dense, error) {

	d := m.featureSize.X * m.featureSize.Y
	features := mat.NewDense(d, p.NumParticles, nil)

	for n := 0; n < p.NumParticles; n++ {

		s := particletrack.StateGet(p, n)

		box := geom.NewBox32f(float32(s.X), float32(s.Y),
			float32(s.Width), float32(s.Height), float32(s.Angle))

		patch := cropOriented(frame, geom.Rect32fFromBox32f(box))

		vec, err := FeatureVector(patch, m.featureSize)
		patch.Close()

		if err != nil {
			return nil, errors.Wrapf(err, "extracting particle %d features", n)
		}

		features.SetCol(n, vec)
	}

	return features, nil
}

// scoreDiffs writes -(DIFS + DFFS) for every feature column into w in one
// pass
func (m *PCA) scoreDiffs(features *mat.Dense, w *mat.VecDense) {

	d, n := features.Dims()
	k, _ := m.eigenvectors.Dims()

	centered := mat.NewDense(d, n, nil)

	for j := 0; j < n; j++ {
		for i := 0; i < d; i++ {
			centered.Set(i, j, features.At(i, j)-m.mean.AtVec(i))
		}
	}

	// project every column into the subspace at once
	proj := mat.NewDense(k, n, nil)
	proj.Mul(m.eigenvectors, centered)

	for j := 0; j < n; j++ {

		difs := 0.0
		projEnergy := 0.0

		for i := 0; i < k; i++ {
			y := proj.At(i, j)
			difs += y * y / m.eigenvalues.AtVec(i)
			projEnergy += y * y
		}

		energy := 0.0

		for i := 0; i < d; i++ {
			v := centered.At(i, j)
			energy += v * v
		}

		// the residual can dip slightly negative in floating point when
		// the feature lies in the subspace
		dffs := math.Max(0, energy-projEnergy)

		w.SetVec(j, -(difs + dffs))
	}
}

// loadDense reads a persisted matrix from path
func loadDense(path string) (*mat.Dense, error) {

	b, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	var m mat.Dense

	if err := m.UnmarshalBinary(b); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", filepath.Base(path))
	}

	return &m, nil
}

// loadVec reads a persisted vector from path
func loadVec(path string) (*mat.VecDense, error) {

	b, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	var v mat.VecDense

	if err := v.UnmarshalBinary(b); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", filepath.Base(path))
	}

	return &v, nil
}
