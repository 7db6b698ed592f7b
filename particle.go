package particletrack

import (
	"errors"
	"fmt"
	"math"

	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Bound constrains one state dimension during transition.  Lower == Upper
// means the dimension is unbounded.  A circular dimension wraps into
// [Lower, Upper) instead of clamping, which keeps angles continuous across
// the 0/360 seam
type Bound struct {
	Lower    float64
	Upper    float64
	Circular bool
}

// Particle holds the particle ensemble: the current state values, one
// column per particle, plus the dynamics, noise and bound configuration
// used to propagate them
type Particle struct {
	// NumStates is the dimension of each particle's state vector
	NumStates int
	// NumParticles is the ensemble size
	NumParticles int
	// Particles holds the current state values as a NumStates x
	// NumParticles matrix
	Particles *mat.Dense
	// Weights holds one log likelihood per particle, written by the
	// observation models
	Weights *mat.VecDense
	// prev holds the previous state values used by the constant velocity
	// transition model
	prev *mat.Dense
	// dynamics is the configured linear model, its diagonal supplies the
	// per dimension velocity coefficients applied during transition
	dynamics *mat.Dense
	// std holds the per dimension process noise standard deviations
	std *mat.VecDense
	// bounds holds one Bound per state dimension
	bounds []Bound
	// rng drives noise sampling and resampling
	rng *exprand.Rand
}

// NewParticle creates a particle ensemble of numParticles hypotheses with
// numStates dimensions each.  The seed drives noise sampling and
// resampling so runs can be reproduced
func NewParticle(numStates, numParticles int, seed uint64) (*Particle, error) {

	if numStates <= 0 {
		return nil, errors.New("numStates must be positive")
	}

	if numParticles <= 0 {
		return nil, errors.New("numParticles must be positive")
	}

	return &Particle{
		NumStates:    numStates,
		NumParticles: numParticles,
		Particles:    mat.NewDense(numStates, numParticles, nil),
		Weights:      mat.NewVecDense(numParticles, nil),
		prev:         mat.NewDense(numStates, numParticles, nil),
		rng:          exprand.New(exprand.NewSource(seed)),
	}, nil
}

// SetDynamics configures the linear dynamics model.  The matrix must be
// square with one row per state dimension
func (p *Particle) SetDynamics(dynamics *mat.Dense) error {

	r, c := dynamics.Dims()

	if r != p.NumStates || c != p.NumStates {
		return fmt.Errorf("dynamics must be %dx%d, got %dx%d",
			p.NumStates, p.NumStates, r, c)
	}

	p.dynamics = dynamics

	return nil
}

// SetNoise configures the per dimension process noise standard deviations
func (p *Particle) SetNoise(std *mat.VecDense) error {

	if std.Len() != p.NumStates {
		return fmt.Errorf("noise std must have %d elements, got %d",
			p.NumStates, std.Len())
	}

	p.std = std

	return nil
}

// SetBound configures the per dimension bound table
func (p *Particle) SetBound(bounds []Bound) error {

	if len(bounds) != p.NumStates {
		return fmt.Errorf("bound table must have %d rows, got %d",
			p.NumStates, len(bounds))
	}

	p.bounds = bounds

	return nil
}

// Init seeds every particle from the given state column and resets the
// previous states so the first transition has zero velocity
func (p *Particle) Init(column []float64) error {

	if len(column) != p.NumStates {
		return fmt.Errorf("init column must have %d elements, got %d",
			p.NumStates, len(column))
	}

	for j := 0; j < p.NumParticles; j++ {
		for i := 0; i < p.NumStates; i++ {
			p.Particles.Set(i, j, column[i])
			p.prev.Set(i, j, column[i])
		}
		p.Weights.SetVec(j, 0)
	}

	return nil
}

// Transition propagates every particle one time step.  Each dimension
// extrapolates at constant velocity, new = cur + (d-1)*(cur - prev) + noise,
// where d is the diagonal dynamics coefficient (d=2 is full constant
// velocity, d=1 degrades to a random walk), then the bound table is
// enforced with circular wraparound for flagged dimensions
func (p *Particle) Transition() {

	for i := 0; i < p.NumStates; i++ {

		d := 1.0

		if p.dynamics != nil {
			d = p.dynamics.At(i, i)
		}

		var noise distuv.Normal
		sigma := 0.0

		if p.std != nil {
			sigma = p.std.AtVec(i)
		}

		if sigma > 0 {
			noise = distuv.Normal{Mu: 0, Sigma: sigma, Src: p.rng}
		}

		for j := 0; j < p.NumParticles; j++ {

			cur := p.Particles.At(i, j)
			next := cur + (d-1)*(cur-p.prev.At(i, j))

			if sigma > 0 {
				next += noise.Rand()
			}

			p.prev.Set(i, j, cur)
			p.Particles.Set(i, j, p.boundValue(i, next))
		}
	}
}

// boundValue applies dimension i's bound to a value
func (p *Particle) boundValue(i int, v float64) float64 {

	if p.bounds == nil {
		return v
	}

	b := p.bounds[i]

	// lower == upper encodes no bound
	if b.Lower == b.Upper {
		return v
	}

	if b.Circular {
		span := b.Upper - b.Lower
		v = math.Mod(v-b.Lower, span)

		if v < 0 {
			v += span
		}

		return v + b.Lower
	}

	return math.Max(b.Lower, math.Min(b.Upper, v))
}

// Resample draws a new ensemble from the current one in proportion to the
// particle weights.  Log weights are exponentiated relative to their
// maximum before normalizing, and the low variance systematic scheme keeps
// resampling noise down.  Weights reset to zero (log of one) afterwards
func (p *Particle) Resample() {

	n := p.NumParticles

	w := make([]float64, n)
	maxw := math.Inf(-1)

	for j := 0; j < n; j++ {
		if lw := p.Weights.AtVec(j); lw > maxw {
			maxw = lw
		}
	}

	sum := 0.0

	for j := 0; j < n; j++ {
		w[j] = math.Exp(p.Weights.AtVec(j) - maxw)
		sum += w[j]
	}

	newStates := mat.NewDense(p.NumStates, n, nil)
	newPrev := mat.NewDense(p.NumStates, n, nil)

	// systematic resampling
	u := p.rng.Float64() / float64(n)
	cum := w[0] / sum
	src := 0

	for j := 0; j < n; j++ {

		for u > cum && src < n-1 {
			src++
			cum += w[src] / sum
		}

		for i := 0; i < p.NumStates; i++ {
			newStates.Set(i, j, p.Particles.At(i, src))
			newPrev.Set(i, j, p.prev.At(i, src))
		}

		u += 1 / float64(n)
	}

	p.Particles = newStates
	p.prev = newPrev

	for j := 0; j < n; j++ {
		p.Weights.SetVec(j, 0)
	}
}

// MaxParticle returns the index of the particle with the highest log
// likelihood, the maximum a posteriori estimate after an observation pass
func (p *Particle) MaxParticle() int {

	best := 0
	bestw := p.Weights.AtVec(0)

	for j := 1; j < p.NumParticles; j++ {
		if w := p.Weights.AtVec(j); w > bestw {
			best = j
			bestw = w
		}
	}

	return best
}

// MeanColumn returns the weighted mean state over the ensemble.  Circular
// dimensions average on the unit circle so estimates near the wrap seam do
// not collapse toward the range midpoint
func (p *Particle) MeanColumn() []float64 {

	n := p.NumParticles

	w := make([]float64, n)
	maxw := math.Inf(-1)

	for j := 0; j < n; j++ {
		if lw := p.Weights.AtVec(j); lw > maxw {
			maxw = lw
		}
	}

	sum := 0.0

	for j := 0; j < n; j++ {
		w[j] = math.Exp(p.Weights.AtVec(j) - maxw)
		sum += w[j]
	}

	mean := make([]float64, p.NumStates)

	for i := 0; i < p.NumStates; i++ {

		if p.bounds != nil && p.bounds[i].Circular &&
			p.bounds[i].Upper > p.bounds[i].Lower {

			b := p.bounds[i]
			span := b.Upper - b.Lower

			var sinSum, cosSum float64

			for j := 0; j < n; j++ {
				theta := 2 * math.Pi * (p.Particles.At(i, j) - b.Lower) / span
				sinSum += w[j] * math.Sin(theta)
				cosSum += w[j] * math.Cos(theta)
			}

			theta := math.Atan2(sinSum, cosSum)

			if theta < 0 {
				theta += 2 * math.Pi
			}

			mean[i] = b.Lower + theta*span/(2*math.Pi)
			continue
		}

		acc := 0.0

		for j := 0; j < n; j++ {
			acc += w[j] * p.Particles.At(i, j)
		}

		mean[i] = acc / sum
	}

	return mean
}
