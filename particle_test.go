package particletrack

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const eps = 1e-9

func TestNewParticleValidation(t *testing.T) {

	if _, err := NewParticle(0, 10, 1); err == nil {
		t.Error("expected error for zero states")
	}

	if _, err := NewParticle(5, 0, 1); err == nil {
		t.Error("expected error for zero particles")
	}

	p, err := NewParticle(5, 10, 1)

	if err != nil {
		t.Fatalf("NewParticle failed: %v", err)
	}

	if r, c := p.Particles.Dims(); r != 5 || c != 10 {
		t.Errorf("state matrix is %dx%d, want 5x10", r, c)
	}

	if p.Weights.Len() != 10 {
		t.Errorf("weight vector has %d elements, want 10", p.Weights.Len())
	}
}

func TestTransitionConstantVelocity(t *testing.T) {

	p, _ := NewParticle(2, 1, 1)

	dynamics := mat.NewDense(2, 2, []float64{2, 0, 0, 2})

	if err := p.SetDynamics(dynamics); err != nil {
		t.Fatalf("SetDynamics failed: %v", err)
	}

	if err := p.Init([]float64{10, 5}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	// move the particle one step so it has a velocity of (2, 1)
	p.Particles.Set(0, 0, 12)
	p.Particles.Set(1, 0, 6)

	// no noise configured, so the transition is the pure constant
	// velocity extrapolation
	p.Transition()

	if got := p.Particles.At(0, 0); math.Abs(got-14) > eps {
		t.Errorf("state 0 = %v, want 14", got)
	}

	if got := p.Particles.At(1, 0); math.Abs(got-7) > eps {
		t.Errorf("state 1 = %v, want 7", got)
	}

	// a second step continues at the same velocity
	p.Transition()

	if got := p.Particles.At(0, 0); math.Abs(got-16) > eps {
		t.Errorf("state 0 after second step = %v, want 16", got)
	}
}

func TestTransitionBounds(t *testing.T) {

	p, _ := NewParticle(3, 1, 1)

	bounds := []Bound{
		{Lower: 0, Upper: 100},
		{Lower: 0, Upper: 360, Circular: true},
		{Lower: 0, Upper: 0}, // unbounded
	}

	if err := p.SetBound(bounds); err != nil {
		t.Fatalf("SetBound failed: %v", err)
	}

	if err := p.Init([]float64{150, 370, 999}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	// identity dynamics, no noise: transition only enforces the bounds
	p.Transition()

	if got := p.Particles.At(0, 0); got != 100 {
		t.Errorf("clamped state = %v, want 100", got)
	}

	if got := p.Particles.At(1, 0); math.Abs(got-10) > eps {
		t.Errorf("circular state = %v, want 10", got)
	}

	if got := p.Particles.At(2, 0); got != 999 {
		t.Errorf("unbounded state = %v, want 999", got)
	}
}

func TestTransitionCircularNegative(t *testing.T) {

	p, _ := NewParticle(1, 1, 1)

	if err := p.SetBound([]Bound{{Lower: 0, Upper: 360, Circular: true}}); err != nil {
		t.Fatalf("SetBound failed: %v", err)
	}

	if err := p.Init([]float64{-30}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	p.Transition()

	if got := p.Particles.At(0, 0); math.Abs(got-330) > eps {
		t.Errorf("wrapped state = %v, want 330", got)
	}
}

func TestResampleConcentrates(t *testing.T) {

	p, _ := NewParticle(1, 3, 7)

	p.Particles.Set(0, 0, 1)
	p.Particles.Set(0, 1, 2)
	p.Particles.Set(0, 2, 3)

	// overwhelming weight on the last particle
	p.Weights.SetVec(0, -1e9)
	p.Weights.SetVec(1, -1e9)
	p.Weights.SetVec(2, 0)

	p.Resample()

	for j := 0; j < 3; j++ {

		if got := p.Particles.At(0, j); got != 3 {
			t.Errorf("particle %d = %v, want 3", j, got)
		}

		if got := p.Weights.AtVec(j); got != 0 {
			t.Errorf("weight %d = %v, want 0 after resampling", j, got)
		}
	}
}

func TestMaxParticle(t *testing.T) {

	p, _ := NewParticle(1, 4, 1)

	p.Weights.SetVec(0, -5)
	p.Weights.SetVec(1, -1)
	p.Weights.SetVec(2, -3)
	p.Weights.SetVec(3, -2)

	if got := p.MaxParticle(); got != 1 {
		t.Errorf("MaxParticle = %d, want 1", got)
	}
}

func TestMeanColumnCircular(t *testing.T) {

	p, _ := NewParticle(1, 2, 1)

	if err := p.SetBound([]Bound{{Lower: 0, Upper: 360, Circular: true}}); err != nil {
		t.Fatalf("SetBound failed: %v", err)
	}

	// equal weights on 350 and 10 degrees, the circular mean lies on the
	// wrap seam
	p.Particles.Set(0, 0, 350)
	p.Particles.Set(0, 1, 10)

	mean := p.MeanColumn()

	seam := math.Min(mean[0], 360-mean[0])

	if seam > 1e-6 {
		t.Errorf("circular mean = %v, want on the 0/360 seam", mean[0])
	}
}

func TestMeanColumnLinear(t *testing.T) {

	p, _ := NewParticle(1, 2, 1)

	p.Particles.Set(0, 0, 10)
	p.Particles.Set(0, 1, 20)

	mean := p.MeanColumn()

	if math.Abs(mean[0]-15) > eps {
		t.Errorf("mean = %v, want 15", mean[0])
	}
}
