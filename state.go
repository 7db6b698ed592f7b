package particletrack

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// NumRectStates is the dimension of the oriented rectangle state vector
const NumRectStates = 5

// State is one tracking hypothesis, the pose of an oriented rectangle.
// X and Y locate the rotation center, Angle is in degrees
type State struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Angle  float64
}

// NewState creates a new State with the given pose
func NewState(x, y, width, height, angle float64) State {
	return State{X: x, Y: y, Width: width, Height: height, Angle: angle}
}

// Vector returns the state as a flat vector in ensemble column order
func (s State) Vector() []float64 {
	return []float64{s.X, s.Y, s.Width, s.Height, s.Angle}
}

// StateFromVector builds a State from a flat vector in ensemble column
// order
func StateFromVector(v []float64) State {
	return State{X: v[0], Y: v[1], Width: v[2], Height: v[3], Angle: v[4]}
}

// String formats the state for logging
func (s State) String() string {
	return fmt.Sprintf("x:%.2f y:%.2f width:%.2f height:%.2f angle:%.2f",
		s.X, s.Y, s.Width, s.Height, s.Angle)
}

// StateGet reads particle i's state from the ensemble.  No range checking
// is performed
func StateGet(p *Particle, i int) State {
	return State{
		X:      p.Particles.At(0, i),
		Y:      p.Particles.At(1, i),
		Width:  p.Particles.At(2, i),
		Height: p.Particles.At(3, i),
		Angle:  p.Particles.At(4, i),
	}
}

// StateSet writes particle i's state into the ensemble.  No range checking
// is performed, bound enforcement is a separate explicit step
func StateSet(p *Particle, i int, s State) {
	p.Particles.Set(0, i, s.X)
	p.Particles.Set(1, i, s.Y)
	p.Particles.Set(2, i, s.Width)
	p.Particles.Set(3, i, s.Height)
	p.Particles.Set(4, i, s.Angle)
}

// ConfigureStates configures the ensemble for the oriented rectangle state
// model: constant velocity dynamics on every dimension, the given per
// dimension noise standard deviations, and bounds that keep rectangles
// within an imgWidth x imgHeight frame with a circular angle in [0, 360)
func ConfigureStates(p *Particle, imgWidth, imgHeight int, std State) error {

	if p.NumStates != NumRectStates {
		return fmt.Errorf("ensemble has %d states, rectangle model needs %d",
			p.NumStates, NumRectStates)
	}

	// constant velocity on each dimension, no cross coupling
	dynamics := mat.NewDense(NumRectStates, NumRectStates, nil)

	for i := 0; i < NumRectStates; i++ {
		dynamics.Set(i, i, 2)
	}

	bounds := []Bound{
		{Lower: 0, Upper: float64(imgWidth - 1)},
		{Lower: 0, Upper: float64(imgHeight - 1)},
		{Lower: 1, Upper: float64(imgWidth)},
		{Lower: 1, Upper: float64(imgHeight)},
		{Lower: 0, Upper: 360, Circular: true},
	}

	if err := p.SetDynamics(dynamics); err != nil {
		return err
	}

	if err := p.SetNoise(mat.NewVecDense(NumRectStates, std.Vector())); err != nil {
		return err
	}

	return p.SetBound(bounds)
}

// AdditionalBound clamps each particle's width and height so the rectangle
// stays inside the frame.  The generic bound table cannot express a limit
// that depends on another state dimension, so this runs in place after
// Transition and before observation scoring, using each particle's already
// updated x and y
func AdditionalBound(p *Particle, imgWidth, imgHeight int) {

	for i := 0; i < p.NumParticles; i++ {

		x := p.Particles.At(0, i)
		y := p.Particles.At(1, i)

		if w := p.Particles.At(2, i); w > float64(imgWidth)-x {
			p.Particles.Set(2, i, float64(imgWidth)-x)
		}

		if h := p.Particles.At(3, i); h > float64(imgHeight)-y {
			p.Particles.Set(3, i, float64(imgHeight)-y)
		}
	}
}
