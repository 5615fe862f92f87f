package solvers

import (
	"fmt"
	"math"

	"github.com/yur234/myphysicslab/internal/ode"
	"github.com/yur234/myphysicslab/internal/state"
)

// oscillator is the unit simple harmonic oscillator x'' = -x, with the
// analytic solution x(t) = cos(t) for x0=1, v0=0.
type oscillator struct {
	vec *state.Vector
}

func newOscillator(pos, vel float64) *oscillator {
	v := state.New("position", "velocity")
	_ = v.Write([]float64{pos, vel}, true)
	return &oscillator{vec: v}
}

func (o *oscillator) StateVector() *state.Vector { return o.vec }

func (o *oscillator) Evaluate(x, dxdt []float64, dt float64) error {
	dxdt[0] = x[1]
	dxdt[1] = -x[0]
	return nil
}

func (o *oscillator) Energy(x []float64) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

// pendulum is an undamped pendulum, used for the hand-computed scenario.
type pendulum struct {
	vec             *state.Vector
	gravity, length float64
}

func newPendulum(angle, omega float64) *pendulum {
	v := state.New("angle", "angular velocity")
	_ = v.Write([]float64{angle, omega}, true)
	return &pendulum{vec: v, gravity: 9.8, length: 1}
}

func (p *pendulum) StateVector() *state.Vector { return p.vec }

func (p *pendulum) Evaluate(x, dxdt []float64, dt float64) error {
	dxdt[0] = x[1]
	dxdt[1] = -(p.gravity / p.length) * math.Sin(x[0])
	return nil
}

// faultySystem behaves like the oscillator until a given number of
// derivative evaluations, then reports an invalid state.
type faultySystem struct {
	vec       *state.Vector
	failAfter int
	calls     int
}

func newFaultySystem(failAfter int) *faultySystem {
	v := state.New("position", "velocity")
	_ = v.Write([]float64{1, 0}, true)
	return &faultySystem{vec: v, failAfter: failAfter}
}

func (f *faultySystem) StateVector() *state.Vector { return f.vec }

func (f *faultySystem) Evaluate(x, dxdt []float64, dt float64) error {
	f.calls++
	if f.calls > f.failAfter {
		return fmt.Errorf("near-zero separation: %w", ode.ErrInvalidState)
	}
	dxdt[0] = x[1]
	dxdt[1] = -x[0]
	return nil
}

func (f *faultySystem) Energy(x []float64) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

// silentSystem integrates fine but has no energy capability.
type silentSystem struct {
	vec *state.Vector
}

func newSilentSystem() *silentSystem {
	return &silentSystem{vec: state.New("x")}
}

func (s *silentSystem) StateVector() *state.Vector { return s.vec }

func (s *silentSystem) Evaluate(x, dxdt []float64, dt float64) error {
	dxdt[0] = -x[0]
	return nil
}

// recordingSolver wraps a solver and records accepted sub-step sizes.
type recordingSolver struct {
	inner ode.Solver
	steps []float64
}

func (r *recordingSolver) Name() string { return r.inner.Name() }

func (r *recordingSolver) Step(h float64) error {
	err := r.inner.Step(h)
	if err == nil {
		r.steps = append(r.steps, h)
	}
	return err
}
