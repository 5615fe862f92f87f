package solvers

import (
	"gonum.org/v1/gonum/floats"

	"github.com/yur234/myphysicslab/internal/ode"
)

// RK4 is the classical fourth-order Runge-Kutta method: four staged
// evaluations (start, two midpoints, end) combined with weights 1,2,2,1
// scaled by h/6. Stage order is part of the algorithm's correctness.
type RK4 struct {
	sys               ode.System
	x, k1, k2, k3, k4 []float64
	stage, out        []float64
}

func NewRK4(sys ode.System) *RK4 {
	return &RK4{sys: sys}
}

func (s *RK4) Name() string { return "rk4" }

func (s *RK4) ensureScratch(n int) {
	if len(s.x) != n {
		s.x = make([]float64, n)
		s.k1 = make([]float64, n)
		s.k2 = make([]float64, n)
		s.k3 = make([]float64, n)
		s.k4 = make([]float64, n)
		s.stage = make([]float64, n)
		s.out = make([]float64, n)
	}
}

func (s *RK4) Step(h float64) error {
	v := s.sys.StateVector()
	s.ensureScratch(v.Len())
	if err := v.ReadInto(s.x); err != nil {
		return err
	}

	if err := evaluate(s.sys, s.x, s.k1, 0); err != nil {
		return &ode.StepError{Solver: s.Name(), Stage: 1, H: h, Err: err}
	}

	copy(s.stage, s.x)
	floats.AddScaled(s.stage, h/2, s.k1)
	if err := evaluate(s.sys, s.stage, s.k2, h/2); err != nil {
		return &ode.StepError{Solver: s.Name(), Stage: 2, H: h, Err: err}
	}

	copy(s.stage, s.x)
	floats.AddScaled(s.stage, h/2, s.k2)
	if err := evaluate(s.sys, s.stage, s.k3, h/2); err != nil {
		return &ode.StepError{Solver: s.Name(), Stage: 3, H: h, Err: err}
	}

	copy(s.stage, s.x)
	floats.AddScaled(s.stage, h, s.k3)
	if err := evaluate(s.sys, s.stage, s.k4, h); err != nil {
		return &ode.StepError{Solver: s.Name(), Stage: 4, H: h, Err: err}
	}

	copy(s.out, s.x)
	floats.AddScaled(s.out, h/6, s.k1)
	floats.AddScaled(s.out, h/3, s.k2)
	floats.AddScaled(s.out, h/3, s.k3)
	floats.AddScaled(s.out, h/6, s.k4)

	return commit(s.sys, s.out)
}
