package solvers

import (
	"gonum.org/v1/gonum/floats"

	"github.com/yur234/myphysicslab/internal/ode"
)

// Euler is the explicit first-order method: one derivative evaluation at the
// start state. Cheapest and least accurate.
type Euler struct {
	sys        ode.System
	x, k1, out []float64
}

func NewEuler(sys ode.System) *Euler {
	return &Euler{sys: sys}
}

func (s *Euler) Name() string { return "euler" }

func (s *Euler) ensureScratch(n int) {
	if len(s.x) != n {
		s.x = make([]float64, n)
		s.k1 = make([]float64, n)
		s.out = make([]float64, n)
	}
}

func (s *Euler) Step(h float64) error {
	v := s.sys.StateVector()
	s.ensureScratch(v.Len())
	if err := v.ReadInto(s.x); err != nil {
		return err
	}

	if err := evaluate(s.sys, s.x, s.k1, 0); err != nil {
		return &ode.StepError{Solver: s.Name(), Stage: 1, H: h, Err: err}
	}

	copy(s.out, s.x)
	floats.AddScaled(s.out, h, s.k1)

	return commit(s.sys, s.out)
}
