package solvers

import (
	"gonum.org/v1/gonum/floats"

	"github.com/yur234/myphysicslab/internal/ode"
)

// Heun is the modified-Euler predictor-corrector: a full Euler step predicts
// an end state, the derivative there is evaluated again, and the two
// estimates are combined with equal weight (second order).
type Heun struct {
	sys                 ode.System
	x, k1, k2, mid, out []float64
}

func NewHeun(sys ode.System) *Heun {
	return &Heun{sys: sys}
}

func (s *Heun) Name() string { return "heun" }

func (s *Heun) ensureScratch(n int) {
	if len(s.x) != n {
		s.x = make([]float64, n)
		s.k1 = make([]float64, n)
		s.k2 = make([]float64, n)
		s.mid = make([]float64, n)
		s.out = make([]float64, n)
	}
}

func (s *Heun) Step(h float64) error {
	v := s.sys.StateVector()
	s.ensureScratch(v.Len())
	if err := v.ReadInto(s.x); err != nil {
		return err
	}

	if err := evaluate(s.sys, s.x, s.k1, 0); err != nil {
		return &ode.StepError{Solver: s.Name(), Stage: 1, H: h, Err: err}
	}

	// Predictor: full Euler step to the trial end state.
	copy(s.mid, s.x)
	floats.AddScaled(s.mid, h, s.k1)

	if err := evaluate(s.sys, s.mid, s.k2, h); err != nil {
		return &ode.StepError{Solver: s.Name(), Stage: 2, H: h, Err: err}
	}

	copy(s.out, s.x)
	floats.AddScaled(s.out, h/2, s.k1)
	floats.AddScaled(s.out, h/2, s.k2)

	return commit(s.sys, s.out)
}
