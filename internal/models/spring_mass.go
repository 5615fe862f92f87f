package models

import (
	"fmt"
	"math"

	"github.com/yur234/myphysicslab/internal/ode"
	"github.com/yur234/myphysicslab/internal/state"
)

const (
	springPos = iota
	springVel
	springTime
	springKE
	springPE
	springTE
)

// SpringMass is a mass on a linear spring, displacement measured from the
// spring's natural length.
type SpringMass struct {
	vec       *state.Vector
	Mass      float64
	Stiffness float64
	Damping   float64
}

func NewSpringMass() *SpringMass {
	v := state.New("position", "velocity", "time",
		"kinetic energy", "potential energy", "total energy")
	v.MarkComputed(springKE, springPE, springTE)
	s := &SpringMass{
		vec:       v,
		Mass:      0.5,
		Stiffness: 3.0,
		Damping:   0.0,
	}
	s.Recalculate()
	return s
}

func (s *SpringMass) Name() string { return "spring_mass" }

func (s *SpringMass) StateVector() *state.Vector { return s.vec }

func (s *SpringMass) SetInitialState(pos, vel float64) error {
	vals := s.vec.Values()
	vals[springPos] = pos
	vals[springVel] = vel
	vals[springTime] = 0
	ke, pe := s.energies(vals)
	vals[springKE], vals[springPE], vals[springTE] = ke, pe, ke+pe
	return s.vec.Write(vals, false)
}

func (s *SpringMass) Evaluate(x, dxdt []float64, dt float64) error {
	pos, vel := x[springPos], x[springVel]
	if math.IsNaN(pos) || math.IsInf(pos, 0) || math.IsNaN(vel) || math.IsInf(vel, 0) {
		return fmt.Errorf("spring state not finite: %w", ode.ErrInvalidState)
	}

	dxdt[springPos] = vel
	dxdt[springVel] = (-s.Stiffness*pos - s.Damping*vel) / s.Mass
	dxdt[springTime] = 1
	return nil
}

func (s *SpringMass) energies(x []float64) (ke, pe float64) {
	ke = 0.5 * s.Mass * x[springVel] * x[springVel]
	pe = 0.5 * s.Stiffness * x[springPos] * x[springPos]
	return ke, pe
}

func (s *SpringMass) Energy(x []float64) float64 {
	ke, pe := s.energies(x)
	return ke + pe
}

func (s *SpringMass) Recalculate() {
	x := s.vec.Values()
	ke, pe := s.energies(x)
	s.vec.SetValue(springKE, ke)
	s.vec.SetValue(springPE, pe)
	s.vec.SetValue(springTE, ke+pe)
}
