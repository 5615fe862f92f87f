package models

import (
	"fmt"
	"math"

	"github.com/yur234/myphysicslab/internal/ode"
	"github.com/yur234/myphysicslab/internal/state"
)

// Pendulum slot layout; the energy slots are bookkeeping, not state.
const (
	pendAngle = iota
	pendOmega
	pendTime
	pendKE
	pendPE
	pendTE
)

// Pendulum is a rigid pendulum with optional viscous damping. Angle is
// measured from the straight-down rest position.
type Pendulum struct {
	vec     *state.Vector
	Mass    float64
	Length  float64
	Damping float64
	Gravity float64
}

func NewPendulum() *Pendulum {
	v := state.New("angle", "angular velocity", "time",
		"kinetic energy", "potential energy", "total energy")
	v.MarkComputed(pendKE, pendPE, pendTE)
	p := &Pendulum{
		vec:     v,
		Mass:    1.0,
		Length:  1.0,
		Damping: 0.0,
		Gravity: 9.8,
	}
	p.Recalculate()
	return p
}

func (p *Pendulum) Name() string { return "pendulum" }

func (p *Pendulum) StateVector() *state.Vector { return p.vec }

// SetInitialState positions the pendulum discontinuously, resetting elapsed
// time and bumping the sequence counters of every changed slot.
func (p *Pendulum) SetInitialState(angle, omega float64) error {
	vals := p.vec.Values()
	vals[pendAngle] = angle
	vals[pendOmega] = omega
	vals[pendTime] = 0
	ke, pe := p.energies(vals)
	vals[pendKE], vals[pendPE], vals[pendTE] = ke, pe, ke+pe
	return p.vec.Write(vals, false)
}

// SetMass edits the mass parameter; the dependent energy slots change
// discontinuously.
func (p *Pendulum) SetMass(m float64) {
	p.Mass = m
	p.refreshDiscontinuous()
}

func (p *Pendulum) refreshDiscontinuous() {
	vals := p.vec.Values()
	ke, pe := p.energies(vals)
	vals[pendKE], vals[pendPE], vals[pendTE] = ke, pe, ke+pe
	_ = p.vec.Write(vals, false)
}

func (p *Pendulum) Evaluate(x, dxdt []float64, dt float64) error {
	theta, omega := x[pendAngle], x[pendOmega]
	if math.IsNaN(theta) || math.IsInf(theta, 0) || math.IsNaN(omega) || math.IsInf(omega, 0) {
		return fmt.Errorf("pendulum state not finite: %w", ode.ErrInvalidState)
	}

	mL2 := p.Mass * p.Length * p.Length
	dxdt[pendAngle] = omega
	dxdt[pendOmega] = (-p.Damping*omega - p.Mass*p.Gravity*p.Length*math.Sin(theta)) / mL2
	dxdt[pendTime] = 1
	return nil
}

func (p *Pendulum) energies(x []float64) (ke, pe float64) {
	omega := x[pendOmega]
	theta := x[pendAngle]
	ke = 0.5 * p.Mass * p.Length * p.Length * omega * omega
	pe = p.Mass * p.Gravity * p.Length * (1 - math.Cos(theta))
	return ke, pe
}

func (p *Pendulum) Energy(x []float64) float64 {
	ke, pe := p.energies(x)
	return ke + pe
}

// Recalculate refreshes the energy bookkeeping slots after a step.
func (p *Pendulum) Recalculate() {
	x := p.vec.Values()
	ke, pe := p.energies(x)
	p.vec.SetValue(pendKE, ke)
	p.vec.SetValue(pendPE, pe)
	p.vec.SetValue(pendTE, ke+pe)
}
