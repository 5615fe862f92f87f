package models

import (
	"errors"
	"math"
	"testing"

	"github.com/yur234/myphysicslab/internal/ode"
)

func TestPendulumEquilibrium(t *testing.T) {
	p := NewPendulum()

	x := p.StateVector().Values()
	dxdt := make([]float64, len(x))
	if err := p.Evaluate(x, dxdt, 0); err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}

	if math.Abs(dxdt[pendAngle]) > 1e-10 {
		t.Errorf("expected zero angular velocity at rest, got %f", dxdt[pendAngle])
	}
	if math.Abs(dxdt[pendOmega]) > 1e-10 {
		t.Errorf("expected zero acceleration at rest, got %f", dxdt[pendOmega])
	}
	if dxdt[pendTime] != 1 {
		t.Errorf("time slot must advance at unit rate, got %f", dxdt[pendTime])
	}
}

func TestPendulumGravity(t *testing.T) {
	p := NewPendulum()
	if err := p.SetInitialState(math.Pi/2, 0); err != nil {
		t.Fatal(err)
	}

	x := p.StateVector().Values()
	dxdt := make([]float64, len(x))
	if err := p.Evaluate(x, dxdt, 0); err != nil {
		t.Fatal(err)
	}

	expected := -p.Gravity / p.Length
	if math.Abs(dxdt[pendOmega]-expected) > 1e-9 {
		t.Errorf("expected acceleration %f, got %f", expected, dxdt[pendOmega])
	}
}

func TestPendulumInvalidState(t *testing.T) {
	p := NewPendulum()

	x := p.StateVector().Values()
	x[pendAngle] = math.NaN()
	dxdt := make([]float64, len(x))

	err := p.Evaluate(x, dxdt, 0)
	if !errors.Is(err, ode.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestPendulumEnergyBookkeeping(t *testing.T) {
	p := NewPendulum()
	if err := p.SetInitialState(0, 3); err != nil {
		t.Fatal(err)
	}

	v := p.StateVector()
	// KE = 0.5*m*L^2*omega^2 = 4.5 at the bottom; PE = 0 there.
	if math.Abs(v.Value(pendKE)-4.5) > 1e-12 {
		t.Errorf("expected kinetic energy 4.5, got %f", v.Value(pendKE))
	}
	if math.Abs(v.Value(pendPE)) > 1e-12 {
		t.Errorf("expected zero potential energy, got %f", v.Value(pendPE))
	}
	if math.Abs(v.Value(pendTE)-4.5) > 1e-12 {
		t.Errorf("expected total energy 4.5, got %f", v.Value(pendTE))
	}

	if !v.IsComputed(pendKE) || !v.IsComputed(pendPE) || !v.IsComputed(pendTE) {
		t.Error("energy slots must be marked computed")
	}
}

func TestPendulumMassEditIsDiscontinuous(t *testing.T) {
	p := NewPendulum()
	if err := p.SetInitialState(0, 3); err != nil {
		t.Fatal(err)
	}

	v := p.StateVector()
	before := v.Sequence(pendKE)

	p.SetMass(2.0)

	if v.Sequence(pendKE) == before {
		t.Error("mass edit must bump the kinetic energy sequence counter")
	}
	if v.Sequence(pendAngle) != 0 {
		t.Error("mass edit must not bump the angle counter")
	}
	if math.Abs(v.Value(pendKE)-9.0) > 1e-12 {
		t.Errorf("expected kinetic energy 9.0 after mass edit, got %f", v.Value(pendKE))
	}
}
