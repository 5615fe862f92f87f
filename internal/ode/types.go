package ode

import "github.com/yur234/myphysicslab/internal/state"

// System is an ODE system. Evaluate writes the derivative of x at stage
// offset dt into dxdt (same length as x); dt is the offset from the state's
// current time, so a method's intermediate stages pass 0, h/2, h and so on.
// Evaluate must report a physically invalid state with an error wrapping
// ErrInvalidState rather than producing non-finite derivatives.
type System interface {
	StateVector() *state.Vector
	Evaluate(x, dxdt []float64, dt float64) error
}

// EnergyReporter reports total mechanical energy for a raw value slice.
// Systems without it cannot be driven by the adaptive solver.
type EnergyReporter interface {
	Energy(x []float64) float64
}

// Bookkeeper recomputes a system's computed slots (energies and the like)
// from its integrated slots. Solvers call it after every accepted step.
type Bookkeeper interface {
	Recalculate()
}

// Solver advances its system's state vector in place by exactly h of
// simulated time. On error the state vector is unmodified.
type Solver interface {
	Name() string
	Step(h float64) error
}

// Observer is notified after each accepted step with the committed values.
type Observer interface {
	OnStep(x []float64, t float64)
}
