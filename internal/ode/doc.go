// Package ode defines the contracts of the integration framework:
//
//   - [System]: an ODE system that owns a [state.Vector] and evaluates
//     dX/dt = f(X, t)
//   - [EnergyReporter]: optional capability reporting total mechanical energy
//   - [Solver]: advances a system's state vector by one step
//   - [Observer]: passive per-step callback for drift tracking and display
//
// Any System can be integrated by any Solver; the adaptive solver
// additionally requires the system to be an EnergyReporter.
//
// # Thread Safety
//
// A state vector is exclusively owned by whichever solver is stepping it.
// Nothing in this package is safe for concurrent use.
package ode
