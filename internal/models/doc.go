// Package models provides sample physical systems for the integration
// framework.
//
// Each model owns its [state.Vector], implements [ode.System], and keeps
// bookkeeping slots (kinetic, potential, total energy) that are recomputed
// after every accepted step rather than integrated. All of them implement
// [ode.EnergyReporter], so any of them can drive the adaptive solver.
package models
