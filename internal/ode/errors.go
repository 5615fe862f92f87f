package ode

import (
	"errors"
	"fmt"
)

// Domain errors for integration operations.
var (
	// ErrInvalidState indicates the model could not evaluate a derivative
	// for the given state (for example a near-zero distance).
	ErrInvalidState = errors.New("ode: derivative undefined for state")

	// ErrDiverged indicates the adaptive solver exhausted its retry or
	// minimum-step budget; the model is likely numerically unstable.
	ErrDiverged = errors.New("ode: step size control diverged")

	// ErrUnknownSolver indicates a selection by a name that is not
	// registered.
	ErrUnknownSolver = errors.New("ode: unknown solver")
)

// StepError reports a failed step attempt with the stage that failed.
// Stage numbering starts at 1 for the first derivative evaluation.
type StepError struct {
	Solver string
	Stage  int
	H      float64
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: stage %d (h=%g): %v", e.Solver, e.Stage, e.H, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
