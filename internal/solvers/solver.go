// Package solvers implements the fixed-step integration methods, the
// energy-drift adaptive wrapper, and the named selector used to swap the
// active solver at runtime.
//
// Every solver advances its system's state vector in place and is atomic on
// failure: a step either commits fully or leaves the vector untouched.
package solvers

import "github.com/yur234/myphysicslab/internal/ode"

// evaluate runs one staged derivative evaluation into dxdt, forcing a zero
// derivative for computed slots so they are never integrated.
func evaluate(sys ode.System, x, dxdt []float64, dt float64) error {
	for i := range dxdt {
		dxdt[i] = 0
	}
	if err := sys.Evaluate(x, dxdt, dt); err != nil {
		return err
	}
	v := sys.StateVector()
	for i := range dxdt {
		if v.IsComputed(i) {
			dxdt[i] = 0
		}
	}
	return nil
}

// commit writes the combined step result and lets the model refresh its
// computed slots. This is the only point a fixed-step method mutates the
// state vector.
func commit(sys ode.System, out []float64) error {
	if err := sys.StateVector().Write(out, true); err != nil {
		return err
	}
	if b, ok := sys.(ode.Bookkeeper); ok {
		b.Recalculate()
	}
	return nil
}
