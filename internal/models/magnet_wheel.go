package models

import (
	"fmt"
	"math"

	"github.com/yur234/myphysicslab/internal/ode"
	"github.com/yur234/myphysicslab/internal/state"
)

const (
	wheelAngle = iota
	wheelOmega
	wheelTime
	wheelKE
	wheelPE
	wheelTE
)

// minSeparation is the closest a wheel magnet may approach the fixed magnet
// before the inverse-square force is considered undefined.
const minSeparation = 1e-6

// MagnetWheel is a spinning wheel with magnets on its rim, attracted by a
// fixed magnet just outside the rim. The inverse-square attraction makes the
// torque stiff near alignment, which is what exercises the adaptive solver's
// shrink-and-retry path.
type MagnetWheel struct {
	vec        *state.Vector
	Inertia    float64
	Damping    float64
	Radius     float64
	Strength   float64
	NumMagnets int
	FixedX     float64
	FixedY     float64
}

func NewMagnetWheel() *MagnetWheel {
	v := state.New("angle", "angular velocity", "time",
		"kinetic energy", "potential energy", "total energy")
	v.MarkComputed(wheelKE, wheelPE, wheelTE)
	m := &MagnetWheel{
		vec:        v,
		Inertia:    1.0,
		Damping:    0.0,
		Radius:     1.0,
		Strength:   1.0,
		NumMagnets: 4,
		FixedX:     0,
		FixedY:     1.5,
	}
	m.Recalculate()
	return m
}

func (m *MagnetWheel) Name() string { return "magnet_wheel" }

func (m *MagnetWheel) StateVector() *state.Vector { return m.vec }

func (m *MagnetWheel) SetInitialState(angle, omega float64) error {
	vals := m.vec.Values()
	vals[wheelAngle] = angle
	vals[wheelOmega] = omega
	vals[wheelTime] = 0
	ke, pe, err := m.energies(vals)
	if err != nil {
		return err
	}
	vals[wheelKE], vals[wheelPE], vals[wheelTE] = ke, pe, ke+pe
	return m.vec.Write(vals, false)
}

// torque sums r cross F over the rim magnets. Fails when any magnet gets
// within minSeparation of the fixed magnet.
func (m *MagnetWheel) torque(theta float64) (float64, error) {
	tau := 0.0
	for i := 0; i < m.NumMagnets; i++ {
		phi := theta + 2*math.Pi*float64(i)/float64(m.NumMagnets)
		mx, my := m.Radius*math.Cos(phi), m.Radius*math.Sin(phi)
		dx, dy := m.FixedX-mx, m.FixedY-my
		dist := math.Hypot(dx, dy)
		if dist < minSeparation {
			return 0, fmt.Errorf("magnet separation %g below %g: %w", dist, minSeparation, ode.ErrInvalidState)
		}
		f := m.Strength / (dist * dist * dist)
		fx, fy := f*dx, f*dy
		tau += mx*fy - my*fx
	}
	return tau, nil
}

func (m *MagnetWheel) Evaluate(x, dxdt []float64, dt float64) error {
	theta, omega := x[wheelAngle], x[wheelOmega]
	if math.IsNaN(theta) || math.IsInf(theta, 0) || math.IsNaN(omega) || math.IsInf(omega, 0) {
		return fmt.Errorf("wheel state not finite: %w", ode.ErrInvalidState)
	}

	tau, err := m.torque(theta)
	if err != nil {
		return err
	}

	dxdt[wheelAngle] = omega
	dxdt[wheelOmega] = (tau - m.Damping*omega) / m.Inertia
	dxdt[wheelTime] = 1
	return nil
}

func (m *MagnetWheel) energies(x []float64) (ke, pe float64, err error) {
	omega := x[wheelOmega]
	theta := x[wheelAngle]
	ke = 0.5 * m.Inertia * omega * omega
	for i := 0; i < m.NumMagnets; i++ {
		phi := theta + 2*math.Pi*float64(i)/float64(m.NumMagnets)
		mx, my := m.Radius*math.Cos(phi), m.Radius*math.Sin(phi)
		dist := math.Hypot(m.FixedX-mx, m.FixedY-my)
		if dist < minSeparation {
			return 0, 0, fmt.Errorf("magnet separation %g below %g: %w", dist, minSeparation, ode.ErrInvalidState)
		}
		pe -= m.Strength / dist
	}
	return ke, pe, nil
}

func (m *MagnetWheel) Energy(x []float64) float64 {
	ke, pe, err := m.energies(x)
	if err != nil {
		return math.NaN()
	}
	return ke + pe
}

func (m *MagnetWheel) Recalculate() {
	x := m.vec.Values()
	ke, pe, err := m.energies(x)
	if err != nil {
		return
	}
	m.vec.SetValue(wheelKE, ke)
	m.vec.SetValue(wheelPE, pe)
	m.vec.SetValue(wheelTE, ke+pe)
}
