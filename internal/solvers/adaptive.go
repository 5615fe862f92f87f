package solvers

import (
	"fmt"
	"math"

	"github.com/yur234/myphysicslab/internal/ode"
)

// driftFloor guards the relative-drift denominator against zero energy.
const driftFloor = 1e-12

// growThresholdDivisor: drift this far below tolerance means the trial step
// is comfortably safe and may grow for the next sub-step.
const growThresholdDivisor = 10

// Config holds the adaptive controller's tuning knobs. Zero fields take the
// defaults from DefaultConfig.
type Config struct {
	// Tolerance is the relative energy-drift bound per advance call.
	Tolerance float64
	// GrowFactor (> 1) multiplies the trial step after a comfortably
	// accurate sub-step.
	GrowFactor float64
	// ShrinkFactor (in (0,1)) multiplies the trial step after a rejection.
	ShrinkFactor float64
	// MaxRetries bounds consecutive rejections of a single sub-step.
	MaxRetries int
	// MinStep is the smallest permitted trial step; shrinking below it
	// reports divergence.
	MinStep float64
	// MaxStep caps trial growth. Zero means the requested advance size.
	MaxStep float64
}

func DefaultConfig() Config {
	return Config{
		Tolerance:    1e-5,
		GrowFactor:   1.25,
		ShrinkFactor: 0.5,
		MaxRetries:   20,
		MinStep:      1e-10,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Tolerance <= 0 {
		c.Tolerance = def.Tolerance
	}
	if c.GrowFactor <= 1 {
		c.GrowFactor = def.GrowFactor
	}
	if c.ShrinkFactor <= 0 || c.ShrinkFactor >= 1 {
		c.ShrinkFactor = def.ShrinkFactor
	}
	if c.MaxRetries < 1 {
		c.MaxRetries = def.MaxRetries
	}
	if c.MinStep <= 0 {
		c.MinStep = def.MinStep
	}
	return c
}

// Adaptive wraps a fixed-step solver and bounds energy drift by resizing the
// step: trial sub-steps are rejected and retried smaller when the wrapped
// solver fails or drift exceeds tolerance, and the trial grows when drift is
// comfortably low. The last successful trial size seeds the next advance.
type Adaptive struct {
	sys      ode.System
	energy   ode.EnergyReporter
	inner    ode.Solver
	cfg      Config
	lastStep float64
}

// NewAdaptive wraps inner for sys. The system must report energy; without
// that signal there is nothing to control against.
func NewAdaptive(sys ode.System, inner ode.Solver, cfg Config) (*Adaptive, error) {
	er, ok := sys.(ode.EnergyReporter)
	if !ok {
		return nil, fmt.Errorf("solvers: %T does not report energy; adaptive stepping disabled", sys)
	}
	return &Adaptive{sys: sys, energy: er, inner: inner, cfg: cfg.withDefaults()}, nil
}

func (a *Adaptive) Name() string { return "adaptive" }

// Config returns the effective configuration after defaulting.
func (a *Adaptive) Config() Config { return a.cfg }

// Step covers exactly h of simulated time with accepted sub-steps. Each
// accepted sub-step is committed immediately; an aborted attempt restores
// the pre-attempt state, so the vector always holds a fully integrated
// prefix of the advance.
func (a *Adaptive) Step(h float64) error {
	if h == 0 {
		return nil
	}
	if h < 0 {
		return fmt.Errorf("solvers: adaptive step requires h > 0, got %g", h)
	}

	v := a.sys.StateVector()
	e0 := a.energy.Energy(v.Values())
	denom := math.Max(math.Abs(e0), driftFloor)

	ceiling := h
	if a.cfg.MaxStep > 0 && a.cfg.MaxStep < ceiling {
		ceiling = a.cfg.MaxStep
	}
	trial := a.lastStep
	if trial <= 0 || trial > ceiling {
		trial = ceiling
	}

	remaining := h
	retries := 0
	for remaining > 0 {
		sub := math.Min(trial, remaining)
		snap := v.Snapshot()

		stepErr := a.inner.Step(sub)

		drift := 0.0
		if stepErr == nil {
			e1 := a.energy.Energy(v.Values())
			drift = math.Abs(e1-e0) / denom
			if drift > a.cfg.Tolerance {
				stepErr = fmt.Errorf("energy drift %.3g exceeds bound %.3g", drift, a.cfg.Tolerance)
				if err := v.Restore(snap); err != nil {
					return err
				}
				if b, ok := a.sys.(ode.Bookkeeper); ok {
					b.Recalculate()
				}
			}
		}

		if stepErr != nil {
			// A failed inner step left the vector untouched; only a drift
			// rejection needed the restore above.
			retries++
			if retries > a.cfg.MaxRetries {
				return fmt.Errorf("gave up after %d retries at h=%g (%v): %w",
					a.cfg.MaxRetries, sub, stepErr, ode.ErrDiverged)
			}
			trial = sub * a.cfg.ShrinkFactor
			if trial < a.cfg.MinStep {
				return fmt.Errorf("trial step %g fell below minimum %g (%v): %w",
					trial, a.cfg.MinStep, stepErr, ode.ErrDiverged)
			}
			continue
		}

		remaining -= sub
		retries = 0
		if drift < a.cfg.Tolerance/growThresholdDivisor && trial < ceiling {
			trial = math.Min(trial*a.cfg.GrowFactor, ceiling)
		}
	}

	a.lastStep = trial
	return nil
}
