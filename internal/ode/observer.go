package ode

import "math"

// EnergyDrift tracks the worst relative energy drift seen across a run.
// It does nothing for systems that are not EnergyReporters.
type EnergyDrift struct {
	sys      System
	samples  int
	initial  float64
	current  float64
	maxDrift float64
}

func NewEnergyDrift(sys System) *EnergyDrift {
	return &EnergyDrift{sys: sys}
}

func (e *EnergyDrift) OnStep(x []float64, t float64) {
	er, ok := e.sys.(EnergyReporter)
	if !ok {
		return
	}

	energy := er.Energy(x)

	if e.samples == 0 {
		e.initial = energy
	}
	e.current = energy
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Current() float64 { return e.current }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.current = 0
	e.maxDrift = 0
	e.samples = 0
}
