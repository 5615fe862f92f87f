package solvers

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yur234/myphysicslab/internal/ode"
)

var _ = Describe("Adaptive", func() {
	It("requires an energy-reporting system", func() {
		sys := newSilentSystem()
		_, err := NewAdaptive(sys, NewEuler(sys), Config{})
		Expect(err).To(HaveOccurred())
	})

	It("bounds energy drift over a completed advance", func() {
		osc := newOscillator(1, 0)
		cfg := Config{Tolerance: 1e-6}
		a, err := NewAdaptive(osc, NewRK4(osc), cfg)
		Expect(err).NotTo(HaveOccurred())

		e0 := osc.Energy(osc.vec.Values())
		Expect(a.Step(0.5)).To(Succeed())
		e1 := osc.Energy(osc.vec.Values())

		drift := math.Abs(e1-e0) / math.Abs(e0)
		Expect(drift).To(BeNumerically("<=", cfg.Tolerance))
	})

	It("tames a first-order method that would otherwise drift", func() {
		osc := newOscillator(1, 0)
		cfg := Config{Tolerance: 1e-3}
		a, err := NewAdaptive(osc, NewEuler(osc), cfg)
		Expect(err).NotTo(HaveOccurred())

		// A single raw Euler step of this size drifts well past tolerance:
		// one step multiplies the oscillator's energy by exactly 1+h*h.
		raw := newOscillator(1, 0)
		Expect(NewEuler(raw).Step(0.04)).To(Succeed())
		rawDrift := math.Abs(raw.Energy(raw.vec.Values())-0.5) / 0.5
		Expect(rawDrift).To(BeNumerically(">", cfg.Tolerance))

		Expect(a.Step(0.04)).To(Succeed())
		drift := math.Abs(osc.Energy(osc.vec.Values())-0.5) / 0.5
		Expect(drift).To(BeNumerically("<=", cfg.Tolerance))
	})

	It("covers the requested interval with accepted sub-steps", func() {
		osc := newOscillator(1, 0)
		rec := &recordingSolver{inner: NewRK4(osc)}
		a, err := NewAdaptive(osc, rec, Config{Tolerance: 1e-6, MaxStep: 0.05})
		Expect(err).NotTo(HaveOccurred())

		const H = 1.0
		Expect(a.Step(H)).To(Succeed())

		sum := 0.0
		for _, h := range rec.steps {
			sum += h
			Expect(h).To(BeNumerically("<=", H))
		}
		Expect(sum).To(BeNumerically("~", H, 1e-12))
	})

	It("grows the trial step from the remembered size when drift is low", func() {
		osc := newOscillator(1, 0)
		rec := &recordingSolver{inner: NewRK4(osc)}
		a, err := NewAdaptive(osc, rec, Config{Tolerance: 1e-4, GrowFactor: 2})
		Expect(err).NotTo(HaveOccurred())

		// Seed the step-size memory with a small advance.
		Expect(a.Step(0.005)).To(Succeed())
		rec.steps = nil

		Expect(a.Step(1.0)).To(Succeed())
		Expect(len(rec.steps)).To(BeNumerically(">", 1))
		Expect(rec.steps[0]).To(BeNumerically("~", 0.005, 1e-12))
		Expect(rec.steps[1]).To(BeNumerically(">", rec.steps[0]))
	})

	It("reports divergence when the model keeps failing", func() {
		f := newFaultySystem(0)
		a, err := NewAdaptive(f, NewEuler(f), Config{Tolerance: 1e-6, MaxRetries: 5})
		Expect(err).NotTo(HaveOccurred())

		stepErr := a.Step(1.0)
		Expect(stepErr).To(MatchError(ode.ErrDiverged))
		Expect(f.vec.Value(0)).To(Equal(1.0))
		Expect(f.vec.Value(1)).To(Equal(0.0))
	})

	It("reports divergence when the trial step hits the floor", func() {
		f := newFaultySystem(0)
		a, err := NewAdaptive(f, NewEuler(f), Config{Tolerance: 1e-6, MinStep: 0.3})
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Step(1.0)).To(MatchError(ode.ErrDiverged))
	})

	It("does nothing for a zero advance", func() {
		osc := newOscillator(1, 0)
		a, err := NewAdaptive(osc, NewRK4(osc), Config{})
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Step(0)).To(Succeed())
		Expect(osc.vec.Value(0)).To(Equal(1.0))
	})
})
