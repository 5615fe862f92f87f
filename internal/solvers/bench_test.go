package solvers

import "testing"

func BenchmarkEuler(b *testing.B) {
	osc := newOscillator(1, 0)
	s := NewEuler(osc)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Step(0.01)
	}
}

func BenchmarkHeun(b *testing.B) {
	osc := newOscillator(1, 0)
	s := NewHeun(osc)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Step(0.01)
	}
}

func BenchmarkRK4(b *testing.B) {
	osc := newOscillator(1, 0)
	s := NewRK4(osc)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Step(0.01)
	}
}

func BenchmarkAdaptiveRK4(b *testing.B) {
	osc := newOscillator(1, 0)
	a, err := NewAdaptive(osc, NewRK4(osc), Config{Tolerance: 1e-4})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.Step(0.01)
	}
}
