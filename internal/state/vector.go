package state

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch indicates a value slice whose length does not match
// the vector's slot count.
var ErrShapeMismatch = errors.New("state: value count does not match slot count")

// Vector is an ordered set of named scalar slots describing a simulation's
// instantaneous condition. Slot count and names are fixed at construction.
// Each slot carries a sequence counter that is bumped only by discontinuous
// writes (parameter edits and the like); continuous updates from normal
// integration leave the counters untouched.
type Vector struct {
	names    []string
	values   []float64
	seqs     []uint64
	computed []bool
	index    map[string]int
}

// New creates a vector with one slot per name, all values zero.
func New(names ...string) *Vector {
	v := &Vector{
		names:    append([]string(nil), names...),
		values:   make([]float64, len(names)),
		seqs:     make([]uint64, len(names)),
		computed: make([]bool, len(names)),
		index:    make(map[string]int, len(names)),
	}
	for i, n := range v.names {
		v.index[n] = i
	}
	return v
}

func (v *Vector) Len() int { return len(v.values) }

// Names returns a copy of the slot names in slot order.
func (v *Vector) Names() []string {
	return append([]string(nil), v.names...)
}

func (v *Vector) Name(i int) string { return v.names[i] }

// IndexOf returns the slot index for name, or -1 if no such slot exists.
func (v *Vector) IndexOf(name string) int {
	if i, ok := v.index[name]; ok {
		return i
	}
	return -1
}

// Values returns a snapshot copy of all slot values in slot order.
func (v *Vector) Values() []float64 {
	c := make([]float64, len(v.values))
	copy(c, v.values)
	return c
}

// ReadInto copies all slot values into dst, which must have matching length.
func (v *Vector) ReadInto(dst []float64) error {
	if len(dst) != len(v.values) {
		return fmt.Errorf("read %d values into %d slots: %w", len(dst), len(v.values), ErrShapeMismatch)
	}
	copy(dst, v.values)
	return nil
}

func (v *Vector) Value(i int) float64 { return v.values[i] }

// SetValue writes a single slot as a continuous update.
func (v *Vector) SetValue(i int, val float64) { v.values[i] = val }

// Write replaces all slot values. A discontinuous write (continuous=false)
// bumps the sequence counter of every slot whose value actually changed,
// signalling observers that history-dependent interpolation must reset.
func (v *Vector) Write(values []float64, continuous bool) error {
	if len(values) != len(v.values) {
		return fmt.Errorf("write %d values into %d slots: %w", len(values), len(v.values), ErrShapeMismatch)
	}
	if !continuous {
		for i, val := range values {
			if val != v.values[i] {
				v.seqs[i]++
			}
		}
	}
	copy(v.values, values)
	return nil
}

// Sequence returns the discontinuity counter for slot i.
func (v *Vector) Sequence(i int) uint64 { return v.seqs[i] }

// MarkComputed designates slots that are bookkeeping outputs of the model,
// not independent state: integrators treat their derivative as zero and the
// model rewrites them after each accepted step.
func (v *Vector) MarkComputed(indices ...int) {
	for _, i := range indices {
		v.computed[i] = true
	}
}

func (v *Vector) IsComputed(i int) bool { return v.computed[i] }

// Snapshot captures the current values for a later Restore.
func (v *Vector) Snapshot() []float64 { return v.Values() }

// Restore puts back a snapshot as a continuous update. Restoring after a
// rejected trial step is not a discontinuity: the state never observably
// left the snapshot.
func (v *Vector) Restore(snap []float64) error {
	return v.Write(snap, true)
}
