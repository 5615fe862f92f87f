package solvers

import (
	"fmt"

	"github.com/yur234/myphysicslab/internal/ode"
)

// Selector is the seam external callers use to pick the active solver by
// name. It keeps registration order for presentation and notifies
// subscribers exactly once per successful selection, never on failure.
type Selector struct {
	order   []string
	byName  map[string]ode.Solver
	current string
	subs    map[int]func(name string)
	nextSub int
}

func NewSelector(solvers ...ode.Solver) *Selector {
	s := &Selector{
		byName: make(map[string]ode.Solver),
		subs:   make(map[int]func(string)),
	}
	for _, sv := range solvers {
		s.Register(sv)
	}
	return s
}

// Register adds a solver under its stable name. The first registration
// becomes the current selection.
func (s *Selector) Register(sv ode.Solver) {
	name := sv.Name()
	if _, dup := s.byName[name]; !dup {
		s.order = append(s.order, name)
	}
	s.byName[name] = sv
	if s.current == "" {
		s.current = name
	}
}

// Names returns the registered names in registration order.
func (s *Selector) Names() []string {
	return append([]string(nil), s.order...)
}

func (s *Selector) Current() string { return s.current }

// Active returns the currently selected solver, nil when none is registered.
func (s *Selector) Active() ode.Solver { return s.byName[s.current] }

// Select swaps the active solver. An unknown name leaves the selection
// unchanged and notifies nobody.
func (s *Selector) Select(name string) error {
	if _, ok := s.byName[name]; !ok {
		return fmt.Errorf("%w: %q", ode.ErrUnknownSolver, name)
	}
	s.current = name
	for _, fn := range s.subs {
		fn(name)
	}
	return nil
}

// Subscription identifies one observer registration.
type Subscription struct {
	sel *Selector
	id  int
}

// Subscribe registers fn to be called with the new name after each
// successful Select.
func (s *Selector) Subscribe(fn func(name string)) Subscription {
	s.nextSub++
	s.subs[s.nextSub] = fn
	return Subscription{sel: s, id: s.nextSub}
}

// Cancel removes the observer. Cancelling twice is harmless.
func (sub Subscription) Cancel() {
	if sub.sel != nil {
		delete(sub.sel.subs, sub.id)
	}
}
