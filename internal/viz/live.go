package viz

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yur234/myphysicslab/internal/ode"
	"github.com/yur234/myphysicslab/internal/solvers"
)

const (
	graphWidth      = 70
	graphHeight     = 12
	historyCapacity = 600
)

type TickMsg time.Time

// Live is a bubbletea model that drives the selector's active solver at a
// fixed frame rate and charts one state slot plus the energy drift.
type Live struct {
	sys      ode.System
	sel      *solvers.Selector
	drift    *ode.EnergyDrift
	dt       float64
	slot     int
	running  bool
	history  []float64
	elapsed  float64
	stepErr  error
	switched *string
}

func NewLive(sys ode.System, sel *solvers.Selector, dt float64) Live {
	switched := new(string)
	sel.Subscribe(func(name string) { *switched = name })

	return Live{
		sys:      sys,
		sel:      sel,
		drift:    ode.NewEnergyDrift(sys),
		dt:       dt,
		running:  true,
		history:  make([]float64, 0, historyCapacity),
		switched: switched,
	}
}

func (l Live) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (l Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c":
			return l, tea.Quit
		case " ":
			l.running = !l.running
		case "tab":
			l.slot = (l.slot + 1) % l.sys.StateVector().Len()
			l.history = l.history[:0]
		default:
			// Number keys hot-swap the solver through the selector.
			if n, err := strconv.Atoi(key); err == nil {
				names := l.sel.Names()
				if n >= 1 && n <= len(names) {
					_ = l.sel.Select(names[n-1])
				}
			}
		}
	case TickMsg:
		if l.running && l.stepErr == nil {
			if err := l.sel.Active().Step(l.dt); err != nil {
				l.stepErr = err
			} else {
				l.elapsed += l.dt
				vals := l.sys.StateVector().Values()
				l.drift.OnStep(vals, l.elapsed)
				l.history = append(l.history, vals[l.slot])
				if len(l.history) > historyCapacity {
					l.history = l.history[1:]
				}
			}
		}
		return l, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return l, nil
}

func (l Live) View() string {
	var sb strings.Builder
	v := l.sys.StateVector()

	sb.WriteString(headerStyle.Render(fmt.Sprintf("live: %s", v.Name(l.slot))))
	sb.WriteString("\n")

	if len(l.history) >= 2 {
		sb.WriteString(graphStyle.Render(Graph(l.history, v.Name(l.slot), graphWidth, graphHeight)))
		sb.WriteString("\n")
	}

	for i := 0; i < v.Len(); i++ {
		sb.WriteString(StatsRow(v.Name(i), v.Value(i)))
		sb.WriteString("\n")
	}
	sb.WriteString(StatsRow("max energy drift", l.drift.Value()))
	sb.WriteString("\n\n")

	for i, name := range l.sel.Names() {
		entry := fmt.Sprintf("[%d] %s", i+1, name)
		if name == l.sel.Current() {
			entry = activeStyle.Render(entry)
		} else {
			entry = valueStyle.Render(entry)
		}
		sb.WriteString(entry)
		sb.WriteString("  ")
	}
	if *l.switched != "" {
		sb.WriteString(valueStyle.Render(fmt.Sprintf("(switched to %s)", *l.switched)))
	}
	sb.WriteString("\n")

	if l.stepErr != nil {
		sb.WriteString(alertStyle.Render(fmt.Sprintf("stopped: %v", l.stepErr)))
		sb.WriteString("\n")
	}

	sb.WriteString(helpStyle.Render("space pause · tab next slot · 1-9 solver · q quit"))
	return sb.String()
}
