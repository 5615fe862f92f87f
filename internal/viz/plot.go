// Package viz renders simulation output in the terminal and to image files.
// It sits entirely on the caller side of the integration core: everything it
// knows arrives through the System/Solver/Selector interfaces.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// Graph renders one series as an ASCII line plot.
func Graph(series []float64, caption string, width, height int) string {
	if len(series) < 2 {
		return "not enough samples to plot"
	}
	return asciigraph.Plot(series,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}

// Sparkline renders a compact single-row trace of the most recent samples.
func Sparkline(series []float64, width int) string {
	if len(series) == 0 {
		return ""
	}
	if len(series) > width {
		series = series[len(series)-width:]
	}

	lo, hi := series[0], series[0]
	for _, v := range series {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	ramp := []rune("▁▂▃▄▅▆▇█")
	var sb strings.Builder
	for _, v := range series {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(ramp)-1))
		}
		sb.WriteRune(ramp[idx])
	}
	return sb.String()
}

// StatsRow formats one labelled value for the live view's side panel.
func StatsRow(label string, value float64) string {
	return labelStyle.Render(label) + valueStyle.Render(fmt.Sprintf("%12.6f", value))
}
