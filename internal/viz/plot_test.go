package viz

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestGraphNeedsTwoSamples(t *testing.T) {
	out := Graph([]float64{1.0}, "x", 40, 8)
	if !strings.Contains(out, "not enough samples") {
		t.Errorf("single-sample graph = %q, want placeholder", out)
	}

	out = Graph([]float64{0, 1, 0, -1, 0}, "wave", 40, 8)
	if !strings.Contains(out, "wave") {
		t.Errorf("plot output missing caption:\n%s", out)
	}
}

func TestSparklineWidthAndExtremes(t *testing.T) {
	series := make([]float64, 20)
	for i := range series {
		series[i] = float64(i)
	}

	out := Sparkline(series, 10)
	if got := utf8.RuneCountInString(out); got != 10 {
		t.Errorf("sparkline width = %d, want 10", got)
	}
	if !strings.HasSuffix(out, "█") {
		t.Errorf("sparkline %q should end at the full block", out)
	}
}

func TestSparklineFlatSeries(t *testing.T) {
	out := Sparkline([]float64{2, 2, 2}, 10)
	if out != "▁▁▁" {
		t.Errorf("flat sparkline = %q, want all-low", out)
	}
}
