package tui

import (
	"strings"
	"testing"
	"time"
)

func TestChartModelProgressBar(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 10)

	// 50 wide leaves a 38-cell bar; the percentage column is unstyled.
	tests := []struct {
		name       string
		average    float64
		wantFilled int
		wantPct    string
	}{
		{"empty", 0.0, 0, "0.0%"},
		{"half", 0.5, 19, "50.0%"},
		{"full", 1.0, 38, "100.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chart.AddDataPoint(tt.average, tt.average, time.Second)
			bar := chart.renderProgressBar()

			if got := strings.Count(bar, "█"); got != tt.wantFilled {
				t.Errorf("filled cells = %d, want %d", got, tt.wantFilled)
			}
			if got := strings.Count(bar, "░"); got != 38-tt.wantFilled {
				t.Errorf("empty cells = %d, want %d", got, 38-tt.wantFilled)
			}
			if !strings.Contains(bar, tt.wantPct) {
				t.Errorf("bar %q missing %q", bar, tt.wantPct)
			}
		})
	}

	t.Run("too narrow", func(t *testing.T) {
		narrow := NewChartModel()
		narrow.SetSize(10, 5)
		if bar := narrow.renderProgressBar(); bar != "" {
			t.Errorf("a 10-cell panel rendered a bar: %q", bar)
		}
	})
}

func TestChartModelAddDataPoint(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 10)

	for _, avg := range []float64{0.25, 0.5, 0.75} {
		chart.AddDataPoint(avg, avg, 10*time.Second)
	}

	if chart.averageProgress != 0.75 {
		t.Errorf("averageProgress = %f, want the latest sample 0.75", chart.averageProgress)
	}
	if got := chart.progressHistory.Len(); got != 3 {
		t.Errorf("progress history holds %d samples, want 3", got)
	}
	if last := chart.progressHistory.Last(); last != 75.0 {
		t.Errorf("last history sample = %f, want 75.0 (percent scale)", last)
	}
}

func TestChartModelView(t *testing.T) {
	t.Run("running shows ETA", func(t *testing.T) {
		chart := NewChartModel()
		chart.SetSize(50, 10)
		chart.AddDataPoint(0.65, 0.65, 5*time.Second)

		view := chart.View()
		for _, fragment := range []string{"Progress Chart", "ETA:", "65.0%"} {
			if !strings.Contains(view, fragment) {
				t.Errorf("view missing %q", fragment)
			}
		}
	})

	t.Run("done replaces the ETA line", func(t *testing.T) {
		chart := NewChartModel()
		chart.SetSize(50, 10)
		chart.AddDataPoint(1.0, 1.0, 0)
		chart.SetDone(3 * time.Second)

		view := chart.View()
		if !strings.Contains(view, "Done in 3s") {
			t.Error("view missing the completion line")
		}
		if strings.Contains(view, "ETA:") {
			t.Error("ETA still shown after completion")
		}
	})
}

func TestChartModelSysStats(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 15)

	chart.UpdateSysStats(25.0, 60.0)
	chart.UpdateSysStats(30.0, 62.0)

	if got := chart.cpuHistory.Last(); got != 30.0 {
		t.Errorf("last CPU sample = %f, want 30.0", got)
	}
	if got := chart.memHistory.Last(); got != 62.0 {
		t.Errorf("last MEM sample = %f, want 62.0", got)
	}

	view := chart.View()
	if !strings.Contains(view, "CPU") || !strings.Contains(view, "MEM") {
		t.Error("history strips missing at full height")
	}
}

func TestChartModelStripsHiddenWhenShort(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, sparklineMinHeight-1)
	chart.UpdateSysStats(50.0, 75.0)

	if view := chart.View(); strings.Contains(view, "CPU") {
		t.Error("history strips rendered below the minimum height")
	}
}

func TestChartModelSetSizeResizesStrips(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 15)

	want := 50 - sparklineWidth
	if got := chart.cpuHistory.Cap(); got != want {
		t.Errorf("CPU strip capacity = %d, want %d", got, want)
	}
	if got := chart.memHistory.Cap(); got != want {
		t.Errorf("MEM strip capacity = %d, want %d", got, want)
	}
}

func TestChartModelReset(t *testing.T) {
	chart := NewChartModel()
	chart.SetSize(50, 15)
	chart.AddDataPoint(0.8, 0.8, 5*time.Second)
	chart.UpdateSysStats(25.0, 60.0)
	chart.SetDone(2 * time.Second)

	chart.Reset()

	if chart.averageProgress != 0 {
		t.Errorf("averageProgress = %f after reset", chart.averageProgress)
	}
	if chart.progressHistory.Len() != 0 || chart.cpuHistory.Len() != 0 || chart.memHistory.Len() != 0 {
		t.Error("histories not cleared by reset")
	}
	if view := chart.View(); strings.Contains(view, "Done in") {
		t.Error("done state survived the reset")
	}
}
