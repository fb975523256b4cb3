package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/machapraveen/gilbench/internal/factorial"
)

// runREPLScript feeds a command script to a fresh REPL and returns
// everything it printed.
func runREPLScript(t *testing.T, script string) string {
	t.Helper()

	repl := NewREPL(factorial.NewDefaultFactory(), REPLConfig{
		Mode:        "both",
		N:           5,
		Repetitions: 1,
		Workers:     2,
		Timeout:     10 * time.Second,
	})

	var out bytes.Buffer
	repl.SetInput(strings.NewReader(script))
	repl.SetOutput(&out)
	repl.Start()

	return out.String()
}

func TestREPL_ExitAndEOF(t *testing.T) {
	t.Parallel()

	t.Run("exit command", func(t *testing.T) {
		t.Parallel()
		output := runREPLScript(t, "exit\n")
		if !strings.Contains(output, "Goodbye!") {
			t.Error("exit should print the farewell")
		}
	})

	t.Run("EOF without exit", func(t *testing.T) {
		t.Parallel()
		output := runREPLScript(t, "status\n")
		if !strings.Contains(output, "Goodbye!") {
			t.Error("EOF should end the session cleanly")
		}
	})
}

func TestREPL_Fact(t *testing.T) {
	t.Parallel()

	t.Run("fact command", func(t *testing.T) {
		t.Parallel()
		output := runREPLScript(t, "fact 5\nexit\n")
		if !strings.Contains(output, "5! = ") || !strings.Contains(output, "120") {
			t.Errorf("fact 5 should print 120, got:\n%s", output)
		}
	})

	t.Run("bare number shortcut", func(t *testing.T) {
		t.Parallel()
		output := runREPLScript(t, "20\nexit\n")
		if !strings.Contains(output, "2,432,902,008,176,640,000") {
			t.Errorf("bare 20 should print 20!, got:\n%s", output)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		t.Parallel()
		output := runREPLScript(t, "fact 21\nexit\n")
		if !strings.Contains(output, "exceeds the maximum") {
			t.Errorf("fact 21 should be rejected, got:\n%s", output)
		}
	})

	t.Run("not a number", func(t *testing.T) {
		t.Parallel()
		output := runREPLScript(t, "fact twenty\nexit\n")
		if !strings.Contains(output, "Invalid value") {
			t.Errorf("non-numeric argument should be rejected, got:\n%s", output)
		}
	})
}

func TestREPL_Settings(t *testing.T) {
	t.Parallel()

	t.Run("mode change", func(t *testing.T) {
		t.Parallel()
		output := runREPLScript(t, "mode nogil\nstatus\nexit\n")
		if !strings.Contains(output, "Mode changed to") {
			t.Error("mode nogil should confirm the change")
		}
		if !strings.Contains(output, "nogil") {
			t.Error("status should report the new mode")
		}
	})

	t.Run("unknown mode rejected", func(t *testing.T) {
		t.Parallel()
		output := runREPLScript(t, "mode interpreter\nexit\n")
		if !strings.Contains(output, "Unknown mode") {
			t.Error("invalid mode should be rejected")
		}
	})

	t.Run("workers and reps", func(t *testing.T) {
		t.Parallel()
		output := runREPLScript(t, "workers 4\nreps 1000\nstatus\nexit\n")
		if !strings.Contains(output, "Workers set to") || !strings.Contains(output, "Repetitions set to") {
			t.Errorf("workers/reps should confirm changes, got:\n%s", output)
		}
	})

	t.Run("invalid workers rejected", func(t *testing.T) {
		t.Parallel()
		output := runREPLScript(t, "workers 0\nexit\n")
		if !strings.Contains(output, "Invalid worker count") {
			t.Error("zero workers should be rejected")
		}
	})
}

func TestREPL_ListAndHelp(t *testing.T) {
	t.Parallel()

	t.Run("list regimes", func(t *testing.T) {
		t.Parallel()
		output := runREPLScript(t, "list\nexit\n")
		if !strings.Contains(output, "gil") || !strings.Contains(output, "nogil") {
			t.Errorf("list should name both regimes, got:\n%s", output)
		}
	})

	t.Run("unknown command suggests help", func(t *testing.T) {
		t.Parallel()
		output := runREPLScript(t, "frobnicate\nexit\n")
		if !strings.Contains(output, "Unknown command") {
			t.Error("unknown commands should be reported")
		}
	})
}

func TestREPL_Run(t *testing.T) {
	t.Parallel()

	// A real comparison with a single repetition finishes instantly and
	// must agree across regimes.
	output := runREPLScript(t, "run 10\nexit\n")
	if !strings.Contains(output, "Benchmarking 10!") {
		t.Errorf("run should announce the workload, got:\n%s", output)
	}
	if !strings.Contains(output, "✓") {
		t.Errorf("both regimes should agree on the value, got:\n%s", output)
	}
	if strings.Contains(output, "INCONSISTENT") {
		t.Errorf("regimes disagreed unexpectedly:\n%s", output)
	}
}
