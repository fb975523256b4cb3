package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/machapraveen/gilbench/internal/orchestration"
)

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()

	t.Run("writes an annotated report", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "result.txt")

		err := WriteResultToFile(2432902008176640000, 20, 100*time.Millisecond, "gil", OutputConfig{OutputFile: path})
		if err != nil {
			t.Fatalf("WriteResultToFile: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading report: %v", err)
		}
		for _, line := range []string{
			"# Gate Benchmark Result",
			"# Regime: gil",
			"# Wall time: 100ms",
			"# N: 20",
			"# Bits: 62",
		} {
			if !strings.Contains(string(content), line+"\n") {
				t.Errorf("report is missing %q", line)
			}
		}
		if !strings.HasSuffix(string(content), "20! =\n2432902008176640000\n") {
			t.Errorf("report should end with the bare value, got:\n%s", content)
		}
	})

	t.Run("empty path writes nothing", func(t *testing.T) {
		t.Parallel()
		if err := WriteResultToFile(120, 5, time.Second, "gil", OutputConfig{}); err != nil {
			t.Fatalf("expected no-op, got %v", err)
		}
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "nested", "dir", "result.txt")

		if err := WriteResultToFile(120, 5, time.Second, "gil", OutputConfig{OutputFile: path}); err != nil {
			t.Fatalf("WriteResultToFile: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("report should exist under the nested directory: %v", err)
		}
	})

	t.Run("reports an unwritable parent", func(t *testing.T) {
		t.Parallel()
		// A regular file where a directory is needed makes MkdirAll fail.
		blocker := filepath.Join(t.TempDir(), "blocker")
		if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}

		err := WriteResultToFile(120, 5, time.Second, "gil", OutputConfig{
			OutputFile: filepath.Join(blocker, "result.txt"),
		})
		if err == nil {
			t.Fatal("expected an error when the parent path is a file")
		}
		if !strings.Contains(err.Error(), "failed to create directory") {
			t.Errorf("error should name the directory step, got %v", err)
		}
	})
}

func TestFormatQuietResult(t *testing.T) {
	t.Parallel()
	for _, tt := range []struct {
		value uint64
		want  string
	}{
		{0, "0"},
		{120, "120"},
		{2432902008176640000, "2432902008176640000"},
	} {
		if got := FormatQuietResult(tt.value); got != tt.want {
			t.Errorf("FormatQuietResult(%d) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestDisplayQuietResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	DisplayQuietResult(&buf, 120)

	// Scripting contract: the bare value and a newline, nothing else.
	if got := buf.String(); got != "120\n" {
		t.Errorf("quiet output = %q, want %q", got, "120\n")
	}
}

func TestDisplayResultWithConfig(t *testing.T) {
	t.Parallel()
	result := orchestration.BenchmarkResult{
		Key:      "gil",
		Name:     "GIL Held (token spans the loop)",
		Value:    120,
		Workers:  1,
		WallTime: 100 * time.Millisecond,
	}
	opts := orchestration.PresentationOptions{N: 5, Repetitions: 1, Workers: 1}

	t.Run("quiet prints the bare value", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer

		if err := DisplayResultWithConfig(&buf, result, opts, OutputConfig{Quiet: true}); err != nil {
			t.Fatalf("DisplayResultWithConfig: %v", err)
		}
		if got := buf.String(); got != "120\n" {
			t.Errorf("quiet output = %q, want %q", got, "120\n")
		}
	})

	t.Run("standard display with report file", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "report.txt")

		err := DisplayResultWithConfig(&buf, result, opts, OutputConfig{OutputFile: path})
		if err != nil {
			t.Fatalf("DisplayResultWithConfig: %v", err)
		}

		// Fragments chosen to sit outside any color escape sequences.
		output := buf.String()
		if !strings.Contains(output, "Benchmark time (") {
			t.Errorf("expected the standard display, got %q", output)
		}
		if !strings.Contains(output, "Calculated value: 5! =") || !strings.Contains(output, "120") {
			t.Errorf("expected the calculated value line, got %q", output)
		}
		if !strings.Contains(output, "Result saved to") {
			t.Errorf("expected the save confirmation, got %q", output)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("report file should exist: %v", err)
		}
	})

	t.Run("quiet with report file skips the confirmation", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "report.txt")

		err := DisplayResultWithConfig(&buf, result, opts, OutputConfig{OutputFile: path, Quiet: true})
		if err != nil {
			t.Fatalf("DisplayResultWithConfig: %v", err)
		}

		if got := buf.String(); got != "120\n" {
			t.Errorf("quiet output = %q, want %q", got, "120\n")
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("report file should exist: %v", err)
		}
	})
}
