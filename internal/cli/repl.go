// Package cli renders benchmark results for the terminal and hosts the
// interactive session and shell-completion surfaces.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/machapraveen/gilbench/internal/config"
	"github.com/machapraveen/gilbench/internal/factorial"
	"github.com/machapraveen/gilbench/internal/format"
	"github.com/machapraveen/gilbench/internal/orchestration"
	"github.com/machapraveen/gilbench/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Mode is the regime selection for benchmark runs.
	Mode string
	// N is the factorial argument to benchmark.
	N uint
	// Repetitions is the per-worker repetition count.
	Repetitions uint64
	// Workers is the number of concurrent workers.
	Workers int
	// Timeout is the maximum duration for each benchmark run.
	Timeout time.Duration
}

// REPL represents an interactive benchmark session.
type REPL struct {
	config  REPLConfig
	factory *factorial.ExecutorFactory
	in      io.Reader
	out     io.Writer
}

// NewREPL creates an interactive session bound to stdin/stdout. An
// empty Mode in cfg defaults to running both regimes.
func NewREPL(factory *factorial.ExecutorFactory, cfg REPLConfig) *REPL {
	if cfg.Mode == "" {
		cfg.Mode = config.ModeBoth
	}
	return &REPL{
		config:  cfg,
		factory: factory,
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// SetInput replaces the session's input reader.
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput replaces the session's output writer.
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start runs the read-eval-print loop until an exit command or EOF.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"gilbench> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return // Exit command received
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %s🔒 Gate Benchmark - Interactive Mode%s                  %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %srun [n]%s       - Benchmark n! under the selected regimes\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sfact <n>%s      - Compute n! once and show the value\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %smode <name>%s   - Change regime selection (%s)\n", ui.ColorYellow(), ui.ColorReset(), r.getModeList())
	fmt.Fprintf(r.out, "  %sworkers <k>%s   - Set the number of concurrent workers\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sreps <count>%s  - Set the per-worker repetition count\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s          - List available regimes\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s        - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s  - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// getModeList returns a comma-separated list of valid mode names.
func (r *REPL) getModeList() string {
	modes := append(r.factory.List(), config.ModeBoth)
	return strings.Join(modes, ", ")
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "run", "r":
		r.cmdRun(args)
	case "fact", "f":
		r.cmdFact(args)
	case "mode", "m":
		r.cmdMode(args)
	case "workers", "w":
		r.cmdWorkers(args)
	case "reps":
		r.cmdReps(args)
	case "list", "ls":
		r.cmdList()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		// Try to interpret as a number for a quick factorial
		if n, err := strconv.ParseUint(cmd, 10, strconv.IntSize); err == nil {
			r.fact(uint(n))
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}

	return true
}

// cmdRun handles the "run" command.
func (r *REPL) cmdRun(args []string) {
	n := r.config.N
	if len(args) > 0 {
		parsed, err := strconv.ParseUint(args[0], 10, strconv.IntSize)
		if err != nil {
			fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
			return
		}
		n = uint(parsed)
	}

	benchArgs := factorial.Args{N: n, Repetitions: r.config.Repetitions}
	if err := benchArgs.Validate(); err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	executors := orchestration.GetExecutorsToRun(r.config.Mode, r.factory)
	if len(executors) == 0 {
		fmt.Fprintf(r.out, "%sUnknown mode: %s%s\n", ui.ColorRed(), r.config.Mode, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	fmt.Fprintf(r.out, "\n%sBenchmarking %d! × %d repetitions × %d workers:%s\n",
		ui.ColorBold(), n, r.config.Repetitions, r.config.Workers, ui.ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ui.ColorCyan(), ui.ColorReset())

	params := orchestration.RunParams{Args: benchArgs, Workers: r.config.Workers}
	results := orchestration.ExecuteComparison(ctx, executors, params, orchestration.NullProgressReporter{}, r.out)

	// Baseline for speedups: the slowest successful regime.
	var baseline time.Duration
	var firstValue uint64
	haveValue := false
	for _, res := range results {
		if res.Err == nil {
			if res.WallTime > baseline {
				baseline = res.WallTime
			}
			if !haveValue {
				firstValue = res.Value
				haveValue = true
			}
		}
	}

	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(r.out, "  %s%-36s%s: %sError - %v%s\n",
				ui.ColorYellow(), res.Name, ui.ColorReset(),
				ui.ColorRed(), res.Err, ui.ColorReset())
			continue
		}

		// Check consistency across regimes
		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if res.Value != firstValue {
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}

		speedup := ""
		if baseline > 0 && res.WallTime > 0 {
			speedup = fmt.Sprintf("%6.2fx", float64(baseline)/float64(res.WallTime))
		}

		fmt.Fprintf(r.out, "  %s%-36s%s: %s%12s%s %s %s\n",
			ui.ColorYellow(), res.Name, ui.ColorReset(),
			ui.ColorCyan(), format.FormatExecutionDuration(res.WallTime), ui.ColorReset(),
			speedup, status)
	}

	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// cmdFact handles the "fact" command.
func (r *REPL) cmdFact(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: fact <n>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	n, err := strconv.ParseUint(args[0], 10, strconv.IntSize)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}

	r.fact(uint(n))
}

// fact computes a single factorial and prints its value.
func (r *REPL) fact(n uint) {
	args := factorial.Args{N: n, Repetitions: 1}
	if err := args.Validate(); err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	value := factorial.Product(n)
	fmt.Fprintf(r.out, "%d! = %s%s%s (%d bits)\n",
		n, ui.ColorGreen(), format.FormatNumberString(strconv.FormatUint(value, 10)), ui.ColorReset(),
		bits.Len64(value))
}

// cmdMode handles the "mode" command.
func (r *REPL) cmdMode(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: mode <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Valid modes: %s\n", r.getModeList())
		return
	}

	name := strings.ToLower(args[0])
	if name != config.ModeBoth {
		if _, err := r.factory.Get(name); err != nil {
			fmt.Fprintf(r.out, "%sUnknown mode: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
			fmt.Fprintf(r.out, "Valid modes: %s\n", r.getModeList())
			return
		}
	}

	r.config.Mode = name
	fmt.Fprintf(r.out, "Mode changed to: %s%s%s\n", ui.ColorGreen(), name, ui.ColorReset())
}

// cmdWorkers handles the "workers" command.
func (r *REPL) cmdWorkers(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: workers <k>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	k, err := strconv.Atoi(args[0])
	if err != nil || k < 1 {
		fmt.Fprintf(r.out, "%sInvalid worker count: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}

	r.config.Workers = k
	fmt.Fprintf(r.out, "Workers set to: %s%d%s\n", ui.ColorGreen(), k, ui.ColorReset())
}

// cmdReps handles the "reps" command.
func (r *REPL) cmdReps(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: reps <count>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	count, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || count < 1 {
		fmt.Fprintf(r.out, "%sInvalid repetition count: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}

	r.config.Repetitions = count
	fmt.Fprintf(r.out, "Repetitions set to: %s%d%s\n", ui.ColorGreen(), count, ui.ColorReset())
}

// cmdList handles the "list" command.
func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable regimes:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, key := range r.factory.List() {
		exec, err := r.factory.Get(key)
		if err != nil {
			continue
		}
		marker := "  "
		if key == r.config.Mode {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-10s%s - %s\n", marker, ui.ColorYellow(), key, ui.ColorReset(), exec.Name())
	}
	fmt.Fprintln(r.out)
}

// cmdStatus displays current REPL configuration.
func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Mode:        %s%s%s\n", ui.ColorCyan(), r.config.Mode, ui.ColorReset())
	fmt.Fprintf(r.out, "  N:           %s%d%s\n", ui.ColorCyan(), r.config.N, ui.ColorReset())
	fmt.Fprintf(r.out, "  Repetitions: %s%d%s per worker\n", ui.ColorCyan(), r.config.Repetitions, ui.ColorReset())
	fmt.Fprintf(r.out, "  Workers:     %s%d%s\n", ui.ColorCyan(), r.config.Workers, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:     %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintln(r.out)
}
