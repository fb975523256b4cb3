package factorial

import (
	"strconv"

	apperrors "github.com/machapraveen/gilbench/internal/errors"
)

// Args holds the two scalars of a benchmark invocation: the factorial
// operand and the number of times to recompute it.
type Args struct {
	N           uint
	Repetitions uint64
}

// ParseArgs converts the textual form of the two arguments into Args.
// Parsing enforces only the unsigned integer widths (n must fit a uint,
// repetitions a uint64); range checks belong to Validate. Malformed
// input fails with an ArgumentError before any computation happens.
//
// Parameters:
//   - nArg: The factorial operand, e.g. "20".
//   - repsArg: The repetition count, e.g. "5000000".
//
// Returns:
//   - Args: The parsed arguments.
//   - error: An apperrors.ArgumentError describing the offending
//     argument, or nil.
func ParseArgs(nArg, repsArg string) (Args, error) {
	n, err := strconv.ParseUint(nArg, 10, strconv.IntSize)
	if err != nil {
		return Args{}, apperrors.NewArgumentError("n", "%q is not an unsigned integer", nArg)
	}

	reps, err := strconv.ParseUint(repsArg, 10, 64)
	if err != nil {
		return Args{}, apperrors.NewArgumentError("repetitions", "%q is not an unsigned 64-bit integer", repsArg)
	}

	return Args{N: uint(n), Repetitions: reps}, nil
}

// Validate applies the caller-side bounds the core routines rely on:
// n must not exceed MaxN (the uint64 overflow bound) and repetitions
// must be at least 1 (with zero iterations there is no last result to
// return). Violations are reported as ArgumentError.
func (a Args) Validate() error {
	if a.N > MaxN {
		return apperrors.NewArgumentError("n", "%d exceeds the maximum of %d (21! overflows uint64)", a.N, MaxN)
	}
	if a.Repetitions < 1 {
		return apperrors.NewArgumentError("repetitions", "must be at least 1")
	}
	return nil
}
