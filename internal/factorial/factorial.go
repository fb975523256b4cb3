// Package factorial implements the reference factorial routine, the
// repetition loop used as the benchmark workload, and the two execution
// regimes that run it: one holding the process-wide gate token for the
// whole loop (the way a C extension behaves when it keeps the
// interpreter lock) and one releasing the token around the loop.
//
// The numeric core is deliberately tiny: an iterative product over a
// uint64 accumulator. All the interesting behavior lives in how the
// regimes schedule that core across workers contending for the gate.
package factorial

import "context"

// Product computes n! by iterative multiplication over a 64-bit
// unsigned accumulator.
//
// Product performs no bounds checking: results are exact only for
// n <= MaxN, and larger inputs silently wrap around. Keeping n in range
// is part of the calling convention, enforced by Args.Validate at the
// boundary layers.
//
// Parameters:
//   - n: The operand. Product(0) is 1 by the empty-product convention.
//
// Returns:
//   - uint64: n! for n <= MaxN, wrapped garbage otherwise.
func Product(n uint) uint64 {
	result := uint64(1)
	for i := uint64(2); i <= uint64(n); i++ {
		result *= i
	}
	return result
}

// Repeat runs Product(n) repetitions times and returns only the final
// result. The loop is pure and allocation-free: iterations share no
// state, so concurrent Repeat calls never interfere with each other.
// The repeated recomputation is the whole point: it is the CPU-bound
// workload the execution regimes schedule.
//
// Repeat(n, 0) returns 0; callers bound repetitions >= 1 the same way
// they bound n <= MaxN.
func Repeat(n uint, repetitions uint64) uint64 {
	var last uint64
	for i := uint64(0); i < repetitions; i++ {
		last = Product(n)
	}
	return last
}

// WithGIL validates the arguments and computes Repeat(n, repetitions)
// while holding the shared gate token for the entire loop. Concurrent
// WithGIL calls therefore serialize: total wall time grows linearly
// with the number of callers, which is exactly the contention this
// package exists to demonstrate.
func WithGIL(n uint, repetitions uint64) (uint64, error) {
	exec := NewExecutor(&GateHeld{})
	return exec.Compute(context.Background(), nil, 0, Args{N: n, Repetitions: repetitions})
}

// WithoutGIL validates the arguments under the shared gate token,
// releases it for the duration of the loop, and reacquires it briefly
// to hand back the result. Concurrent WithoutGIL calls overlap on the
// CPU-bound section, so wall time scales with available cores instead
// of with the number of callers.
func WithoutGIL(n uint, repetitions uint64) (uint64, error) {
	exec := NewExecutor(&GateReleased{})
	return exec.Compute(context.Background(), nil, 0, Args{N: n, Repetitions: repetitions})
}
