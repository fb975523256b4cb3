package factorial

// ─────────────────────────────────────────────────────────────────────────────
// Domain Bounds
// ─────────────────────────────────────────────────────────────────────────────
//
// The accumulator is a plain uint64, so the representable range fixes the
// input range. There is no arbitrary-precision fallback: the workload is
// meant to be a fixed-cost CPU burn, not a bignum exercise.

const (
	// MaxN is the largest n whose factorial fits in a uint64 accumulator.
	// 21! = 51,090,942,171,709,440,000 exceeds 2^64 - 1, so boundary
	// layers reject n > 20. Product itself never checks; out-of-range
	// inputs wrap silently.
	MaxN = 20

	// MaxNFactorial is Product(MaxN): 20!, the largest exactly
	// representable result.
	MaxNFactorial = 2432902008176640000
)

// ─────────────────────────────────────────────────────────────────────────────
// Regime Keys
// ─────────────────────────────────────────────────────────────────────────────

const (
	// KeyGIL selects the regime that holds the gate token across the
	// whole repetition loop, serializing all workers.
	KeyGIL = "gil"

	// KeyNoGIL selects the regime that releases the gate token around
	// the repetition loop, letting workers overlap on the CPU.
	KeyNoGIL = "nogil"
)
