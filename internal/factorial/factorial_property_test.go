package factorial

import (
	"context"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// allRegimes returns both regime cores, each on a private gate so
// property iterations stay independent of the shared token.
func allRegimes() []coreExecutor {
	return []coreExecutor{
		&GateHeld{Gate: NewGate()},
		&GateReleased{Gate: NewGate()},
	}
}

// TestRepetitionInvariance_PropertyBased verifies the defining property
// of the workload: the repetition count never changes the value.
//
//	Repeat(n, r) == Product(n)  for all n in [0, MaxN], r >= 1
//
// Every iteration recomputes the same pure product and only the last
// one is kept, so any divergence would mean hidden state between
// iterations.
func TestRepetitionInvariance_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Repeat(n, r) equals Product(n)", prop.ForAll(
		func(n uint64, r uint64) bool {
			return Repeat(uint(n), r) == Product(uint(n))
		},
		gen.UInt64Range(0, MaxN),
		gen.UInt64Range(1, 2000),
	))

	properties.TestingRun(t)
}

// TestFactorialRecurrence_PropertyBased verifies the defining recurrence
// of the factorial function:
//
//	Product(n) == n * Product(n-1)  for n in [1, MaxN]
func TestFactorialRecurrence_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Product(n) = n * Product(n-1)", prop.ForAll(
		func(n uint64) bool {
			return Product(uint(n)) == n*Product(uint(n)-1)
		},
		gen.UInt64Range(1, MaxN),
	))

	properties.TestingRun(t)
}

// TestProductMatchesBigIntOracle_PropertyBased cross-validates Product
// against math/big's MulRange as an independent oracle over the whole
// representable range.
func TestProductMatchesBigIntOracle_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Product agrees with big.Int oracle", prop.ForAll(
		func(n uint64) bool {
			oracle := new(big.Int).MulRange(1, int64(n))
			return oracle.IsUint64() && Product(uint(n)) == oracle.Uint64()
		},
		gen.UInt64Range(0, MaxN),
	))

	properties.TestingRun(t)
}

// TestRegimeEquivalence_PropertyBased verifies both gate disciplines
// compute the same value as the plain reference routine for any valid
// arguments. The gate changes scheduling, never arithmetic.
func TestRegimeEquivalence_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	for _, regime := range allRegimes() {
		exec := NewExecutor(regime)
		properties.Property(regime.Name()+" matches the reference routine", prop.ForAll(
			func(n uint64, r uint64) bool {
				got, err := exec.Compute(context.Background(), nil, 0, Args{N: uint(n), Repetitions: r})
				return err == nil && got == Product(uint(n))
			},
			gen.UInt64Range(0, MaxN),
			gen.UInt64Range(1, 500),
		))
	}

	properties.TestingRun(t)
}

// TestEntryPointEquivalence_PropertyBased verifies the two public entry
// points agree with each other for identical arguments.
func TestEntryPointEquivalence_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("WithGIL and WithoutGIL agree", prop.ForAll(
		func(n uint64, r uint64) bool {
			held, err1 := WithGIL(uint(n), r)
			released, err2 := WithoutGIL(uint(n), r)
			return err1 == nil && err2 == nil && held == released && held == Product(uint(n))
		},
		gen.UInt64Range(0, MaxN),
		gen.UInt64Range(1, 100),
	))

	properties.TestingRun(t)
}
