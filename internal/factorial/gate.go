package factorial

import "context"

// Gate is the process-wide serialization token the execution regimes
// contend for. It is a binary semaphore built on a one-slot channel:
// whoever holds the token excludes every other holder, regardless of
// which goroutine acquired it. Ownership is a resource, not a goroutine
// identity, which lets one regime acquire the token, hand the CPU-bound
// section to the scheduler, and reacquire it later. A sync.Mutex cannot
// model this: its unlock must happen on a locked mutex and the race
// detector ties it to the locking goroutine.
type Gate struct {
	tok chan struct{}
}

// NewGate creates a Gate with the token available.
func NewGate() *Gate {
	g := &Gate{tok: make(chan struct{}, 1)}
	g.tok <- struct{}{}
	return g
}

// Acquire takes the token, blocking until it is available or the
// context is done. When both are ready the token is preferred, so a
// caller with an already-cancelled context can still win an
// uncontended gate.
//
// Returns:
//   - error: ctx.Err() if the context finished first, nil otherwise.
func (g *Gate) Acquire(ctx context.Context) error {
	select {
	case <-g.tok:
		return nil
	default:
	}
	select {
	case <-g.tok:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryAcquire takes the token without blocking. It reports whether the
// caller now holds it.
func (g *Gate) TryAcquire() bool {
	select {
	case <-g.tok:
		return true
	default:
		return false
	}
}

// Release returns the token. Releasing a token that is not held is a
// programming error and panics.
func (g *Gate) Release() {
	select {
	case g.tok <- struct{}{}:
	default:
		panic("factorial: Release of an unheld Gate")
	}
}

// sharedGate models the external, host-owned lock: a single token for
// the whole process, exactly as an interpreter has a single GIL.
var sharedGate = NewGate()

// SharedGate returns the process-wide gate instance used by the default
// regimes and the WithGIL/WithoutGIL entry points.
func SharedGate() *Gate {
	return sharedGate
}
