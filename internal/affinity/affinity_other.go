//go:build !linux

package affinity

// setThreadAffinity is a no-op on platforms without a per-thread
// affinity syscall; locking the OS thread is all the pinning we get.
func setThreadAffinity(int) (func(), error) {
	return func() {}, nil
}
