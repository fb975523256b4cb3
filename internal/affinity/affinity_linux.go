//go:build linux

package affinity

import (
	"errors"

	"golang.org/x/sys/unix"
)

// maxCPUs matches the kernel's CPU_SETSIZE.
const maxCPUs = 1024

// setThreadAffinity binds the current OS thread to a single CPU chosen
// from the thread's allowed set. Picking from the inherited mask instead
// of raw CPU numbers keeps pinning valid inside cgroup cpusets, where
// the process may only own a slice of the machine. The zero pid targets
// the calling thread.
func setThreadAffinity(workerIndex int) (func(), error) {
	var previous unix.CPUSet
	if err := unix.SchedGetaffinity(0, &previous); err != nil {
		return nil, err
	}

	cpu, ok := nthAllowedCPU(&previous, workerIndex)
	if !ok {
		return nil, errors.New("affinity: no CPUs in the allowed set")
	}

	var set unix.CPUSet
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return nil, err
	}

	return func() {
		// Best effort: the worker is done either way.
		_ = unix.SchedSetaffinity(0, &previous)
	}, nil
}

// nthAllowedCPU returns the (n mod count)-th set CPU in mask.
func nthAllowedCPU(mask *unix.CPUSet, n int) (int, bool) {
	count := mask.Count()
	if count == 0 {
		return 0, false
	}

	target := n % count
	seen := 0
	for cpu := 0; cpu < maxCPUs; cpu++ {
		if !mask.IsSet(cpu) {
			continue
		}
		if seen == target {
			return cpu, true
		}
		seen++
	}
	return 0, false
}
