// Package sysmon provides system-wide CPU and memory usage sampling
// for the dashboard. Per-core readings matter here: a serialized regime
// saturates a single core while the others idle, which is the visual
// fingerprint the dashboard wants to show.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64   // aggregate, 0.0 .. 100.0
	PerCore    []float64 // per logical CPU, 0.0 .. 100.0 each
	MemPercent float64   // 0.0 .. 100.0
}

// BusyCoreThreshold is the per-core utilization above which a core
// counts as busy for BusyCores.
const BusyCoreThreshold = 50.0

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	perCore, err := cpu.Percent(0, true)
	if err == nil {
		s.PerCore = perCore
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// BusyCores counts the cores running above BusyCoreThreshold. A gated
// workload reports 1 regardless of worker count; an ungated one
// approaches the worker count.
func (s Stats) BusyCores() int {
	busy := 0
	for _, pct := range s.PerCore {
		if pct > BusyCoreThreshold {
			busy++
		}
	}
	return busy
}
