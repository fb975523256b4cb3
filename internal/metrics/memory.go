// Package metrics collects runtime measurements taken around benchmark
// spans: point-in-time memory snapshots, span deltas for the result
// report, and a throughput tracker fed by per-chunk loop timings.
package metrics

import (
	"runtime"
	"time"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	TotalAlloc   uint64 // cumulative bytes allocated
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
}

// MemoryDelta is the change in memory statistics across a benchmark span.
// Gauge values (heap bytes, object counts) can go negative when a
// collection runs inside the span; cumulative counters only grow.
type MemoryDelta struct {
	HeapAllocBytes  int64
	SysBytes        int64
	TotalAllocBytes uint64
	NumGC           uint32
	PauseTotal      time.Duration
	HeapObjects     int64
}

// Delta returns the change from an earlier snapshot to this one.
func (s MemorySnapshot) Delta(before MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		HeapAllocBytes:  int64(s.HeapAlloc) - int64(before.HeapAlloc),
		SysBytes:        int64(s.Sys) - int64(before.Sys),
		TotalAllocBytes: s.TotalAlloc - before.TotalAlloc,
		NumGC:           s.NumGC - before.NumGC,
		PauseTotal:      time.Duration(s.PauseTotalNs - before.PauseTotalNs),
		HeapObjects:     int64(s.HeapObjects) - int64(before.HeapObjects),
	}
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		TotalAlloc:   m.TotalAlloc,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}
