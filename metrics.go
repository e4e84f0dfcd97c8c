package hugearray

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// None of the methods is called on the per-bit or per-element hot path;
// they fire on fills, growth, builds and allocations only.
type MetricsCollector interface {
	// RecordFill is called after each parallel page fill.
	RecordFill(pages int, duration time.Duration, err error)

	// RecordGrowth is called after each page table growth attempt.
	// won reports whether this attempt installed its table.
	RecordGrowth(fromPages, toPages int, won bool)

	// RecordBuild is called after a builder has been finalized.
	RecordBuild(size uint64, duration time.Duration)

	// RecordAllocation is called after each page allocation request.
	RecordAllocation(bytes int64, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFill(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordGrowth(int, int, bool)          {}
func (NoopMetricsCollector) RecordBuild(uint64, time.Duration)    {}
func (NoopMetricsCollector) RecordAllocation(int64, error)        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FillCount        atomic.Int64
	FillErrors       atomic.Int64
	FillPages        atomic.Int64
	FillTotalNanos   atomic.Int64
	GrowthWon        atomic.Int64
	GrowthLost       atomic.Int64
	BuildCount       atomic.Int64
	BuildTotalNanos  atomic.Int64
	AllocationCount  atomic.Int64
	AllocationErrors atomic.Int64
	AllocatedBytes   atomic.Int64
}

// RecordFill implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFill(pages int, duration time.Duration, err error) {
	b.FillCount.Add(1)
	b.FillTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FillErrors.Add(1)
		return
	}
	b.FillPages.Add(int64(pages))
}

// RecordGrowth implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrowth(_, _ int, won bool) {
	if won {
		b.GrowthWon.Add(1)
	} else {
		b.GrowthLost.Add(1)
	}
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(_ uint64, duration time.Duration) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
}

// RecordAllocation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAllocation(bytes int64, err error) {
	b.AllocationCount.Add(1)
	if err != nil {
		b.AllocationErrors.Add(1)
		return
	}
	b.AllocatedBytes.Add(bytes)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		FillCount:        b.FillCount.Load(),
		FillErrors:       b.FillErrors.Load(),
		FillPages:        b.FillPages.Load(),
		FillAvgNanos:     avg(b.FillTotalNanos.Load(), b.FillCount.Load()),
		GrowthWon:        b.GrowthWon.Load(),
		GrowthLost:       b.GrowthLost.Load(),
		BuildCount:       b.BuildCount.Load(),
		BuildAvgNanos:    avg(b.BuildTotalNanos.Load(), b.BuildCount.Load()),
		AllocationCount:  b.AllocationCount.Load(),
		AllocationErrors: b.AllocationErrors.Load(),
		AllocatedBytes:   b.AllocatedBytes.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	FillCount        int64
	FillErrors       int64
	FillPages        int64
	FillAvgNanos     int64
	GrowthWon        int64
	GrowthLost       int64
	BuildCount       int64
	BuildAvgNanos    int64
	AllocationCount  int64
	AllocationErrors int64
	AllocatedBytes   int64
}
