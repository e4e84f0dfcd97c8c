// Package resource implements the Controller for process-wide memory admission
// and fill-worker limits.
//
// The Controller governs two resources:
//
//   - Memory: page allocations reserve bytes up front (non-blocking, fail-fast)
//   - Fill workers: bounds how many parallel page fills run at once
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and atomic counters
// for usage tracking. AcquireMemory never blocks; it returns
// ErrMemoryLimitExceeded immediately so growth on a lock-free path stays
// non-blocking:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 8 << 30, // 8GB budget for huge arrays
//	})
//
//	if err := rc.Admit(bitset.EstimateFixed(n)); err != nil {
//	    // reject the job before allocating anything
//	}
//
// The limit can also be derived from physical memory:
//
//	rc := resource.NewController(resource.Config{MemoryLimitFraction: 0.5})
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
