package resource

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"golang.org/x/sync/semaphore"
)

// ErrMemoryLimitExceeded is returned when memory limit would be exceeded.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for managed memory.
	// If 0, MemoryLimitFraction is consulted.
	MemoryLimitBytes int64

	// MemoryLimitFraction derives the hard limit from total physical memory
	// when MemoryLimitBytes is 0. Values outside (0, 1] mean no limit.
	MemoryLimitFraction float64

	// MaxConcurrentFills is the maximum number of parallel page fills
	// running at the same time. If 0, fills are not limited.
	MaxConcurrentFills int64
}

// Controller manages global resources (memory, fill concurrency).
type Controller struct {
	limit int64

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Fills
	fillSem *semaphore.Weighted // nil if unlimited
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{limit: memoryLimit(cfg)}

	if c.limit > 0 {
		c.memSem = semaphore.NewWeighted(c.limit)
	}

	if cfg.MaxConcurrentFills > 0 {
		c.fillSem = semaphore.NewWeighted(cfg.MaxConcurrentFills)
	}

	return c
}

func memoryLimit(cfg Config) int64 {
	if cfg.MemoryLimitBytes > 0 {
		return cfg.MemoryLimitBytes
	}
	if cfg.MemoryLimitFraction <= 0 || cfg.MemoryLimitFraction > 1 {
		return 0
	}
	total := memory.TotalMemory()
	if total == 0 {
		// platform not supported by the probe
		return 0
	}
	return int64(float64(total) * cfg.MemoryLimitFraction)
}

// AcquireMemory attempts to reserve memory.
// Returns ErrMemoryLimitExceeded if limit would be exceeded.
// Non-blocking - callers on lock-free paths must never wait here.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return ErrMemoryLimitExceeded
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil {
		return
	}
	if bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// Admit reports whether an estimated footprint would currently fit into the
// budget without reserving anything. It is meant for admission control before
// a structure is constructed; the reservation itself happens on allocation.
func (c *Controller) Admit(bytes uint64) error {
	if c == nil || c.limit <= 0 {
		return nil
	}
	if bytes > uint64(c.limit) || c.memUsed.Load()+int64(bytes) > c.limit {
		return ErrMemoryLimitExceeded
	}
	return nil
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the effective memory limit in bytes (0 if unlimited).
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.limit
}

// AcquireFill reserves a fill slot, blocking while all slots are busy.
func (c *Controller) AcquireFill(ctx context.Context) error {
	if c == nil || c.fillSem == nil {
		return nil
	}
	return c.fillSem.Acquire(ctx, 1)
}

// ReleaseFill releases a fill slot.
func (c *Controller) ReleaseFill() {
	if c == nil || c.fillSem == nil {
		return
	}
	c.fillSem.Release(1)
}

// TryAcquireFill attempts to reserve a fill slot without blocking.
func (c *Controller) TryAcquireFill() bool {
	if c == nil || c.fillSem == nil {
		return true
	}
	return c.fillSem.TryAcquire(1)
}
