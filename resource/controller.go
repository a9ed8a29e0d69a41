package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// BufferLimitBytes caps the bytes of decoded events held in memory.
	// If 0, usage is tracked but not limited.
	BufferLimitBytes int64

	// MaxWorkers is the maximum number of files processed concurrently.
	// If 0, defaults to 1.
	MaxWorkers int64

	// IOLimitBytesPerSec throttles event stream reads and writes.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller manages shared limits for concurrent event processing.
type Controller struct {
	cfg Config

	bufSem  *semaphore.Weighted // nil if unlimited
	bufUsed atomic.Int64

	workers *semaphore.Weighted

	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 1
	}

	c := &Controller{
		cfg:     cfg,
		workers: semaphore.NewWeighted(cfg.MaxWorkers),
	}

	if cfg.BufferLimitBytes > 0 {
		c.bufSem = semaphore.NewWeighted(cfg.BufferLimitBytes)
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// Config returns the effective limits.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// AcquireBuffer reserves bytes of event buffer.
// With a limit configured it blocks until the bytes are available or ctx is
// canceled.
func (c *Controller) AcquireBuffer(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.bufSem != nil {
		if bytes > c.cfg.BufferLimitBytes {
			bytes = c.cfg.BufferLimitBytes
		}
		if err := c.bufSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}

	c.bufUsed.Add(bytes)
	return nil
}

// TryAcquireBuffer reserves bytes without blocking.
func (c *Controller) TryAcquireBuffer(bytes int64) bool {
	if c == nil || bytes <= 0 {
		return true
	}

	if c.bufSem != nil && !c.bufSem.TryAcquire(bytes) {
		return false
	}

	c.bufUsed.Add(bytes)
	return true
}

// ReleaseBuffer returns bytes reserved with AcquireBuffer.
func (c *Controller) ReleaseBuffer(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.bufSem != nil {
		if bytes > c.cfg.BufferLimitBytes {
			bytes = c.cfg.BufferLimitBytes
		}
		c.bufSem.Release(bytes)
	}
	c.bufUsed.Add(-bytes)
}

// BufferUsage returns the bytes currently reserved.
func (c *Controller) BufferUsage() int64 {
	if c == nil {
		return 0
	}
	return c.bufUsed.Load()
}

// AcquireWorker reserves a worker slot, blocking while all are busy.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.workers.Acquire(ctx, 1)
}

// TryAcquireWorker reserves a worker slot without blocking.
func (c *Controller) TryAcquireWorker() bool {
	if c == nil {
		return true
	}
	return c.workers.TryAcquire(1)
}

// ReleaseWorker releases a worker slot.
func (c *Controller) ReleaseWorker() {
	if c == nil {
		return
	}
	c.workers.Release(1)
}

// AcquireIO waits until the IO limit allows n bytes. Requests larger than
// the burst are split.
func (c *Controller) AcquireIO(ctx context.Context, n int) error {
	if c == nil || c.ioLimiter == nil || n <= 0 {
		return nil
	}
	burst := c.ioLimiter.Burst()
	for n > 0 {
		chunk := min(n, burst)
		if err := c.ioLimiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}
