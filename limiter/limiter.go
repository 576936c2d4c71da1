// Package limiter provides the counting permit pool that caps how many uploads
// run at the same time.
package limiter

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Pool is a counting permit pool. At most Capacity() holders exist at any instant.
// Waiters are not served in any particular order.
//
// Releasing more permits than were acquired, or acquiring after Close, panics.
type Pool struct {
	sem      *semaphore.Weighted
	capacity int64
	held     atomic.Int64
	closed   atomic.Bool
}

// New creates a pool with capacity permits. capacity must be positive.
func New(capacity int) *Pool {
	if capacity < 1 {
		panic(fmt.Sprintf("limiter: capacity must be positive, got %d", capacity))
	}
	return &Pool{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: int64(capacity),
	}
}

// Acquire blocks until a permit is available or ctx is done.
// On success the caller must call Release exactly once.
func (p *Pool) Acquire(ctx context.Context) error {
	if p.closed.Load() {
		panic("limiter: acquire on closed pool")
	}
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	p.held.Add(1)
	return nil
}

// Release returns a permit to the pool.
func (p *Pool) Release() {
	if p.held.Add(-1) < 0 {
		p.held.Add(1)
		panic("limiter: released more permits than acquired")
	}
	p.sem.Release(1)
}

// InUse reports how many permits are currently held.
func (p *Pool) InUse() int {
	return int(p.held.Load())
}

func (p *Pool) Capacity() int {
	return int(p.capacity)
}

// Close tears the pool down. Permits already held may still be released.
func (p *Pool) Close() {
	p.closed.Store(true)
}
