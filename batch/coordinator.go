// Package batch runs a list of uploads under a concurrency bound and stops
// the whole batch at the first failure.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/xufanglin/rimmich/limiter"
	"github.com/xufanglin/rimmich/tool"
	"github.com/xufanglin/rimmich/types"
)

// Worker uploads a single file. It must return once ctx is cancelled.
type Worker interface {
	Upload(ctx context.Context, req types.UploadRequest) error
}

type WorkerFunc func(ctx context.Context, req types.UploadRequest) error

func (f WorkerFunc) Upload(ctx context.Context, req types.UploadRequest) error {
	return f(ctx, req)
}

// Coordinator drives one BatchJob. It is single use.
type Coordinator struct {
	job      types.BatchJob
	worker   Worker
	reporter Reporter
	used     atomic.Bool

	mu     sync.Mutex
	result types.BatchResult
}

// New validates job and returns a Coordinator ready to Run. A nil reporter discards events.
func New(job types.BatchJob, worker Worker, reporter Reporter) (*Coordinator, error) {
	if err := tool.ValidateConcurrency(job.Concurrency); err != nil {
		return nil, &ConfigError{Field: "concurrency", Err: err}
	}
	if strings.TrimSpace(job.ServerURL) == "" || strings.TrimSpace(job.APIKey) == "" {
		return nil, &ConfigError{Field: "credentials", Err: ErrMissingCredentials}
	}
	if worker == nil {
		panic("batch: nil worker")
	}
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Coordinator{job: job, worker: worker, reporter: reporter}, nil
}

// Run uploads every file of the job and blocks until all started workers returned.
//
// An upload failure is not returned as error; it ends up in the result's
// FirstFailure. The error is non-nil only for reuse or when ctx was cancelled
// by the caller, in which case the result is marked Cancelled.
func (c *Coordinator) Run(ctx context.Context) (types.BatchResult, error) {
	if !c.used.CompareAndSwap(false, true) {
		return types.BatchResult{}, ErrCoordinatorUsed
	}
	total := len(c.job.Files)
	c.result = types.BatchResult{Total: total}
	c.reporter.Started(total)
	tool.DefaultLogger.Infof("[Batch] Starting upload of %d files with concurrency %d", total, c.job.Concurrency)

	if total > 0 {
		c.dispatch(ctx)
	}

	c.mu.Lock()
	if c.result.FirstFailure == nil && c.result.Completed < total {
		c.result.Cancelled = true
	}
	result := c.result
	c.mu.Unlock()

	c.reporter.Finished(result)
	tool.DefaultLogger.Infof("[Batch] Finished: %s", result.State())
	if result.Cancelled {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		return result, context.Canceled
	}
	return result, nil
}

func (c *Coordinator) dispatch(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	pool := limiter.New(c.job.Concurrency)
	defer pool.Close()

	var g errgroup.Group
	for _, entry := range c.job.Files {
		if err := pool.Acquire(ctx); err != nil {
			break
		}
		// a permit can be handed out after the batch got cancelled
		if ctx.Err() != nil {
			pool.Release()
			break
		}
		entry := entry // per-iteration copy; go.mod targets go1.21 loop semantics
		g.Go(func() error {
			defer pool.Release()
			outcome := c.runWorker(ctx, entry)
			// recorded before the permit is returned so a failure cancels
			// the batch ahead of the next Acquire
			c.record(parent, outcome, cancel)
			return nil
		})
	}
	_ = g.Wait()
}

func (c *Coordinator) runWorker(ctx context.Context, entry types.FileEntry) (outcome types.UploadOutcome) {
	outcome.DisplayName = entry.DisplayName
	if outcome.DisplayName == "" {
		outcome.DisplayName = filepath.Base(entry.Path)
	}
	defer func() {
		if r := recover(); r != nil {
			tool.DefaultLogger.Errorf("[Batch] Upload of %s panicked: %v", outcome.DisplayName, r)
			outcome.Err = fmt.Errorf("%w: %v", ErrTaskExecution, r)
		}
	}()
	outcome.Err = c.worker.Upload(ctx, types.UploadRequest{
		ServerURL: c.job.ServerURL,
		APIKey:    c.job.APIKey,
		FilePath:  entry.Path,
	})
	return outcome
}

// record folds one outcome into the result. Outcomes after the first failure
// or after cancellation are dropped.
func (c *Coordinator) record(parent context.Context, outcome types.UploadOutcome, cancel context.CancelFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.result.FirstFailure != nil || c.result.Cancelled {
		tool.DefaultLogger.Debugf("[Batch] Discarding outcome of %s after abort", outcome.DisplayName)
		return
	}
	if outcome.Success() {
		c.result.Completed++
		c.reporter.Progress(c.result.Completed, c.result.Total, outcome.DisplayName)
		return
	}
	if parent.Err() != nil {
		c.result.Cancelled = true
		cancel()
		return
	}
	failure := outcome
	c.result.FirstFailure = &failure
	cancel()
	tool.DefaultLogger.Errorf("[Batch] Upload of %s failed, aborting batch: %v", outcome.DisplayName, outcome.Err)
	c.reporter.Failed(outcome.DisplayName, outcome.ErrorDetail())
}
