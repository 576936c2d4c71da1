package models

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	ttlworker "github.com/FloatTech/ttl"

	"github.com/xufanglin/rimmich/batch"
	"github.com/xufanglin/rimmich/tool"
	"github.com/xufanglin/rimmich/transfer"
	"github.com/xufanglin/rimmich/types"
)

var (
	BatchSessionTTL = 60 * time.Minute
	batchSessions   = ttlworker.NewCache[string, *BatchSession](BatchSessionTTL)
	runningBatches  atomic.Int32

	uploadWorkerMu sync.RWMutex
	uploadWorker   batch.Worker
)

// BatchSession tracks one batch started through the control API.
// It is a batch.Reporter so the coordinator keeps it current.
type BatchSession struct {
	id     string
	user   string
	cancel context.CancelFunc

	mu        sync.RWMutex
	total     int
	completed int
	status    string
	done      bool
	result    types.BatchResult
}

// NewBatchSession creates a session with a fresh id. It is not visible to lookups until StoreBatchSession.
func NewBatchSession(user string, total int, cancel context.CancelFunc) *BatchSession {
	return &BatchSession{
		id:     tool.GenerateRandomUUID(),
		user:   user,
		total:  total,
		cancel: cancel,
	}
}

func StoreBatchSession(s *BatchSession) {
	batchSessions.Set(s.id, s)
}

// GetBatchSession looks a session up by id. Sessions expire BatchSessionTTL after creation.
func GetBatchSession(id string) (*BatchSession, bool) {
	s := batchSessions.Get(id)
	return s, s != nil
}

// RunningBatches reports how many batches are still uploading.
func RunningBatches() int {
	return int(runningBatches.Load())
}

// SetUploadWorker overrides the worker used for new batches. nil restores the HTTP uploader.
func SetUploadWorker(w batch.Worker) {
	uploadWorkerMu.Lock()
	defer uploadWorkerMu.Unlock()
	uploadWorker = w
}

// GetUploadWorker returns the worker for a new batch.
func GetUploadWorker(speedLimit int64) batch.Worker {
	uploadWorkerMu.RLock()
	defer uploadWorkerMu.RUnlock()
	if uploadWorker != nil {
		return uploadWorker
	}
	return transfer.NewUploader(speedLimit)
}

func (s *BatchSession) ID() string {
	return s.id
}

// Run drives c to the end with ctx and releases the session context afterwards.
func (s *BatchSession) Run(ctx context.Context, c *batch.Coordinator) {
	runningBatches.Add(1)
	defer runningBatches.Add(-1)
	defer s.cancel()

	if _, err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		tool.DefaultLogger.Errorf("[Batch %s] %v", s.id, err)
	}
}

// Cancel stops a running batch. It is a no-op once the batch is done.
func (s *BatchSession) Cancel() {
	s.cancel()
}

// Notify records line as the latest status and broadcasts it.
func (s *BatchSession) Notify(kind, line string) {
	s.mu.Lock()
	s.status = line
	s.mu.Unlock()
	Broadcast(kind, line, s.id)
}

func (s *BatchSession) Started(total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = total
}

func (s *BatchSession) Progress(completed, total int, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = completed
	s.total = total
}

func (s *BatchSession) Failed(string, string) {}

func (s *BatchSession) Finished(result types.BatchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = result
	s.completed = result.Completed
	s.done = true
}

func (s *BatchSession) Snapshot() types.BatchSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := types.BatchSnapshot{
		BatchId:   s.id,
		User:      s.user,
		Total:     s.total,
		Completed: s.completed,
		Status:    s.status,
		Done:      s.done,
	}
	if s.done {
		state := s.result.State()
		snap.State = &state
		snap.Cancelled = s.result.Cancelled
	}
	return snap
}
