package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	appemail "github.com/salescrm/backend/internal/application/email"
	"go.uber.org/zap"
)

// ErrQueueClosed is returned by Dispatch after Stop
var ErrQueueClosed = errors.New("queue closed")

// LocalDispatcher runs jobs on a fixed pool of goroutines in this process.
// Jobs still buffered when the process exits are lost; their logs stay queued.
type LocalDispatcher struct {
	jobs    chan appemail.DeliveryJob
	handler Handler
	workers int
	logger  *zap.Logger

	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	started bool
}

// NewLocalDispatcher creates a pool with the given worker count and buffer size
func NewLocalDispatcher(handler Handler, workers, buffer int, logger *zap.Logger) *LocalDispatcher {
	if workers < 1 {
		workers = 1
	}
	if buffer < 1 {
		buffer = 100
	}
	return &LocalDispatcher{
		jobs:    make(chan appemail.DeliveryJob, buffer),
		handler: handler,
		workers: workers,
		logger:  logger,
	}
}

// Start launches the workers
func (d *LocalDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.work(context.WithoutCancel(ctx), i)
	}
	d.logger.Info("local email dispatcher started", zap.Int("workers", d.workers))
}

func (d *LocalDispatcher) work(ctx context.Context, id int) {
	defer d.wg.Done()
	for job := range d.jobs {
		if err := d.handler(ctx, job); err != nil {
			d.logger.Error("email job failed",
				zap.Int("worker", id),
				zap.String("email_log_id", job.EmailLogID.String()),
				zap.Error(err),
			)
		}
	}
}

// Dispatch enqueues a job. It blocks while the buffer is full, until ctx is done.
func (d *LocalDispatcher) Dispatch(ctx context.Context, job appemail.DeliveryJob) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrQueueClosed
	}
	select {
	case d.jobs <- job:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("enqueue email job: %w", ctx.Err())
	}
}

// Stop drains the buffer and waits for the workers, or for ctx to expire
func (d *LocalDispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stop local dispatcher: %w", ctx.Err())
	}
}

var _ appemail.Dispatcher = (*LocalDispatcher)(nil)
