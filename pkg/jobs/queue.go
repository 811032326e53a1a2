package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrQueueFull is returned by Enqueue when the buffer has no free slot.
var ErrQueueFull = errors.New("queue full")

// ErrQueueClosed is returned by Enqueue before Start or after Stop.
var ErrQueueClosed = errors.New("queue closed")

// Job is a unit of background work.
type Job struct {
	Kind     string
	Payload  interface{}
	Attempt  int
	Enqueued time.Time
}

// Handler processes a job.
type Handler func(context.Context, Job) error

// QueueConfig configures worker pool behaviour.
type QueueConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// Queue dispatches jobs to a fixed pool of goroutines. Enqueue never blocks the
// caller, and Stop drains jobs already accepted before returning.
type Queue struct {
	name    string
	handler Handler
	cfg     QueueConfig
	logger  *zap.Logger

	jobs chan Job
	wg   sync.WaitGroup

	mu      sync.RWMutex
	running bool
}

// NewQueue builds a queue with the provided handler.
func NewQueue(name string, handler Handler, cfg QueueConfig) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 64
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 200 * time.Millisecond
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Queue{
		name:    name,
		handler: handler,
		cfg:     cfg,
		logger:  cfg.Logger,
		jobs:    make(chan Job, cfg.BufferSize),
	}
}

// Start launches the workers. Calling it again is a no-op.
func (q *Queue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.running {
		return
	}
	for i := 0; i < q.cfg.Workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	q.running = true
	q.logger.Info("queue started", zap.String("queue", q.name), zap.Int("workers", q.cfg.Workers))
}

// Stop refuses new jobs and waits for the workers to finish the buffered ones
// or for ctx to expire.
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return nil
	}
	q.running = false
	close(q.jobs)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.logger.Info("queue stopped", zap.String("queue", q.name))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("queue %s drain: %w", q.name, ctx.Err())
	}
}

// Enqueue hands job to the workers without waiting for a free slot.
func (q *Queue) Enqueue(job Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if !q.running {
		return ErrQueueClosed
	}
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}
	select {
	case q.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for job := range q.jobs {
		q.run(job)
	}
}

// run retries inline so a job never outlives Stop.
func (q *Queue) run(job Job) {
	for {
		err := q.handler(context.Background(), job)
		if err == nil {
			return
		}
		if job.Attempt >= q.cfg.MaxRetries {
			q.logger.Error("job failed",
				zap.String("queue", q.name),
				zap.String("kind", job.Kind),
				zap.Int("attempts", job.Attempt+1),
				zap.Error(err),
			)
			return
		}
		job.Attempt++
		q.logger.Warn("job failed, retrying",
			zap.String("queue", q.name),
			zap.String("kind", job.Kind),
			zap.Int("attempt", job.Attempt),
			zap.Error(err),
		)
		time.Sleep(q.cfg.RetryDelay)
	}
}
