package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a unit of background work, typically a write-behind persistence
// task carrying an encoded payload.
type Job struct {
	ID       string
	Type     string
	Payload  interface{}
	Attempt  int
	Enqueued time.Time
}

// Handler processes a single job. A non-nil error triggers a retry until
// MaxRetries is exhausted.
type Handler func(context.Context, Job) error

// QueueConfig tunes the worker pool. Zero values fall back to defaults
// suitable for a low-volume writer.
type QueueConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

func (cfg *QueueConfig) applyDefaults() {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

// Queue dispatches jobs to a fixed goroutine pool over a buffered channel.
// With Workers set to 1 it preserves submission order, which the snapshot
// writer relies on. Every job accepted by Enqueue is handed to the handler
// exactly once; Stop drains the buffer before returning.
type Queue struct {
	name    string
	handler Handler
	cfg     QueueConfig

	jobs     chan Job
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	mu       sync.Mutex
	started  bool
	stopping bool
}

// NewQueue builds a queue around the given handler. Start must be called
// before Enqueue.
func NewQueue(name string, handler Handler, cfg QueueConfig) *Queue {
	cfg.applyDefaults()
	return &Queue{
		name:    name,
		handler: handler,
		cfg:     cfg,
		jobs:    make(chan Job, cfg.BufferSize),
	}
}

// Start launches the worker pool. Calling Start twice is a no-op. The
// worker context is detached from ctx so jobs accepted before a caller
// cancellation still complete during the Stop drain.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx, q.cancel = context.WithCancel(context.WithoutCancel(ctx))
	for i := 0; i < q.cfg.Workers; i++ {
		q.wg.Add(1)
		go q.run()
	}
	q.started = true
	q.cfg.Logger.Info("queue started",
		zap.String("queue", q.name),
		zap.Int("workers", q.cfg.Workers))
}

// Stop rejects further submissions, drains every buffered job through the
// handler and waits for the workers to exit. Accepted work is never
// dropped; a pending retry that fires after the drain fails its requeue
// and is logged.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.started || q.stopping {
		q.mu.Unlock()
		return
	}
	q.stopping = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
	q.cancel()
	q.cfg.Logger.Info("queue stopped", zap.String("queue", q.name))
}

// Enqueue submits a job, blocking while the buffer is full. It fails once
// Stop has begun or when the queue never started. The mutex stays held
// across the send so the channel cannot close mid-submission.
func (q *Queue) Enqueue(job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.started {
		return fmt.Errorf("queue %s not started", q.name)
	}
	if q.stopping {
		return fmt.Errorf("queue %s stopped", q.name)
	}
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}

	select {
	case <-q.ctx.Done():
		return fmt.Errorf("queue %s stopped: %w", q.name, q.ctx.Err())
	case q.jobs <- job:
		return nil
	}
}

func (q *Queue) run() {
	defer q.wg.Done()
	for job := range q.jobs {
		if err := q.handler(q.ctx, job); err != nil {
			q.retry(job, err)
		}
	}
}

func (q *Queue) retry(job Job, cause error) {
	job.Attempt++
	fields := []zap.Field{
		zap.String("queue", q.name),
		zap.String("job_id", job.ID),
		zap.String("type", job.Type),
		zap.Int("attempt", job.Attempt),
		zap.Error(cause),
	}
	if job.Attempt > q.cfg.MaxRetries {
		q.cfg.Logger.Error("job dropped after retries", fields...)
		return
	}
	q.cfg.Logger.Warn("job failed, retrying", fields...)

	// Requeue off the worker goroutine so the delay never stalls
	// other buffered jobs.
	go func(j Job) {
		timer := time.NewTimer(q.cfg.RetryDelay)
		defer timer.Stop()
		select {
		case <-q.ctx.Done():
		case <-timer.C:
			if err := q.Enqueue(j); err != nil {
				q.cfg.Logger.Error("requeue failed",
					zap.String("queue", q.name),
					zap.String("job_id", j.ID),
					zap.Error(err))
			}
		}
	}(job)
}
