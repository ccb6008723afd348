// Package worker drains the match-event queue into the durable match log.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/pitchside/oracle/internal/adapters/mq/queue"
	"github.com/pitchside/oracle/pkg/logger"
	"github.com/pitchside/oracle/pkg/metrics"
)

const (
	defaultWorkerMultiplier = 2
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Appender persists a validated match record and returns its sequential id.
type Appender interface {
	Append(ctx context.Context, m queue.Event) (int64, error)
}

// Worker processes queued match events until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// LogWorker implements Worker by appending events to the match log.
type LogWorker struct {
	queue    queue.Queue
	appender Appender
	name     string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewLogWorker creates a worker draining queue into appender.
func NewLogWorker(q queue.Queue, appender Appender, opts ...Option) *LogWorker {
	w := &LogWorker{
		queue:    q,
		appender: appender,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *LogWorker) Run(ctx context.Context) {
	defer close(w.done)

	events := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := w.processEvent(ctx, event); err != nil {
				w.logger.Error(ctx, "error processing match event", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *LogWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processEvent appends one match record to the log.
func (w *LogWorker) processEvent(ctx context.Context, event queue.Event) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	id, err := w.appender.Append(ctx, event)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "append_error")
		w.logger.Error(ctx, "match append failed",
			logger.String("eventID", event.EventID),
			logger.Error(err),
		)
		return fmt.Errorf("append failed for event %s: %w", event.EventID, err)
	}

	metrics.RecordMatchIngested()
	w.logger.Debug(ctx, "match appended",
		logger.String("eventID", event.EventID),
		logger.Int("matchID", int(id)),
	)
	return nil
}

// Pool manages multiple workers draining the same queue.
type Pool struct {
	workers  []*LogWorker
	queue    queue.Queue
	appender Appender

	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a worker pool of the given size.
func NewPool(workerCount int, q queue.Queue, appender Appender) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*LogWorker, workerCount),
		queue:    q,
		appender: appender,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewLogWorker(q, appender, WithName("worker-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerCount(workerCount)
	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop gracefully stops all workers. Stop and the per-worker Shutdown are
// mutually exclusive; the pool owns its workers' lifecycle.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, w := range p.workers {
		close(w.shutdown)
	}
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown closes the queue and waits for workers to drain, bounded by
// poolShutdownTimeout.
func (p *Pool) Shutdown(ctx context.Context) error {
	if err := p.queue.Close(); err != nil {
		p.logger.Error(ctx, "error closing queue", logger.Error(err))
	}

	close(p.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	return nil
}
