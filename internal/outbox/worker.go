package outbox

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-console/internal/logging"
	"github.com/goliatone/go-console/pkg/interfaces"
)

// Worker drains due persistence intents against the backing store adapter.
// Delivery failures are logged and retried with backoff; they never affect
// local state, which stays authoritative.
type Worker struct {
	queue     interfaces.Outbox
	adapter   interfaces.PersistenceAdapter
	logger    interfaces.Logger
	now       func() time.Time
	batchSize int
}

// WorkerOption configures the worker.
type WorkerOption func(*Worker)

// WithWorkerClock overrides the clock used to decide which intents are due.
func WithWorkerClock(clock func() time.Time) WorkerOption {
	return func(w *Worker) {
		if clock != nil {
			w.now = clock
		}
	}
}

// WithWorkerLogger overrides the worker logger.
func WithWorkerLogger(logger interfaces.Logger) WorkerOption {
	return func(w *Worker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithBatchSize limits how many intents one Process pass handles.
func WithBatchSize(size int) WorkerOption {
	return func(w *Worker) {
		if size > 0 {
			w.batchSize = size
		}
	}
}

// NewWorker constructs an outbox worker.
func NewWorker(queue interfaces.Outbox, adapter interfaces.PersistenceAdapter, opts ...WorkerOption) *Worker {
	w := &Worker{
		queue:     queue,
		adapter:   adapter,
		logger:    logging.NoOp(),
		now:       time.Now,
		batchSize: 50,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Process applies one batch of due intents. A failed intent is marked for
// retry and does not stop the remaining batch.
func (w *Worker) Process(ctx context.Context) error {
	if w.queue == nil {
		return errors.New("outbox: queue is nil")
	}
	if w.adapter == nil {
		return errors.New("outbox: persistence adapter is nil")
	}

	due, err := w.queue.ListDue(ctx, w.now(), w.batchSize)
	if err != nil {
		return err
	}
	for _, intent := range due {
		if intent == nil {
			continue
		}
		logger := logging.WithFields(w.logger, map[string]any{
			"intent_id": intent.ID,
			"entity":    intent.Entity,
			"key":       intent.Key,
			"op":        intent.Op,
			"attempt":   intent.Attempt,
		})
		if err := w.adapter.Apply(ctx, *intent); err != nil {
			logger.Warn("outbox.apply.failed", "error", err)
			_ = w.queue.MarkFailed(ctx, intent.ID, err)
			continue
		}
		logger.Debug("outbox.apply.done")
		_ = w.queue.MarkDone(ctx, intent.ID)
	}
	return nil
}

// Run processes batches on the given interval until the context is
// cancelled. Intended for host applications that want a background drain.
func (w *Worker) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Process(ctx); err != nil {
				w.logger.Error("outbox.process.failed", "error", err)
			}
		}
	}
}
