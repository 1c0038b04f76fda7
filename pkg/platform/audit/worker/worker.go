package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	audit "hubrwa/pkg/platform/audit"
)

// Outbox hands out batches of unpublished events. The batch stays claimed
// while publish runs and is marked published only if publish returns nil.
type Outbox interface {
	Claim(ctx context.Context, limit int, publish func(ctx context.Context, events []audit.Event) error) (int, error)
}

// ErrPaused is returned by RelayOnce while the circuit breaker is open.
var ErrPaused = errors.New("outbox relay paused")

// Worker relays committed outbox events to a publisher. Delivery is
// at-least-once: a crash between publish and mark re-sends the batch.
type Worker struct {
	outbox    Outbox
	publisher audit.Publisher
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
	breaker   *breaker
	metrics   *Metrics
}

// Option configures a Worker.
type Option func(*Worker)

func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

// WithBreaker pauses relaying for cooldown after threshold consecutive
// publish failures.
func WithBreaker(threshold int, cooldown time.Duration) Option {
	return func(w *Worker) {
		w.breaker = newBreaker(threshold, cooldown)
	}
}

func WithMetrics(m *Metrics) Option {
	return func(w *Worker) {
		w.metrics = m
	}
}

func NewWorker(outbox Outbox, publisher audit.Publisher, opts ...Option) *Worker {
	w := &Worker{
		outbox:    outbox,
		publisher: publisher,
		interval:  time.Second,
		batchSize: 100,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run polls until ctx is cancelled. Full batches are drained without waiting.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		n, err := w.RelayOnce(ctx)
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, ErrPaused) {
			w.logger.ErrorContext(ctx, "outbox relay failed", "error", err)
		}
		if err == nil && n == w.batchSize {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RelayOnce publishes at most one batch and reports how many events it relayed.
func (w *Worker) RelayOnce(ctx context.Context) (int, error) {
	if w.breaker != nil && !w.breaker.allow() {
		w.metrics.incPaused()
		return 0, ErrPaused
	}
	published := false
	n, err := w.outbox.Claim(ctx, w.batchSize, func(ctx context.Context, events []audit.Event) error {
		if err := w.publisher.Publish(ctx, events); err != nil {
			return err
		}
		published = true
		return nil
	})
	switch {
	case published || (err == nil && n == 0):
		w.metrics.addRelayed(n)
		if w.breaker != nil {
			w.breaker.success()
			w.metrics.setOpen(false)
		}
	case err != nil && !errors.Is(err, context.Canceled):
		w.metrics.incFailure()
		if w.breaker != nil && w.breaker.failure() {
			w.metrics.setOpen(true)
			w.logger.WarnContext(ctx, "outbox relay paused", "cooldown", w.breaker.cooldown, "error", err)
		}
	}
	return n, err
}
