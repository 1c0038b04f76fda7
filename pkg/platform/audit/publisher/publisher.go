package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	audit "hubrwa/pkg/platform/audit"

	"github.com/google/uuid"
)

// ErrBufferFull is returned by Emit in async mode when the buffer cannot take another event.
var ErrBufferFull = errors.New("audit buffer full")

// Store is the persistence the publisher writes through to.
type Store interface {
	Append(ctx context.Context, event audit.Event) error
	ListBySubject(ctx context.Context, subject string) ([]audit.Event, error)
}

// Publisher is the in-process audit.Sink. In sync mode Emit writes through;
// with WithAsyncBuffer events are queued and written by a background goroutine.
type Publisher struct {
	store  Store
	logger *slog.Logger
	buffer chan audit.Event
	wg     sync.WaitGroup
	once   sync.Once
}

type Option func(*Publisher)

func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		if size > 0 {
			p.buffer = make(chan audit.Event, size)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.buffer != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Append implements audit.Sink.
func (p *Publisher) Append(ctx context.Context, event audit.Event) error {
	return p.Emit(ctx, event)
}

func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Category == "" {
		event.Category = event.Action.Category()
	}
	if p.buffer == nil {
		return p.store.Append(ctx, event)
	}
	select {
	case p.buffer <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrBufferFull
	}
}

// ListBySubject reads back events about one subject from the store.
func (p *Publisher) ListBySubject(ctx context.Context, subject string) ([]audit.Event, error) {
	return p.store.ListBySubject(ctx, subject)
}

// Close stops accepting async events and waits until the buffer is drained.
func (p *Publisher) Close() {
	p.once.Do(func() {
		if p.buffer != nil {
			close(p.buffer)
			p.wg.Wait()
		}
	})
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.buffer {
		if err := p.store.Append(context.Background(), event); err != nil {
			p.logger.Error("failed to persist audit event",
				"action", event.Action,
				"subject", event.Subject,
				"error", err,
			)
		}
	}
}
