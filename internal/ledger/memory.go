package ledger

import (
	"context"
	"log/slog"
	"time"

	"hubrwa/pkg/domain"
	audit "hubrwa/pkg/platform/audit"
	"hubrwa/pkg/platform/checked"

	"github.com/sasha-s/go-deadlock"
)

// InMemory is a process-local ledger. Committed state lives behind one RWMutex;
// instructions serialize on per-address locks taken in address order.
type InMemory struct {
	mu       deadlock.RWMutex
	accounts map[domain.Address]account
	balances map[domain.Address]uint64

	locks   *lockTable
	sink    audit.Sink
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures a ledger backend.
type Option func(*options)

type options struct {
	sink    audit.Sink
	logger  *slog.Logger
	timeout time.Duration
}

// WithSink forwards committed events to sink. The postgres backend ignores it
// and writes events to its outbox instead.
func WithSink(sink audit.Sink) Option {
	return func(o *options) {
		o.sink = sink
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTimeout bounds instructions whose context carries no deadline.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

func applyOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func NewInMemory(opts ...Option) *InMemory {
	o := applyOptions(opts)
	return &InMemory{
		accounts: make(map[domain.Address]account),
		balances: make(map[domain.Address]uint64),
		locks:    newLockTable(),
		sink:     o.sink,
		logger:   o.logger,
		timeout:  o.timeout,
	}
}

func (l *InMemory) Execute(ctx context.Context, ins Instruction, fn func(ctx context.Context, tx Tx) error) error {
	ctx, cancel, err := begin(ctx, ins, l.timeout)
	defer cancel()
	if err != nil {
		return err
	}

	writes := lockOrder(ins.Writes)
	unlock := l.locks.lock(writes)
	defer unlock()

	j := newJournal(ctx, ins, writes, memorySnapshot{l})
	if err := fn(ctx, j); err != nil {
		return err
	}
	l.commit(j)

	for _, event := range j.events {
		if l.sink == nil {
			break
		}
		if err := l.sink.Append(ctx, event); err != nil {
			l.logger.ErrorContext(ctx, "failed to forward ledger event",
				"instruction", ins.Name,
				"action", event.Action,
				"error", err,
			)
		}
	}
	return nil
}

func (l *InMemory) commit(j *journal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for addr, acc := range j.accounts {
		l.accounts[addr] = acc
	}
	for addr, bal := range j.balances {
		l.balances[addr] = bal
	}
}

func (l *InMemory) Fund(_ context.Context, addr domain.Address, amount uint64) error {
	unlock := l.locks.lock([]domain.Address{addr})
	defer unlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	bal, err := checked.Add(l.balances[addr], amount)
	if err != nil {
		return err
	}
	l.balances[addr] = bal
	return nil
}

type memorySnapshot struct {
	l *InMemory
}

func (s memorySnapshot) account(_ context.Context, addr domain.Address) (account, bool, error) {
	s.l.mu.RLock()
	defer s.l.mu.RUnlock()
	acc, ok := s.l.accounts[addr]
	return acc, ok, nil
}

func (s memorySnapshot) balance(_ context.Context, addr domain.Address) (uint64, error) {
	s.l.mu.RLock()
	defer s.l.mu.RUnlock()
	return s.l.balances[addr], nil
}
