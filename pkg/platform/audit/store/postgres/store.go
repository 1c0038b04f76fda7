package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	audit "hubrwa/pkg/platform/audit"
	txcontext "hubrwa/pkg/platform/tx"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Store implements audit.Sink using the transactional outbox pattern.
// Events are written to ledger_outbox in the same transaction as the ledger
// mutation that produced them, and relayed to Kafka by the outbox worker.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL outbox store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Append writes one event to the outbox.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	return s.AppendBatch(ctx, []audit.Event{event})
}

// AppendBatch writes events to the outbox in a single statement, preserving order.
func (s *Store) AppendBatch(ctx context.Context, events []audit.Event) error {
	if len(events) == 0 {
		return nil
	}
	ids := make([]string, len(events))
	actions := make([]string, len(events))
	categories := make([]string, len(events))
	subjects := make([]string, len(events))
	payloads := make([]string, len(events))
	createdAt := make([]string, len(events))
	for i, e := range events {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		if e.Category == "" {
			e.Category = e.Action.Category()
		}
		raw, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal outbox payload: %w", err)
		}
		ids[i] = e.ID.String()
		actions[i] = string(e.Action)
		categories[i] = string(e.Category)
		subjects[i] = e.Subject
		payloads[i] = string(raw)
		createdAt[i] = e.Timestamp.UTC().Format(time.RFC3339Nano)
	}

	query := `
		INSERT INTO ledger_outbox (id, action, category, subject, payload, created_at)
		SELECT u.id::uuid, u.action, u.category, u.subject, u.payload::jsonb, u.created_at::timestamptz
		FROM unnest($1::text[], $2::text[], $3::text[], $4::text[], $5::text[], $6::text[])
			WITH ORDINALITY AS u(id, action, category, subject, payload, created_at, ord)
		ORDER BY u.ord
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		pq.Array(ids),
		pq.Array(actions),
		pq.Array(categories),
		pq.Array(subjects),
		pq.Array(payloads),
		pq.Array(createdAt),
	)
	if err != nil {
		return fmt.Errorf("insert outbox entries: %w", err)
	}
	return nil
}

// ListBySubject returns outbox events for a subject in commit order,
// whether or not they have been relayed yet.
func (s *Store) ListBySubject(ctx context.Context, subject string) ([]audit.Event, error) {
	rows, err := s.execer(ctx).QueryContext(ctx,
		`SELECT payload FROM ledger_outbox WHERE subject = $1 ORDER BY seq`, subject)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListAll returns every outbox event in commit order.
func (s *Store) ListAll(ctx context.Context) ([]audit.Event, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, `SELECT payload FROM ledger_outbox ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]audit.Event, error) {
	var events []audit.Event
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan outbox event: %w", err)
		}
		var e audit.Event
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("decode outbox event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox events: %w", err)
	}
	return events, nil
}
