package worker

import (
	"context"
	"encoding/json"
	"fmt"

	audit "hubrwa/pkg/platform/audit"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxOutbox claims ledger_outbox rows with FOR UPDATE SKIP LOCKED so several
// relay workers can run against the same table.
type PgxOutbox struct {
	pool *pgxpool.Pool
}

func NewPgxOutbox(pool *pgxpool.Pool) *PgxOutbox {
	return &PgxOutbox{pool: pool}
}

func (o *PgxOutbox) Claim(ctx context.Context, limit int, publish func(ctx context.Context, events []audit.Event) error) (int, error) {
	tx, err := o.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("begin outbox claim: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `
		SELECT seq, payload FROM ledger_outbox
		WHERE published_at IS NULL
		ORDER BY seq
		LIMIT $1
		FOR UPDATE SKIP LOCKED`, limit)
	if err != nil {
		return 0, fmt.Errorf("claim outbox rows: %w", err)
	}
	var (
		seqs   []int64
		events []audit.Event
	)
	for rows.Next() {
		var (
			seq int64
			raw []byte
		)
		if err := rows.Scan(&seq, &raw); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan outbox row: %w", err)
		}
		var e audit.Event
		if err := json.Unmarshal(raw, &e); err != nil {
			rows.Close()
			return 0, fmt.Errorf("decode outbox row %d: %w", seq, err)
		}
		seqs = append(seqs, seq)
		events = append(events, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate outbox rows: %w", err)
	}
	if len(events) == 0 {
		return 0, nil
	}

	if err := publish(ctx, events); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE ledger_outbox SET published_at = now() WHERE seq = ANY($1)`, seqs); err != nil {
		return 0, fmt.Errorf("mark outbox rows published: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit outbox claim: %w", err)
	}
	return len(events), nil
}
