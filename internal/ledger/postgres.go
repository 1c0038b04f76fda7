package ledger

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"hubrwa/pkg/domain"
	dErrors "hubrwa/pkg/domain-errors"
	outbox "hubrwa/pkg/platform/audit/store/postgres"
	"hubrwa/pkg/platform/checked"
	"hubrwa/pkg/platform/sentinel"
	txcontext "hubrwa/pkg/platform/tx"

	"github.com/lib/pq"
)

//go:embed schema.sql
var schema string

const uniqueViolation = "23505"

// Postgres keeps accounts in ledger_accounts and lamport/token balances in
// ledger_balances. Write sets are serialized with transaction-scoped advisory
// locks, so absent addresses can be locked before they are created.
type Postgres struct {
	db      *sql.DB
	outbox  *outbox.Store
	logger  *slog.Logger
	timeout time.Duration
}

func NewPostgres(db *sql.DB, opts ...Option) *Postgres {
	o := applyOptions(opts)
	return &Postgres{
		db:      db,
		outbox:  outbox.New(db),
		logger:  o.logger,
		timeout: o.timeout,
	}
}

// Migrate creates the ledger tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate ledger schema: %w", err)
	}
	return nil
}

func (p *Postgres) Execute(ctx context.Context, ins Instruction, fn func(ctx context.Context, tx Tx) error) error {
	ctx, cancel, err := begin(ctx, ins, p.timeout)
	defer cancel()
	if err != nil {
		return err
	}

	sqlTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "begin ledger transaction")
	}
	defer func() {
		_ = sqlTx.Rollback()
	}()

	writes := lockOrder(ins.Writes)
	if err := lockAddresses(ctx, sqlTx, writes); err != nil {
		return err
	}

	ctx = txcontext.WithTx(ctx, sqlTx)
	j := newJournal(ctx, ins, writes, pgSnapshot{tx: sqlTx})
	if err := fn(ctx, j); err != nil {
		return err
	}
	if err := p.flush(ctx, sqlTx, j); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "commit ledger transaction")
	}
	return nil
}

func lockAddresses(ctx context.Context, tx *sql.Tx, addrs []domain.Address) error {
	for _, addr := range addrs {
		if _, err := tx.ExecContext(ctx,
			`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, addr.String()); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "lock ledger account")
		}
	}
	return nil
}

func (p *Postgres) flush(ctx context.Context, tx *sql.Tx, j *journal) error {
	for addr, acc := range j.accounts {
		if _, created := j.created[addr]; created {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO ledger_accounts (address, kind, data, updated_at) VALUES ($1, $2, $3, $4)`,
				addr.String(), string(acc.Kind), []byte(acc.Data), j.now)
			if isUniqueViolation(err) {
				return fmt.Errorf("account %s: %w", addr, sentinel.ErrAlreadyUsed)
			}
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "insert ledger account")
			}
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE ledger_accounts SET kind = $2, data = $3, updated_at = $4 WHERE address = $1`,
			addr.String(), string(acc.Kind), []byte(acc.Data), j.now); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "update ledger account")
		}
	}

	if len(j.balances) > 0 {
		addrs := make([]string, 0, len(j.balances))
		amounts := make([]string, 0, len(j.balances))
		for addr, bal := range j.balances {
			addrs = append(addrs, addr.String())
			amounts = append(amounts, strconv.FormatUint(bal, 10))
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO ledger_balances (address, amount)
			SELECT b.address, b.amount::numeric FROM unnest($1::text[], $2::text[]) AS b(address, amount)
			ON CONFLICT (address) DO UPDATE SET amount = EXCLUDED.amount`,
			pq.Array(addrs), pq.Array(amounts)); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "write ledger balances")
		}
	}

	if err := p.outbox.AppendBatch(ctx, j.events); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "write ledger events")
	}
	return nil
}

func (p *Postgres) Fund(ctx context.Context, addr domain.Address, amount uint64) error {
	return p.Execute(ctx, Instruction{Name: "fund"}, func(ctx context.Context, _ Tx) error {
		sqlTx, ok := txcontext.From(ctx)
		if !ok {
			return dErrors.New(dErrors.CodeInternal, "fund outside ledger transaction")
		}
		if err := lockAddresses(ctx, sqlTx, []domain.Address{addr}); err != nil {
			return err
		}
		bal, err := pgSnapshot{tx: sqlTx}.balance(ctx, addr)
		if err != nil {
			return err
		}
		credited, err := checked.Add(bal, amount)
		if err != nil {
			return err
		}
		_, err = sqlTx.ExecContext(ctx, `
			INSERT INTO ledger_balances (address, amount) VALUES ($1, $2::numeric)
			ON CONFLICT (address) DO UPDATE SET amount = EXCLUDED.amount`,
			addr.String(), strconv.FormatUint(credited, 10))
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "fund ledger account")
		}
		return nil
	})
}

type pgSnapshot struct {
	tx *sql.Tx
}

func (s pgSnapshot) account(ctx context.Context, addr domain.Address) (account, bool, error) {
	var (
		kind string
		data []byte
	)
	err := s.tx.QueryRowContext(ctx,
		`SELECT kind, data FROM ledger_accounts WHERE address = $1`, addr.String()).Scan(&kind, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return account{}, false, nil
	}
	if err != nil {
		return account{}, false, dErrors.Wrap(err, dErrors.CodeInternal, "read ledger account")
	}
	return account{Kind: Kind(kind), Data: data}, true, nil
}

func (s pgSnapshot) balance(ctx context.Context, addr domain.Address) (uint64, error) {
	var amount string
	err := s.tx.QueryRowContext(ctx,
		`SELECT amount::text FROM ledger_balances WHERE address = $1`, addr.String()).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "read ledger balance")
	}
	bal, err := strconv.ParseUint(amount, 10, 64)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeOverflow, "ledger balance exceeds u64")
	}
	return bal, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
