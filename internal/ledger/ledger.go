// Package ledger is the account runtime every instruction executes against.
//
// An Instruction declares up front which addresses must have signed and which
// accounts it will write. Execute verifies the signatures, locks the write set
// in address order, and runs the handler against a journaled Tx. The journal
// commits all or nothing, so a failing handler leaves no partial state and its
// events are never delivered.
package ledger

import (
	"context"
	"fmt"
	"slices"
	"time"

	"hubrwa/pkg/domain"
	dErrors "hubrwa/pkg/domain-errors"
	audit "hubrwa/pkg/platform/audit"
	"hubrwa/pkg/requestcontext"
)

const defaultTxTimeout = 5 * time.Second

// Kind tags the data stored in an account so a read cannot decode one
// aggregate as another.
type Kind string

// Instruction names a state transition and its declared footprint.
type Instruction struct {
	Name    string
	Signers []domain.Address
	Writes  []domain.Address
}

// Reader is the read-only half of Tx.
type Reader interface {
	// Now is the clock reading taken once when the instruction started.
	Now() time.Time
	// Get decodes the account at addr into out. Missing accounts return
	// sentinel.ErrNotFound; a different Kind returns sentinel.ErrInvalidState.
	Get(ctx context.Context, addr domain.Address, kind Kind, out any) error
	Exists(ctx context.Context, addr domain.Address) (bool, error)
	Balance(ctx context.Context, addr domain.Address) (uint64, error)
	TokenBalance(ctx context.Context, mint, owner domain.Address) (uint64, error)
}

// Tx is the handle an instruction mutates state through. Every mutation
// targets a declared write address.
type Tx interface {
	Reader
	// Create stores v at an unoccupied address; an occupied address returns
	// sentinel.ErrAlreadyUsed.
	Create(ctx context.Context, addr domain.Address, kind Kind, v any) error
	// Put overwrites an existing account.
	Put(ctx context.Context, addr domain.Address, kind Kind, v any) error
	// Transfer moves lamports between two declared accounts.
	Transfer(ctx context.Context, from, to domain.Address, amount uint64) error
	// MintTo credits owner's token account for mint.
	MintTo(ctx context.Context, mint, owner domain.Address, amount uint64) error
	// Emit records an event, delivered only if the instruction commits.
	Emit(ctx context.Context, event audit.Event) error
}

// Ledger executes instructions atomically.
type Ledger interface {
	Execute(ctx context.Context, ins Instruction, fn func(ctx context.Context, tx Tx) error) error
	// Fund credits lamports to addr outside any instruction.
	Fund(ctx context.Context, addr domain.Address, amount uint64) error
}

// View runs fn against a read-only snapshot of the ledger.
func View(ctx context.Context, l Ledger, fn func(ctx context.Context, r Reader) error) error {
	return l.Execute(ctx, Instruction{Name: "view"}, func(ctx context.Context, tx Tx) error {
		return fn(ctx, tx)
	})
}

// TokenAccount derives the address that holds owner's balance of mint.
func TokenAccount(mint, owner domain.Address) domain.Address {
	addr, _ := domain.Derive([]byte("token_account"), mint[:], owner[:])
	return addr
}

// authorize checks that every required signer signed the request.
func authorize(ctx context.Context, ins Instruction) error {
	for _, signer := range ins.Signers {
		if !requestcontext.HasSigner(ctx, signer) {
			return dErrors.New(dErrors.CodeUnauthorized,
				fmt.Sprintf("%s: missing signature from %s", ins.Name, signer))
		}
	}
	return nil
}

// lockOrder returns the write set deduplicated in ascending address order,
// the order in which every backend acquires its locks.
func lockOrder(writes []domain.Address) []domain.Address {
	out := slices.Clone(writes)
	slices.SortFunc(out, domain.Address.Compare)
	return slices.CompactFunc(out, func(a, b domain.Address) bool { return a == b })
}

// begin applies the checks shared by every backend before any lock is taken.
func begin(ctx context.Context, ins Instruction, timeout time.Duration) (context.Context, context.CancelFunc, error) {
	if err := ctx.Err(); err != nil {
		return ctx, func() {}, dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if err := authorize(ctx, ins); err != nil {
		return ctx, func() {}, err
	}
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, cancel, nil
}
