package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hubrwa/pkg/domain"
	dErrors "hubrwa/pkg/domain-errors"
	audit "hubrwa/pkg/platform/audit"
	"hubrwa/pkg/platform/checked"
	"hubrwa/pkg/platform/sentinel"
	"hubrwa/pkg/requestcontext"

	"github.com/google/uuid"
)

// account is the stored form of every ledger account.
type account struct {
	Kind Kind            `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// snapshot is what a backend exposes to the journal for reads of committed state.
type snapshot interface {
	account(ctx context.Context, addr domain.Address) (account, bool, error)
	balance(ctx context.Context, addr domain.Address) (uint64, error)
}

// journal buffers an instruction's writes over a committed snapshot.
type journal struct {
	ins      Instruction
	now      time.Time
	declared map[domain.Address]struct{}
	base     snapshot

	accounts map[domain.Address]account
	created  map[domain.Address]struct{}
	balances map[domain.Address]uint64
	events   []audit.Event
}

func newJournal(ctx context.Context, ins Instruction, writes []domain.Address, base snapshot) *journal {
	declared := make(map[domain.Address]struct{}, len(writes))
	for _, w := range writes {
		declared[w] = struct{}{}
	}
	return &journal{
		ins:      ins,
		now:      requestcontext.Now(ctx),
		declared: declared,
		base:     base,
		accounts: make(map[domain.Address]account),
		created:  make(map[domain.Address]struct{}),
		balances: make(map[domain.Address]uint64),
	}
}

func (j *journal) Now() time.Time { return j.now }

func (j *journal) lookup(ctx context.Context, addr domain.Address) (account, bool, error) {
	if acc, ok := j.accounts[addr]; ok {
		return acc, true, nil
	}
	return j.base.account(ctx, addr)
}

func (j *journal) Get(ctx context.Context, addr domain.Address, kind Kind, out any) error {
	acc, ok, err := j.lookup(ctx, addr)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("account %s: %w", addr, sentinel.ErrNotFound)
	}
	if acc.Kind != kind {
		return fmt.Errorf("account %s holds %s, not %s: %w", addr, acc.Kind, kind, sentinel.ErrInvalidState)
	}
	if err := json.Unmarshal(acc.Data, out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("decode %s account", kind))
	}
	return nil
}

func (j *journal) Exists(ctx context.Context, addr domain.Address) (bool, error) {
	_, ok, err := j.lookup(ctx, addr)
	return ok, err
}

func (j *journal) requireDeclared(addr domain.Address) error {
	if _, ok := j.declared[addr]; !ok {
		return dErrors.Wrap(fmt.Errorf("%s writes %s: %w", j.ins.Name, addr, sentinel.ErrUndeclared),
			dErrors.CodeInternal, "instruction wrote an undeclared account")
	}
	return nil
}

func encode(kind Kind, v any) (account, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return account{}, dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("encode %s account", kind))
	}
	return account{Kind: kind, Data: raw}, nil
}

func (j *journal) Create(ctx context.Context, addr domain.Address, kind Kind, v any) error {
	if err := j.requireDeclared(addr); err != nil {
		return err
	}
	exists, err := j.Exists(ctx, addr)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("account %s: %w", addr, sentinel.ErrAlreadyUsed)
	}
	acc, err := encode(kind, v)
	if err != nil {
		return err
	}
	j.accounts[addr] = acc
	j.created[addr] = struct{}{}
	return nil
}

func (j *journal) Put(ctx context.Context, addr domain.Address, kind Kind, v any) error {
	if err := j.requireDeclared(addr); err != nil {
		return err
	}
	exists, err := j.Exists(ctx, addr)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("account %s: %w", addr, sentinel.ErrNotFound)
	}
	acc, err := encode(kind, v)
	if err != nil {
		return err
	}
	j.accounts[addr] = acc
	return nil
}

func (j *journal) Balance(ctx context.Context, addr domain.Address) (uint64, error) {
	if bal, ok := j.balances[addr]; ok {
		return bal, nil
	}
	return j.base.balance(ctx, addr)
}

func (j *journal) TokenBalance(ctx context.Context, mint, owner domain.Address) (uint64, error) {
	return j.Balance(ctx, TokenAccount(mint, owner))
}

func (j *journal) Transfer(ctx context.Context, from, to domain.Address, amount uint64) error {
	if err := j.requireDeclared(from); err != nil {
		return err
	}
	if err := j.requireDeclared(to); err != nil {
		return err
	}
	if amount == 0 || from == to {
		return nil
	}
	fromBal, err := j.Balance(ctx, from)
	if err != nil {
		return err
	}
	if fromBal < amount {
		return dErrors.New(dErrors.CodeInsufficientFunds,
			fmt.Sprintf("account %s holds %d lamports, needs %d", from, fromBal, amount))
	}
	toBal, err := j.Balance(ctx, to)
	if err != nil {
		return err
	}
	credited, err := checked.Add(toBal, amount)
	if err != nil {
		return err
	}
	j.balances[from] = fromBal - amount
	j.balances[to] = credited
	return nil
}

func (j *journal) MintTo(ctx context.Context, mint, owner domain.Address, amount uint64) error {
	dest := TokenAccount(mint, owner)
	if err := j.requireDeclared(dest); err != nil {
		return err
	}
	bal, err := j.Balance(ctx, dest)
	if err != nil {
		return err
	}
	credited, err := checked.Add(bal, amount)
	if err != nil {
		return err
	}
	j.balances[dest] = credited
	return nil
}

func (j *journal) Emit(ctx context.Context, event audit.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = j.now
	}
	if event.Category == "" {
		event.Category = event.Action.Category()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.Actor == "" && len(j.ins.Signers) > 0 {
		event.Actor = j.ins.Signers[0].String()
	}
	j.events = append(j.events, event)
	return nil
}
