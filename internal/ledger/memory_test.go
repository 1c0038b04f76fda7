package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hubrwa/pkg/domain"
	dErrors "hubrwa/pkg/domain-errors"
	audit "hubrwa/pkg/platform/audit"
	"hubrwa/pkg/platform/audit/store/memory"
	"hubrwa/pkg/platform/sentinel"
	"hubrwa/pkg/requestcontext"

	"github.com/stretchr/testify/suite"
)

const kindNote Kind = "note"

type note struct {
	Text string `json:"text"`
}

func addr(name string) domain.Address {
	a, _ := domain.Derive([]byte("ledger_test"), []byte(name))
	return a
}

type InMemoryLedgerSuite struct {
	suite.Suite
	ctx    context.Context
	sink   *memory.InMemoryStore
	ledger *InMemory
}

func TestInMemoryLedgerSuite(t *testing.T) {
	suite.Run(t, new(InMemoryLedgerSuite))
}

func (s *InMemoryLedgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.sink = memory.NewInMemoryStore()
	s.ledger = NewInMemory(WithSink(s.sink))
}

func (s *InMemoryLedgerSuite) TestSigners() {
	signer := addr("signer")
	ins := Instruction{Name: "write_note", Signers: []domain.Address{signer}, Writes: []domain.Address{addr("note")}}

	s.Run("missing signature rejects before the handler runs", func() {
		ran := false
		err := s.ledger.Execute(s.ctx, ins, func(context.Context, Tx) error {
			ran = true
			return nil
		})
		s.Require().True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.False(ran)
	})

	s.Run("present signature runs the handler", func() {
		ctx := requestcontext.WithSigners(s.ctx, signer)
		err := s.ledger.Execute(ctx, ins, func(ctx context.Context, tx Tx) error {
			return tx.Create(ctx, addr("note"), kindNote, note{Text: "hi"})
		})
		s.Require().NoError(err)
	})
}

func (s *InMemoryLedgerSuite) TestAccounts() {
	target := addr("note")
	ins := Instruction{Name: "write_note", Writes: []domain.Address{target}}

	s.Run("create then read back", func() {
		s.Require().NoError(s.ledger.Execute(s.ctx, ins, func(ctx context.Context, tx Tx) error {
			return tx.Create(ctx, target, kindNote, note{Text: "first"})
		}))
		var got note
		s.Require().NoError(View(s.ctx, s.ledger, func(ctx context.Context, r Reader) error {
			return r.Get(ctx, target, kindNote, &got)
		}))
		s.Equal("first", got.Text)
	})

	s.Run("create on an occupied address fails", func() {
		err := s.ledger.Execute(s.ctx, ins, func(ctx context.Context, tx Tx) error {
			return tx.Create(ctx, target, kindNote, note{Text: "second"})
		})
		s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)
	})

	s.Run("put overwrites an existing account", func() {
		s.Require().NoError(s.ledger.Execute(s.ctx, ins, func(ctx context.Context, tx Tx) error {
			return tx.Put(ctx, target, kindNote, note{Text: "updated"})
		}))
		var got note
		s.Require().NoError(View(s.ctx, s.ledger, func(ctx context.Context, r Reader) error {
			return r.Get(ctx, target, kindNote, &got)
		}))
		s.Equal("updated", got.Text)
	})

	s.Run("put on a missing account fails", func() {
		missing := addr("missing")
		err := s.ledger.Execute(s.ctx, Instruction{Name: "put", Writes: []domain.Address{missing}}, func(ctx context.Context, tx Tx) error {
			return tx.Put(ctx, missing, kindNote, note{})
		})
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("reading with the wrong kind fails", func() {
		err := View(s.ctx, s.ledger, func(ctx context.Context, r Reader) error {
			var out note
			return r.Get(ctx, target, Kind("other"), &out)
		})
		s.Require().ErrorIs(err, sentinel.ErrInvalidState)
	})

	s.Run("undeclared write is an internal error", func() {
		err := s.ledger.Execute(s.ctx, Instruction{Name: "sneaky"}, func(ctx context.Context, tx Tx) error {
			return tx.Create(ctx, addr("elsewhere"), kindNote, note{})
		})
		s.Require().ErrorIs(err, sentinel.ErrUndeclared)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *InMemoryLedgerSuite) TestTransfers() {
	from, to := addr("from"), addr("to")
	ins := Instruction{Name: "transfer", Writes: []domain.Address{from, to}}
	s.Require().NoError(s.ledger.Fund(s.ctx, from, 100))

	s.Run("moves lamports", func() {
		s.Require().NoError(s.ledger.Execute(s.ctx, ins, func(ctx context.Context, tx Tx) error {
			return tx.Transfer(ctx, from, to, 40)
		}))
		s.Equal(uint64(60), s.balance(from))
		s.Equal(uint64(40), s.balance(to))
	})

	s.Run("insufficient funds", func() {
		err := s.ledger.Execute(s.ctx, ins, func(ctx context.Context, tx Tx) error {
			return tx.Transfer(ctx, from, to, 61)
		})
		s.Require().True(dErrors.HasCode(err, dErrors.CodeInsufficientFunds))
		s.Equal(uint64(60), s.balance(from))
	})

	s.Run("failure discards earlier writes in the same instruction", func() {
		err := s.ledger.Execute(s.ctx, ins, func(ctx context.Context, tx Tx) error {
			if err := tx.Transfer(ctx, from, to, 10); err != nil {
				return err
			}
			return errors.New("boom")
		})
		s.Require().Error(err)
		s.Equal(uint64(60), s.balance(from))
		s.Equal(uint64(40), s.balance(to))
	})

	s.Run("credit overflow", func() {
		rich := addr("rich")
		s.Require().NoError(s.ledger.Fund(s.ctx, rich, ^uint64(0)))
		err := s.ledger.Execute(s.ctx, Instruction{Name: "overflow", Writes: []domain.Address{from, rich}}, func(ctx context.Context, tx Tx) error {
			return tx.Transfer(ctx, from, rich, 1)
		})
		s.Require().True(dErrors.HasCode(err, dErrors.CodeOverflow))
	})
}

func (s *InMemoryLedgerSuite) TestMintTo() {
	mint, owner := addr("mint"), addr("owner")
	tokenAcct := TokenAccount(mint, owner)
	ins := Instruction{Name: "mint", Writes: []domain.Address{tokenAcct}}

	s.Require().NoError(s.ledger.Execute(s.ctx, ins, func(ctx context.Context, tx Tx) error {
		if err := tx.MintTo(ctx, mint, owner, 5); err != nil {
			return err
		}
		return tx.MintTo(ctx, mint, owner, 7)
	}))

	var bal uint64
	s.Require().NoError(View(s.ctx, s.ledger, func(ctx context.Context, r Reader) error {
		var err error
		bal, err = r.TokenBalance(ctx, mint, owner)
		return err
	}))
	s.Equal(uint64(12), bal)
	s.NotEqual(TokenAccount(mint, addr("someone-else")), tokenAcct)
}

func (s *InMemoryLedgerSuite) TestEvents() {
	target := addr("note")
	ins := Instruction{Name: "write_note", Signers: []domain.Address{addr("signer")}, Writes: []domain.Address{target}}
	ctx := requestcontext.WithSigners(s.ctx, addr("signer"))
	ctx = requestcontext.WithRequestID(ctx, "req-1")
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	ctx = requestcontext.WithTime(ctx, now)

	s.Run("delivered after commit with instruction metadata", func() {
		s.Require().NoError(s.ledger.Execute(ctx, ins, func(ctx context.Context, tx Tx) error {
			s.Equal(now, tx.Now())
			return tx.Emit(ctx, audit.Event{Action: audit.ActionCredentialIssued, Subject: target.String()})
		}))
		events, err := s.sink.ListAll(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal(now, events[0].Timestamp)
		s.Equal("req-1", events[0].RequestID)
		s.Equal(addr("signer").String(), events[0].Actor)
		s.Equal(audit.CategoryCompliance, events[0].Category)
	})

	s.Run("dropped when the instruction fails", func() {
		s.sink.Clear()
		err := s.ledger.Execute(ctx, ins, func(ctx context.Context, tx Tx) error {
			_ = tx.Emit(ctx, audit.Event{Action: audit.ActionCredentialRevoked, Subject: target.String()})
			return errors.New("abort")
		})
		s.Require().Error(err)
		events, err := s.sink.ListAll(s.ctx)
		s.Require().NoError(err)
		s.Empty(events)
	})
}

func (s *InMemoryLedgerSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	err := s.ledger.Execute(ctx, Instruction{Name: "noop"}, func(context.Context, Tx) error { return nil })
	s.Require().True(dErrors.HasCode(err, dErrors.CodeTimeout))
}

func (s *InMemoryLedgerSuite) TestConcurrentTransfersConserveLamports() {
	a, b := addr("a"), addr("b")
	s.Require().NoError(s.ledger.Fund(s.ctx, a, 1000))
	s.Require().NoError(s.ledger.Fund(s.ctx, b, 1000))

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			from, to := a, b
			if i%2 == 0 {
				from, to = b, a
			}
			// Declared in opposite orders on purpose; lockOrder normalizes.
			_ = s.ledger.Execute(s.ctx, Instruction{Name: "transfer", Writes: []domain.Address{from, to}},
				func(ctx context.Context, tx Tx) error {
					return tx.Transfer(ctx, from, to, 7)
				})
		}()
	}
	wg.Wait()

	s.Equal(uint64(2000), s.balance(a)+s.balance(b))
}

func (s *InMemoryLedgerSuite) balance(a domain.Address) uint64 {
	var bal uint64
	s.Require().NoError(View(s.ctx, s.ledger, func(ctx context.Context, r Reader) error {
		var err error
		bal, err = r.Balance(ctx, a)
		return err
	}))
	return bal
}

func TestLockOrder(t *testing.T) {
	a, b, c := addr("a"), addr("b"), addr("c")
	got := lockOrder([]domain.Address{c, a, b, a})
	if len(got) != 3 {
		t.Fatalf("expected 3 unique addresses, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Compare(got[i]) >= 0 {
			t.Fatalf("addresses not strictly ascending at %d", i)
		}
	}
}
