package service

import (
	"context"

	"hubrwa/internal/ledger"
	"hubrwa/internal/settlement/models"
	"hubrwa/pkg/domain"
)

func (s *Service) GetProperty(ctx context.Context, mint domain.Address) (property *models.Property, err error) {
	err = ledger.View(ctx, s.ledger, func(ctx context.Context, r ledger.Reader) error {
		property, err = loadProperty(ctx, r, mint)
		return err
	})
	return property, err
}

func (s *Service) GetVault(ctx context.Context, mint domain.Address) (vault *models.InvestmentVault, err error) {
	err = ledger.View(ctx, s.ledger, func(ctx context.Context, r ledger.Reader) error {
		vault, err = loadVault(ctx, r, mint)
		return err
	})
	return vault, err
}

// Holdings is an owner's lamport balance and token balance of one mint.
type Holdings struct {
	Owner    domain.Address `json:"owner"`
	Mint     domain.Address `json:"mint"`
	Lamports uint64         `json:"lamports"`
	Tokens   uint64         `json:"tokens"`
}

func (s *Service) GetHoldings(ctx context.Context, mint, owner domain.Address) (*Holdings, error) {
	h := &Holdings{Owner: owner, Mint: mint}
	err := ledger.View(ctx, s.ledger, func(ctx context.Context, r ledger.Reader) error {
		var err error
		if h.Lamports, err = r.Balance(ctx, owner); err != nil {
			return translate(err, "balance")
		}
		if h.Tokens, err = r.TokenBalance(ctx, mint, owner); err != nil {
			return translate(err, "token balance")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}
