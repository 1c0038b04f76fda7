package service

import (
	"context"
	"fmt"
	"strconv"

	"hubrwa/internal/ledger"
	"hubrwa/internal/settlement/feesplit"
	"hubrwa/internal/settlement/milestone"
	"hubrwa/internal/settlement/models"
	"hubrwa/pkg/domain"
	dErrors "hubrwa/pkg/domain-errors"
	audit "hubrwa/pkg/platform/audit"

	"go.opentelemetry.io/otel/attribute"
)

// InvestRequest buys ExpectedTokens of Mint for Amount lamports. Treasury must
// be the platform treasury. A zero Seller is resolved from the vault.
type InvestRequest struct {
	Investor       domain.Address
	Mint           domain.Address
	Seller         domain.Address
	Treasury       domain.Address
	Amount         uint64
	ExpectedTokens uint64
}

// Receipt describes one settled investment.
type Receipt struct {
	Split          feesplit.Split          `json:"split"`
	TokensReceived uint64                  `json:"tokens_received"`
	TokenBalance   uint64                  `json:"token_balance"`
	Milestone      milestone.Outcome       `json:"milestone"`
	Property       *models.Property        `json:"property"`
	Vault          *models.InvestmentVault `json:"vault"`
}

// Invest settles one investment as a single instruction: credential check,
// fee split, the three transfers, the capped mint, vault totals and any
// milestone release to the seller. Any failure leaves no trace on the ledger.
func (s *Service) Invest(ctx context.Context, req InvestRequest) (receipt *Receipt, err error) {
	ctx, span, start := s.startSpan(ctx, "invest",
		attribute.String("investor", req.Investor.String()),
		attribute.String("mint", req.Mint.String()),
		lamportsAttr("amount", req.Amount),
	)
	defer func() {
		s.endSpan(span, "invest", start, err)
		s.metrics.IncrementInvestment(investmentOutcome(err))
	}()

	if req.Amount == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "investment amount must be positive")
	}
	if req.Treasury != models.PlatformTreasury {
		return nil, dErrors.New(dErrors.CodeForbidden, "invalid platform treasury")
	}
	if req.Seller.IsZero() {
		vault, err := s.GetVault(ctx, req.Mint)
		if err != nil {
			return nil, err
		}
		req.Seller = vault.Seller
	}

	propertyAddr, _ := models.PropertyAddress(req.Mint)
	vaultAddr, _ := models.VaultAddress(req.Mint)
	reserveAddr, _ := models.ReserveFundAddress(req.Mint)
	ins := ledger.Instruction{
		Name:    "invest_in_property",
		Signers: []domain.Address{req.Investor},
		Writes: []domain.Address{
			req.Investor,
			req.Treasury,
			reserveAddr,
			vaultAddr,
			req.Seller,
			propertyAddr,
			ledger.TokenAccount(req.Mint, req.Investor),
		},
	}
	err = s.ledger.Execute(ctx, ins, func(ctx context.Context, tx ledger.Tx) error {
		now := tx.Now()
		property, err := loadProperty(ctx, tx, req.Mint)
		if err != nil {
			return err
		}
		if err := property.CanInvest(); err != nil {
			return err
		}
		vault, err := loadVault(ctx, tx, req.Mint)
		if err != nil {
			return err
		}
		if err := vault.CanReceive(req.Seller); err != nil {
			return err
		}
		available, err := tx.Balance(ctx, req.Investor)
		if err != nil {
			return translate(err, "investor balance")
		}
		if available < req.Amount {
			return dErrors.New(dErrors.CodeInsufficientFunds,
				fmt.Sprintf("investor holds %d lamports, needs %d", available, req.Amount))
		}
		if _, err := s.verifier.VerifyIn(ctx, tx, req.Investor); err != nil {
			return err
		}

		split, err := feesplit.Calculate(req.Amount)
		if err != nil {
			return err
		}
		if err := tx.Transfer(ctx, req.Investor, req.Treasury, split.PlatformFee); err != nil {
			return err
		}
		if err := tx.Transfer(ctx, req.Investor, reserveAddr, split.Reserve); err != nil {
			return err
		}
		if err := tx.Transfer(ctx, req.Investor, vaultAddr, split.Escrow); err != nil {
			return err
		}

		if err := property.ApplyMint(req.ExpectedTokens, now); err != nil {
			return err
		}
		if err := tx.MintTo(ctx, req.Mint, req.Investor, req.ExpectedTokens); err != nil {
			return err
		}
		if err := vault.ApplyInvestment(split, now); err != nil {
			return err
		}

		bps, err := property.CirculationBPS()
		if err != nil {
			return err
		}
		outcome, err := milestone.Evaluate(vault.CurrentMilestone, vault.EscrowBalance, bps)
		if err != nil {
			return err
		}
		if outcome.Advanced {
			if err := tx.Transfer(ctx, vaultAddr, vault.Seller, outcome.Release); err != nil {
				return err
			}
			if err := vault.ApplyMilestone(outcome, now); err != nil {
				return translate(err, "investment vault")
			}
			if err := emit(ctx, tx, audit.ActionMilestoneReached, req.Mint, models.MilestoneReachedPayload{
				PropertyMint:   req.Mint,
				Seller:         vault.Seller,
				Milestone:      outcome.Milestone,
				CirculationBPS: bps,
				Released:       outcome.Release,
				EscrowBalance:  vault.EscrowBalance,
				Timestamp:      now,
			}); err != nil {
				return err
			}
		}

		if err := tx.Put(ctx, propertyAddr, models.KindProperty, property); err != nil {
			return translate(err, "property")
		}
		if err := tx.Put(ctx, vaultAddr, models.KindVault, vault); err != nil {
			return translate(err, "investment vault")
		}
		tokens, err := tx.TokenBalance(ctx, req.Mint, req.Investor)
		if err != nil {
			return translate(err, "token balance")
		}

		receipt = &Receipt{
			Split:          split,
			TokensReceived: req.ExpectedTokens,
			TokenBalance:   tokens,
			Milestone:      outcome,
			Property:       property,
			Vault:          vault,
		}
		return emit(ctx, tx, audit.ActionInvestmentCompleted, req.Mint, models.InvestmentCompletedPayload{
			PropertyMint:   req.Mint,
			Investor:       req.Investor,
			GrossAmount:    split.Gross,
			TokensReceived: req.ExpectedTokens,
			PlatformFee:    split.PlatformFee,
			ReserveAmount:  split.Reserve,
			EscrowAmount:   split.Escrow,
			Dust:           split.Dust,
			Timestamp:      now,
		})
	})
	if err != nil {
		return nil, err
	}

	s.metrics.AddSettled(receipt.Split.Gross, receipt.Split.PlatformFee)
	if receipt.Milestone.Advanced {
		s.metrics.IncrementMilestone(uint8(receipt.Milestone.Milestone), receipt.Milestone.Release)
		s.logger.InfoContext(ctx, "milestone reached",
			"mint", req.Mint.String(),
			"milestone", receipt.Milestone.Milestone,
			"released", receipt.Milestone.Release,
		)
	}
	s.logger.InfoContext(ctx, "investment settled",
		"mint", req.Mint.String(),
		"investor", req.Investor.String(),
		"amount", req.Amount,
		"tokens", req.ExpectedTokens,
	)
	return receipt, nil
}

func investmentOutcome(err error) string {
	if err == nil {
		return "settled"
	}
	return string(dErrors.CodeOf(err))
}

// lamportsAttr records a lamport amount as a decimal string; int64 attributes
// cannot hold the upper half of the uint64 range.
func lamportsAttr(key string, v uint64) attribute.KeyValue {
	return attribute.String(key, strconv.FormatUint(v, 10))
}
