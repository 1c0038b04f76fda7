package service

import (
	"context"

	"hubrwa/internal/ledger"
	"hubrwa/internal/settlement/models"
	"hubrwa/pkg/domain"
	dErrors "hubrwa/pkg/domain-errors"
	audit "hubrwa/pkg/platform/audit"

	"go.opentelemetry.io/otel/attribute"
)

// PropertyRequest describes a new tokenized property.
type PropertyRequest struct {
	Authority   domain.Address
	Mint        domain.Address
	Name        string
	Symbol      string
	TotalSupply uint64
}

// InitializeProperty creates the supply state for a mint. The authority
// signs and becomes the only identity that may toggle the property or open
// its vault.
func (s *Service) InitializeProperty(ctx context.Context, req PropertyRequest) (property *models.Property, err error) {
	ctx, span, start := s.startSpan(ctx, "initialize_property",
		attribute.String("authority", req.Authority.String()),
		attribute.String("mint", req.Mint.String()),
	)
	defer func() { s.endSpan(span, "initialize_property", start, err) }()

	propertyAddr, _ := models.PropertyAddress(req.Mint)
	ins := ledger.Instruction{
		Name:    "initialize_property",
		Signers: []domain.Address{req.Authority},
		Writes:  []domain.Address{propertyAddr},
	}
	err = s.ledger.Execute(ctx, ins, func(ctx context.Context, tx ledger.Tx) error {
		p, err := models.NewProperty(req.Authority, req.Mint, req.Name, req.Symbol, req.TotalSupply, tx.Now())
		if err != nil {
			return translate(err, "property")
		}
		if err := tx.Create(ctx, propertyAddr, models.KindProperty, p); err != nil {
			return translate(err, "property")
		}
		property = p
		return emit(ctx, tx, audit.ActionPropertyInitialized, req.Mint, models.PropertyInitializedPayload{
			Authority:   req.Authority,
			Mint:        req.Mint,
			Name:        req.Name,
			Symbol:      req.Symbol,
			TotalSupply: req.TotalSupply,
		})
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "property initialized",
		"mint", req.Mint.String(),
		"authority", req.Authority.String(),
		"total_supply", req.TotalSupply,
	)
	return property, nil
}

// SetPropertyActive opens or closes a property to investment.
func (s *Service) SetPropertyActive(ctx context.Context, authority, mint domain.Address, active bool) (property *models.Property, err error) {
	ctx, span, start := s.startSpan(ctx, "set_property_active",
		attribute.String("mint", mint.String()),
		attribute.Bool("active", active),
	)
	defer func() { s.endSpan(span, "set_property_active", start, err) }()

	propertyAddr, _ := models.PropertyAddress(mint)
	ins := ledger.Instruction{
		Name:    "set_property_active",
		Signers: []domain.Address{authority},
		Writes:  []domain.Address{propertyAddr},
	}
	err = s.ledger.Execute(ctx, ins, func(ctx context.Context, tx ledger.Tx) error {
		p, err := loadProperty(ctx, tx, mint)
		if err != nil {
			return err
		}
		if !p.IsAuthority(authority) {
			return dErrors.New(dErrors.CodeForbidden, "only the property authority can change its status")
		}
		p.ApplyActive(active, tx.Now())
		if err := tx.Put(ctx, propertyAddr, models.KindProperty, p); err != nil {
			return translate(err, "property")
		}
		property = p
		return emit(ctx, tx, audit.ActionPropertyStatusChanged, mint, models.PropertyStatusChangedPayload{
			Mint:     mint,
			IsActive: active,
		})
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "property status changed", "mint", mint.String(), "is_active", active)
	return property, nil
}

// InitializeVault opens the investment vault of a property for seller. Only
// the property authority may do so, and each property has one vault.
func (s *Service) InitializeVault(ctx context.Context, authority, mint, seller domain.Address) (vault *models.InvestmentVault, err error) {
	ctx, span, start := s.startSpan(ctx, "initialize_vault",
		attribute.String("mint", mint.String()),
		attribute.String("seller", seller.String()),
	)
	defer func() { s.endSpan(span, "initialize_vault", start, err) }()

	vaultAddr, _ := models.VaultAddress(mint)
	ins := ledger.Instruction{
		Name:    "initialize_investment_vault",
		Signers: []domain.Address{authority},
		Writes:  []domain.Address{vaultAddr},
	}
	err = s.ledger.Execute(ctx, ins, func(ctx context.Context, tx ledger.Tx) error {
		p, err := loadProperty(ctx, tx, mint)
		if err != nil {
			return err
		}
		if !p.IsAuthority(authority) {
			return dErrors.New(dErrors.CodeForbidden, "only the property authority can open its vault")
		}
		if seller.IsZero() {
			return dErrors.New(dErrors.CodeValidation, "seller is required")
		}
		v := models.NewInvestmentVault(mint, seller, tx.Now())
		if err := tx.Create(ctx, vaultAddr, models.KindVault, v); err != nil {
			return translate(err, "investment vault")
		}
		vault = v
		return emit(ctx, tx, audit.ActionVaultInitialized, mint, models.VaultInitializedPayload{
			PropertyMint: mint,
			Seller:       seller,
			Timestamp:    tx.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "investment vault initialized",
		"mint", mint.String(),
		"seller", seller.String(),
	)
	return vault, nil
}
