package service

import (
	"context"
	"time"

	"hubrwa/internal/credential/models"
	"hubrwa/internal/ledger"
	"hubrwa/pkg/domain"
	dErrors "hubrwa/pkg/domain-errors"
	audit "hubrwa/pkg/platform/audit"

	"go.opentelemetry.io/otel/attribute"
)

// InitializeNetwork creates the registry singleton with admin as its administrator.
func (s *Service) InitializeNetwork(ctx context.Context, admin domain.Address, name string, feeLamports uint64) (network *models.Network, err error) {
	ctx, span, start := s.startSpan(ctx, "initialize_network", attribute.String("admin", admin.String()))
	defer func() { s.endSpan(span, "initialize_network", start, err) }()

	networkAddr, _ := models.NetworkAddress()
	ins := ledger.Instruction{
		Name:    "initialize_network",
		Signers: []domain.Address{admin},
		Writes:  []domain.Address{networkAddr},
	}
	err = s.ledger.Execute(ctx, ins, func(ctx context.Context, tx ledger.Tx) error {
		n, err := models.NewNetwork(admin, name, feeLamports, tx.Now())
		if err != nil {
			return translate(err, "network")
		}
		if err := tx.Create(ctx, networkAddr, models.KindNetwork, n); err != nil {
			return translate(err, "network")
		}
		network = n
		return emit(ctx, tx, audit.ActionNetworkInitialized, networkAddr, models.NetworkInitializedPayload{
			Admin:       admin,
			Name:        name,
			FeeLamports: feeLamports,
		})
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "credential network initialized", "admin", admin.String(), "name", name)
	return network, nil
}

// SetNetworkActive pauses or resumes the network. Only the admin may call it.
func (s *Service) SetNetworkActive(ctx context.Context, admin domain.Address, active bool) (network *models.Network, err error) {
	ctx, span, start := s.startSpan(ctx, "set_network_active", attribute.Bool("active", active))
	defer func() { s.endSpan(span, "set_network_active", start, err) }()

	networkAddr, _ := models.NetworkAddress()
	ins := ledger.Instruction{
		Name:    "set_network_active",
		Signers: []domain.Address{admin},
		Writes:  []domain.Address{networkAddr},
	}
	err = s.ledger.Execute(ctx, ins, func(ctx context.Context, tx ledger.Tx) error {
		n, err := loadNetwork(ctx, tx)
		if err != nil {
			return err
		}
		if !n.IsAdmin(admin) {
			return dErrors.New(dErrors.CodeForbidden, "only the network admin can change network status")
		}
		n.ApplyActive(active)
		if err := tx.Put(ctx, networkAddr, models.KindNetwork, n); err != nil {
			return translate(err, "network")
		}
		network = n
		return emit(ctx, tx, audit.ActionNetworkStatusChanged, networkAddr, models.StatusChangedPayload{
			Address:  networkAddr,
			IsActive: active,
		})
	})
	if err != nil {
		return nil, err
	}
	return network, nil
}

// RegisterIssuer authorizes authority to manage credentials.
func (s *Service) RegisterIssuer(ctx context.Context, admin, authority domain.Address, name, uri string) (issuer *models.Issuer, err error) {
	ctx, span, start := s.startSpan(ctx, "register_issuer", attribute.String("issuer", authority.String()))
	defer func() { s.endSpan(span, "register_issuer", start, err) }()

	networkAddr, _ := models.NetworkAddress()
	issuerAddr, _ := models.IssuerAddress(authority)
	ins := ledger.Instruction{
		Name:    "register_issuer",
		Signers: []domain.Address{admin},
		Writes:  []domain.Address{networkAddr, issuerAddr},
	}
	err = s.ledger.Execute(ctx, ins, func(ctx context.Context, tx ledger.Tx) error {
		network, err := loadNetwork(ctx, tx)
		if err != nil {
			return err
		}
		if !network.IsAdmin(admin) {
			return dErrors.New(dErrors.CodeForbidden, "only the network admin can register issuers")
		}
		if err := network.CanAccept(); err != nil {
			return err
		}
		i, err := models.NewIssuer(authority, name, uri, tx.Now())
		if err != nil {
			return translate(err, "issuer")
		}
		if err := tx.Create(ctx, issuerAddr, models.KindIssuer, i); err != nil {
			return translate(err, "issuer")
		}
		if err := network.ApplyIssuerRegistered(); err != nil {
			return err
		}
		if err := tx.Put(ctx, networkAddr, models.KindNetwork, network); err != nil {
			return translate(err, "network")
		}
		issuer = i
		return emit(ctx, tx, audit.ActionIssuerRegistered, issuerAddr, models.IssuerRegisteredPayload{
			Authority: authority,
			Name:      name,
			URI:       uri,
		})
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "issuer registered", "issuer", authority.String(), "name", name)
	return issuer, nil
}

// SetIssuerActive suspends or restores an issuer's authorization.
func (s *Service) SetIssuerActive(ctx context.Context, admin, authority domain.Address, active bool) (issuer *models.Issuer, err error) {
	ctx, span, start := s.startSpan(ctx, "set_issuer_active",
		attribute.String("issuer", authority.String()), attribute.Bool("active", active))
	defer func() { s.endSpan(span, "set_issuer_active", start, err) }()

	issuerAddr, _ := models.IssuerAddress(authority)
	ins := ledger.Instruction{
		Name:    "set_issuer_active",
		Signers: []domain.Address{admin},
		Writes:  []domain.Address{issuerAddr},
	}
	err = s.ledger.Execute(ctx, ins, func(ctx context.Context, tx ledger.Tx) error {
		network, err := loadNetwork(ctx, tx)
		if err != nil {
			return err
		}
		if !network.IsAdmin(admin) {
			return dErrors.New(dErrors.CodeForbidden, "only the network admin can change issuer status")
		}
		i, err := loadIssuer(ctx, tx, authority)
		if err != nil {
			return err
		}
		i.ApplyActive(active)
		if err := tx.Put(ctx, issuerAddr, models.KindIssuer, i); err != nil {
			return translate(err, "issuer")
		}
		issuer = i
		return emit(ctx, tx, audit.ActionIssuerStatusChanged, issuerAddr, models.StatusChangedPayload{
			Address:  authority,
			IsActive: active,
		})
	})
	if err != nil {
		return nil, err
	}
	return issuer, nil
}

// GetNetwork returns the committed network singleton.
func (s *Service) GetNetwork(ctx context.Context) (*models.Network, error) {
	defer s.metrics.ObserveOperation("get_network", time.Now())
	var network *models.Network
	err := ledger.View(ctx, s.ledger, func(ctx context.Context, r ledger.Reader) error {
		var err error
		network, err = loadNetwork(ctx, r)
		return err
	})
	return network, err
}

// GetIssuer returns the committed issuer controlled by authority.
func (s *Service) GetIssuer(ctx context.Context, authority domain.Address) (*models.Issuer, error) {
	defer s.metrics.ObserveOperation("get_issuer", time.Now())
	var issuer *models.Issuer
	err := ledger.View(ctx, s.ledger, func(ctx context.Context, r ledger.Reader) error {
		var err error
		issuer, err = loadIssuer(ctx, r, authority)
		return err
	})
	return issuer, err
}
