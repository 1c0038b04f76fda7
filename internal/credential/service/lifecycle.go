package service

import (
	"context"
	"time"

	"hubrwa/internal/credential/models"
	"hubrwa/internal/ledger"
	"hubrwa/pkg/domain"
	audit "hubrwa/pkg/platform/audit"

	"go.opentelemetry.io/otel/attribute"
)

// IssueRequest carries the issuer-supplied fields of a new credential.
// A zero ExpiresAt means the credential never expires.
type IssueRequest struct {
	Issuer      domain.Address
	Holder      domain.Address
	Type        models.CredentialType
	ExpiresAt   time.Time
	MetadataURI string
}

// Issue creates the holder's credential. The holder slot is exclusive: a
// holder that already has a record, in any status, cannot be issued another.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (record *models.Record, err error) {
	ctx, span, start := s.startSpan(ctx, "issue",
		attribute.String("issuer", req.Issuer.String()),
		attribute.String("holder", req.Holder.String()),
		attribute.String("credential_type", string(req.Type)),
	)
	defer func() { s.endSpan(span, "issue", start, err) }()

	networkAddr, _ := models.NetworkAddress()
	issuerAddr, _ := models.IssuerAddress(req.Issuer)
	credentialAddr, _ := models.CredentialAddress(req.Holder)
	ins := ledger.Instruction{
		Name:    "issue_credential",
		Signers: []domain.Address{req.Issuer},
		Writes:  []domain.Address{networkAddr, issuerAddr, credentialAddr},
	}
	err = s.ledger.Execute(ctx, ins, func(ctx context.Context, tx ledger.Tx) error {
		network, err := loadNetwork(ctx, tx)
		if err != nil {
			return err
		}
		if err := network.CanAccept(); err != nil {
			return err
		}
		issuer, err := loadIssuer(ctx, tx, req.Issuer)
		if err != nil {
			return err
		}
		if err := issuer.CanIssue(req.Type); err != nil {
			return err
		}

		r, err := models.NewRecord(req.Holder, req.Issuer, req.Type, req.ExpiresAt, req.MetadataURI, tx.Now())
		if err != nil {
			return translate(err, "credential")
		}
		if err := tx.Create(ctx, credentialAddr, models.KindCredential, r); err != nil {
			return translate(err, "credential")
		}

		if err := issuer.ApplyCredentialIssued(); err != nil {
			return err
		}
		if err := network.ApplyCredentialIssued(); err != nil {
			return err
		}
		if err := tx.Put(ctx, issuerAddr, models.KindIssuer, issuer); err != nil {
			return translate(err, "issuer")
		}
		if err := tx.Put(ctx, networkAddr, models.KindNetwork, network); err != nil {
			return translate(err, "network")
		}
		record = r
		return emit(ctx, tx, audit.ActionCredentialIssued, req.Holder, models.CredentialIssuedPayload{
			Holder:    req.Holder,
			Issuer:    req.Issuer,
			Type:      req.Type,
			ExpiresAt: req.ExpiresAt,
		})
	})
	if err != nil {
		return nil, err
	}

	s.storeCommitted(ctx, record)
	s.metrics.IncrementIssued()
	s.logger.InfoContext(ctx, "credential issued",
		"holder", req.Holder.String(),
		"issuer", req.Issuer.String(),
		"credential_type", string(req.Type),
	)
	return record, nil
}

// Revoke moves an Active credential to the terminal Revoked status. The
// issuing authority and the network admin may revoke; only an issuer-originated
// revocation updates that issuer's counters.
func (s *Service) Revoke(ctx context.Context, caller, holder domain.Address, reason string) (record *models.Record, err error) {
	ctx, span, start := s.startSpan(ctx, "revoke",
		attribute.String("caller", caller.String()),
		attribute.String("holder", holder.String()),
	)
	defer func() { s.endSpan(span, "revoke", start, err) }()

	networkAddr, _ := models.NetworkAddress()
	credentialAddr, _ := models.CredentialAddress(holder)
	callerIssuerAddr, _ := models.IssuerAddress(caller)
	ins := ledger.Instruction{
		Name:    "revoke_credential",
		Signers: []domain.Address{caller},
		Writes:  []domain.Address{networkAddr, credentialAddr, callerIssuerAddr},
	}
	var role models.Caller
	err = s.ledger.Execute(ctx, ins, func(ctx context.Context, tx ledger.Tx) error {
		network, err := loadNetwork(ctx, tx)
		if err != nil {
			return err
		}
		r, err := loadRecord(ctx, tx, holder)
		if err != nil {
			return err
		}
		role, err = models.ResolveRevoker(caller, r, network)
		if err != nil {
			return err
		}
		if err := r.CanRevoke(reason); err != nil {
			return translate(err, "credential")
		}
		r.ApplyRevocation(reason)
		if err := tx.Put(ctx, credentialAddr, models.KindCredential, r); err != nil {
			return translate(err, "credential")
		}

		if c, ok := role.(models.IssuerCaller); ok {
			issuer, err := loadIssuer(ctx, tx, c.Authority)
			if err != nil {
				return err
			}
			if err := issuer.ApplyCredentialRevoked(); err != nil {
				return err
			}
			if err := tx.Put(ctx, callerIssuerAddr, models.KindIssuer, issuer); err != nil {
				return translate(err, "issuer")
			}
		}
		network.ApplyCredentialRevoked()
		if err := tx.Put(ctx, networkAddr, models.KindNetwork, network); err != nil {
			return translate(err, "network")
		}
		record = r
		return emit(ctx, tx, audit.ActionCredentialRevoked, holder, models.CredentialRevokedPayload{
			Holder:     holder,
			RevokedBy:  caller,
			CallerRole: role.Role(),
			Reason:     reason,
		})
	})
	if err != nil {
		return nil, err
	}

	s.storeCommitted(ctx, record)
	s.metrics.IncrementRevoked(role.Role())
	s.logger.InfoContext(ctx, "credential revoked",
		"holder", holder.String(),
		"caller", caller.String(),
		"caller_role", role.Role(),
		"reason", reason,
	)
	return record, nil
}

// Refresh extends an Active or time-expired credential and resets it to
// Active. Counters and version are unchanged.
func (s *Service) Refresh(ctx context.Context, issuerAuthority, holder domain.Address, newExpiry time.Time) (record *models.Record, err error) {
	ctx, span, start := s.startSpan(ctx, "refresh",
		attribute.String("issuer", issuerAuthority.String()),
		attribute.String("holder", holder.String()),
	)
	defer func() { s.endSpan(span, "refresh", start, err) }()

	credentialAddr, _ := models.CredentialAddress(holder)
	ins := ledger.Instruction{
		Name:    "refresh_credential",
		Signers: []domain.Address{issuerAuthority},
		Writes:  []domain.Address{credentialAddr},
	}
	err = s.ledger.Execute(ctx, ins, func(ctx context.Context, tx ledger.Tx) error {
		issuer, err := loadIssuer(ctx, tx, issuerAuthority)
		if err != nil {
			return err
		}
		if err := issuer.CanAct(); err != nil {
			return err
		}
		r, err := loadRecord(ctx, tx, holder)
		if err != nil {
			return err
		}
		if err := r.CanRefresh(issuerAuthority, newExpiry, tx.Now()); err != nil {
			return translate(err, "credential")
		}
		r.ApplyRefresh(newExpiry, tx.Now())
		if err := tx.Put(ctx, credentialAddr, models.KindCredential, r); err != nil {
			return translate(err, "credential")
		}
		record = r
		return emit(ctx, tx, audit.ActionCredentialRefreshed, holder, models.CredentialRefreshedPayload{
			Holder:    holder,
			Issuer:    issuerAuthority,
			ExpiresAt: newExpiry,
		})
	})
	if err != nil {
		return nil, err
	}

	s.storeCommitted(ctx, record)
	s.metrics.IncrementRefreshed()
	s.logger.InfoContext(ctx, "credential refreshed",
		"holder", holder.String(),
		"issuer", issuerAuthority.String(),
	)
	return record, nil
}
