package models_test

import (
	"strings"
	"testing"
	"time"

	"hubrwa/internal/credential/models"
	"hubrwa/pkg/domain"
	dErrors "hubrwa/pkg/domain-errors"

	"github.com/stretchr/testify/suite"
)

type RecordSuite struct {
	suite.Suite
	now    time.Time
	holder domain.Address
	issuer domain.Address
}

func TestRecordSuite(t *testing.T) {
	suite.Run(t, new(RecordSuite))
}

func (s *RecordSuite) SetupTest() {
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.holder, _ = domain.Derive([]byte("holder"))
	s.issuer, _ = domain.Derive([]byte("issuer"))
}

func (s *RecordSuite) newRecord(expiresAt time.Time) *models.Record {
	r, err := models.NewRecord(s.holder, s.issuer, models.CredentialTypeKYCBasic, expiresAt, "ipfs://meta", s.now)
	s.Require().NoError(err)
	return r
}

func (s *RecordSuite) TestConstructionInvariants() {
	s.Run("new record is active at version 1", func() {
		r := s.newRecord(time.Time{})
		s.Equal(models.CredentialStatusActive, r.Status)
		s.Equal(uint32(1), r.Version)
		s.Equal(uint64(1), r.Revision)
		s.Equal(s.now, r.IssuedAt)
		s.Equal(s.now, r.LastVerifiedAt)
		s.Empty(r.RevocationReason)
		s.True(r.NeverExpires())
	})

	s.Run("rejects expiry equal to now", func() {
		_, err := models.NewRecord(s.holder, s.issuer, models.CredentialTypeKYCBasic, s.now, "", s.now)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("rejects expiry in the past", func() {
		_, err := models.NewRecord(s.holder, s.issuer, models.CredentialTypeKYCBasic, s.now.Add(-time.Second), "", s.now)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("rejects metadata uri over 200 characters", func() {
		_, err := models.NewRecord(s.holder, s.issuer, models.CredentialTypeKYCBasic, time.Time{}, strings.Repeat("u", 201), s.now)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("accepts metadata uri of exactly 200 characters", func() {
		_, err := models.NewRecord(s.holder, s.issuer, models.CredentialTypeKYCBasic, time.Time{}, strings.Repeat("u", 200), s.now)
		s.Require().NoError(err)
	})

	s.Run("rejects unknown type", func() {
		_, err := models.NewRecord(s.holder, s.issuer, models.CredentialType("gold_member"), time.Time{}, "", s.now)
		s.Require().Error(err)
	})
}

func (s *RecordSuite) TestValidity() {
	expiry := s.now.Add(24 * time.Hour)
	r := s.newRecord(expiry)

	s.Run("valid up to and including the expiry instant", func() {
		s.True(r.IsValid(s.now))
		s.True(r.IsValid(expiry))
		s.NoError(r.CheckValid(expiry))
	})

	s.Run("lapsed record is expired while stored status stays active", func() {
		later := expiry.Add(time.Second)
		s.False(r.IsValid(later))
		s.True(r.IsExpired(later))
		s.Equal(models.CredentialStatusActive, r.Status)
		s.True(dErrors.HasCode(r.CheckValid(later), dErrors.CodeExpired))
	})

	s.Run("never-expiring record stays valid", func() {
		forever := s.newRecord(time.Time{})
		s.True(forever.IsValid(s.now.AddDate(100, 0, 0)))
	})

	s.Run("non-active status is invalid regardless of time", func() {
		for _, status := range []models.CredentialStatus{models.CredentialStatusRevoked, models.CredentialStatusSuspended, models.CredentialStatusExpired} {
			other := s.newRecord(time.Time{})
			other.Status = status
			s.False(other.IsValid(s.now))
			s.True(dErrors.HasCode(other.CheckValid(s.now), dErrors.CodeInvalidState), status)
		}
	})
}

func (s *RecordSuite) TestRevocation() {
	s.Run("active record can be revoked", func() {
		r := s.newRecord(time.Time{})
		s.Require().NoError(r.CanRevoke("fraud"))
		r.ApplyRevocation("fraud")
		s.Equal(models.CredentialStatusRevoked, r.Status)
		s.Equal("fraud", r.RevocationReason)
		s.Equal(uint64(2), r.Revision)
	})

	s.Run("revoked record cannot be revoked again", func() {
		r := s.newRecord(time.Time{})
		r.ApplyRevocation("fraud")
		s.True(dErrors.HasCode(r.CanRevoke("again"), dErrors.CodeInvalidState))
	})

	s.Run("reason over 200 characters is rejected", func() {
		r := s.newRecord(time.Time{})
		s.True(dErrors.HasCode(r.CanRevoke(strings.Repeat("r", 201)), dErrors.CodeInvariantViolation))
	})
}

func (s *RecordSuite) TestRefresh() {
	newExpiry := s.now.Add(48 * time.Hour)

	s.Run("time-expired record refreshes back to valid", func() {
		r := s.newRecord(s.now.Add(time.Hour))
		later := s.now.Add(2 * time.Hour)
		s.Require().False(r.IsValid(later))

		s.Require().NoError(r.CanRefresh(s.issuer, later.Add(time.Hour), later))
		r.ApplyRefresh(later.Add(time.Hour), later)
		s.True(r.IsValid(later))
		s.Equal(later, r.LastVerifiedAt)
		s.Equal(uint32(1), r.Version)
		s.Equal(uint64(2), r.Revision)
	})

	s.Run("stored expired status refreshes to active", func() {
		r := s.newRecord(time.Time{})
		r.Status = models.CredentialStatusExpired
		s.Require().NoError(r.CanRefresh(s.issuer, newExpiry, s.now))
		r.ApplyRefresh(newExpiry, s.now)
		s.Equal(models.CredentialStatusActive, r.Status)
	})

	s.Run("revoked record cannot be refreshed", func() {
		r := s.newRecord(time.Time{})
		r.ApplyRevocation("fraud")
		s.True(dErrors.HasCode(r.CanRefresh(s.issuer, newExpiry, s.now), dErrors.CodeInvalidState))
	})

	s.Run("only the issuing authority may refresh", func() {
		r := s.newRecord(time.Time{})
		stranger, _ := domain.Derive([]byte("stranger"))
		s.True(dErrors.HasCode(r.CanRefresh(stranger, newExpiry, s.now), dErrors.CodeForbidden))
	})

	s.Run("new expiry must be in the future", func() {
		r := s.newRecord(time.Time{})
		s.True(dErrors.HasCode(r.CanRefresh(s.issuer, s.now, s.now), dErrors.CodeInvariantViolation))
	})
}

func TestResolveRevoker(t *testing.T) {
	issuer, _ := domain.Derive([]byte("issuer"))
	admin, _ := domain.Derive([]byte("admin"))
	stranger, _ := domain.Derive([]byte("stranger"))
	now := time.Now()

	record := &models.Record{Issuer: issuer}
	network, err := models.NewNetwork(admin, "hub", 0, now)
	if err != nil {
		t.Fatal(err)
	}

	caller, err := models.ResolveRevoker(issuer, record, network)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := caller.(models.IssuerCaller); !ok {
		t.Fatalf("expected IssuerCaller, got %T", caller)
	}

	caller, err = models.ResolveRevoker(admin, record, network)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := caller.(models.AdminCaller); !ok {
		t.Fatalf("expected AdminCaller, got %T", caller)
	}

	// Admin that also issued the record acts as the issuer.
	selfIssued := &models.Record{Issuer: admin}
	caller, err = models.ResolveRevoker(admin, selfIssued, network)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := caller.(models.IssuerCaller); !ok {
		t.Fatalf("expected IssuerCaller for admin-issued record, got %T", caller)
	}

	if _, err := models.ResolveRevoker(stranger, record, network); !dErrors.HasCode(err, dErrors.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestIssuerCapabilities(t *testing.T) {
	authority, _ := domain.Derive([]byte("issuer"))
	issuer, err := models.NewIssuer(authority, "Hub KYC", "https://kyc.example", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if err := issuer.CanIssue(models.CredentialTypeAccreditedInvestor); err != nil {
		t.Fatalf("registered issuer should hold both capabilities: %v", err)
	}

	issuer.CanIssueAccredited = false
	if err := issuer.CanIssue(models.CredentialTypeQualifiedPurchaser); !dErrors.HasCode(err, dErrors.CodeForbidden) {
		t.Fatalf("expected forbidden without accredited capability, got %v", err)
	}
	if err := issuer.CanIssue(models.CredentialTypeBrazilianCPF); err != nil {
		t.Fatalf("brazilian ids are KYC attestations: %v", err)
	}

	issuer.IsActive = false
	if err := issuer.CanIssue(models.CredentialTypeKYCBasic); !dErrors.HasCode(err, dErrors.CodeForbidden) {
		t.Fatalf("expected forbidden for inactive issuer, got %v", err)
	}
}
