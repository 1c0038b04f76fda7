package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks RecordCache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"hubrwa/internal/credential/metrics"
	"hubrwa/internal/credential/models"
	"hubrwa/internal/credential/service/mocks"
	"hubrwa/internal/ledger"
	"hubrwa/pkg/domain"
	dErrors "hubrwa/pkg/domain-errors"
	audit "hubrwa/pkg/platform/audit"
	"hubrwa/pkg/platform/audit/store/memory"
	"hubrwa/pkg/platform/sentinel"
	"hubrwa/pkg/testutil"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ServiceSuite struct {
	suite.Suite
	t0      time.Time
	events  *memory.InMemoryStore
	ledger  *ledger.InMemory
	service *Service

	admin    testutil.Signer
	issuer   testutil.Signer
	holder   testutil.Signer
	stranger testutil.Signer
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.events = memory.NewInMemoryStore()
	s.ledger = ledger.NewInMemory(ledger.WithSink(s.events))
	s.service = New(s.ledger)

	s.admin = testutil.NewSigner(s.T())
	s.issuer = testutil.NewSigner(s.T())
	s.holder = testutil.NewSigner(s.T())
	s.stranger = testutil.NewSigner(s.T())

	_, err := s.service.InitializeNetwork(s.as(s.admin), s.admin.Address, "Hub Credential Network", 1000)
	s.Require().NoError(err)
	_, err = s.service.RegisterIssuer(s.as(s.admin), s.admin.Address, s.issuer.Address, "Hub KYC", "https://kyc.hub.example")
	s.Require().NoError(err)
	s.events.Clear()
}

// as returns a context signed by signers at t0.
func (s *ServiceSuite) as(signers ...testutil.Signer) context.Context {
	return s.asAt(s.t0, signers...)
}

func (s *ServiceSuite) asAt(at time.Time, signers ...testutil.Signer) context.Context {
	return testutil.At(testutil.SignedBy(context.Background(), signers...), at)
}

func (s *ServiceSuite) issue(holder domain.Address, expiresAt time.Time) *models.Record {
	record, err := s.service.Issue(s.as(s.issuer), IssueRequest{
		Issuer:      s.issuer.Address,
		Holder:      holder,
		Type:        models.CredentialTypeKYCBasic,
		ExpiresAt:   expiresAt,
		MetadataURI: "ipfs://kyc",
	})
	s.Require().NoError(err)
	return record
}

func (s *ServiceSuite) network() *models.Network {
	n, err := s.service.GetNetwork(context.Background())
	s.Require().NoError(err)
	return n
}

func (s *ServiceSuite) issuerAccount() *models.Issuer {
	i, err := s.service.GetIssuer(context.Background(), s.issuer.Address)
	s.Require().NoError(err)
	return i
}

func (s *ServiceSuite) TestRegistry() {
	s.Run("network can only be initialized once", func() {
		_, err := s.service.InitializeNetwork(s.as(s.admin), s.admin.Address, "again", 0)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("registered issuer is counted and fully capable", func() {
		s.Equal(uint64(1), s.network().TotalIssuers)
		i := s.issuerAccount()
		s.True(i.IsActive)
		s.True(i.CanIssueKYC)
		s.True(i.CanIssueAccredited)
		s.Equal(s.t0, i.RegisteredAt)
	})

	s.Run("only the admin registers issuers", func() {
		other := testutil.NewSigner(s.T())
		_, err := s.service.RegisterIssuer(s.as(s.stranger), s.stranger.Address, other.Address, "Rogue", "")
		s.Require().True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("admin signature is required", func() {
		other := testutil.NewSigner(s.T())
		_, err := s.service.RegisterIssuer(s.as(s.stranger), s.admin.Address, other.Address, "Rogue", "")
		s.Require().True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("issuer name over 64 characters is a validation error", func() {
		other := testutil.NewSigner(s.T())
		_, err := s.service.RegisterIssuer(s.as(s.admin), s.admin.Address, other.Address, strings.Repeat("n", 65), "")
		s.Require().True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Equal(uint64(1), s.network().TotalIssuers)
	})

	s.Run("issuer cannot be registered twice", func() {
		_, err := s.service.RegisterIssuer(s.as(s.admin), s.admin.Address, s.issuer.Address, "Dup", "")
		s.Require().True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("inactive network rejects registration", func() {
		_, err := s.service.SetNetworkActive(s.as(s.admin), s.admin.Address, false)
		s.Require().NoError(err)
		defer func() {
			_, err := s.service.SetNetworkActive(s.as(s.admin), s.admin.Address, true)
			s.Require().NoError(err)
		}()

		other := testutil.NewSigner(s.T())
		_, err = s.service.RegisterIssuer(s.as(s.admin), s.admin.Address, other.Address, "Late", "")
		s.Require().True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})
}

func (s *ServiceSuite) TestIssue() {
	s.Run("issued record is active and verifies immediately", func() {
		record := s.issue(s.holder.Address, time.Time{})
		s.Equal(models.CredentialStatusActive, record.Status)
		s.Equal(uint32(1), record.Version)

		verified, err := s.service.Verify(s.as(), s.holder.Address)
		s.Require().NoError(err)
		s.Equal(s.issuer.Address, verified.Issuer)
	})

	s.Run("counters move with the record", func() {
		n := s.network()
		s.Equal(uint64(1), n.TotalCredentialsIssued)
		s.Equal(uint64(1), n.ActiveCredentials)
		i := s.issuerAccount()
		s.Equal(uint64(1), i.CredentialsIssued)
		s.Equal(uint64(1), i.ActiveCredentials)
	})

	s.Run("credential_issued event is committed", func() {
		events, err := s.events.ListBySubject(context.Background(), s.holder.Address.String())
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal(audit.ActionCredentialIssued, events[0].Action)
		s.Equal(s.issuer.Address.String(), events[0].Actor)
	})

	s.Run("second credential for the same holder fails and changes nothing", func() {
		_, err := s.service.Issue(s.as(s.issuer), IssueRequest{
			Issuer: s.issuer.Address,
			Holder: s.holder.Address,
			Type:   models.CredentialTypeAccreditedInvestor,
		})
		s.Require().True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Equal(uint64(1), s.network().TotalCredentialsIssued)
		s.Equal(uint64(1), s.issuerAccount().CredentialsIssued)
	})

	s.Run("issuer signature is required", func() {
		other := testutil.NewSigner(s.T())
		_, err := s.service.Issue(s.as(other), IssueRequest{Issuer: s.issuer.Address, Holder: other.Address, Type: models.CredentialTypeKYCBasic})
		s.Require().True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("unregistered issuer is not found", func() {
		other := testutil.NewSigner(s.T())
		_, err := s.service.Issue(s.as(s.stranger), IssueRequest{Issuer: s.stranger.Address, Holder: other.Address, Type: models.CredentialTypeKYCBasic})
		s.Require().True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("expiry must be strictly in the future", func() {
		other := testutil.NewSigner(s.T())
		_, err := s.service.Issue(s.as(s.issuer), IssueRequest{Issuer: s.issuer.Address, Holder: other.Address, Type: models.CredentialTypeKYCBasic, ExpiresAt: s.t0})
		s.Require().True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown credential type is a validation error", func() {
		other := testutil.NewSigner(s.T())
		_, err := s.service.Issue(s.as(s.issuer), IssueRequest{Issuer: s.issuer.Address, Holder: other.Address, Type: "platinum"})
		s.Require().True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("inactive issuer is forbidden", func() {
		_, err := s.service.SetIssuerActive(s.as(s.admin), s.admin.Address, s.issuer.Address, false)
		s.Require().NoError(err)
		defer func() {
			_, err := s.service.SetIssuerActive(s.as(s.admin), s.admin.Address, s.issuer.Address, true)
			s.Require().NoError(err)
		}()

		other := testutil.NewSigner(s.T())
		_, err = s.service.Issue(s.as(s.issuer), IssueRequest{Issuer: s.issuer.Address, Holder: other.Address, Type: models.CredentialTypeKYCBasic})
		s.Require().True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})
}

func (s *ServiceSuite) TestVerify() {
	expiry := s.t0.Add(time.Hour)
	s.issue(s.holder.Address, expiry)

	s.Run("valid at the expiry instant", func() {
		_, err := s.service.Verify(s.asAt(expiry), s.holder.Address)
		s.Require().NoError(err)
	})

	s.Run("lapsed record fails with expired while stored status stays active", func() {
		_, err := s.service.Verify(s.asAt(expiry.Add(time.Second)), s.holder.Address)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeExpired))

		record, err := s.service.GetCredential(context.Background(), s.holder.Address)
		s.Require().NoError(err)
		s.Equal(models.CredentialStatusActive, record.Status)
		s.Equal(uint64(1), s.network().ActiveCredentials, "active counter is an upper bound")
	})

	s.Run("revoked record fails as not active", func() {
		_, err := s.service.Revoke(s.as(s.issuer), s.issuer.Address, s.holder.Address, "fraud")
		s.Require().NoError(err)
		_, err = s.service.Verify(s.as(), s.holder.Address)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	s.Run("missing record is not found", func() {
		_, err := s.service.Verify(s.as(), s.stranger.Address)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("verify inside an instruction uses the instruction clock", func() {
		other := testutil.NewSigner(s.T())
		s.issue(other.Address, expiry)
		err := ledger.View(s.asAt(expiry.Add(time.Minute)), s.ledger, func(ctx context.Context, r ledger.Reader) error {
			_, err := s.service.VerifyIn(ctx, r, other.Address)
			return err
		})
		s.Require().True(dErrors.HasCode(err, dErrors.CodeExpired))
	})
}

func (s *ServiceSuite) TestRevoke() {
	s.Run("issuer revocation updates issuer and network counters", func() {
		s.issue(s.holder.Address, time.Time{})
		record, err := s.service.Revoke(s.as(s.issuer), s.issuer.Address, s.holder.Address, "sanctions hit")
		s.Require().NoError(err)
		s.Equal(models.CredentialStatusRevoked, record.Status)
		s.Equal("sanctions hit", record.RevocationReason)

		i := s.issuerAccount()
		s.Equal(uint64(0), i.ActiveCredentials)
		s.Equal(uint64(1), i.RevokedCredentials)
		s.Equal(uint64(0), s.network().ActiveCredentials)
	})

	s.Run("revoking a revoked record fails", func() {
		_, err := s.service.Revoke(s.as(s.issuer), s.issuer.Address, s.holder.Address, "again")
		s.Require().True(dErrors.HasCode(err, dErrors.CodeInvalidState))
		s.Equal(uint64(1), s.issuerAccount().RevokedCredentials)
	})

	s.Run("admin revocation leaves issuer counters alone", func() {
		other := testutil.NewSigner(s.T())
		s.issue(other.Address, time.Time{})
		before := s.issuerAccount()

		_, err := s.service.Revoke(s.as(s.admin), s.admin.Address, other.Address, "court order")
		s.Require().NoError(err)

		after := s.issuerAccount()
		s.Equal(before.ActiveCredentials, after.ActiveCredentials)
		s.Equal(before.RevokedCredentials, after.RevokedCredentials)
		s.Equal(uint64(0), s.network().ActiveCredentials)

		events, err := s.events.ListByAction(context.Background(), audit.ActionCredentialRevoked)
		s.Require().NoError(err)
		s.Require().NotEmpty(events)
		var payload models.CredentialRevokedPayload
		s.Require().NoError(events[len(events)-1].DecodePayload(&payload))
		s.Equal("admin", payload.CallerRole)
	})

	s.Run("stranger cannot revoke", func() {
		other := testutil.NewSigner(s.T())
		s.issue(other.Address, time.Time{})
		_, err := s.service.Revoke(s.as(s.stranger), s.stranger.Address, other.Address, "")
		s.Require().True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("reason over 200 characters is a validation error", func() {
		other := testutil.NewSigner(s.T())
		s.issue(other.Address, time.Time{})
		_, err := s.service.Revoke(s.as(s.issuer), s.issuer.Address, other.Address, strings.Repeat("r", 201))
		s.Require().True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestRefresh() {
	expiry := s.t0.Add(time.Hour)
	later := s.t0.Add(3 * time.Hour)

	s.Run("time-expired record refreshes and verifies again", func() {
		s.issue(s.holder.Address, expiry)
		before := s.network()

		record, err := s.service.Refresh(s.asAt(later, s.issuer), s.issuer.Address, s.holder.Address, later.Add(24*time.Hour))
		s.Require().NoError(err)
		s.Equal(models.CredentialStatusActive, record.Status)
		s.Equal(later, record.LastVerifiedAt)
		s.Equal(uint32(1), record.Version)

		_, err = s.service.Verify(s.asAt(later), s.holder.Address)
		s.Require().NoError(err)

		after := s.network()
		s.Equal(before.ActiveCredentials, after.ActiveCredentials)
		s.Equal(before.TotalCredentialsIssued, after.TotalCredentialsIssued)
	})

	s.Run("refresh to never-expiring", func() {
		record, err := s.service.Refresh(s.as(s.issuer), s.issuer.Address, s.holder.Address, time.Time{})
		s.Require().NoError(err)
		s.True(record.NeverExpires())
	})

	s.Run("new expiry must be in the future", func() {
		_, err := s.service.Refresh(s.asAt(later, s.issuer), s.issuer.Address, s.holder.Address, later)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("other issuer cannot refresh", func() {
		otherIssuer := testutil.NewSigner(s.T())
		_, err := s.service.RegisterIssuer(s.as(s.admin), s.admin.Address, otherIssuer.Address, "Other", "")
		s.Require().NoError(err)
		_, err = s.service.Refresh(s.as(otherIssuer), otherIssuer.Address, s.holder.Address, time.Time{})
		s.Require().True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("revoked record cannot be refreshed", func() {
		_, err := s.service.Revoke(s.as(s.issuer), s.issuer.Address, s.holder.Address, "fraud")
		s.Require().NoError(err)
		_, err = s.service.Refresh(s.as(s.issuer), s.issuer.Address, s.holder.Address, time.Time{})
		s.Require().True(dErrors.HasCode(err, dErrors.CodeInvalidState))

		record, err := s.service.GetCredential(context.Background(), s.holder.Address)
		s.Require().NoError(err)
		s.Equal(models.CredentialStatusRevoked, record.Status)
	})
}

// Every lifecycle operation, applied in every order that succeeds, only ever
// produces Active or Revoked records.
func (s *ServiceSuite) TestSuspendedIsUnreachable() {
	type step func(holder domain.Address) error
	issue := func(h domain.Address) error {
		_, err := s.service.Issue(s.as(s.issuer), IssueRequest{Issuer: s.issuer.Address, Holder: h, Type: models.CredentialTypeKYCFull, ExpiresAt: s.t0.Add(time.Hour)})
		return err
	}
	refresh := func(h domain.Address) error {
		_, err := s.service.Refresh(s.asAt(s.t0.Add(2*time.Hour), s.issuer), s.issuer.Address, h, time.Time{})
		return err
	}
	revokeIssuer := func(h domain.Address) error {
		_, err := s.service.Revoke(s.as(s.issuer), s.issuer.Address, h, "issuer")
		return err
	}
	revokeAdmin := func(h domain.Address) error {
		_, err := s.service.Revoke(s.as(s.admin), s.admin.Address, h, "admin")
		return err
	}
	ops := []step{issue, refresh, revokeIssuer, revokeAdmin}

	for _, a := range ops {
		for _, b := range ops {
			for _, c := range ops {
				holder := testutil.NewSigner(s.T()).Address
				for _, op := range []step{a, b, c} {
					_ = op(holder)
				}
				record, err := s.service.GetCredential(context.Background(), holder)
				if dErrors.HasCode(err, dErrors.CodeNotFound) {
					continue
				}
				s.Require().NoError(err)
				s.Contains([]models.CredentialStatus{models.CredentialStatusActive, models.CredentialStatusRevoked}, record.Status)
				s.NotEqual(models.CredentialStatusSuspended, record.Status)
			}
		}
	}
}

func (s *ServiceSuite) TestCache() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()
	cache := mocks.NewMockRecordCache(ctrl)
	svc := New(s.ledger, WithCache(cache))

	s.Run("hit is served without touching the ledger and re-checked against the clock", func() {
		ghost := testutil.NewSigner(s.T()).Address
		cached := &models.Record{
			Holder:    ghost,
			Issuer:    s.issuer.Address,
			Type:      models.CredentialTypeKYCBasic,
			Status:    models.CredentialStatusActive,
			ExpiresAt: s.t0.Add(time.Minute),
		}
		cache.EXPECT().Get(gomock.Any(), ghost).Return(cached, nil).Times(2)

		_, err := svc.Verify(s.as(), ghost)
		s.Require().NoError(err)
		_, err = svc.Verify(s.asAt(s.t0.Add(time.Hour)), ghost)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeExpired))
	})

	s.Run("miss loads from the ledger and populates the cache", func() {
		s.issue(s.holder.Address, time.Time{})
		cache.EXPECT().Get(gomock.Any(), s.holder.Address).Return(nil, sentinel.ErrNotFound)
		cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)

		record, err := svc.Verify(s.as(), s.holder.Address)
		s.Require().NoError(err)
		s.Equal(s.holder.Address, record.Holder)
	})

	s.Run("writes store the committed record", func() {
		cache.EXPECT().Set(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *models.Record) error {
			s.Equal(models.CredentialStatusRevoked, r.Status)
			s.Equal(uint64(2), r.Revision)
			return nil
		})
		_, err := svc.Revoke(s.as(s.issuer), s.issuer.Address, s.holder.Address, "fraud")
		s.Require().NoError(err)
	})

	s.Run("a failed write-through falls back to invalidation", func() {
		other := testutil.NewSigner(s.T()).Address
		s.issue(other, time.Time{})
		cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
		cache.EXPECT().Invalidate(gomock.Any(), other).Return(nil)
		_, err := svc.Revoke(s.as(s.issuer), s.issuer.Address, other, "fraud")
		s.Require().NoError(err)
	})
}

// revisionCache keeps the newest revision per holder. The first Set parks
// until release is closed.
type revisionCache struct {
	mu      sync.Mutex
	records map[domain.Address]models.Record
	parked  chan struct{}
	release chan struct{}
	sets    int
}

func newRevisionCache() *revisionCache {
	return &revisionCache{
		records: map[domain.Address]models.Record{},
		parked:  make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (c *revisionCache) Get(_ context.Context, holder domain.Address) (*models.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.records[holder]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &r, nil
}

func (c *revisionCache) Set(_ context.Context, record *models.Record) error {
	c.mu.Lock()
	c.sets++
	first := c.sets == 1
	c.mu.Unlock()
	if first {
		close(c.parked)
		<-c.release
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.records[record.Holder]; ok && cur.Revision >= record.Revision {
		return nil
	}
	c.records[record.Holder] = *record
	return nil
}

func (c *revisionCache) Invalidate(_ context.Context, holder domain.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.records, holder)
	return nil
}

func (s *ServiceSuite) TestRevokeDuringCacheFillIsNotUndone() {
	s.issue(s.holder.Address, time.Time{})
	cache := newRevisionCache()
	svc := New(s.ledger, WithCache(cache))

	loaded := make(chan error, 1)
	go func() {
		_, err := svc.Verify(s.as(), s.holder.Address)
		loaded <- err
	}()
	<-cache.parked

	_, err := svc.Revoke(s.as(s.issuer), s.issuer.Address, s.holder.Address, "sanctions hit")
	s.Require().NoError(err)
	close(cache.release)
	s.Require().NoError(<-loaded, "the read started before the revocation committed")

	_, err = svc.Verify(s.as(), s.holder.Address)
	s.Require().True(dErrors.HasCode(err, dErrors.CodeInvalidState), "got %v", err)

	record, err := svc.GetCredential(context.Background(), s.holder.Address)
	s.Require().NoError(err)
	s.Equal(models.CredentialStatusRevoked, record.Status)
	s.Equal(uint64(2), record.Revision)
}

func (s *ServiceSuite) TestMetricsFollowTheLifecycle() {
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	svc := New(s.ledger, WithMetrics(m))
	other := testutil.NewSigner(s.T()).Address

	_, err := svc.Issue(s.as(s.issuer), IssueRequest{Issuer: s.issuer.Address, Holder: s.holder.Address, Type: models.CredentialTypeKYCBasic})
	s.Require().NoError(err)
	_, err = svc.Issue(s.as(s.issuer), IssueRequest{Issuer: s.issuer.Address, Holder: other, Type: models.CredentialTypeKYCFull, ExpiresAt: s.t0.Add(time.Hour)})
	s.Require().NoError(err)

	_, err = svc.Verify(s.as(), s.holder.Address)
	s.Require().NoError(err)
	_, err = svc.Verify(s.asAt(s.t0.Add(2*time.Hour)), other)
	s.Require().Error(err)
	_, err = svc.Verify(s.as(), s.stranger.Address)
	s.Require().Error(err)

	_, err = svc.Refresh(s.asAt(s.t0.Add(2*time.Hour), s.issuer), s.issuer.Address, other, s.t0.Add(24*time.Hour))
	s.Require().NoError(err)
	_, err = svc.Revoke(s.as(s.admin), s.admin.Address, s.holder.Address, "court order")
	s.Require().NoError(err)

	s.Equal(float64(2), promtestutil.ToFloat64(m.CredentialsIssued))
	s.Equal(float64(1), promtestutil.ToFloat64(m.CredentialsRefreshed))
	s.Equal(float64(1), promtestutil.ToFloat64(m.CredentialsRevoked.WithLabelValues("admin")))
	s.Zero(promtestutil.ToFloat64(m.CredentialsRevoked.WithLabelValues("issuer")))
	s.Equal(float64(1), promtestutil.ToFloat64(m.Verifications.WithLabelValues("valid")))
	s.Equal(float64(1), promtestutil.ToFloat64(m.Verifications.WithLabelValues("expired")))
	s.Equal(float64(1), promtestutil.ToFloat64(m.Verifications.WithLabelValues("not_found")))
}
