// Package httptransport exposes one HTTP command per ledger operation.
//
// Handlers stay thin: decode, resolve the acting signer, call a service and
// map its coded error. Mutating routes require a signer token; reads are
// public because all ledger state is public.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"hubrwa/internal/platform/metrics"
	"hubrwa/pkg/domain"
	dErrors "hubrwa/pkg/domain-errors"
	audit "hubrwa/pkg/platform/audit"
	"hubrwa/pkg/platform/httputil"
	"hubrwa/pkg/platform/middleware/admin"
	"hubrwa/pkg/platform/middleware/auth"
	"hubrwa/pkg/platform/middleware/metadata"
	"hubrwa/pkg/platform/middleware/ratelimit"
	"hubrwa/pkg/platform/middleware/request"
	"hubrwa/pkg/platform/middleware/requesttime"
	"hubrwa/pkg/requestcontext"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Funder credits lamports outside any instruction.
type Funder interface {
	Fund(ctx context.Context, addr domain.Address, amount uint64) error
}

// EventLog lists committed ledger events by subject.
type EventLog interface {
	ListBySubject(ctx context.Context, subject string) ([]audit.Event, error)
}

// Handler holds the services behind the routes.
type Handler struct {
	credentials CredentialService
	settlement  SettlementService
	funder      Funder
	events      EventLog
	logger      *slog.Logger
}

type HandlerOption func(*Handler)

// WithFunder enables the development faucet.
func WithFunder(f Funder) HandlerOption {
	return func(h *Handler) {
		h.funder = f
	}
}

// WithEventLog enables the event history route.
func WithEventLog(events EventLog) HandlerOption {
	return func(h *Handler) {
		h.events = events
	}
}

func NewHandler(credentials CredentialService, settlement SettlementService, logger *slog.Logger, opts ...HandlerOption) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		credentials: credentials,
		settlement:  settlement,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RouterConfig carries the transport-level settings.
type RouterConfig struct {
	Tokens     auth.TokenVerifier
	AdminToken string
	Timeout    time.Duration
	Metrics    *metrics.Metrics
	// ReadLimit throttles public reads per client IP; WriteLimit throttles
	// signed requests per signer. Nil disables either.
	ReadLimit  *ratelimit.Window
	WriteLimit *ratelimit.Window
}

// NewRouter wires every route.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(request.Logger(h.logger))
	r.Use(cfg.Metrics.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Timeout))
	r.Use(requesttime.Middleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Group(func(public chi.Router) {
			public.Use(ratelimit.Limit(cfg.ReadLimit, ratelimit.ByClientIP, h.logger))

			public.Get("/network", h.handleGetNetwork)
			public.Get("/issuers/{authority}", h.handleGetIssuer)
			public.Get("/credentials/{holder}", h.handleGetCredential)
			public.Get("/credentials/{holder}/verify", h.handleVerifyCredential)
			public.Get("/properties/{mint}", h.handleGetProperty)
			public.Get("/properties/{mint}/vault", h.handleGetVault)
			public.Get("/properties/{mint}/holdings/{owner}", h.handleGetHoldings)
			public.Get("/events/{subject}", h.handleListEvents)
		})

		v1.Group(func(signed chi.Router) {
			signed.Use(auth.RequireSigner(cfg.Tokens, h.logger))
			signed.Use(ratelimit.Limit(cfg.WriteLimit, ratelimit.BySigner, h.logger))

			signed.Post("/network", h.handleInitializeNetwork)
			signed.Put("/network/status", h.handleSetNetworkStatus)
			signed.Post("/issuers", h.handleRegisterIssuer)
			signed.Put("/issuers/{authority}/status", h.handleSetIssuerStatus)

			signed.Post("/credentials", h.handleIssueCredential)
			signed.Post("/credentials/{holder}/revoke", h.handleRevokeCredential)
			signed.Post("/credentials/{holder}/refresh", h.handleRefreshCredential)

			signed.Post("/properties", h.handleInitializeProperty)
			signed.Put("/properties/{mint}/status", h.handleSetPropertyStatus)
			signed.Post("/properties/{mint}/vault", h.handleInitializeVault)
			signed.Post("/properties/{mint}/invest", h.handleInvest)
		})

		v1.Group(func(ops chi.Router) {
			ops.Use(admin.RequireAdminToken(cfg.AdminToken, h.logger))
			ops.Post("/dev/fund", h.handleFund)
		})
	})
	return r
}

// signer is the wallet that signed the request. RequireSigner guarantees one.
func signer(ctx context.Context) domain.Address {
	signers := requestcontext.Signers(ctx)
	if len(signers) == 0 {
		return domain.Address{}
	}
	return signers[0]
}

func addressParam(r *http.Request, name string) (domain.Address, error) {
	addr, err := domain.ParseAddress(chi.URLParam(r, name))
	if err != nil {
		return domain.Address{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+name+" address")
	}
	return addr, nil
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		ctx := r.Context()
		h.logger.ErrorContext(ctx, "request failed",
			"path", r.URL.Path,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	httputil.WriteError(w, err)
}
