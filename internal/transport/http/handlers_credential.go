package httptransport

import (
	"context"
	"net/http"
	"time"

	credmodels "hubrwa/internal/credential/models"
	credservice "hubrwa/internal/credential/service"
	"hubrwa/pkg/domain"
	"hubrwa/pkg/platform/httputil"
)

// CredentialService is the credential registry as the transport uses it.
type CredentialService interface {
	InitializeNetwork(ctx context.Context, admin domain.Address, name string, feeLamports uint64) (*credmodels.Network, error)
	SetNetworkActive(ctx context.Context, admin domain.Address, active bool) (*credmodels.Network, error)
	RegisterIssuer(ctx context.Context, admin, authority domain.Address, name, uri string) (*credmodels.Issuer, error)
	SetIssuerActive(ctx context.Context, admin, authority domain.Address, active bool) (*credmodels.Issuer, error)
	GetNetwork(ctx context.Context) (*credmodels.Network, error)
	GetIssuer(ctx context.Context, authority domain.Address) (*credmodels.Issuer, error)
	Issue(ctx context.Context, req credservice.IssueRequest) (*credmodels.Record, error)
	Revoke(ctx context.Context, caller, holder domain.Address, reason string) (*credmodels.Record, error)
	Refresh(ctx context.Context, issuerAuthority, holder domain.Address, newExpiry time.Time) (*credmodels.Record, error)
	Verify(ctx context.Context, holder domain.Address) (*credmodels.Record, error)
	GetCredential(ctx context.Context, holder domain.Address) (*credmodels.Record, error)
}

type verifyResponse struct {
	Valid  bool               `json:"valid"`
	Record *credmodels.Record `json:"credential"`
}

func (h *Handler) handleInitializeNetwork(w http.ResponseWriter, r *http.Request) {
	var req initializeNetworkRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	network, err := h.credentials.InitializeNetwork(r.Context(), signer(r.Context()), req.Name, req.FeeLamports)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, network)
}

func (h *Handler) handleSetNetworkStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	active, err := req.active()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	network, err := h.credentials.SetNetworkActive(r.Context(), signer(r.Context()), active)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, network)
}

func (h *Handler) handleGetNetwork(w http.ResponseWriter, r *http.Request) {
	network, err := h.credentials.GetNetwork(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, network)
}

func (h *Handler) handleRegisterIssuer(w http.ResponseWriter, r *http.Request) {
	var req registerIssuerRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	issuer, err := h.credentials.RegisterIssuer(r.Context(), signer(r.Context()), req.Authority, req.Name, req.URI)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, issuer)
}

func (h *Handler) handleSetIssuerStatus(w http.ResponseWriter, r *http.Request) {
	authority, err := addressParam(r, "authority")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req statusRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	active, err := req.active()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	issuer, err := h.credentials.SetIssuerActive(r.Context(), signer(r.Context()), authority, active)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, issuer)
}

func (h *Handler) handleGetIssuer(w http.ResponseWriter, r *http.Request) {
	authority, err := addressParam(r, "authority")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	issuer, err := h.credentials.GetIssuer(r.Context(), authority)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, issuer)
}

func (h *Handler) handleIssueCredential(w http.ResponseWriter, r *http.Request) {
	var req issueCredentialRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	credentialType, expiresAt, err := req.parse()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	record, err := h.credentials.Issue(r.Context(), credservice.IssueRequest{
		Issuer:      signer(r.Context()),
		Holder:      req.Holder,
		Type:        credentialType,
		ExpiresAt:   expiresAt,
		MetadataURI: req.MetadataURI,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) handleRevokeCredential(w http.ResponseWriter, r *http.Request) {
	holder, err := addressParam(r, "holder")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req revokeCredentialRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	record, err := h.credentials.Revoke(r.Context(), signer(r.Context()), holder, req.Reason)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleRefreshCredential(w http.ResponseWriter, r *http.Request) {
	holder, err := addressParam(r, "holder")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req refreshCredentialRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	expiresAt, err := unixTime(req.ExpiresAt)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	record, err := h.credentials.Refresh(r.Context(), signer(r.Context()), holder, expiresAt)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleGetCredential(w http.ResponseWriter, r *http.Request) {
	holder, err := addressParam(r, "holder")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	record, err := h.credentials.GetCredential(r.Context(), holder)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

// handleVerifyCredential answers 200 only for a currently valid credential;
// lapsed and inactive credentials surface as their coded errors.
func (h *Handler) handleVerifyCredential(w http.ResponseWriter, r *http.Request) {
	holder, err := addressParam(r, "holder")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	record, err := h.credentials.Verify(r.Context(), holder)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, verifyResponse{Valid: true, Record: record})
}
