package httptransport

import (
	"context"
	"net/http"

	settlementmodels "hubrwa/internal/settlement/models"
	settlementservice "hubrwa/internal/settlement/service"
	"hubrwa/pkg/domain"
	"hubrwa/pkg/platform/httputil"
)

// SettlementService is the settlement engine as the transport uses it.
type SettlementService interface {
	InitializeProperty(ctx context.Context, req settlementservice.PropertyRequest) (*settlementmodels.Property, error)
	SetPropertyActive(ctx context.Context, authority, mint domain.Address, active bool) (*settlementmodels.Property, error)
	InitializeVault(ctx context.Context, authority, mint, seller domain.Address) (*settlementmodels.InvestmentVault, error)
	Invest(ctx context.Context, req settlementservice.InvestRequest) (*settlementservice.Receipt, error)
	GetProperty(ctx context.Context, mint domain.Address) (*settlementmodels.Property, error)
	GetVault(ctx context.Context, mint domain.Address) (*settlementmodels.InvestmentVault, error)
	GetHoldings(ctx context.Context, mint, owner domain.Address) (*settlementservice.Holdings, error)
}

type vaultResponse struct {
	*settlementmodels.InvestmentVault
	TotalValueLocked uint64 `json:"total_value_locked"`
}

func (h *Handler) handleInitializeProperty(w http.ResponseWriter, r *http.Request) {
	var req initializePropertyRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	property, err := h.settlement.InitializeProperty(r.Context(), settlementservice.PropertyRequest{
		Authority:   signer(r.Context()),
		Mint:        req.Mint,
		Name:        req.Name,
		Symbol:      req.Symbol,
		TotalSupply: req.TotalSupply,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, property)
}

func (h *Handler) handleSetPropertyStatus(w http.ResponseWriter, r *http.Request) {
	mint, err := addressParam(r, "mint")
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
	property, err := h.settlement.SetPropertyActive(r.Context(), signer(r.Context()), mint, active)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, property)
}

func (h *Handler) handleInitializeVault(w http.ResponseWriter, r *http.Request) {
	mint, err := addressParam(r, "mint")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req initializeVaultRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	vault, err := h.settlement.InitializeVault(r.Context(), signer(r.Context()), mint, req.Seller)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, vaultResponse{InvestmentVault: vault, TotalValueLocked: vault.TotalValueLocked()})
}

func (h *Handler) handleInvest(w http.ResponseWriter, r *http.Request) {
	mint, err := addressParam(r, "mint")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req investRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	invest := settlementservice.InvestRequest{
		Investor:       signer(r.Context()),
		Mint:           mint,
		Treasury:       settlementmodels.PlatformTreasury,
		Amount:         req.Amount,
		ExpectedTokens: req.ExpectedTokens,
	}
	if req.Treasury != nil {
		invest.Treasury = *req.Treasury
	}
	if req.Seller != nil {
		invest.Seller = *req.Seller
	}
	receipt, err := h.settlement.Invest(r.Context(), invest)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, receipt)
}

func (h *Handler) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	mint, err := addressParam(r, "mint")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	property, err := h.settlement.GetProperty(r.Context(), mint)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, property)
}

func (h *Handler) handleGetVault(w http.ResponseWriter, r *http.Request) {
	mint, err := addressParam(r, "mint")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	vault, err := h.settlement.GetVault(r.Context(), mint)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, vaultResponse{InvestmentVault: vault, TotalValueLocked: vault.TotalValueLocked()})
}

func (h *Handler) handleGetHoldings(w http.ResponseWriter, r *http.Request) {
	mint, err := addressParam(r, "mint")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	owner, err := addressParam(r, "owner")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	holdings, err := h.settlement.GetHoldings(r.Context(), mint, owner)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, holdings)
}
