package httptransport

import (
	"net/http"

	dErrors "hubrwa/pkg/domain-errors"
	"hubrwa/pkg/platform/httputil"
)

// handleFund is the development faucet.
func (h *Handler) handleFund(w http.ResponseWriter, r *http.Request) {
	if h.funder == nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeNotFound, "faucet is disabled"))
		return
	}
	var req fundRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Lamports == 0 {
		h.writeError(w, r, dErrors.New(dErrors.CodeValidation, "lamports must be positive"))
		return
	}
	if err := h.funder.Fund(r.Context(), req.Address, req.Lamports); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.InfoContext(r.Context(), "account funded",
		"address", req.Address.String(),
		"lamports", req.Lamports,
	)
	w.WriteHeader(http.StatusNoContent)
}

// handleListEvents returns the committed events whose subject is the given
// address, oldest first.
func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	if h.events == nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeNotFound, "event history is disabled"))
		return
	}
	subject, err := addressParam(r, "subject")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	events, err := h.events.ListBySubject(r.Context(), subject.String())
	if err != nil {
		h.writeError(w, r, dErrors.Wrap(err, dErrors.CodeInternal, "list events"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"events": events})
}
