// Package auth proves which wallet signed a request.
//
// Clients send a short-lived JWT signed with their ed25519 wallet key. The
// subject claim is the wallet address, which is also the verification key, so
// no key registry is needed.
package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"hubrwa/pkg/domain"
	dErrors "hubrwa/pkg/domain-errors"
	"hubrwa/pkg/platform/httputil"
	"hubrwa/pkg/requestcontext"
)

// TokenVerifier resolves a bearer token to the wallet that signed it.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (domain.Address, error)
}

// RequireSigner rejects requests without a valid signer token and records the
// signer on the request context for the ledger's signature check.
func RequireSigner(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}
			signer, err := verifier.Verify(ctx, token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid or expired token"))
				return
			}
			ctx = requestcontext.WithSigners(ctx, signer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
