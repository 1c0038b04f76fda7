// Package ratelimit throttles callers with a sliding window per key.
package ratelimit

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	dErrors "hubrwa/pkg/domain-errors"
	"hubrwa/pkg/platform/httputil"
	"hubrwa/pkg/platform/middleware/metadata"
	"hubrwa/pkg/requestcontext"
)

// KeyFunc picks the bucket a request is charged to. An empty key skips the
// limiter.
type KeyFunc func(r *http.Request) string

// ByClientIP charges requests to the client IP recorded by metadata.ClientMetadata.
func ByClientIP(r *http.Request) string {
	return "ip:" + metadata.GetClientIP(r.Context())
}

// BySigner charges requests to the first signer, falling back to the client IP.
func BySigner(r *http.Request) string {
	if signers := requestcontext.Signers(r.Context()); len(signers) > 0 {
		return "signer:" + signers[0].String()
	}
	return ByClientIP(r)
}

// Limit rejects requests over budget with 429 and sets the X-RateLimit headers.
// A nil window disables limiting.
func Limit(w *Window, key KeyFunc, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if w == nil {
			return next
		}
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(rw, r)
				return
			}
			res := w.Allow(k)
			setHeaders(rw, res)
			if !res.Allowed {
				retry := max(int(math.Ceil(time.Until(res.ResetAt).Seconds())), 1)
				rw.Header().Set("Retry-After", strconv.Itoa(retry))
				logger.WarnContext(r.Context(), "rate limit exceeded",
					"key", k,
					"path", r.URL.Path,
					"request_id", requestcontext.RequestID(r.Context()),
				)
				httputil.WriteError(rw, dErrors.New(dErrors.CodeRateLimited, "too many requests"))
				return
			}
			next.ServeHTTP(rw, r)
		})
	}
}

func setHeaders(w http.ResponseWriter, res Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
}
