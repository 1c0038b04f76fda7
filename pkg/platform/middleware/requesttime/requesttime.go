// Package requesttime pins one clock reading per HTTP request.
package requesttime

import (
	"net/http"
	"time"

	"hubrwa/pkg/requestcontext"
)

// Middleware records the time the request arrived. Every instruction run by
// the request reads this value instead of the wall clock.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
