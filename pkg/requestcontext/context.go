// Package requestcontext provides HTTP-independent context accessors for
// call-scoped values.
//
// Middleware sets values; the ledger and services read them. Keeping this
// package free of net/http lets services import only what they need.
//
// Usage in the ledger (read values):
//
//	now := requestcontext.Now(ctx)
//	if !requestcontext.HasSigner(ctx, admin) { ... }
//
// Usage in middleware (set values):
//
//	ctx = requestcontext.WithSigners(ctx, signer)
//	ctx = requestcontext.WithRequestID(ctx, requestID)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"slices"
	"time"

	"hubrwa/pkg/domain"
)

type (
	signersKey     struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeySigners     = signersKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// -----------------------------------------------------------------------------
// Signers
// -----------------------------------------------------------------------------

// Signers returns the addresses whose signatures were verified for this call.
func Signers(ctx context.Context) []domain.Address {
	if s, ok := ctx.Value(ContextKeySigners).([]domain.Address); ok {
		return s
	}
	return nil
}

// WithSigners adds verified signers to the context, keeping any already present.
func WithSigners(ctx context.Context, signers ...domain.Address) context.Context {
	merged := append(slices.Clone(Signers(ctx)), signers...)
	return context.WithValue(ctx, ContextKeySigners, merged)
}

// HasSigner reports whether addr signed this call.
func HasSigner(ctx context.Context, addr domain.Address) bool {
	return slices.Contains(Signers(ctx), addr)
}

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// -----------------------------------------------------------------------------
// Request time
// -----------------------------------------------------------------------------

// Now retrieves the call-scoped time from context, truncated to whole seconds
// (the ledger clock's resolution). Falls back to time.Now() if not set.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t.Truncate(time.Second)
	}
	return time.Now().Truncate(time.Second)
}

// WithTime injects a specific time into a context.
// Useful for:
//   - Service unit tests that need to move the clock past an expiry
//   - Workers that need consistent time within a batch operation
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
