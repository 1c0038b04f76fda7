package testutil

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"net/http"
	"testing"
	"time"

	"hubrwa/pkg/domain"
	"hubrwa/pkg/requestcontext"

	"github.com/stretchr/testify/require"
)

// Signer is a generated keypair standing in for a wallet in tests.
type Signer struct {
	Address    domain.Address
	PrivateKey ed25519.PrivateKey
}

// NewSigner generates a fresh keypair.
func NewSigner(t *testing.T) Signer {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	addr, err := domain.AddressFromPublicKey(pub)
	require.NoError(t, err)
	return Signer{Address: addr, PrivateKey: priv}
}

// SignedBy returns a context in which the given signers have signed.
func SignedBy(ctx context.Context, signers ...Signer) context.Context {
	addrs := make([]domain.Address, len(signers))
	for i, s := range signers {
		addrs[i] = s.Address
	}
	return requestcontext.WithSigners(ctx, addrs...)
}

// At pins the instruction clock to t.
func At(ctx context.Context, t time.Time) context.Context {
	return requestcontext.WithTime(ctx, t)
}

// WithSigners adds signer addresses to the request context.
// This simulates what the signature middleware does for verified requests.
func WithSigners(req *http.Request, signers ...Signer) *http.Request {
	return req.WithContext(SignedBy(req.Context(), signers...))
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
