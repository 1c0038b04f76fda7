package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hubrwa/pkg/domain"
)

func TestSigners(t *testing.T) {
	a, _ := domain.Derive([]byte("a"))
	b, _ := domain.Derive([]byte("b"))

	ctx := context.Background()
	assert.Empty(t, Signers(ctx))
	assert.False(t, HasSigner(ctx, a))

	ctx = WithSigners(ctx, a)
	child := WithSigners(ctx, b)

	assert.True(t, HasSigner(child, a))
	assert.True(t, HasSigner(child, b))
	assert.False(t, HasSigner(ctx, b), "parent context must not see child signers")
}

func TestNow(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 600, time.UTC)
	ctx := WithTime(context.Background(), fixed)
	assert.Equal(t, fixed.Truncate(time.Second), Now(ctx))
	assert.Zero(t, Now(context.Background()).Nanosecond())
}

func TestRequestID(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
	assert.Equal(t, "req-1", RequestID(WithRequestID(context.Background(), "req-1")))
}
