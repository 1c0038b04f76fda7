package auth

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"hubrwa/pkg/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultMaxAge = 5 * time.Minute

var (
	errTokenTooLong   = errors.New("token lifetime exceeds maximum age")
	errMissingTokenID = errors.New("token has no jti claim")
)

// SignerTokens issues and verifies EdDSA signer tokens. With a ReplayGuard
// configured each token is accepted once; without one a token can be replayed
// until it expires.
type SignerTokens struct {
	maxAge time.Duration
	now    func() time.Time
	replay ReplayGuard
}

type Option func(*SignerTokens)

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *SignerTokens) {
		s.now = now
	}
}

// WithReplayGuard rejects a token whose ID was already presented.
func WithReplayGuard(g ReplayGuard) Option {
	return func(s *SignerTokens) {
		s.replay = g
	}
}

func NewSignerTokens(maxAge time.Duration, opts ...Option) *SignerTokens {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	s := &SignerTokens{maxAge: maxAge, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a token for the wallet owning key.
func (s *SignerTokens) Issue(key ed25519.PrivateKey) (string, error) {
	signer, err := domain.AddressFromPublicKey(key.Public().(ed25519.PublicKey))
	if err != nil {
		return "", err
	}
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   signer.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.maxAge)),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(key)
}

// Verify checks the signature against the subject's own key and returns the
// subject address.
func (s *SignerTokens) Verify(ctx context.Context, token string) (domain.Address, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		addr, err := domain.ParseAddress(claims.Subject)
		if err != nil {
			return nil, fmt.Errorf("token subject: %w", err)
		}
		return addr.PublicKey(), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.Address{}, err
	}
	if claims.IssuedAt == nil || claims.ExpiresAt.Sub(claims.IssuedAt.Time) > s.maxAge {
		return domain.Address{}, errTokenTooLong
	}
	if s.replay != nil {
		if claims.ID == "" {
			return domain.Address{}, errMissingTokenID
		}
		if err := s.replay.Claim(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
			return domain.Address{}, err
		}
	}
	return domain.ParseAddress(claims.Subject)
}
