//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"hubrwa/internal/credential/models"
	"hubrwa/pkg/domain"
	"hubrwa/pkg/platform/sentinel"
	"hubrwa/pkg/testutil/containers"

	"github.com/stretchr/testify/suite"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *RedisCache
}

func TestRedisCacheSuite(t *testing.T) {
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.cache = NewRedisCache(s.redis.Client, WithTTL(time.Minute))
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestRoundTrip() {
	ctx := context.Background()
	holder, _ := domain.Derive([]byte("holder"))
	issuer, _ := domain.Derive([]byte("issuer"))
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	record, err := models.NewRecord(holder, issuer, models.CredentialTypeKYCFull, now.Add(time.Hour), "ipfs://x", now)
	s.Require().NoError(err)

	s.Run("miss before set", func() {
		_, err := s.cache.Get(ctx, holder)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("hit after set", func() {
		s.Require().NoError(s.cache.Set(ctx, record))
		got, err := s.cache.Get(ctx, holder)
		s.Require().NoError(err)
		s.Equal(record.Holder, got.Holder)
		s.True(record.ExpiresAt.Equal(got.ExpiresAt))
		s.Equal(models.CredentialStatusActive, got.Status)
	})

	s.Run("miss after invalidate", func() {
		s.Require().NoError(s.cache.Invalidate(ctx, holder))
		_, err := s.cache.Get(ctx, holder)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *RedisCacheSuite) TestOlderRevisionDoesNotReplaceNewer() {
	ctx := context.Background()
	holder, _ := domain.Derive([]byte("holder"))
	issuer, _ := domain.Derive([]byte("issuer"))
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	loaded, err := models.NewRecord(holder, issuer, models.CredentialTypeKYCBasic, time.Time{}, "", now)
	s.Require().NoError(err)
	revoked := *loaded
	revoked.ApplyRevocation("sanctions hit")

	s.Require().NoError(s.cache.Set(ctx, &revoked))
	s.Require().NoError(s.cache.Set(ctx, loaded))

	got, err := s.cache.Get(ctx, holder)
	s.Require().NoError(err)
	s.Equal(models.CredentialStatusRevoked, got.Status)
	s.Equal(uint64(2), got.Revision)

	ttl, err := s.redis.Client.PTTL(ctx, key(holder)).Result()
	s.Require().NoError(err)
	s.Positive(ttl)
}
