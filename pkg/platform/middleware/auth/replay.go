package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sasha-s/go-deadlock"
)

// ErrTokenReused is returned when a token ID has already been presented.
var ErrTokenReused = errors.New("token already used")

// ReplayGuard records token IDs until their expiry. Claim returns
// ErrTokenReused for an ID it has seen before.
type ReplayGuard interface {
	Claim(ctx context.Context, id string, expiresAt time.Time) error
}

// MemoryReplayGuard tracks seen token IDs in process memory. Expired IDs are
// dropped by a Claim at most once per sweep interval.
type MemoryReplayGuard struct {
	mu        deadlock.Mutex
	seen      map[string]time.Time
	now       func() time.Time
	lastSweep time.Time
}

const replaySweepInterval = time.Minute

func NewMemoryReplayGuard() *MemoryReplayGuard {
	return &MemoryReplayGuard{seen: make(map[string]time.Time), now: time.Now}
}

func (g *MemoryReplayGuard) Claim(_ context.Context, id string, expiresAt time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	if until, ok := g.seen[id]; ok && now.Before(until) {
		return ErrTokenReused
	}
	if now.Sub(g.lastSweep) >= replaySweepInterval {
		for seenID, until := range g.seen {
			if !now.Before(until) {
				delete(g.seen, seenID)
			}
		}
		g.lastSweep = now
	}
	g.seen[id] = expiresAt
	return nil
}

const replayKeyPrefix = "hubrwa:jti:"

// RedisReplayGuard shares seen token IDs across server instances.
type RedisReplayGuard struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisReplayGuard(client *redis.Client) *RedisReplayGuard {
	return &RedisReplayGuard{client: client, now: time.Now}
}

func (g *RedisReplayGuard) Claim(ctx context.Context, id string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(g.now())
	if ttl < time.Second {
		ttl = time.Second
	}
	ok, err := g.client.SetNX(ctx, replayKeyPrefix+id, 1, ttl).Result()
	if err != nil {
		return fmt.Errorf("record token id: %w", err)
	}
	if !ok {
		return ErrTokenReused
	}
	return nil
}
