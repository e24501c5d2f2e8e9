package ports

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
)

// SessionStore is the single source of truth for "who is logged in".
// Load returns (nil, nil) for an anonymous session — including one whose
// stored record was corrupt; corruption is discarded, never surfaced.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (*domain.User, error)
	Persist(ctx context.Context, sessionID string, user *domain.User) error
	Clear(ctx context.Context, sessionID string) error

	// Update performs a read-modify-write of the session record under a
	// per-session lock, so concurrent mutations of one session cannot
	// lose updates. apply receives the current user (never nil; an
	// anonymous session fails with domain.ErrNotAuthenticated).
	Update(ctx context.Context, sessionID string, apply func(*domain.User) error) (*domain.User, error)
}

// RedisClient is the subset of redis.Client the adapters use. Declared
// here so tests can substitute an in-memory implementation.
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}
