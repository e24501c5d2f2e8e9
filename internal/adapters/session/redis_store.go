package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/lifelink/bloodlink/donor-community-service/internal/config"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/domain"
	"github.com/lifelink/bloodlink/donor-community-service/internal/core/ports"
)

const (
	sessionKeyPrefix = "session:"
	lockStripes      = 32
)

// RedisStore keeps one JSON-serialized User snapshot per session ID.
// Mutations of a single session are serialized through striped locks so
// two concurrent profile updates cannot lose writes.
type RedisStore struct {
	client ports.RedisClient
	cb     *gobreaker.CircuitBreaker
	ttl    time.Duration
	locks  [lockStripes]sync.Mutex
}

var _ ports.SessionStore = (*RedisStore)(nil)

func NewRedisStore(client ports.RedisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		cb:     config.NewCircuitBreaker("Redis-Session"),
		ttl:    ttl,
	}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (s *RedisStore) stripe(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	return &s.locks[h.Sum32()%lockStripes]
}

// Load reads the session snapshot. A missing record is anonymous. A
// corrupt record is deleted and also reported as anonymous; the store
// self-heals instead of failing the caller.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (*domain.User, error) {
	raw, err := s.cb.Execute(func() (interface{}, error) {
		val, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return val, err
	})
	if err != nil {
		return nil, fmt.Errorf("session load: %w", err)
	}

	payload := raw.(string)
	if payload == "" {
		return nil, nil
	}

	var user domain.User
	if err := json.Unmarshal([]byte(payload), &user); err != nil {
		log.Printf("session store: discarding corrupt record for session %s: %v", sessionID, err)
		_, _ = s.cb.Execute(func() (interface{}, error) {
			return nil, s.client.Del(ctx, sessionKey(sessionID)).Err()
		})
		return nil, nil
	}
	return &user, nil
}

// Persist writes the full snapshot with the session TTL.
func (s *RedisStore) Persist(ctx context.Context, sessionID string, user *domain.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session persist: %w", err)
	}
	_, err = s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Set(ctx, sessionKey(sessionID), string(payload), s.ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("session persist: %w", err)
	}
	return nil
}

// Clear removes the record. Clearing an absent session succeeds.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Del(ctx, sessionKey(sessionID)).Err()
	})
	if err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}

// Update runs apply on the current snapshot under the session's lock and
// persists the result. Anonymous sessions fail with ErrNotAuthenticated.
func (s *RedisStore) Update(ctx context.Context, sessionID string, apply func(*domain.User) error) (*domain.User, error) {
	mu := s.stripe(sessionID)
	mu.Lock()
	defer mu.Unlock()

	user, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotAuthenticated
	}
	if err := apply(user); err != nil {
		return nil, err
	}
	if err := s.Persist(ctx, sessionID, user); err != nil {
		return nil, err
	}
	return user, nil
}
