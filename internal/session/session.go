// Package session implements the server-side admin session store. Admin
// logins issue an opaque expiring token held here; privileged requests are
// validated against the store on every call, never against client state.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrSessionNotFound is returned for unknown or expired session tokens
var ErrSessionNotFound = errors.New("session not found or expired")

// Store holds admin sessions with a TTL
type Store interface {
	Create(ctx context.Context, email string, ttl time.Duration) (string, error)
	Validate(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

// newToken generates an opaque session token
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

const redisKeyPrefix = "admin_session:"

// RedisStore keeps sessions in Redis so they survive restarts and expire
// without any sweeper of our own.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Create issues a new session token for email
func (s *RedisStore) Create(ctx context.Context, email string, ttl time.Duration) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, redisKeyPrefix+token, email, ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

// Validate resolves a token back to the admin email
func (s *RedisStore) Validate(ctx context.Context, token string) (string, error) {
	email, err := s.client.Get(ctx, redisKeyPrefix+token).Result()
	if err == redis.Nil {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", err
	}
	return email, nil
}

// Revoke deletes a session
func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	return s.client.Del(ctx, redisKeyPrefix+token).Err()
}

type memorySession struct {
	email     string
	expiresAt time.Time
}

// MemoryStore is an in-process session store used in development and tests
// when no Redis is available.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
}

// NewMemoryStore creates an in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memorySession)}
}

// Create issues a new session token for email
func (s *MemoryStore) Create(ctx context.Context, email string, ttl time.Duration) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.sessions[token] = memorySession{email: email, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
	return token, nil
}

// Validate resolves a token back to the admin email
func (s *MemoryStore) Validate(ctx context.Context, token string) (string, error) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok || time.Now().After(sess.expiresAt) {
		return "", ErrSessionNotFound
	}
	return sess.email, nil
}

// Revoke deletes a session
func (s *MemoryStore) Revoke(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}
