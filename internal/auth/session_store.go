package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/cache"
)

const sessionKeyPrefix = "session:"

// SessionStoreInterface defines the interface for session storage operations.
type SessionStoreInterface interface {
	Save(ctx context.Context, session *Session, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionStore keeps server-side session records in Redis.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// Save stores a session with TTL. Redis failures are reported so a login never
// hands out a cookie that cannot be resolved.
func (s *SessionStore) Save(ctx context.Context, session *Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.cache.Store(ctx, sessionKeyPrefix+session.ID, payload, ttl)
}

// Get returns the stored session, or ErrSessionNotFound if it expired or was revoked.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := s.cache.Lookup(ctx, sessionKeyPrefix+sessionID)
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if data == nil {
		return nil, ErrSessionNotFound
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete removes a session from Redis.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+sessionID)
}
