package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"storefront/internal/model"
)

var (
	// ErrSessionNotFound is returned when a session has expired or been revoked.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionMismatch is returned when a token does not match its stored session.
	ErrSessionMismatch = errors.New("session does not match token")
)

// Session is the authenticated identity bound to a browser cookie.
type Session struct {
	ID        string    `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Remember  bool      `json:"remember"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Manager establishes, resolves and terminates sessions.
type Manager struct {
	tokens      *JWTService
	store       SessionStoreInterface
	ttl         time.Duration
	rememberTTL time.Duration
	now         func() time.Time
}

// NewManager creates a session manager. ttl applies to ordinary sessions and
// rememberTTL to sessions created with "remember me".
func NewManager(tokens *JWTService, store SessionStoreInterface, ttl, rememberTTL time.Duration) *Manager {
	return &Manager{
		tokens:      tokens,
		store:       store,
		ttl:         ttl,
		rememberTTL: rememberTTL,
		now:         time.Now,
	}
}

// Establish creates a session for the account and returns the cookie token.
func (m *Manager) Establish(ctx context.Context, account *model.Account, remember bool) (string, *Session, error) {
	ttl := m.ttl
	if remember {
		ttl = m.rememberTTL
	}
	now := m.now()
	session := &Session{
		ID:        generateSessionID(),
		AccountID: account.ID,
		Username:  account.Username,
		Email:     account.Email,
		Remember:  remember,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	token, err := m.tokens.GenerateSessionToken(session)
	if err != nil {
		return "", nil, fmt.Errorf("sign session: %w", err)
	}
	if err := m.store.Save(ctx, session, ttl); err != nil {
		return "", nil, fmt.Errorf("save session: %w", err)
	}
	return token, session, nil
}

// Resolve verifies the token and returns the live session it refers to.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	claims, err := m.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	session, err := m.store.Get(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if session.AccountID != claims.AccountID {
		return nil, ErrSessionMismatch
	}
	return session, nil
}

// Terminate revokes the session referenced by token. Invalid or expired tokens are a no-op.
func (m *Manager) Terminate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := m.tokens.ValidateToken(token)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, claims.ID)
}
