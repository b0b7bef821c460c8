// Package session manages the authenticated identity: restoring it from a
// persisted bearer token on startup, establishing it on login, and tearing
// it down on logout or any profile failure.
//
// The token claim is the source of truth for expiry. Its signature is NOT
// verified here: the storefront is a pure API consumer and the backend is
// the verifying party; the client only reads the claims it was handed.
package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/reservat/storefront-go/internal/api"
	"github.com/reservat/storefront-go/internal/types"
	"github.com/reservat/storefront-go/storage"
)

// Manager owns the session lifecycle. All methods are safe for concurrent
// use, though the UI serializes auth actions in practice.
type Manager struct {
	httpClient *http.Client
	baseURL    string
	tokens     *storage.TokenStore
	log        zerolog.Logger

	mu      sync.Mutex
	current *types.Session
}

// New constructs a Manager.
func New(httpClient *http.Client, baseURL string, tokens *storage.TokenStore, log zerolog.Logger) *Manager {
	return &Manager{
		httpClient: httpClient,
		baseURL:    baseURL,
		tokens:     tokens,
		log:        log,
	}
}

// claims are the token fields the client consumes.
type claims struct {
	UserID    string
	ExpiresAt time.Time
}

// decodeClaims reads the token without verifying its signature, matching
// the behaviour of the web client's jwt-decode.
func decodeClaims(token string) (*claims, error) {
	parser := jwt.NewParser()
	mc := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, mc); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	c := &claims{}
	if id, ok := mc["id"].(string); ok {
		c.UserID = id
	} else if sub, ok := mc["sub"].(string); ok {
		c.UserID = sub
	}
	if c.UserID == "" {
		return nil, fmt.Errorf("decode token: no subject claim")
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}

// Restore re-establishes the session from a persisted token, if any.
// Returns (nil, nil) when there is no token, or when the token is expired or
// undecodable — both are silently discarded. A decodable, unexpired token
// whose profile fetch fails forces logout and returns the error: no
// authenticated state without a valid profile.
func (m *Manager) Restore(ctx context.Context) (*types.User, error) {
	token, ok := m.tokens.Load(ctx)
	if !ok {
		return nil, nil
	}
	c, err := decodeClaims(token)
	if err != nil {
		m.log.Warn().Err(err).Msg("persisted token invalid, discarding")
		m.tokens.Clear(ctx)
		return nil, nil
	}
	if !c.ExpiresAt.IsZero() && time.Now().After(c.ExpiresAt) {
		m.tokens.Clear(ctx)
		return nil, nil
	}
	return m.establish(ctx, c)
}

// Login authenticates with the backend, persists the returned token with an
// expiry matching its claim, then fetches the profile. Failures are typed
// *errs.AuthError values; callers surface .Message to the user.
func (m *Manager) Login(ctx context.Context, email, password string) (*types.User, error) {
	token, err := api.Login(ctx, m.httpClient, m.baseURL, email, password)
	if err != nil {
		return nil, err
	}
	c, err := decodeClaims(token)
	if err != nil {
		m.log.Error().Err(err).Msg("login returned undecodable token")
		return nil, err
	}
	if err := m.tokens.Save(ctx, token, c.ExpiresAt); err != nil {
		m.log.Warn().Err(err).Msg("token persist failed, session will not survive restart")
	}
	return m.establish(ctx, c)
}

// establish fetches the profile for the decoded claims and installs the
// session. Any profile failure fails closed: token cleared, no session.
func (m *Manager) establish(ctx context.Context, c *claims) (*types.User, error) {
	user, err := api.GetUser(ctx, m.httpClient, m.baseURL, c.UserID)
	if err != nil {
		m.log.Error().Err(err).Str("user_id", c.UserID).Msg("profile fetch failed, forcing logout")
		m.Logout(ctx)
		return nil, err
	}

	m.mu.Lock()
	m.current = &types.Session{UserID: c.UserID, ExpiresAt: c.ExpiresAt, User: user}
	m.mu.Unlock()
	return user, nil
}

// Logout clears the persisted token and the in-memory identity. Idempotent.
func (m *Manager) Logout(ctx context.Context) {
	m.tokens.Clear(ctx)
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
}

// Current returns the active session, or ok=false when unauthenticated or
// the token claim has expired (expiry detection destroys the session).
func (m *Manager) Current() (*types.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, false
	}
	if m.current.Expired(time.Now()) {
		m.current = nil
		return nil, false
	}
	cp := *m.current
	return &cp, true
}
