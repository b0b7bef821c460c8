package storage

import (
	"context"
	"encoding/json"
	"time"
)

const tokenKey = "access_token"

// TokenRecord is the persisted shape of the bearer token, carrying the same
// attributes the web client sets on its cookie.
type TokenRecord struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Secure    bool      `json:"secure"`
	SameSite  string    `json:"same_site"`
}

// TokenStore persists the bearer token through a Port. Expired or corrupt
// records read back as absent and are deleted on sight, so a stale token can
// never resurrect a session.
type TokenStore struct {
	port Port
}

// NewTokenStore wraps port.
func NewTokenStore(port Port) *TokenStore {
	return &TokenStore{port: port}
}

// Save stores token until expiresAt with secure/strict transport attributes.
func (s *TokenStore) Save(ctx context.Context, token string, expiresAt time.Time) error {
	rec := TokenRecord{
		Token:     token,
		ExpiresAt: expiresAt,
		Secure:    true,
		SameSite:  "strict",
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.port.Set(ctx, tokenKey, string(b))
}

// Load returns the stored token, or ok=false when absent, expired, corrupt
// or unreadable.
func (s *TokenStore) Load(ctx context.Context) (string, bool) {
	raw, ok, err := s.port.Get(ctx, tokenKey)
	if err != nil || !ok {
		return "", false
	}
	var rec TokenRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil || rec.Token == "" {
		_ = s.port.Delete(ctx, tokenKey)
		return "", false
	}
	if !rec.ExpiresAt.IsZero() && time.Now().After(rec.ExpiresAt) {
		_ = s.port.Delete(ctx, tokenKey)
		return "", false
	}
	return rec.Token, true
}

// Clear removes the stored token. Idempotent.
func (s *TokenStore) Clear(ctx context.Context) {
	_ = s.port.Delete(ctx, tokenKey)
}
