// Package session implements the server-side session mechanism the API relies
// on for authentication: an opaque cookie value mapped to a small identity
// payload in Redis. The core never sees sessions; it only receives the
// resolved actor and authenticated flag.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Session is the persisted identity payload. Role is captured at login time;
// a directory role change takes effect on the next login.
type Session struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Role          string    `json:"role"`
	Authenticated bool      `json:"authenticated"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// Store persists sessions keyed by their opaque id.
type Store interface {
	Set(ctx context.Context, id string, s Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// Manager creates, resolves and revokes sessions against a Store.
type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{store: store, ttl: ttl}
}

// Create opens a session for the given identity and returns it.
func (m *Manager) Create(ctx context.Context, userID, role string) (*Session, error) {
	now := time.Now().UTC()
	s := Session{
		ID:            "ses_" + randomHex(32),
		UserID:        userID,
		Role:          role,
		Authenticated: true,
		CreatedAt:     now,
		ExpiresAt:     now.Add(m.ttl),
	}
	if err := m.store.Set(ctx, s.ID, s, m.ttl); err != nil {
		return nil, err
	}
	return &s, nil
}

// Get resolves a session id. Expired or unknown ids yield ErrNotFound.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	return m.store.Get(ctx, id)
}

// Delete revokes a session. Revoking an unknown id is not an error.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return m.store.Delete(ctx, id)
}

func randomHex(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
