// Package sessions issues and resolves opaque session tokens. Only the
// SHA-256 digest of a token is stored, under session:<digest>, and the
// record expires with the key.
package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophkms/internal/common"
	"github.com/dmitrijs2005/gophkms/internal/cryptox"
	"github.com/dmitrijs2005/gophkms/internal/server/kv"
)

const keyPrefix = "session:"

type Session struct {
	Email    string    `json:"email"`
	IssuedAt time.Time `json:"issued_at"`
}

type Manager struct {
	kv       kv.Store
	now      func() time.Time
	newToken func() (string, error)
}

func NewManager(store kv.Store) *Manager {
	return &Manager{kv: store, now: time.Now, newToken: cryptox.GenerateToken}
}

func key(token string) string {
	return keyPrefix + cryptox.TokenDigest(token)
}

// Issue creates a session for email valid for ttl. Every call returns a
// fresh token; earlier tokens stay valid until they expire.
func (m *Manager) Issue(ctx context.Context, email string, ttl time.Duration) (string, error) {
	token, err := m.newToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	raw, err := json.Marshal(Session{Email: email, IssuedAt: m.now().UTC()})
	if err != nil {
		return "", err
	}

	ok, err := m.kv.SetNX(ctx, key(token), raw, ttl)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: session token collision", common.ErrorInternal)
	}
	return token, nil
}

// Resolve returns the email bound to token. Unknown, expired and
// malformed tokens all yield common.ErrInvalidSession.
func (m *Manager) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", common.ErrInvalidSession
	}

	raw, err := m.kv.Get(ctx, key(token))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidSession
		}
		return "", err
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil || s.Email == "" {
		return "", common.ErrInvalidSession
	}
	return s.Email, nil
}

// Revoke drops the session behind token. Unknown tokens are ignored.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.kv.Delete(ctx, key(token))
}
