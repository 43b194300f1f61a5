// Package users is the identity store: confirmed accounts keyed by
// email under user:<email>. Accounts are created once and never deleted.
package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophkms/internal/common"
	"github.com/dmitrijs2005/gophkms/internal/server/kv"
)

const keyPrefix = "user:"

type Repository interface {
	Exists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, email, passwordHash string) (*User, error)
	PasswordHash(ctx context.Context, email string) (string, error)
}

type KVRepository struct {
	store kv.Store
	now   func() time.Time
}

func NewKVRepository(store kv.Store) *KVRepository {
	return &KVRepository{store: store, now: time.Now}
}

func key(email string) string {
	return keyPrefix + email
}

func (r *KVRepository) get(ctx context.Context, email string) (*User, error) {
	raw, err := r.store.Get(ctx, key(email))
	if err != nil {
		return nil, err
	}
	u := &User{}
	if err := json.Unmarshal(raw, u); err != nil {
		return nil, fmt.Errorf("decode user %q: %w", email, err)
	}
	return u, nil
}

func (r *KVRepository) Exists(ctx context.Context, email string) (bool, error) {
	_, err := r.store.Get(ctx, key(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Create stores a new account. It returns common.ErrUserExists when the
// email is already taken, including by a concurrent Create.
func (r *KVRepository) Create(ctx context.Context, email, passwordHash string) (*User, error) {
	u := &User{Email: email, PasswordHash: passwordHash, CreatedAt: r.now().UTC()}

	raw, err := json.Marshal(u)
	if err != nil {
		return nil, err
	}

	ok, err := r.store.SetNX(ctx, key(email), raw, 0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrUserExists
	}
	return u, nil
}

// PasswordHash returns common.ErrorNotFound for unknown accounts.
func (r *KVRepository) PasswordHash(ctx context.Context, email string) (string, error) {
	u, err := r.get(ctx, email)
	if err != nil {
		return "", err
	}
	return u.PasswordHash, nil
}
