package users

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophkms/internal/common"
	"github.com/dmitrijs2005/gophkms/internal/server/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVRepository_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository(kv.NewMemoryStore())
	fixed := time.Date(2025, 5, 5, 5, 5, 5, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	ok, err := repo.Exists(ctx, "a@x.io")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.PasswordHash(ctx, "a@x.io")
	require.ErrorIs(t, err, common.ErrorNotFound)

	u, err := repo.Create(ctx, "a@x.io", "$argon2id$hash")
	require.NoError(t, err)
	assert.Equal(t, &User{Email: "a@x.io", PasswordHash: "$argon2id$hash", CreatedAt: fixed}, u)

	ok, err = repo.Exists(ctx, "a@x.io")
	require.NoError(t, err)
	assert.True(t, ok)

	hash, err := repo.PasswordHash(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, "$argon2id$hash", hash)
}

func TestKVRepository_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository(kv.NewMemoryStore())

	_, err := repo.Create(ctx, "a@x.io", "h1")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "a@x.io", "h2")
	require.ErrorIs(t, err, common.ErrUserExists)

	hash, _ := repo.PasswordHash(ctx, "a@x.io")
	assert.Equal(t, "h1", hash, "first account must be kept")
}

func TestKVRepository_CreateConcurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository(kv.NewMemoryStore())

	var created atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Create(ctx, "race@x.io", "h"); err == nil {
				created.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
}

type failingStore struct {
	kv.Store
}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, common.ErrUnavailable
}

func TestKVRepository_ExistsPropagatesStoreErrors(t *testing.T) {
	repo := NewKVRepository(failingStore{})

	_, err := repo.Exists(context.Background(), "a@x.io")
	require.True(t, errors.Is(err, common.ErrUnavailable))
}
