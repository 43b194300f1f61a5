package sessions

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophkms/internal/common"
	"github.com/dmitrijs2005/gophkms/internal/cryptox"
	"github.com/dmitrijs2005/gophkms/internal/server/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueResolve(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	m := NewManager(store)

	token, err := m.Issue(ctx, "a@x.io", time.Minute)
	require.NoError(t, err)
	assert.Len(t, token, 64)

	email, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", email)

	_, err = store.Get(ctx, "session:"+token)
	require.ErrorIs(t, err, common.ErrorNotFound, "raw token must not be a storage key")
	_, err = store.Get(ctx, "session:"+cryptox.TokenDigest(token))
	require.NoError(t, err)
}

func TestManager_IndependentTokens(t *testing.T) {
	ctx := context.Background()
	m := NewManager(kv.NewMemoryStore())

	t1, err := m.Issue(ctx, "a@x.io", time.Minute)
	require.NoError(t, err)
	t2, err := m.Issue(ctx, "a@x.io", time.Minute)
	require.NoError(t, err)
	require.NotEqual(t, t1, t2)

	for _, tok := range []string{t1, t2} {
		email, err := m.Resolve(ctx, tok)
		require.NoError(t, err)
		assert.Equal(t, "a@x.io", email)
	}
}

func TestManager_ResolveInvalid(t *testing.T) {
	ctx := context.Background()
	m := NewManager(kv.NewMemoryStore())

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "never issued", token: strings.Repeat("ab", 32)},
		{name: "garbage", token: "not a token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Resolve(ctx, tt.token)
			require.ErrorIs(t, err, common.ErrInvalidSession)
		})
	}
}

func TestManager_Expiry(t *testing.T) {
	ctx := context.Background()
	m := NewManager(kv.NewMemoryStore())

	token, err := m.Issue(ctx, "a@x.io", time.Millisecond)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = m.Resolve(ctx, token)
	require.ErrorIs(t, err, common.ErrInvalidSession)
}

func TestManager_Revoke(t *testing.T) {
	ctx := context.Background()
	m := NewManager(kv.NewMemoryStore())

	token, err := m.Issue(ctx, "a@x.io", time.Minute)
	require.NoError(t, err)
	require.NoError(t, m.Revoke(ctx, token))

	_, err = m.Resolve(ctx, token)
	require.ErrorIs(t, err, common.ErrInvalidSession)
	require.NoError(t, m.Revoke(ctx, ""))
}

func TestManager_TokenCollision(t *testing.T) {
	ctx := context.Background()
	m := NewManager(kv.NewMemoryStore())
	m.newToken = func() (string, error) { return "fixed", nil }

	_, err := m.Issue(ctx, "a@x.io", time.Minute)
	require.NoError(t, err)

	_, err = m.Issue(ctx, "b@x.io", time.Minute)
	require.ErrorIs(t, err, common.ErrorInternal)

	email, err := m.Resolve(ctx, "fixed")
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", email, "a collision must not rebind a live token")
}
