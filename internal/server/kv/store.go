// Package kv is the key-value substrate every server store is built on:
// single-key reads and writes with optional expiry, conditional create,
// atomic consume and grow-only string sets.
//
// Expired keys behave exactly like absent ones. Methods never span more
// than one key atomically, except Delete, which drops a key together
// with its set members.
package kv

import (
	"context"
	"time"
)

// Store is implemented by MemoryStore and PostgresStore.
//
// Get and GetDel return common.ErrorNotFound for absent or expired keys.
// A ttl of zero means the key never expires. Backend failures are
// wrapped with common.ErrUnavailable.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetNX stores value only if key is absent or expired and reports
	// whether it did. Of concurrent callers at most one gets true.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	// GetDel atomically reads and removes key.
	GetDel(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error

	SAdd(ctx context.Context, key, member string) error
	SIsMember(ctx context.Context, key, member string) (bool, error)
	// SMembers returns the set sorted; an unknown set is empty.
	SMembers(ctx context.Context, key string) ([]string, error)

	Ping(ctx context.Context) error
	Close() error
}

// Purger is implemented by stores that keep expired rows around until
// swept. PurgeExpired returns the number of keys removed.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}
