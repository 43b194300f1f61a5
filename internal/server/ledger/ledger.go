// Package ledger owns per-resource RSA key pairs and their access sets.
//
// A resource record (resource:<name>) is created once and never changes.
// Its access set (access:<name>) starts with the owner and only grows.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/gophkms/internal/common"
	"github.com/dmitrijs2005/gophkms/internal/cryptox"
	"github.com/dmitrijs2005/gophkms/internal/logging"
	"github.com/dmitrijs2005/gophkms/internal/server/kv"
)

const (
	resourcePrefix = "resource:"
	accessPrefix   = "access:"
)

type Record struct {
	Owner      string    `json:"owner"`
	PublicKey  string    `json:"public_key"`
	PrivateKey string    `json:"private_key"`
	CreatedAt  time.Time `json:"created_at"`
}

type Ledger struct {
	kv       kv.Store
	logger   logging.Logger
	bits     int
	now      func() time.Time
	generate func(bits int) (*cryptox.KeyPair, error)
}

func New(store kv.Store, bits int, logger logging.Logger) *Ledger {
	return &Ledger{
		kv:       store,
		logger:   logger.With("module", "ledger"),
		bits:     bits,
		now:      time.Now,
		generate: cryptox.GenerateRSAKeyPair,
	}
}

func resourceKey(name string) string { return resourcePrefix + name }
func accessKey(name string) string   { return accessPrefix + name }

func (l *Ledger) record(ctx context.Context, name string) (*Record, error) {
	raw, err := l.kv.Get(ctx, resourceKey(name))
	if err != nil {
		return nil, err
	}
	rec := &Record{}
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, fmt.Errorf("decode resource %q: %w", name, err)
	}
	return rec, nil
}

// IssueKeyPair generates a key pair for name owned by owner. Of concurrent
// callers for one name exactly one succeeds; the others get
// common.ErrResourceExists.
func (l *Ledger) IssueKeyPair(ctx context.Context, name, owner string) (*cryptox.KeyPair, error) {
	// Key generation is slow; skip it when the name is clearly taken.
	if _, err := l.kv.Get(ctx, resourceKey(name)); err == nil {
		return nil, common.ErrResourceExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	kp, err := l.generate(l.bits)
	if err != nil {
		return nil, fmt.Errorf("generate key pair: %w", err)
	}

	raw, err := json.Marshal(Record{
		Owner:      owner,
		PublicKey:  kp.Public,
		PrivateKey: kp.Private,
		CreatedAt:  l.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	ok, err := l.kv.SetNX(ctx, resourceKey(name), raw, 0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrResourceExists
	}

	if err := l.kv.SAdd(ctx, accessKey(name), owner); err != nil {
		// The owner is granted from the record, so the pair is still usable.
		l.logger.Warn(ctx, "owner not added to access set", "resource", name, "error", err)
	}

	return kp, nil
}

// PublicKey returns the public key of name without any authorization.
func (l *Ledger) PublicKey(ctx context.Context, name string) (string, error) {
	rec, err := l.record(ctx, name)
	if err != nil {
		return "", err
	}
	return rec.PublicKey, nil
}

// PrivateKey returns the private key of name if requester is the owner
// or in the access set.
func (l *Ledger) PrivateKey(ctx context.Context, name, requester string) (string, error) {
	rec, err := l.record(ctx, name)
	if err != nil {
		return "", err
	}

	if rec.Owner != requester {
		ok, err := l.kv.SIsMember(ctx, accessKey(name), requester)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", common.ErrAccessDenied
		}
	}

	return rec.PrivateKey, nil
}

// GrantAccess adds grantee to the access set of name. Only the owner may
// grant; granting twice is a no-op.
func (l *Ledger) GrantAccess(ctx context.Context, name, owner, grantee string) error {
	rec, err := l.record(ctx, name)
	if err != nil {
		return err
	}
	if rec.Owner != owner {
		return common.ErrPermissionDenied
	}
	return l.kv.SAdd(ctx, accessKey(name), grantee)
}

// Members lists everyone who may fetch the private key of name. Only the
// owner may list. The owner is always included and the result is sorted.
func (l *Ledger) Members(ctx context.Context, name, owner string) ([]string, error) {
	rec, err := l.record(ctx, name)
	if err != nil {
		return nil, err
	}
	if rec.Owner != owner {
		return nil, common.ErrPermissionDenied
	}

	members, err := l.kv.SMembers(ctx, accessKey(name))
	if err != nil {
		return nil, err
	}
	if !slices.Contains(members, rec.Owner) {
		members = append(members, rec.Owner)
		slices.Sort(members)
	}
	return members, nil
}
