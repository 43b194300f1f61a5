// Package challenges keeps one pending one-time-code challenge per email
// and track. Starting a challenge replaces whatever was pending for the
// email on that track; checking one consumes it whether the code matched
// or not.
package challenges

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

// Track is the key namespace of a challenge family. Tracks never share
// records.
type Track string

const (
	TrackRegistration Track = "pending_registration"
	TrackLogin        Track = "pending_login"
)

type record struct {
	Code    string `json:"code"`
	Payload string `json:"payload,omitempty"`
}

type Store struct {
	kv       kv.Store
	track    Track
	generate func() (string, error)
}

func NewStore(store kv.Store, track Track) *Store {
	return &Store{kv: store, track: track, generate: cryptox.GenerateCode}
}

func (s *Store) key(email string) string {
	return string(s.track) + ":" + email
}

// Start opens a challenge for email carrying payload and returns the new
// code. Any earlier challenge for the email on this track is replaced.
func (s *Store) Start(ctx context.Context, email, payload string, ttl time.Duration) (string, error) {
	code, err := s.generate()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	raw, err := json.Marshal(record{Code: code, Payload: payload})
	if err != nil {
		return "", err
	}

	if err := s.kv.Set(ctx, s.key(email), raw, ttl); err != nil {
		return "", err
	}
	return code, nil
}

// Check consumes the pending challenge for email and returns its payload
// when code matches. It returns common.ErrNoPending if nothing is pending
// (or it expired) and common.ErrCodeMismatch otherwise; in both cases no
// challenge remains.
func (s *Store) Check(ctx context.Context, email, code string) (string, error) {
	raw, err := s.kv.GetDel(ctx, s.key(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrNoPending
		}
		return "", err
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return "", fmt.Errorf("decode challenge: %w", err)
	}

	if !cryptox.CodesEqual(rec.Code, code) {
		return "", common.ErrCodeMismatch
	}
	return rec.Payload, nil
}

func (s *Store) Pending(ctx context.Context, email string) (bool, error) {
	_, err := s.kv.Get(ctx, s.key(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
