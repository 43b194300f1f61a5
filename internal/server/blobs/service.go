package blobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gophkms/internal/common"
	"github.com/dmitrijs2005/gophkms/internal/logging"
)

// Object is an encrypted payload as the client produced it: data sealed
// with a file key, that key wrapped for the resource's public key, and
// the nonce used for the data.
type Object struct {
	EncryptedData []byte `json:"encrypted_data"`
	EncryptedKey  []byte `json:"encrypted_key"`
	IV            []byte `json:"iv"`
}

// SessionResolver maps a session token to an email.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// Service is the data service: session-gated write-once upload and
// download of encrypted objects.
type Service struct {
	store    Store
	sessions SessionResolver
	logger   logging.Logger
}

func NewService(store Store, sessions SessionResolver, logger logging.Logger) *Service {
	return &Service{store: store, sessions: sessions, logger: logger.With("module", "blobs")}
}

func (s *Service) Upload(ctx context.Context, sid, name string, obj *Object) error {
	email, err := s.sessions.Resolve(ctx, sid)
	if err != nil {
		return err
	}
	if name == "" || obj == nil || len(obj.EncryptedData) == 0 || len(obj.EncryptedKey) == 0 {
		return common.ErrInvalidArgument
	}

	raw, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	if err := s.store.Put(ctx, name, raw); err != nil {
		return err
	}

	s.logger.Info(ctx, "blob stored", "user", email, "resource", name, "size", len(obj.EncryptedData))
	return nil
}

func (s *Service) Download(ctx context.Context, sid, name string) (*Object, error) {
	email, err := s.sessions.Resolve(ctx, sid)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, common.ErrInvalidArgument
	}

	raw, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	obj := &Object{}
	if err := json.Unmarshal(raw, obj); err != nil {
		return nil, fmt.Errorf("decode blob %q: %w", name, err)
	}

	s.logger.Info(ctx, "blob retrieved", "user", email, "resource", name)
	return obj, nil
}
