package services

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophkms/internal/api"
	"github.com/dmitrijs2005/gophkms/internal/client/client"
	"github.com/dmitrijs2005/gophkms/internal/cryptox"
	"github.com/dmitrijs2005/gophkms/internal/filex"
)

// KeyService covers resource keys and the encrypted blobs sealed with them.
type KeyService interface {
	Issue(ctx context.Context, resource string) (string, error)
	PublicKey(ctx context.Context, resource string) (string, error)
	PrivateKey(ctx context.Context, resource string) (string, error)
	Grant(ctx context.Context, resource, grantee string) (string, error)
	Members(ctx context.Context, resource string) ([]string, error)
	UploadFile(ctx context.Context, resource, path string) error
	DownloadFile(ctx context.Context, resource, path string) error
}

type keyService struct {
	client   client.Client
	readFile func(string) ([]byte, error)
	writeNew func(string, []byte) error
}

func NewKeyService(c client.Client) KeyService {
	return &keyService{client: c, readFile: os.ReadFile, writeNew: filex.WriteNew}
}

func (k *keyService) Issue(ctx context.Context, resource string) (string, error) {
	return k.client.IssueKeyPair(ctx, resource)
}

func (k *keyService) PublicKey(ctx context.Context, resource string) (string, error) {
	return k.client.FetchPublicKey(ctx, resource)
}

func (k *keyService) PrivateKey(ctx context.Context, resource string) (string, error) {
	return k.client.FetchPrivateKey(ctx, resource)
}

func (k *keyService) Grant(ctx context.Context, resource, grantee string) (string, error) {
	return k.client.GrantAccess(ctx, resource, grantee)
}

func (k *keyService) Members(ctx context.Context, resource string) ([]string, error) {
	return k.client.ListAccess(ctx, resource)
}

// UploadFile seals the file at path for the resource's public key and
// stores the envelope under the resource name. The server never sees the
// plaintext or the file key.
func (k *keyService) UploadFile(ctx context.Context, resource, path string) error {
	data, err := k.readFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	pemKey, err := k.client.FetchPublicKey(ctx, resource)
	if err != nil {
		return err
	}
	pub, err := cryptox.ParsePublicKey(pemKey)
	if err != nil {
		return err
	}

	env, err := cryptox.Seal(pub, data)
	if err != nil {
		return fmt.Errorf("seal: %w", err)
	}

	return k.client.UploadBlob(ctx, resource, &api.BlobPayload{
		EncryptedData: env.Ciphertext,
		EncryptedKey:  env.WrappedKey,
		IV:            env.Nonce,
	})
}

// DownloadFile fetches the resource's envelope, opens it with the
// resource's private key and writes the plaintext to a new file at path.
func (k *keyService) DownloadFile(ctx context.Context, resource, path string) error {
	blob, err := k.client.DownloadBlob(ctx, resource)
	if err != nil {
		return err
	}

	pemKey, err := k.client.FetchPrivateKey(ctx, resource)
	if err != nil {
		return err
	}
	priv, err := cryptox.ParsePrivateKey(pemKey)
	if err != nil {
		return err
	}

	data, err := cryptox.Open(priv, &cryptox.Envelope{
		Ciphertext: blob.EncryptedData,
		WrappedKey: blob.EncryptedKey,
		Nonce:      blob.IV,
	})
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}

	return k.writeNew(path, data)
}
