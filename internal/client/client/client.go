package client

import (
	"context"

	"github.com/dmitrijs2005/gophkms/internal/api"
)

// Client is what the CLI services need from the broker.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Register(ctx context.Context, email, password string) (string, error)
	ConfirmRegistration(ctx context.Context, email, otp string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ConfirmLogin(ctx context.Context, email, otp string) (string, error)
	Logout(ctx context.Context) error
	LoggedIn() bool
	IssueKeyPair(ctx context.Context, resource string) (string, error)
	FetchPublicKey(ctx context.Context, resource string) (string, error)
	FetchPrivateKey(ctx context.Context, resource string) (string, error)
	GrantAccess(ctx context.Context, resource, grantee string) (string, error)
	ListAccess(ctx context.Context, resource string) ([]string, error)
	UploadBlob(ctx context.Context, resource string, blob *api.BlobPayload) error
	DownloadBlob(ctx context.Context, resource string) (*api.BlobPayload, error)
}
