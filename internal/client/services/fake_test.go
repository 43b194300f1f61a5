package services

import (
	"context"

	"github.com/dmitrijs2005/gophkms/internal/api"
	"github.com/dmitrijs2005/gophkms/internal/client/client"
)

type fakeClient struct {
	calls []string

	status     string
	loggedIn   bool
	publicKey  string
	privateKey string
	members    []string
	blob       *api.BlobPayload
	err        error

	lastPassword string
	uploaded     *api.BlobPayload
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) rec(name string) { f.calls = append(f.calls, name) }

func (f *fakeClient) Close() error                   { f.rec("Close"); return f.err }
func (f *fakeClient) Ping(ctx context.Context) error { f.rec("Ping"); return f.err }
func (f *fakeClient) LoggedIn() bool                 { return f.loggedIn }

func (f *fakeClient) Register(ctx context.Context, email, password string) (string, error) {
	f.rec("Register")
	f.lastPassword = password
	return f.status, f.err
}
func (f *fakeClient) ConfirmRegistration(ctx context.Context, email, otp string) (string, error) {
	f.rec("ConfirmRegistration")
	return f.status, f.err
}
func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	f.rec("Login")
	f.lastPassword = password
	return f.status, f.err
}
func (f *fakeClient) ConfirmLogin(ctx context.Context, email, otp string) (string, error) {
	f.rec("ConfirmLogin")
	if f.err == nil {
		f.loggedIn = true
	}
	return f.status, f.err
}
func (f *fakeClient) Logout(ctx context.Context) error {
	f.rec("Logout")
	f.loggedIn = false
	return f.err
}
func (f *fakeClient) IssueKeyPair(ctx context.Context, resource string) (string, error) {
	f.rec("IssueKeyPair")
	return f.publicKey, f.err
}
func (f *fakeClient) FetchPublicKey(ctx context.Context, resource string) (string, error) {
	f.rec("FetchPublicKey")
	return f.publicKey, f.err
}
func (f *fakeClient) FetchPrivateKey(ctx context.Context, resource string) (string, error) {
	f.rec("FetchPrivateKey")
	return f.privateKey, f.err
}
func (f *fakeClient) GrantAccess(ctx context.Context, resource, grantee string) (string, error) {
	f.rec("GrantAccess")
	return f.status, f.err
}
func (f *fakeClient) ListAccess(ctx context.Context, resource string) ([]string, error) {
	f.rec("ListAccess")
	return f.members, f.err
}
func (f *fakeClient) UploadBlob(ctx context.Context, resource string, blob *api.BlobPayload) error {
	f.rec("UploadBlob")
	f.uploaded = blob
	return f.err
}
func (f *fakeClient) DownloadBlob(ctx context.Context, resource string) (*api.BlobPayload, error) {
	f.rec("DownloadBlob")
	return f.blob, f.err
}
