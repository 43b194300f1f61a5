package api

import (
	"context"

	"google.golang.org/grpc"
)

// KeyBrokerClient is the client API for the KeyBroker service. Calls that
// need a session expect the "sid" header in the outgoing context.
type KeyBrokerClient interface {
	Register(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*StatusResponse, error)
	ConfirmRegistration(ctx context.Context, in *OTPRequest, opts ...grpc.CallOption) (*StatusResponse, error)
	Login(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*StatusResponse, error)
	ConfirmLogin(ctx context.Context, in *OTPRequest, opts ...grpc.CallOption) (*ConfirmLoginResponse, error)
	Logout(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StatusResponse, error)
	IssueKeyPair(ctx context.Context, in *ResourceRequest, opts ...grpc.CallOption) (*PublicKeyResponse, error)
	FetchPublicKey(ctx context.Context, in *ResourceRequest, opts ...grpc.CallOption) (*PublicKeyResponse, error)
	FetchPrivateKey(ctx context.Context, in *ResourceRequest, opts ...grpc.CallOption) (*PrivateKeyResponse, error)
	GrantAccess(ctx context.Context, in *GrantAccessRequest, opts ...grpc.CallOption) (*StatusResponse, error)
	ListAccess(ctx context.Context, in *ResourceRequest, opts ...grpc.CallOption) (*ListAccessResponse, error)
	UploadBlob(ctx context.Context, in *UploadBlobRequest, opts ...grpc.CallOption) (*StatusResponse, error)
	DownloadBlob(ctx context.Context, in *ResourceRequest, opts ...grpc.CallOption) (*BlobPayload, error)
	Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StatusResponse, error)
}

type keyBrokerClient struct {
	cc grpc.ClientConnInterface
}

func NewKeyBrokerClient(cc grpc.ClientConnInterface) KeyBrokerClient {
	return &keyBrokerClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *keyBrokerClient) Register(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, KeyBroker_Register_FullMethodName, in, opts)
}

func (c *keyBrokerClient) ConfirmRegistration(ctx context.Context, in *OTPRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, KeyBroker_ConfirmRegistration_FullMethodName, in, opts)
}

func (c *keyBrokerClient) Login(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, KeyBroker_Login_FullMethodName, in, opts)
}

func (c *keyBrokerClient) ConfirmLogin(ctx context.Context, in *OTPRequest, opts ...grpc.CallOption) (*ConfirmLoginResponse, error) {
	return invoke[ConfirmLoginResponse](ctx, c.cc, KeyBroker_ConfirmLogin_FullMethodName, in, opts)
}

func (c *keyBrokerClient) Logout(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, KeyBroker_Logout_FullMethodName, in, opts)
}

func (c *keyBrokerClient) IssueKeyPair(ctx context.Context, in *ResourceRequest, opts ...grpc.CallOption) (*PublicKeyResponse, error) {
	return invoke[PublicKeyResponse](ctx, c.cc, KeyBroker_IssueKeyPair_FullMethodName, in, opts)
}

func (c *keyBrokerClient) FetchPublicKey(ctx context.Context, in *ResourceRequest, opts ...grpc.CallOption) (*PublicKeyResponse, error) {
	return invoke[PublicKeyResponse](ctx, c.cc, KeyBroker_FetchPublicKey_FullMethodName, in, opts)
}

func (c *keyBrokerClient) FetchPrivateKey(ctx context.Context, in *ResourceRequest, opts ...grpc.CallOption) (*PrivateKeyResponse, error) {
	return invoke[PrivateKeyResponse](ctx, c.cc, KeyBroker_FetchPrivateKey_FullMethodName, in, opts)
}

func (c *keyBrokerClient) GrantAccess(ctx context.Context, in *GrantAccessRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, KeyBroker_GrantAccess_FullMethodName, in, opts)
}

func (c *keyBrokerClient) ListAccess(ctx context.Context, in *ResourceRequest, opts ...grpc.CallOption) (*ListAccessResponse, error) {
	return invoke[ListAccessResponse](ctx, c.cc, KeyBroker_ListAccess_FullMethodName, in, opts)
}

func (c *keyBrokerClient) UploadBlob(ctx context.Context, in *UploadBlobRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, KeyBroker_UploadBlob_FullMethodName, in, opts)
}

func (c *keyBrokerClient) DownloadBlob(ctx context.Context, in *ResourceRequest, opts ...grpc.CallOption) (*BlobPayload, error) {
	return invoke[BlobPayload](ctx, c.cc, KeyBroker_DownloadBlob_FullMethodName, in, opts)
}

func (c *keyBrokerClient) Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, KeyBroker_Ping_FullMethodName, in, opts)
}
