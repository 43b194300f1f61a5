package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophkms/internal/api"
	"github.com/dmitrijs2005/gophkms/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.KeyBrokerClient

	mu  sync.RWMutex
	sid string
}

func withSession(ctx context.Context, sid string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.SessionHeaderName, sid)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) session() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sid
}

func (s *GRPCClient) setSession(sid string) {
	s.mu.Lock()
	s.sid = sid
	s.mu.Unlock()
}

func (s *GRPCClient) sessionInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if sid := s.session(); sid != "" {
		ctx = withSession(ctx, sid)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewKeyBrokerClientService(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

// newWithClient is used by tests to plug in a fake api client.
func newWithClient(c api.KeyBrokerClient) *GRPCClient {
	return &GRPCClient{client: c}
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.sessionInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewKeyBrokerClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// mapError turns a status error into the sentinel named by its message,
// or ErrUnavailable when the server could not be reached.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	if e := common.ByCode(st.Message()); e != nil {
		return e
	}
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func (s *GRPCClient) requireSession() error {
	if s.session() == "" {
		return ErrNotLoggedIn
	}
	return nil
}

func (s *GRPCClient) LoggedIn() bool {
	return s.session() != ""
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	_, err := s.client.Ping(ctx, &api.Empty{})
	return s.mapError(err)
}

func (s *GRPCClient) Register(ctx context.Context, email, password string) (string, error) {
	resp, err := s.client.Register(ctx, &api.CredentialsRequest{Email: email, Password: password})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Status, nil
}

func (s *GRPCClient) ConfirmRegistration(ctx context.Context, email, otp string) (string, error) {
	resp, err := s.client.ConfirmRegistration(ctx, &api.OTPRequest{Email: email, OTP: otp})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Status, nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := s.client.Login(ctx, &api.CredentialsRequest{Email: email, Password: password})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Status, nil
}

// ConfirmLogin stores the returned session for later calls.
func (s *GRPCClient) ConfirmLogin(ctx context.Context, email, otp string) (string, error) {
	resp, err := s.client.ConfirmLogin(ctx, &api.OTPRequest{Email: email, OTP: otp})
	if err != nil {
		return "", s.mapError(err)
	}
	s.setSession(resp.SID)
	return resp.Status, nil
}

// Logout revokes the session on the server. The local session is dropped
// even if the call fails.
func (s *GRPCClient) Logout(ctx context.Context) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	_, err := s.client.Logout(ctx, &api.Empty{})
	s.setSession("")
	return s.mapError(err)
}

func (s *GRPCClient) IssueKeyPair(ctx context.Context, resource string) (string, error) {
	if err := s.requireSession(); err != nil {
		return "", err
	}
	resp, err := s.client.IssueKeyPair(ctx, &api.ResourceRequest{ResourceName: resource})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.PublicKey, nil
}

func (s *GRPCClient) FetchPublicKey(ctx context.Context, resource string) (string, error) {
	resp, err := s.client.FetchPublicKey(ctx, &api.ResourceRequest{ResourceName: resource})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.PublicKey, nil
}

func (s *GRPCClient) FetchPrivateKey(ctx context.Context, resource string) (string, error) {
	if err := s.requireSession(); err != nil {
		return "", err
	}
	resp, err := s.client.FetchPrivateKey(ctx, &api.ResourceRequest{ResourceName: resource})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.PrivateKey, nil
}

func (s *GRPCClient) GrantAccess(ctx context.Context, resource, grantee string) (string, error) {
	if err := s.requireSession(); err != nil {
		return "", err
	}
	resp, err := s.client.GrantAccess(ctx, &api.GrantAccessRequest{ResourceName: resource, GranteeEmail: grantee})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Status, nil
}

func (s *GRPCClient) ListAccess(ctx context.Context, resource string) ([]string, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	resp, err := s.client.ListAccess(ctx, &api.ResourceRequest{ResourceName: resource})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Members, nil
}

func (s *GRPCClient) UploadBlob(ctx context.Context, resource string, blob *api.BlobPayload) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	_, err := s.client.UploadBlob(ctx, &api.UploadBlobRequest{ResourceName: resource, BlobPayload: *blob})
	return s.mapError(err)
}

func (s *GRPCClient) DownloadBlob(ctx context.Context, resource string) (*api.BlobPayload, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	resp, err := s.client.DownloadBlob(ctx, &api.ResourceRequest{ResourceName: resource})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}
