package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/gophkms/internal/api"
	"github.com/dmitrijs2005/gophkms/internal/logging"
	"github.com/dmitrijs2005/gophkms/internal/server/blobs"
	"google.golang.org/grpc"
)

// Broker is the business API the transport exposes.
type Broker interface {
	Register(ctx context.Context, email, password string) error
	ConfirmRegistration(ctx context.Context, email, code string) error
	Login(ctx context.Context, email, password string) error
	ConfirmLogin(ctx context.Context, email, code string) (string, error)
	Logout(ctx context.Context, sid string) error
	IssueKeyPair(ctx context.Context, sid, name string) (string, error)
	FetchPublicKey(ctx context.Context, name string) (string, error)
	FetchPrivateKey(ctx context.Context, sid, name string) (string, error)
	GrantAccess(ctx context.Context, sid, name, grantee string) error
	ListAccess(ctx context.Context, sid, name string) ([]string, error)
}

type BlobService interface {
	Upload(ctx context.Context, sid, name string, obj *blobs.Object) error
	Download(ctx context.Context, sid, name string) (*blobs.Object, error)
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type GRPCServer struct {
	api.UnimplementedKeyBrokerServer
	address string
	timeout time.Duration
	broker  Broker
	blobs   BlobService
	health  HealthChecker
	logger  logging.Logger
}

func NewGRPCServer(a string, timeout time.Duration, l logging.Logger, b Broker, bs BlobService, h HealthChecker) (*GRPCServer, error) {
	return &GRPCServer{
		address: a,
		timeout: timeout,
		logger:  l.With("module", "grpc_server"),
		broker:  b,
		blobs:   bs,
		health:  h,
	}, nil
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.loggingInterceptor,
		s.sessionInterceptor,
	))
	api.RegisterKeyBrokerServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
