package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophkms/internal/api"
	"github.com/dmitrijs2005/gophkms/internal/common"
	"github.com/dmitrijs2005/gophkms/internal/server/blobs"
)

// fail logs unexpected errors with their details and converts err to a
// status. Known business errors are passed through as-is.
func (s *GRPCServer) fail(ctx context.Context, op string, err error) error {
	if common.KindOf(err) == common.KindInternal || common.KindOf(err) == common.KindUnavailable {
		s.logger.Error(ctx, op+" failed", "error", err.Error())
	}
	return toStatus(err)
}

func (s *GRPCServer) Register(ctx context.Context, req *api.CredentialsRequest) (*api.StatusResponse, error) {
	if err := s.broker.Register(ctx, req.Email, req.Password); err != nil {
		return nil, s.fail(ctx, "register", err)
	}
	return &api.StatusResponse{Status: common.StatusRegistrationPending}, nil
}

func (s *GRPCServer) ConfirmRegistration(ctx context.Context, req *api.OTPRequest) (*api.StatusResponse, error) {
	if err := s.broker.ConfirmRegistration(ctx, req.Email, req.OTP); err != nil {
		return nil, s.fail(ctx, "confirm registration", err)
	}
	return &api.StatusResponse{Status: common.StatusRegistrationSuccess}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.CredentialsRequest) (*api.StatusResponse, error) {
	if err := s.broker.Login(ctx, req.Email, req.Password); err != nil {
		return nil, s.fail(ctx, "login", err)
	}
	return &api.StatusResponse{Status: common.StatusLoginOTPSent}, nil
}

func (s *GRPCServer) ConfirmLogin(ctx context.Context, req *api.OTPRequest) (*api.ConfirmLoginResponse, error) {
	sid, err := s.broker.ConfirmLogin(ctx, req.Email, req.OTP)
	if err != nil {
		return nil, s.fail(ctx, "confirm login", err)
	}
	return &api.ConfirmLoginResponse{Status: common.StatusLoginSuccess, SID: sid}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, _ *api.Empty) (*api.StatusResponse, error) {
	if err := s.broker.Logout(ctx, sessionFromContext(ctx)); err != nil {
		return nil, s.fail(ctx, "logout", err)
	}
	return &api.StatusResponse{Status: common.StatusOK}, nil
}

func (s *GRPCServer) IssueKeyPair(ctx context.Context, req *api.ResourceRequest) (*api.PublicKeyResponse, error) {
	pub, err := s.broker.IssueKeyPair(ctx, sessionFromContext(ctx), req.ResourceName)
	if err != nil {
		return nil, s.fail(ctx, "issue key pair", err)
	}
	return &api.PublicKeyResponse{PublicKey: pub}, nil
}

func (s *GRPCServer) FetchPublicKey(ctx context.Context, req *api.ResourceRequest) (*api.PublicKeyResponse, error) {
	pub, err := s.broker.FetchPublicKey(ctx, req.ResourceName)
	if err != nil {
		return nil, s.fail(ctx, "fetch public key", err)
	}
	return &api.PublicKeyResponse{PublicKey: pub}, nil
}

func (s *GRPCServer) FetchPrivateKey(ctx context.Context, req *api.ResourceRequest) (*api.PrivateKeyResponse, error) {
	priv, err := s.broker.FetchPrivateKey(ctx, sessionFromContext(ctx), req.ResourceName)
	if err != nil {
		return nil, s.fail(ctx, "fetch private key", err)
	}
	return &api.PrivateKeyResponse{PrivateKey: priv}, nil
}

func (s *GRPCServer) GrantAccess(ctx context.Context, req *api.GrantAccessRequest) (*api.StatusResponse, error) {
	if err := s.broker.GrantAccess(ctx, sessionFromContext(ctx), req.ResourceName, req.GranteeEmail); err != nil {
		return nil, s.fail(ctx, "grant access", err)
	}
	return &api.StatusResponse{Status: common.StatusGrantSuccess}, nil
}

func (s *GRPCServer) ListAccess(ctx context.Context, req *api.ResourceRequest) (*api.ListAccessResponse, error) {
	members, err := s.broker.ListAccess(ctx, sessionFromContext(ctx), req.ResourceName)
	if err != nil {
		return nil, s.fail(ctx, "list access", err)
	}
	return &api.ListAccessResponse{Members: members}, nil
}

func (s *GRPCServer) UploadBlob(ctx context.Context, req *api.UploadBlobRequest) (*api.StatusResponse, error) {
	obj := &blobs.Object{
		EncryptedData: req.EncryptedData,
		EncryptedKey:  req.EncryptedKey,
		IV:            req.IV,
	}
	if err := s.blobs.Upload(ctx, sessionFromContext(ctx), req.ResourceName, obj); err != nil {
		return nil, s.fail(ctx, "upload blob", err)
	}
	return &api.StatusResponse{Status: common.StatusUploadSuccess}, nil
}

func (s *GRPCServer) DownloadBlob(ctx context.Context, req *api.ResourceRequest) (*api.BlobPayload, error) {
	obj, err := s.blobs.Download(ctx, sessionFromContext(ctx), req.ResourceName)
	if err != nil {
		return nil, s.fail(ctx, "download blob", err)
	}
	return &api.BlobPayload{EncryptedData: obj.EncryptedData, EncryptedKey: obj.EncryptedKey, IV: obj.IV}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *api.Empty) (*api.StatusResponse, error) {
	if s.health != nil {
		if err := s.health.Ping(ctx); err != nil {
			return nil, s.fail(ctx, "ping", err)
		}
	}
	return &api.StatusResponse{Status: common.StatusOK}, nil
}
