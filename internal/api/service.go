// Package api is the wire contract of the key broker: message types, the
// gRPC service description and a client stub. Messages are JSON-encoded
// (content-subtype "json"); the session token travels in the "sid"
// metadata header.
package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "gophkms.v1.KeyBroker"

const (
	KeyBroker_Register_FullMethodName            = "/" + ServiceName + "/Register"
	KeyBroker_ConfirmRegistration_FullMethodName = "/" + ServiceName + "/ConfirmRegistration"
	KeyBroker_Login_FullMethodName               = "/" + ServiceName + "/Login"
	KeyBroker_ConfirmLogin_FullMethodName        = "/" + ServiceName + "/ConfirmLogin"
	KeyBroker_Logout_FullMethodName              = "/" + ServiceName + "/Logout"
	KeyBroker_IssueKeyPair_FullMethodName        = "/" + ServiceName + "/IssueKeyPair"
	KeyBroker_FetchPublicKey_FullMethodName      = "/" + ServiceName + "/FetchPublicKey"
	KeyBroker_FetchPrivateKey_FullMethodName     = "/" + ServiceName + "/FetchPrivateKey"
	KeyBroker_GrantAccess_FullMethodName         = "/" + ServiceName + "/GrantAccess"
	KeyBroker_ListAccess_FullMethodName          = "/" + ServiceName + "/ListAccess"
	KeyBroker_UploadBlob_FullMethodName          = "/" + ServiceName + "/UploadBlob"
	KeyBroker_DownloadBlob_FullMethodName        = "/" + ServiceName + "/DownloadBlob"
	KeyBroker_Ping_FullMethodName                = "/" + ServiceName + "/Ping"
)

// KeyBrokerServer is implemented by the transport layer of the server.
type KeyBrokerServer interface {
	Register(context.Context, *CredentialsRequest) (*StatusResponse, error)
	ConfirmRegistration(context.Context, *OTPRequest) (*StatusResponse, error)
	Login(context.Context, *CredentialsRequest) (*StatusResponse, error)
	ConfirmLogin(context.Context, *OTPRequest) (*ConfirmLoginResponse, error)
	Logout(context.Context, *Empty) (*StatusResponse, error)
	IssueKeyPair(context.Context, *ResourceRequest) (*PublicKeyResponse, error)
	FetchPublicKey(context.Context, *ResourceRequest) (*PublicKeyResponse, error)
	FetchPrivateKey(context.Context, *ResourceRequest) (*PrivateKeyResponse, error)
	GrantAccess(context.Context, *GrantAccessRequest) (*StatusResponse, error)
	ListAccess(context.Context, *ResourceRequest) (*ListAccessResponse, error)
	UploadBlob(context.Context, *UploadBlobRequest) (*StatusResponse, error)
	DownloadBlob(context.Context, *ResourceRequest) (*BlobPayload, error)
	Ping(context.Context, *Empty) (*StatusResponse, error)
}

// UnimplementedKeyBrokerServer answers every method with codes.Unimplemented.
type UnimplementedKeyBrokerServer struct{}

func (UnimplementedKeyBrokerServer) Register(context.Context, *CredentialsRequest) (*StatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedKeyBrokerServer) ConfirmRegistration(context.Context, *OTPRequest) (*StatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ConfirmRegistration not implemented")
}
func (UnimplementedKeyBrokerServer) Login(context.Context, *CredentialsRequest) (*StatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedKeyBrokerServer) ConfirmLogin(context.Context, *OTPRequest) (*ConfirmLoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ConfirmLogin not implemented")
}
func (UnimplementedKeyBrokerServer) Logout(context.Context, *Empty) (*StatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedKeyBrokerServer) IssueKeyPair(context.Context, *ResourceRequest) (*PublicKeyResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method IssueKeyPair not implemented")
}
func (UnimplementedKeyBrokerServer) FetchPublicKey(context.Context, *ResourceRequest) (*PublicKeyResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FetchPublicKey not implemented")
}
func (UnimplementedKeyBrokerServer) FetchPrivateKey(context.Context, *ResourceRequest) (*PrivateKeyResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FetchPrivateKey not implemented")
}
func (UnimplementedKeyBrokerServer) GrantAccess(context.Context, *GrantAccessRequest) (*StatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GrantAccess not implemented")
}
func (UnimplementedKeyBrokerServer) ListAccess(context.Context, *ResourceRequest) (*ListAccessResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListAccess not implemented")
}
func (UnimplementedKeyBrokerServer) UploadBlob(context.Context, *UploadBlobRequest) (*StatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UploadBlob not implemented")
}
func (UnimplementedKeyBrokerServer) DownloadBlob(context.Context, *ResourceRequest) (*BlobPayload, error) {
	return nil, status.Error(codes.Unimplemented, "method DownloadBlob not implemented")
}
func (UnimplementedKeyBrokerServer) Ping(context.Context, *Empty) (*StatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](fullMethod string, call func(KeyBrokerServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(KeyBrokerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(KeyBrokerServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// KeyBroker_ServiceDesc is the grpc.ServiceDesc for the KeyBroker service.
var KeyBroker_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*KeyBrokerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(KeyBroker_Register_FullMethodName, KeyBrokerServer.Register)},
		{MethodName: "ConfirmRegistration", Handler: unaryHandler(KeyBroker_ConfirmRegistration_FullMethodName, KeyBrokerServer.ConfirmRegistration)},
		{MethodName: "Login", Handler: unaryHandler(KeyBroker_Login_FullMethodName, KeyBrokerServer.Login)},
		{MethodName: "ConfirmLogin", Handler: unaryHandler(KeyBroker_ConfirmLogin_FullMethodName, KeyBrokerServer.ConfirmLogin)},
		{MethodName: "Logout", Handler: unaryHandler(KeyBroker_Logout_FullMethodName, KeyBrokerServer.Logout)},
		{MethodName: "IssueKeyPair", Handler: unaryHandler(KeyBroker_IssueKeyPair_FullMethodName, KeyBrokerServer.IssueKeyPair)},
		{MethodName: "FetchPublicKey", Handler: unaryHandler(KeyBroker_FetchPublicKey_FullMethodName, KeyBrokerServer.FetchPublicKey)},
		{MethodName: "FetchPrivateKey", Handler: unaryHandler(KeyBroker_FetchPrivateKey_FullMethodName, KeyBrokerServer.FetchPrivateKey)},
		{MethodName: "GrantAccess", Handler: unaryHandler(KeyBroker_GrantAccess_FullMethodName, KeyBrokerServer.GrantAccess)},
		{MethodName: "ListAccess", Handler: unaryHandler(KeyBroker_ListAccess_FullMethodName, KeyBrokerServer.ListAccess)},
		{MethodName: "UploadBlob", Handler: unaryHandler(KeyBroker_UploadBlob_FullMethodName, KeyBrokerServer.UploadBlob)},
		{MethodName: "DownloadBlob", Handler: unaryHandler(KeyBroker_DownloadBlob_FullMethodName, KeyBrokerServer.DownloadBlob)},
		{MethodName: "Ping", Handler: unaryHandler(KeyBroker_Ping_FullMethodName, KeyBrokerServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophkms/v1/key_broker",
}

func RegisterKeyBrokerServer(s grpc.ServiceRegistrar, srv KeyBrokerServer) {
	s.RegisterService(&KeyBroker_ServiceDesc, srv)
}
