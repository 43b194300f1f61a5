package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophkms/internal/api"
	"github.com/dmitrijs2005/gophkms/internal/common"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const sessionKey ctxKey = "sid"

// sessionMethods need a session token in the "sid" header.
var sessionMethods = map[string]bool{
	api.KeyBroker_Logout_FullMethodName:          true,
	api.KeyBroker_IssueKeyPair_FullMethodName:    true,
	api.KeyBroker_FetchPrivateKey_FullMethodName: true,
	api.KeyBroker_GrantAccess_FullMethodName:     true,
	api.KeyBroker_ListAccess_FullMethodName:      true,
	api.KeyBroker_UploadBlob_FullMethodName:      true,
	api.KeyBroker_DownloadBlob_FullMethodName:    true,
}

func sessionFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(sessionKey).(string)
	return sid
}

func (s *GRPCServer) sessionInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if sessionMethods[info.FullMethod] {

		var sid string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			values := md.Get(common.SessionHeaderName)
			if len(values) > 0 {
				sid = values[0]
			}
		}
		if len(sid) == 0 {
			return nil, toStatus(common.ErrInvalidSession)
		}

		ctx = context.WithValue(ctx, sessionKey, sid)
	}

	return handler(ctx, req)
}

// loggingInterceptor bounds each call by the request timeout and logs its
// outcome under a fresh request id.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log := s.logger.With("request_id", uuid.NewString(), "method", info.FullMethod)
	start := time.Now()

	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"code", code.String(), "duration", time.Since(start)}
	if err != nil {
		args = append(args, "error", status.Convert(err).Message())
	}
	log.Info(ctx, "request handled", args...)

	return resp, err
}
