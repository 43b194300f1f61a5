package grpc

import (
	"github.com/dmitrijs2005/gophkms/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus converts a service error into a gRPC status. The message is
// the wire code of the error so clients can map it back.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	return status.Error(codeForKind(common.KindOf(err)), common.CodeOf(err))
}

func codeForKind(k common.Kind) codes.Code {
	switch k {
	case common.KindConflict:
		return codes.AlreadyExists
	case common.KindNotFound:
		return codes.NotFound
	case common.KindUnauthenticated, common.KindValidationFailed:
		return codes.Unauthenticated
	case common.KindUnauthorized:
		return codes.PermissionDenied
	case common.KindInvalidArgument:
		return codes.InvalidArgument
	case common.KindUnavailable:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}
