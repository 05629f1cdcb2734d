package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors to gRPC status codes. Messages of known
// errors are passed through; anything else becomes a bare Internal.
func toStatus(err error) error {
	code := codes.Internal
	switch {
	case common.IsAuthError(err), errors.Is(err, common.ErrUnauthorized):
		code = codes.Unauthenticated
	case errors.Is(err, common.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, common.ErrForbidden):
		code = codes.PermissionDenied
	case errors.Is(err, common.ErrInvalidQuery),
		errors.Is(err, common.ErrInvalidTask),
		errors.Is(err, common.ErrInvalidUser):
		code = codes.InvalidArgument
	case errors.Is(err, common.ErrDuplicateCredential):
		code = codes.AlreadyExists
	case errors.Is(err, common.ErrStoreUnavailable):
		return status.Error(codes.Unavailable, common.ErrStoreUnavailable.Error())
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	default:
		return status.Error(codes.Internal, common.ErrInternal.Error())
	}
	return status.Error(code, err.Error())
}
