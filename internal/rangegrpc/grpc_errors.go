package rangegrpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/signalsfoundry/slant-range/core"
	"github.com/signalsfoundry/slant-range/internal/ranging"
	"github.com/signalsfoundry/slant-range/model"
)

// ToStatusError maps range errors onto gRPC status codes.
func ToStatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, ErrMissingField),
		errors.Is(err, ranging.ErrInvalidInput),
		errors.Is(err, model.ErrNonFinite),
		errors.Is(err, model.ErrLatitudeOutOfRange),
		errors.Is(err, model.ErrLongitudeOutOfRange):
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.Is(err, core.ErrInvalidEllipsoid):
		return status.Error(codes.FailedPrecondition, err.Error())

	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())

	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())

	default:
		return status.Error(codes.Internal, err.Error())
	}
}
