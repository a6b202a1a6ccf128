package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/groupwallet/internal/apperr"
	"github.com/mmynk/groupwallet/internal/middleware"
	"github.com/mmynk/groupwallet/internal/wallet"
)

// ErrorKindHeader carries the apperr kind of a failed call.
const ErrorKindHeader = middleware.ErrorKindHeader

var errNotAuthenticated = errors.New("no authenticated member in request")

var codes = map[apperr.Kind]connect.Code{
	apperr.KindValidation:    connect.CodeInvalidArgument,
	apperr.KindNotFound:      connect.CodeNotFound,
	apperr.KindConflict:      connect.CodeAlreadyExists,
	apperr.KindForbidden:     connect.CodePermissionDenied,
	apperr.KindInvalidState:  connect.CodeFailedPrecondition,
	apperr.KindDuplicateVote: connect.CodeAlreadyExists,
	apperr.KindUnavailable:   connect.CodeUnavailable,
}

// toConnectError maps a classified error to its Connect code. The kind is
// also exposed in the ErrorKindHeader metadata so clients can tell
// DuplicateVote from Conflict.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	kind := apperr.KindOf(err)
	code, ok := codes[kind]
	if !ok {
		return connect.NewError(connect.CodeInternal, err)
	}

	// Infrastructure causes stay in the logs, not on the wire.
	msg := err
	if kind == apperr.KindUnavailable {
		msg = errors.New(apperr.MessageOf(err))
	}
	ce := connect.NewError(code, msg)
	ce.Meta().Set(ErrorKindHeader, string(kind))
	return ce
}

// callerFrom returns the authenticated member of the request.
func callerFrom(ctx context.Context, name string) (wallet.Caller, error) {
	memberID := middleware.GetMemberID(ctx)
	if memberID == "" {
		return wallet.Caller{}, connect.NewError(connect.CodeUnauthenticated, errNotAuthenticated)
	}
	return wallet.Caller{MemberID: memberID, Phone: middleware.GetPhone(ctx), Name: name}, nil
}

func requireField(name, value string) error {
	if value == "" {
		return connect.NewError(connect.CodeInvalidArgument, errors.New(name+" is required"))
	}
	return nil
}

// fail logs a failed operation and converts err for the wire.
func fail(op string, err error, args ...any) error {
	ce := toConnectError(err)
	args = append(args, "code", ce.Code(), "error", err)
	if ce.Code() == connect.CodeInternal || ce.Code() == connect.CodeUnavailable {
		slog.Error(op+" failed", args...)
	} else {
		slog.Warn(op+" failed", args...)
	}
	return ce
}
