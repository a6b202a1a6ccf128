package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// ErrorKindHeader is the error metadata key carrying the error kind of a
// failed call.
const ErrorKindHeader = "Wallet-Error-Kind"

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with its procedure, member ID and duration. Failures also carry the code
// and error kind. Internal and unknown failures log at Error, the rest at
// Warn.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			// Read before next: the identity is set by interceptors further out.
			attrs := []any{
				"procedure", req.Spec().Procedure,
				"member_id", GetMemberID(ctx),
			}

			resp, err := next(ctx, req)
			attrs = append(attrs, "duration_ms", time.Since(start).Milliseconds())

			if err == nil {
				slog.Info("RPC ok", attrs...)
				return resp, nil
			}

			code := connect.CodeOf(err)
			attrs = append(attrs, "code", code, "error", err)
			var ce *connect.Error
			if errors.As(err, &ce) {
				if kind := ce.Meta().Get(ErrorKindHeader); kind != "" {
					attrs = append(attrs, "kind", kind)
				}
			}
			if code == connect.CodeInternal || code == connect.CodeUnknown {
				slog.Error("RPC error", attrs...)
			} else {
				slog.Warn("RPC error", attrs...)
			}
			return resp, err
		}
	}
}
