package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC
// call to logger: one line per call with the procedure, the session, the
// duration and, on failure, the Connect code. Client-side codes log at
// warn, server-side failures at error.
// Install it inside RequireSession so the session ID is on the context;
// rejected tokens are logged by RequireSession itself.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []slog.Attr{
				slog.String("procedure", req.Spec().Procedure),
				slog.String("session_id", GetSessionID(ctx)),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			level, msg := slog.LevelInfo, "RPC ok"
			if err != nil {
				msg = "RPC error"
				level = errorLevel(err)
				attrs = append(attrs,
					slog.String("code", connect.CodeOf(err).String()),
					slog.String("error", errorMessage(err)),
				)
			}
			logger.LogAttrs(ctx, level, msg, attrs...)

			return resp, err
		}
	}
}

// errorLevel logs caller mistakes below server faults.
func errorLevel(err error) slog.Level {
	switch connect.CodeOf(err) {
	case connect.CodeInternal, connect.CodeUnknown, connect.CodeDataLoss, connect.CodeUnavailable:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func errorMessage(err error) string {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Message()
	}
	return err.Error()
}
