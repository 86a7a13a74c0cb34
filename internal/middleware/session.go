package middleware

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/quicksplit/internal/auth"
	"github.com/mmynk/quicksplit/pkg/api"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// SessionIDKey is the context key for storing the caller's session ID.
const SessionIDKey contextKey = "session_id"

// GetSessionID extracts the session ID from the context.
// Returns empty string if not found.
func GetSessionID(ctx context.Context) string {
	sessionID, _ := ctx.Value(SessionIDKey).(string)
	return sessionID
}

// WithSessionID returns a copy of ctx carrying sessionID.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDKey, sessionID)
}

// RequireSession returns an interceptor that validates the session token
// in the Authorization header and adds the session ID to the context.
// Every successful call gets a fresh token in api.SessionTokenHeader, so
// a token stays valid for as long as its session is in use.
// Procedures listed in open are let through without a token.
func RequireSession(jwtManager *auth.JWTManager, open ...string) connect.UnaryInterceptorFunc {
	skip := make(map[string]bool, len(open))
	for _, p := range open {
		skip[p] = true
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			procedure := req.Spec().Procedure
			if skip[procedure] {
				return next(ctx, req)
			}

			sessionID, err := sessionFromHeader(jwtManager, req.Header().Get("Authorization"))
			if err != nil {
				slog.Warn("Session rejected",
					"procedure", procedure,
					"peer", req.Peer().Addr,
					"error", err,
				)
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			resp, err := next(WithSessionID(ctx, sessionID), req)
			if err != nil || resp == nil {
				return resp, err
			}

			token, tokenErr := jwtManager.Generate(sessionID)
			if tokenErr != nil {
				slog.Error("Failed to refresh session token", "session_id", sessionID, "error", tokenErr)
				return resp, nil
			}
			resp.Header().Set(api.SessionTokenHeader, token)
			return resp, nil
		}
	}
}

// sessionFromHeader validates a "Bearer <token>" header value.
func sessionFromHeader(jwtManager *auth.JWTManager, authHeader string) (string, error) {
	if authHeader == "" {
		return "", auth.ErrMissingToken
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || scheme != "Bearer" || token == "" || strings.Contains(token, " ") {
		return "", auth.ErrInvalidToken
	}

	claims, err := jwtManager.Validate(token)
	if err != nil {
		return "", err
	}
	return claims.SessionID, nil
}
