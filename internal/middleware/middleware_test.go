package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/quicksplit/internal/auth"
	"github.com/mmynk/quicksplit/internal/metrics"
	"github.com/mmynk/quicksplit/pkg/api"
	"github.com/mmynk/quicksplit/pkg/logging"
)

type empty struct{}

// capture returns a unary func recording the session ID it was called with.
func capture(got *string) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		*got = GetSessionID(ctx)
		return connect.NewResponse(&empty{}), nil
	}
}

func TestRequireSession(t *testing.T) {
	tokens := auth.NewJWTManager("test-secret", time.Hour)
	token, err := tokens.Generate("session-42")
	require.NoError(t, err)

	interceptor := RequireSession(tokens)

	t.Run("valid token", func(t *testing.T) {
		var got string
		req := connect.NewRequest(&empty{})
		req.Header().Set("Authorization", "Bearer "+token)

		resp, err := interceptor(capture(&got))(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "session-42", got)

		refreshed := resp.Header().Get(api.SessionTokenHeader)
		require.NotEmpty(t, refreshed)
		claims, err := tokens.Validate(refreshed)
		require.NoError(t, err)
		assert.Equal(t, "session-42", claims.SessionID)
	})

	t.Run("failed call gets no token", func(t *testing.T) {
		req := connect.NewRequest(&empty{})
		req.Header().Set("Authorization", "Bearer "+token)

		fail := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			return nil, connect.NewError(connect.CodeNotFound, errors.New("gone"))
		}
		resp, err := interceptor(fail)(context.Background(), req)
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
		assert.Nil(t, resp)
	})

	t.Run("missing token", func(t *testing.T) {
		var got string
		_, err := interceptor(capture(&got))(context.Background(), connect.NewRequest(&empty{}))
		require.Error(t, err)
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
		assert.Empty(t, got)
	})

	t.Run("not bearer", func(t *testing.T) {
		var got string
		req := connect.NewRequest(&empty{})
		req.Header().Set("Authorization", "Basic "+token)

		_, err := interceptor(capture(&got))(context.Background(), req)
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})
}

func TestRequireSession_LogsRejection(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logging.New(&buf, slog.LevelDebug))
	t.Cleanup(func() { slog.SetDefault(prev) })

	interceptor := RequireSession(auth.NewJWTManager("test-secret", time.Hour))
	req := connect.NewRequest(&empty{})
	req.Header().Set("Authorization", "Bearer not-a-token")

	var got string
	_, err := interceptor(capture(&got))(context.Background(), req)
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "Session rejected")
	assert.Contains(t, out, "invalid or expired token")
}

func TestGetSessionID(t *testing.T) {
	assert.Empty(t, GetSessionID(context.Background()))
	assert.Equal(t, "abc", GetSessionID(WithSessionID(context.Background(), "abc")))
}

func TestMetricsInterceptor(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry(), nil)
	interceptor := MetricsInterceptor(m)

	ok := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&empty{}), nil
	}
	fail := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("gone"))
	}

	_, err := interceptor(ok)(context.Background(), connect.NewRequest(&empty{}))
	require.NoError(t, err)
	_, err = interceptor(fail)(context.Background(), connect.NewRequest(&empty{}))
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues("", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues("", "not_found")))
}

func TestLoggingInterceptor(t *testing.T) {
	var buf bytes.Buffer
	interceptor := LoggingInterceptor(logging.New(&buf, slog.LevelDebug))
	ctx := WithSessionID(context.Background(), "session-7")

	ok := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&empty{}), nil
	}
	_, err := interceptor(ok)(ctx, connect.NewRequest(&empty{}))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "RPC ok")
	assert.Contains(t, out, "session_id=session-7")
	assert.Contains(t, out, "INF")

	buf.Reset()
	missing := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("session not found"))
	}
	_, err = interceptor(missing)(ctx, connect.NewRequest(&empty{}))
	require.Error(t, err)

	out = buf.String()
	assert.Contains(t, out, "RPC error")
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "code=not_found")
	assert.Contains(t, out, "session not found")

	buf.Reset()
	broken := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, errors.New("disk on fire")
	}
	_, err = interceptor(broken)(ctx, connect.NewRequest(&empty{}))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "ERR")
	assert.Contains(t, buf.String(), "code=unknown")
}

func TestCORS(t *testing.T) {
	called := false
	handler := CORS("*")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), api.SessionTokenHeader)
	assert.False(t, called)

	rec = httptest.NewRecorder()
	HTTPLogging(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.True(t, called)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestCORS_SpecificOrigin(t *testing.T) {
	handler := CORS("http://localhost:3000")(http.NotFoundHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
}
