package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedContext() (context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return ctxzap.ToContext(context.Background(), zap.New(core)), logs
}

func TestLoggableURLStripsQuery(t *testing.T) {
	u, err := url.Parse("https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent?key=secret")
	require.NoError(t, err)

	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent", loggableURL(u))
}

func TestRequestLoggingOmitsQueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	connector := NewConnector(
		&ConnectorConfig{BaseURL: srv.URL, Logger: zap.NewNop()},
		WithRequestLogging(),
	)

	ctx, logs := observedContext()
	var resp map[string]any
	require.NoError(t, connector.DoRequest(ctx, http.MethodGet, "/v1/models", nil, &resp,
		WithQueryParam("key", "super-secret-api-key")))

	entries := logs.FilterMessage("HTTP outbound request").All()
	require.Len(t, entries, 1)

	logged := entries[0].ContextMap()["url"].(string)
	assert.Equal(t, srv.URL+"/v1/models", logged)
	assert.NotContains(t, logged, "super-secret-api-key")
}
