package httphandler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httphandler "github.com/ericfisherdev/kbdash/internal/adapter/driving/http"
	"github.com/ericfisherdev/kbdash/internal/domain/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name  string
		creds model.Credentials
		want  string
	}{
		{name: "configured", creds: model.Credentials{BaseURL: "https://kb", APIKey: "k"}, want: "configured"},
		{name: "placeholder", creds: model.Credentials{BaseURL: "__SUPABASE_URL__", APIKey: "k"}, want: "placeholder"},
		{name: "missing", creds: model.Credentials{}, want: "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(tt.creds, discardLogger()))

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

			var resp httphandler.HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "ok", resp.Status)
			assert.Equal(t, tt.want, resp.Credentials)
		})
	}
}

func TestApplyMiddleware_RecoversPanics(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	handler := httphandler.ApplyMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), logger)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.Contains(t, logs.String(), "panic recovered")
	assert.Contains(t, logs.String(), "status=500")
}

func TestApplyMiddleware_LogsRequests(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	handler := httphandler.ApplyMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), logger)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app/metrics", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, logs.String(), "path=/app/metrics")
	assert.Contains(t, logs.String(), "status=418")
}

func TestApplyMiddleware_LogLevels(t *testing.T) {
	tests := map[string]struct {
		path      string
		status    int
		wantLevel string
	}{
		"page request":         {path: "/", status: http.StatusOK, wantLevel: "level=INFO"},
		"health check":         {path: "/api/v1/health", status: http.StatusOK, wantLevel: "level=DEBUG"},
		"static asset":         {path: "/static/style.css", status: http.StatusOK, wantLevel: "level=DEBUG"},
		"failing health":       {path: "/api/v1/health", status: http.StatusServiceUnavailable, wantLevel: "level=WARN"},
		"failing fragment":     {path: "/app/changelog", status: http.StatusBadGateway, wantLevel: "level=WARN"},
		"client error at info": {path: "/app/metrics", status: http.StatusNotFound, wantLevel: "level=INFO"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

			handler := httphandler.ApplyMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("abc"))
			}), logger)

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Contains(t, logs.String(), tt.wantLevel)
			assert.Contains(t, logs.String(), "bytes=3")
		})
	}
}

func TestApplyMiddleware_HealthChecksHiddenAtInfo(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	handler := httphandler.ApplyMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), logger)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Empty(t, logs.String())
}
