package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("created"))
	})
	wrapped := LoggingMiddleware(logger)(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	logged := buf.String()
	assert.Contains(t, logged, "HTTP request")
	assert.Contains(t, logged, "method=POST")
	assert.Contains(t, logged, "path=/api/v1/auth/register")
	assert.Contains(t, logged, "status=201")
}

func TestLoggingMiddleware_ErrorStatusLogsAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	wrapped := LoggingMiddleware(logger)(handler)

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestLoggingMiddleware_DefaultStatusIs200(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Handler never calls WriteHeader
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	wrapped := LoggingMiddleware(logger)(handler)

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	assert.Contains(t, buf.String(), "status=200")
}

func TestLoggingWithSkip(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := LoggingWithSkip(logger, []string{"/healthz"})(handler)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, buf.String(), "health checks are not logged")

	req = httptest.NewRequest(http.MethodGet, "/api/v1/entities/workout", nil)
	w = httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	assert.Contains(t, buf.String(), "path=/api/v1/entities/workout")
}
