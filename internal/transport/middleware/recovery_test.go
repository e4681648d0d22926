package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRecovery_PassThrough(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	wrapped := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
}

func TestRecovery_PanicBecomes500(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	wrapped := Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("price resolver exploded")
	}))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "internal server error" {
		t.Errorf("unexpected body %q", body)
	}

	logged := buf.String()
	if !strings.Contains(logged, "handler panicked") {
		t.Errorf("expected panic log entry, got %q", logged)
	}
	if !strings.Contains(logged, "price resolver exploded") {
		t.Errorf("expected panic value in log, got %q", logged)
	}
	if !strings.Contains(logged, "/products") {
		t.Errorf("expected request path in log, got %q", logged)
	}
}
