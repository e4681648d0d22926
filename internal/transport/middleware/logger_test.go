package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"armatupc/pkg/ctxutil"
)

func accessLog(t *testing.T, status int, decorate func(*http.Request) *http.Request) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	wrapped := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}))

	req := httptest.NewRequest(http.MethodGet, "/builder/slots", nil)
	if decorate != nil {
		req = decorate(req)
	}
	wrapped.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}
	return entry
}

func TestLogger_AccessLine(t *testing.T) {
	t.Parallel()

	entry := accessLog(t, http.StatusOK, nil)

	if entry["msg"] != "http.request" {
		t.Errorf("expected msg http.request, got %v", entry["msg"])
	}
	if entry["method"] != "GET" || entry["path"] != "/builder/slots" {
		t.Errorf("unexpected method/path: %v %v", entry["method"], entry["path"])
	}
	if entry["status"] != float64(http.StatusOK) {
		t.Errorf("expected status 200, got %v", entry["status"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("expected INFO for a 200, got %v", entry["level"])
	}
	if _, ok := entry["duration"]; !ok {
		t.Error("expected a duration attribute")
	}
	if _, ok := entry["user_id"]; ok {
		t.Error("expected no user_id for anonymous request")
	}
}

func TestLogger_ServerErrorLogsAtError(t *testing.T) {
	t.Parallel()

	entry := accessLog(t, http.StatusInternalServerError, nil)

	if entry["level"] != "ERROR" {
		t.Errorf("expected ERROR for a 500, got %v", entry["level"])
	}
	if entry["status"] != float64(http.StatusInternalServerError) {
		t.Errorf("expected status 500, got %v", entry["status"])
	}
}

func TestLogger_ContextIdentifiers(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	entry := accessLog(t, http.StatusOK, func(req *http.Request) *http.Request {
		ctx := ctxutil.WithRequestID(req.Context(), "req-lg-1")
		ctx = ctxutil.WithUserID(ctx, userID)
		return req.WithContext(ctx)
	})

	if entry["request_id"] != "req-lg-1" {
		t.Errorf("expected request_id req-lg-1, got %v", entry["request_id"])
	}
	if got, _ := entry["user_id"].(string); !strings.EqualFold(got, userID.String()) {
		t.Errorf("expected user_id %s, got %v", userID, entry["user_id"])
	}
}
