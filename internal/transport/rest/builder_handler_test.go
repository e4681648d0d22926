package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"armatupc/internal/domain"
	"armatupc/internal/service/builder"
	"armatupc/pkg/ctxutil"
)

type builderServiceMock struct {
	SummarizeFunc   func(ctx context.Context, sel builder.Selection) (*builder.Summary, error)
	ExportFunc      func(ctx context.Context, sel builder.Selection) ([]byte, error)
	SaveBuildFunc   func(ctx context.Context, userID uuid.UUID, input builder.SaveBuildInput) (*domain.Build, error)
	ListBuildsFunc  func(ctx context.Context, userID uuid.UUID) ([]*domain.Build, error)
	GetBuildFunc    func(ctx context.Context, userID, buildID uuid.UUID) (*domain.Build, error)
	DeleteBuildFunc func(ctx context.Context, userID, buildID uuid.UUID) error
	ExportBuildFunc func(ctx context.Context, userID, buildID uuid.UUID) ([]byte, error)
}

func (m *builderServiceMock) Summarize(ctx context.Context, sel builder.Selection) (*builder.Summary, error) {
	return m.SummarizeFunc(ctx, sel)
}

func (m *builderServiceMock) Export(ctx context.Context, sel builder.Selection) ([]byte, error) {
	return m.ExportFunc(ctx, sel)
}

func (m *builderServiceMock) SaveBuild(ctx context.Context, userID uuid.UUID, input builder.SaveBuildInput) (*domain.Build, error) {
	return m.SaveBuildFunc(ctx, userID, input)
}

func (m *builderServiceMock) ListBuilds(ctx context.Context, userID uuid.UUID) ([]*domain.Build, error) {
	return m.ListBuildsFunc(ctx, userID)
}

func (m *builderServiceMock) GetBuild(ctx context.Context, userID, buildID uuid.UUID) (*domain.Build, error) {
	return m.GetBuildFunc(ctx, userID, buildID)
}

func (m *builderServiceMock) DeleteBuild(ctx context.Context, userID, buildID uuid.UUID) error {
	return m.DeleteBuildFunc(ctx, userID, buildID)
}

func (m *builderServiceMock) ExportBuild(ctx context.Context, userID, buildID uuid.UUID) ([]byte, error) {
	return m.ExportBuildFunc(ctx, userID, buildID)
}

func authedRequest(method, target string, body string, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := ctxutil.WithUserID(req.Context(), userID)
	ctx = ctxutil.WithRole(ctx, "customer")
	return req.WithContext(ctx)
}

func TestBuilderSlots_ReturnsFixedLayout(t *testing.T) {
	t.Parallel()

	h := NewBuilderHandler(&builderServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/builder/slots", nil)
	rec := httptest.NewRecorder()

	h.Slots(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Slots []slotResponse `json:"slots"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Slots) != 7 {
		t.Fatalf("expected 7 slots, got %d", len(resp.Slots))
	}
	if resp.Slots[0].Label != "Procesador" {
		t.Errorf("expected first slot 'Procesador', got %q", resp.Slots[0].Label)
	}
	multi := 0
	for _, s := range resp.Slots {
		if s.AllowMultiple {
			multi++
		}
	}
	if multi != 2 {
		t.Errorf("expected 2 multi-component slots, got %d", multi)
	}
}

func TestBuilderSummarize_PassesSelection(t *testing.T) {
	t.Parallel()

	var got builder.Selection
	svc := &builderServiceMock{
		SummarizeFunc: func(_ context.Context, sel builder.Selection) (*builder.Summary, error) {
			got = sel
			return &builder.Summary{Count: 1, TotalPrice: 589990}, nil
		},
	}
	h := NewBuilderHandler(svc, testLogger())

	body := `{"components":{"CPU":["amd-ryzen-7-9800x3d"]}}`
	req := httptest.NewRequest(http.MethodPost, "/builder/summary", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Summarize(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(got[domain.CategoryCPU]) != 1 || got[domain.CategoryCPU][0] != "amd-ryzen-7-9800x3d" {
		t.Errorf("unexpected selection passed to service: %+v", got)
	}

	var resp summaryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalPrice != 589990 {
		t.Errorf("expected total 589990, got %d", resp.TotalPrice)
	}
}

func TestBuilderSaveBuild_RequiresAuth(t *testing.T) {
	t.Parallel()

	h := NewBuilderHandler(&builderServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/builds", strings.NewReader(`{"name":"Mi PC"}`))
	rec := httptest.NewRecorder()

	h.SaveBuild(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestBuilderSaveBuild_Created(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := &builderServiceMock{
		SaveBuildFunc: func(_ context.Context, gotUser uuid.UUID, input builder.SaveBuildInput) (*domain.Build, error) {
			if gotUser != userID {
				t.Errorf("expected context user to be passed, got %s", gotUser)
			}
			return &domain.Build{
				ID:         uuid.New(),
				UserID:     gotUser,
				Name:       input.Name,
				Components: map[domain.Category][]string{domain.CategoryCPU: {"amd-ryzen-7-9800x3d"}},
				TotalPrice: 589990,
			}, nil
		},
	}
	h := NewBuilderHandler(svc, testLogger())

	body := `{"name":"Gamer 2026","components":{"CPU":["amd-ryzen-7-9800x3d"]}}`
	rec := httptest.NewRecorder()

	h.SaveBuild(rec, authedRequest(http.MethodPost, "/builds", body, userID))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp buildResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Name != "Gamer 2026" || resp.TotalPrice != 589990 {
		t.Errorf("unexpected build response: %+v", resp)
	}
}

func TestBuilderDeleteBuild_NoContent(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	buildID := uuid.New()
	svc := &builderServiceMock{
		DeleteBuildFunc: func(_ context.Context, gotUser, gotBuild uuid.UUID) error {
			if gotUser != userID || gotBuild != buildID {
				t.Errorf("unexpected ids: user=%s build=%s", gotUser, gotBuild)
			}
			return nil
		},
	}
	h := NewBuilderHandler(svc, testLogger())

	req := authedRequest(http.MethodDelete, "/builds/"+buildID.String(), "", userID)
	req.SetPathValue("id", buildID.String())
	rec := httptest.NewRecorder()

	h.DeleteBuild(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
}

func TestBuilderDeleteBuild_BadID(t *testing.T) {
	t.Parallel()

	h := NewBuilderHandler(&builderServiceMock{}, testLogger())

	req := authedRequest(http.MethodDelete, "/builds/not-a-uuid", "", uuid.New())
	req.SetPathValue("id", "not-a-uuid")
	rec := httptest.NewRecorder()

	h.DeleteBuild(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestBuilderExportBuild_SetsSpreadsheetHeaders(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	buildID := uuid.New()
	svc := &builderServiceMock{
		ExportBuildFunc: func(_ context.Context, _, _ uuid.UUID) ([]byte, error) {
			return []byte("PK fake xlsx"), nil
		},
	}
	h := NewBuilderHandler(svc, testLogger())

	req := authedRequest(http.MethodGet, "/builds/"+buildID.String()+"/export", "", userID)
	req.SetPathValue("id", buildID.String())
	rec := httptest.NewRecorder()

	h.ExportBuild(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	ct := rec.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type %q", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "attachment") || !strings.Contains(cd, ".xlsx") {
		t.Errorf("unexpected content disposition %q", cd)
	}
}

func TestBuilderGetBuild_NotFoundForOtherUser(t *testing.T) {
	t.Parallel()

	svc := &builderServiceMock{
		GetBuildFunc: func(_ context.Context, _, _ uuid.UUID) (*domain.Build, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := NewBuilderHandler(svc, testLogger())

	buildID := uuid.New()
	req := authedRequest(http.MethodGet, "/builds/"+buildID.String(), "", uuid.New())
	req.SetPathValue("id", buildID.String())
	rec := httptest.NewRecorder()

	h.GetBuild(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}
