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
	usersvc "armatupc/internal/service/user"
)

type profileServiceMock struct {
	GetProfileFunc    func(ctx context.Context) (*domain.User, error)
	UpdateProfileFunc func(ctx context.Context, input usersvc.UpdateProfileInput) (*domain.User, error)
}

func (m *profileServiceMock) GetProfile(ctx context.Context) (*domain.User, error) {
	return m.GetProfileFunc(ctx)
}

func (m *profileServiceMock) UpdateProfile(ctx context.Context, input usersvc.UpdateProfileInput) (*domain.User, error) {
	return m.UpdateProfileFunc(ctx, input)
}

func TestUserGetProfile_OK(t *testing.T) {
	t.Parallel()

	svc := &profileServiceMock{
		GetProfileFunc: func(_ context.Context) (*domain.User, error) {
			return &domain.User{
				ID:       uuid.New(),
				Email:    "ana@example.com",
				Username: "ana",
				Role:     domain.UserRoleCustomer,
				Status:   domain.UserStatusActive,
			}, nil
		},
	}
	h := NewUserHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()

	h.GetProfile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp userResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Email != "ana@example.com" || resp.Status != "active" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestUserGetProfile_Anonymous(t *testing.T) {
	t.Parallel()

	svc := &profileServiceMock{
		GetProfileFunc: func(_ context.Context) (*domain.User, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	h := NewUserHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()

	h.GetProfile(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestUserUpdateProfile_PassesUsername(t *testing.T) {
	t.Parallel()

	var got usersvc.UpdateProfileInput
	svc := &profileServiceMock{
		UpdateProfileFunc: func(_ context.Context, input usersvc.UpdateProfileInput) (*domain.User, error) {
			got = input
			return &domain.User{
				ID:       uuid.New(),
				Username: *input.Username,
				Role:     domain.UserRoleCustomer,
				Status:   domain.UserStatusActive,
			}, nil
		},
	}
	h := NewUserHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPatch, "/me", strings.NewReader(`{"username":"ana_pc"}`))
	rec := httptest.NewRecorder()

	h.UpdateProfile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Username == nil || *got.Username != "ana_pc" {
		t.Errorf("expected username pointer passed, got %+v", got.Username)
	}
}
