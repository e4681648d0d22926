package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"armatupc/internal/adapter/postgres/testhelper"
	"armatupc/internal/adapter/postgres/user"
	"armatupc/internal/domain"
)

func newRepo(t *testing.T) (*user.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return user.New(pool), pool
}

func buildUser() domain.User {
	suffix := uuid.New().String()[:8]
	return domain.User{
		ID:           uuid.New(),
		Email:        "u-" + suffix + "@example.com",
		Username:     "u-" + suffix,
		PasswordHash: "$2a$10$fakehashfakehashfakehash",
		Role:         domain.UserRoleCustomer,
		Status:       domain.UserStatusActive,
	}
}

func assertIsDomainError(t *testing.T, err error, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected %v, got %v", target, err)
	}
}

func TestRepo_Create_AndGetters(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	u := buildUser()
	created, err := repo.Create(ctx, &u)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.CreatedAt.IsZero() {
		t.Errorf("expected created_at to be set")
	}
	if created.Role != domain.UserRoleCustomer {
		t.Errorf("Role mismatch: got %q", created.Role)
	}

	byID, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Email != u.Email {
		t.Errorf("Email mismatch: got %q", byID.Email)
	}

	byEmail, err := repo.GetByEmail(ctx, u.Email)
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Errorf("ID mismatch: got %s", byEmail.ID)
	}

	byUsername, err := repo.GetByUsername(ctx, u.Username)
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if byUsername.ID != u.ID {
		t.Errorf("ID mismatch: got %s", byUsername.ID)
	}
}

func TestRepo_Create_DuplicateEmail(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	u1 := buildUser()
	if _, err := repo.Create(ctx, &u1); err != nil {
		t.Fatalf("Create first: %v", err)
	}

	u2 := buildUser()
	u2.Email = u1.Email
	_, err := repo.Create(ctx, &u2)
	assertIsDomainError(t, err, domain.ErrAlreadyExists)
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_Update_Profile(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedUser(t, pool)

	newUsername := "renamed-" + uuid.New().String()[:8]
	got, err := repo.Update(ctx, seeded.ID, user.UpdateParams{Username: &newUsername})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Username != newUsername {
		t.Errorf("Username mismatch: got %q", got.Username)
	}
	if got.Email != seeded.Email {
		t.Errorf("Email changed unexpectedly: got %q", got.Email)
	}
}

func TestRepo_UpdateRole(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedUser(t, pool)

	got, err := repo.UpdateRole(ctx, seeded.ID, domain.UserRoleSuperuser)
	if err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	if got.Role != domain.UserRoleSuperuser {
		t.Errorf("Role mismatch: got %q", got.Role)
	}
	if !got.IsSuperuser() {
		t.Errorf("expected IsSuperuser true")
	}
}

func TestRepo_UpdateStatus_Disable(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedUser(t, pool)

	got, err := repo.UpdateStatus(ctx, seeded.ID, domain.UserStatusDisabled)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got.IsActive() {
		t.Errorf("expected user to be disabled")
	}
}

func TestRepo_UpdateRole_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.UpdateRole(context.Background(), uuid.New(), domain.UserRoleSuperuser)
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_List_AndCount(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	testhelper.SeedUser(t, pool)
	testhelper.SeedUser(t, pool)

	list, err := repo.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) < 2 {
		t.Fatalf("expected at least 2 users, got %d", len(list))
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count < 2 {
		t.Fatalf("expected count >= 2, got %d", count)
	}
}
