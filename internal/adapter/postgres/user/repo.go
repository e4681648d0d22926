// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"armatupc/internal/adapter/postgres"
	"armatupc/internal/domain"
)

const table = "users"

var columns = []string{
	"id", "email", "username", "password_hash", "role", "status",
	"created_at", "updated_at",
}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getBy(ctx, sq.Eq{"id": id}, id)
}

// GetByEmail returns a user by email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, sq.Eq{"email": email}, email)
}

// GetByUsername returns a user by username.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getBy(ctx, sq.Eq{"username": username}, username)
}

func (r *Repo) getBy(ctx context.Context, where sq.Eq, key any) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	u, err := scanUser(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "user", key)
	}
	return u, nil
}

// Create inserts a new user and returns the persisted domain.User.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "email", "username", "password_hash", "role", "status").
		Values(u.ID, u.Email, u.Username, u.PasswordHash, string(u.Role), string(u.Status)).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	created := *u
	if err := q.QueryRow(ctx, sql, args...).Scan(&created.CreatedAt, &created.UpdatedAt); err != nil {
		return nil, postgres.MapError(err, "user", u.Email)
	}
	return &created, nil
}

// UpdateParams carries the mutable user fields. Nil means "leave
// unchanged".
type UpdateParams struct {
	Email        *string
	Username     *string
	PasswordHash *string
}

// Update modifies the user's own profile fields.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*domain.User, error) {
	builder := postgres.Builder().Update(table)
	if params.Email != nil {
		builder = builder.Set("email", *params.Email)
	}
	if params.Username != nil {
		builder = builder.Set("username", *params.Username)
	}
	if params.PasswordHash != nil {
		builder = builder.Set("password_hash", *params.PasswordHash)
	}
	return r.update(ctx, id, builder)
}

// UpdateRole changes the user's role.
func (r *Repo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
	return r.update(ctx, id, postgres.Builder().Update(table).Set("role", string(role)))
}

// UpdateStatus activates or disables the user.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UserStatus) (*domain.User, error) {
	return r.update(ctx, id, postgres.Builder().Update(table).Set("status", string(status)))
}

func (r *Repo) update(ctx context.Context, id uuid.UUID, builder sq.UpdateBuilder) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := builder.
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	u, err := scanUser(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// List returns users ordered by creation time, oldest first.
func (r *Repo) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("created_at ASC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	if offset > 0 {
		builder = builder.Offset(uint64(offset))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "user", "list")
	}
	defer rows.Close()

	var list []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, postgres.MapError(err, "user", "list")
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "user", "list")
	}
	return list, nil
}

// Count returns the total number of users.
func (r *Repo) Count(ctx context.Context) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select("count(*)").
		From(table).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build select: %w", err)
	}

	var count int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, postgres.MapError(err, "user", "count")
	}
	return count, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var role, status string

	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &role, &status,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}

	u.Role = domain.UserRole(role)
	u.Status = domain.UserStatus(status)
	return &u, nil
}

func joinColumns() string {
	out := columns[0]
	for _, c := range columns[1:] {
		out += ", " + c
	}
	return out
}
