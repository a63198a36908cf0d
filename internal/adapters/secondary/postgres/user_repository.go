package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lorrc/helpdesk-backend/internal/core/domain"
	apperrors "github.com/lorrc/helpdesk-backend/internal/core/errors"
	"github.com/lorrc/helpdesk-backend/internal/core/ports"
)

const uniqueViolationCode = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(pool *pgxpool.Pool) ports.UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
INSERT INTO users (id, full_name, email, hashed_password, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

	_, err := r.pool.Exec(ctx, query,
		pgUUID(user.ID),
		user.FullName,
		user.Email,
		user.HashedPassword,
		string(user.Role),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.ErrUserExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `
SELECT id, full_name, email, hashed_password, role, created_at, updated_at
FROM users
WHERE id = $1
`
	return r.scanUser(r.pool.QueryRow(ctx, query, pgUUID(id)))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
SELECT id, full_name, email, hashed_password, role, created_at, updated_at
FROM users
WHERE email = $1
`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	const query = `
SELECT id, full_name, email, hashed_password, role, created_at, updated_at
FROM users
WHERE role = $1
ORDER BY full_name, email
`

	rows, err := r.pool.Query(ctx, query, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := r.scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	user, err := scanUserFrom(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) scanUserRow(rows pgx.Rows) (*domain.User, error) {
	return scanUserFrom(rows)
}

func scanUserFrom(row pgx.Row) (*domain.User, error) {
	var (
		id        pgtype.UUID
		user      domain.User
		role      string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	if err := row.Scan(&id, &user.FullName, &user.Email, &user.HashedPassword, &role, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	user.ID = uuid.UUID(id.Bytes)
	user.Role = domain.Role(role)
	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time
	return &user, nil
}
