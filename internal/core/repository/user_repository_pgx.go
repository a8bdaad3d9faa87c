package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duynhne/blog-service/internal/core/domain"
)

// PgxUserRepository implements domain.UserRepository using pgxpool.
type PgxUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PgxUserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{pool: pool}
}

// GetByEmail returns the user matching the given normalized email.
// Returns (nil, nil) when no user is found.
func (r *PgxUserRepository) GetByEmail(ctx context.Context, email string) (*domain.UserRow, error) {
	query := `
		SELECT id, name, email, password_hash, is_active, created_at
		FROM users
		WHERE email = $1
	`

	var row domain.UserRow
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&row.ID, &row.Name, &row.Email, &row.PasswordHash, &row.IsActive, &row.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &row, nil
}

// GetByID returns the user with the given id.
// Returns (nil, nil) when no user is found.
func (r *PgxUserRepository) GetByID(ctx context.Context, id string) (*domain.UserRow, error) {
	query := `
		SELECT id, name, email, password_hash, is_active, created_at
		FROM users
		WHERE id = $1
	`

	var row domain.UserRow
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.Name, &row.Email, &row.PasswordHash, &row.IsActive, &row.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &row, nil
}

// ExistsByEmail returns true when a user with the given email already exists.
func (r *PgxUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// Create inserts a new user and returns the stored row.
func (r *PgxUserRepository) Create(ctx context.Context, id, name, email, passwordHash string) (*domain.UserRow, error) {
	query := `
		INSERT INTO users (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, password_hash, is_active, created_at
	`

	var row domain.UserRow
	err := r.pool.QueryRow(ctx, query, id, name, email, passwordHash).Scan(
		&row.ID, &row.Name, &row.Email, &row.PasswordHash, &row.IsActive, &row.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &row, nil
}
