package domain

import (
	"context"
	"time"
)

// UserRow represents a user record returned from the database.
// It includes the password hash so the Logic layer can verify credentials;
// it must never be serialized outward — handlers only ever see User.
type UserRow struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}

// User is the outward-facing representation of a user. It deliberately has
// no password hash field, so no serialization path can leak it.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public converts a database row to its outward representation.
func (r *UserRow) Public() User {
	return User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		CreatedAt: r.CreatedAt,
	}
}

// UserRepository defines the data-access contract for user operations.
// Implementations live in internal/core/repository (Core layer).
// The Logic layer depends on this interface only — never on SQL or pgx directly.
type UserRepository interface {
	// GetByEmail returns the user matching the given normalized email.
	// Returns (nil, nil) when no user is found.
	GetByEmail(ctx context.Context, email string) (*UserRow, error)

	// GetByID returns the user with the given id.
	// Returns (nil, nil) when no user is found.
	GetByID(ctx context.Context, id string) (*UserRow, error)

	// ExistsByEmail returns true when a user with the given email already exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create inserts a new user and returns the stored row.
	Create(ctx context.Context, id, name, email, passwordHash string) (*UserRow, error)
}
