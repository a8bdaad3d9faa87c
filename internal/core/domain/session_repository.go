package domain

import (
	"context"
	"time"
)

// SessionRow represents one authenticated login. A session is valid iff
// it is not revoked and its expiry is in the future. Rows are never
// deleted; revoked sessions stay behind for audit.
type SessionRow struct {
	ID        string
	UserID    string
	UserAgent string
	IP        string
	Revoked   bool
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ClientMetadata carries informational request attributes recorded on the
// session at login time. Neither field is enforced on later requests.
type ClientMetadata struct {
	UserAgent string
	IP        string
}

// SessionRepository defines the data-access contract for session operations.
// Implementations live in internal/core/repository (Core layer).
type SessionRepository interface {
	// Create inserts a new session for the given user.
	Create(ctx context.Context, id, userID string, meta ClientMetadata, expiresAt time.Time) (*SessionRow, error)

	// FindValid looks up a session by id and owner, returning it only when
	// it is not revoked and not expired. The double key (id + owner) means
	// a session id minted for one user can never validate another.
	// Returns (nil, nil) when no such valid session exists.
	FindValid(ctx context.Context, id, userID string) (*SessionRow, error)

	// Revoke marks the session revoked and returns the number of rows
	// affected. Revoking a missing or already-revoked session is a no-op
	// returning zero, never an error.
	Revoke(ctx context.Context, id, userID string) (int64, error)
}
