package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duynhne/blog-service/internal/core/domain"
)

// PgxSessionRepository implements domain.SessionRepository using pgxpool.
//
// All reads and writes go through the same pool, so a Revoke that has
// returned is observed by every later FindValid — the read-after-write
// guarantee the auth middleware relies on for instant revocation.
type PgxSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PgxSessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PgxSessionRepository {
	return &PgxSessionRepository{pool: pool}
}

// Create inserts a new session for the given user.
func (r *PgxSessionRepository) Create(ctx context.Context, id, userID string, meta domain.ClientMetadata, expiresAt time.Time) (*domain.SessionRow, error) {
	query := `
		INSERT INTO sessions (id, user_id, user_agent, ip, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, user_agent, ip, revoked, expires_at, created_at
	`

	var row domain.SessionRow
	err := r.pool.QueryRow(ctx, query, id, userID, meta.UserAgent, meta.IP, expiresAt).Scan(
		&row.ID, &row.UserID, &row.UserAgent, &row.IP, &row.Revoked, &row.ExpiresAt, &row.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &row, nil
}

// FindValid looks up a session by id and owner, filtering out revoked and
// expired rows in the query itself.
// Returns (nil, nil) when no such valid session exists.
func (r *PgxSessionRepository) FindValid(ctx context.Context, id, userID string) (*domain.SessionRow, error) {
	query := `
		SELECT id, user_id, user_agent, ip, revoked, expires_at, created_at
		FROM sessions
		WHERE id = $1 AND user_id = $2 AND revoked = false AND expires_at > now()
	`

	var row domain.SessionRow
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&row.ID, &row.UserID, &row.UserAgent, &row.IP, &row.Revoked, &row.ExpiresAt, &row.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &row, nil
}

// Revoke marks the session revoked. Idempotent: a missing or already-revoked
// session affects zero rows and returns no error.
func (r *PgxSessionRepository) Revoke(ctx context.Context, id, userID string) (int64, error) {
	query := `UPDATE sessions SET revoked = true WHERE id = $1 AND user_id = $2 AND revoked = false`

	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
