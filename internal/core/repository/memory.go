package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/duynhne/blog-service/internal/core/domain"
)

// In-memory implementations of the domain repositories. They back the
// service tests and local development without a database, and hold the
// same contracts as the pgx implementations (mutex-guarded single-record
// writes, validity filtering on read).

// InMemoryUserRepository is an in-memory implementation of domain.UserRepository.
type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.UserRow // id -> row
}

// NewInMemoryUserRepository creates a new in-memory user repository.
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: make(map[string]domain.UserRow)}
}

// GetByEmail returns the user matching the given normalized email.
func (r *InMemoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.UserRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.users {
		if row.Email == email {
			row := row
			return &row, nil
		}
	}
	return nil, nil
}

// GetByID returns the user with the given id.
func (r *InMemoryUserRepository) GetByID(_ context.Context, id string) (*domain.UserRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

// ExistsByEmail returns true when a user with the given email already exists.
func (r *InMemoryUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.users {
		if row.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// Create inserts a new user and returns the stored row.
func (r *InMemoryUserRepository) Create(_ context.Context, id, name, email, passwordHash string) (*domain.UserRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := domain.UserRow{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	r.users[id] = row
	return &row, nil
}

// Deactivate clears the active flag; used by tests exercising inactive-user login.
func (r *InMemoryUserRepository) Deactivate(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if row, ok := r.users[id]; ok {
		row.IsActive = false
		r.users[id] = row
	}
}

// InMemorySessionRepository is an in-memory implementation of domain.SessionRepository.
type InMemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]domain.SessionRow // id -> row
}

// NewInMemorySessionRepository creates a new in-memory session repository.
func NewInMemorySessionRepository() *InMemorySessionRepository {
	return &InMemorySessionRepository{sessions: make(map[string]domain.SessionRow)}
}

// Create inserts a new session for the given user.
func (r *InMemorySessionRepository) Create(_ context.Context, id, userID string, meta domain.ClientMetadata, expiresAt time.Time) (*domain.SessionRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := domain.SessionRow{
		ID:        id,
		UserID:    userID,
		UserAgent: meta.UserAgent,
		IP:        meta.IP,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	r.sessions[id] = row
	return &row, nil
}

// FindValid returns the session only when it matches both ids, is not
// revoked, and has not expired.
func (r *InMemorySessionRepository) FindValid(_ context.Context, id, userID string) (*domain.SessionRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.sessions[id]
	if !ok || row.UserID != userID || row.Revoked || !time.Now().Before(row.ExpiresAt) {
		return nil, nil
	}
	return &row, nil
}

// Revoke marks the session revoked, returning the number of rows affected.
func (r *InMemorySessionRepository) Revoke(_ context.Context, id, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.sessions[id]
	if !ok || row.UserID != userID || row.Revoked {
		return 0, nil
	}
	row.Revoked = true
	r.sessions[id] = row
	return 1, nil
}

// Expire rewinds the session expiry; used by tests exercising expired sessions.
func (r *InMemorySessionRepository) Expire(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if row, ok := r.sessions[id]; ok {
		row.ExpiresAt = time.Now().Add(-time.Minute)
		r.sessions[id] = row
	}
}

// InMemoryBlogRepository is an in-memory implementation of domain.BlogRepository.
type InMemoryBlogRepository struct {
	mu    sync.RWMutex
	blogs map[string]blogRecord // id -> record
	users domain.UserRepository
}

type blogRecord struct {
	row     domain.BlogRow
	deleted bool
}

// NewInMemoryBlogRepository creates a new in-memory blog repository.
// The user repository supplies author name/email for joined reads.
func NewInMemoryBlogRepository(users domain.UserRepository) *InMemoryBlogRepository {
	return &InMemoryBlogRepository{
		blogs: make(map[string]blogRecord),
		users: users,
	}
}

// Create inserts a new post owned by authorID and returns the stored row.
func (r *InMemoryBlogRepository) Create(ctx context.Context, id, title, content, authorID string) (*domain.BlogRow, error) {
	author, err := r.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	row := domain.BlogRow{
		ID:        id,
		Title:     title,
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if author != nil {
		row.AuthorName = author.Name
		row.AuthorEmail = author.Email
	}
	r.blogs[id] = blogRecord{row: row}
	return &row, nil
}

// GetByID returns the post with the given id, or (nil, nil) when it does
// not exist or is soft-deleted.
func (r *InMemoryBlogRepository) GetByID(_ context.Context, id string) (*domain.BlogRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.blogs[id]
	if !ok || rec.deleted {
		return nil, nil
	}
	row := rec.row
	return &row, nil
}

// List returns a page of posts matching the filter plus the total count.
func (r *InMemoryBlogRepository) List(_ context.Context, filter domain.BlogFilter) ([]domain.BlogRow, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []domain.BlogRow
	for _, rec := range r.blogs {
		if rec.deleted {
			continue
		}
		if filter.AuthorID != "" && rec.row.AuthorID != filter.AuthorID {
			continue
		}
		all = append(all, rec.row)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	start := (filter.Page - 1) * filter.Size
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + filter.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

// Update replaces title and content of the given post.
func (r *InMemoryBlogRepository) Update(_ context.Context, id, title, content string) (*domain.BlogRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.blogs[id]
	if !ok || rec.deleted {
		return nil, nil
	}
	rec.row.Title = title
	rec.row.Content = content
	rec.row.UpdatedAt = time.Now()
	r.blogs[id] = rec
	row := rec.row
	return &row, nil
}

// SoftDelete marks the post deleted. The record is retained.
func (r *InMemoryBlogRepository) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.blogs[id]
	if !ok {
		return nil
	}
	rec.deleted = true
	r.blogs[id] = rec
	return nil
}
