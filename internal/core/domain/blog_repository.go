package domain

import (
	"context"
	"time"
)

// BlogRow represents a blog post with its author joined in.
// Deleted rows are soft-deleted and filtered out by every read path.
type BlogRow struct {
	ID          string
	Title       string
	Content     string
	AuthorID    string
	AuthorName  string
	AuthorEmail string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Public converts a database row to its outward representation.
func (r *BlogRow) Public() Blog {
	return Blog{
		ID:      r.ID,
		Title:   r.Title,
		Content: r.Content,
		Author: Author{
			ID:    r.AuthorID,
			Name:  r.AuthorName,
			Email: r.AuthorEmail,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// BlogFilter narrows List queries. AuthorID empty means all authors.
type BlogFilter struct {
	AuthorID string
	Page     int
	Size     int
}

// BlogRepository defines the data-access contract for blog posts.
// The author reference is set once at Create and never reassigned.
type BlogRepository interface {
	// Create inserts a new post owned by authorID and returns the stored row.
	Create(ctx context.Context, id, title, content, authorID string) (*BlogRow, error)

	// GetByID returns the post with the given id.
	// Returns (nil, nil) when the post does not exist or is soft-deleted.
	GetByID(ctx context.Context, id string) (*BlogRow, error)

	// List returns a page of posts matching the filter plus the total count.
	List(ctx context.Context, filter BlogFilter) ([]BlogRow, int64, error)

	// Update replaces title and content of the given post.
	Update(ctx context.Context, id, title, content string) (*BlogRow, error)

	// SoftDelete marks the post deleted. The row is retained.
	SoftDelete(ctx context.Context, id string) error
}
