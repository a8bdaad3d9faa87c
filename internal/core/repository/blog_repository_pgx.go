package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duynhne/blog-service/internal/core/domain"
)

// PgxBlogRepository implements domain.BlogRepository using pgxpool.
type PgxBlogRepository struct {
	pool *pgxpool.Pool
}

// NewBlogRepository creates a new PgxBlogRepository.
func NewBlogRepository(pool *pgxpool.Pool) *PgxBlogRepository {
	return &PgxBlogRepository{pool: pool}
}

const blogColumns = `
	b.id, b.title, b.content, b.author_id, u.name, u.email, b.created_at, b.updated_at
`

// Create inserts a new post owned by authorID and returns the stored row.
func (r *PgxBlogRepository) Create(ctx context.Context, id, title, content, authorID string) (*domain.BlogRow, error) {
	query := `
		INSERT INTO blogs (id, title, content, author_id)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.pool.Exec(ctx, query, id, title, content, authorID); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// GetByID returns the post with the given id, author joined in.
// Returns (nil, nil) when the post does not exist or is soft-deleted.
func (r *PgxBlogRepository) GetByID(ctx context.Context, id string) (*domain.BlogRow, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		JOIN users u ON b.author_id = u.id
		WHERE b.id = $1 AND b.deleted = false
	`

	var row domain.BlogRow
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.Title, &row.Content, &row.AuthorID, &row.AuthorName, &row.AuthorEmail,
		&row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &row, nil
}

// List returns a page of posts matching the filter plus the total count.
func (r *PgxBlogRepository) List(ctx context.Context, filter domain.BlogFilter) ([]domain.BlogRow, int64, error) {
	offset := (filter.Page - 1) * filter.Size

	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		JOIN users u ON b.author_id = u.id
		WHERE b.deleted = false AND ($1 = '' OR b.author_id::text = $1)
		ORDER BY b.created_at DESC
		OFFSET $2 LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, filter.AuthorID, offset, filter.Size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var blogs []domain.BlogRow
	for rows.Next() {
		var row domain.BlogRow
		if err := rows.Scan(
			&row.ID, &row.Title, &row.Content, &row.AuthorID, &row.AuthorName, &row.AuthorEmail,
			&row.CreatedAt, &row.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `
		SELECT count(*) FROM blogs b
		WHERE b.deleted = false AND ($1 = '' OR b.author_id::text = $1)
	`
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, filter.AuthorID).Scan(&total); err != nil {
		return nil, 0, err
	}

	return blogs, total, nil
}

// Update replaces title and content of the given post.
// Returns (nil, nil) when the post does not exist or is soft-deleted.
func (r *PgxBlogRepository) Update(ctx context.Context, id, title, content string) (*domain.BlogRow, error) {
	query := `
		UPDATE blogs
		SET title = $2, content = $3, updated_at = now()
		WHERE id = $1 AND deleted = false
	`
	tag, err := r.pool.Exec(ctx, query, id, title, content)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

// SoftDelete marks the post deleted. The row is retained.
func (r *PgxBlogRepository) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE blogs SET deleted = true, updated_at = now() WHERE id = $1 AND deleted = false`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
