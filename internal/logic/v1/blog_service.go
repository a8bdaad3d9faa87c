package v1

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/blog-service/internal/core/domain"
	"github.com/duynhne/blog-service/middleware"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// BlogService implements blog post business rules, including the ownership
// check guarding every mutation: only the recorded author may update or
// delete a post, and the check runs before any write is applied.
type BlogService struct {
	blogs domain.BlogRepository
}

// NewBlogService creates a new BlogService with the given repository.
func NewBlogService(blogs domain.BlogRepository) *BlogService {
	return &BlogService{blogs: blogs}
}

// Create inserts a new post owned by the authenticated user.
func (s *BlogService) Create(ctx context.Context, authorID string, req domain.BlogRequest) (*domain.Blog, error) {
	ctx, span := middleware.StartSpan(ctx, "blog.create", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrInvalidInput)
	}

	row, err := s.blogs.Create(ctx, uuid.NewString(), title, content, authorID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("insert blog: %w", err)
	}

	blog := row.Public()
	span.SetAttributes(attribute.String("blog.id", blog.ID))
	return &blog, nil
}

// Get returns the post with the given id.
func (s *BlogService) Get(ctx context.Context, id string) (*domain.Blog, error) {
	ctx, span := middleware.StartSpan(ctx, "blog.get", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	if uuid.Validate(id) != nil {
		return nil, fmt.Errorf("lookup blog %q: %w", id, ErrBlogNotFound)
	}

	row, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query blog: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("lookup blog %q: %w", id, ErrBlogNotFound)
	}

	blog := row.Public()
	return &blog, nil
}

// List returns a page of posts. authorID empty means all authors.
func (s *BlogService) List(ctx context.Context, authorID string, page, size int) (*domain.BlogList, error) {
	ctx, span := middleware.StartSpan(ctx, "blog.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	rows, total, err := s.blogs.List(ctx, domain.BlogFilter{
		AuthorID: authorID,
		Page:     page,
		Size:     size,
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list blogs: %w", err)
	}

	blogs := make([]domain.Blog, 0, len(rows))
	for _, row := range rows {
		blogs = append(blogs, row.Public())
	}

	return &domain.BlogList{
		Blogs: blogs,
		Pagination: domain.Pagination{
			Total:   total,
			HasNext: int64(page)*int64(size) < total,
			Page:    page,
		},
	}, nil
}

// Update replaces title and content of the given post after the ownership check.
func (s *BlogService) Update(ctx context.Context, userID, id string, req domain.BlogRequest) (*domain.Blog, error) {
	ctx, span := middleware.StartSpan(ctx, "blog.update", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrInvalidInput)
	}

	if err := s.authorize(ctx, userID, id); err != nil {
		span.SetAttributes(attribute.Bool("blog.authorized", false))
		return nil, err
	}

	row, err := s.blogs.Update(ctx, id, title, content)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("update blog: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("update blog %q: %w", id, ErrBlogNotFound)
	}

	blog := row.Public()
	return &blog, nil
}

// Delete soft-deletes the given post after the ownership check.
func (s *BlogService) Delete(ctx context.Context, userID, id string) error {
	ctx, span := middleware.StartSpan(ctx, "blog.delete", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	if err := s.authorize(ctx, userID, id); err != nil {
		span.SetAttributes(attribute.Bool("blog.authorized", false))
		return err
	}

	if err := s.blogs.SoftDelete(ctx, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete blog: %w", err)
	}

	return nil
}

// authorize loads the post and compares its author to the caller.
// Missing or soft-deleted posts surface as ErrBlogNotFound, which is
// deliberately distinguishable from ErrForbidden at the HTTP boundary.
func (s *BlogService) authorize(ctx context.Context, userID, id string) error {
	// A malformed id cannot reference a post; report it as missing rather
	// than letting the store reject the value.
	if uuid.Validate(id) != nil {
		return fmt.Errorf("lookup blog %q: %w", id, ErrBlogNotFound)
	}

	row, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("query blog: %w", err)
	}
	if row == nil {
		return fmt.Errorf("lookup blog %q: %w", id, ErrBlogNotFound)
	}
	if row.AuthorID != userID {
		return fmt.Errorf("blog %q owned by another user: %w", id, ErrForbidden)
	}
	return nil
}
