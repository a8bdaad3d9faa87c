package v1

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/blog-service/internal/core/domain"
	"github.com/duynhne/blog-service/internal/logger"
	logicv1 "github.com/duynhne/blog-service/internal/logic/v1"
	"github.com/duynhne/blog-service/middleware"
)

// CreateBlog creates a post owned by the authenticated user.
func (h *Handler) CreateBlog(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	log := logger.FromContext(ctx)

	user, ok := currentUser(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var req domain.BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	blog, err := h.blogs.Create(ctx, user.ID, req)
	if err != nil {
		span.RecordError(err)
		log.Warn().Err(err).Msg("Blog creation failed")

		if errors.Is(err, logicv1.ErrInvalidInput) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c)
		return
	}

	log.Info().Str("blog_id", blog.ID).Str("user_id", user.ID).Msg("Blog created")
	respondCreated(c, gin.H{"blog": blog}, "Blog Posted")
}

// GetBlog returns a single post by id. Public route.
func (h *Handler) GetBlog(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	blog, err := h.blogs.Get(ctx, c.Param("id"))
	if err != nil {
		span.RecordError(err)

		if errors.Is(err, logicv1.ErrBlogNotFound) {
			respondNotFound(c, "Blog Post not Found!")
			return
		}
		respondInternalError(c)
		return
	}

	respondOK(c, blog, "OK")
}

// ListBlogs returns a page of all posts. Public route.
func (h *Handler) ListBlogs(c *gin.Context) {
	h.listBlogs(c, "")
}

// ListMyBlogs returns a page of the authenticated user's posts.
func (h *Handler) ListMyBlogs(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondUnauthorized(c)
		return
	}
	h.listBlogs(c, user.ID)
}

func (h *Handler) listBlogs(c *gin.Context, authorID string) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	list, err := h.blogs.List(ctx, authorID, page, size)
	if err != nil {
		span.RecordError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("Blog listing failed")
		respondInternalError(c)
		return
	}

	respondOK(c, list, "OK")
}

// UpdateBlog replaces title and content of a post the caller owns.
func (h *Handler) UpdateBlog(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	log := logger.FromContext(ctx)

	user, ok := currentUser(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var req domain.BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	blog, err := h.blogs.Update(ctx, user.ID, c.Param("id"), req)
	if err != nil {
		span.RecordError(err)
		log.Warn().Err(err).Msg("Blog update failed")
		respondBlogMutationError(c, err)
		return
	}

	log.Info().Str("blog_id", blog.ID).Str("user_id", user.ID).Msg("Blog updated")
	respondOK(c, gin.H{"blog": blog}, "Blog updated!")
}

// DeleteBlog soft-deletes a post the caller owns.
func (h *Handler) DeleteBlog(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	log := logger.FromContext(ctx)

	user, ok := currentUser(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	if err := h.blogs.Delete(ctx, user.ID, c.Param("id")); err != nil {
		span.RecordError(err)
		log.Warn().Err(err).Msg("Blog deletion failed")
		respondBlogMutationError(c, err)
		return
	}

	log.Info().Str("blog_id", c.Param("id")).Str("user_id", user.ID).Msg("Blog deleted")
	respondNoContent(c)
}

// respondBlogMutationError maps mutation failures: a missing post is 404, a
// post owned by someone else is 403. The two are deliberately
// distinguishable from each other and from 401.
func respondBlogMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, logicv1.ErrInvalidInput):
		respondBadRequest(c, err.Error())
	case errors.Is(err, logicv1.ErrBlogNotFound):
		respondNotFound(c, "Blog Post not Found!")
	case errors.Is(err, logicv1.ErrForbidden):
		respondForbidden(c, "You do not own this blog post")
	default:
		respondInternalError(c)
	}
}
