package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/blog-service/internal/core/domain"
	"github.com/duynhne/blog-service/internal/logger"
	logicv1 "github.com/duynhne/blog-service/internal/logic/v1"
	"github.com/duynhne/blog-service/middleware"
)

// Handler groups HTTP handlers for the API v1.
// Dependencies are injected via the constructor — no global state.
type Handler struct {
	auth  *logicv1.AuthService
	blogs *logicv1.BlogService
}

// NewHandler creates a new Handler with the given services.
func NewHandler(auth *logicv1.AuthService, blogs *logicv1.BlogService) *Handler {
	return &Handler{auth: auth, blogs: blogs}
}

// RegisterRoutes registers all API v1 routes on the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.Register)
	rg.POST("/auth/login", h.Login)
	rg.GET("/auth/logout", h.Logout)
	rg.GET("/auth/me", h.RequireAuth(), h.GetMe)

	rg.GET("/blogs", h.ListBlogs)
	rg.GET("/blogs/me", h.RequireAuth(), h.ListMyBlogs)
	rg.GET("/blogs/:id", h.GetBlog)
	rg.POST("/blogs", h.RequireAuth(), h.CreateBlog)
	rg.PUT("/blogs/:id", h.RequireAuth(), h.UpdateBlog)
	rg.DELETE("/blogs/:id", h.RequireAuth(), h.DeleteBlog)
}

// Login handles HTTP request for user login.
func (h *Handler) Login(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	log := logger.FromContext(ctx)

	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		respondBadRequest(c, "Invalid login credentials")
		return
	}

	meta := domain.ClientMetadata{
		UserAgent: c.Request.UserAgent(),
		IP:        c.ClientIP(),
	}

	response, err := h.auth.Login(ctx, req, meta)
	if err != nil {
		span.RecordError(err)
		log.Warn().Err(err).Msg("Login failed")

		switch {
		case errors.Is(err, logicv1.ErrInvalidInput):
			respondBadRequest(c, "Invalid login credentials")
		// Unknown email and wrong password must produce identical
		// responses, so account existence cannot be probed.
		case errors.Is(err, logicv1.ErrUserNotFound), errors.Is(err, logicv1.ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, "Invalid email or password!", "unauthorized")
		default:
			respondInternalError(c)
		}
		return
	}

	log.Info().Str("user_id", response.User.ID).Msg("Login successful")
	respondOK(c, response, "Login Successful")
}

// Register handles HTTP request for user registration.
func (h *Handler) Register(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	log := logger.FromContext(ctx)

	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.SetAttributes(attribute.Bool("request.valid", false))
		respondBadRequest(c, "Invalid request body")
		return
	}

	user, err := h.auth.Register(ctx, req)
	if err != nil {
		span.RecordError(err)
		log.Warn().Err(err).Msg("Registration failed")

		switch {
		case errors.Is(err, logicv1.ErrInvalidInput):
			respondBadRequest(c, err.Error())
		case errors.Is(err, logicv1.ErrUserExists):
			respondConflict(c, "User with the email already exists!")
		default:
			respondInternalError(c)
		}
		return
	}

	log.Info().Str("user_id", user.ID).Msg("Registration successful")
	respondCreated(c, user, "User Created!")
}

// Logout revokes the session referenced by the bearer token. The token only
// needs a valid signature — the session may already be revoked, so a repeat
// logout still responds 204. Requests without a usable token get 401.
func (h *Handler) Logout(c *gin.Context) {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	log := logger.FromContext(ctx)

	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		respondUnauthorized(c)
		return
	}

	if err := h.auth.RevokeToken(ctx, strings.TrimPrefix(authHeader, bearerPrefix)); err != nil {
		span.RecordError(err)
		log.Warn().Err(err).Msg("Logout failed")

		if errors.Is(err, logicv1.ErrInvalidToken) {
			respondUnauthorized(c)
			return
		}
		respondInternalError(c)
		return
	}

	log.Info().Msg("Logout successful")
	respondNoContent(c)
}

// GetMe returns the authenticated user.
func (h *Handler) GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondUnauthorized(c)
		return
	}
	respondOK(c, user, "OK")
}
