package v1

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"github.com/duynhne/blog-service/internal/core/domain"
	"github.com/duynhne/blog-service/internal/token"
	"github.com/duynhne/blog-service/middleware"
)

const minNameLength = 3

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthConfig carries the policy knobs of the authentication core.
type AuthConfig struct {
	SessionTTL        time.Duration
	BcryptCost        int
	MinPasswordLength int
}

// AuthService implements authentication business rules: credential
// verification, session issuance and revocation, and bearer-token
// validation. It depends on repository interfaces (injected via
// constructor) and MUST NOT access the database or SQL directly.
type AuthService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	codec    *token.Codec
	cfg      AuthConfig
}

// NewAuthService creates a new AuthService with the given dependencies.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository, codec *token.Codec, cfg AuthConfig) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		codec:    codec,
		cfg:      cfg,
	}
}

// Login verifies credentials, creates a session, and mints a bearer token.
// Any failure short-circuits with no session left behind; the only tolerated
// partial state is a session whose token minting failed, which simply
// expires unused.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest, meta domain.ClientMetadata) (*domain.AuthResponse, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.login", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	// Lookup user by normalized email via repository
	row, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query user: %w", err)
	}
	// An inactive account is treated exactly like a missing one.
	if row == nil || !row.IsActive {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return nil, fmt.Errorf("authenticate user: %w", ErrUserNotFound)
	}

	// Verify password
	err = bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(req.Password))
	if err != nil {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return nil, fmt.Errorf("authenticate user: %w", ErrInvalidCredentials)
	}

	// Create session
	sessionID := uuid.NewString()
	expiresAt := time.Now().Add(s.cfg.SessionTTL)
	session, err := s.sessions.Create(ctx, sessionID, row.ID, meta, expiresAt)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create session: %w", err)
	}

	// Mint token referencing the session
	tokenString, err := s.codec.Encode(row.ID, session.ID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("mint token: %w", err)
	}

	span.SetAttributes(
		attribute.String("user.id", row.ID),
		attribute.Bool("auth.success", true),
	)
	span.AddEvent("user.authenticated")

	return &domain.AuthResponse{
		Token: tokenString,
		User:  row.Public(),
	}, nil
}

// Register validates the registration request and creates the user.
// The plaintext password is hashed immediately and never persisted or logged.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.register", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)

	if len(name) < minNameLength {
		return nil, fmt.Errorf("%w: name must be at least %d characters", ErrInvalidInput, minNameLength)
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	if len(req.Password) < s.cfg.MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, s.cfg.MinPasswordLength)
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// Check if email already exists
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		span.SetAttributes(attribute.Bool("registration.success", false))
		return nil, fmt.Errorf("register user: %w", ErrUserExists)
	}

	// Insert new user
	row, err := s.users.Create(ctx, uuid.NewString(), name, email, string(passwordHash))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("insert user: %w", err)
	}

	user := row.Public()
	span.SetAttributes(
		attribute.String("user.id", user.ID),
		attribute.Bool("registration.success", true),
	)
	span.AddEvent("user.registered")

	return &user, nil
}

// Logout revokes the session. Idempotent: revoking a missing or
// already-revoked session succeeds without effect.
func (s *AuthService) Logout(ctx context.Context, sessionID, userID string) error {
	ctx, span := middleware.StartSpan(ctx, "auth.logout", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	affected, err := s.sessions.Revoke(ctx, sessionID, userID)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("revoke session: %w", err)
	}

	span.SetAttributes(attribute.Bool("session.revoked", affected > 0))
	return nil
}

// RevokeToken revokes the session referenced by the bearer token. Only the
// token's signature is checked — the session need not still be valid, so
// logging out twice is a harmless no-op. A token that cannot be decoded
// yields ErrInvalidToken.
func (s *AuthService) RevokeToken(ctx context.Context, tokenString string) error {
	ctx, span := middleware.StartSpan(ctx, "auth.revoke_token", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		return fmt.Errorf("decode token: %w", ErrInvalidToken)
	}

	return s.Logout(ctx, claims.SessionID, claims.UserID)
}

// Authenticate validates a bearer token and its referenced session,
// returning the resolved user and session. The session re-check on every
// request is the sole revocation mechanism: a revoked session is rejected
// on its next use even though its token has not expired.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*domain.User, *domain.SessionRow, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.authenticate", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		span.SetAttributes(attribute.Bool("session.valid", false))
		return nil, nil, fmt.Errorf("decode token: %w", ErrInvalidToken)
	}

	session, err := s.sessions.FindValid(ctx, claims.SessionID, claims.UserID)
	if err != nil {
		span.RecordError(err)
		return nil, nil, fmt.Errorf("query session: %w", err)
	}
	if session == nil {
		span.SetAttributes(attribute.Bool("session.valid", false))
		return nil, nil, fmt.Errorf("lookup session: %w", ErrSessionNotFound)
	}

	row, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		span.RecordError(err)
		return nil, nil, fmt.Errorf("query user: %w", err)
	}
	if row == nil || !row.IsActive {
		span.SetAttributes(attribute.Bool("session.valid", false))
		return nil, nil, fmt.Errorf("resolve user: %w", ErrUserNotFound)
	}

	user := row.Public()
	span.SetAttributes(
		attribute.String("user.id", user.ID),
		attribute.Bool("session.valid", true),
	)

	return &user, session, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
