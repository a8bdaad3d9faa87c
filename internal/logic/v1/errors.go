// Package v1 provides authentication and blog business logic for API version 1.
//
// Error Handling:
// This package defines sentinel errors that represent common failures.
// These errors should be wrapped with context using fmt.Errorf("%w") when
// returned from business logic methods.
//
// Example Usage:
//
//	if user == nil {
//	    return nil, fmt.Errorf("authenticate user %q: %w", email, ErrUserNotFound)
//	}
//
// Error Checking (in handlers):
//
//	switch {
//	case errors.Is(err, logicv1.ErrInvalidCredentials), errors.Is(err, logicv1.ErrUserNotFound):
//	    response.Unauthorized(c, "Invalid email or password!")
//	default:
//	    response.InternalServerError(c, "Something went wrong, please try again.")
//	}
//
// Wrong-password and unknown-email failures intentionally map to the same
// sentinel pair and the same HTTP response, so callers cannot probe which
// accounts exist. The same collapsing applies to the token/session sentinels.
package v1

import "errors"

// Sentinel errors for authentication and blog operations.
// These errors should be wrapped with context using fmt.Errorf("%w") when returned.
var (
	// ErrInvalidInput indicates a malformed request shape (missing or
	// out-of-policy fields).
	// HTTP Status: 400 Bad Request
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials indicates the provided credentials are incorrect.
	// HTTP Status: 401 Unauthorized
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound indicates the user does not exist or is inactive.
	// HTTP Status: 401 Unauthorized (don't reveal user existence)
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists indicates the email already exists in the system.
	// HTTP Status: 409 Conflict
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidToken indicates the bearer token failed to decode or verify.
	// HTTP Status: 401 Unauthorized
	ErrInvalidToken = errors.New("invalid token")

	// ErrSessionNotFound indicates the referenced session does not exist,
	// belongs to another user, or has been revoked.
	// HTTP Status: 401 Unauthorized
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired indicates the referenced session has expired.
	// HTTP Status: 401 Unauthorized
	ErrSessionExpired = errors.New("session expired")

	// ErrForbidden indicates the caller is authenticated but does not own
	// the target resource.
	// HTTP Status: 403 Forbidden
	ErrForbidden = errors.New("forbidden")

	// ErrBlogNotFound indicates the blog post does not exist or is deleted.
	// HTTP Status: 404 Not Found
	ErrBlogNotFound = errors.New("blog post not found")
)
