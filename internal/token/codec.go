// Package token implements the stateless bearer-token codec.
//
// A token is a signed, short-lived capability referencing a server-side
// session: it carries the user id and session id, nothing else. Tokens are
// never stored — any token whose embedded session is still valid is
// honored, so revoking the session invalidates every outstanding token for
// it at once.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Decode failure kinds. Handlers collapse all three into one generic
// unauthorized response; the distinction exists for logs and tests only.
var (
	ErrMalformedToken = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token expired")
	ErrBadSignature   = errors.New("bad token signature")
)

// Claims are the JWT claims carried by a bearer token.
type Claims struct {
	UserID    string `json:"uid"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Codec signs and verifies bearer tokens with a process-wide HMAC secret.
// The secret and lifetime are fixed at construction; rotation is out of
// scope for this design.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a Codec with the given signing secret and token lifetime.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Encode mints a signed token for the given user and session.
func (c *Codec) Encode(userID, sessionID string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:    userID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode parses and verifies a token, returning its claims.
// Failures map to exactly one of ErrMalformedToken, ErrTokenExpired or
// ErrBadSignature.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		default:
			return nil, ErrMalformedToken
		}
	}
	if !parsed.Valid || claims.UserID == "" || claims.SessionID == "" {
		return nil, ErrMalformedToken
	}

	return claims, nil
}
