// Package identity holds the authenticated-user context that gates every
// remote operation. A nil *Session means anonymous: the sync layer degrades
// to local-only mode transparently.
package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSession    = errors.New("no active session")
	ErrInvalidToken = errors.New("invalid token")
)

// Session is the present half of the identity tri-state: a stable user
// identifier plus contact address, and the tokens backing remote calls.
// It is set exactly at sign-in/out transitions and read-only everywhere
// else.
type Session struct {
	UserID       string
	Email        string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Active reports whether s represents a signed-in user.
func (s *Session) Active() bool {
	return s != nil && s.UserID != ""
}

// Expired reports whether the access token lifetime has passed. A session
// without an expiry never expires client-side.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.ExpiresAt.IsZero() {
		return false
	}
	return now.After(s.ExpiresAt)
}

// FromTokens builds a Session out of the tokens issued by the backend. The
// access token is decoded without signature verification: the signing
// secret never leaves the backend, which enforces the claims server-side;
// the client only needs the subject and email out of it.
func FromTokens(accessToken, refreshToken string) (*Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	sess := &Session{
		UserID:       sub,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	if email, ok := claims["email"].(string); ok {
		sess.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		sess.ExpiresAt = exp.Time
	}
	return sess, nil
}

// TokenRole extracts the "role" claim from a backend-issued key without
// verifying it. Used to sanity-check the configured public client key
// (expected role "anon").
func TokenRole(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	role, _ := claims["role"].(string)
	return role, nil
}
