// Package session supplies the bearer credential the lead service client
// attaches to every request.
package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jordanlanch/leadmanager/pkg/domain"
	"github.com/jordanlanch/leadmanager/pkg/models"
)

// Provider is a read-only source of the bearer token
type Provider interface {
	Token(ctx context.Context) (string, error)
}

// Session is what a successful login leaves behind
type Session struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Store persists the current session
type Store interface {
	Provider
	Save(ctx context.Context, s Session) error
	Load(ctx context.Context) (*Session, error)
	Clear(ctx context.Context) error
}

// Static is a Provider with a fixed token
type Static string

// Token returns the fixed token, or UNAUTHORIZED when it is empty
func (s Static) Token(context.Context) (string, error) {
	if s == "" {
		return "", domain.NewUnauthorizedError()
	}
	return string(s), nil
}

// ExpiresAt reads the exp claim of a JWT without verifying its signature.
// The client cannot verify tokens; it only uses the claim to avoid sending
// one the server will reject. ok is false when the token has no exp claim.
func ExpiresAt(token string) (exp time.Time, ok bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// tokenFor returns the token of s, failing when it is missing or expired
func tokenFor(s *Session, now time.Time) (string, error) {
	if s == nil || s.Token == "" {
		return "", domain.NewUnauthorizedError()
	}
	if exp, ok := ExpiresAt(s.Token); ok && !now.Before(exp) {
		return "", domain.NewSessionExpiredError()
	}
	return s.Token, nil
}
