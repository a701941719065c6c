// Package auth holds the client side of authentication: the token itself is
// issued by an external identity provider, so the session only carries it,
// reads its claims, and warns when it is about to expire.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"trucker-client/internal/common/logger"
)

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type Session struct {
	token  string
	claims *Claims
}

// NewSession parses the externally issued bearer token. The client does not
// hold the signing secret, so claims are read unverified; the server rejects
// tampered tokens on every RPC anyway.
func NewSession(token string) (*Session, error) {
	if token == "" {
		return nil, fmt.Errorf("api token is required")
	}

	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token has no user_id claim")
	}

	s := &Session{token: token, claims: claims}
	if exp := claims.ExpiresAt; exp != nil && time.Until(exp.Time) < 10*time.Minute {
		logger.Warn("token_near_expiry",
			fmt.Sprintf("token expires at %s", exp.Time.Format(time.RFC3339)),
			"", "", "")
	}
	return s, nil
}

func (s *Session) Authorization() string {
	return "Bearer " + s.token
}

func (s *Session) UserID() string {
	return s.claims.UserID
}

// Expired reports whether the token's exp claim has passed. Tokens without
// an exp claim never expire client-side.
func (s *Session) Expired(now time.Time) bool {
	exp := s.claims.ExpiresAt
	return exp != nil && now.After(exp.Time)
}
