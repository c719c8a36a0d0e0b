package models

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPair is the credential pair issued by /auth/login, /auth/signup and /auth/refresh
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
}

// AccessClaims holds the claims this client reads from an access token.
// The token is never verified here; the backend remains the authority.
type AccessClaims struct {
	Role string `json:"role,omitempty"`
	Type string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// ParseAccessClaims decodes the claims of a JWT access token without verifying it
func ParseAccessClaims(token string) (*AccessClaims, error) {
	if token == "" {
		return nil, fmt.Errorf("empty token")
	}
	claims := &AccessClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode access token: %w", err)
	}
	return claims, nil
}

// ExpiresAtTime returns the expiry of the token, if it carries one
func (c *AccessClaims) ExpiresAtTime() (time.Time, bool) {
	if c == nil || c.ExpiresAt == nil {
		return time.Time{}, false
	}
	return c.ExpiresAt.Time, true
}
