// Package auth provides JWT-based authentication for madetect-engine.
// Tokens are self-issued, HS256-signed, and stateless: validity is solely
// a function of signature and expiry. There is no revocation list, so a
// leaked token remains valid until natural expiry.
package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// ClaimsKey is the context key for storing JWT claims.
const ClaimsKey contextKey = "claims"

// User roles carried in the user_type claim.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Claims represents the token payload. It embeds RegisteredClaims for
// standard fields (sub, exp, iat) and adds the display name and role.
type Claims struct {
	jwt.RegisteredClaims
	UserName string `json:"user_name,omitempty"`
	UserType string `json:"user_type,omitempty"`
}

// IsAdmin reports whether the token carries the admin role.
func (c *Claims) IsAdmin() bool {
	return c.UserType == RoleAdmin
}

// GetClaims retrieves JWT claims from the request context.
// Returns nil and false if claims are not present.
func GetClaims(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*Claims)
	return claims, ok
}
