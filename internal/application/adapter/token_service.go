// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// TokenClaims represents the claims contained in an API access token.
type TokenClaims struct {
	UserID    string
	Username  string
	IsAdmin   bool
	ExpiresAt time.Time
}

// TokenService defines the interface for API token operations. Identity comes
// from Discord; the token only carries the Discord user ID and display name.
type TokenService interface {
	// IssueAccessToken signs a token for the given Discord identity.
	IssueAccessToken(ctx context.Context, userID, username string) (string, error)

	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
