package auth

import (
	"context"
	"time"
)

// RefreshTokenRepository persists issued refresh tokens so they can be
// revoked server-side.
type RefreshTokenRepository interface {
	// Store records a newly issued refresh token
	Store(ctx context.Context, userID string, token string, expiresAt time.Time) error

	// Revoke marks a refresh token as revoked
	Revoke(ctx context.Context, token string) error

	// IsActive reports whether a token exists, is unrevoked and unexpired
	IsActive(ctx context.Context, token string) (bool, error)
}
