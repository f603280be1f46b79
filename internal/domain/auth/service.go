package auth

import "context"

// AuthService defines business logic for authentication and PIN re-auth
type AuthService interface {
	// Login verifies credentials, opens a server-side session and issues
	// access and refresh tokens
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// Refresh exchanges a valid refresh token for a new token pair
	Refresh(ctx context.Context, refreshToken string) (LoginResponse, error)

	// Logout revokes the refresh token and the server-side session
	Logout(ctx context.Context, refreshToken string, sessionID string) error

	// SetPIN enrolls or replaces the caller's re-auth PIN
	SetPIN(ctx context.Context, req SetPINRequest) error

	// VerifyPIN re-authenticates the caller's session and returns a
	// short-lived elevated token for sensitive endpoints
	VerifyPIN(ctx context.Context, req VerifyPINRequest) (VerifyPINResponse, error)
}
