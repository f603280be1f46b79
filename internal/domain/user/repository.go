package user

import "context"

// UserRepository defines data access methods for user accounts.
type UserRepository interface {
	// GetByEmail retrieves a user by email address
	GetByEmail(ctx context.Context, email string) (User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (User, error)

	// Create creates a new user account
	Create(ctx context.Context, u User) (User, error)

	// UpdatePINHash sets or replaces the user's re-auth PIN hash
	UpdatePINHash(ctx context.Context, userID string, pinHash string) error
}
