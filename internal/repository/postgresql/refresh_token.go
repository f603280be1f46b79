package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/auth"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/database"
)

type refreshTokenRepository struct {
	db *database.DB
}

// Store implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) Store(ctx context.Context, userID string, token string, expiresAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
	`

	if _, err := q.Exec(ctx, query, userID, token, expiresAt); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// Revoke implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) Revoke(ctx context.Context, token string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE refresh_tokens SET revoked_at = NOW() WHERE token = $1`

	if _, err := q.Exec(ctx, query, token); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

// IsActive implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) IsActive(ctx context.Context, token string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT revoked_at IS NULL AND expires_at > NOW()
		FROM refresh_tokens
		WHERE token = $1
	`

	var active bool
	if err := q.QueryRow(ctx, query, token).Scan(&active); err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check refresh token: %w", err)
	}

	return active, nil
}

func NewRefreshTokenRepository(db *database.DB) auth.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}
