package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/staffdeck/staffdeck-backend-go/internal/domain/settings"
	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

// GetByCompanyID implements settings.SettingsRepository.
func (r *settingsRepository) GetByCompanyID(ctx context.Context, companyID string) (settings.CompanySettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, weekly_absent_threshold, overtime_rate_per_minute,
			   sunday_bonus_enabled, created_at, updated_at
		FROM company_settings
		WHERE company_id = $1
	`

	var s settings.CompanySettings
	err := q.QueryRow(ctx, query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.WeeklyAbsentThreshold, &s.OvertimeRatePerMinute,
		&s.SundayBonusEnabled, &s.CreatedAt, &s.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return settings.CompanySettings{}, settings.ErrSettingsNotFound
		}
		return settings.CompanySettings{}, fmt.Errorf("failed to get company settings: %w", err)
	}

	return s, nil
}

// Upsert implements settings.SettingsRepository.
func (r *settingsRepository) Upsert(ctx context.Context, s settings.CompanySettings) (settings.CompanySettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO company_settings (company_id, weekly_absent_threshold, overtime_rate_per_minute, sunday_bonus_enabled)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_id) DO UPDATE
		SET weekly_absent_threshold = EXCLUDED.weekly_absent_threshold,
			overtime_rate_per_minute = EXCLUDED.overtime_rate_per_minute,
			sunday_bonus_enabled = EXCLUDED.sunday_bonus_enabled,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.CompanyID, s.WeeklyAbsentThreshold, s.OvertimeRatePerMinute, s.SundayBonusEnabled,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return settings.CompanySettings{}, fmt.Errorf("failed to upsert company settings: %w", err)
	}

	return s, nil
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}
