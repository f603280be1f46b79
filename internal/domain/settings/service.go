package settings

import "context"

// SettingsService defines business logic for company settings
type SettingsService interface {
	// GetSettings retrieves the company's settings
	GetSettings(ctx context.Context) (SettingsResponse, error)

	// UpdateSettings partially updates the company's settings
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)

	// WeeklyAbsentThreshold returns the configured threshold, nil when unset
	// OR when the settings cannot be read. Penalty derivation fails open.
	WeeklyAbsentThreshold(ctx context.Context, companyID string) *int
}
