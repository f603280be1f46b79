package settings

import "context"

// SettingsRepository defines data access methods for company settings.
type SettingsRepository interface {
	// GetByCompanyID retrieves the settings row for a company
	GetByCompanyID(ctx context.Context, companyID string) (CompanySettings, error)

	// Upsert writes the settings row, creating it on first update
	Upsert(ctx context.Context, s CompanySettings) (CompanySettings, error)
}
