package settings

import (
	"context"
)

// SettingsRepository defines data access for tenant engine settings.
type SettingsRepository interface {
	// GetByCompany retrieves the tenant's settings. Returns
	// ErrSettingsNotFound when no row exists yet.
	GetByCompany(ctx context.Context, companyID string) (EngineSettings, error)

	// Upsert stores the tenant's settings, creating the row when absent.
	Upsert(ctx context.Context, s EngineSettings) (EngineSettings, error)
}
