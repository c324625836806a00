package settings

import (
	"context"
)

// Service manages tenant engine settings.
type Service interface {
	// Get returns the tenant's settings, or ErrSettingsNotFound.
	Get(ctx context.Context, companyID string) (EngineSettings, error)

	// Resolve returns the tenant's settings, falling back to the compiled-in
	// defaults when the store has no row or is unavailable. Never fails; the
	// engine's evaluation paths depend on that.
	Resolve(ctx context.Context, companyID string) EngineSettings

	// Update merges the request onto the current settings and stores them.
	// Takes effect on the next evaluation tick, never retroactively.
	Update(ctx context.Context, companyID string, req UpdateSettingsRequest) (EngineSettings, error)
}
