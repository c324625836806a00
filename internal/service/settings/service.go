package settings

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rentaline/timeclock-backend-go/internal/domain/settings"
)

type SettingsServiceImpl struct {
	repo settings.SettingsRepository
}

func NewSettingsService(repo settings.SettingsRepository) settings.Service {
	return &SettingsServiceImpl{repo: repo}
}

// Get implements settings.Service.
func (s *SettingsServiceImpl) Get(ctx context.Context, companyID string) (settings.EngineSettings, error) {
	return s.repo.GetByCompany(ctx, companyID)
}

// Resolve implements settings.Service. A missing row is normal for tenants
// that never touched their settings; a store failure is logged and bridged
// with the compiled-in defaults so evaluation never halts.
func (s *SettingsServiceImpl) Resolve(ctx context.Context, companyID string) settings.EngineSettings {
	stored, err := s.repo.GetByCompany(ctx, companyID)
	if err != nil {
		if !errors.Is(err, settings.ErrSettingsNotFound) {
			slog.Warn("settings unavailable, falling back to defaults",
				"company_id", companyID, "error", err)
		}
		return settings.Defaults(companyID)
	}
	return stored
}

// Update implements settings.Service.
func (s *SettingsServiceImpl) Update(ctx context.Context, companyID string, req settings.UpdateSettingsRequest) (settings.EngineSettings, error) {
	if err := req.Validate(); err != nil {
		return settings.EngineSettings{}, err
	}

	current := s.Resolve(ctx, companyID)
	updated := req.Apply(current)
	updated.CompanyID = companyID

	return s.repo.Upsert(ctx, updated)
}
