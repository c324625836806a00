package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rentaline/timeclock-backend-go/internal/domain/settings"
)

type settingsRepository struct {
	mu       sync.RWMutex
	byTenant map[string]settings.EngineSettings
}

func NewSettingsRepository() settings.SettingsRepository {
	return &settingsRepository{byTenant: make(map[string]settings.EngineSettings)}
}

// GetByCompany implements settings.SettingsRepository.
func (r *settingsRepository) GetByCompany(ctx context.Context, companyID string) (settings.EngineSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byTenant[companyID]
	if !ok {
		return settings.EngineSettings{}, settings.ErrSettingsNotFound
	}

	return s, nil
}

// Upsert implements settings.SettingsRepository.
func (r *settingsRepository) Upsert(ctx context.Context, s settings.EngineSettings) (settings.EngineSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if existing, ok := r.byTenant[s.CompanyID]; ok {
		s.CreatedAt = existing.CreatedAt
	} else {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	r.byTenant[s.CompanyID] = s

	return s, nil
}
