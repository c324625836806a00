package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rentaline/timeclock-backend-go/internal/domain/alert"
)

type alertRepository struct {
	mu     sync.RWMutex
	alerts map[string]*alert.Alert
	// byKey indexes company_id + dedupe_key for atomic duplicate rejection,
	// mirroring the unique constraint in the postgres store.
	byKey map[string]struct{}
}

func NewAlertRepository() alert.AlertRepository {
	return &alertRepository{
		alerts: make(map[string]*alert.Alert),
		byKey:  make(map[string]struct{}),
	}
}

func keyIndex(companyID, dedupeKey string) string {
	return companyID + "|" + dedupeKey
}

// Create implements alert.AlertRepository.
func (r *alertRepository) Create(ctx context.Context, a alert.Alert) (alert.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := keyIndex(a.CompanyID, a.DedupeKey)
	if _, exists := r.byKey[idx]; exists {
		return alert.Alert{}, alert.ErrDuplicateDedupeKey
	}

	a.ID = uuid.NewString()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	stored := a
	r.alerts[a.ID] = &stored
	r.byKey[idx] = struct{}{}

	return a, nil
}

// GetByID implements alert.AlertRepository.
func (r *alertRepository) GetByID(ctx context.Context, id string, companyID string) (alert.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.alerts[id]
	if !ok || stored.CompanyID != companyID {
		return alert.Alert{}, alert.ErrAlertNotFound
	}

	return *stored, nil
}

// List implements alert.AlertRepository.
func (r *alertRepository) List(ctx context.Context, filter alert.AlertFilter, companyID string) ([]alert.Alert, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []alert.Alert
	for _, stored := range r.alerts {
		if stored.CompanyID != companyID {
			continue
		}
		if filter.EmployeeID != nil && *filter.EmployeeID != "" && stored.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Type != nil && *filter.Type != "" && string(stored.Type) != *filter.Type {
			continue
		}
		if filter.Date != nil && *filter.Date != "" && stored.CreatedAt.Format("2006-01-02") != *filter.Date {
			continue
		}
		if filter.Acknowledged != nil && stored.Acknowledged != *filter.Acknowledged {
			continue
		}
		matched = append(matched, *stored)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], total, nil
}

// ListDedupeKeys implements alert.AlertRepository.
func (r *alertRepository) ListDedupeKeys(ctx context.Context, date time.Time, companyID string) (map[string]struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dateStr := date.Format("2006-01-02")
	keys := make(map[string]struct{})
	for _, stored := range r.alerts {
		if stored.CompanyID == companyID && stored.CreatedAt.Format("2006-01-02") == dateStr {
			keys[stored.DedupeKey] = struct{}{}
		}
	}

	return keys, nil
}

// Acknowledge implements alert.AlertRepository.
func (r *alertRepository) Acknowledge(ctx context.Context, id string, companyID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.alerts[id]
	if !ok || stored.CompanyID != companyID {
		return alert.ErrAlertNotFound
	}
	if stored.Acknowledged {
		return alert.ErrAlertAlreadyAcked
	}

	stored.Acknowledged = true
	stored.AcknowledgedAt = &at

	return nil
}
