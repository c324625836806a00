// Package memory provides in-process implementations of the domain
// repositories. The engine's contracts don't mandate a persistence format;
// this store backs single-node deployments and the test suite.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rentaline/timeclock-backend-go/internal/domain/timeclock"
)

type timeEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*timeclock.TimeEntry // keyed by ID
}

func NewTimeEntryRepository() timeclock.TimeEntryRepository {
	return &timeEntryRepository{entries: make(map[string]*timeclock.TimeEntry)}
}

func sameDate(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// Create implements timeclock.TimeEntryRepository.
func (r *timeEntryRepository) Create(ctx context.Context, entry timeclock.TimeEntry) (timeclock.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = uuid.NewString()
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	r.entries[entry.ID] = entry.Clone()

	return entry, nil
}

// Update implements timeclock.TimeEntryRepository.
func (r *timeEntryRepository) Update(ctx context.Context, entry timeclock.TimeEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.entries[entry.ID]
	if !ok || stored.CompanyID != entry.CompanyID {
		return timeclock.ErrEntryNotFound
	}

	entry.CreatedAt = stored.CreatedAt
	entry.UpdatedAt = time.Now()
	r.entries[entry.ID] = entry.Clone()

	return nil
}

// GetByID implements timeclock.TimeEntryRepository.
func (r *timeEntryRepository) GetByID(ctx context.Context, id string, companyID string) (timeclock.TimeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.entries[id]
	if !ok || stored.CompanyID != companyID {
		return timeclock.TimeEntry{}, timeclock.ErrEntryNotFound
	}

	return *stored.Clone(), nil
}

// GetByEmployeeAndDate implements timeclock.TimeEntryRepository.
func (r *timeEntryRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*timeclock.TimeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, stored := range r.entries {
		if stored.CompanyID == companyID && stored.EmployeeID == employeeID && sameDate(stored.Date, date) {
			return stored.Clone(), nil
		}
	}

	return nil, nil
}

// List implements timeclock.TimeEntryRepository.
func (r *timeEntryRepository) List(ctx context.Context, filter timeclock.EntryFilter, companyID string) ([]timeclock.TimeEntry, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []timeclock.TimeEntry
	for _, stored := range r.entries {
		if stored.CompanyID != companyID {
			continue
		}
		if !matchEntryFilter(stored, filter) {
			continue
		}
		matched = append(matched, *stored.Clone())
	}

	sort.Slice(matched, func(i, j int) bool {
		if strings.EqualFold(filter.SortOrder, "asc") {
			return matched[i].Date.Before(matched[j].Date)
		}
		return matched[i].Date.After(matched[j].Date)
	})

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

func matchEntryFilter(e *timeclock.TimeEntry, filter timeclock.EntryFilter) bool {
	date := e.Date.Format("2006-01-02")
	if filter.EmployeeID != nil && *filter.EmployeeID != "" && e.EmployeeID != *filter.EmployeeID {
		return false
	}
	if filter.StartDate != nil && *filter.StartDate != "" && date < *filter.StartDate {
		return false
	}
	if filter.EndDate != nil && *filter.EndDate != "" && date > *filter.EndDate {
		return false
	}
	if filter.Status != nil && *filter.Status != "" && string(e.Status) != *filter.Status {
		return false
	}
	return true
}

// ListOpenByDate implements timeclock.TimeEntryRepository.
func (r *timeEntryRepository) ListOpenByDate(ctx context.Context, date time.Time, companyID string) ([]timeclock.TimeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var open []timeclock.TimeEntry
	for _, stored := range r.entries {
		if stored.CompanyID == companyID && sameDate(stored.Date, date) && stored.IsOpen() {
			open = append(open, *stored.Clone())
		}
	}

	sort.Slice(open, func(i, j int) bool { return open[i].EmployeeID < open[j].EmployeeID })

	return open, nil
}

// Summarize implements timeclock.TimeEntryRepository.
func (r *timeEntryRepository) Summarize(ctx context.Context, filter timeclock.SummaryFilter, companyID string) (timeclock.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entryFilter := timeclock.EntryFilter{
		EmployeeID: filter.EmployeeID,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
	}

	var summary timeclock.Summary
	for _, stored := range r.entries {
		if stored.CompanyID != companyID || !matchEntryFilter(stored, entryFilter) {
			continue
		}
		summary.TotalHours += stored.TotalHours
		summary.OvertimeHours += stored.OvertimeHours
		summary.EntryCount++
	}

	return summary, nil
}
