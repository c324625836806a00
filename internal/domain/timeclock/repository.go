package timeclock

import (
	"context"
	"time"
)

// TimeEntryRepository defines data access for attendance records.
// All methods take companyID to prevent cross-tenant data access.
type TimeEntryRepository interface {
	// Create inserts a new entry and returns it with ID and timestamps set.
	Create(ctx context.Context, entry TimeEntry) (TimeEntry, error)

	// Update replaces a persisted entry.
	Update(ctx context.Context, entry TimeEntry) error

	// GetByID retrieves an entry by ID with tenant isolation.
	GetByID(ctx context.Context, id string, companyID string) (TimeEntry, error)

	// GetByEmployeeAndDate retrieves the entry for one employee on one date.
	// Returns (nil, nil) when no entry exists yet.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*TimeEntry, error)

	// List retrieves entries matching the filter, with pagination.
	List(ctx context.Context, filter EntryFilter, companyID string) ([]TimeEntry, int64, error)

	// ListOpenByDate retrieves entries for the date that are clocked in but
	// not out. Used by the alert engine and the auto clock-out job.
	ListOpenByDate(ctx context.Context, date time.Time, companyID string) ([]TimeEntry, error)

	// Summarize folds totals over entries matching the filter.
	Summarize(ctx context.Context, filter SummaryFilter, companyID string) (Summary, error)
}
