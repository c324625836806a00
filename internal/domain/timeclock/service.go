package timeclock

import (
	"context"
)

// Service is the engine's inbound surface for clock actions, overrides,
// queries and aggregation. Every operation is scoped to a tenant.
type Service interface {
	// Apply runs one clock action through the state machine. Validation
	// fully precedes mutation; on failure the entry is unchanged.
	Apply(ctx context.Context, companyID string, req ClockRequest) (TimeEntry, error)

	// ApplyOverride applies an administrative edit, preserving the first
	// pre-edit snapshot.
	ApplyOverride(ctx context.Context, companyID string, entryID string, req OverrideRequest) (TimeEntry, error)

	// GetEntry retrieves a single entry.
	GetEntry(ctx context.Context, companyID string, entryID string) (TimeEntry, error)

	// ListEntries retrieves entries matching the filter.
	ListEntries(ctx context.Context, companyID string, filter EntryFilter) ([]TimeEntry, int64, error)

	// Summarize folds totals over a date range / employee filter.
	Summarize(ctx context.Context, companyID string, filter SummaryFilter) (Summary, error)
}
