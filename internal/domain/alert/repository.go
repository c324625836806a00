package alert

import (
	"context"
	"time"
)

// AlertRepository defines data access for alerts. Dedup is restart-safe
// because existing keys are read back from the store each evaluation tick.
type AlertRepository interface {
	// Create persists a new alert atomically. Returns ErrDuplicateDedupeKey
	// when the dedupe key already exists for the tenant.
	Create(ctx context.Context, a Alert) (Alert, error)

	// GetByID retrieves an alert with tenant isolation.
	GetByID(ctx context.Context, id string, companyID string) (Alert, error)

	// List retrieves alerts matching the filter, newest first.
	List(ctx context.Context, filter AlertFilter, companyID string) ([]Alert, int64, error)

	// ListDedupeKeys returns the set of dedupe keys already emitted for the
	// date. The rule engine consults this before firing.
	ListDedupeKeys(ctx context.Context, date time.Time, companyID string) (map[string]struct{}, error)

	// Acknowledge marks an alert acknowledged (terminal).
	Acknowledge(ctx context.Context, id string, companyID string, at time.Time) error
}
