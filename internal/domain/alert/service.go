package alert

import (
	"context"
)

// Service is the read/acknowledge surface over persisted alerts. Alert
// creation belongs exclusively to the rule engine.
type Service interface {
	List(ctx context.Context, companyID string, filter AlertFilter) ([]Alert, int64, error)
	Acknowledge(ctx context.Context, companyID string, alertID string) (Alert, error)
}
