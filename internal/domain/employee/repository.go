package employee

import (
	"context"
	"time"
)

// EmployeeRepository defines data access for employees. Employee lifecycle
// belongs to HR onboarding; the engine reads employees and refreshes the
// denormalized status cache.
type EmployeeRepository interface {
	// Create inserts an employee. Used by onboarding integration and seeding.
	Create(ctx context.Context, emp Employee) (Employee, error)

	// GetByID retrieves an employee with tenant isolation.
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// ListActiveByCompany retrieves all active employees of a tenant.
	ListActiveByCompany(ctx context.Context, companyID string) ([]Employee, error)

	// ListCompanyIDs returns the distinct tenants that have active
	// employees. The periodic jobs iterate tenants through this.
	ListCompanyIDs(ctx context.Context) ([]string, error)

	// UpdateStatusCache refreshes CurrentStatus and LastActivity after a
	// state-machine mutation.
	UpdateStatusCache(ctx context.Context, id string, companyID string, status string, lastActivity time.Time) error
}
