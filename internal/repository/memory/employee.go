package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rentaline/timeclock-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	mu        sync.RWMutex
	employees map[string]*employee.Employee
}

func NewEmployeeRepository() employee.EmployeeRepository {
	return &employeeRepository{employees: make(map[string]*employee.Employee)}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	now := time.Now()
	emp.CreatedAt = now
	emp.UpdatedAt = now

	stored := emp
	r.employees[emp.ID] = &stored

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.employees[id]
	if !ok || stored.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	return *stored, nil
}

// ListActiveByCompany implements employee.EmployeeRepository.
func (r *employeeRepository) ListActiveByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var active []employee.Employee
	for _, stored := range r.employees {
		if stored.CompanyID == companyID && stored.IsActive {
			active = append(active, *stored)
		}
	}

	sort.Slice(active, func(i, j int) bool { return active[i].FullName < active[j].FullName })

	return active, nil
}

// ListCompanyIDs implements employee.EmployeeRepository.
func (r *employeeRepository) ListCompanyIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, stored := range r.employees {
		if stored.IsActive {
			seen[stored.CompanyID] = struct{}{}
		}
	}

	companyIDs := make([]string, 0, len(seen))
	for id := range seen {
		companyIDs = append(companyIDs, id)
	}
	sort.Strings(companyIDs)

	return companyIDs, nil
}

// UpdateStatusCache implements employee.EmployeeRepository.
func (r *employeeRepository) UpdateStatusCache(ctx context.Context, id string, companyID string, status string, lastActivity time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.employees[id]
	if !ok || stored.CompanyID != companyID {
		return employee.ErrEmployeeNotFound
	}

	stored.CurrentStatus = status
	stored.LastActivity = &lastActivity
	stored.UpdatedAt = time.Now()

	return nil
}
