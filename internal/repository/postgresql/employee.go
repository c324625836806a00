package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rentaline/timeclock-backend-go/internal/domain/employee"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	var schedule []byte

	err := row.Scan(
		&emp.ID, &emp.CompanyID, &emp.FullName,
		&emp.ExpectedWeeklyHours, &schedule, &emp.IsActive,
		&emp.CurrentStatus, &emp.LastActivity,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	if len(schedule) > 0 {
		if err := json.Unmarshal(schedule, &emp.WeeklySchedule); err != nil {
			return employee.Employee{}, fmt.Errorf("decode weekly schedule: %w", err)
		}
	}

	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	schedule, err := json.Marshal(emp.WeeklySchedule)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("encode weekly schedule: %w", err)
	}

	query := `
		INSERT INTO employees (
			company_id, full_name, expected_weekly_hours, weekly_schedule,
			is_active, current_status
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		emp.CompanyID,
		emp.FullName,
		emp.ExpectedWeeklyHours,
		schedule,
		emp.IsActive,
		emp.CurrentStatus,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)

	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, full_name, expected_weekly_hours, weekly_schedule,
			   is_active, current_status, last_activity, created_at, updated_at
		FROM employees
		WHERE id = $1 AND company_id = $2
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return emp, nil
}

// ListActiveByCompany implements employee.EmployeeRepository.
func (r *employeeRepository) ListActiveByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, full_name, expected_weekly_hours, weekly_schedule,
			   is_active, current_status, last_activity, created_at, updated_at
		FROM employees
		WHERE company_id = $1 AND is_active = TRUE
		ORDER BY full_name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// ListCompanyIDs implements employee.EmployeeRepository.
func (r *employeeRepository) ListCompanyIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT company_id FROM employees WHERE is_active = TRUE`)
	if err != nil {
		return nil, fmt.Errorf("failed to list company IDs: %w", err)
	}
	defer rows.Close()

	var companyIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan company ID: %w", err)
		}
		companyIDs = append(companyIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate company IDs: %w", err)
	}

	return companyIDs, nil
}

// UpdateStatusCache implements employee.EmployeeRepository.
func (r *employeeRepository) UpdateStatusCache(ctx context.Context, id string, companyID string, status string, lastActivity time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET current_status = $1, last_activity = $2, updated_at = NOW()
		WHERE id = $3 AND company_id = $4
	`

	tag, err := q.Exec(ctx, query, status, lastActivity, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to update employee status cache: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
