package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rentaline/timeclock-backend-go/internal/domain/timeclock"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/database"
)

type timeEntryRepository struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) timeclock.TimeEntryRepository {
	return &timeEntryRepository{db: db}
}

const timeEntryColumns = `
	t.id, t.company_id, t.employee_id, t.date,
	t.clock_in, t.clock_out, t.break_start, t.break_end, t.lunch_start, t.lunch_end,
	t.total_hours, t.overtime_hours, t.status, t.is_edited,
	t.notes, t.location, t.approved_by, t.original_snapshot,
	t.created_at, t.updated_at`

func scanTimeEntry(row pgx.Row) (timeclock.TimeEntry, error) {
	var e timeclock.TimeEntry
	var snapshot []byte

	err := row.Scan(
		&e.ID, &e.CompanyID, &e.EmployeeID, &e.Date,
		&e.ClockIn, &e.ClockOut, &e.BreakStart, &e.BreakEnd, &e.LunchStart, &e.LunchEnd,
		&e.TotalHours, &e.OvertimeHours, &e.Status, &e.IsEdited,
		&e.Notes, &e.Location, &e.ApprovedBy, &snapshot,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return timeclock.TimeEntry{}, err
	}

	if len(snapshot) > 0 {
		var orig timeclock.TimeEntry
		if err := json.Unmarshal(snapshot, &orig); err != nil {
			return timeclock.TimeEntry{}, fmt.Errorf("decode original snapshot: %w", err)
		}
		e.OriginalSnapshot = &orig
	}

	return e, nil
}

func marshalSnapshot(e timeclock.TimeEntry) ([]byte, error) {
	if e.OriginalSnapshot == nil {
		return nil, nil
	}
	data, err := json.Marshal(e.OriginalSnapshot)
	if err != nil {
		return nil, fmt.Errorf("encode original snapshot: %w", err)
	}
	return data, nil
}

// Create implements timeclock.TimeEntryRepository.
func (r *timeEntryRepository) Create(ctx context.Context, entry timeclock.TimeEntry) (timeclock.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	snapshot, err := marshalSnapshot(entry)
	if err != nil {
		return timeclock.TimeEntry{}, err
	}

	query := `
		INSERT INTO time_entries (
			company_id, employee_id, date,
			clock_in, clock_out, break_start, break_end, lunch_start, lunch_end,
			total_hours, overtime_hours, status, is_edited,
			notes, location, approved_by, original_snapshot
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		) RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		entry.CompanyID,
		entry.EmployeeID,
		entry.Date,
		entry.ClockIn,
		entry.ClockOut,
		entry.BreakStart,
		entry.BreakEnd,
		entry.LunchStart,
		entry.LunchEnd,
		entry.TotalHours,
		entry.OvertimeHours,
		entry.Status,
		entry.IsEdited,
		entry.Notes,
		entry.Location,
		entry.ApprovedBy,
		snapshot,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return timeclock.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return entry, nil
}

// Update implements timeclock.TimeEntryRepository.
func (r *timeEntryRepository) Update(ctx context.Context, entry timeclock.TimeEntry) error {
	q := GetQuerier(ctx, r.db)

	snapshot, err := marshalSnapshot(entry)
	if err != nil {
		return err
	}

	query := `
		UPDATE time_entries SET
			clock_in = $1, clock_out = $2,
			break_start = $3, break_end = $4,
			lunch_start = $5, lunch_end = $6,
			total_hours = $7, overtime_hours = $8,
			status = $9, is_edited = $10,
			notes = $11, location = $12, approved_by = $13,
			original_snapshot = $14,
			updated_at = NOW()
		WHERE id = $15 AND company_id = $16
	`

	tag, err := q.Exec(ctx, query,
		entry.ClockIn, entry.ClockOut,
		entry.BreakStart, entry.BreakEnd,
		entry.LunchStart, entry.LunchEnd,
		entry.TotalHours, entry.OvertimeHours,
		entry.Status, entry.IsEdited,
		entry.Notes, entry.Location, entry.ApprovedBy,
		snapshot,
		entry.ID, entry.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timeclock.ErrEntryNotFound
	}

	return nil
}

// GetByID implements timeclock.TimeEntryRepository.
func (r *timeEntryRepository) GetByID(ctx context.Context, id string, companyID string) (timeclock.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + `
		FROM time_entries t
		WHERE t.id = $1 AND t.company_id = $2`

	entry, err := scanTimeEntry(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeclock.TimeEntry{}, timeclock.ErrEntryNotFound
		}
		return timeclock.TimeEntry{}, fmt.Errorf("failed to get time entry by ID: %w", err)
	}

	return entry, nil
}

// GetByEmployeeAndDate implements timeclock.TimeEntryRepository.
func (r *timeEntryRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*timeclock.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + `
		FROM time_entries t
		WHERE t.employee_id = $1 AND t.date = $2 AND t.company_id = $3
		LIMIT 1`

	entry, err := scanTimeEntry(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no entry for this day yet
		}
		return nil, fmt.Errorf("failed to get time entry by employee and date: %w", err)
	}

	return &entry, nil
}

// List implements timeclock.TimeEntryRepository.
func (r *timeEntryRepository) List(ctx context.Context, filter timeclock.EntryFilter, companyID string) ([]timeclock.TimeEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "t.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND t.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND t.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND t.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND t.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM time_entries t WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time entries: %w", err)
	}

	orderByField := "t.date"
	switch filter.SortBy {
	case "clock_in":
		orderByField = "t.clock_in"
	case "total_hours":
		orderByField = "t.total_hours"
	case "status":
		orderByField = "t.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	selectQuery := fmt.Sprintf(`SELECT %s
		FROM time_entries t
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		timeEntryColumns, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	var entries []timeclock.TimeEntry
	for rows.Next() {
		entry, err := scanTimeEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate time entries: %w", err)
	}

	return entries, total, nil
}

// ListOpenByDate implements timeclock.TimeEntryRepository.
func (r *timeEntryRepository) ListOpenByDate(ctx context.Context, date time.Time, companyID string) ([]timeclock.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + `
		FROM time_entries t
		WHERE t.company_id = $1
		  AND t.date = $2
		  AND t.clock_in IS NOT NULL
		  AND t.clock_out IS NULL`

	rows, err := q.Query(ctx, query, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list open time entries: %w", err)
	}
	defer rows.Close()

	var entries []timeclock.TimeEntry
	for rows.Next() {
		entry, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time entries: %w", err)
	}

	return entries, nil
}

// Summarize implements timeclock.TimeEntryRepository.
func (r *timeEntryRepository) Summarize(ctx context.Context, filter timeclock.SummaryFilter, companyID string) (timeclock.Summary, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	query := `
		SELECT COALESCE(SUM(total_hours), 0), COALESCE(SUM(overtime_hours), 0), COUNT(*)
		FROM time_entries
		WHERE ` + baseWhere

	var summary timeclock.Summary
	if err := q.QueryRow(ctx, query, args...).Scan(&summary.TotalHours, &summary.OvertimeHours, &summary.EntryCount); err != nil {
		return timeclock.Summary{}, fmt.Errorf("failed to summarize time entries: %w", err)
	}

	return summary, nil
}
