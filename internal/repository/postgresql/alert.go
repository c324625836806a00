package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rentaline/timeclock-backend-go/internal/domain/alert"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/database"
)

type alertRepository struct {
	db *database.DB
}

func NewAlertRepository(db *database.DB) alert.AlertRepository {
	return &alertRepository{db: db}
}

const uniqueViolationCode = "23505"

// Create implements alert.AlertRepository. The (company_id, dedupe_key)
// unique constraint makes each emission atomic: two concurrent ticks can
// never both insert the same key.
func (r *alertRepository) Create(ctx context.Context, a alert.Alert) (alert.Alert, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO alerts (
			company_id, employee_id, type, message, priority,
			expires_at, acknowledged, dedupe_key
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		a.CompanyID,
		a.EmployeeID,
		a.Type,
		a.Message,
		a.Priority,
		a.ExpiresAt,
		a.Acknowledged,
		a.DedupeKey,
	).Scan(&a.ID, &a.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return alert.Alert{}, alert.ErrDuplicateDedupeKey
		}
		return alert.Alert{}, fmt.Errorf("failed to create alert: %w", err)
	}

	return a, nil
}

// GetByID implements alert.AlertRepository.
func (r *alertRepository) GetByID(ctx context.Context, id string, companyID string) (alert.Alert, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.company_id, a.employee_id, a.type, a.message, a.priority,
			   a.created_at, a.expires_at, a.acknowledged, a.acknowledged_at, a.dedupe_key,
			   e.full_name AS employee_name
		FROM alerts a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1 AND a.company_id = $2
	`

	var al alert.Alert
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&al.ID, &al.CompanyID, &al.EmployeeID, &al.Type, &al.Message, &al.Priority,
		&al.CreatedAt, &al.ExpiresAt, &al.Acknowledged, &al.AcknowledgedAt, &al.DedupeKey,
		&al.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return alert.Alert{}, alert.ErrAlertNotFound
		}
		return alert.Alert{}, fmt.Errorf("failed to get alert by ID: %w", err)
	}

	return al, nil
}

// List implements alert.AlertRepository.
func (r *alertRepository) List(ctx context.Context, filter alert.AlertFilter, companyID string) ([]alert.Alert, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "a.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Type != nil && *filter.Type != "" {
		baseWhere += fmt.Sprintf(" AND a.type = $%d", argIdx)
		args = append(args, *filter.Type)
		argIdx++
	}
	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.created_at::date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.Acknowledged != nil {
		baseWhere += fmt.Sprintf(" AND a.acknowledged = $%d", argIdx)
		args = append(args, *filter.Acknowledged)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM alerts a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count alerts: %w", err)
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

	selectQuery := fmt.Sprintf(`
		SELECT a.id, a.company_id, a.employee_id, a.type, a.message, a.priority,
			   a.created_at, a.expires_at, a.acknowledged, a.acknowledged_at, a.dedupe_key,
			   e.full_name AS employee_name
		FROM alerts a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.created_at DESC
		LIMIT $%d OFFSET $%d`, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []alert.Alert
	for rows.Next() {
		var al alert.Alert
		err := rows.Scan(
			&al.ID, &al.CompanyID, &al.EmployeeID, &al.Type, &al.Message, &al.Priority,
			&al.CreatedAt, &al.ExpiresAt, &al.Acknowledged, &al.AcknowledgedAt, &al.DedupeKey,
			&al.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, al)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate alerts: %w", err)
	}

	return alerts, total, nil
}

// ListDedupeKeys implements alert.AlertRepository.
func (r *alertRepository) ListDedupeKeys(ctx context.Context, date time.Time, companyID string) (map[string]struct{}, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT dedupe_key FROM alerts
		WHERE company_id = $1 AND created_at::date = $2
	`

	rows, err := q.Query(ctx, query, companyID, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list dedupe keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan dedupe key: %w", err)
		}
		keys[key] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dedupe keys: %w", err)
	}

	return keys, nil
}

// Acknowledge implements alert.AlertRepository.
func (r *alertRepository) Acknowledge(ctx context.Context, id string, companyID string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE alerts
		SET acknowledged = TRUE, acknowledged_at = $1
		WHERE id = $2 AND company_id = $3 AND acknowledged = FALSE
	`

	tag, err := q.Exec(ctx, query, at, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to acknowledge alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either missing or already acknowledged; disambiguate for the caller.
		if _, getErr := r.GetByID(ctx, id, companyID); getErr != nil {
			return getErr
		}
		return alert.ErrAlertAlreadyAcked
	}

	return nil
}
