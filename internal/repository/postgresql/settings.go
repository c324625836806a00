package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rentaline/timeclock-backend-go/internal/domain/settings"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}

// GetByCompany implements settings.SettingsRepository.
func (r *settingsRepository) GetByCompany(ctx context.Context, companyID string) (settings.EngineSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT company_id, overtime_threshold_hours, late_threshold_minutes,
			   break_duration_minutes, lunch_duration_minutes,
			   auto_clock_out, auto_clock_out_time,
			   require_location, allow_manual_edit, approval_required,
			   workday_end, break_window_start_hour, break_window_end_hour,
			   created_at, updated_at
		FROM engine_settings
		WHERE company_id = $1
	`

	var s settings.EngineSettings
	err := q.QueryRow(ctx, query, companyID).Scan(
		&s.CompanyID, &s.OvertimeThresholdHours, &s.LateThresholdMinutes,
		&s.BreakDurationMinutes, &s.LunchDurationMinutes,
		&s.AutoClockOut, &s.AutoClockOutTime,
		&s.RequireLocation, &s.AllowManualEdit, &s.ApprovalRequired,
		&s.WorkdayEnd, &s.BreakWindowStartHour, &s.BreakWindowEndHour,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.EngineSettings{}, settings.ErrSettingsNotFound
		}
		return settings.EngineSettings{}, fmt.Errorf("failed to get engine settings: %w", err)
	}

	return s, nil
}

// Upsert implements settings.SettingsRepository.
func (r *settingsRepository) Upsert(ctx context.Context, s settings.EngineSettings) (settings.EngineSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO engine_settings (
			company_id, overtime_threshold_hours, late_threshold_minutes,
			break_duration_minutes, lunch_duration_minutes,
			auto_clock_out, auto_clock_out_time,
			require_location, allow_manual_edit, approval_required,
			workday_end, break_window_start_hour, break_window_end_hour
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (company_id) DO UPDATE SET
			overtime_threshold_hours = EXCLUDED.overtime_threshold_hours,
			late_threshold_minutes = EXCLUDED.late_threshold_minutes,
			break_duration_minutes = EXCLUDED.break_duration_minutes,
			lunch_duration_minutes = EXCLUDED.lunch_duration_minutes,
			auto_clock_out = EXCLUDED.auto_clock_out,
			auto_clock_out_time = EXCLUDED.auto_clock_out_time,
			require_location = EXCLUDED.require_location,
			allow_manual_edit = EXCLUDED.allow_manual_edit,
			approval_required = EXCLUDED.approval_required,
			workday_end = EXCLUDED.workday_end,
			break_window_start_hour = EXCLUDED.break_window_start_hour,
			break_window_end_hour = EXCLUDED.break_window_end_hour,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.CompanyID, s.OvertimeThresholdHours, s.LateThresholdMinutes,
		s.BreakDurationMinutes, s.LunchDurationMinutes,
		s.AutoClockOut, s.AutoClockOutTime,
		s.RequireLocation, s.AllowManualEdit, s.ApprovalRequired,
		s.WorkdayEnd, s.BreakWindowStartHour, s.BreakWindowEndHour,
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return settings.EngineSettings{}, fmt.Errorf("failed to upsert engine settings: %w", err)
	}

	return s, nil
}
