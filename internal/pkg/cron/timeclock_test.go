package cron

import (
	"context"
	"testing"
	"time"

	"github.com/rentaline/timeclock-backend-go/internal/domain/employee"
	"github.com/rentaline/timeclock-backend-go/internal/domain/settings"
	"github.com/rentaline/timeclock-backend-go/internal/domain/timeclock"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/clock"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/sse"
	"github.com/rentaline/timeclock-backend-go/internal/repository/memory"
	settingsService "github.com/rentaline/timeclock-backend-go/internal/service/settings"
	timeclockService "github.com/rentaline/timeclock-backend-go/internal/service/timeclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	jobCompanyID  = "company-1"
	jobEmployeeID = "emp-1"
)

var jobDay = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

type jobEnv struct {
	jobs         *TimeclockJobs
	entryRepo    timeclock.TimeEntryRepository
	settingsRepo settings.SettingsRepository
	hub          *sse.Hub
	clk          *clock.FixedClock
}

func newJobEnv(t *testing.T, autoClockOut bool) *jobEnv {
	t.Helper()

	env := &jobEnv{
		entryRepo:    memory.NewTimeEntryRepository(),
		settingsRepo: memory.NewSettingsRepository(),
		hub:          sse.NewHub(),
		clk:          clock.Fixed(jobDay.Add(8 * time.Hour)),
	}
	employeeRepo := memory.NewEmployeeRepository()
	settingsSvc := settingsService.NewSettingsService(env.settingsRepo)
	timeclockSvc := timeclockService.NewTimeclockService(env.entryRepo, employeeRepo, settingsSvc, env.hub, env.clk)
	env.jobs = NewTimeclockJobs(timeclockSvc, env.entryRepo, employeeRepo, settingsSvc, env.clk)

	_, err := employeeRepo.Create(context.Background(), employee.Employee{
		ID:        jobEmployeeID,
		CompanyID: jobCompanyID,
		FullName:  "Dale Cooper",
		IsActive:  true,
	})
	require.NoError(t, err)

	cfg := settings.Defaults(jobCompanyID)
	cfg.AutoClockOut = autoClockOut
	cfg.AutoClockOutTime = "18:00"
	_, err = env.settingsRepo.Upsert(context.Background(), cfg)
	require.NoError(t, err)

	return env
}

func (env *jobEnv) openEntry(t *testing.T) timeclock.TimeEntry {
	t.Helper()

	clockIn := jobDay.Add(8 * time.Hour)
	entry, err := env.entryRepo.Create(context.Background(), timeclock.TimeEntry{
		CompanyID:  jobCompanyID,
		EmployeeID: jobEmployeeID,
		Date:       jobDay,
		ClockIn:    &clockIn,
		Status:     timeclock.StatusWorking,
	})
	require.NoError(t, err)
	return entry
}

func TestAutoClockOut_ClosesOpenEntriesAtCutoff(t *testing.T) {
	env := newJobEnv(t, true)
	entry := env.openEntry(t)

	events, cleanup := env.hub.Subscribe(jobCompanyID)
	defer cleanup()

	env.clk.Set(jobDay.Add(18*time.Hour + 30*time.Minute))
	require.NoError(t, env.jobs.AutoClockOut(context.Background()))

	closed, err := env.entryRepo.GetByID(context.Background(), entry.ID, jobCompanyID)
	require.NoError(t, err)
	assert.Equal(t, timeclock.StatusClockedOut, closed.Status)
	require.NotNil(t, closed.ClockOut)
	// Closed at the configured cutoff, not at job run time.
	assert.Equal(t, "18:00", closed.ClockOut.Format("15:04"))
	assert.Equal(t, 10.0, closed.TotalHours)
	assert.Contains(t, closed.Notes, "Auto clock-out")

	select {
	case event := <-events:
		assert.Equal(t, sse.EventEntryClosed, event.Event)
		payload, ok := event.Data.(timeclockService.EntryClosedEvent)
		require.True(t, ok)
		assert.True(t, payload.AutoClosed)
	default:
		t.Fatal("expected an entry_closed event")
	}
}

func TestAutoClockOut_NoopBeforeCutoff(t *testing.T) {
	env := newJobEnv(t, true)
	entry := env.openEntry(t)

	env.clk.Set(jobDay.Add(17 * time.Hour))
	require.NoError(t, env.jobs.AutoClockOut(context.Background()))

	stored, err := env.entryRepo.GetByID(context.Background(), entry.ID, jobCompanyID)
	require.NoError(t, err)
	assert.Equal(t, timeclock.StatusWorking, stored.Status)
	assert.Nil(t, stored.ClockOut)
}

func TestAutoClockOut_DisabledTenantSkipped(t *testing.T) {
	env := newJobEnv(t, false)
	entry := env.openEntry(t)

	env.clk.Set(jobDay.Add(20 * time.Hour))
	require.NoError(t, env.jobs.AutoClockOut(context.Background()))

	stored, err := env.entryRepo.GetByID(context.Background(), entry.ID, jobCompanyID)
	require.NoError(t, err)
	assert.Nil(t, stored.ClockOut)
}

func TestAutoClockOut_Idempotent(t *testing.T) {
	env := newJobEnv(t, true)
	entry := env.openEntry(t)

	env.clk.Set(jobDay.Add(19 * time.Hour))
	require.NoError(t, env.jobs.AutoClockOut(context.Background()))
	require.NoError(t, env.jobs.AutoClockOut(context.Background()))

	closed, err := env.entryRepo.GetByID(context.Background(), entry.ID, jobCompanyID)
	require.NoError(t, err)
	assert.Equal(t, "18:00", closed.ClockOut.Format("15:04"))
}
