package timeclock

import (
	"context"
	"testing"
	"time"

	"github.com/rentaline/timeclock-backend-go/internal/domain/employee"
	"github.com/rentaline/timeclock-backend-go/internal/domain/settings"
	"github.com/rentaline/timeclock-backend-go/internal/domain/timeclock"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/clock"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/sse"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/validator"
	"github.com/rentaline/timeclock-backend-go/internal/repository/memory"
	settingsService "github.com/rentaline/timeclock-backend-go/internal/service/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID  = "company-1"
	testEmployeeID = "emp-1"
)

// testDay is a Monday.
var testDay = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

type testEnv struct {
	svc          timeclock.Service
	entryRepo    timeclock.TimeEntryRepository
	employeeRepo employee.EmployeeRepository
	settingsRepo settings.SettingsRepository
	settingsSvc  settings.Service
	hub          *sse.Hub
	clk          *clock.FixedClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		entryRepo:    memory.NewTimeEntryRepository(),
		employeeRepo: memory.NewEmployeeRepository(),
		settingsRepo: memory.NewSettingsRepository(),
		hub:          sse.NewHub(),
		clk:          clock.Fixed(testDay.Add(8 * time.Hour)),
	}
	env.settingsSvc = settingsService.NewSettingsService(env.settingsRepo)
	env.svc = NewTimeclockService(env.entryRepo, env.employeeRepo, env.settingsSvc, env.hub, env.clk)

	_, err := env.employeeRepo.Create(context.Background(), employee.Employee{
		ID:                  testEmployeeID,
		CompanyID:           testCompanyID,
		FullName:            "Dana Scully",
		ExpectedWeeklyHours: 40,
		IsActive:            true,
	})
	require.NoError(t, err)

	return env
}

func (env *testEnv) upsertSettings(t *testing.T, mutate func(*settings.EngineSettings)) {
	t.Helper()
	cfg := settings.Defaults(testCompanyID)
	mutate(&cfg)
	_, err := env.settingsRepo.Upsert(context.Background(), cfg)
	require.NoError(t, err)
}

// applyAt moves the clock to hour:minute on testDay and applies the action.
func (env *testEnv) applyAt(t *testing.T, action timeclock.ClockAction, hour, minute int) (timeclock.TimeEntry, error) {
	t.Helper()
	env.clk.Set(time.Date(testDay.Year(), testDay.Month(), testDay.Day(), hour, minute, 0, 0, time.UTC))
	return env.svc.Apply(context.Background(), testCompanyID, timeclock.ClockRequest{
		EmployeeID: testEmployeeID,
		Action:     action,
	})
}

func TestApply_FullDaySequence(t *testing.T) {
	env := newTestEnv(t)

	entry, err := env.applyAt(t, timeclock.ActionClockIn, 8, 5)
	require.NoError(t, err)
	assert.Equal(t, timeclock.StatusWorking, entry.Status)
	require.NotNil(t, entry.ClockIn)

	entry, err = env.applyAt(t, timeclock.ActionLunchStart, 12, 0)
	require.NoError(t, err)
	assert.Equal(t, timeclock.StatusLunch, entry.Status)

	entry, err = env.applyAt(t, timeclock.ActionLunchEnd, 13, 0)
	require.NoError(t, err)
	assert.Equal(t, timeclock.StatusWorking, entry.Status)

	entry, err = env.applyAt(t, timeclock.ActionClockOut, 17, 35)
	require.NoError(t, err)
	assert.Equal(t, timeclock.StatusClockedOut, entry.Status)
	assert.Equal(t, 8.5, entry.TotalHours)
	assert.Equal(t, 0.5, entry.OvertimeHours)

	// The persisted entry matches what Apply returned.
	stored, err := env.svc.GetEntry(context.Background(), testCompanyID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.TotalHours, stored.TotalHours)
	assert.Equal(t, timeclock.StatusClockedOut, stored.Status)
}

func TestApply_DoubleClockInRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.applyAt(t, timeclock.ActionClockIn, 8, 0)
	require.NoError(t, err)

	_, err = env.applyAt(t, timeclock.ActionClockIn, 8, 30)
	assert.ErrorIs(t, err, timeclock.ErrInvalidTransition)
}

func TestApply_ClockInAfterCompletedDayRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.applyAt(t, timeclock.ActionClockIn, 8, 0)
	require.NoError(t, err)
	_, err = env.applyAt(t, timeclock.ActionClockOut, 12, 0)
	require.NoError(t, err)

	// One clock-in per day, even after clocking out.
	_, err = env.applyAt(t, timeclock.ActionClockIn, 13, 0)
	assert.ErrorIs(t, err, timeclock.ErrInvalidTransition)
}

func TestApply_ClockOutWithoutClockIn(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.applyAt(t, timeclock.ActionClockOut, 17, 0)
	assert.ErrorIs(t, err, timeclock.ErrInvalidTransition)
}

func TestApply_BreakEndWithoutOpenBreak(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.applyAt(t, timeclock.ActionClockIn, 8, 0)
	require.NoError(t, err)

	_, err = env.applyAt(t, timeclock.ActionBreakEnd, 10, 0)
	assert.ErrorIs(t, err, timeclock.ErrInvalidTransition)
}

func TestApply_SecondBreakSameDayRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.applyAt(t, timeclock.ActionClockIn, 8, 0)
	require.NoError(t, err)
	_, err = env.applyAt(t, timeclock.ActionBreakStart, 10, 0)
	require.NoError(t, err)
	_, err = env.applyAt(t, timeclock.ActionBreakEnd, 10, 15)
	require.NoError(t, err)

	_, err = env.applyAt(t, timeclock.ActionBreakStart, 14, 0)
	assert.ErrorIs(t, err, timeclock.ErrInvalidTransition)
}

func TestApply_BreakStartDuringLunchRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.applyAt(t, timeclock.ActionClockIn, 8, 0)
	require.NoError(t, err)
	_, err = env.applyAt(t, timeclock.ActionLunchStart, 12, 0)
	require.NoError(t, err)

	_, err = env.applyAt(t, timeclock.ActionBreakStart, 12, 10)
	assert.ErrorIs(t, err, timeclock.ErrInvalidTransition)
}

func TestApply_FailedTransitionLeavesEntryUntouched(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.applyAt(t, timeclock.ActionClockIn, 8, 0)
	require.NoError(t, err)

	_, err = env.applyAt(t, timeclock.ActionClockIn, 9, 0)
	require.ErrorIs(t, err, timeclock.ErrInvalidTransition)

	stored, err := env.svc.GetEntry(context.Background(), testCompanyID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ClockIn.Unix(), stored.ClockIn.Unix())
	assert.Equal(t, timeclock.StatusWorking, stored.Status)
}

func TestApply_InactiveEmployeeRejected(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.employeeRepo.Create(context.Background(), employee.Employee{
		ID:        "emp-inactive",
		CompanyID: testCompanyID,
		FullName:  "Gone Fishing",
		IsActive:  false,
	})
	require.NoError(t, err)

	_, err = env.svc.Apply(context.Background(), testCompanyID, timeclock.ClockRequest{
		EmployeeID: "emp-inactive",
		Action:     timeclock.ActionClockIn,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestApply_UnknownEmployee(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Apply(context.Background(), testCompanyID, timeclock.ClockRequest{
		EmployeeID: "nobody",
		Action:     timeclock.ActionClockIn,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestApply_RequireLocationEnforcedOnClockIn(t *testing.T) {
	env := newTestEnv(t)
	env.upsertSettings(t, func(s *settings.EngineSettings) { s.RequireLocation = true })

	_, err := env.svc.Apply(context.Background(), testCompanyID, timeclock.ClockRequest{
		EmployeeID: testEmployeeID,
		Action:     timeclock.ActionClockIn,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "location", verrs[0].Field)

	_, err = env.svc.Apply(context.Background(), testCompanyID, timeclock.ClockRequest{
		EmployeeID: testEmployeeID,
		Action:     timeclock.ActionClockIn,
		Location:   "Depot North",
	})
	require.NoError(t, err)
}

func TestApply_TimestampsTruncatedToMinute(t *testing.T) {
	env := newTestEnv(t)
	env.clk.Set(time.Date(2026, 3, 16, 8, 5, 42, 123456, time.UTC))

	entry, err := env.svc.Apply(context.Background(), testCompanyID, timeclock.ClockRequest{
		EmployeeID: testEmployeeID,
		Action:     timeclock.ActionClockIn,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, entry.ClockIn.Second())
	assert.Equal(t, 5, entry.ClockIn.Minute())
}

func TestApply_RefreshesEmployeeStatusCache(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.applyAt(t, timeclock.ActionClockIn, 8, 0)
	require.NoError(t, err)

	emp, err := env.employeeRepo.GetByID(context.Background(), testEmployeeID, testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, string(timeclock.StatusWorking), emp.CurrentStatus)
	require.NotNil(t, emp.LastActivity)
}

func TestApply_ClockOutPublishesEntryClosed(t *testing.T) {
	env := newTestEnv(t)

	events, cleanup := env.hub.Subscribe(testCompanyID)
	defer cleanup()

	_, err := env.applyAt(t, timeclock.ActionClockIn, 8, 0)
	require.NoError(t, err)
	_, err = env.applyAt(t, timeclock.ActionClockOut, 17, 0)
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, sse.EventEntryClosed, event.Event)
		payload, ok := event.Data.(EntryClosedEvent)
		require.True(t, ok)
		assert.Equal(t, testEmployeeID, payload.EmployeeID)
		assert.Equal(t, 9.0, payload.TotalHours)
		assert.False(t, payload.AutoClosed)
	case <-time.After(time.Second):
		t.Fatal("expected an entry_closed event")
	}
}

func TestApply_ExplicitAtTimestampWins(t *testing.T) {
	env := newTestEnv(t)

	at := time.Date(2026, 3, 16, 7, 45, 0, 0, time.UTC).Format(time.RFC3339)
	entry, err := env.svc.Apply(context.Background(), testCompanyID, timeclock.ClockRequest{
		EmployeeID: testEmployeeID,
		Action:     timeclock.ActionClockIn,
		At:         &at,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, entry.ClockIn.Hour())
	assert.Equal(t, 45, entry.ClockIn.Minute())
}

func TestApply_ValidationRejectsUnknownAction(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Apply(context.Background(), testCompanyID, timeclock.ClockRequest{
		EmployeeID: testEmployeeID,
		Action:     "nap_start",
	})

	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
