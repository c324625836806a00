package settings

import (
	"context"
	"testing"

	"github.com/rentaline/timeclock-backend-go/internal/domain/settings"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/validator"
	"github.com/rentaline/timeclock-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_ResolveFallsBackToDefaults(t *testing.T) {
	svc := NewSettingsService(memory.NewSettingsRepository())

	cfg := svc.Resolve(context.Background(), "company-1")

	assert.Equal(t, settings.Defaults("company-1"), cfg)
	assert.Equal(t, 8.0, cfg.OvertimeThresholdHours)
	assert.Equal(t, "17:00", cfg.WorkdayEnd)
}

func TestSettingsService_UpdateMergesPartialRequest(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(memory.NewSettingsRepository())

	threshold := 9.5
	updated, err := svc.Update(ctx, "company-1", settings.UpdateSettingsRequest{
		OvertimeThresholdHours: &threshold,
	})
	require.NoError(t, err)

	// The touched field changes, everything else keeps its default.
	assert.Equal(t, 9.5, updated.OvertimeThresholdHours)
	assert.Equal(t, 15, updated.LateThresholdMinutes)
	assert.True(t, updated.AllowManualEdit)

	// A later partial update must not claw back the earlier one.
	auto := true
	updated, err = svc.Update(ctx, "company-1", settings.UpdateSettingsRequest{
		AutoClockOut: &auto,
	})
	require.NoError(t, err)
	assert.Equal(t, 9.5, updated.OvertimeThresholdHours)
	assert.True(t, updated.AutoClockOut)

	stored, err := svc.Get(ctx, "company-1")
	require.NoError(t, err)
	assert.Equal(t, 9.5, stored.OvertimeThresholdHours)
}

func TestSettingsService_UpdateRejectsInvalidValues(t *testing.T) {
	svc := NewSettingsService(memory.NewSettingsRepository())

	negative := -1.0
	_, err := svc.Update(context.Background(), "company-1", settings.UpdateSettingsRequest{
		OvertimeThresholdHours: &negative,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	badTime := "25:70"
	_, err = svc.Update(context.Background(), "company-1", settings.UpdateSettingsRequest{
		AutoClockOutTime: &badTime,
	})
	assert.ErrorAs(t, err, &verrs)
}

func TestSettingsService_GetMissingTenant(t *testing.T) {
	svc := NewSettingsService(memory.NewSettingsRepository())

	_, err := svc.Get(context.Background(), "company-1")
	assert.ErrorIs(t, err, settings.ErrSettingsNotFound)
}
