package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rentaline/timeclock-backend-go/internal/domain/employee"
	"github.com/rentaline/timeclock-backend-go/internal/domain/timeclock"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/clock"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/jwt"
	"github.com/rentaline/timeclock-backend-go/internal/pkg/sse"
	"github.com/rentaline/timeclock-backend-go/internal/repository/memory"
	alertService "github.com/rentaline/timeclock-backend-go/internal/service/alert"
	settingsService "github.com/rentaline/timeclock-backend-go/internal/service/settings"
	timeclockService "github.com/rentaline/timeclock-backend-go/internal/service/timeclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	routerTestSecret     = "test-secret-key-for-jwt"
	routerTestCompanyID  = "company-1"
	routerTestEmployeeID = "emp-1"
)

type routerEnv struct {
	router *chi.Mux
	clk    *clock.FixedClock
	token  string
}

func newRouterEnv(t *testing.T) *routerEnv {
	t.Helper()

	entryRepo := memory.NewTimeEntryRepository()
	employeeRepo := memory.NewEmployeeRepository()
	alertRepo := memory.NewAlertRepository()
	settingsRepo := memory.NewSettingsRepository()
	hub := sse.NewHub()
	clk := clock.Fixed(time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC))

	jwtSvc := jwt.NewJWTService(routerTestSecret)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	timeclockSvc := timeclockService.NewTimeclockService(entryRepo, employeeRepo, settingsSvc, hub, clk)
	alertSvc := alertService.NewAlertService(alertRepo, clk)

	_, err := employeeRepo.Create(context.Background(), employee.Employee{
		ID:        routerTestEmployeeID,
		CompanyID: routerTestCompanyID,
		FullName:  "Dana Scully",
		IsActive:  true,
	})
	require.NoError(t, err)

	router := NewRouter(
		jwtSvc,
		NewTimeclockHandler(timeclockSvc, settingsSvc),
		NewAlertHandler(alertSvc),
		NewSettingsHandler(settingsSvc),
		NewEventsHandler(hub, jwtSvc),
	)

	_, token, err := jwtSvc.JWTAuth().Encode(map[string]interface{}{
		"user_id":    "user-1",
		"company_id": routerTestCompanyID,
		"type":       "access",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	return &routerEnv{router: router, clk: clk, token: token}
}

func (env *routerEnv) do(t *testing.T, method, path string, payload interface{}, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if authed {
		req.Header.Set("Authorization", "Bearer "+env.token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestTimeclockHandler_Clock_Success(t *testing.T) {
	env := newRouterEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/timeclock/clock", timeclock.ClockRequest{
		EmployeeID: routerTestEmployeeID,
		Action:     timeclock.ActionClockIn,
	}, true)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.True(t, resp["success"].(bool))

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "working", data["status"])
	assert.Equal(t, "08:00", data["clock_in"])
}

func TestTimeclockHandler_Clock_ConflictOnDoubleClockIn(t *testing.T) {
	env := newRouterEnv(t)

	body := timeclock.ClockRequest{EmployeeID: routerTestEmployeeID, Action: timeclock.ActionClockIn}
	w := env.do(t, http.MethodPost, "/api/v1/timeclock/clock", body, true)
	require.Equal(t, http.StatusOK, w.Code)

	env.clk.Advance(30 * time.Minute)
	w = env.do(t, http.MethodPost, "/api/v1/timeclock/clock", body, true)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeBody(t, w)
	assert.False(t, resp["success"].(bool))
}

func TestTimeclockHandler_Clock_ValidationError(t *testing.T) {
	env := newRouterEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/timeclock/clock", timeclock.ClockRequest{
		EmployeeID: routerTestEmployeeID,
		Action:     "nap_start",
	}, true)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTimeclockHandler_Clock_Unauthorized(t *testing.T) {
	env := newRouterEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/timeclock/clock", timeclock.ClockRequest{
		EmployeeID: routerTestEmployeeID,
		Action:     timeclock.ActionClockIn,
	}, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTimeclockHandler_Get_NotFound(t *testing.T) {
	env := newRouterEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/timeclock/entries/no-such-id", nil, true)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTimeclockHandler_ListAndSummary(t *testing.T) {
	env := newRouterEnv(t)

	body := timeclock.ClockRequest{EmployeeID: routerTestEmployeeID, Action: timeclock.ActionClockIn}
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/v1/timeclock/clock", body, true).Code)

	env.clk.Advance(9 * time.Hour)
	body.Action = timeclock.ActionClockOut
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/v1/timeclock/clock", body, true).Code)

	w := env.do(t, http.MethodGet, "/api/v1/timeclock/entries/?employee_id="+routerTestEmployeeID, nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	meta := resp["meta"].(map[string]interface{})
	assert.Equal(t, float64(1), meta["total_items"])

	w = env.do(t, http.MethodGet, "/api/v1/timeclock/summary?employee_id="+routerTestEmployeeID, nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeBody(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, 9.0, data["total_hours"])
	assert.Equal(t, 1.0, data["overtime_hours"])
}

func TestSettingsHandler_GetReturnsDefaults(t *testing.T) {
	env := newRouterEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/settings/", nil, true)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, 8.0, data["overtime_threshold_hours"])
	assert.Equal(t, "17:00", data["workday_end"])
}

func TestSettingsHandler_UpdateRoundTrip(t *testing.T) {
	env := newRouterEnv(t)

	w := env.do(t, http.MethodPut, "/api/v1/settings/", map[string]interface{}{
		"overtime_threshold_hours": 9.0,
		"auto_clock_out":           true,
	}, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/settings/", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 9.0, data["overtime_threshold_hours"])
	assert.Equal(t, true, data["auto_clock_out"])
}

func TestAlertHandler_AckUnknownAlert(t *testing.T) {
	env := newRouterEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/alerts/no-such-alert/ack", nil, true)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventsHandler_TokenThenStreamAuth(t *testing.T) {
	env := newRouterEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/events/token", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	// The stream itself rejects missing and garbage tokens outright.
	w = env.do(t, http.MethodGet, "/api/v1/events", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/events?token=garbage", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
