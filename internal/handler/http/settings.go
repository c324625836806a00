package http

import (
	"encoding/json"
	"net/http"

	"github.com/rentaline/timeclock-backend-go/internal/domain/settings"
	"github.com/rentaline/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/rentaline/timeclock-backend-go/internal/handler/http/response"
)

type SettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService settings.Service
}

func NewSettingsHandler(settingsService settings.Service) SettingsHandler {
	return &settingsHandlerImpl{
		settingsService: settingsService,
	}
}

// Get implements SettingsHandler. Tenants that never stored settings see
// the engine defaults, not a 404.
func (h *settingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.CompanyIDFromContext(r.Context())

	cfg := h.settingsService.Resolve(r.Context(), companyID)
	response.Success(w, settings.ToResponse(cfg))
}

// Update implements SettingsHandler.
func (h *settingsHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.CompanyIDFromContext(r.Context())

	var req settings.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	cfg, err := h.settingsService.Update(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings updated successfully", settings.ToResponse(cfg))
}
