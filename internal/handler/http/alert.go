package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rentaline/timeclock-backend-go/internal/domain/alert"
	"github.com/rentaline/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/rentaline/timeclock-backend-go/internal/handler/http/response"
)

type AlertHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Acknowledge(w http.ResponseWriter, r *http.Request)
}

type alertHandlerImpl struct {
	alertService alert.Service
}

func NewAlertHandler(alertService alert.Service) AlertHandler {
	return &alertHandlerImpl{
		alertService: alertService,
	}
}

// List implements AlertHandler.
func (h *alertHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	companyID := middleware.CompanyIDFromContext(ctx)

	filter := alert.AlertFilter{}

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	if alertType := r.URL.Query().Get("type"); alertType != "" {
		filter.Type = &alertType
	}

	if date := r.URL.Query().Get("date"); date != "" {
		filter.Date = &date
	}

	if acknowledged := r.URL.Query().Get("acknowledged"); acknowledged != "" {
		if parsed, err := strconv.ParseBool(acknowledged); err == nil {
			filter.Acknowledged = &parsed
		}
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	filter.Page = page

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			limit = limitNum
		}
	}
	filter.Limit = limit

	alerts, total, err := h.alertService.List(ctx, companyID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results := make([]alert.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		results = append(results, alert.ToResponse(a))
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	response.SuccessWithMeta(w, results, &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

// Acknowledge implements AlertHandler.
func (h *alertHandlerImpl) Acknowledge(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.CompanyIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	acked, err := h.alertService.Acknowledge(r.Context(), companyID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Alert acknowledged", alert.ToResponse(acked))
}
