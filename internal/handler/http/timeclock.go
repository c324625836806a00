package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rentaline/timeclock-backend-go/internal/domain/settings"
	"github.com/rentaline/timeclock-backend-go/internal/domain/timeclock"
	"github.com/rentaline/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/rentaline/timeclock-backend-go/internal/handler/http/response"
)

type TimeclockHandler interface {
	Clock(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Override(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type timeclockHandlerImpl struct {
	timeclockService timeclock.Service
	settingsService  settings.Service
}

func NewTimeclockHandler(timeclockService timeclock.Service, settingsService settings.Service) TimeclockHandler {
	return &timeclockHandlerImpl{
		timeclockService: timeclockService,
		settingsService:  settingsService,
	}
}

// Clock implements TimeclockHandler.
func (h *timeclockHandlerImpl) Clock(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.CompanyIDFromContext(r.Context())

	var req timeclock.ClockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.SystemInitiated = false

	entry, err := h.timeclockService.Apply(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	cfg := h.settingsService.Resolve(r.Context(), companyID)
	response.Success(w, timeclock.ToResponse(entry, cfg.ApprovalRequired))
}

// Get implements TimeclockHandler.
func (h *timeclockHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.CompanyIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	entry, err := h.timeclockService.GetEntry(r.Context(), companyID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	cfg := h.settingsService.Resolve(r.Context(), companyID)
	response.Success(w, timeclock.ToResponse(entry, cfg.ApprovalRequired))
}

// Override implements TimeclockHandler.
func (h *timeclockHandlerImpl) Override(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.CompanyIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req timeclock.OverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entry, err := h.timeclockService.ApplyOverride(r.Context(), companyID, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	cfg := h.settingsService.Resolve(r.Context(), companyID)
	response.SuccessWithMessage(w, "Entry updated successfully", timeclock.ToResponse(entry, cfg.ApprovalRequired))
}

// List implements TimeclockHandler.
func (h *timeclockHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	companyID := middleware.CompanyIDFromContext(ctx)

	filter := timeclock.EntryFilter{}

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}

	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
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

	if sortBy := r.URL.Query().Get("sort_by"); sortBy != "" {
		filter.SortBy = sortBy
	}

	if sortOrder := r.URL.Query().Get("sort_order"); sortOrder != "" {
		filter.SortOrder = sortOrder
	}

	entries, total, err := h.timeclockService.ListEntries(ctx, companyID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	cfg := h.settingsService.Resolve(ctx, companyID)
	results := make([]timeclock.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		results = append(results, timeclock.ToResponse(entry, cfg.ApprovalRequired))
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	response.SuccessWithMeta(w, results, &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

// Summary implements TimeclockHandler.
func (h *timeclockHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	companyID := middleware.CompanyIDFromContext(ctx)

	filter := timeclock.SummaryFilter{}

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}

	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	summary, err := h.timeclockService.Summarize(ctx, companyID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
