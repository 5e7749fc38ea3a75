package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/calendar"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/handler/http/response"
)

type CalendarHandler interface {
	ListDays(w http.ResponseWriter, r *http.Request)
	UpsertDays(w http.ResponseWriter, r *http.Request)
	GenerateWeeklyOffs(w http.ResponseWriter, r *http.Request)
	DeleteDay(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarService calendar.CalendarService
}

func NewCalendarHandler(calendarService calendar.CalendarService) CalendarHandler {
	return &calendarHandlerImpl{
		calendarService: calendarService,
	}
}

// ListDays handles GET /calendar/days
func (h *calendarHandlerImpl) ListDays(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	req := calendar.ListDaysRequest{
		Scope:         q.Get("scope"),
		InstitutionID: q.Get("institution_id"),
		StartDate:     q.Get("start_date"),
		EndDate:       q.Get("end_date"),
	}
	if req.Scope == "" {
		req.Scope = string(calendar.ScopeCompany)
	}

	days, err := h.calendarService.ListDays(r.Context(), p.CompanyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, days)
}

// UpsertDays handles PUT /calendar/days
func (h *calendarHandlerImpl) UpsertDays(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req calendar.UpsertDaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpsertDays decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	days, err := h.calendarService.UpsertDays(r.Context(), p.CompanyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Calendar days saved", days)
}

// GenerateWeeklyOffs handles POST /calendar/weekly-offs
func (h *calendarHandlerImpl) GenerateWeeklyOffs(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req calendar.WeeklyOffsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("GenerateWeeklyOffs decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	days, err := h.calendarService.GenerateWeeklyOffs(r.Context(), p.CompanyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Weekly offs generated", days)
}

// DeleteDay handles DELETE /calendar/days/{id}
func (h *calendarHandlerImpl) DeleteDay(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Calendar day ID is required", nil)
		return
	}

	if err := h.calendarService.DeleteDay(r.Context(), p.CompanyID, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Calendar day deleted", nil)
}
