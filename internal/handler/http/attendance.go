package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/attendance"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/handler/http/response"
)

type AttendanceHandler interface {
	// Month view
	GetMonth(w http.ResponseWriter, r *http.Request)

	// Overtime
	BackfillOvertime(w http.ResponseWriter, r *http.Request)
	BackfillCompanyOvertime(w http.ResponseWriter, r *http.Request)
	ReviewOvertime(w http.ResponseWriter, r *http.Request)

	// Self service
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)

	Correct(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// GetMonth implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetMonth(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if !authorizeEmployee(w, p, employeeID) {
		return
	}

	year, month, ok := yearMonth(w, r)
	if !ok {
		return
	}

	m, err := h.attendanceService.GetMonth(r.Context(), p.CompanyID, employeeID, year, time.Month(month))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, m)
}

// BackfillOvertime implements AttendanceHandler.
func (h *AttendanceHandlerImpl) BackfillOvertime(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	q, ok := monthQuery(w, r)
	if !ok {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	result, err := h.attendanceService.BackfillOvertimeRequests(r.Context(), p.CompanyID, employeeID, q.Range())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime requests backfilled", result)
}

// BackfillCompanyOvertime implements AttendanceHandler.
func (h *AttendanceHandlerImpl) BackfillCompanyOvertime(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	q, ok := monthQuery(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.BackfillCompany(r.Context(), p.CompanyID, q.Range())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime requests backfilled", result)
}

// monthQuery reads and validates year and month before a range is derived
// from them.
func monthQuery(w http.ResponseWriter, r *http.Request) (attendance.MonthQuery, bool) {
	year, month, ok := yearMonth(w, r)
	if !ok {
		return attendance.MonthQuery{}, false
	}
	q := attendance.MonthQuery{Year: year, Month: month}
	if err := q.Validate(); err != nil {
		response.HandleError(w, err)
		return q, false
	}
	return q, true
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	p, employeeID, ok := employeePrincipal(w, r)
	if !ok {
		return
	}

	res, err := h.attendanceService.CheckIn(r.Context(), p.CompanyID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", res)
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	p, employeeID, ok := employeePrincipal(w, r)
	if !ok {
		return
	}

	res, err := h.attendanceService.CheckOut(r.Context(), p.CompanyID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", res)
}

// Correct implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Correct(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req attendance.CorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Correct attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := h.attendanceService.Correct(r.Context(), p.CompanyID, p.UserID, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance corrected", res)
}

// ReviewOvertime implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ReviewOvertime(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req attendance.ReviewOvertimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ReviewOvertime decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := h.attendanceService.ReviewOvertime(r.Context(), p.CompanyID, p.UserID, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime request reviewed", res)
}
