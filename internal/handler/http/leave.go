package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/leave"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/handler/http/response"
)

type LeaveHandler interface {
	ListApplications(w http.ResponseWriter, r *http.Request)
	GetApplication(w http.ResponseWriter, r *http.Request)
	CreateApplication(w http.ResponseWriter, r *http.Request)
	CorrectApplication(w http.ResponseWriter, r *http.Request)
	DeleteApplication(w http.ResponseWriter, r *http.Request)

	GetBalances(w http.ResponseWriter, r *http.Request)
	UpsertBalance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

// ListApplications implements LeaveHandler. Employees only ever see their
// own applications.
func (l *LeaveHandlerImpl) ListApplications(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	req := leave.ListLeaveRequest{
		EmployeeID: q.Get("employee_id"),
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
	}
	if !p.Role.CanManage() {
		if p.EmployeeID == nil {
			response.Success(w, []leave.ApplicationResponse{})
			return
		}
		req.EmployeeID = *p.EmployeeID
	}

	apps, err := l.leaveService.List(r.Context(), p.CompanyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, apps)
}

// GetApplication implements LeaveHandler.
func (l *LeaveHandlerImpl) GetApplication(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	app, err := l.leaveService.Get(r.Context(), p.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !authorizeEmployee(w, p, app.EmployeeID) {
		return
	}

	response.Success(w, app)
}

// CreateApplication implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateApplication(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req leave.CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateApplication decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	app, err := l.leaveService.CreateApproved(r.Context(), p.CompanyID, p.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave recorded", app)
}

// CorrectApplication implements LeaveHandler.
func (l *LeaveHandlerImpl) CorrectApplication(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req leave.CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CorrectApplication decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	app, err := l.leaveService.Correct(r.Context(), p.CompanyID, p.UserID, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave corrected", app)
}

// DeleteApplication implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	if err := l.leaveService.Delete(r.Context(), p.CompanyID, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave deleted", nil)
}

// GetBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBalances(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if !authorizeEmployee(w, p, employeeID) {
		return
	}

	year, ok := intQueryParam(w, r, "year", time.Now().Year())
	if !ok {
		return
	}

	quotas, err := l.leaveService.GetQuotas(r.Context(), p.CompanyID, employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, quotas)
}

// UpsertBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) UpsertBalance(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req leave.UpsertQuotaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpsertBalance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	quota, err := l.leaveService.UpsertQuota(r.Context(), p.CompanyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave quota saved", quota)
}
