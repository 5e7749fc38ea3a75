package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/payroll"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/handler/http/response"
)

type PayrollHandler interface {
	GetPayout(w http.ResponseWriter, r *http.Request)

	GetSalaryStructure(w http.ResponseWriter, r *http.Request)
	UpsertSalaryStructure(w http.ResponseWriter, r *http.Request)

	GeneratePayslip(w http.ResponseWriter, r *http.Request)
	ListPayslips(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	FinalizePayslip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// GetPayout handles GET /payroll/employees/{employeeID}/payout
func (h *payrollHandlerImpl) GetPayout(w http.ResponseWriter, r *http.Request) {
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

	payout, err := h.payrollService.GetPayout(r.Context(), p.CompanyID, employeeID, year, time.Month(month))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payout)
}

// GetSalaryStructure handles GET /payroll/employees/{employeeID}/salary-structure
func (h *payrollHandlerImpl) GetSalaryStructure(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if !authorizeEmployee(w, p, employeeID) {
		return
	}

	structure, err := h.payrollService.GetSalaryStructure(r.Context(), p.CompanyID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, structure)
}

// UpsertSalaryStructure handles PUT /payroll/employees/{employeeID}/salary-structure
func (h *payrollHandlerImpl) UpsertSalaryStructure(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req payroll.UpsertSalaryStructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpsertSalaryStructure decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	structure, err := h.payrollService.UpsertSalaryStructure(r.Context(), p.CompanyID, chi.URLParam(r, "employeeID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary structure saved", structure)
}

// GeneratePayslip handles POST /payroll/payslips
func (h *payrollHandlerImpl) GeneratePayslip(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req payroll.GeneratePayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("GeneratePayslip decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	slip, err := h.payrollService.GeneratePayslip(r.Context(), p.CompanyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslip generated", slip)
}

// ListPayslips handles GET /payroll/payslips
func (h *payrollHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	year, month, ok := yearMonth(w, r)
	if !ok {
		return
	}

	req := payroll.ListPayslipsRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Year:       year,
		Month:      month,
		Status:     r.URL.Query().Get("status"),
	}
	if !p.Role.CanManage() {
		if p.EmployeeID == nil {
			response.Success(w, []payroll.PayslipResponse{})
			return
		}
		req.EmployeeID = *p.EmployeeID
	}

	slips, err := h.payrollService.ListPayslips(r.Context(), p.CompanyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, slips)
}

// GetPayslip handles GET /payroll/payslips/{id}
func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	slip, err := h.payrollService.GetPayslip(r.Context(), p.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !authorizeEmployee(w, p, slip.EmployeeID) {
		return
	}

	response.Success(w, slip)
}

// FinalizePayslip handles POST /payroll/payslips/{id}/finalize
func (h *payrollHandlerImpl) FinalizePayslip(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	slip, err := h.payrollService.FinalizePayslip(r.Context(), p.CompanyID, p.UserID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip finalized", slip)
}
