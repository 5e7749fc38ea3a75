package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/attendance"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/auth"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/calendar"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/employee"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/invoice"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/leave"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/notification"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/payroll"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/report"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrCompanyIDRequired),
		errors.Is(err, auth.ErrEmployeeIDRequired),
		errors.Is(err, auth.ErrManagerAccessRequired):
		Forbidden(w, err.Error())

	// Shared
	case errors.Is(err, dateutil.ErrInvalidRange):
		ValidationError(w, map[string]string{"end_date": err.Error()})

	// Calendar domain errors
	case errors.Is(err, calendar.ErrMissingScope):
		ValidationError(w, map[string]string{"institution_id": err.Error()})
	case errors.Is(err, calendar.ErrInvalidScopeKind):
		ValidationError(w, map[string]string{"scope": err.Error()})
	case errors.Is(err, calendar.ErrDayNotFound):
		NotFound(w, "Calendar day not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Conflict(w, "Employee is not active")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrOvertimeRequestNotFound):
		NotFound(w, "Overtime request not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrOvertimeAlreadyReviewed):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave application not found")
	case errors.Is(err, leave.ErrLeaveQuotaNotFound):
		NotFound(w, "Leave quota not found")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Employee already has approved leave in this period")
	case errors.Is(err, leave.ErrQuotaBelowUsage),
		errors.Is(err, leave.ErrInvalidDaySplit):
		BadRequest(w, err.Error(), nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSalaryStructureNotFound):
		NotFound(w, "Salary structure not found")
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrPayslipAlreadyFinalized):
		Conflict(w, "Payslip already finalized")
	case errors.Is(err, payroll.ErrAttendanceIncomplete):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrInvalidPeriod),
		errors.Is(err, payroll.ErrFuturePeriod):
		BadRequest(w, err.Error(), nil)

	// Invoice domain errors
	case errors.Is(err, invoice.ErrInvoiceNotFound):
		NotFound(w, "Invoice not found")
	case errors.Is(err, invoice.ErrInvoiceNumberExists),
		errors.Is(err, invoice.ErrInvoiceCancelled),
		errors.Is(err, invoice.ErrInvoiceAlreadyIssued),
		errors.Is(err, invoice.ErrInvoicePaid):
		Conflict(w, err.Error())
	case errors.Is(err, invoice.ErrInvoiceNotIssued),
		errors.Is(err, invoice.ErrPaymentExceedsBalance):
		BadRequest(w, err.Error(), nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Report domain errors
	case errors.Is(err, report.ErrNoDataFound):
		NotFound(w, "No data found for the specified criteria")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
