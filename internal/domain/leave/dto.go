package leave

import (
	"strings"
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	EmployeeID string  `json:"employee_id"`
	LeaveType  string  `json:"leave_type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Reason     *string `json:"reason,omitempty"`

	span dateutil.Range
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}

	r.LeaveType = strings.ToLower(strings.TrimSpace(r.LeaveType))
	if r.LeaveType == "" {
		errs.Add("leave_type", "leave_type is required")
	}
	if len(r.LeaveType) > 50 {
		errs.Add("leave_type", "leave_type must not exceed 50 characters")
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}
	if okStart && okEnd {
		if end.Before(start) {
			errs.Add("end_date", "end_date must not be before start_date")
		} else if (dateutil.Range{Start: start, End: end}).Len() > 366 {
			errs.Add("end_date", "leave must not exceed 366 days")
		}
	}
	r.span = dateutil.Range{Start: start, End: end}

	if r.Reason != nil && len(*r.Reason) > 1000 {
		errs.Add("reason", "reason must not exceed 1000 characters")
	}

	return errs.Err()
}

// Span is valid after a successful Validate.
func (r *CreateLeaveRequest) Span() dateutil.Range {
	return r.span
}

type ListLeaveRequest struct {
	EmployeeID string `json:"employee_id,omitempty"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`

	rng *dateutil.Range
}

func (r *ListLeaveRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if (r.StartDate == "") != (r.EndDate == "") {
		errs.Add("start_date", "start_date and end_date must be given together")
	}
	if r.StartDate != "" && r.EndDate != "" {
		start, ok1 := validator.IsValidDate(r.StartDate)
		end, ok2 := validator.IsValidDate(r.EndDate)
		if !ok1 || !ok2 {
			errs.Add("start_date", "dates must be in YYYY-MM-DD format")
		} else if end.Before(start) {
			errs.Add("end_date", "end_date must not be before start_date")
		} else {
			r.rng = &dateutil.Range{Start: start, End: end}
		}
	}
	return errs.Err()
}

// ToFilter converts a validated request.
func (r *ListLeaveRequest) ToFilter() ListFilter {
	var f ListFilter
	if r.EmployeeID != "" {
		id := r.EmployeeID
		f.EmployeeID = &id
	}
	f.Range = r.rng
	return f
}

type UpsertQuotaRequest struct {
	EmployeeID string `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
	Year       int    `json:"year"`
	TotalQuota int    `json:"total_quota"`
}

func (r *UpsertQuotaRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	r.LeaveType = strings.ToLower(strings.TrimSpace(r.LeaveType))
	if r.LeaveType == "" {
		errs.Add("leave_type", "leave_type is required")
	}
	if r.LeaveType == LeaveTypeLOP {
		errs.Add("leave_type", "lop leave has no quota")
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs.Add("year", "year must be between 2000 and 2100")
	}
	if r.TotalQuota < 0 {
		errs.Add("total_quota", "total_quota must not be negative")
	}

	return errs.Err()
}

type ApplicationResponse struct {
	ID         string        `json:"id"`
	EmployeeID string        `json:"employee_id"`
	LeaveType  string        `json:"leave_type"`
	StartDate  dateutil.Date `json:"start_date"`
	EndDate    dateutil.Date `json:"end_date"`
	TotalDays  int           `json:"total_days"`
	PaidDays   int           `json:"paid_days"`
	LopDays    int           `json:"lop_days"`
	Status     Status        `json:"status"`
	Reason     *string       `json:"reason,omitempty"`
	ApprovedBy *string       `json:"approved_by,omitempty"`
	ApprovedAt *time.Time    `json:"approved_at,omitempty"`
}

func ToApplicationResponse(a Application) ApplicationResponse {
	return ApplicationResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		LeaveType:  a.LeaveType,
		StartDate:  a.StartDate,
		EndDate:    a.EndDate,
		TotalDays:  a.TotalDays,
		PaidDays:   a.PaidDays,
		LopDays:    a.LopDays,
		Status:     a.Status,
		Reason:     a.Reason,
		ApprovedBy: a.ApprovedBy,
		ApprovedAt: a.ApprovedAt,
	}
}

type LeaveQuotaResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
	Year       int    `json:"year"`
	TotalQuota int    `json:"total_quota"`
	UsedQuota  int    `json:"used_quota"`
	Available  int    `json:"available"`
}

func ToLeaveQuotaResponse(q LeaveQuota) LeaveQuotaResponse {
	return LeaveQuotaResponse{
		ID:         q.ID,
		EmployeeID: q.EmployeeID,
		LeaveType:  q.LeaveType,
		Year:       q.Year,
		TotalQuota: q.TotalQuota,
		UsedQuota:  q.UsedQuota,
		Available:  q.Available(),
	}
}
