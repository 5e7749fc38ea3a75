package attendance

import (
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Warning codes returned next to partial data.
const (
	WarningMissingScope = "missing_calendar_scope"
	WarningLeaveOverlap = "leave_overlap"
	WarningStorageError = "storage_error"
)

type Warning struct {
	Code    string `json:"code"`
	Source  string `json:"source,omitempty"`
	Message string `json:"message"`
}

type MonthlyAttendance struct {
	EmployeeID string      `json:"employee_id"`
	Year       int         `json:"year"`
	Month      time.Month  `json:"month"`
	Days       []DayRecord `json:"days"`
	Stats      Stats       `json:"stats"`
	Warnings   []Warning   `json:"warnings,omitempty"`
}

// Partial reports whether any input could not be loaded.
func (m MonthlyAttendance) Partial() bool {
	for _, w := range m.Warnings {
		if w.Code == WarningStorageError {
			return true
		}
	}
	return false
}

type MonthQuery struct {
	Year  int
	Month int
}

func (q MonthQuery) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidMonth(q.Year, q.Month) {
		errs.Add("month", "year must be 2000-2100 and month 1-12")
	}
	return errs.Err()
}

func (q MonthQuery) Range() dateutil.Range {
	return dateutil.MonthRange(q.Year, time.Month(q.Month))
}

type BackfillResult struct {
	Scanned int                `json:"scanned"`
	Created []OvertimeResponse `json:"created"`
}

type CorrectionRequest struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out,omitempty"`
	Reason   string `json:"reason"`

	checkIn  time.Time
	checkOut *time.Time
}

func (r *CorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	in, ok := validator.IsValidDateTime(r.CheckIn)
	if !ok {
		errs.Add("check_in", "check_in must be an ISO8601 timestamp")
	}
	r.checkIn = in

	r.checkOut = nil
	if r.CheckOut != "" {
		out, ok := validator.IsValidDateTime(r.CheckOut)
		if !ok {
			errs.Add("check_out", "check_out must be an ISO8601 timestamp")
		} else if !out.After(in) {
			errs.Add("check_out", "check_out must be after check_in")
		} else {
			r.checkOut = &out
		}
	}

	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}
	if len(r.Reason) > 500 {
		errs.Add("reason", "reason must not exceed 500 characters")
	}

	return errs.Err()
}

// Times is valid after a successful Validate.
func (r *CorrectionRequest) Times() (time.Time, *time.Time) {
	return r.checkIn, r.checkOut
}

type ReviewOvertimeRequest struct {
	Status string  `json:"status"`
	Hours  *string `json:"hours,omitempty"`
	Reason *string `json:"reason,omitempty"`

	hours *decimal.Decimal
}

func (r *ReviewOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	status := OvertimeStatus(r.Status)
	if status != OvertimeApproved && status != OvertimeRejected {
		errs.Add("status", "status must be one of: approved, rejected")
	}
	r.hours = nil
	if r.Hours != nil {
		h, err := decimal.NewFromString(*r.Hours)
		if err != nil || h.IsNegative() || h.GreaterThan(decimal.NewFromInt(24)) {
			errs.Add("hours", "hours must be a number between 0 and 24")
		} else {
			r.hours = &h
		}
	}

	return errs.Err()
}

// ApprovedHours is the reviewer's override, nil when not given.
func (r *ReviewOvertimeRequest) ApprovedHours() *decimal.Decimal {
	return r.hours
}

type AttendanceResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	Date          dateutil.Date   `json:"date"`
	CheckIn       *time.Time      `json:"check_in,omitempty"`
	CheckOut      *time.Time      `json:"check_out,omitempty"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	IsLate        bool            `json:"is_late"`
	LateMinutes   int             `json:"late_minutes"`
	IsCorrected   bool            `json:"is_corrected"`
	Status        RawStatus       `json:"status"`
}

func ToAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		Date:          a.Date,
		CheckIn:       a.CheckIn,
		CheckOut:      a.CheckOut,
		TotalHours:    decimal.Zero,
		OvertimeHours: decimal.Zero,
		IsLate:        a.IsLate,
		LateMinutes:   a.LateMinutes,
		IsCorrected:   a.IsCorrected,
		Status:        a.Status,
	}
	if a.TotalHours != nil {
		resp.TotalHours = *a.TotalHours
	}
	if a.OvertimeHours != nil {
		resp.OvertimeHours = *a.OvertimeHours
	}
	return resp
}

type OvertimeResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	Date       dateutil.Date   `json:"date"`
	Hours      decimal.Decimal `json:"hours"`
	Status     OvertimeStatus  `json:"status"`
	Source     OvertimeSource  `json:"source"`
	Reason     *string         `json:"reason,omitempty"`
	ReviewedBy *string         `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time      `json:"reviewed_at,omitempty"`
}

func ToOvertimeResponse(o OvertimeRequest) OvertimeResponse {
	return OvertimeResponse{
		ID:         o.ID,
		EmployeeID: o.EmployeeID,
		Date:       o.Date,
		Hours:      o.Hours,
		Status:     o.Status,
		Source:     o.Source,
		Reason:     o.Reason,
		ReviewedBy: o.ReviewedBy,
		ReviewedAt: o.ReviewedAt,
	}
}
