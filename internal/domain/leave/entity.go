package leave

import (
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
)

type Status string

const StatusApproved Status = "approved"

// LeaveTypeLOP is an unpaid leave type; it never consumes quota.
const LeaveTypeLOP = "lop"

// Application is an approved leave covering StartDate..EndDate inclusive.
// PaidDays are the earliest days of the span, the rest is loss of pay.
type Application struct {
	ID         string
	CompanyID  string
	EmployeeID string
	LeaveType  string
	StartDate  dateutil.Date
	EndDate    dateutil.Date
	TotalDays  int
	PaidDays   int
	LopDays    int
	Status     Status
	Reason     *string
	ApprovedBy *string
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (a Application) Span() dateutil.Range {
	return dateutil.Range{Start: a.StartDate, End: a.EndDate}
}

// Validate checks paid_days + lop_days == total_days == span length.
func (a Application) Validate() error {
	if err := a.Span().Validate(); err != nil {
		return err
	}
	if a.PaidDays < 0 || a.LopDays < 0 {
		return ErrInvalidDaySplit
	}
	if a.TotalDays != a.Span().Len() || a.PaidDays+a.LopDays != a.TotalDays {
		return ErrInvalidDaySplit
	}
	return nil
}

// DayEntry is one reconciled leave day.
type DayEntry struct {
	LeaveType     string `json:"leave_type"`
	ApplicationID string `json:"application_id"`
	IsPaid        bool   `json:"is_paid"`
}

// Overlap records a date claimed by two approved applications.
type Overlap struct {
	Date                     dateutil.Date `json:"date"`
	KeptApplicationID        string        `json:"kept_application_id"`
	OverwrittenApplicationID string        `json:"overwritten_application_id"`
}

// LeaveQuota is an employee's yearly allotment of one paid leave type.
type LeaveQuota struct {
	ID         string
	CompanyID  string
	EmployeeID string
	LeaveType  string
	Year       int
	TotalQuota int
	UsedQuota  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (q LeaveQuota) Available() int {
	if q.UsedQuota >= q.TotalQuota {
		return 0
	}
	return q.TotalQuota - q.UsedQuota
}
