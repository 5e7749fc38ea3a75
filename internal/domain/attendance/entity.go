package attendance

import (
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// RawStatus is the status token stored on an attendance row.
type RawStatus string

const (
	RawStatusCheckedIn  RawStatus = "checked_in"
	RawStatusCheckedOut RawStatus = "checked_out"
	RawStatusPresent    RawStatus = "present"
	RawStatusAbsent     RawStatus = "absent"
	RawStatusPending    RawStatus = "pending"
)

// IsCheckIn reports whether the token stands for a completed or active
// check-in.
func (s RawStatus) IsCheckIn() bool {
	switch s {
	case RawStatusCheckedIn, RawStatusCheckedOut, RawStatusPresent:
		return true
	}
	return false
}

// Attendance is one row per (employee, date). Corrections overwrite the
// check-in/out columns of the same row; rows are never deleted.
type Attendance struct {
	ID               string
	CompanyID        string
	EmployeeID       string
	Date             dateutil.Date
	CheckIn          *time.Time
	CheckOut         *time.Time
	TotalHours       *decimal.Decimal
	OvertimeHours    *decimal.Decimal
	IsLate           bool
	LateMinutes      int
	IsCorrected      bool
	CorrectedBy      *string
	CorrectionReason *string
	Status           RawStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type OvertimeStatus string

const (
	OvertimePending  OvertimeStatus = "pending"
	OvertimeApproved OvertimeStatus = "approved"
	OvertimeRejected OvertimeStatus = "rejected"
)

type OvertimeSource string

const (
	OvertimeSourceAuto   OvertimeSource = "auto"
	OvertimeSourceManual OvertimeSource = "manual"
)

// OvertimeRequest is unique on (employee, date).
type OvertimeRequest struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Date       dateutil.Date
	Hours      decimal.Decimal
	Status     OvertimeStatus
	Source     OvertimeSource
	Reason     *string
	ReviewedBy *string
	ReviewedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ShiftPolicy drives check-in lateness and overtime derivation.
type ShiftPolicy struct {
	Location         *time.Location
	ShiftStartHour   int
	ShiftStartMinute int
	LateGraceMinutes int
	StandardDayHours decimal.Decimal
}
