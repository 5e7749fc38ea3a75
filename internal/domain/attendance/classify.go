package attendance

import (
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/calendar"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/leave"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
	"github.com/shopspring/decimal"
)

type DayType string

const (
	DayTypeWorking DayType = "working"
	DayTypeWeekend DayType = "weekend"
	DayTypeHoliday DayType = "holiday"
	DayTypeLeave   DayType = "leave"
)

type DayStatus string

const (
	StatusPresent  DayStatus = "present"
	StatusLate     DayStatus = "late"
	StatusUnmarked DayStatus = "unmarked"
	StatusHoliday  DayStatus = "holiday"
	StatusWeekend  DayStatus = "weekend"
	StatusLeave    DayStatus = "leave"
	StatusFuture   DayStatus = "future"
)

// DayRecord is the derived view of one calendar day. It is never persisted.
type DayRecord struct {
	Date           dateutil.Date   `json:"date"`
	DayType        DayType         `json:"day_type"`
	Status         DayStatus       `json:"status"`
	AttendanceID   *string         `json:"attendance_id,omitempty"`
	CheckIn        *time.Time      `json:"check_in,omitempty"`
	CheckOut       *time.Time      `json:"check_out,omitempty"`
	HoursWorked    decimal.Decimal `json:"hours_worked"`
	OvertimeHours  decimal.Decimal `json:"overtime_hours"`
	OvertimeStatus *OvertimeStatus `json:"overtime_status,omitempty"`
	LateMinutes    int             `json:"late_minutes"`
	IsCorrected    bool            `json:"is_corrected"`
	LeaveType      *string         `json:"leave_type,omitempty"`
	LeaveID        *string         `json:"leave_application_id,omitempty"`
	IsPaidLeave    *bool           `json:"is_paid_leave,omitempty"`
	HolidayName    *string         `json:"holiday_name,omitempty"`
}

// DayInput gathers every signal known about one date.
type DayInput struct {
	Date       dateutil.Date
	Today      dateutil.Date
	IsWeekend  bool
	Holiday    *calendar.Day
	Leave      *leave.DayEntry
	Attendance *Attendance
	Overtime   *OvertimeRequest
}

// Classify assigns exactly one status using the fixed precedence
// future, weekend, holiday, leave, attendance, unmarked.
func Classify(in DayInput) DayRecord {
	rec := DayRecord{
		Date:          in.Date,
		DayType:       DayTypeWorking,
		HoursWorked:   decimal.Zero,
		OvertimeHours: decimal.Zero,
	}

	if in.Date.After(in.Today) {
		rec.Status = StatusFuture
		return rec
	}

	if in.Attendance != nil {
		attachAttendance(&rec, in.Attendance, in.Overtime)
	}

	switch {
	case in.IsWeekend:
		rec.DayType, rec.Status = DayTypeWeekend, StatusWeekend
	case in.Holiday != nil:
		rec.DayType, rec.Status = DayTypeHoliday, StatusHoliday
		name := in.Holiday.Name
		rec.HolidayName = &name
	case in.Leave != nil:
		rec.DayType, rec.Status = DayTypeLeave, StatusLeave
		leaveType, appID, paid := in.Leave.LeaveType, in.Leave.ApplicationID, in.Leave.IsPaid
		rec.LeaveType, rec.LeaveID, rec.IsPaidLeave = &leaveType, &appID, &paid
	case in.Attendance != nil && in.Attendance.IsLate:
		rec.Status = StatusLate
	case in.Attendance != nil && in.Attendance.Status.IsCheckIn():
		rec.Status = StatusPresent
	default:
		rec.Status = StatusUnmarked
	}

	return rec
}

func attachAttendance(rec *DayRecord, a *Attendance, ot *OvertimeRequest) {
	id := a.ID
	rec.AttendanceID = &id
	rec.CheckIn = a.CheckIn
	rec.CheckOut = a.CheckOut
	rec.LateMinutes = a.LateMinutes
	rec.IsCorrected = a.IsCorrected
	if a.TotalHours != nil {
		rec.HoursWorked = *a.TotalHours
	}

	// A pending or approved request supersedes the raw overtime column.
	if ot != nil && (ot.Status == OvertimeApproved || ot.Status == OvertimePending) {
		rec.OvertimeHours = ot.Hours
		status := ot.Status
		rec.OvertimeStatus = &status
		return
	}
	if a.OvertimeHours != nil {
		rec.OvertimeHours = *a.OvertimeHours
	}
	if ot != nil {
		status := ot.Status
		rec.OvertimeStatus = &status
	}
}

// RangeInput holds the gathered record sets of one employee's window.
type RangeInput struct {
	Range      dateutil.Range
	Today      dateutil.Date
	Calendar   calendar.Resolution
	Leaves     map[dateutil.Date]leave.DayEntry
	Attendance []Attendance
	Overtime   []OvertimeRequest
}

// ClassifyRange classifies every day of in.Range in chronological order.
func ClassifyRange(in RangeInput) []DayRecord {
	byDate := make(map[dateutil.Date]*Attendance, len(in.Attendance))
	for i := range in.Attendance {
		byDate[in.Attendance[i].Date] = &in.Attendance[i]
	}
	otByDate := make(map[dateutil.Date]*OvertimeRequest, len(in.Overtime))
	for i := range in.Overtime {
		otByDate[in.Overtime[i].Date] = &in.Overtime[i]
	}

	days := in.Range.Days()
	records := make([]DayRecord, 0, len(days))
	for _, d := range days {
		input := DayInput{
			Date:       d,
			Today:      in.Today,
			IsWeekend:  in.Calendar.IsWeekend(d),
			Attendance: byDate[d],
			Overtime:   otByDate[d],
		}
		if h, ok := in.Calendar.Holiday(d); ok {
			input.Holiday = &h
		}
		if l, ok := in.Leaves[d]; ok {
			input.Leave = &l
		}
		records = append(records, Classify(input))
	}
	return records
}
