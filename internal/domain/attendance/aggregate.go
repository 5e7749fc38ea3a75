package attendance

import "github.com/shopspring/decimal"

// Stats folds a month of classified days.
type Stats struct {
	TotalDays            int             `json:"total_days"`
	WorkingDays          int             `json:"working_days"`
	PresentDays          int             `json:"present_days"`
	LateDays             int             `json:"late_days"`
	UnmarkedDays         int             `json:"unmarked_days"`
	PaidLeaveDays        int             `json:"paid_leave_days"`
	LopLeaveDays         int             `json:"lop_leave_days"`
	HolidayDays          int             `json:"holiday_days"`
	WeekendDays          int             `json:"weekend_days"`
	FutureDays           int             `json:"future_days"`
	TotalLopDays         int             `json:"total_lop_days"`
	AttendancePercentage decimal.Decimal `json:"attendance_percentage"`
	TotalHours           decimal.Decimal `json:"total_hours"`
	TotalOvertime        decimal.Decimal `json:"total_overtime"`
	ApprovedOvertime     decimal.Decimal `json:"approved_overtime"`
	TotalLateMinutes     int             `json:"total_late_minutes"`
}

var hundred = decimal.NewFromInt(100)

// Aggregate computes monthly statistics. Unmarked days count as LOP, and only
// LOP lowers the attendance percentage: paid leave, holidays and weekends do
// not.
func Aggregate(days []DayRecord, totalDaysInMonth int) Stats {
	s := Stats{
		TotalDays:        totalDaysInMonth,
		TotalHours:       decimal.Zero,
		TotalOvertime:    decimal.Zero,
		ApprovedOvertime: decimal.Zero,
	}

	for _, d := range days {
		if d.DayType == DayTypeWorking && d.Status != StatusFuture {
			s.WorkingDays++
		}
		switch d.Status {
		case StatusPresent:
			s.PresentDays++
		case StatusLate:
			s.PresentDays++
			s.LateDays++
		case StatusUnmarked:
			s.UnmarkedDays++
		case StatusHoliday:
			s.HolidayDays++
		case StatusWeekend:
			s.WeekendDays++
		case StatusFuture:
			s.FutureDays++
		}
		if d.DayType == DayTypeLeave {
			if d.IsPaidLeave != nil && *d.IsPaidLeave {
				s.PaidLeaveDays++
			} else {
				s.LopLeaveDays++
			}
		}

		s.TotalHours = s.TotalHours.Add(d.HoursWorked)
		s.TotalOvertime = s.TotalOvertime.Add(d.OvertimeHours)
		if d.OvertimeStatus != nil && *d.OvertimeStatus == OvertimeApproved {
			s.ApprovedOvertime = s.ApprovedOvertime.Add(d.OvertimeHours)
		}
		s.TotalLateMinutes += d.LateMinutes
	}

	s.TotalLopDays = s.LopLeaveDays + s.UnmarkedDays
	s.AttendancePercentage = AttendancePercentage(totalDaysInMonth, s.TotalLopDays)
	return s
}

// AttendancePercentage is ((total - lop) * 100) / total rounded to 2 places,
// floored at zero. A month with no days scores zero.
func AttendancePercentage(totalDays, lopDays int) decimal.Decimal {
	if totalDays <= 0 {
		return decimal.Zero
	}
	attended := totalDays - lopDays
	if attended < 0 {
		attended = 0
	}
	return decimal.NewFromInt(int64(attended)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(totalDays))).
		Round(2)
}
