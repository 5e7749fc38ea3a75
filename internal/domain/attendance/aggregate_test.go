package attendance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func otStatus(s OvertimeStatus) *OvertimeStatus { return &s }

func repeat(n int, rec DayRecord) []DayRecord {
	out := make([]DayRecord, n)
	for i := range out {
		out[i] = rec
	}
	return out
}

func TestAttendancePercentage(t *testing.T) {
	cases := []struct {
		total, lop int
		want       string
	}{
		{30, 0, "100"},
		{30, 3, "90"},
		{31, 1, "96.77"},
		{30, 1, "96.67"},
		{28, 28, "0"},
		{0, 0, "0"},
	}
	for _, c := range cases {
		got := AttendancePercentage(c.total, c.lop)
		assert.True(t, got.Equal(decimal.RequireFromString(c.want)), "total=%d lop=%d got %s", c.total, c.lop, got)
	}
}

// A month spent entirely on paid leave still scores 100%.
func TestAggregate_PaidLeaveDoesNotReducePercentage(t *testing.T) {
	days := repeat(30, DayRecord{DayType: DayTypeLeave, Status: StatusLeave, IsPaidLeave: boolPtr(true)})

	s := Aggregate(days, 30)

	assert.Equal(t, 30, s.PaidLeaveDays)
	assert.Equal(t, 0, s.PresentDays)
	assert.Equal(t, 0, s.WorkingDays)
	assert.Equal(t, 0, s.TotalLopDays)
	assert.True(t, s.AttendancePercentage.Equal(decimal.NewFromInt(100)))
}

func TestAggregate_Counts(t *testing.T) {
	var days []DayRecord
	days = append(days, repeat(18, DayRecord{DayType: DayTypeWorking, Status: StatusPresent, HoursWorked: decimal.NewFromInt(8)})...)
	days = append(days, repeat(2, DayRecord{DayType: DayTypeWorking, Status: StatusLate, HoursWorked: decimal.NewFromInt(7), LateMinutes: 20})...)
	days = append(days, repeat(2, DayRecord{DayType: DayTypeWorking, Status: StatusUnmarked})...)
	days = append(days, DayRecord{DayType: DayTypeLeave, Status: StatusLeave, IsPaidLeave: boolPtr(false)})
	days = append(days, DayRecord{DayType: DayTypeLeave, Status: StatusLeave, IsPaidLeave: boolPtr(true)})
	days = append(days, repeat(4, DayRecord{DayType: DayTypeWeekend, Status: StatusWeekend})...)
	days = append(days, DayRecord{DayType: DayTypeHoliday, Status: StatusHoliday})
	days = append(days, repeat(2, DayRecord{DayType: DayTypeWorking, Status: StatusFuture})...)

	s := Aggregate(days, 31)

	assert.Equal(t, 22, s.WorkingDays)
	assert.Equal(t, 20, s.PresentDays)
	assert.Equal(t, 2, s.LateDays)
	assert.Equal(t, 2, s.UnmarkedDays)
	assert.Equal(t, 1, s.PaidLeaveDays)
	assert.Equal(t, 1, s.LopLeaveDays)
	assert.Equal(t, 3, s.TotalLopDays)
	assert.Equal(t, 4, s.WeekendDays)
	assert.Equal(t, 1, s.HolidayDays)
	assert.Equal(t, 2, s.FutureDays)
	assert.Equal(t, 40, s.TotalLateMinutes)
	assert.True(t, s.TotalHours.Equal(decimal.NewFromInt(158)))
	// ((31 - 3) * 100) / 31
	assert.True(t, s.AttendancePercentage.Equal(decimal.RequireFromString("90.32")))
}

func TestAggregate_Overtime(t *testing.T) {
	days := []DayRecord{
		{DayType: DayTypeWorking, Status: StatusPresent, OvertimeHours: decimal.RequireFromString("2"), OvertimeStatus: otStatus(OvertimeApproved)},
		{DayType: DayTypeWorking, Status: StatusPresent, OvertimeHours: decimal.RequireFromString("1.5"), OvertimeStatus: otStatus(OvertimePending)},
		{DayType: DayTypeWorking, Status: StatusPresent, OvertimeHours: decimal.RequireFromString("0.75")},
		{DayType: DayTypeWorking, Status: StatusPresent, OvertimeHours: decimal.RequireFromString("3"), OvertimeStatus: otStatus(OvertimeApproved)},
	}

	s := Aggregate(days, 30)

	assert.True(t, s.TotalOvertime.Equal(decimal.RequireFromString("7.25")))
	assert.True(t, s.ApprovedOvertime.Equal(decimal.NewFromInt(5)))
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil, 30)
	assert.Equal(t, 0, s.WorkingDays)
	assert.True(t, s.TotalHours.IsZero())
	assert.True(t, s.AttendancePercentage.Equal(decimal.NewFromInt(100)))
}
