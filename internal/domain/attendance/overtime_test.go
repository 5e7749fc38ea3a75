package attendance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withOvertime(emp, date, hours string) Attendance {
	a := Attendance{CompanyID: "co-1", EmployeeID: emp, Date: day(date), Status: RawStatusCheckedOut}
	if hours != "" {
		a.OvertimeHours = dec(hours)
	}
	return a
}

func TestFindMissingOvertimeRequests(t *testing.T) {
	records := []Attendance{
		withOvertime("emp-1", "2024-03-01", "2"),
		withOvertime("emp-1", "2024-03-02", "0"),
		withOvertime("emp-1", "2024-03-03", ""),
		withOvertime("emp-1", "2024-03-04", "1.25"),
		withOvertime("emp-2", "2024-03-01", "3"),
	}
	existing := []OvertimeRequest{{EmployeeID: "emp-1", Date: day("2024-03-04"), Status: OvertimeRejected}}

	missing := FindMissingOvertimeRequests(records, existing)

	require.Len(t, missing, 2)
	assert.Equal(t, "emp-1", missing[0].EmployeeID)
	assert.Equal(t, day("2024-03-01"), missing[0].Date)
	assert.True(t, missing[0].Hours.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, OvertimePending, missing[0].Status)
	assert.Equal(t, OvertimeSourceAuto, missing[0].Source)
	assert.Equal(t, "co-1", missing[0].CompanyID)
	assert.Equal(t, "emp-2", missing[1].EmployeeID)
}

// Feeding the output back as existing requests yields nothing new.
func TestFindMissingOvertimeRequests_Idempotent(t *testing.T) {
	records := []Attendance{
		withOvertime("emp-1", "2024-03-01", "2"),
		withOvertime("emp-1", "2024-03-01", "2"),
	}

	first := FindMissingOvertimeRequests(records, nil)
	require.Len(t, first, 1)

	second := FindMissingOvertimeRequests(records, first)
	assert.Empty(t, second)
}

func TestWorkedHours(t *testing.T) {
	in := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	eight := decimal.NewFromInt(8)

	total, ot := WorkedHours(in, in.Add(10*time.Hour+30*time.Minute), eight)
	assert.True(t, total.Equal(decimal.RequireFromString("10.5")))
	assert.True(t, ot.Equal(decimal.RequireFromString("2.5")))

	total, ot = WorkedHours(in, in.Add(7*time.Hour+20*time.Minute), eight)
	assert.True(t, total.Equal(decimal.RequireFromString("7.33")))
	assert.True(t, ot.IsZero())

	total, ot = WorkedHours(in, in.Add(-time.Hour), eight)
	assert.True(t, total.IsZero())
	assert.True(t, ot.IsZero())
}

func TestLateMinutes(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	p := ShiftPolicy{Location: ist, ShiftStartHour: 9, ShiftStartMinute: 30, LateGraceMinutes: 10}

	assert.Equal(t, 0, LateMinutes(time.Date(2024, 3, 1, 9, 25, 0, 0, ist), p))
	assert.Equal(t, 0, LateMinutes(time.Date(2024, 3, 1, 9, 40, 0, 0, ist), p))
	assert.Equal(t, 11, LateMinutes(time.Date(2024, 3, 1, 9, 41, 0, 0, ist), p))
	// 04:30 UTC is 10:00 IST
	assert.Equal(t, 30, LateMinutes(time.Date(2024, 3, 1, 4, 30, 0, 0, time.UTC), p))
}
