package attendance

import (
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
	"github.com/shopspring/decimal"
)

type employeeDay struct {
	employeeID string
	date       dateutil.Date
}

// FindMissingOvertimeRequests returns a pending auto request for every
// attendance row with positive overtime that has no request for its
// (employee, date) yet. Duplicate rows yield one request.
func FindMissingOvertimeRequests(records []Attendance, existing []OvertimeRequest) []OvertimeRequest {
	seen := make(map[employeeDay]struct{}, len(existing))
	for _, r := range existing {
		seen[employeeDay{r.EmployeeID, r.Date}] = struct{}{}
	}

	var missing []OvertimeRequest
	for _, a := range records {
		if a.OvertimeHours == nil || !a.OvertimeHours.IsPositive() {
			continue
		}
		key := employeeDay{a.EmployeeID, a.Date}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		missing = append(missing, OvertimeRequest{
			CompanyID:  a.CompanyID,
			EmployeeID: a.EmployeeID,
			Date:       a.Date,
			Hours:      *a.OvertimeHours,
			Status:     OvertimePending,
			Source:     OvertimeSourceAuto,
		})
	}
	return missing
}

// WorkedHours derives total and overtime hours of a closed session. Hours
// are rounded to two places; overtime is whatever exceeds the standard day.
func WorkedHours(checkIn, checkOut time.Time, standardDay decimal.Decimal) (total, overtime decimal.Decimal) {
	if !checkOut.After(checkIn) {
		return decimal.Zero, decimal.Zero
	}
	minutes := decimal.NewFromInt(int64(checkOut.Sub(checkIn) / time.Minute))
	total = minutes.Div(decimal.NewFromInt(60)).Round(2)
	overtime = total.Sub(standardDay)
	if overtime.IsNegative() {
		overtime = decimal.Zero
	}
	return total, overtime
}

// LateMinutes returns how late checkIn is against the shift start of its day
// in p.Location, ignoring arrivals within the grace period.
func LateMinutes(checkIn time.Time, p ShiftPolicy) int {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	local := checkIn.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), p.ShiftStartHour, p.ShiftStartMinute, 0, 0, loc)
	late := int(local.Sub(start) / time.Minute)
	if late <= p.LateGraceMinutes {
		return 0
	}
	return late
}
