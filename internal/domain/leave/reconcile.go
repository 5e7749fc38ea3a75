package leave

import "github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"

// Reconcile expands approved applications into one entry per leave day.
//
// Each span is walked chronologically with a counter starting at 1; a day is
// paid while counter <= PaidDays and LOP afterwards. When two applications
// cover the same date the later one in slice order wins and the collision is
// reported as an Overlap. Non-approved applications are ignored.
func Reconcile(apps []Application) (map[dateutil.Date]DayEntry, []Overlap) {
	days := make(map[dateutil.Date]DayEntry)
	var overlaps []Overlap

	for _, app := range apps {
		if app.Status != StatusApproved {
			continue
		}
		counter := 1
		for d := app.StartDate; !d.After(app.EndDate); d = d.AddDays(1) {
			if prev, taken := days[d]; taken && prev.ApplicationID != app.ID {
				overlaps = append(overlaps, Overlap{
					Date:                     d,
					KeptApplicationID:        app.ID,
					OverwrittenApplicationID: prev.ApplicationID,
				})
			}
			days[d] = DayEntry{
				LeaveType:     app.LeaveType,
				ApplicationID: app.ID,
				IsPaid:        counter <= app.PaidDays,
			}
			counter++
		}
	}

	return days, overlaps
}

// SplitDays consumes available paid quota first; the remainder is LOP.
func SplitDays(total, available int) (paid, lop int) {
	if total <= 0 {
		return 0, 0
	}
	if available < 0 {
		available = 0
	}
	paid = min(total, available)
	return paid, total - paid
}
