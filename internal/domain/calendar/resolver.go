package calendar

import (
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
)

// Resolve builds the weekend and holiday sets of rng from explicit calendar
// rows. Weekends are never derived from the day of week. Rows outside rng or
// belonging to another scope are ignored, and a holiday row overrides a
// weekend row on the same date. An invalid scope yields an empty resolution.
func Resolve(scope Scope, days []Day, rng dateutil.Range) Resolution {
	res := EmptyResolution()
	if scope.Validate() != nil {
		return res
	}

	for _, d := range days {
		if !d.InScope(scope) || !rng.Contains(d.Date) {
			continue
		}
		switch d.Type {
		case DayTypeHoliday:
			res.Holidays[d.Date] = d
			delete(res.Weekends, d.Date)
		case DayTypeWeekend:
			if _, isHoliday := res.Holidays[d.Date]; !isHoliday {
				res.Weekends[d.Date] = struct{}{}
			}
		}
	}

	return res
}

// WeeklyOffs lists the dates of rng falling on any of weekdays. It is used to
// materialise explicit weekend rows; Resolve never calls it.
func WeeklyOffs(rng dateutil.Range, weekdays []time.Weekday) []dateutil.Date {
	wanted := make(map[time.Weekday]bool, len(weekdays))
	for _, w := range weekdays {
		wanted[w] = true
	}
	var out []dateutil.Date
	for _, d := range rng.Days() {
		if wanted[d.Weekday()] {
			out = append(out, d)
		}
	}
	return out
}
