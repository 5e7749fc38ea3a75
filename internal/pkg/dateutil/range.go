package dateutil

import "time"

// Range is an inclusive span of days.
type Range struct {
	Start Date `json:"start_date"`
	End   Date `json:"end_date"`
}

func NewRange(start, end Date) (Range, error) {
	r := Range{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// MonthRange covers the first through the last day of a month.
func MonthRange(year int, month time.Month) Range {
	return Range{
		Start: Date{Year: year, Month: month, Day: 1},
		End:   Date{Year: year, Month: month, Day: DaysInMonth(year, month)},
	}
}

func (r Range) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() || r.End.Before(r.Start) {
		return ErrInvalidRange
	}
	return nil
}

func (r Range) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Len is the number of days in r, 0 for an inverted range.
func (r Range) Len() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return int(r.End.Time().Sub(r.Start.Time()).Hours()/24) + 1
}

// Days lists every day of r in chronological order.
func (r Range) Days() []Date {
	days := make([]Date, 0, r.Len())
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// Overlaps reports whether r and o share at least one day.
func (r Range) Overlaps(o Range) bool {
	return !r.End.Before(o.Start) && !o.End.Before(r.Start)
}
