package calendar

import (
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
)

// ScopeKind selects which calendar applies.
type ScopeKind string

const (
	ScopeInstitution ScopeKind = "institution"
	ScopeCompany     ScopeKind = "company"
)

// Scope identifies one calendar: an institution's, or the company-wide one.
// InstitutionID is only meaningful for ScopeInstitution.
type Scope struct {
	Kind          ScopeKind
	InstitutionID string
}

func InstitutionScope(institutionID string) Scope {
	return Scope{Kind: ScopeInstitution, InstitutionID: institutionID}
}

func CompanyScope() Scope {
	return Scope{Kind: ScopeCompany}
}

func (s Scope) Validate() error {
	switch s.Kind {
	case ScopeCompany:
		return nil
	case ScopeInstitution:
		if s.InstitutionID == "" {
			return ErrMissingScope
		}
		return nil
	default:
		return ErrInvalidScopeKind
	}
}

func (s Scope) String() string {
	if s.Kind == ScopeInstitution {
		return string(s.Kind) + ":" + s.InstitutionID
	}
	return string(s.Kind)
}

type DayType string

const (
	DayTypeWeekend DayType = "weekend"
	DayTypeHoliday DayType = "holiday"
)

func (t DayType) IsValid() bool {
	return t == DayTypeWeekend || t == DayTypeHoliday
}

// Day is one stored calendar_day_types row.
type Day struct {
	ID            string
	CompanyID     string
	ScopeKind     ScopeKind
	InstitutionID *string
	Date          dateutil.Date
	Type          DayType
	Name          string
	Description   *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InScope reports whether the row belongs to the calendar identified by s.
func (d Day) InScope(s Scope) bool {
	if d.ScopeKind != s.Kind {
		return false
	}
	if s.Kind == ScopeInstitution {
		return d.InstitutionID != nil && *d.InstitutionID == s.InstitutionID
	}
	return true
}

// Resolution holds the weekend and holiday dates of a window. A date is never
// in both maps.
type Resolution struct {
	Weekends map[dateutil.Date]struct{}
	Holidays map[dateutil.Date]Day
}

func EmptyResolution() Resolution {
	return Resolution{
		Weekends: make(map[dateutil.Date]struct{}),
		Holidays: make(map[dateutil.Date]Day),
	}
}

func (r Resolution) IsWeekend(d dateutil.Date) bool {
	_, ok := r.Weekends[d]
	return ok
}

func (r Resolution) Holiday(d dateutil.Date) (Day, bool) {
	h, ok := r.Holidays[d]
	return h, ok
}
