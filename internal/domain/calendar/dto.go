package calendar

import (
	"strconv"
	"strings"
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/validator"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// scopeFrom validates the scope/institution_id pair shared by every request.
func scopeFrom(errs *validator.ValidationErrors, kind, institutionID string) Scope {
	s := Scope{Kind: ScopeKind(kind), InstitutionID: strings.TrimSpace(institutionID)}
	switch err := s.Validate(); err {
	case nil:
	case ErrMissingScope:
		errs.Add("institution_id", "institution_id is required for institution scope")
	default:
		errs.Add("scope", "scope must be one of: institution, company")
	}
	return s
}

func rangeFrom(errs *validator.ValidationErrors, start, end string) dateutil.Range {
	var rng dateutil.Range
	var ok bool
	if rng.Start, ok = validator.IsValidDate(start); !ok {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	if rng.End, ok = validator.IsValidDate(end); !ok {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}
	if !rng.Start.IsZero() && !rng.End.IsZero() && rng.End.Before(rng.Start) {
		errs.Add("end_date", "end_date must not be before start_date")
	}
	return rng
}

type ListDaysRequest struct {
	Scope         string `json:"scope"`
	InstitutionID string `json:"institution_id,omitempty"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`

	scope Scope
	rng   dateutil.Range
}

func (r *ListDaysRequest) Validate() error {
	var errs validator.ValidationErrors
	r.scope = scopeFrom(&errs, r.Scope, r.InstitutionID)
	r.rng = rangeFrom(&errs, r.StartDate, r.EndDate)
	return errs.Err()
}

// Parsed is valid after a successful Validate.
func (r *ListDaysRequest) Parsed() (Scope, dateutil.Range) {
	return r.scope, r.rng
}

type DayInput struct {
	Date        string  `json:"date"`
	Type        string  `json:"day_type"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type UpsertDaysRequest struct {
	Scope         string     `json:"scope"`
	InstitutionID string     `json:"institution_id,omitempty"`
	Days          []DayInput `json:"days"`

	scope Scope
	dates []dateutil.Date
}

func (r *UpsertDaysRequest) Validate() error {
	var errs validator.ValidationErrors
	r.scope = scopeFrom(&errs, r.Scope, r.InstitutionID)

	if len(r.Days) == 0 {
		errs.Add("days", "at least one day is required")
	}
	if len(r.Days) > 400 {
		errs.Add("days", "at most 400 days can be written at once")
	}

	r.dates = make([]dateutil.Date, len(r.Days))
	seen := make(map[dateutil.Date]int, len(r.Days))
	for i, d := range r.Days {
		field := "days[" + strconv.Itoa(i) + "]"
		date, ok := validator.IsValidDate(d.Date)
		if !ok {
			errs.Add(field+".date", "date must be in YYYY-MM-DD format")
		} else if first, dup := seen[date]; dup {
			errs.Add(field+".date", "date repeats days["+strconv.Itoa(first)+"]")
		} else {
			seen[date] = i
		}
		r.dates[i] = date
		if !DayType(d.Type).IsValid() {
			errs.Add(field+".day_type", "day_type must be one of: weekend, holiday")
		}
		if DayType(d.Type) == DayTypeHoliday && validator.IsEmpty(d.Name) {
			errs.Add(field+".name", "name is required for holidays")
		}
		if len(d.Name) > 255 {
			errs.Add(field+".name", "name must not exceed 255 characters")
		}
	}

	return errs.Err()
}

// ToDays converts a validated request into calendar rows.
func (r *UpsertDaysRequest) ToDays(companyID string) []Day {
	days := make([]Day, len(r.Days))
	for i, in := range r.Days {
		days[i] = Day{
			CompanyID:   companyID,
			ScopeKind:   r.scope.Kind,
			Date:        r.dates[i],
			Type:        DayType(in.Type),
			Name:        strings.TrimSpace(in.Name),
			Description: in.Description,
		}
		if r.scope.Kind == ScopeInstitution {
			id := r.scope.InstitutionID
			days[i].InstitutionID = &id
		}
	}
	return days
}

type WeeklyOffsRequest struct {
	Scope         string   `json:"scope"`
	InstitutionID string   `json:"institution_id,omitempty"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	Weekdays      []string `json:"weekdays"`
	Name          string   `json:"name,omitempty"`

	scope    Scope
	rng      dateutil.Range
	weekdays []time.Weekday
}

func (r *WeeklyOffsRequest) Validate() error {
	var errs validator.ValidationErrors
	r.scope = scopeFrom(&errs, r.Scope, r.InstitutionID)
	r.rng = rangeFrom(&errs, r.StartDate, r.EndDate)

	if r.rng.Validate() == nil && r.rng.Len() > 366 {
		errs.Add("end_date", "range must not exceed 366 days")
	}

	if len(r.Weekdays) == 0 {
		errs.Add("weekdays", "at least one weekday is required")
	}
	r.weekdays = r.weekdays[:0]
	for _, name := range r.Weekdays {
		wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			errs.Add("weekdays", "unknown weekday: "+name)
			continue
		}
		r.weekdays = append(r.weekdays, wd)
	}

	return errs.Err()
}

// ToDays expands the weekly rule into explicit weekend rows.
func (r *WeeklyOffsRequest) ToDays(companyID string) []Day {
	name := r.Name
	if validator.IsEmpty(name) {
		name = "Weekly off"
	}
	dates := WeeklyOffs(r.rng, r.weekdays)
	days := make([]Day, len(dates))
	for i, d := range dates {
		days[i] = Day{
			CompanyID: companyID,
			ScopeKind: r.scope.Kind,
			Date:      d,
			Type:      DayTypeWeekend,
			Name:      name,
		}
		if r.scope.Kind == ScopeInstitution {
			id := r.scope.InstitutionID
			days[i].InstitutionID = &id
		}
	}
	return days
}

type DayResponse struct {
	ID            string        `json:"id"`
	Scope         ScopeKind     `json:"scope"`
	InstitutionID *string       `json:"institution_id,omitempty"`
	Date          dateutil.Date `json:"date"`
	Type          DayType       `json:"day_type"`
	Name          string        `json:"name"`
	Description   *string       `json:"description,omitempty"`
}

func ToDayResponse(d Day) DayResponse {
	return DayResponse{
		ID:            d.ID,
		Scope:         d.ScopeKind,
		InstitutionID: d.InstitutionID,
		Date:          d.Date,
		Type:          d.Type,
		Name:          d.Name,
		Description:   d.Description,
	}
}
