package employee

import (
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/calendar"
)

// Category decides which holiday calendar applies to an employee.
type Category string

const (
	// CategoryOfficer employees are posted at an institution and follow its
	// calendar.
	CategoryOfficer Category = "officer"
	CategoryStaff   Category = "staff"
)

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "active"
	EmploymentStatusInactive EmploymentStatus = "inactive"
)

type Employee struct {
	ID               string
	UserID           *string
	CompanyID        string
	InstitutionID    *string
	EmployeeCode     string
	FullName         string
	Category         Category
	WorkStateCode    *string
	EmploymentStatus EmploymentStatus
	HireDate         time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CalendarScope selects the institution calendar for officers and the
// company calendar for everyone else. An officer without an institution
// yields a scope that fails validation.
func (e Employee) CalendarScope() calendar.Scope {
	if e.Category == CategoryOfficer {
		if e.InstitutionID == nil {
			return calendar.InstitutionScope("")
		}
		return calendar.InstitutionScope(*e.InstitutionID)
	}
	return calendar.CompanyScope()
}

// RecipientID is the user notified about this employee's records.
func (e Employee) RecipientID() string {
	if e.UserID != nil {
		return *e.UserID
	}
	return ""
}
