package report

import (
	"fmt"
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/attendance"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/employee"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/validator"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ========================================
// MONTHLY ATTENDANCE REGISTER
// ========================================

type AttendanceRegisterRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *AttendanceRegisterRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidMonth(r.Year, r.Month) {
		errs.Add("month", "year must be 2000-2100 and month 1-12")
	}
	return errs.Err()
}

func (r *AttendanceRegisterRequest) FileName() string {
	return fmt.Sprintf("attendance-register-%04d-%02d.xlsx", r.Year, r.Month)
}

// RegisterRow is one employee line of the register.
type RegisterRow struct {
	Employee employee.Employee
	Days     []attendance.DayRecord
	Stats    attendance.Stats
	Partial  bool
}

// File is a rendered report ready to be streamed.
type File struct {
	Name        string
	ContentType string
	Content     []byte
	GeneratedAt time.Time
}
