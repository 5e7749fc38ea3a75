package attendance

import (
	"context"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
)

type AttendanceRepository interface {
	Create(ctx context.Context, a *Attendance) error
	// Update overwrites check-in/out derived columns of an existing row.
	Update(ctx context.Context, a *Attendance) error
	GetByID(ctx context.Context, companyID, id string) (Attendance, error)
	GetByEmployeeDate(ctx context.Context, companyID, employeeID string, date dateutil.Date) (Attendance, error)
	ListByEmployee(ctx context.Context, companyID, employeeID string, rng dateutil.Range) ([]Attendance, error)
	ListByCompany(ctx context.Context, companyID string, rng dateutil.Range) ([]Attendance, error)
}

type OvertimeRepository interface {
	GetByID(ctx context.Context, companyID, id string) (OvertimeRequest, error)
	ListByEmployee(ctx context.Context, companyID, employeeID string, rng dateutil.Range) ([]OvertimeRequest, error)
	ListByCompany(ctx context.Context, companyID string, rng dateutil.Range) ([]OvertimeRequest, error)
	// InsertMissing stores reqs, silently skipping any (employee, date)
	// that already has a request, and returns only the rows it created.
	InsertMissing(ctx context.Context, reqs []OvertimeRequest) ([]OvertimeRequest, error)
	UpdateStatus(ctx context.Context, req *OvertimeRequest) error
}
