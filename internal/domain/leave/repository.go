package leave

import (
	"context"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
)

// LeaveRepository - interface for leave_applications table
type LeaveRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, companyID, id string) (Application, error)
	Delete(ctx context.Context, companyID, id string) error
	// ListApproved returns approved applications of one employee overlapping
	// rng, oldest approval first.
	ListApproved(ctx context.Context, companyID, employeeID string, rng dateutil.Range) ([]Application, error)
	List(ctx context.Context, companyID string, filter ListFilter) ([]Application, error)
}

// LeaveQuotaRepository - interface for leave_quotas table
type LeaveQuotaRepository interface {
	Get(ctx context.Context, companyID, employeeID, leaveType string, year int) (LeaveQuota, error)
	ListByEmployee(ctx context.Context, companyID, employeeID string, year int) ([]LeaveQuota, error)
	Upsert(ctx context.Context, quota *LeaveQuota) error
	// AdjustUsed adds delta (possibly negative) to used_quota.
	AdjustUsed(ctx context.Context, companyID, employeeID, leaveType string, year, delta int) error
}

type ListFilter struct {
	EmployeeID *string
	Range      *dateutil.Range
}
