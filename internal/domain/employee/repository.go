package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, companyID, id string) (Employee, error)
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	// ListCompanyIDs returns every company with at least one active employee.
	ListCompanyIDs(ctx context.Context) ([]string, error)
}
