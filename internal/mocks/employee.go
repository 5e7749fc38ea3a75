package mocks

import (
	"context"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/employee"
	"github.com/stretchr/testify/mock"
)

type EmployeeRepository struct {
	mock.Mock
}

func (m *EmployeeRepository) GetByID(ctx context.Context, companyID, id string) (employee.Employee, error) {
	args := m.Called(ctx, companyID, id)
	e, _ := args.Get(0).(employee.Employee)
	return e, args.Error(1)
}

func (m *EmployeeRepository) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	args := m.Called(ctx, companyID)
	emps, _ := args.Get(0).([]employee.Employee)
	return emps, args.Error(1)
}

func (m *EmployeeRepository) ListCompanyIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}
