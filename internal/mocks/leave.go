package mocks

import (
	"context"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/leave"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
	"github.com/stretchr/testify/mock"
)

type LeaveRepository struct {
	mock.Mock
}

func (m *LeaveRepository) Create(ctx context.Context, app *leave.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *LeaveRepository) GetByID(ctx context.Context, companyID, id string) (leave.Application, error) {
	args := m.Called(ctx, companyID, id)
	app, _ := args.Get(0).(leave.Application)
	return app, args.Error(1)
}

func (m *LeaveRepository) Delete(ctx context.Context, companyID, id string) error {
	return m.Called(ctx, companyID, id).Error(0)
}

func (m *LeaveRepository) ListApproved(ctx context.Context, companyID, employeeID string, rng dateutil.Range) ([]leave.Application, error) {
	args := m.Called(ctx, companyID, employeeID, rng)
	apps, _ := args.Get(0).([]leave.Application)
	return apps, args.Error(1)
}

func (m *LeaveRepository) List(ctx context.Context, companyID string, filter leave.ListFilter) ([]leave.Application, error) {
	args := m.Called(ctx, companyID, filter)
	apps, _ := args.Get(0).([]leave.Application)
	return apps, args.Error(1)
}

type LeaveQuotaRepository struct {
	mock.Mock
}

func (m *LeaveQuotaRepository) Get(ctx context.Context, companyID, employeeID, leaveType string, year int) (leave.LeaveQuota, error) {
	args := m.Called(ctx, companyID, employeeID, leaveType, year)
	q, _ := args.Get(0).(leave.LeaveQuota)
	return q, args.Error(1)
}

func (m *LeaveQuotaRepository) ListByEmployee(ctx context.Context, companyID, employeeID string, year int) ([]leave.LeaveQuota, error) {
	args := m.Called(ctx, companyID, employeeID, year)
	quotas, _ := args.Get(0).([]leave.LeaveQuota)
	return quotas, args.Error(1)
}

func (m *LeaveQuotaRepository) Upsert(ctx context.Context, quota *leave.LeaveQuota) error {
	return m.Called(ctx, quota).Error(0)
}

func (m *LeaveQuotaRepository) AdjustUsed(ctx context.Context, companyID, employeeID, leaveType string, year, delta int) error {
	return m.Called(ctx, companyID, employeeID, leaveType, year, delta).Error(0)
}
