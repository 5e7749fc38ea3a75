package mocks

import (
	"context"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/leave"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/report"
	"github.com/stretchr/testify/mock"
)

type LeaveService struct {
	mock.Mock
}

func (m *LeaveService) CreateApproved(ctx context.Context, companyID, approverID string, req leave.CreateLeaveRequest) (leave.ApplicationResponse, error) {
	args := m.Called(ctx, companyID, approverID, req)
	res, _ := args.Get(0).(leave.ApplicationResponse)
	return res, args.Error(1)
}

func (m *LeaveService) Correct(ctx context.Context, companyID, approverID, id string, req leave.CreateLeaveRequest) (leave.ApplicationResponse, error) {
	args := m.Called(ctx, companyID, approverID, id, req)
	res, _ := args.Get(0).(leave.ApplicationResponse)
	return res, args.Error(1)
}

func (m *LeaveService) Delete(ctx context.Context, companyID, id string) error {
	return m.Called(ctx, companyID, id).Error(0)
}

func (m *LeaveService) Get(ctx context.Context, companyID, id string) (leave.ApplicationResponse, error) {
	args := m.Called(ctx, companyID, id)
	res, _ := args.Get(0).(leave.ApplicationResponse)
	return res, args.Error(1)
}

func (m *LeaveService) List(ctx context.Context, companyID string, req leave.ListLeaveRequest) ([]leave.ApplicationResponse, error) {
	args := m.Called(ctx, companyID, req)
	res, _ := args.Get(0).([]leave.ApplicationResponse)
	return res, args.Error(1)
}

func (m *LeaveService) GetQuotas(ctx context.Context, companyID, employeeID string, year int) ([]leave.LeaveQuotaResponse, error) {
	args := m.Called(ctx, companyID, employeeID, year)
	res, _ := args.Get(0).([]leave.LeaveQuotaResponse)
	return res, args.Error(1)
}

func (m *LeaveService) UpsertQuota(ctx context.Context, companyID string, req leave.UpsertQuotaRequest) (leave.LeaveQuotaResponse, error) {
	args := m.Called(ctx, companyID, req)
	res, _ := args.Get(0).(leave.LeaveQuotaResponse)
	return res, args.Error(1)
}

type ReportService struct {
	mock.Mock
}

func (m *ReportService) AttendanceRegister(ctx context.Context, companyID string, req report.AttendanceRegisterRequest) (report.File, error) {
	args := m.Called(ctx, companyID, req)
	f, _ := args.Get(0).(report.File)
	return f, args.Error(1)
}
