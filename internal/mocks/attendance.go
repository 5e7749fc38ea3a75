package mocks

import (
	"context"
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/attendance"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
	"github.com/stretchr/testify/mock"
)

type AttendanceRepository struct {
	mock.Mock
}

func (m *AttendanceRepository) Create(ctx context.Context, a *attendance.Attendance) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AttendanceRepository) Update(ctx context.Context, a *attendance.Attendance) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AttendanceRepository) GetByID(ctx context.Context, companyID, id string) (attendance.Attendance, error) {
	args := m.Called(ctx, companyID, id)
	a, _ := args.Get(0).(attendance.Attendance)
	return a, args.Error(1)
}

func (m *AttendanceRepository) GetByEmployeeDate(ctx context.Context, companyID, employeeID string, date dateutil.Date) (attendance.Attendance, error) {
	args := m.Called(ctx, companyID, employeeID, date)
	a, _ := args.Get(0).(attendance.Attendance)
	return a, args.Error(1)
}

func (m *AttendanceRepository) ListByEmployee(ctx context.Context, companyID, employeeID string, rng dateutil.Range) ([]attendance.Attendance, error) {
	args := m.Called(ctx, companyID, employeeID, rng)
	rows, _ := args.Get(0).([]attendance.Attendance)
	return rows, args.Error(1)
}

func (m *AttendanceRepository) ListByCompany(ctx context.Context, companyID string, rng dateutil.Range) ([]attendance.Attendance, error) {
	args := m.Called(ctx, companyID, rng)
	rows, _ := args.Get(0).([]attendance.Attendance)
	return rows, args.Error(1)
}

type OvertimeRepository struct {
	mock.Mock
}

func (m *OvertimeRepository) GetByID(ctx context.Context, companyID, id string) (attendance.OvertimeRequest, error) {
	args := m.Called(ctx, companyID, id)
	o, _ := args.Get(0).(attendance.OvertimeRequest)
	return o, args.Error(1)
}

func (m *OvertimeRepository) ListByEmployee(ctx context.Context, companyID, employeeID string, rng dateutil.Range) ([]attendance.OvertimeRequest, error) {
	args := m.Called(ctx, companyID, employeeID, rng)
	reqs, _ := args.Get(0).([]attendance.OvertimeRequest)
	return reqs, args.Error(1)
}

func (m *OvertimeRepository) ListByCompany(ctx context.Context, companyID string, rng dateutil.Range) ([]attendance.OvertimeRequest, error) {
	args := m.Called(ctx, companyID, rng)
	reqs, _ := args.Get(0).([]attendance.OvertimeRequest)
	return reqs, args.Error(1)
}

func (m *OvertimeRepository) InsertMissing(ctx context.Context, reqs []attendance.OvertimeRequest) ([]attendance.OvertimeRequest, error) {
	args := m.Called(ctx, reqs)
	created, _ := args.Get(0).([]attendance.OvertimeRequest)
	return created, args.Error(1)
}

func (m *OvertimeRepository) UpdateStatus(ctx context.Context, req *attendance.OvertimeRequest) error {
	return m.Called(ctx, req).Error(0)
}

type AttendanceService struct {
	mock.Mock
}

func (m *AttendanceService) GetMonth(ctx context.Context, companyID, employeeID string, year int, month time.Month) (attendance.MonthlyAttendance, error) {
	args := m.Called(ctx, companyID, employeeID, year, month)
	res, _ := args.Get(0).(attendance.MonthlyAttendance)
	return res, args.Error(1)
}

func (m *AttendanceService) BackfillOvertimeRequests(ctx context.Context, companyID, employeeID string, rng dateutil.Range) (attendance.BackfillResult, error) {
	args := m.Called(ctx, companyID, employeeID, rng)
	res, _ := args.Get(0).(attendance.BackfillResult)
	return res, args.Error(1)
}

func (m *AttendanceService) BackfillCompany(ctx context.Context, companyID string, rng dateutil.Range) (attendance.BackfillResult, error) {
	args := m.Called(ctx, companyID, rng)
	res, _ := args.Get(0).(attendance.BackfillResult)
	return res, args.Error(1)
}

func (m *AttendanceService) CheckIn(ctx context.Context, companyID, employeeID string) (attendance.AttendanceResponse, error) {
	args := m.Called(ctx, companyID, employeeID)
	res, _ := args.Get(0).(attendance.AttendanceResponse)
	return res, args.Error(1)
}

func (m *AttendanceService) CheckOut(ctx context.Context, companyID, employeeID string) (attendance.AttendanceResponse, error) {
	args := m.Called(ctx, companyID, employeeID)
	res, _ := args.Get(0).(attendance.AttendanceResponse)
	return res, args.Error(1)
}

func (m *AttendanceService) Correct(ctx context.Context, companyID, correctorID, id string, req attendance.CorrectionRequest) (attendance.AttendanceResponse, error) {
	args := m.Called(ctx, companyID, correctorID, id, req)
	res, _ := args.Get(0).(attendance.AttendanceResponse)
	return res, args.Error(1)
}

func (m *AttendanceService) ReviewOvertime(ctx context.Context, companyID, reviewerID, id string, req attendance.ReviewOvertimeRequest) (attendance.OvertimeResponse, error) {
	args := m.Called(ctx, companyID, reviewerID, id, req)
	res, _ := args.Get(0).(attendance.OvertimeResponse)
	return res, args.Error(1)
}
