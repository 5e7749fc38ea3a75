package mocks

import (
	"context"
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/payroll"
	"github.com/stretchr/testify/mock"
)

type PayrollRepository struct {
	mock.Mock
}

func (m *PayrollRepository) GetSalaryStructure(ctx context.Context, companyID, employeeID string) (payroll.SalaryStructure, error) {
	args := m.Called(ctx, companyID, employeeID)
	s, _ := args.Get(0).(payroll.SalaryStructure)
	return s, args.Error(1)
}

func (m *PayrollRepository) UpsertSalaryStructure(ctx context.Context, s *payroll.SalaryStructure) error {
	return m.Called(ctx, s).Error(0)
}

func (m *PayrollRepository) UpsertDraftPayslip(ctx context.Context, p *payroll.Payslip) error {
	return m.Called(ctx, p).Error(0)
}

func (m *PayrollRepository) GetPayslipByID(ctx context.Context, companyID, id string) (payroll.Payslip, error) {
	args := m.Called(ctx, companyID, id)
	p, _ := args.Get(0).(payroll.Payslip)
	return p, args.Error(1)
}

func (m *PayrollRepository) ListPayslips(ctx context.Context, companyID string, filter payroll.PayslipFilter) ([]payroll.Payslip, error) {
	args := m.Called(ctx, companyID, filter)
	ps, _ := args.Get(0).([]payroll.Payslip)
	return ps, args.Error(1)
}

func (m *PayrollRepository) FinalizePayslip(ctx context.Context, p *payroll.Payslip) error {
	return m.Called(ctx, p).Error(0)
}

type PayrollService struct {
	mock.Mock
}

func (m *PayrollService) GetPayout(ctx context.Context, companyID, employeeID string, year int, month time.Month) (payroll.PayoutResponse, error) {
	args := m.Called(ctx, companyID, employeeID, year, month)
	res, _ := args.Get(0).(payroll.PayoutResponse)
	return res, args.Error(1)
}

func (m *PayrollService) GetSalaryStructure(ctx context.Context, companyID, employeeID string) (payroll.SalaryStructureResponse, error) {
	args := m.Called(ctx, companyID, employeeID)
	res, _ := args.Get(0).(payroll.SalaryStructureResponse)
	return res, args.Error(1)
}

func (m *PayrollService) UpsertSalaryStructure(ctx context.Context, companyID, employeeID string, req payroll.UpsertSalaryStructureRequest) (payroll.SalaryStructureResponse, error) {
	args := m.Called(ctx, companyID, employeeID, req)
	res, _ := args.Get(0).(payroll.SalaryStructureResponse)
	return res, args.Error(1)
}

func (m *PayrollService) GeneratePayslip(ctx context.Context, companyID string, req payroll.GeneratePayslipRequest) (payroll.PayslipResponse, error) {
	args := m.Called(ctx, companyID, req)
	res, _ := args.Get(0).(payroll.PayslipResponse)
	return res, args.Error(1)
}

func (m *PayrollService) FinalizePayslip(ctx context.Context, companyID, finalizedBy, id string) (payroll.PayslipResponse, error) {
	args := m.Called(ctx, companyID, finalizedBy, id)
	res, _ := args.Get(0).(payroll.PayslipResponse)
	return res, args.Error(1)
}

func (m *PayrollService) GetPayslip(ctx context.Context, companyID, id string) (payroll.PayslipResponse, error) {
	args := m.Called(ctx, companyID, id)
	res, _ := args.Get(0).(payroll.PayslipResponse)
	return res, args.Error(1)
}

func (m *PayrollService) ListPayslips(ctx context.Context, companyID string, req payroll.ListPayslipsRequest) ([]payroll.PayslipResponse, error) {
	args := m.Called(ctx, companyID, req)
	res, _ := args.Get(0).([]payroll.PayslipResponse)
	return res, args.Error(1)
}
