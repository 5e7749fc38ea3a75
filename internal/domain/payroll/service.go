package payroll

import (
	"context"
	"time"
)

type PayrollService interface {
	// GetPayout computes the month's payout summary from live attendance.
	GetPayout(ctx context.Context, companyID, employeeID string, year int, month time.Month) (PayoutResponse, error)

	// Salary structure
	GetSalaryStructure(ctx context.Context, companyID, employeeID string) (SalaryStructureResponse, error)
	UpsertSalaryStructure(ctx context.Context, companyID, employeeID string, req UpsertSalaryStructureRequest) (SalaryStructureResponse, error)

	// Payslips
	GeneratePayslip(ctx context.Context, companyID string, req GeneratePayslipRequest) (PayslipResponse, error)
	FinalizePayslip(ctx context.Context, companyID, finalizedBy, id string) (PayslipResponse, error)
	GetPayslip(ctx context.Context, companyID, id string) (PayslipResponse, error)
	ListPayslips(ctx context.Context, companyID string, req ListPayslipsRequest) ([]PayslipResponse, error)
}
