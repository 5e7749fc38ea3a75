package payroll

import "context"

// PayrollRepository defines data access methods for payroll.
// All methods include companyID parameter to prevent cross-company data access attacks.
type PayrollRepository interface {
	// Salary structures
	GetSalaryStructure(ctx context.Context, companyID, employeeID string) (SalaryStructure, error)
	UpsertSalaryStructure(ctx context.Context, s *SalaryStructure) error

	// Payslips
	// UpsertDraftPayslip inserts or replaces the draft for (employee, year,
	// month). It returns ErrPayslipAlreadyFinalized when a finalized one exists.
	UpsertDraftPayslip(ctx context.Context, p *Payslip) error
	GetPayslipByID(ctx context.Context, companyID, id string) (Payslip, error)
	ListPayslips(ctx context.Context, companyID string, filter PayslipFilter) ([]Payslip, error)
	FinalizePayslip(ctx context.Context, p *Payslip) error
}

type PayslipFilter struct {
	EmployeeID *string
	Year       *int
	Month      *int
	Status     *PayslipStatus
}
