package payroll

import (
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// SalaryStructure - monthly pay components of one employee
type SalaryStructure struct {
	ID                  string
	CompanyID           string
	EmployeeID          string
	BasicPay            decimal.Decimal
	HRA                 decimal.Decimal
	ConveyanceAllowance decimal.Decimal
	SpecialAllowance    decimal.Decimal
	OtherAllowances     decimal.Decimal
	// HourlyRate overrides the rate derived from the per-day salary.
	HourlyRate         *decimal.Decimal
	OvertimeMultiplier *decimal.Decimal
	Statutory          StatutoryInfo
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// MonthlySalary is the sum of all fixed components.
func (s SalaryStructure) MonthlySalary() decimal.Decimal {
	return decimal.Sum(s.BasicPay, s.HRA, s.ConveyanceAllowance, s.SpecialAllowance, s.OtherAllowances)
}

// StatutoryInfo - which regulated deductions apply to the employee
type StatutoryInfo struct {
	PFApplicable  bool
	ESIApplicable bool
	PTApplicable  bool
	// PTStateCode is the GST-style two digit state code used for the
	// professional tax slab.
	PTStateCode string
}

// Rules are company-wide payroll defaults.
type Rules struct {
	OvertimeMultiplier  decimal.Decimal
	StandardHoursPerDay decimal.Decimal
	PFRate              decimal.Decimal
	// PFWageCeiling caps the basic pay PF is computed on; zero disables it.
	PFWageCeiling decimal.Decimal
	ESIRate       decimal.Decimal
}

type Component struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Payout is the single source of every pay figure shown on the summary card
// and the payslip.
type Payout struct {
	Year                  int             `json:"year"`
	Month                 time.Month      `json:"month"`
	DaysInMonth           int             `json:"days_in_month"`
	MonthlySalary         decimal.Decimal `json:"monthly_salary"`
	PerDaySalary          decimal.Decimal `json:"per_day_salary"`
	TotalLopDays          int             `json:"total_lop_days"`
	LopDeduction          decimal.Decimal `json:"lop_deduction"`
	HourlyRate            decimal.Decimal `json:"hourly_rate"`
	OvertimeMultiplier    decimal.Decimal `json:"overtime_multiplier"`
	ApprovedOvertimeHours decimal.Decimal `json:"approved_overtime_hours"`
	OvertimePay           decimal.Decimal `json:"overtime_pay"`
	OvertimeIsManual      bool            `json:"overtime_is_manual"`
	Earnings              []Component     `json:"earnings"`
	GrossEarnings         decimal.Decimal `json:"gross_earnings"`
	PFDeduction           decimal.Decimal `json:"pf_deduction"`
	ESIDeduction          decimal.Decimal `json:"esi_deduction"`
	ProfessionalTax       decimal.Decimal `json:"professional_tax"`
	TotalDeductions       decimal.Decimal `json:"total_deductions"`
	NetPay                decimal.Decimal `json:"net_pay"`
}

type PayslipStatus string

const (
	PayslipStatusDraft     PayslipStatus = "draft"
	PayslipStatusFinalized PayslipStatus = "finalized"
)

// Payslip - a payout frozen for one employee and month
type Payslip struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	Year        int
	Month       int
	Stats       attendance.Stats
	Payout      Payout
	Status      PayslipStatus
	DocumentKey *string
	FinalizedAt *time.Time
	FinalizedBy *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
