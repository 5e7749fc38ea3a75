package payroll

import (
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/attendance"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== SALARY STRUCTURE DTOs ==========

type UpsertSalaryStructureRequest struct {
	BasicPay            decimal.Decimal  `json:"basic_pay"`
	HRA                 decimal.Decimal  `json:"hra"`
	ConveyanceAllowance decimal.Decimal  `json:"conveyance_allowance"`
	SpecialAllowance    decimal.Decimal  `json:"special_allowance"`
	OtherAllowances     decimal.Decimal  `json:"other_allowances"`
	HourlyRate          *decimal.Decimal `json:"hourly_rate,omitempty"`
	OvertimeMultiplier  *decimal.Decimal `json:"overtime_multiplier,omitempty"`
	PFApplicable        bool             `json:"pf_applicable"`
	ESIApplicable       bool             `json:"esi_applicable"`
	PTApplicable        bool             `json:"pt_applicable"`
	PTStateCode         string           `json:"pt_state_code,omitempty"`
}

func (r *UpsertSalaryStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	amounts := map[string]decimal.Decimal{
		"basic_pay":            r.BasicPay,
		"hra":                  r.HRA,
		"conveyance_allowance": r.ConveyanceAllowance,
		"special_allowance":    r.SpecialAllowance,
		"other_allowances":     r.OtherAllowances,
	}
	for field, v := range amounts {
		if v.IsNegative() {
			errs.Add(field, "must be non-negative")
		}
	}
	if !r.BasicPay.IsPositive() {
		errs.Add("basic_pay", "basic_pay must be greater than zero")
	}
	if r.HourlyRate != nil && r.HourlyRate.IsNegative() {
		errs.Add("hourly_rate", "must be non-negative")
	}
	if r.OvertimeMultiplier != nil && r.OvertimeMultiplier.LessThan(decimal.NewFromInt(1)) {
		errs.Add("overtime_multiplier", "must be at least 1")
	}
	if r.PTApplicable && !validator.IsValidStateCode(r.PTStateCode) {
		errs.Add("pt_state_code", "a valid two digit state code is required when PT applies")
	}

	return errs.Err()
}

func (r *UpsertSalaryStructureRequest) ToEntity(companyID, employeeID string) SalaryStructure {
	return SalaryStructure{
		CompanyID:           companyID,
		EmployeeID:          employeeID,
		BasicPay:            r.BasicPay,
		HRA:                 r.HRA,
		ConveyanceAllowance: r.ConveyanceAllowance,
		SpecialAllowance:    r.SpecialAllowance,
		OtherAllowances:     r.OtherAllowances,
		HourlyRate:          r.HourlyRate,
		OvertimeMultiplier:  r.OvertimeMultiplier,
		Statutory: StatutoryInfo{
			PFApplicable:  r.PFApplicable,
			ESIApplicable: r.ESIApplicable,
			PTApplicable:  r.PTApplicable,
			PTStateCode:   r.PTStateCode,
		},
	}
}

type SalaryStructureResponse struct {
	ID                  string           `json:"id"`
	EmployeeID          string           `json:"employee_id"`
	BasicPay            decimal.Decimal  `json:"basic_pay"`
	HRA                 decimal.Decimal  `json:"hra"`
	ConveyanceAllowance decimal.Decimal  `json:"conveyance_allowance"`
	SpecialAllowance    decimal.Decimal  `json:"special_allowance"`
	OtherAllowances     decimal.Decimal  `json:"other_allowances"`
	MonthlySalary       decimal.Decimal  `json:"monthly_salary"`
	HourlyRate          *decimal.Decimal `json:"hourly_rate,omitempty"`
	OvertimeMultiplier  *decimal.Decimal `json:"overtime_multiplier,omitempty"`
	PFApplicable        bool             `json:"pf_applicable"`
	ESIApplicable       bool             `json:"esi_applicable"`
	PTApplicable        bool             `json:"pt_applicable"`
	PTStateCode         string           `json:"pt_state_code,omitempty"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

func ToSalaryStructureResponse(s SalaryStructure) SalaryStructureResponse {
	return SalaryStructureResponse{
		ID:                  s.ID,
		EmployeeID:          s.EmployeeID,
		BasicPay:            s.BasicPay,
		HRA:                 s.HRA,
		ConveyanceAllowance: s.ConveyanceAllowance,
		SpecialAllowance:    s.SpecialAllowance,
		OtherAllowances:     s.OtherAllowances,
		MonthlySalary:       s.MonthlySalary(),
		HourlyRate:          s.HourlyRate,
		OvertimeMultiplier:  s.OvertimeMultiplier,
		PFApplicable:        s.Statutory.PFApplicable,
		ESIApplicable:       s.Statutory.ESIApplicable,
		PTApplicable:        s.Statutory.PTApplicable,
		PTStateCode:         s.Statutory.PTStateCode,
		UpdatedAt:           s.UpdatedAt,
	}
}

// ========== PAYOUT DTOs ==========

type PayoutResponse struct {
	EmployeeID string               `json:"employee_id"`
	Stats      attendance.Stats     `json:"stats"`
	Payout     Payout               `json:"payout"`
	Warnings   []attendance.Warning `json:"warnings,omitempty"`
}

// ========== PAYSLIP DTOs ==========

type GeneratePayslipRequest struct {
	EmployeeID        string           `json:"employee_id"`
	Year              int              `json:"year"`
	Month             int              `json:"month"`
	ManualOvertimePay *decimal.Decimal `json:"manual_overtime_pay,omitempty"`
}

func (r *GeneratePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if !validator.IsValidMonth(r.Year, r.Month) {
		errs.Add("month", "year must be 2000-2100 and month 1-12")
	}
	if r.ManualOvertimePay != nil && r.ManualOvertimePay.IsNegative() {
		errs.Add("manual_overtime_pay", "must be non-negative")
	}

	return errs.Err()
}

type ListPayslipsRequest struct {
	EmployeeID string
	Year       int
	Month      int
	Status     string
}

func (r *ListPayslipsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if r.Month != 0 && (r.Month < 1 || r.Month > 12) {
		errs.Add("month", "month must be 1-12")
	}
	if r.Status != "" && r.Status != string(PayslipStatusDraft) && r.Status != string(PayslipStatusFinalized) {
		errs.Add("status", "status must be one of: draft, finalized")
	}

	return errs.Err()
}

func (r *ListPayslipsRequest) ToFilter() PayslipFilter {
	var f PayslipFilter
	if r.EmployeeID != "" {
		f.EmployeeID = &r.EmployeeID
	}
	if r.Year != 0 {
		f.Year = &r.Year
	}
	if r.Month != 0 {
		f.Month = &r.Month
	}
	if r.Status != "" {
		s := PayslipStatus(r.Status)
		f.Status = &s
	}
	return f
}

type PayslipResponse struct {
	ID          string           `json:"id"`
	EmployeeID  string           `json:"employee_id"`
	Year        int              `json:"year"`
	Month       int              `json:"month"`
	Status      PayslipStatus    `json:"status"`
	Stats       attendance.Stats `json:"stats"`
	Payout      Payout           `json:"payout"`
	DocumentURL *string          `json:"document_url,omitempty"`
	FinalizedAt *time.Time       `json:"finalized_at,omitempty"`
	FinalizedBy *string          `json:"finalized_by,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func ToPayslipResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:          p.ID,
		EmployeeID:  p.EmployeeID,
		Year:        p.Year,
		Month:       p.Month,
		Status:      p.Status,
		Stats:       p.Stats,
		Payout:      p.Payout,
		FinalizedAt: p.FinalizedAt,
		FinalizedBy: p.FinalizedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
