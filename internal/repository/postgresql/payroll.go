package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/payroll"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== SALARY STRUCTURES ==========

const salaryStructureColumns = `
	id, company_id, employee_id, basic_pay, hra, conveyance_allowance,
	special_allowance, other_allowances, hourly_rate, overtime_multiplier,
	pf_applicable, esi_applicable, pt_applicable, pt_state_code,
	created_at, updated_at
`

func scanSalaryStructure(row pgx.Row) (payroll.SalaryStructure, error) {
	var (
		s          payroll.SalaryStructure
		hourly     decimal.NullDecimal
		multiplier decimal.NullDecimal
		ptState    *string
	)
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.EmployeeID, &s.BasicPay, &s.HRA, &s.ConveyanceAllowance,
		&s.SpecialAllowance, &s.OtherAllowances, &hourly, &multiplier,
		&s.Statutory.PFApplicable, &s.Statutory.ESIApplicable, &s.Statutory.PTApplicable, &ptState,
		&s.CreatedAt, &s.UpdatedAt,
	)
	s.HourlyRate = decimalPtr(hourly)
	s.OvertimeMultiplier = decimalPtr(multiplier)
	if ptState != nil {
		s.Statutory.PTStateCode = *ptState
	}
	return s, err
}

func (r *payrollRepository) GetSalaryStructure(ctx context.Context, companyID, employeeID string) (payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryStructureColumns + `
		FROM salary_structures
		WHERE company_id = $1 AND employee_id = $2
	`

	s, err := scanSalaryStructure(q.QueryRow(ctx, query, companyID, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryStructure{}, payroll.ErrSalaryStructureNotFound
		}
		return payroll.SalaryStructure{}, fmt.Errorf("failed to get salary structure: %w", err)
	}
	return s, nil
}

func (r *payrollRepository) UpsertSalaryStructure(ctx context.Context, s *payroll.SalaryStructure) error {
	q := GetQuerier(ctx, r.db)

	var ptState *string
	if s.Statutory.PTStateCode != "" {
		ptState = &s.Statutory.PTStateCode
	}

	query := `
		INSERT INTO salary_structures (
			company_id, employee_id, basic_pay, hra, conveyance_allowance,
			special_allowance, other_allowances, hourly_rate, overtime_multiplier,
			pf_applicable, esi_applicable, pt_applicable, pt_state_code
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (company_id, employee_id) DO UPDATE SET
			basic_pay = EXCLUDED.basic_pay,
			hra = EXCLUDED.hra,
			conveyance_allowance = EXCLUDED.conveyance_allowance,
			special_allowance = EXCLUDED.special_allowance,
			other_allowances = EXCLUDED.other_allowances,
			hourly_rate = EXCLUDED.hourly_rate,
			overtime_multiplier = EXCLUDED.overtime_multiplier,
			pf_applicable = EXCLUDED.pf_applicable,
			esi_applicable = EXCLUDED.esi_applicable,
			pt_applicable = EXCLUDED.pt_applicable,
			pt_state_code = EXCLUDED.pt_state_code,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.CompanyID, s.EmployeeID, s.BasicPay, s.HRA, s.ConveyanceAllowance,
		s.SpecialAllowance, s.OtherAllowances, nullDecimal(s.HourlyRate), nullDecimal(s.OvertimeMultiplier),
		s.Statutory.PFApplicable, s.Statutory.ESIApplicable, s.Statutory.PTApplicable, ptState,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert salary structure: %w", err)
	}
	return nil
}

// ========== PAYSLIPS ==========

var payslipColumns = []string{
	"id", "company_id", "employee_id", "year", "month", "stats", "payout",
	"status", "document_key", "finalized_at", "finalized_by", "created_at", "updated_at",
}

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var (
		p          payroll.Payslip
		statsJSON  []byte
		payoutJSON []byte
	)
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.EmployeeID, &p.Year, &p.Month, &statsJSON, &payoutJSON,
		&p.Status, &p.DocumentKey, &p.FinalizedAt, &p.FinalizedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(statsJSON, &p.Stats); err != nil {
		return p, fmt.Errorf("failed to unmarshal payslip stats: %w", err)
	}
	if err := json.Unmarshal(payoutJSON, &p.Payout); err != nil {
		return p, fmt.Errorf("failed to unmarshal payslip payout: %w", err)
	}
	return p, nil
}

func (r *payrollRepository) UpsertDraftPayslip(ctx context.Context, p *payroll.Payslip) error {
	q := GetQuerier(ctx, r.db)

	statsJSON, err := json.Marshal(p.Stats)
	if err != nil {
		return fmt.Errorf("failed to marshal payslip stats: %w", err)
	}
	payoutJSON, err := json.Marshal(p.Payout)
	if err != nil {
		return fmt.Errorf("failed to marshal payslip payout: %w", err)
	}

	// The WHERE on the conflict branch leaves finalized payslips untouched,
	// in which case no row comes back.
	query := `
		INSERT INTO payslips (company_id, employee_id, year, month, stats, payout, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (company_id, employee_id, year, month) DO UPDATE SET
			stats = EXCLUDED.stats,
			payout = EXCLUDED.payout,
			updated_at = NOW()
		WHERE payslips.status = $7
		RETURNING id, status, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		p.CompanyID, p.EmployeeID, p.Year, p.Month, statsJSON, payoutJSON, string(payroll.PayslipStatusDraft),
	).Scan(&p.ID, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ErrPayslipAlreadyFinalized
		}
		return fmt.Errorf("failed to save payslip: %w", err)
	}
	return nil
}

func (r *payrollRepository) GetPayslipByID(ctx context.Context, companyID, id string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	b := psql.Select(payslipColumns...).
		From("payslips").
		Where(sq.Eq{"id": id, "company_id": companyID})

	return queryOne(ctx, q, b, scanPayslip, payroll.ErrPayslipNotFound)
}

func (r *payrollRepository) ListPayslips(ctx context.Context, companyID string, filter payroll.PayslipFilter) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	eq := sq.Eq{"company_id": companyID}
	if filter.EmployeeID != nil {
		eq["employee_id"] = *filter.EmployeeID
	}
	if filter.Year != nil {
		eq["year"] = *filter.Year
	}
	if filter.Month != nil {
		eq["month"] = *filter.Month
	}
	if filter.Status != nil {
		eq["status"] = string(*filter.Status)
	}

	b := psql.Select(payslipColumns...).
		From("payslips").
		Where(eq).
		OrderBy("year DESC", "month DESC", "employee_id")

	payslips, err := queryRows(ctx, q, b, scanPayslip)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	return payslips, nil
}

func (r *payrollRepository) FinalizePayslip(ctx context.Context, p *payroll.Payslip) error {
	q := GetQuerier(ctx, r.db)

	b := psql.Update("payslips").
		Set("status", string(payroll.PayslipStatusFinalized)).
		Set("document_key", p.DocumentKey).
		Set("finalized_at", p.FinalizedAt).
		Set("finalized_by", p.FinalizedBy).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":         p.ID,
			"company_id": p.CompanyID,
			"status":     string(payroll.PayslipStatusDraft),
		})

	n, err := exec(ctx, q, b)
	if err != nil {
		return fmt.Errorf("failed to finalize payslip: %w", err)
	}
	if n == 0 {
		return payroll.ErrPayslipAlreadyFinalized
	}
	p.Status = payroll.PayslipStatusFinalized
	return nil
}
