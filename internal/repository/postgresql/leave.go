package postgresql

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/leave"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/database"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
)

var leaveApplicationColumns = []string{
	"id", "company_id", "employee_id", "leave_type", "start_date", "end_date",
	"total_days", "paid_days", "lop_days", "status", "reason",
	"approved_by", "approved_at", "created_at", "updated_at",
}

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

func scanLeaveApplication(row pgx.Row) (leave.Application, error) {
	var a leave.Application
	err := row.Scan(
		&a.ID, &a.CompanyID, &a.EmployeeID, &a.LeaveType, scanDate(&a.StartDate), scanDate(&a.EndDate),
		&a.TotalDays, &a.PaidDays, &a.LopDays, &a.Status, &a.Reason,
		&a.ApprovedBy, &a.ApprovedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, app *leave.Application) error {
	q := GetQuerier(ctx, r.db)

	b := psql.Insert("leave_applications").
		Columns(
			"company_id", "employee_id", "leave_type", "start_date", "end_date",
			"total_days", "paid_days", "lop_days", "status", "reason", "approved_by", "approved_at",
		).
		Values(
			app.CompanyID, app.EmployeeID, app.LeaveType, app.StartDate.Time(), app.EndDate.Time(),
			app.TotalDays, app.PaidDays, app.LopDays, string(app.Status), app.Reason, app.ApprovedBy, app.ApprovedAt,
		).
		Suffix("RETURNING id, created_at, updated_at")

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if err := q.QueryRow(ctx, query, args...).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create leave application: %w", err)
	}
	return nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	b := psql.Select(leaveApplicationColumns...).
		From("leave_applications").
		Where(sq.Eq{"id": id, "company_id": companyID})

	return queryOne(ctx, q, b, scanLeaveApplication, leave.ErrLeaveNotFound)
}

// Delete implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Delete(ctx context.Context, companyID, id string) error {
	q := GetQuerier(ctx, r.db)

	n, err := exec(ctx, q, psql.Delete("leave_applications").Where(sq.Eq{"id": id, "company_id": companyID}))
	if err != nil {
		return fmt.Errorf("failed to delete leave application: %w", err)
	}
	if n == 0 {
		return leave.ErrLeaveNotFound
	}
	return nil
}

// ListApproved implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListApproved(ctx context.Context, companyID, employeeID string, rng dateutil.Range) ([]leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	b := psql.Select(leaveApplicationColumns...).
		From("leave_applications").
		Where(sq.Eq{
			"company_id":  companyID,
			"employee_id": employeeID,
			"status":      string(leave.StatusApproved),
		}).
		Where(overlapping("start_date", "end_date", rng)).
		OrderBy("approved_at ASC NULLS FIRST", "created_at ASC")

	apps, err := queryRows(ctx, q, b, scanLeaveApplication)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leaves: %w", err)
	}
	return apps, nil
}

// List implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, companyID string, filter leave.ListFilter) ([]leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	b := psql.Select(leaveApplicationColumns...).
		From("leave_applications").
		Where(sq.Eq{"company_id": companyID}).
		OrderBy("start_date DESC", "created_at DESC")
	if filter.EmployeeID != nil {
		b = b.Where(sq.Eq{"employee_id": *filter.EmployeeID})
	}
	if filter.Range != nil {
		b = b.Where(overlapping("start_date", "end_date", *filter.Range))
	}

	apps, err := queryRows(ctx, q, b, scanLeaveApplication)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	return apps, nil
}

var leaveQuotaColumns = []string{
	"id", "company_id", "employee_id", "leave_type", "year",
	"total_quota", "used_quota", "created_at", "updated_at",
}

type leaveQuotaRepositoryImpl struct {
	db *database.DB
}

func NewLeaveQuotaRepository(db *database.DB) leave.LeaveQuotaRepository {
	return &leaveQuotaRepositoryImpl{db: db}
}

func scanLeaveQuota(row pgx.Row) (leave.LeaveQuota, error) {
	var lq leave.LeaveQuota
	err := row.Scan(
		&lq.ID, &lq.CompanyID, &lq.EmployeeID, &lq.LeaveType, &lq.Year,
		&lq.TotalQuota, &lq.UsedQuota, &lq.CreatedAt, &lq.UpdatedAt,
	)
	return lq, err
}

// Get implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) Get(ctx context.Context, companyID, employeeID, leaveType string, year int) (leave.LeaveQuota, error) {
	q := GetQuerier(ctx, r.db)

	b := psql.Select(leaveQuotaColumns...).
		From("leave_quotas").
		Where(sq.Eq{
			"company_id":  companyID,
			"employee_id": employeeID,
			"leave_type":  leaveType,
			"year":        year,
		})

	return queryOne(ctx, q, b, scanLeaveQuota, leave.ErrLeaveQuotaNotFound)
}

// ListByEmployee implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) ListByEmployee(ctx context.Context, companyID, employeeID string, year int) ([]leave.LeaveQuota, error) {
	q := GetQuerier(ctx, r.db)

	b := psql.Select(leaveQuotaColumns...).
		From("leave_quotas").
		Where(sq.Eq{"company_id": companyID, "employee_id": employeeID, "year": year}).
		OrderBy("leave_type")

	quotas, err := queryRows(ctx, q, b, scanLeaveQuota)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave quotas: %w", err)
	}
	return quotas, nil
}

// Upsert implements leave.LeaveQuotaRepository. Only total_quota is
// overwritten on conflict; used_quota is owned by AdjustUsed.
func (r *leaveQuotaRepositoryImpl) Upsert(ctx context.Context, quota *leave.LeaveQuota) error {
	q := GetQuerier(ctx, r.db)

	b := psql.Insert("leave_quotas").
		Columns("company_id", "employee_id", "leave_type", "year", "total_quota", "used_quota").
		Values(quota.CompanyID, quota.EmployeeID, quota.LeaveType, quota.Year, quota.TotalQuota, quota.UsedQuota).
		Suffix(`ON CONFLICT (company_id, employee_id, leave_type, year) DO UPDATE
			SET total_quota = EXCLUDED.total_quota, updated_at = NOW()
			RETURNING id, used_quota, created_at, updated_at`)

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if err := q.QueryRow(ctx, query, args...).Scan(&quota.ID, &quota.UsedQuota, &quota.CreatedAt, &quota.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert leave quota: %w", err)
	}
	return nil
}

// AdjustUsed implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) AdjustUsed(ctx context.Context, companyID, employeeID, leaveType string, year, delta int) error {
	q := GetQuerier(ctx, r.db)

	b := psql.Update("leave_quotas").
		Set("used_quota", sq.Expr("GREATEST(used_quota + ?, 0)", delta)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"company_id":  companyID,
			"employee_id": employeeID,
			"leave_type":  leaveType,
			"year":        year,
		})

	n, err := exec(ctx, q, b)
	if err != nil {
		return fmt.Errorf("failed to adjust leave quota: %w", err)
	}
	if n == 0 {
		return leave.ErrLeaveQuotaNotFound
	}
	return nil
}
