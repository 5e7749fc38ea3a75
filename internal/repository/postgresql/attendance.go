package postgresql

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/attendance"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/database"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
	"github.com/shopspring/decimal"
)

var attendanceColumns = []string{
	"id", "company_id", "employee_id", "date", "check_in", "check_out",
	"total_hours", "overtime_hours", "is_late", "late_minutes",
	"is_corrected", "corrected_by", "correction_reason", "status",
	"created_at", "updated_at",
}

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func decimalPtr(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var (
		att           attendance.Attendance
		totalHours    decimal.NullDecimal
		overtimeHours decimal.NullDecimal
	)
	err := row.Scan(
		&att.ID, &att.CompanyID, &att.EmployeeID, scanDate(&att.Date), &att.CheckIn, &att.CheckOut,
		&totalHours, &overtimeHours, &att.IsLate, &att.LateMinutes,
		&att.IsCorrected, &att.CorrectedBy, &att.CorrectionReason, &att.Status,
		&att.CreatedAt, &att.UpdatedAt,
	)
	att.TotalHours = decimalPtr(totalHours)
	att.OvertimeHours = decimalPtr(overtimeHours)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, att *attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	b := psql.Insert("attendances").
		Columns(
			"company_id", "employee_id", "date", "check_in", "check_out",
			"total_hours", "overtime_hours", "is_late", "late_minutes", "status",
		).
		Values(
			att.CompanyID, att.EmployeeID, att.Date.Time(), att.CheckIn, att.CheckOut,
			nullDecimal(att.TotalHours), nullDecimal(att.OvertimeHours), att.IsLate, att.LateMinutes, string(att.Status),
		).
		Suffix("RETURNING id, created_at, updated_at")

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if err := q.QueryRow(ctx, query, args...).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create attendance: %w", err)
	}
	return nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att *attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	patch := map[string]interface{}{
		"check_in":          att.CheckIn,
		"check_out":         att.CheckOut,
		"total_hours":       nullDecimal(att.TotalHours),
		"overtime_hours":    nullDecimal(att.OvertimeHours),
		"is_late":           att.IsLate,
		"late_minutes":      att.LateMinutes,
		"is_corrected":      att.IsCorrected,
		"corrected_by":      att.CorrectedBy,
		"correction_reason": att.CorrectionReason,
		"status":            string(att.Status),
	}
	if err := updateByID(ctx, q, "attendances", att.CompanyID, att.ID, patch, attendance.ErrAttendanceNotFound); err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	return nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, companyID, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	b := psql.Select(attendanceColumns...).
		From("attendances").
		Where(sq.Eq{"id": id, "company_id": companyID})

	return queryOne(ctx, q, b, scanAttendance, attendance.ErrAttendanceNotFound)
}

// GetByEmployeeDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeDate(ctx context.Context, companyID, employeeID string, date dateutil.Date) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	b := psql.Select(attendanceColumns...).
		From("attendances").
		Where(sq.Eq{"company_id": companyID, "employee_id": employeeID, "date": date.Time()})

	return queryOne(ctx, q, b, scanAttendance, attendance.ErrAttendanceNotFound)
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, companyID, employeeID string, rng dateutil.Range) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	b := psql.Select(attendanceColumns...).
		From("attendances").
		Where(sq.Eq{"company_id": companyID, "employee_id": employeeID}).
		Where(within("date", rng)).
		OrderBy("date")

	rows, err := queryRows(ctx, q, b, scanAttendance)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return rows, nil
}

// ListByCompany implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByCompany(ctx context.Context, companyID string, rng dateutil.Range) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	b := psql.Select(attendanceColumns...).
		From("attendances").
		Where(sq.Eq{"company_id": companyID}).
		Where(within("date", rng)).
		OrderBy("employee_id", "date")

	rows, err := queryRows(ctx, q, b, scanAttendance)
	if err != nil {
		return nil, fmt.Errorf("failed to list company attendance: %w", err)
	}
	return rows, nil
}

var overtimeColumns = []string{
	"id", "company_id", "employee_id", "date", "hours", "status", "source",
	"reason", "reviewed_by", "reviewed_at", "created_at", "updated_at",
}

type overtimeRepository struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) attendance.OvertimeRepository {
	return &overtimeRepository{db: db}
}

func scanOvertime(row pgx.Row) (attendance.OvertimeRequest, error) {
	var o attendance.OvertimeRequest
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.EmployeeID, scanDate(&o.Date), &o.Hours, &o.Status, &o.Source,
		&o.Reason, &o.ReviewedBy, &o.ReviewedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

// GetByID implements attendance.OvertimeRepository.
func (r *overtimeRepository) GetByID(ctx context.Context, companyID, id string) (attendance.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	b := psql.Select(overtimeColumns...).
		From("overtime_requests").
		Where(sq.Eq{"id": id, "company_id": companyID})

	return queryOne(ctx, q, b, scanOvertime, attendance.ErrOvertimeRequestNotFound)
}

// ListByEmployee implements attendance.OvertimeRepository.
func (r *overtimeRepository) ListByEmployee(ctx context.Context, companyID, employeeID string, rng dateutil.Range) ([]attendance.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	b := psql.Select(overtimeColumns...).
		From("overtime_requests").
		Where(sq.Eq{"company_id": companyID, "employee_id": employeeID}).
		Where(within("date", rng)).
		OrderBy("date")

	reqs, err := queryRows(ctx, q, b, scanOvertime)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime requests: %w", err)
	}
	return reqs, nil
}

// ListByCompany implements attendance.OvertimeRepository.
func (r *overtimeRepository) ListByCompany(ctx context.Context, companyID string, rng dateutil.Range) ([]attendance.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	b := psql.Select(overtimeColumns...).
		From("overtime_requests").
		Where(sq.Eq{"company_id": companyID}).
		Where(within("date", rng)).
		OrderBy("employee_id", "date")

	reqs, err := queryRows(ctx, q, b, scanOvertime)
	if err != nil {
		return nil, fmt.Errorf("failed to list company overtime requests: %w", err)
	}
	return reqs, nil
}

// InsertMissing implements attendance.OvertimeRepository. The unique
// (employee_id, date) key makes concurrent backfills of the same employee
// converge: losers insert nothing.
func (r *overtimeRepository) InsertMissing(ctx context.Context, reqs []attendance.OvertimeRequest) ([]attendance.OvertimeRequest, error) {
	if len(reqs) == 0 {
		return []attendance.OvertimeRequest{}, nil
	}
	q := GetQuerier(ctx, r.db)

	b := psql.Insert("overtime_requests").
		Columns("company_id", "employee_id", "date", "hours", "status", "source", "reason")
	for _, o := range reqs {
		b = b.Values(o.CompanyID, o.EmployeeID, o.Date.Time(), o.Hours, string(o.Status), string(o.Source), o.Reason)
	}
	b = b.Suffix("ON CONFLICT (employee_id, date) DO NOTHING RETURNING " + joinColumns(overtimeColumns))

	created, err := queryRows(ctx, q, b, scanOvertime)
	if err != nil {
		return nil, fmt.Errorf("failed to insert overtime requests: %w", err)
	}
	return created, nil
}

// UpdateStatus implements attendance.OvertimeRepository.
func (r *overtimeRepository) UpdateStatus(ctx context.Context, req *attendance.OvertimeRequest) error {
	q := GetQuerier(ctx, r.db)

	patch := map[string]interface{}{
		"hours":       req.Hours,
		"status":      string(req.Status),
		"source":      string(req.Source),
		"reason":      req.Reason,
		"reviewed_by": req.ReviewedBy,
		"reviewed_at": req.ReviewedAt,
	}
	if err := updateByID(ctx, q, "overtime_requests", req.CompanyID, req.ID, patch, attendance.ErrOvertimeRequestNotFound); err != nil {
		return fmt.Errorf("failed to update overtime request: %w", err)
	}
	return nil
}
