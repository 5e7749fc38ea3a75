package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/attendance"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/calendar"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/employee"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/leave"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/notification"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/database"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type AttendanceServiceImpl struct {
	tx              database.Transactor
	attendanceRepo  attendance.AttendanceRepository
	overtimeRepo    attendance.OvertimeRepository
	employeeRepo    employee.EmployeeRepository
	leaveRepo       leave.LeaveRepository
	calendarService calendar.CalendarService
	notifier        notification.Service
	policy          attendance.ShiftPolicy
	now             func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	overtimeRepo attendance.OvertimeRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRepository,
	calendarService calendar.CalendarService,
	notifier notification.Service,
	policy attendance.ShiftPolicy,
) attendance.AttendanceService {
	if policy.Location == nil {
		policy.Location = time.UTC
	}
	if !policy.StandardDayHours.IsPositive() {
		policy.StandardDayHours = decimal.NewFromInt(8)
	}
	return &AttendanceServiceImpl{
		tx:              tx,
		attendanceRepo:  attendanceRepo,
		overtimeRepo:    overtimeRepo,
		employeeRepo:    employeeRepo,
		leaveRepo:       leaveRepo,
		calendarService: calendarService,
		notifier:        notifier,
		policy:          policy,
		now:             time.Now,
	}
}

// monthData is what the gather phase managed to load.
type monthData struct {
	attendance []attendance.Attendance
	overtime   []attendance.OvertimeRequest
	leaves     []leave.Application
	calendar   calendar.Resolution
	warnings   []attendance.Warning
}

// GetMonth implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMonth(ctx context.Context, companyID, employeeID string, year int, month time.Month) (attendance.MonthlyAttendance, error) {
	q := attendance.MonthQuery{Year: year, Month: int(month)}
	if err := q.Validate(); err != nil {
		return attendance.MonthlyAttendance{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.MonthlyAttendance{}, err
		}
		return attendance.MonthlyAttendance{}, fmt.Errorf("failed to get employee: %w", err)
	}

	rng := q.Range()
	data := s.gather(ctx, companyID, employeeID, emp.CalendarScope(), rng)

	entries, overlaps := leave.Reconcile(data.leaves)
	if len(overlaps) > 0 {
		err := &leave.OverlapError{Overlaps: overlaps}
		slog.Warn("approved leave applications overlap", "company_id", companyID, "employee_id", employeeID, "error", err)
		data.warnings = append(data.warnings, attendance.Warning{
			Code:    attendance.WarningLeaveOverlap,
			Source:  "leave",
			Message: err.Error(),
		})
	}

	days := attendance.ClassifyRange(attendance.RangeInput{
		Range:      rng,
		Today:      s.today(),
		Calendar:   data.calendar,
		Leaves:     entries,
		Attendance: data.attendance,
		Overtime:   data.overtime,
	})

	return attendance.MonthlyAttendance{
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
		Days:       days,
		Stats:      attendance.Aggregate(days, rng.Len()),
		Warnings:   data.warnings,
	}, nil
}

// gather loads the four record sets of rng in parallel. A failed fetch
// leaves its set empty and adds a warning; it never fails the whole read.
func (s *AttendanceServiceImpl) gather(ctx context.Context, companyID, employeeID string, scope calendar.Scope, rng dateutil.Range) monthData {
	data := monthData{calendar: calendar.EmptyResolution()}
	var attErr, otErr, leaveErr, calErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data.attendance, attErr = s.attendanceRepo.ListByEmployee(gctx, companyID, employeeID, rng)
		return nil
	})
	g.Go(func() error {
		data.overtime, otErr = s.overtimeRepo.ListByEmployee(gctx, companyID, employeeID, rng)
		return nil
	})
	g.Go(func() error {
		data.leaves, leaveErr = s.leaveRepo.ListApproved(gctx, companyID, employeeID, rng)
		return nil
	})
	g.Go(func() error {
		res, err := s.calendarService.Resolve(gctx, companyID, scope, rng)
		if res.Weekends != nil && res.Holidays != nil {
			data.calendar = res
		}
		calErr = err
		return nil
	})
	_ = g.Wait()

	storageWarning := func(source string, err error) {
		if err == nil {
			return
		}
		slog.Warn("failed to load attendance input", "source", source, "company_id", companyID, "employee_id", employeeID, "error", err)
		data.warnings = append(data.warnings, attendance.Warning{
			Code:    attendance.WarningStorageError,
			Source:  source,
			Message: source + " data could not be loaded",
		})
	}

	storageWarning("attendance", attErr)
	storageWarning("overtime", otErr)
	storageWarning("leave", leaveErr)
	if errors.Is(calErr, calendar.ErrMissingScope) {
		slog.Warn("employee has no calendar scope", "company_id", companyID, "employee_id", employeeID)
		data.warnings = append(data.warnings, attendance.Warning{
			Code:    attendance.WarningMissingScope,
			Source:  "calendar",
			Message: calErr.Error(),
		})
	} else {
		storageWarning("calendar", calErr)
	}

	return data
}

// BackfillOvertimeRequests implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) BackfillOvertimeRequests(ctx context.Context, companyID, employeeID string, rng dateutil.Range) (attendance.BackfillResult, error) {
	if err := rng.Validate(); err != nil {
		return attendance.BackfillResult{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.BackfillResult{}, err
		}
		return attendance.BackfillResult{}, fmt.Errorf("failed to get employee: %w", err)
	}

	records, err := s.attendanceRepo.ListByEmployee(ctx, companyID, employeeID, rng)
	if err != nil {
		return attendance.BackfillResult{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	existing, err := s.overtimeRepo.ListByEmployee(ctx, companyID, employeeID, rng)
	if err != nil {
		return attendance.BackfillResult{}, fmt.Errorf("failed to list overtime requests: %w", err)
	}

	return s.backfill(ctx, records, existing, map[string]employee.Employee{employeeID: emp})
}

// BackfillCompany implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) BackfillCompany(ctx context.Context, companyID string, rng dateutil.Range) (attendance.BackfillResult, error) {
	if err := rng.Validate(); err != nil {
		return attendance.BackfillResult{}, err
	}

	records, err := s.attendanceRepo.ListByCompany(ctx, companyID, rng)
	if err != nil {
		return attendance.BackfillResult{}, fmt.Errorf("failed to list company attendance: %w", err)
	}
	existing, err := s.overtimeRepo.ListByCompany(ctx, companyID, rng)
	if err != nil {
		return attendance.BackfillResult{}, fmt.Errorf("failed to list company overtime requests: %w", err)
	}

	employees := make(map[string]employee.Employee)
	emps, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		slog.Warn("backfill notifications skipped", "company_id", companyID, "error", err)
	}
	for _, e := range emps {
		employees[e.ID] = e
	}

	return s.backfill(ctx, records, existing, employees)
}

func (s *AttendanceServiceImpl) backfill(ctx context.Context, records []attendance.Attendance, existing []attendance.OvertimeRequest, employees map[string]employee.Employee) (attendance.BackfillResult, error) {
	result := attendance.BackfillResult{Scanned: len(records), Created: []attendance.OvertimeResponse{}}

	missing := attendance.FindMissingOvertimeRequests(records, existing)
	if len(missing) == 0 {
		return result, nil
	}

	created, err := s.overtimeRepo.InsertMissing(ctx, missing)
	if err != nil {
		return attendance.BackfillResult{}, fmt.Errorf("failed to create overtime requests: %w", err)
	}

	for _, o := range created {
		result.Created = append(result.Created, attendance.ToOvertimeResponse(o))
		s.notifyOvertimeRequested(ctx, employees[o.EmployeeID], o)
	}
	return result, nil
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, companyID, employeeID string) (attendance.AttendanceResponse, error) {
	if _, err := s.activeEmployee(ctx, companyID, employeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := s.today()
	lateMinutes := attendance.LateMinutes(now, s.policy)

	row, err := s.attendanceRepo.GetByEmployeeDate(ctx, companyID, employeeID, today)
	switch {
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		row = attendance.Attendance{
			CompanyID:  companyID,
			EmployeeID: employeeID,
			Date:       today,
		}
		applyCheckIn(&row, now, lateMinutes)
		if err := s.attendanceRepo.Create(ctx, &row); err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
		}
	case err != nil:
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	case row.CheckIn != nil:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	default:
		// A placeholder row (absent/pending) is turned into a check-in.
		applyCheckIn(&row, now, lateMinutes)
		if err := s.attendanceRepo.Update(ctx, &row); err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
		}
	}

	return attendance.ToAttendanceResponse(row), nil
}

func applyCheckIn(row *attendance.Attendance, at time.Time, lateMinutes int) {
	row.CheckIn = &at
	row.Status = attendance.RawStatusCheckedIn
	row.LateMinutes = lateMinutes
	row.IsLate = lateMinutes > 0
}

// CheckOut implements attendance.AttendanceService. Overtime above the
// standard day immediately gets a pending request.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, companyID, employeeID string) (attendance.AttendanceResponse, error) {
	emp, err := s.activeEmployee(ctx, companyID, employeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	row, err := s.attendanceRepo.GetByEmployeeDate(ctx, companyID, employeeID, s.today())
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if row.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if row.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	now := s.now()
	if !now.After(*row.CheckIn) {
		return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}
	s.applyCheckOut(&row, now)

	created, err := s.saveWithOvertime(ctx, &row)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	for _, o := range created {
		s.notifyOvertimeRequested(ctx, emp, o)
	}

	return attendance.ToAttendanceResponse(row), nil
}

func (s *AttendanceServiceImpl) applyCheckOut(row *attendance.Attendance, at time.Time) {
	total, overtime := attendance.WorkedHours(*row.CheckIn, at, s.policy.StandardDayHours)
	row.CheckOut = &at
	row.TotalHours = &total
	row.OvertimeHours = &overtime
	row.Status = attendance.RawStatusCheckedOut
}

// saveWithOvertime updates row and creates its missing overtime request in
// one transaction.
func (s *AttendanceServiceImpl) saveWithOvertime(ctx context.Context, row *attendance.Attendance) ([]attendance.OvertimeRequest, error) {
	var created []attendance.OvertimeRequest
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.attendanceRepo.Update(txCtx, row); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}

		missing := attendance.FindMissingOvertimeRequests([]attendance.Attendance{*row}, nil)
		if len(missing) == 0 {
			return nil
		}
		var err error
		created, err = s.overtimeRepo.InsertMissing(txCtx, missing)
		if err != nil {
			return fmt.Errorf("failed to create overtime request: %w", err)
		}
		return nil
	})
	return created, err
}

// Correct implements attendance.AttendanceService. The same row is
// overwritten and flagged as corrected.
func (s *AttendanceServiceImpl) Correct(ctx context.Context, companyID, correctorID, id string, req attendance.CorrectionRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	row, err := s.attendanceRepo.GetByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	checkIn, checkOut := req.Times()
	applyCheckIn(&row, checkIn, attendance.LateMinutes(checkIn, s.policy))
	row.CheckOut = nil
	row.TotalHours = nil
	row.OvertimeHours = nil
	if checkOut != nil {
		s.applyCheckOut(&row, *checkOut)
	}
	reason := req.Reason
	row.IsCorrected = true
	row.CorrectedBy = &correctorID
	row.CorrectionReason = &reason

	created, err := s.saveWithOvertime(ctx, &row)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if len(created) > 0 {
		emp, err := s.employeeRepo.GetByID(ctx, companyID, row.EmployeeID)
		if err != nil {
			slog.Warn("overtime notification skipped", "employee_id", row.EmployeeID, "error", err)
		}
		for _, o := range created {
			s.notifyOvertimeRequested(ctx, emp, o)
		}
	}

	return attendance.ToAttendanceResponse(row), nil
}

// ReviewOvertime implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ReviewOvertime(ctx context.Context, companyID, reviewerID, id string, req attendance.ReviewOvertimeRequest) (attendance.OvertimeResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.OvertimeResponse{}, err
	}

	o, err := s.overtimeRepo.GetByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, attendance.ErrOvertimeRequestNotFound) {
			return attendance.OvertimeResponse{}, err
		}
		return attendance.OvertimeResponse{}, fmt.Errorf("failed to get overtime request: %w", err)
	}
	if o.Status != attendance.OvertimePending {
		return attendance.OvertimeResponse{}, attendance.ErrOvertimeAlreadyReviewed
	}

	reviewedAt := s.now()
	o.Status = attendance.OvertimeStatus(req.Status)
	o.ReviewedBy = &reviewerID
	o.ReviewedAt = &reviewedAt
	if req.Reason != nil {
		o.Reason = req.Reason
	}
	if h := req.ApprovedHours(); h != nil && o.Status == attendance.OvertimeApproved {
		o.Hours = *h
	}

	if err := s.overtimeRepo.UpdateStatus(ctx, &o); err != nil {
		return attendance.OvertimeResponse{}, fmt.Errorf("failed to update overtime request: %w", err)
	}

	emp, err := s.employeeRepo.GetByID(ctx, companyID, o.EmployeeID)
	if err != nil {
		slog.Warn("overtime review notification skipped", "employee_id", o.EmployeeID, "error", err)
	} else {
		s.notify(ctx, notification.CreateNotificationRequest{
			CompanyID:   companyID,
			RecipientID: emp.RecipientID(),
			SenderID:    &reviewerID,
			Type:        notification.TypeOvertimeReviewed,
			Title:       "Overtime " + string(o.Status),
			Message:     fmt.Sprintf("Your overtime of %s hours on %s was %s", o.Hours.StringFixed(2), o.Date, o.Status),
			Data:        map[string]interface{}{"overtime_request_id": o.ID, "status": string(o.Status)},
		})
	}

	return attendance.ToOvertimeResponse(o), nil
}

func (s *AttendanceServiceImpl) today() dateutil.Date {
	return dateutil.FromTime(s.now().In(s.policy.Location))
}

func (s *AttendanceServiceImpl) activeEmployee(ctx context.Context, companyID, employeeID string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.EmploymentStatus != employee.EmploymentStatusActive {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}
	return emp, nil
}

func (s *AttendanceServiceImpl) notifyOvertimeRequested(ctx context.Context, emp employee.Employee, o attendance.OvertimeRequest) {
	s.notify(ctx, notification.CreateNotificationRequest{
		CompanyID:   o.CompanyID,
		RecipientID: emp.RecipientID(),
		Type:        notification.TypeOvertimeRequested,
		Title:       "Overtime pending review",
		Message:     fmt.Sprintf("%s hours of overtime on %s are awaiting review", o.Hours.StringFixed(2), o.Date),
		Data:        map[string]interface{}{"overtime_request_id": o.ID, "date": o.Date.String()},
	})
}

// notify queues req when a notifier is wired and the recipient has a user
// account.
func (s *AttendanceServiceImpl) notify(ctx context.Context, req notification.CreateNotificationRequest) {
	if s.notifier == nil || req.RecipientID == "" {
		return
	}
	if err := s.notifier.QueueNotification(ctx, req); err != nil {
		slog.Warn("failed to queue notification", "type", string(req.Type), "error", err)
	}
}
