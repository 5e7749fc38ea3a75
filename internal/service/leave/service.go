package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/employee"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/leave"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/notification"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/database"
)

type LeaveServiceImpl struct {
	tx           database.Transactor
	leaveRepo    leave.LeaveRepository
	quotaRepo    leave.LeaveQuotaRepository
	employeeRepo employee.EmployeeRepository
	notifier     notification.Service
	now          func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	leaveRepo leave.LeaveRepository,
	quotaRepo leave.LeaveQuotaRepository,
	employeeRepo employee.EmployeeRepository,
	notifier notification.Service,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:           tx,
		leaveRepo:    leaveRepo,
		quotaRepo:    quotaRepo,
		employeeRepo: employeeRepo,
		notifier:     notifier,
		now:          time.Now,
	}
}

// CreateApproved implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateApproved(ctx context.Context, companyID, approverID string, req leave.CreateLeaveRequest) (leave.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ApplicationResponse{}, err
	}

	emp, err := s.activeEmployee(ctx, companyID, req.EmployeeID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	var app leave.Application
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		app, err = s.record(txCtx, companyID, approverID, req)
		return err
	})
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	s.notifyRecorded(ctx, emp, app)
	return leave.ToApplicationResponse(app), nil
}

// Correct implements leave.LeaveService.
func (s *LeaveServiceImpl) Correct(ctx context.Context, companyID, approverID, id string, req leave.CreateLeaveRequest) (leave.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ApplicationResponse{}, err
	}

	emp, err := s.activeEmployee(ctx, companyID, req.EmployeeID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	var app leave.Application
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.remove(txCtx, companyID, id); err != nil {
			return err
		}
		app, err = s.record(txCtx, companyID, approverID, req)
		return err
	})
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	s.notifyRecorded(ctx, emp, app)
	return leave.ToApplicationResponse(app), nil
}

// Delete implements leave.LeaveService. The application row is removed and
// its paid days are returned to the quota.
func (s *LeaveServiceImpl) Delete(ctx context.Context, companyID, id string) error {
	return s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.remove(txCtx, companyID, id)
	})
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, companyID, id string) (leave.ApplicationResponse, error) {
	app, err := s.leaveRepo.GetByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveNotFound) {
			return leave.ApplicationResponse{}, err
		}
		return leave.ApplicationResponse{}, fmt.Errorf("failed to get leave application: %w", err)
	}
	return leave.ToApplicationResponse(app), nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, companyID string, req leave.ListLeaveRequest) ([]leave.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	apps, err := s.leaveRepo.List(ctx, companyID, req.ToFilter())
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications: %w", err)
	}

	out := make([]leave.ApplicationResponse, len(apps))
	for i, a := range apps {
		out[i] = leave.ToApplicationResponse(a)
	}
	return out, nil
}

// GetQuotas implements leave.LeaveService.
func (s *LeaveServiceImpl) GetQuotas(ctx context.Context, companyID, employeeID string, year int) ([]leave.LeaveQuotaResponse, error) {
	if year == 0 {
		year = s.now().Year()
	}
	quotas, err := s.quotaRepo.ListByEmployee(ctx, companyID, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave quotas: %w", err)
	}

	out := make([]leave.LeaveQuotaResponse, len(quotas))
	for i, q := range quotas {
		out[i] = leave.ToLeaveQuotaResponse(q)
	}
	return out, nil
}

// UpsertQuota implements leave.LeaveService. Lowering the allotment below
// what has already been consumed is rejected.
func (s *LeaveServiceImpl) UpsertQuota(ctx context.Context, companyID string, req leave.UpsertQuotaRequest) (leave.LeaveQuotaResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveQuotaResponse{}, err
	}
	if _, err := s.activeEmployee(ctx, companyID, req.EmployeeID); err != nil {
		return leave.LeaveQuotaResponse{}, err
	}

	quota := leave.LeaveQuota{
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		Year:       req.Year,
		TotalQuota: req.TotalQuota,
	}
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.quotaRepo.Get(txCtx, companyID, req.EmployeeID, req.LeaveType, req.Year)
		switch {
		case errors.Is(err, leave.ErrLeaveQuotaNotFound):
		case err != nil:
			return fmt.Errorf("failed to get leave quota: %w", err)
		case req.TotalQuota < existing.UsedQuota:
			return leave.ErrQuotaBelowUsage
		default:
			quota.UsedQuota = existing.UsedQuota
		}

		if err := s.quotaRepo.Upsert(txCtx, &quota); err != nil {
			return fmt.Errorf("failed to save leave quota: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveQuotaResponse{}, err
	}

	return leave.ToLeaveQuotaResponse(quota), nil
}

// record splits the requested span against the remaining quota, stores the
// application and consumes its paid days. It must run inside a transaction.
func (s *LeaveServiceImpl) record(ctx context.Context, companyID, approverID string, req leave.CreateLeaveRequest) (leave.Application, error) {
	span := req.Span()

	existing, err := s.leaveRepo.ListApproved(ctx, companyID, req.EmployeeID, span)
	if err != nil {
		return leave.Application{}, fmt.Errorf("failed to check overlapping leave: %w", err)
	}
	if len(existing) > 0 {
		return leave.Application{}, leave.ErrOverlappingLeave
	}

	// The quota year is the year the leave starts in.
	year := span.Start.Year
	total := span.Len()
	paid, lop := 0, total
	if req.LeaveType != leave.LeaveTypeLOP {
		quota, err := s.quotaRepo.Get(ctx, companyID, req.EmployeeID, req.LeaveType, year)
		switch {
		case errors.Is(err, leave.ErrLeaveQuotaNotFound):
		case err != nil:
			return leave.Application{}, fmt.Errorf("failed to get leave quota: %w", err)
		default:
			paid, lop = leave.SplitDays(total, quota.Available())
		}
	}

	approvedAt := s.now()
	app := leave.Application{
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		StartDate:  span.Start,
		EndDate:    span.End,
		TotalDays:  total,
		PaidDays:   paid,
		LopDays:    lop,
		Status:     leave.StatusApproved,
		Reason:     req.Reason,
		ApprovedBy: &approverID,
		ApprovedAt: &approvedAt,
	}
	if err := app.Validate(); err != nil {
		return leave.Application{}, err
	}

	if err := s.leaveRepo.Create(ctx, &app); err != nil {
		return leave.Application{}, fmt.Errorf("failed to create leave application: %w", err)
	}
	if paid > 0 {
		if err := s.quotaRepo.AdjustUsed(ctx, companyID, req.EmployeeID, req.LeaveType, year, paid); err != nil {
			return leave.Application{}, fmt.Errorf("failed to consume leave quota: %w", err)
		}
	}
	return app, nil
}

// remove deletes an application and restores its paid days. It must run
// inside a transaction.
func (s *LeaveServiceImpl) remove(ctx context.Context, companyID, id string) error {
	app, err := s.leaveRepo.GetByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveNotFound) {
			return err
		}
		return fmt.Errorf("failed to get leave application: %w", err)
	}

	if err := s.leaveRepo.Delete(ctx, companyID, id); err != nil {
		if errors.Is(err, leave.ErrLeaveNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete leave application: %w", err)
	}

	if app.PaidDays > 0 && app.LeaveType != leave.LeaveTypeLOP {
		err := s.quotaRepo.AdjustUsed(ctx, companyID, app.EmployeeID, app.LeaveType, app.StartDate.Year, -app.PaidDays)
		if err != nil && !errors.Is(err, leave.ErrLeaveQuotaNotFound) {
			return fmt.Errorf("failed to restore leave quota: %w", err)
		}
	}
	return nil
}

func (s *LeaveServiceImpl) activeEmployee(ctx context.Context, companyID, employeeID string) (employee.Employee, error) {
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

func (s *LeaveServiceImpl) notifyRecorded(ctx context.Context, emp employee.Employee, app leave.Application) {
	if s.notifier == nil || emp.RecipientID() == "" {
		return
	}
	msg := fmt.Sprintf("%s leave from %s to %s: %d paid, %d loss of pay",
		app.LeaveType, app.StartDate, app.EndDate, app.PaidDays, app.LopDays)
	err := s.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		CompanyID:   app.CompanyID,
		RecipientID: emp.RecipientID(),
		SenderID:    app.ApprovedBy,
		Type:        notification.TypeLeaveRecorded,
		Title:       "Leave recorded",
		Message:     msg,
		Data: map[string]interface{}{
			"application_id": app.ID,
			"paid_days":      app.PaidDays,
			"lop_days":       app.LopDays,
		},
	})
	if err != nil {
		slog.Warn("failed to queue leave notification", "application_id", app.ID, "error", err)
	}
}
