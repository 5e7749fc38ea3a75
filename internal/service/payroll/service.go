package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/attendance"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/employee"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/notification"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/payroll"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/storage"
)

// documentURLExpiry bounds the presigned links handed out for archived
// payslips.
const documentURLExpiry = 15 * time.Minute

type PayrollServiceImpl struct {
	payrollRepo       payroll.PayrollRepository
	employeeRepo      employee.EmployeeRepository
	attendanceService attendance.AttendanceService
	fileStorage       storage.FileStorage
	notifier          notification.Service
	rules             payroll.Rules
	now               func() time.Time
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceService attendance.AttendanceService,
	fileStorage storage.FileStorage,
	notifier notification.Service,
	rules payroll.Rules,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:       payrollRepo,
		employeeRepo:      employeeRepo,
		attendanceService: attendanceService,
		fileStorage:       fileStorage,
		notifier:          notifier,
		rules:             rules,
		now:               time.Now,
	}
}

// ========== PAYOUT ==========

// GetPayout implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayout(ctx context.Context, companyID, employeeID string, year int, month time.Month) (payroll.PayoutResponse, error) {
	structure, err := s.salaryStructure(ctx, companyID, employeeID)
	if err != nil {
		return payroll.PayoutResponse{}, err
	}

	monthly, err := s.attendanceService.GetMonth(ctx, companyID, employeeID, year, month)
	if err != nil {
		return payroll.PayoutResponse{}, err
	}

	payout := payroll.ComputePayout(payroll.PayoutInput{
		Stats:     monthly.Stats,
		Structure: structure,
		Rules:     s.rules,
		Year:      year,
		Month:     month,
	})

	return payroll.PayoutResponse{
		EmployeeID: employeeID,
		Stats:      monthly.Stats,
		Payout:     payout,
		Warnings:   monthly.Warnings,
	}, nil
}

// ========== SALARY STRUCTURE ==========

// GetSalaryStructure implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetSalaryStructure(ctx context.Context, companyID, employeeID string) (payroll.SalaryStructureResponse, error) {
	structure, err := s.salaryStructure(ctx, companyID, employeeID)
	if err != nil {
		return payroll.SalaryStructureResponse{}, err
	}
	return payroll.ToSalaryStructureResponse(structure), nil
}

// UpsertSalaryStructure implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpsertSalaryStructure(ctx context.Context, companyID, employeeID string, req payroll.UpsertSalaryStructureRequest) (payroll.SalaryStructureResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryStructureResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, companyID, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.SalaryStructureResponse{}, err
		}
		return payroll.SalaryStructureResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	structure := req.ToEntity(companyID, employeeID)
	if err := s.payrollRepo.UpsertSalaryStructure(ctx, &structure); err != nil {
		return payroll.SalaryStructureResponse{}, fmt.Errorf("failed to save salary structure: %w", err)
	}
	return payroll.ToSalaryStructureResponse(structure), nil
}

func (s *PayrollServiceImpl) salaryStructure(ctx context.Context, companyID, employeeID string) (payroll.SalaryStructure, error) {
	structure, err := s.payrollRepo.GetSalaryStructure(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, payroll.ErrSalaryStructureNotFound) {
			return payroll.SalaryStructure{}, err
		}
		return payroll.SalaryStructure{}, fmt.Errorf("failed to get salary structure: %w", err)
	}
	return structure, nil
}

// ========== PAYSLIPS ==========

// GeneratePayslip implements payroll.PayrollService. Regenerating a month
// replaces its draft; a finalized payslip is never touched.
func (s *PayrollServiceImpl) GeneratePayslip(ctx context.Context, companyID string, req payroll.GeneratePayslipRequest) (payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	month := time.Month(req.Month)
	now := s.now()
	if req.Year > now.Year() || (req.Year == now.Year() && month > now.Month()) {
		return payroll.PayslipResponse{}, payroll.ErrFuturePeriod
	}

	structure, err := s.salaryStructure(ctx, companyID, req.EmployeeID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	monthly, err := s.attendanceService.GetMonth(ctx, companyID, req.EmployeeID, req.Year, month)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	if monthly.Partial() {
		return payroll.PayslipResponse{}, fmt.Errorf("%w: %d-%02d", payroll.ErrAttendanceIncomplete, req.Year, req.Month)
	}

	slip := payroll.Payslip{
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		Year:       req.Year,
		Month:      req.Month,
		Stats:      monthly.Stats,
		Status:     payroll.PayslipStatusDraft,
	}
	slip.Payout = payroll.ComputePayout(payroll.PayoutInput{
		Stats:             monthly.Stats,
		Structure:         structure,
		Rules:             s.rules,
		Year:              req.Year,
		Month:             month,
		ManualOvertimePay: req.ManualOvertimePay,
	})

	if err := s.payrollRepo.UpsertDraftPayslip(ctx, &slip); err != nil {
		if errors.Is(err, payroll.ErrPayslipAlreadyFinalized) {
			return payroll.PayslipResponse{}, err
		}
		return payroll.PayslipResponse{}, fmt.Errorf("failed to save payslip: %w", err)
	}

	return payroll.ToPayslipResponse(slip), nil
}

// FinalizePayslip implements payroll.PayrollService. The payslip document is
// archived before the status flips so a finalized row always has one.
func (s *PayrollServiceImpl) FinalizePayslip(ctx context.Context, companyID, finalizedBy, id string) (payroll.PayslipResponse, error) {
	slip, err := s.payslip(ctx, companyID, id)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	if slip.Status == payroll.PayslipStatusFinalized {
		return payroll.PayslipResponse{}, payroll.ErrPayslipAlreadyFinalized
	}

	finalizedAt := s.now()
	slip.FinalizedAt = &finalizedAt
	slip.FinalizedBy = &finalizedBy
	slip.Status = payroll.PayslipStatusFinalized

	key := storage.Key("payslips", companyID, strconv.Itoa(slip.Year), slip.ID+".json")
	key, err = storage.PutJSON(ctx, s.fileStorage, key, payroll.ToPayslipResponse(slip))
	if err != nil {
		return payroll.PayslipResponse{}, fmt.Errorf("failed to archive payslip: %w", err)
	}
	slip.DocumentKey = &key

	if err := s.payrollRepo.FinalizePayslip(ctx, &slip); err != nil {
		if errors.Is(err, payroll.ErrPayslipAlreadyFinalized) {
			return payroll.PayslipResponse{}, err
		}
		return payroll.PayslipResponse{}, fmt.Errorf("failed to finalize payslip: %w", err)
	}

	s.notifyFinalized(ctx, slip, finalizedBy)

	return s.toResponse(ctx, slip), nil
}

// GetPayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, companyID, id string) (payroll.PayslipResponse, error) {
	slip, err := s.payslip(ctx, companyID, id)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return s.toResponse(ctx, slip), nil
}

// ListPayslips implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayslips(ctx context.Context, companyID string, req payroll.ListPayslipsRequest) ([]payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	slips, err := s.payrollRepo.ListPayslips(ctx, companyID, req.ToFilter())
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}

	resp := make([]payroll.PayslipResponse, 0, len(slips))
	for _, p := range slips {
		resp = append(resp, payroll.ToPayslipResponse(p))
	}
	return resp, nil
}

func (s *PayrollServiceImpl) payslip(ctx context.Context, companyID, id string) (payroll.Payslip, error) {
	slip, err := s.payrollRepo.GetPayslipByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, payroll.ErrPayslipNotFound) {
			return payroll.Payslip{}, err
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	return slip, nil
}

// toResponse attaches a download link for archived payslips. A storage
// failure only drops the link.
func (s *PayrollServiceImpl) toResponse(ctx context.Context, slip payroll.Payslip) payroll.PayslipResponse {
	resp := payroll.ToPayslipResponse(slip)
	if slip.DocumentKey == nil || s.fileStorage == nil {
		return resp
	}
	url, err := s.fileStorage.GetURL(ctx, *slip.DocumentKey, documentURLExpiry)
	if err != nil {
		slog.Warn("failed to sign payslip document url", "payslip_id", slip.ID, "error", err)
		return resp
	}
	resp.DocumentURL = &url
	return resp
}

func (s *PayrollServiceImpl) notifyFinalized(ctx context.Context, slip payroll.Payslip, senderID string) {
	if s.notifier == nil {
		return
	}
	emp, err := s.employeeRepo.GetByID(ctx, slip.CompanyID, slip.EmployeeID)
	if err != nil {
		slog.Warn("payslip notification skipped", "payslip_id", slip.ID, "error", err)
		return
	}
	if emp.RecipientID() == "" {
		return
	}

	period := time.Month(slip.Month).String() + " " + strconv.Itoa(slip.Year)
	req := notification.CreateNotificationRequest{
		CompanyID:   slip.CompanyID,
		RecipientID: emp.RecipientID(),
		SenderID:    &senderID,
		Type:        notification.TypePayslipFinalized,
		Title:       "Payslip available",
		Message:     "Your payslip for " + period + " is ready. Net pay: " + slip.Payout.NetPay.StringFixed(2),
		Data:        map[string]interface{}{"payslip_id": slip.ID, "year": slip.Year, "month": slip.Month},
	}
	if err := s.notifier.QueueNotification(ctx, req); err != nil {
		slog.Warn("failed to queue notification", "type", string(req.Type), "error", err)
	}
}
