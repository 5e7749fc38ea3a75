package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/attendance"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/employee"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/report"
	"golang.org/x/sync/errgroup"
)

// monthFetchLimit bounds concurrent per-employee month reads.
const monthFetchLimit = 4

type ReportServiceImpl struct {
	employeeRepo      employee.EmployeeRepository
	attendanceService attendance.AttendanceService
	now               func() time.Time
}

func NewReportService(employeeRepo employee.EmployeeRepository, attendanceService attendance.AttendanceService) report.ReportService {
	return &ReportServiceImpl{
		employeeRepo:      employeeRepo,
		attendanceService: attendanceService,
		now:               time.Now,
	}
}

// AttendanceRegister implements report.ReportService.
func (s *ReportServiceImpl) AttendanceRegister(ctx context.Context, companyID string, req report.AttendanceRegisterRequest) (report.File, error) {
	if err := req.Validate(); err != nil {
		return report.File{}, err
	}

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return report.File{}, fmt.Errorf("failed to get employees: %w", err)
	}
	if len(employees) == 0 {
		return report.File{}, report.ErrNoDataFound
	}

	rows := make([]report.RegisterRow, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(monthFetchLimit)
	for i, emp := range employees {
		g.Go(func() error {
			m, err := s.attendanceService.GetMonth(gctx, companyID, emp.ID, req.Year, time.Month(req.Month))
			if err != nil {
				return fmt.Errorf("employee %s: %w", emp.EmployeeCode, err)
			}
			rows[i] = report.RegisterRow{
				Employee: emp,
				Days:     m.Days,
				Stats:    m.Stats,
				Partial:  m.Partial(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			return report.File{}, err
		}
		return report.File{}, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
	}

	generatedAt := s.now()
	content, err := renderRegister(req, rows, generatedAt)
	if err != nil {
		return report.File{}, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
	}

	slog.Info("attendance register generated",
		"company_id", companyID, "year", req.Year, "month", req.Month, "employees", len(rows), "bytes", len(content))

	return report.File{
		Name:        req.FileName(),
		ContentType: report.ContentTypeXLSX,
		Content:     content,
		GeneratedAt: generatedAt,
	}, nil
}
