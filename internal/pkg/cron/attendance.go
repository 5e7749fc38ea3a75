package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/attendance"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/employee"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
)

const JobOvertimeBackfill = "overtime_request_backfill"

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	employeeRepo      employee.EmployeeRepository
	lookbackDays      int
	location          *time.Location
	now               func() time.Time
}

func NewAttendanceJobs(
	attendanceService attendance.AttendanceService,
	employeeRepo employee.EmployeeRepository,
	lookbackDays int,
	location *time.Location,
) *AttendanceJobs {
	if lookbackDays <= 0 {
		lookbackDays = 7
	}
	if location == nil {
		location = time.UTC
	}
	return &AttendanceJobs{
		attendanceService: attendanceService,
		employeeRepo:      employeeRepo,
		lookbackDays:      lookbackDays,
		location:          location,
		now:               time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, hour int) error {
	return scheduler.AddDailyJob(JobOvertimeBackfill, hour, j.BackfillOvertimeRequests)
}

// window covers the lookbackDays days that ended yesterday.
func (j *AttendanceJobs) window() dateutil.Range {
	yesterday := dateutil.FromTime(j.now().In(j.location)).AddDays(-1)
	return dateutil.Range{Start: yesterday.AddDays(-(j.lookbackDays - 1)), End: yesterday}
}

// BackfillOvertimeRequests creates the missing overtime requests of every
// company. One failing company does not stop the others.
func (j *AttendanceJobs) BackfillOvertimeRequests(ctx context.Context) error {
	rng := j.window()
	slog.Info("Cron: Starting overtime backfill", "start", rng.Start, "end", rng.End)

	companyIDs, err := j.employeeRepo.ListCompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	created, failed := 0, 0
	for _, companyID := range companyIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := j.attendanceService.BackfillCompany(ctx, companyID, rng)
		if err != nil {
			failed++
			slog.Error("Cron: Overtime backfill failed", "company_id", companyID, "error", err)
			continue
		}
		created += len(res.Created)
	}

	slog.Info("Cron: Overtime backfill finished", "companies", len(companyIDs), "created", created, "failed", failed)
	if failed > 0 {
		return fmt.Errorf("overtime backfill failed for %d of %d companies", failed, len(companyIDs))
	}
	return nil
}
