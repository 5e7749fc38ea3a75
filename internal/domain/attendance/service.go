package attendance

import (
	"context"
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
)

type AttendanceService interface {
	// GetMonth gathers attendance, calendar, leave and overtime rows in
	// parallel, then classifies and aggregates the month. Fetch failures are
	// reported as warnings next to whatever data could be loaded.
	GetMonth(ctx context.Context, companyID, employeeID string, year int, month time.Month) (MonthlyAttendance, error)

	// BackfillOvertimeRequests creates missing pending requests for rows with
	// overtime. Running it twice creates nothing the second time.
	BackfillOvertimeRequests(ctx context.Context, companyID, employeeID string, rng dateutil.Range) (BackfillResult, error)
	BackfillCompany(ctx context.Context, companyID string, rng dateutil.Range) (BackfillResult, error)

	CheckIn(ctx context.Context, companyID, employeeID string) (AttendanceResponse, error)
	CheckOut(ctx context.Context, companyID, employeeID string) (AttendanceResponse, error)
	Correct(ctx context.Context, companyID, correctorID, id string, req CorrectionRequest) (AttendanceResponse, error)
	ReviewOvertime(ctx context.Context, companyID, reviewerID, id string, req ReviewOvertimeRequest) (OvertimeResponse, error)
}
