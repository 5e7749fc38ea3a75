package calendar

import (
	"context"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
)

type CalendarRepository interface {
	// ListDays returns the rows of one calendar inside rng ordered by date.
	ListDays(ctx context.Context, companyID string, scope Scope, rng dateutil.Range) ([]Day, error)
	// UpsertDays is idempotent on (company, scope, institution, date).
	UpsertDays(ctx context.Context, companyID string, days []Day) ([]Day, error)
	// AddWeeklyOffs writes weekend rows without overwriting holidays.
	AddWeeklyOffs(ctx context.Context, companyID string, days []Day) ([]Day, error)
	Delete(ctx context.Context, companyID string, id string) error
}

// ResolutionCache stores resolved calendars. A miss returns ok == false.
type ResolutionCache interface {
	Get(ctx context.Context, companyID string, scope Scope, rng dateutil.Range) (res Resolution, ok bool, err error)
	Set(ctx context.Context, companyID string, scope Scope, rng dateutil.Range, res Resolution) error
	Invalidate(ctx context.Context, companyID string) error
}
