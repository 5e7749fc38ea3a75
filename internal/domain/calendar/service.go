package calendar

import (
	"context"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
)

type CalendarService interface {
	// Resolve returns ErrMissingScope together with an empty, usable
	// resolution when an institution scope has no id.
	Resolve(ctx context.Context, companyID string, scope Scope, rng dateutil.Range) (Resolution, error)

	ListDays(ctx context.Context, companyID string, req ListDaysRequest) ([]DayResponse, error)
	UpsertDays(ctx context.Context, companyID string, req UpsertDaysRequest) ([]DayResponse, error)
	GenerateWeeklyOffs(ctx context.Context, companyID string, req WeeklyOffsRequest) ([]DayResponse, error)
	DeleteDay(ctx context.Context, companyID string, id string) error
}
