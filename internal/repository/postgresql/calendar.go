package postgresql

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/calendar"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/database"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
)

var calendarDayColumns = []string{
	"id", "company_id", "scope_kind", "institution_id", "date",
	"day_type", "name", "description", "created_at", "updated_at",
}

type calendarRepositoryImpl struct {
	db *database.DB
}

func NewCalendarRepository(db *database.DB) calendar.CalendarRepository {
	return &calendarRepositoryImpl{db: db}
}

func scanCalendarDay(row pgx.Row) (calendar.Day, error) {
	var d calendar.Day
	err := row.Scan(
		&d.ID, &d.CompanyID, &d.ScopeKind, &d.InstitutionID, scanDate(&d.Date),
		&d.Type, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

// ListDays implements calendar.CalendarRepository.
func (r *calendarRepositoryImpl) ListDays(ctx context.Context, companyID string, scope calendar.Scope, rng dateutil.Range) ([]calendar.Day, error) {
	q := GetQuerier(ctx, r.db)

	where := sq.And{
		sq.Eq{"company_id": companyID, "scope_kind": string(scope.Kind)},
		within("date", rng),
	}
	if scope.Kind == calendar.ScopeInstitution {
		where = append(where, sq.Eq{"institution_id": scope.InstitutionID})
	}

	b := psql.Select(calendarDayColumns...).
		From("calendar_day_types").
		Where(where).
		OrderBy("date")

	days, err := queryRows(ctx, q, b, scanCalendarDay)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar days: %w", err)
	}
	return days, nil
}

// UpsertDays implements calendar.CalendarRepository.
func (r *calendarRepositoryImpl) UpsertDays(ctx context.Context, companyID string, days []calendar.Day) ([]calendar.Day, error) {
	if len(days) == 0 {
		return []calendar.Day{}, nil
	}
	b := insertDays(companyID, days).Suffix(`ON CONFLICT ON CONSTRAINT calendar_day_types_scope_date_key DO UPDATE
		SET day_type = EXCLUDED.day_type,
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + joinColumns(calendarDayColumns))

	saved, err := queryRows(ctx, GetQuerier(ctx, r.db), b, scanCalendarDay)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert calendar days: %w", err)
	}
	return saved, nil
}

// AddWeeklyOffs implements calendar.CalendarRepository. Holiday rows on the
// same date are left untouched and are not returned.
func (r *calendarRepositoryImpl) AddWeeklyOffs(ctx context.Context, companyID string, days []calendar.Day) ([]calendar.Day, error) {
	if len(days) == 0 {
		return []calendar.Day{}, nil
	}
	b := insertDays(companyID, days).Suffix(`ON CONFLICT ON CONSTRAINT calendar_day_types_scope_date_key DO UPDATE
		SET name = EXCLUDED.name,
			updated_at = EXCLUDED.updated_at
		WHERE calendar_day_types.day_type <> 'holiday'
		RETURNING ` + joinColumns(calendarDayColumns))

	saved, err := queryRows(ctx, GetQuerier(ctx, r.db), b, scanCalendarDay)
	if err != nil {
		return nil, fmt.Errorf("failed to add weekly offs: %w", err)
	}
	return saved, nil
}

func insertDays(companyID string, days []calendar.Day) sq.InsertBuilder {
	now := time.Now()
	b := psql.Insert("calendar_day_types").
		Columns("company_id", "scope_kind", "institution_id", "date", "day_type", "name", "description", "created_at", "updated_at")
	for _, d := range days {
		var institutionID *string
		if d.ScopeKind == calendar.ScopeInstitution {
			institutionID = d.InstitutionID
		}
		b = b.Values(companyID, string(d.ScopeKind), institutionID, d.Date.Time(), string(d.Type), d.Name, d.Description, now, now)
	}
	return b
}

// Delete implements calendar.CalendarRepository.
func (r *calendarRepositoryImpl) Delete(ctx context.Context, companyID string, id string) error {
	q := GetQuerier(ctx, r.db)

	n, err := exec(ctx, q, psql.Delete("calendar_day_types").Where(sq.Eq{"id": id, "company_id": companyID}))
	if err != nil {
		return fmt.Errorf("failed to delete calendar day: %w", err)
	}
	if n == 0 {
		return calendar.ErrDayNotFound
	}
	return nil
}
