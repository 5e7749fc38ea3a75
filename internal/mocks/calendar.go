package mocks

import (
	"context"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/calendar"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
	"github.com/stretchr/testify/mock"
)

type CalendarRepository struct {
	mock.Mock
}

func (m *CalendarRepository) ListDays(ctx context.Context, companyID string, scope calendar.Scope, rng dateutil.Range) ([]calendar.Day, error) {
	args := m.Called(ctx, companyID, scope, rng)
	days, _ := args.Get(0).([]calendar.Day)
	return days, args.Error(1)
}

func (m *CalendarRepository) UpsertDays(ctx context.Context, companyID string, days []calendar.Day) ([]calendar.Day, error) {
	args := m.Called(ctx, companyID, days)
	saved, _ := args.Get(0).([]calendar.Day)
	return saved, args.Error(1)
}

func (m *CalendarRepository) AddWeeklyOffs(ctx context.Context, companyID string, days []calendar.Day) ([]calendar.Day, error) {
	args := m.Called(ctx, companyID, days)
	saved, _ := args.Get(0).([]calendar.Day)
	return saved, args.Error(1)
}

func (m *CalendarRepository) Delete(ctx context.Context, companyID string, id string) error {
	return m.Called(ctx, companyID, id).Error(0)
}

type ResolutionCache struct {
	mock.Mock
}

func (m *ResolutionCache) Get(ctx context.Context, companyID string, scope calendar.Scope, rng dateutil.Range) (calendar.Resolution, bool, error) {
	args := m.Called(ctx, companyID, scope, rng)
	res, _ := args.Get(0).(calendar.Resolution)
	return res, args.Bool(1), args.Error(2)
}

func (m *ResolutionCache) Set(ctx context.Context, companyID string, scope calendar.Scope, rng dateutil.Range, res calendar.Resolution) error {
	return m.Called(ctx, companyID, scope, rng, res).Error(0)
}

func (m *ResolutionCache) Invalidate(ctx context.Context, companyID string) error {
	return m.Called(ctx, companyID).Error(0)
}

type CalendarService struct {
	mock.Mock
}

func (m *CalendarService) Resolve(ctx context.Context, companyID string, scope calendar.Scope, rng dateutil.Range) (calendar.Resolution, error) {
	args := m.Called(ctx, companyID, scope, rng)
	res, _ := args.Get(0).(calendar.Resolution)
	return res, args.Error(1)
}

func (m *CalendarService) ListDays(ctx context.Context, companyID string, req calendar.ListDaysRequest) ([]calendar.DayResponse, error) {
	args := m.Called(ctx, companyID, req)
	days, _ := args.Get(0).([]calendar.DayResponse)
	return days, args.Error(1)
}

func (m *CalendarService) UpsertDays(ctx context.Context, companyID string, req calendar.UpsertDaysRequest) ([]calendar.DayResponse, error) {
	args := m.Called(ctx, companyID, req)
	days, _ := args.Get(0).([]calendar.DayResponse)
	return days, args.Error(1)
}

func (m *CalendarService) GenerateWeeklyOffs(ctx context.Context, companyID string, req calendar.WeeklyOffsRequest) ([]calendar.DayResponse, error) {
	args := m.Called(ctx, companyID, req)
	days, _ := args.Get(0).([]calendar.DayResponse)
	return days, args.Error(1)
}

func (m *CalendarService) DeleteDay(ctx context.Context, companyID string, id string) error {
	return m.Called(ctx, companyID, id).Error(0)
}
