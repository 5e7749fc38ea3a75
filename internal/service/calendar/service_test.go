package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/calendar"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/mocks"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const companyID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

type CalendarServiceTestSuite struct {
	suite.Suite
	repo    *mocks.CalendarRepository
	cache   *mocks.ResolutionCache
	service calendar.CalendarService
	ctx     context.Context
	march   dateutil.Range
}

func (s *CalendarServiceTestSuite) SetupTest() {
	s.repo = new(mocks.CalendarRepository)
	s.cache = new(mocks.ResolutionCache)
	s.service = NewCalendarService(s.repo, s.cache)
	s.ctx = context.Background()
	s.march = dateutil.MonthRange(2024, time.March)
}

func (s *CalendarServiceTestSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
	s.cache.AssertExpectations(s.T())
}

func TestCalendarServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CalendarServiceTestSuite))
}

func (s *CalendarServiceTestSuite) TestResolve_CacheHit() {
	scope := calendar.InstitutionScope("inst-1")
	cached := calendar.EmptyResolution()
	cached.Weekends[dateutil.New(2024, time.March, 2)] = struct{}{}

	s.cache.On("Get", s.ctx, companyID, scope, s.march).Return(cached, true, nil)

	res, err := s.service.Resolve(s.ctx, companyID, scope, s.march)
	s.Require().NoError(err)
	s.True(res.IsWeekend(dateutil.New(2024, time.March, 2)))
	s.repo.AssertNotCalled(s.T(), "ListDays", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *CalendarServiceTestSuite) TestResolve_MissLoadsAndStores() {
	scope := calendar.CompanyScope()
	days := []calendar.Day{
		{ScopeKind: calendar.ScopeCompany, Date: dateutil.New(2024, time.March, 9), Type: calendar.DayTypeWeekend},
		{ScopeKind: calendar.ScopeCompany, Date: dateutil.New(2024, time.March, 25), Type: calendar.DayTypeHoliday, Name: "Holi"},
	}

	s.cache.On("Get", s.ctx, companyID, scope, s.march).Return(calendar.Resolution{}, false, nil)
	s.repo.On("ListDays", s.ctx, companyID, scope, s.march).Return(days, nil)
	s.cache.On("Set", s.ctx, companyID, scope, s.march, mock.AnythingOfType("calendar.Resolution")).Return(nil)

	res, err := s.service.Resolve(s.ctx, companyID, scope, s.march)
	s.Require().NoError(err)
	s.True(res.IsWeekend(dateutil.New(2024, time.March, 9)))
	h, ok := res.Holiday(dateutil.New(2024, time.March, 25))
	s.True(ok)
	s.Equal("Holi", h.Name)
	// Sundays are not weekends unless a row says so.
	s.False(res.IsWeekend(dateutil.New(2024, time.March, 10)))
}

func (s *CalendarServiceTestSuite) TestResolve_CacheErrorFallsBackToRepository() {
	scope := calendar.CompanyScope()

	s.cache.On("Get", s.ctx, companyID, scope, s.march).Return(calendar.Resolution{}, false, errors.New("redis down"))
	s.repo.On("ListDays", s.ctx, companyID, scope, s.march).Return([]calendar.Day{}, nil)
	s.cache.On("Set", s.ctx, companyID, scope, s.march, mock.Anything).Return(errors.New("redis down"))

	res, err := s.service.Resolve(s.ctx, companyID, scope, s.march)
	s.Require().NoError(err)
	s.Empty(res.Weekends)
}

func (s *CalendarServiceTestSuite) TestResolve_MissingInstitution() {
	res, err := s.service.Resolve(s.ctx, companyID, calendar.InstitutionScope(""), s.march)
	s.ErrorIs(err, calendar.ErrMissingScope)
	s.NotNil(res.Weekends)
	s.NotNil(res.Holidays)
}

func (s *CalendarServiceTestSuite) TestResolve_RepositoryError() {
	scope := calendar.CompanyScope()
	s.cache.On("Get", s.ctx, companyID, scope, s.march).Return(calendar.Resolution{}, false, nil)
	s.repo.On("ListDays", s.ctx, companyID, scope, s.march).Return(nil, errors.New("timeout"))

	_, err := s.service.Resolve(s.ctx, companyID, scope, s.march)
	s.Error(err)
}

func (s *CalendarServiceTestSuite) TestUpsertDays_InvalidatesCache() {
	req := calendar.UpsertDaysRequest{
		Scope:         "institution",
		InstitutionID: "inst-1",
		Days:          []calendar.DayInput{{Date: "2024-08-15", Type: "holiday", Name: "Independence Day"}},
	}
	saved := []calendar.Day{{ID: "d1", ScopeKind: calendar.ScopeInstitution, Date: dateutil.New(2024, time.August, 15), Type: calendar.DayTypeHoliday, Name: "Independence Day"}}

	s.repo.On("UpsertDays", s.ctx, companyID, mock.MatchedBy(func(days []calendar.Day) bool {
		return len(days) == 1 && *days[0].InstitutionID == "inst-1" && days[0].Type == calendar.DayTypeHoliday
	})).Return(saved, nil)
	s.cache.On("Invalidate", s.ctx, companyID).Return(nil)

	out, err := s.service.UpsertDays(s.ctx, companyID, req)
	s.Require().NoError(err)
	s.Len(out, 1)
	s.Equal("d1", out[0].ID)
}

func (s *CalendarServiceTestSuite) TestUpsertDays_ValidationError() {
	req := calendar.UpsertDaysRequest{Scope: "institution"}

	_, err := s.service.UpsertDays(s.ctx, companyID, req)
	var verrs validator.ValidationErrors
	s.ErrorAs(err, &verrs)
}

func (s *CalendarServiceTestSuite) TestGenerateWeeklyOffs() {
	req := calendar.WeeklyOffsRequest{
		Scope:     "company",
		StartDate: "2024-03-01",
		EndDate:   "2024-03-31",
		Weekdays:  []string{"Saturday", "sunday"},
	}

	s.repo.On("AddWeeklyOffs", s.ctx, companyID, mock.MatchedBy(func(days []calendar.Day) bool {
		for _, d := range days {
			if d.Type != calendar.DayTypeWeekend || d.Name != "Weekly off" {
				return false
			}
		}
		return len(days) == 10
	})).Return(make([]calendar.Day, 10), nil)
	s.cache.On("Invalidate", s.ctx, companyID).Return(nil)

	out, err := s.service.GenerateWeeklyOffs(s.ctx, companyID, req)
	s.Require().NoError(err)
	s.Len(out, 10)
	s.repo.AssertNotCalled(s.T(), "UpsertDays", mock.Anything, mock.Anything, mock.Anything)
}

func (s *CalendarServiceTestSuite) TestDeleteDay() {
	s.repo.On("Delete", s.ctx, companyID, "d1").Return(nil)
	s.repo.On("Delete", s.ctx, companyID, "missing").Return(calendar.ErrDayNotFound)
	s.cache.On("Invalidate", s.ctx, companyID).Return(nil).Once()

	s.NoError(s.service.DeleteDay(s.ctx, companyID, "d1"))
	s.ErrorIs(s.service.DeleteDay(s.ctx, companyID, "missing"), calendar.ErrDayNotFound)
}

func TestResolve_WithoutCache(t *testing.T) {
	repo := new(mocks.CalendarRepository)
	svc := NewCalendarService(repo, nil)
	rng := dateutil.MonthRange(2024, time.March)

	repo.On("ListDays", mock.Anything, companyID, calendar.CompanyScope(), rng).Return([]calendar.Day{}, nil)

	_, err := svc.Resolve(context.Background(), companyID, calendar.CompanyScope(), rng)
	if err != nil {
		t.Fatal(err)
	}
	repo.AssertExpectations(t)
}
