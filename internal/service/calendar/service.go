package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/calendar"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/dateutil"
)

type CalendarServiceImpl struct {
	calendarRepo calendar.CalendarRepository
	cache        calendar.ResolutionCache
}

// NewCalendarService wires the calendar service. cache may be nil.
func NewCalendarService(calendarRepo calendar.CalendarRepository, cache calendar.ResolutionCache) calendar.CalendarService {
	return &CalendarServiceImpl{
		calendarRepo: calendarRepo,
		cache:        cache,
	}
}

// Resolve implements calendar.CalendarService.
func (s *CalendarServiceImpl) Resolve(ctx context.Context, companyID string, scope calendar.Scope, rng dateutil.Range) (calendar.Resolution, error) {
	if err := scope.Validate(); err != nil {
		return calendar.EmptyResolution(), err
	}
	if err := rng.Validate(); err != nil {
		return calendar.EmptyResolution(), err
	}

	if s.cache != nil {
		res, ok, err := s.cache.Get(ctx, companyID, scope, rng)
		if err != nil {
			slog.Warn("calendar cache read failed", "company_id", companyID, "scope", scope.String(), "error", err)
		} else if ok {
			return res, nil
		}
	}

	days, err := s.calendarRepo.ListDays(ctx, companyID, scope, rng)
	if err != nil {
		return calendar.EmptyResolution(), fmt.Errorf("failed to list calendar days: %w", err)
	}
	res := calendar.Resolve(scope, days, rng)

	if s.cache != nil {
		if err := s.cache.Set(ctx, companyID, scope, rng, res); err != nil {
			slog.Warn("calendar cache write failed", "company_id", companyID, "scope", scope.String(), "error", err)
		}
	}
	return res, nil
}

// ListDays implements calendar.CalendarService.
func (s *CalendarServiceImpl) ListDays(ctx context.Context, companyID string, req calendar.ListDaysRequest) ([]calendar.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	scope, rng := req.Parsed()

	days, err := s.calendarRepo.ListDays(ctx, companyID, scope, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar days: %w", err)
	}
	return toResponses(days), nil
}

// UpsertDays implements calendar.CalendarService.
func (s *CalendarServiceImpl) UpsertDays(ctx context.Context, companyID string, req calendar.UpsertDaysRequest) ([]calendar.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.save(ctx, companyID, req.ToDays(companyID))
}

// GenerateWeeklyOffs implements calendar.CalendarService.
func (s *CalendarServiceImpl) GenerateWeeklyOffs(ctx context.Context, companyID string, req calendar.WeeklyOffsRequest) ([]calendar.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	days := req.ToDays(companyID)
	if len(days) == 0 {
		return []calendar.DayResponse{}, nil
	}

	saved, err := s.calendarRepo.AddWeeklyOffs(ctx, companyID, days)
	if err != nil {
		return nil, fmt.Errorf("failed to save weekly offs: %w", err)
	}
	s.invalidate(ctx, companyID)
	return toResponses(saved), nil
}

// DeleteDay implements calendar.CalendarService.
func (s *CalendarServiceImpl) DeleteDay(ctx context.Context, companyID string, id string) error {
	if err := s.calendarRepo.Delete(ctx, companyID, id); err != nil {
		if errors.Is(err, calendar.ErrDayNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete calendar day: %w", err)
	}
	s.invalidate(ctx, companyID)
	return nil
}

func (s *CalendarServiceImpl) save(ctx context.Context, companyID string, days []calendar.Day) ([]calendar.DayResponse, error) {
	saved, err := s.calendarRepo.UpsertDays(ctx, companyID, days)
	if err != nil {
		return nil, fmt.Errorf("failed to save calendar days: %w", err)
	}
	s.invalidate(ctx, companyID)
	return toResponses(saved), nil
}

// invalidate drops every cached resolution of the company. A failure only
// delays visibility until the entries expire.
func (s *CalendarServiceImpl) invalidate(ctx context.Context, companyID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, companyID); err != nil {
		slog.Warn("calendar cache invalidation failed", "company_id", companyID, "error", err)
	}
}

func toResponses(days []calendar.Day) []calendar.DayResponse {
	out := make([]calendar.DayResponse, len(days))
	for i, d := range days {
		out[i] = calendar.ToDayResponse(d)
	}
	return out
}
