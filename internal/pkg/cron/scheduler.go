package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// JobFunc is the body of a scheduled job. ctx is cancelled when the
// scheduler stops.
type JobFunc func(ctx context.Context) error

// Scheduler manages scheduled jobs
type Scheduler struct {
	scheduler gocron.Scheduler
	ctx       context.Context
	cancel    context.CancelFunc

	mu   sync.Mutex
	jobs map[string]JobFunc
}

func NewScheduler(loc *time.Location) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler: s,
		ctx:       ctx,
		cancel:    cancel,
		jobs:      make(map[string]JobFunc),
	}, nil
}

// AddDailyJob runs fn once a day at hour:00 in the scheduler's location.
func (s *Scheduler) AddDailyJob(name string, hour int, fn JobFunc) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("invalid hour %d for job %s", hour, name)
	}
	def := gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(hour), 0, 0)))
	return s.add(name, def, fn)
}

// AddIntervalJob runs fn every interval.
func (s *Scheduler) AddIntervalJob(name string, interval time.Duration, fn JobFunc) error {
	return s.add(name, gocron.DurationJob(interval), fn)
}

func (s *Scheduler) add(name string, def gocron.JobDefinition, fn JobFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %s already registered", name)
	}

	_, err := s.scheduler.NewJob(
		def,
		gocron.NewTask(func() { s.execute(name, fn) }),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", name, err)
	}

	s.jobs[name] = fn
	slog.Info("Cron job registered", "name", name)
	return nil
}

func (s *Scheduler) execute(name string, fn JobFunc) {
	start := time.Now()
	slog.Debug("Cron job starting", "name", name)

	if err := fn(s.ctx); err != nil {
		slog.Error("Cron job failed", "name", name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("Cron job completed", "name", name, "duration", time.Since(start))
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
	slog.Info("Cron scheduler started", "job_count", len(s.scheduler.Jobs()))
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() error {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	slog.Info("Cron scheduler stopped")
	return nil
}

// RunNow runs a registered job synchronously on the caller's context.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	fn, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("job %s is not registered", name)
	}
	return fn(ctx)
}
