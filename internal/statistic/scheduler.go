package statistic

import (
	"activitybot/internal/providers"
	"activitybot/internal/services"
	"activitybot/internal/statistic/interfaces"
	"activitybot/internal/structures"
	"context"
	"github.com/roylee0704/gron"
	"go.uber.org/atomic"
	"time"
)

type Scheduler struct {
	config   *structures.Config
	logger   providers.Logger
	service  services.ActivityServiceInterface
	storage  interfaces.StorageInterface
	reporter *Reporter
	cron     *gron.Cron
	lastRuns map[string]*atomic.Time
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	if s.config.Report.DailyEnabled {
		hour, minute, _ := ParseClock(s.config.Report.DailyTime)
		s.add(JobDaily, DailyAt{Hour: hour, Minute: minute, Location: s.reporter.location}, func(now time.Time) {
			ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
			defer cancel()
			s.reporter.SendDaily(ctx, now)
		})
	}

	if s.config.Report.WeeklyEnabled {
		hour, minute, _ := ParseClock(s.config.Report.WeeklyTime)
		s.add(JobWeekly, WeeklyAt{Weekday: time.Sunday, Hour: hour, Minute: minute, Location: s.reporter.location}, func(now time.Time) {
			ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
			defer cancel()
			s.reporter.SendWeekly(ctx, now)
		})
	}

	if s.config.Cleanup.Auto {
		hour, minute, _ := ParseClock(s.config.Cleanup.Time)
		s.add(JobCleanup, DailyAt{Hour: hour, Minute: minute, Location: s.reporter.location}, func(_ time.Time) {
			s.reporter.RunCleanup()
		})
	}

	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Scheduler started with %d jobs", len(s.lastRuns))
}

func (s *Scheduler) add(name string, schedule gron.Schedule, job func(now time.Time)) {
	last := atomic.NewTime(time.Time{})
	s.lastRuns[name] = last

	s.cron.AddFunc(schedule, func() {
		now := time.Now()
		last.Store(now)
		s.logger.Debugf(providers.TypeReport, "Running %s job", name)
		job(now)
	})
	s.logger.Infof(providers.TypeApp, "Job %s scheduled, next run at %s", name, schedule.Next(time.Now()).Format(time.RFC3339))
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	s.service.Restore(s.storage.Load())
	return nil
}

func (s *Scheduler) Persist() error {
	s.logger.Infof(providers.TypeApp, "Persisting activity data...")
	err := s.service.Persist()
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func (s *Scheduler) LastRuns() map[string]time.Time {
	runs := make(map[string]time.Time, len(s.lastRuns))
	for name, last := range s.lastRuns {
		if t := last.Load(); !t.IsZero() {
			runs[name] = t
		}
	}
	return runs
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.ActivityServiceInterface, storage interfaces.StorageInterface, reporter *Reporter) interfaces.SchedulerInterface {
	return &Scheduler{
		config:   config,
		logger:   logger,
		service:  service,
		storage:  storage,
		reporter: reporter,
		lastRuns: make(map[string]*atomic.Time),
	}
}
