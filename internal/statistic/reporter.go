package statistic

import (
	"activitybot/internal/models"
	"activitybot/internal/providers"
	"activitybot/internal/services"
	"activitybot/internal/structures"
	"context"
	"time"
)

const (
	JobDaily   = "daily"
	JobWeekly  = "weekly"
	JobCleanup = "cleanup"

	deliveryTimeout = 30 * time.Second
)

// Reporter builds scheduled reports from the service and hands them to the
// notifier. Delivery failures are logged and counted, never retried.
type Reporter struct {
	service  services.ActivityServiceInterface
	notifier providers.NotifierInterface
	metrics  providers.MetricsProviderInterface
	logger   providers.Logger
	location *time.Location
	maxAge   int
}

func NewReporter(conf *structures.Config, service services.ActivityServiceInterface, notifier providers.NotifierInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) (*Reporter, error) {
	loc, err := Location(conf.Report.Timezone)
	if err != nil {
		return nil, err
	}
	return &Reporter{
		service:  service,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
		location: loc,
		maxAge:   conf.Cleanup.MaxDataAgeDays,
	}, nil
}

// SendDaily reports yesterday's UTC date relative to now.
func (r *Reporter) SendDaily(ctx context.Context, now time.Time) {
	if !r.notifier.Enabled() {
		r.logger.Debugf(providers.TypeReport, "No report channel configured, daily report skipped")
		return
	}

	date := models.DateKey(now.AddDate(0, 0, -1))
	report, err := r.service.DailyReport(date)
	if err != nil {
		r.logger.Errorf(providers.TypeReport, "Unable to build daily report for %s: %s", date, err)
		return
	}

	err = r.notifier.SendDailyReport(ctx, report)
	r.metrics.IncReportsTotal(JobDaily, err == nil)
	if err != nil {
		r.logger.Errorf(providers.TypeReport, "Error while sending daily report: %s", err)
		return
	}
	r.logger.Infof(providers.TypeReport, "Daily report for %s sent: %d messages, %d active users", date, report.TotalMessages, report.ActiveUsers)
}

// SendWeekly reports the week that started seven days before now.
func (r *Reporter) SendWeekly(ctx context.Context, now time.Time) {
	if !r.notifier.Enabled() {
		r.logger.Debugf(providers.TypeReport, "No report channel configured, weekly report skipped")
		return
	}

	week := now.In(r.location).AddDate(0, 0, -7).Format(models.DateLayout)
	report, err := r.service.WeeklyReport(week, services.DefaultWeeklyTop)
	if err != nil {
		r.logger.Errorf(providers.TypeReport, "Unable to build weekly report for %s: %s", week, err)
		return
	}

	err = r.notifier.SendWeeklyReport(ctx, report)
	r.metrics.IncReportsTotal(JobWeekly, err == nil)
	if err != nil {
		r.logger.Errorf(providers.TypeReport, "Error while sending weekly report: %s", err)
		return
	}
	r.logger.Infof(providers.TypeReport, "Weekly report for %s sent: %d messages, %d active users", report.WeekStart, report.TotalMessages, report.ActiveUsers)
}

// RunCleanup applies the configured retention.
func (r *Reporter) RunCleanup() {
	removed, err := r.service.Cleanup(r.maxAge)
	if err != nil {
		r.logger.Errorf(providers.TypeApp, "Scheduled cleanup failed: %s", err)
		return
	}
	r.logger.Infof(providers.TypeApp, "Scheduled cleanup removed %d entries older than %d days", removed, r.maxAge)
}
