// Package scheduler provides unified scheduler management using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/frigoservis/servis/internal/application/report/usecases"
	"github.com/frigoservis/servis/internal/shared/biztime"
	"github.com/frigoservis/servis/internal/shared/logger"
)

// DailyReporter builds and sends the report of one business day.
type DailyReporter interface {
	Execute(ctx context.Context, day time.Time) (*usecases.SendDailyReportResult, error)
}

// SchedulerManager owns the background jobs of the server process.
// Cron expressions are evaluated in the business timezone.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// ========================================
// Daily Report Job (cron-based)
// ========================================

// RegisterDailyReportJob sends the report of the current business day on the
// given cron schedule, e.g. "0 20 * * *" for 20:00 every day.
func (m *SchedulerManager) RegisterDailyReportJob(schedule string, reporter DailyReporter) error {
	_, err := m.scheduler.NewJob(
		gocron.CronJob(schedule, false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			m.sendDailyReport(ctx, reporter)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("report", "daily"),
		gocron.WithName("daily-report"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered daily report job", "schedule", schedule, "timezone", biztime.Location().String())
	return nil
}

func (m *SchedulerManager) sendDailyReport(ctx context.Context, reporter DailyReporter) {
	m.logger.Debugw("daily report task started")

	startTime := biztime.NowUTC()
	result, err := reporter.Execute(ctx, startTime)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		m.logger.Errorw("failed to send daily report",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	m.logger.Infow("daily report sent",
		"date", result.Summary.Date,
		"recipients", result.Recipients,
		"duration", time.Since(startTime),
	)
}

// ========================================
// Scheduler Lifecycle Methods
// ========================================

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
