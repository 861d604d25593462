package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frigoservis/servis/internal/application/report/usecases"
	"github.com/frigoservis/servis/internal/shared/logger"
)

type mockReporter struct {
	ExecuteFunc func(ctx context.Context, day time.Time) (*usecases.SendDailyReportResult, error)
	calls       int
}

func (m *mockReporter) Execute(ctx context.Context, day time.Time) (*usecases.SendDailyReportResult, error) {
	m.calls++
	return m.ExecuteFunc(ctx, day)
}

func TestRegisterDailyReportJob(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNop())
	require.NoError(t, err)

	reporter := &mockReporter{}
	require.NoError(t, m.RegisterDailyReportJob("0 20 * * *", reporter))

	jobs := m.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "daily-report", jobs[0].Name())
	assert.ElementsMatch(t, []string{"report", "daily"}, jobs[0].Tags())
}

func TestRegisterDailyReportJob_InvalidSchedule(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNop())
	require.NoError(t, err)

	err = m.RegisterDailyReportJob("every evening", &mockReporter{})
	assert.Error(t, err)
	assert.Empty(t, m.Jobs())
}

func TestSendDailyReport(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNop())
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		reporter := &mockReporter{
			ExecuteFunc: func(ctx context.Context, day time.Time) (*usecases.SendDailyReportResult, error) {
				assert.WithinDuration(t, time.Now(), day, time.Minute)
				return &usecases.SendDailyReportResult{
					Summary:    &usecases.DailySummary{Date: "2026-10-15"},
					Recipients: 2,
				}, nil
			},
		}
		m.sendDailyReport(context.Background(), reporter)
		assert.Equal(t, 1, reporter.calls)
	})

	t.Run("failure is logged not propagated", func(t *testing.T) {
		reporter := &mockReporter{
			ExecuteFunc: func(ctx context.Context, day time.Time) (*usecases.SendDailyReportResult, error) {
				return nil, errors.New("smtp down")
			},
		}
		assert.NotPanics(t, func() { m.sendDailyReport(context.Background(), reporter) })
		assert.Equal(t, 1, reporter.calls)
	})
}

func TestStartStop(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNop())
	require.NoError(t, err)

	assert.False(t, m.IsStarted())
	assert.NoError(t, m.Stop())

	m.Start()
	assert.True(t, m.IsStarted())
	m.Start()
	assert.True(t, m.IsStarted())

	require.NoError(t, m.Stop())
	assert.False(t, m.IsStarted())
}
