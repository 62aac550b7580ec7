// Package scheduler drives the recurring, alert and reminder passes from
// cron triggers.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/spendsync/backend/internal/application/usecase/job"
	"github.com/spendsync/backend/internal/domain/entity"
)

// Config holds the trigger specs in standard five-field cron syntax.
type Config struct {
	Location         *time.Location
	DailySpec        string
	HourlySpec       string
	RunAlertsOnStart bool
}

// Scheduler owns the cron instance. A trigger never overlaps itself; the
// daily and hourly triggers may run at the same time.
type Scheduler struct {
	cron     *cron.Cron
	runJob   *job.RunJobUseCase
	runDaily *job.RunDailyUseCase
	config   Config

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a scheduler.
func New(runJob *job.RunJobUseCase, runDaily *job.RunDailyUseCase, config Config) *Scheduler {
	if config.Location == nil {
		config.Location = time.Local
	}

	logger := slogLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(config.Location),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		runJob:   runJob,
		runDaily: runDaily,
		config:   config,
	}
}

// Start registers the triggers and starts the cron loop. It does not block.
func (s *Scheduler) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	if _, err := s.cron.AddFunc(s.config.DailySpec, s.daily); err != nil {
		return fmt.Errorf("invalid daily schedule %q: %w", s.config.DailySpec, err)
	}
	if _, err := s.cron.AddFunc(s.config.HourlySpec, s.hourly); err != nil {
		return fmt.Errorf("invalid hourly schedule %q: %w", s.config.HourlySpec, err)
	}

	s.cron.Start()
	slog.Info("Scheduler started",
		"daily", s.config.DailySpec,
		"hourly", s.config.HourlySpec,
		"timezone", s.config.Location.String(),
	)

	if s.config.RunAlertsOnStart {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.hourly()
		}()
	}

	return nil
}

// Stop stops the triggers and waits for running passes to return.
func (s *Scheduler) Stop() {
	stopped := s.cron.Stop()
	<-stopped.Done()
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) daily() {
	output, err := s.runDaily.Execute(s.ctx)
	if err != nil {
		slog.Error("Daily passes finished with errors", "error", err)
	}
	if output != nil {
		for _, run := range output.Runs {
			logRun(run)
		}
	}
}

func (s *Scheduler) hourly() {
	output, err := s.runJob.Execute(s.ctx, job.RunJobInput{Job: entity.JobBudgetAlerts})
	if err != nil {
		slog.Error("Budget alert pass failed", "error", err)
	}
	if output != nil {
		logRun(output.Run)
	}
}

func logRun(run *entity.JobRun) {
	slog.Info("Scheduled pass finished",
		"job", run.Job,
		"processed", run.Processed,
		"succeeded", run.Succeeded,
		"skipped", run.Skipped,
		"failed", run.Failed,
		"duration", run.FinishedAt.Sub(run.StartedAt),
	)
}

// slogLogger adapts cron's logger interface to slog.
type slogLogger struct{}

func (slogLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (slogLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
