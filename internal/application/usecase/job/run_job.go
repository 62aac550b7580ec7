// Package job composes the scheduled passes, stores their run history and
// reports failing runs to operators.
package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/entity"
)

// ErrUnknownJob is returned when no pass is registered under a job name.
var ErrUnknownJob = errors.New("unknown job")

// Pass is one scheduled pass. It returns the per-item results even when it
// also returns an error.
type Pass interface {
	Execute(ctx context.Context) (*entity.JobRun, error)
}

// RunJobInput represents the input for running a single pass.
type RunJobInput struct {
	Job entity.JobName
}

// RunJobOutput represents the stored run.
type RunJobOutput struct {
	Run *entity.JobRun
}

// RunJobUseCase runs a pass, stores its run and queues a report when any
// item failed.
type RunJobUseCase struct {
	passes  map[entity.JobName]Pass
	runRepo adapter.JobRunRepository
	reports adapter.EmailService // Optional
	clock   adapter.Clock
}

// NewRunJobUseCase creates a new RunJobUseCase instance. reports may be nil.
func NewRunJobUseCase(
	passes map[entity.JobName]Pass,
	runRepo adapter.JobRunRepository,
	reports adapter.EmailService,
	clock adapter.Clock,
) *RunJobUseCase {
	return &RunJobUseCase{
		passes:  passes,
		runRepo: runRepo,
		reports: reports,
		clock:   clock,
	}
}

// Execute runs the named pass.
func (uc *RunJobUseCase) Execute(ctx context.Context, input RunJobInput) (*RunJobOutput, error) {
	pass, ok := uc.passes[input.Job]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownJob, input.Job)
	}

	run, passErr := pass.Execute(ctx)
	if run == nil {
		run = entity.NewJobRun(input.Job, uc.clock.Now())
		run.Finish(uc.clock.Now())
	}
	if passErr != nil {
		slog.Error("Scheduled pass aborted",
			"job", input.Job,
			"error", passErr,
		)
		run.Record(entity.ItemResult{
			ItemID: string(input.Job),
			Status: entity.ItemFailed,
			Detail: "pass aborted",
			Err:    passErr,
		})
	}

	if err := uc.runRepo.Create(ctx, run); err != nil {
		slog.Error("Failed to store job run",
			"job", input.Job,
			"run_id", run.ID,
			"error", err,
		)
	}

	if run.HasFailures() && uc.reports != nil {
		if err := uc.reports.QueueJobReport(ctx, run); err != nil {
			slog.Warn("Failed to queue job report",
				"job", input.Job,
				"run_id", run.ID,
				"error", err,
			)
		}
	}

	return &RunJobOutput{Run: run}, passErr
}
