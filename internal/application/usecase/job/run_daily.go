package job

import (
	"context"
	"errors"

	"github.com/spendsync/backend/internal/domain/entity"
)

// DailyJobs is the order in which the daily trigger runs its passes.
var DailyJobs = []entity.JobName{
	entity.JobResetReminder,
	entity.JobUpcomingBills,
	entity.JobRecurring,
}

// RunDailyOutput represents the runs of one daily trigger.
type RunDailyOutput struct {
	Runs []*entity.JobRun
}

// RunDailyUseCase runs the daily passes in order. A failing pass does not
// stop the ones after it.
type RunDailyUseCase struct {
	runJob *RunJobUseCase
}

// NewRunDailyUseCase creates a new RunDailyUseCase instance.
func NewRunDailyUseCase(runJob *RunJobUseCase) *RunDailyUseCase {
	return &RunDailyUseCase{
		runJob: runJob,
	}
}

// Execute runs every daily pass and joins their errors.
func (uc *RunDailyUseCase) Execute(ctx context.Context) (*RunDailyOutput, error) {
	out := &RunDailyOutput{}
	var errs []error

	for _, name := range DailyJobs {
		result, err := uc.runJob.Execute(ctx, RunJobInput{Job: name})
		if result != nil {
			out.Runs = append(out.Runs, result.Run)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	return out, errors.Join(errs...)
}
