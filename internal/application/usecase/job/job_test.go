package job_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendsync/backend/internal/application/usecase/job"
	"github.com/spendsync/backend/internal/domain/entity"
	"github.com/spendsync/backend/test/integration/mock/memory"
)

type stubPass struct {
	name  entity.JobName
	items []entity.ItemResult
	err   error
	calls *[]entity.JobName
	noRun bool
}

func (p stubPass) Execute(_ context.Context) (*entity.JobRun, error) {
	if p.calls != nil {
		*p.calls = append(*p.calls, p.name)
	}
	if p.noRun {
		return nil, p.err
	}
	run := entity.NewJobRun(p.name, time.Now())
	for _, item := range p.items {
		run.Record(item)
	}
	run.Finish(time.Now())
	return run, p.err
}

func TestRunJobUseCase(t *testing.T) {
	ctx := context.Background()
	clock := memory.NewClock(time.Date(2024, time.June, 1, 0, 1, 0, 0, time.UTC))

	t.Run("stores the run without a report when everything succeeded", func(t *testing.T) {
		runs := memory.NewJobRunStore()
		reports := &memory.EmailService{}
		uc := job.NewRunJobUseCase(map[entity.JobName]job.Pass{
			entity.JobRecurring: stubPass{name: entity.JobRecurring, items: []entity.ItemResult{{ItemID: "a", Status: entity.ItemGenerated}}},
		}, runs, reports, clock)

		out, err := uc.Execute(ctx, job.RunJobInput{Job: entity.JobRecurring})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Run.Succeeded)
		assert.Len(t, runs.Runs, 1)
		assert.Empty(t, reports.Reports)
	})

	t.Run("queues a report for failed items", func(t *testing.T) {
		runs := memory.NewJobRunStore()
		reports := &memory.EmailService{}
		uc := job.NewRunJobUseCase(map[entity.JobName]job.Pass{
			entity.JobBudgetAlerts: stubPass{name: entity.JobBudgetAlerts, items: []entity.ItemResult{{ItemID: "u1", Status: entity.ItemFailed}}},
		}, runs, reports, clock)

		_, err := uc.Execute(ctx, job.RunJobInput{Job: entity.JobBudgetAlerts})
		require.NoError(t, err)
		require.Len(t, reports.Reports, 1)
		assert.Equal(t, []string{"u1"}, reports.Reports[0].FailedItemIDs)
	})

	t.Run("aborted pass is recorded as a failure", func(t *testing.T) {
		runs := memory.NewJobRunStore()
		boom := errors.New("boom")
		uc := job.NewRunJobUseCase(map[entity.JobName]job.Pass{
			entity.JobRecurring: stubPass{name: entity.JobRecurring, err: boom, noRun: true},
		}, runs, nil, clock)

		out, err := uc.Execute(ctx, job.RunJobInput{Job: entity.JobRecurring})
		assert.ErrorIs(t, err, boom)
		require.NotNil(t, out)
		assert.True(t, out.Run.HasFailures())
		assert.Len(t, runs.Runs, 1)
	})

	t.Run("unknown job", func(t *testing.T) {
		uc := job.NewRunJobUseCase(nil, memory.NewJobRunStore(), nil, clock)
		_, err := uc.Execute(ctx, job.RunJobInput{Job: "nope"})
		assert.ErrorIs(t, err, job.ErrUnknownJob)
	})
}

func TestRunDailyUseCase(t *testing.T) {
	ctx := context.Background()
	clock := memory.NewClock(time.Date(2024, time.June, 27, 0, 1, 0, 0, time.UTC))
	var calls []entity.JobName
	boom := errors.New("boom")

	passes := map[entity.JobName]job.Pass{
		entity.JobResetReminder: stubPass{name: entity.JobResetReminder, calls: &calls},
		entity.JobUpcomingBills: stubPass{name: entity.JobUpcomingBills, calls: &calls, err: boom},
		entity.JobRecurring:     stubPass{name: entity.JobRecurring, calls: &calls},
	}
	runs := memory.NewJobRunStore()
	uc := job.NewRunDailyUseCase(job.NewRunJobUseCase(passes, runs, nil, clock))

	out, err := uc.Execute(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []entity.JobName{entity.JobResetReminder, entity.JobUpcomingBills, entity.JobRecurring}, calls)
	assert.Len(t, out.Runs, 3)

	list, err := job.NewListRunsUseCase(runs).Execute(ctx, job.ListRunsInput{})
	require.NoError(t, err)
	assert.Len(t, list.Runs, 3)
	assert.Equal(t, entity.JobRecurring, list.Runs[0].Job)
	assert.Len(t, list.Latest, 3)
}

func TestResolveName(t *testing.T) {
	assert.Equal(t, entity.JobBudgetAlerts, job.ResolveName("alerts"))
	assert.Equal(t, entity.JobUpcomingBills, job.ResolveName("upcoming-bills"))
	assert.Equal(t, entity.JobRecurring, job.ResolveName("recurring"))
	assert.Equal(t, entity.JobName("budget_alerts"), job.ResolveName("budget_alerts"))
	assert.Equal(t, entity.JobName("nope"), job.ResolveName("nope"))
}
