package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendsync/backend/internal/application/usecase/job"
	"github.com/spendsync/backend/internal/domain/entity"
	"github.com/spendsync/backend/test/integration/mock/memory"
)

type countingPass struct {
	name  entity.JobName
	calls atomic.Int32
}

func (p *countingPass) Execute(_ context.Context) (*entity.JobRun, error) {
	p.calls.Add(1)
	run := entity.NewJobRun(p.name, time.Now())
	run.Finish(time.Now())
	return run, nil
}

func newScheduler(t *testing.T, cfg Config) (*Scheduler, map[entity.JobName]*countingPass) {
	t.Helper()

	passes := map[entity.JobName]*countingPass{}
	registry := map[entity.JobName]job.Pass{}
	for _, name := range []entity.JobName{entity.JobRecurring, entity.JobBudgetAlerts, entity.JobResetReminder, entity.JobUpcomingBills} {
		p := &countingPass{name: name}
		passes[name] = p
		registry[name] = p
	}

	clock := memory.NewClock(time.Date(2024, time.June, 1, 0, 1, 0, 0, time.UTC))
	runJob := job.NewRunJobUseCase(registry, memory.NewJobRunStore(), nil, clock)
	return New(runJob, job.NewRunDailyUseCase(runJob), cfg), passes
}

func TestScheduler_RunsAlertsOnStart(t *testing.T) {
	s, passes := newScheduler(t, Config{
		Location:         time.UTC,
		DailySpec:        "1 0 * * *",
		HourlySpec:       "0 * * * *",
		RunAlertsOnStart: true,
	})

	require.NoError(t, s.Start(context.Background()))
	s.Stop()

	assert.Equal(t, int32(1), passes[entity.JobBudgetAlerts].calls.Load())
	assert.Zero(t, passes[entity.JobRecurring].calls.Load())
}

func TestScheduler_InvalidSpec(t *testing.T) {
	s, _ := newScheduler(t, Config{DailySpec: "not a spec", HourlySpec: "0 * * * *"})
	assert.Error(t, s.Start(context.Background()))
}

func TestScheduler_DailyRunsEveryDailyPass(t *testing.T) {
	s, passes := newScheduler(t, Config{DailySpec: "1 0 * * *", HourlySpec: "0 * * * *"})
	s.ctx = context.Background()

	s.daily()

	for _, name := range job.DailyJobs {
		assert.Equal(t, int32(1), passes[name].calls.Load(), name)
	}
	assert.Zero(t, passes[entity.JobBudgetAlerts].calls.Load())
}
