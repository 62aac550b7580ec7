package job

import (
	"context"
	"fmt"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/entity"
)

const (
	defaultRunLimit = 20
	maxRunLimit     = 100
)

// ListRunsInput represents the input for listing run history.
type ListRunsInput struct {
	Limit int
}

// ListRunsOutput represents recent runs and the latest run of each job.
type ListRunsOutput struct {
	Runs   []*entity.JobRun
	Latest map[entity.JobName]*entity.JobRun
}

// ListRunsUseCase handles run history queries.
type ListRunsUseCase struct {
	runRepo adapter.JobRunRepository
}

// NewListRunsUseCase creates a new ListRunsUseCase instance.
func NewListRunsUseCase(runRepo adapter.JobRunRepository) *ListRunsUseCase {
	return &ListRunsUseCase{
		runRepo: runRepo,
	}
}

// Execute lists recent runs, newest first.
func (uc *ListRunsUseCase) Execute(ctx context.Context, input ListRunsInput) (*ListRunsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultRunLimit
	}
	if limit > maxRunLimit {
		limit = maxRunLimit
	}

	runs, err := uc.runRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list job runs: %w", err)
	}

	latest, err := uc.runRepo.LastByJob(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest job runs: %w", err)
	}

	return &ListRunsOutput{
		Runs:   runs,
		Latest: latest,
	}, nil
}
