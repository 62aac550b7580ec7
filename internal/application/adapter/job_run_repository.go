// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/spendsync/backend/internal/domain/entity"
)

// JobRunRepository defines the interface for scheduler pass history.
type JobRunRepository interface {
	// Create stores a finished run.
	Create(ctx context.Context, run *entity.JobRun) error

	// ListRecent retrieves the latest runs, newest first.
	ListRecent(ctx context.Context, limit int) ([]*entity.JobRun, error)

	// LastByJob retrieves the latest run of each job.
	LastByJob(ctx context.Context) (map[entity.JobName]*entity.JobRun, error)
}
