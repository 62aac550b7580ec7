package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/entity"
	"github.com/spendsync/backend/internal/integration/persistence/model"
)

// jobRunRepository implements the adapter.JobRunRepository interface.
type jobRunRepository struct {
	db *gorm.DB
}

// NewJobRunRepository creates a new job run repository instance.
func NewJobRunRepository(db *gorm.DB) adapter.JobRunRepository {
	return &jobRunRepository{
		db: db,
	}
}

// Create stores a finished run.
func (r *jobRunRepository) Create(ctx context.Context, run *entity.JobRun) error {
	return r.db.WithContext(ctx).Create(model.JobRunFromEntity(run)).Error
}

// ListRecent retrieves the latest runs, newest first.
func (r *jobRunRepository) ListRecent(ctx context.Context, limit int) ([]*entity.JobRun, error) {
	var runModels []model.JobRunModel
	result := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runModels)
	if result.Error != nil {
		return nil, result.Error
	}

	runs := make([]*entity.JobRun, len(runModels))
	for i, m := range runModels {
		runs[i] = m.ToEntity()
	}
	return runs, nil
}

// LastByJob retrieves the latest run of each job.
func (r *jobRunRepository) LastByJob(ctx context.Context) (map[entity.JobName]*entity.JobRun, error) {
	latest := make(map[entity.JobName]*entity.JobRun)

	var names []string
	if err := r.db.WithContext(ctx).Model(&model.JobRunModel{}).Distinct().Pluck("job", &names).Error; err != nil {
		return nil, err
	}

	for _, name := range names {
		var runModel model.JobRunModel
		result := r.db.WithContext(ctx).
			Where("job = ?", name).
			Order("started_at DESC").
			Limit(1).
			Find(&runModel)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected > 0 {
			latest[entity.JobName(name)] = runModel.ToEntity()
		}
	}

	return latest, nil
}
