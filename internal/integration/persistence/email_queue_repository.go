package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/entity"
	domainerror "github.com/spendsync/backend/internal/domain/error"
	"github.com/spendsync/backend/internal/integration/persistence/model"
)

type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates the GORM-backed operator email outbox.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{db: db}
}

// Enqueue stores job unless its dedupe key is already queued. It reports
// whether a row was inserted.
func (r *emailQueueRepository) Enqueue(ctx context.Context, job *entity.EmailJob) (bool, error) {
	row, err := model.EmailQueueModelFromEntity(job)
	if err != nil {
		return false, domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, "encode email payload", err)
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "dedupe_key"}},
			DoNothing: true,
		}).
		Create(row)
	if result.Error != nil {
		return false, domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, "store email", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ClaimDue marks up to limit pending emails due at now as processing and
// returns them. On Postgres the selected rows are locked so concurrent
// workers skip each other's claims. SQLite has a single writer and needs no lock.
func (r *emailQueueRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	var claimed []*entity.EmailJob

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx
		if tx.Dialector.Name() == "postgres" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
		}

		var rows []model.EmailQueueModel
		err := query.
			Where("status = ? AND scheduled_at <= ?", entity.EmailStatusPending, now.UTC()).
			Order("scheduled_at ASC").
			Limit(limit).
			Find(&rows).Error
		if err != nil || len(rows) == 0 {
			return err
		}

		ids := make([]uuid.UUID, len(rows))
		for i := range rows {
			ids[i] = rows[i].ID
		}
		err = tx.Model(&model.EmailQueueModel{}).
			Where("id IN ? AND status = ?", ids, entity.EmailStatusPending).
			Updates(map[string]interface{}{
				"status":     entity.EmailStatusProcessing,
				"claimed_at": now.UTC(),
			}).Error
		if err != nil {
			return err
		}

		claimed = make([]*entity.EmailJob, len(rows))
		for i := range rows {
			claimed[i] = rows[i].ToEntity()
			claimed[i].Claim(now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// Save writes the delivery state of a claimed email back.
func (r *emailQueueRepository) Save(ctx context.Context, job *entity.EmailJob) error {
	row, err := model.EmailQueueModelFromEntity(job)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(row).Error
}

// ReleaseStale returns emails claimed before cutoff to pending.
func (r *emailQueueRepository) ReleaseStale(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.EmailQueueModel{}).
		Where("status = ? AND claimed_at < ?", entity.EmailStatusProcessing, cutoff.UTC()).
		Updates(map[string]interface{}{
			"status":     entity.EmailStatusPending,
			"claimed_at": nil,
		})
	return result.RowsAffected, result.Error
}

// PurgeFinished deletes sent and failed emails processed before cutoff.
func (r *emailQueueRepository) PurgeFinished(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status IN ? AND processed_at < ?",
			[]entity.EmailStatus{entity.EmailStatusSent, entity.EmailStatusFailed}, cutoff.UTC()).
		Delete(&model.EmailQueueModel{})
	return result.RowsAffected, result.Error
}
