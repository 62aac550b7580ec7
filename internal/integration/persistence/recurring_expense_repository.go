package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/entity"
	domainerror "github.com/spendsync/backend/internal/domain/error"
	"github.com/spendsync/backend/internal/integration/persistence/model"
)

// recurringExpenseRepository implements the adapter.RecurringExpenseRepository interface.
type recurringExpenseRepository struct {
	db *gorm.DB
}

// NewRecurringExpenseRepository creates a new recurring expense repository instance.
func NewRecurringExpenseRepository(db *gorm.DB) adapter.RecurringExpenseRepository {
	return &recurringExpenseRepository{
		db: db,
	}
}

// Create stores a new recurring template.
func (r *recurringExpenseRepository) Create(ctx context.Context, recurring *entity.RecurringExpense) error {
	result := r.db.WithContext(ctx).Create(model.RecurringExpenseFromEntity(recurring))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a template by its ID.
func (r *recurringExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringExpense, error) {
	var recurringModel model.RecurringExpenseModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&recurringModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecurringNotFound
		}
		return nil, result.Error
	}
	return recurringModel.ToEntity(), nil
}

// List retrieves every template, or only the user's when userID is set.
func (r *recurringExpenseRepository) List(ctx context.Context, userID *string) ([]*entity.RecurringExpense, error) {
	query := r.db.WithContext(ctx).Model(&model.RecurringExpenseModel{})
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	return r.find(query.Order("day_of_month ASC, created_at ASC"))
}

// ListDueOn retrieves the templates whose day of month equals day.
func (r *recurringExpenseRepository) ListDueOn(ctx context.Context, day int) ([]*entity.RecurringExpense, error) {
	query := r.db.WithContext(ctx).
		Model(&model.RecurringExpenseModel{}).
		Where("day_of_month = ?", day).
		Order("created_at ASC")
	return r.find(query)
}

func (r *recurringExpenseRepository) find(query *gorm.DB) ([]*entity.RecurringExpense, error) {
	var recurringModels []model.RecurringExpenseModel
	if err := query.Find(&recurringModels).Error; err != nil {
		return nil, err
	}

	items := make([]*entity.RecurringExpense, len(recurringModels))
	for i, m := range recurringModels {
		items[i] = m.ToEntity()
	}
	return items, nil
}

// MarkGenerated sets the last generated day watermark.
func (r *recurringExpenseRepository) MarkGenerated(ctx context.Context, id uuid.UUID, dayKey string) error {
	result := r.db.WithContext(ctx).
		Model(&model.RecurringExpenseModel{}).
		Where("id = ?", id).
		Update("last_generated_date", dayKey)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRecurringNotFound
	}
	return nil
}

// Delete removes a template.
func (r *recurringExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.RecurringExpenseModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRecurringNotFound
	}
	return nil
}
