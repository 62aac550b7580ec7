package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/entity"
	domainerror "github.com/spendsync/backend/internal/domain/error"
	"github.com/spendsync/backend/internal/domain/valueobject"
	"github.com/spendsync/backend/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
// Every write is a single INSERT ... ON CONFLICT statement.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// List retrieves every budget record.
func (r *budgetRepository) List(ctx context.Context) ([]*entity.BudgetRecord, error) {
	var budgetModels []model.BudgetModel
	if err := r.db.WithContext(ctx).Order("user_id ASC").Find(&budgetModels).Error; err != nil {
		return nil, err
	}

	records := make([]*entity.BudgetRecord, len(budgetModels))
	for i, m := range budgetModels {
		records[i] = m.ToEntity()
	}
	return records, nil
}

// FindByUserID retrieves the budget record of a user.
func (r *budgetRepository) FindByUserID(ctx context.Context, userID string) (*entity.BudgetRecord, error) {
	var budgetModel model.BudgetModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// Upsert sets the default budget amount. An empty username keeps the
// stored one.
func (r *budgetRepository) Upsert(ctx context.Context, userID, username string, amount float64) error {
	row := &model.BudgetModel{
		UserID:         userID,
		Username:       username,
		Amount:         amount,
		LastAlertLevel: string(entity.AlertLevelNone),
		UpdatedAt:      time.Now().UTC(),
	}

	columns := []string{"amount", "updated_at"}
	if username != "" {
		columns = append(columns, "username")
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(row).Error
}

// EnsureExists creates a zero-amount record when the user has none.
func (r *budgetRepository) EnsureExists(ctx context.Context, userID, username string) error {
	row := &model.BudgetModel{
		UserID:         userID,
		Username:       username,
		LastAlertLevel: string(entity.AlertLevelNone),
		UpdatedAt:      time.Now().UTC(),
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(row).Error
}

// UpsertAlertState stores the alert watermark for a user.
func (r *budgetRepository) UpsertAlertState(ctx context.Context, userID string, level entity.AlertLevel, month valueobject.Month) error {
	monthKey := month.String()
	row := &model.BudgetModel{
		UserID:         userID,
		LastAlertLevel: string(level),
		LastAlertMonth: &monthKey,
		UpdatedAt:      time.Now().UTC(),
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_alert_level", "last_alert_month", "updated_at"}),
	}).Create(row).Error
}

// ListMonthlyBudgets retrieves overrides, all users when userID is nil.
func (r *budgetRepository) ListMonthlyBudgets(ctx context.Context, userID *string) ([]*entity.MonthlyBudget, error) {
	query := r.db.WithContext(ctx).Model(&model.MonthlyBudgetModel{})
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var overrideModels []model.MonthlyBudgetModel
	if err := query.Order("user_id ASC, month ASC").Find(&overrideModels).Error; err != nil {
		return nil, err
	}

	overrides := make([]*entity.MonthlyBudget, 0, len(overrideModels))
	for _, m := range overrideModels {
		if o, ok := m.ToEntity(); ok {
			overrides = append(overrides, o)
		}
	}
	return overrides, nil
}

// UpsertMonthlyBudget sets the override for (userID, month).
func (r *budgetRepository) UpsertMonthlyBudget(ctx context.Context, userID string, month valueobject.Month, amount float64) error {
	row := &model.MonthlyBudgetModel{
		UserID:    userID,
		Month:     month.String(),
		Amount:    amount,
		UpdatedAt: time.Now().UTC(),
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(row).Error
}
