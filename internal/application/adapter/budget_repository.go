// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/spendsync/backend/internal/domain/entity"
	"github.com/spendsync/backend/internal/domain/valueobject"
)

// BudgetRepository defines the interface for budget records and monthly
// overrides. Every write is a single atomic upsert keyed by the natural key.
type BudgetRepository interface {
	// List retrieves every budget record.
	List(ctx context.Context) ([]*entity.BudgetRecord, error)

	// FindByUserID retrieves the budget record of a user.
	FindByUserID(ctx context.Context, userID string) (*entity.BudgetRecord, error)

	// Upsert sets the default budget amount and username, keeping alert state.
	Upsert(ctx context.Context, userID, username string, amount float64) error

	// EnsureExists creates a zero-amount record when the user has none.
	EnsureExists(ctx context.Context, userID, username string) error

	// UpsertAlertState stores the alert watermark for a user.
	UpsertAlertState(ctx context.Context, userID string, level entity.AlertLevel, month valueobject.Month) error

	// ListMonthlyBudgets retrieves overrides, all users when userID is nil.
	ListMonthlyBudgets(ctx context.Context, userID *string) ([]*entity.MonthlyBudget, error)

	// UpsertMonthlyBudget sets the override for (userID, month).
	UpsertMonthlyBudget(ctx context.Context, userID string, month valueobject.Month, amount float64) error
}
