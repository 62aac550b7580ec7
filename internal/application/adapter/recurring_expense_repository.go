// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/spendsync/backend/internal/domain/entity"
)

// RecurringExpenseRepository defines the interface for recurring template persistence.
type RecurringExpenseRepository interface {
	// Create stores a new recurring template.
	Create(ctx context.Context, recurring *entity.RecurringExpense) error

	// FindByID retrieves a template by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringExpense, error)

	// List retrieves every template, or only the user's when userID is set.
	List(ctx context.Context, userID *string) ([]*entity.RecurringExpense, error)

	// ListDueOn retrieves the templates whose day of month equals day.
	ListDueOn(ctx context.Context, day int) ([]*entity.RecurringExpense, error)

	// MarkGenerated sets the last generated day watermark (YYYY-MM-DD).
	MarkGenerated(ctx context.Context, id uuid.UUID, dayKey string) error

	// Delete removes a template.
	Delete(ctx context.Context, id uuid.UUID) error
}
