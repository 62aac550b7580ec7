package recurring

import (
	"context"
	"fmt"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/entity"
)

// ListRecurringInput represents the input for listing templates.
type ListRecurringInput struct {
	ActorID string
	IsAdmin bool
}

// ListRecurringOutput represents the visible templates.
type ListRecurringOutput struct {
	Recurring []*entity.RecurringExpense
}

// ListRecurringUseCase handles template listing. Admins see every template.
type ListRecurringUseCase struct {
	recurringRepo adapter.RecurringExpenseRepository
}

// NewListRecurringUseCase creates a new ListRecurringUseCase instance.
func NewListRecurringUseCase(recurringRepo adapter.RecurringExpenseRepository) *ListRecurringUseCase {
	return &ListRecurringUseCase{
		recurringRepo: recurringRepo,
	}
}

// Execute lists templates visible to the actor.
func (uc *ListRecurringUseCase) Execute(ctx context.Context, input ListRecurringInput) (*ListRecurringOutput, error) {
	var userID *string
	if !input.IsAdmin {
		actor := input.ActorID
		userID = &actor
	}

	items, err := uc.recurringRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring expenses: %w", err)
	}

	return &ListRecurringOutput{
		Recurring: items,
	}, nil
}
