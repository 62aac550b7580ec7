package recurring

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/spendsync/backend/internal/application/adapter"
	domainerror "github.com/spendsync/backend/internal/domain/error"
)

// DeleteRecurringInput represents the input for deleting a template.
type DeleteRecurringInput struct {
	RecurringID uuid.UUID
	ActorID     string
	IsAdmin     bool
}

// DeleteRecurringUseCase handles template deletion. Expenses already
// generated from the template are kept.
type DeleteRecurringUseCase struct {
	recurringRepo adapter.RecurringExpenseRepository
}

// NewDeleteRecurringUseCase creates a new DeleteRecurringUseCase instance.
func NewDeleteRecurringUseCase(recurringRepo adapter.RecurringExpenseRepository) *DeleteRecurringUseCase {
	return &DeleteRecurringUseCase{
		recurringRepo: recurringRepo,
	}
}

// Execute removes the template after checking ownership.
func (uc *DeleteRecurringUseCase) Execute(ctx context.Context, input DeleteRecurringInput) error {
	recurring, err := uc.recurringRepo.FindByID(ctx, input.RecurringID)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecurringNotFound) {
			return domainerror.NewRecurringError(
				domainerror.ErrCodeRecurringNotFound,
				"recurring expense not found",
				domainerror.ErrRecurringNotFound,
			)
		}
		return fmt.Errorf("failed to find recurring expense: %w", err)
	}

	if !input.IsAdmin && !recurring.BelongsTo(input.ActorID) {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeUnauthorizedRecurringAccess,
			"you can only delete your own recurring expenses",
			domainerror.ErrUnauthorizedRecurringAccess,
		)
	}

	if err := uc.recurringRepo.Delete(ctx, input.RecurringID); err != nil {
		return fmt.Errorf("failed to delete recurring expense: %w", err)
	}

	return nil
}
