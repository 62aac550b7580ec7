// Package recurring contains recurring expense use cases, including the
// daily generator.
package recurring

import (
	"context"
	"fmt"
	"math"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/entity"
	domainerror "github.com/spendsync/backend/internal/domain/error"
)

// CreateRecurringInput represents the input for a new recurring template.
type CreateRecurringInput struct {
	Amount     float64
	Category   string
	Title      string
	DayOfMonth int
	UserID     *string
	Username   *string
}

// CreateRecurringOutput represents the stored template.
type CreateRecurringOutput struct {
	Recurring *entity.RecurringExpense
}

// CreateRecurringUseCase handles recurring template creation.
type CreateRecurringUseCase struct {
	recurringRepo adapter.RecurringExpenseRepository
}

// NewCreateRecurringUseCase creates a new CreateRecurringUseCase instance.
func NewCreateRecurringUseCase(recurringRepo adapter.RecurringExpenseRepository) *CreateRecurringUseCase {
	return &CreateRecurringUseCase{
		recurringRepo: recurringRepo,
	}
}

// Execute validates and stores the template. The watermark starts empty.
func (uc *CreateRecurringUseCase) Execute(ctx context.Context, input CreateRecurringInput) (*CreateRecurringOutput, error) {
	if math.IsNaN(input.Amount) || math.IsInf(input.Amount, 0) || input.Amount <= 0 {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidRecurringAmount,
			"amount must be a number greater than zero",
			domainerror.ErrInvalidExpenseAmount,
		)
	}

	category, ok := entity.ParseCategory(input.Category)
	if !ok {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidRecurringCat,
			fmt.Sprintf("category must be one of %v", entity.Categories),
			domainerror.ErrInvalidCategory,
		)
	}

	if input.DayOfMonth < 1 || input.DayOfMonth > 31 {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidDayOfMonth,
			"day of month must be between 1 and 31",
			domainerror.ErrInvalidDayOfMonth,
		)
	}

	if input.Title == "" {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeMissingRecurringFields,
			"title is required",
			domainerror.ErrMissingRecurringTitle,
		)
	}

	recurring := entity.NewRecurringExpense(input.Amount, category, input.Title, input.DayOfMonth, input.UserID, input.Username)
	if err := uc.recurringRepo.Create(ctx, recurring); err != nil {
		return nil, fmt.Errorf("failed to create recurring expense: %w", err)
	}

	return &CreateRecurringOutput{
		Recurring: recurring,
	}, nil
}
