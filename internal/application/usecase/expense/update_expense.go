package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/entity"
	domainerror "github.com/spendsync/backend/internal/domain/error"
)

// UpdateExpenseInput represents the input for editing an expense.
// Nil fields are left unchanged.
type UpdateExpenseInput struct {
	ExpenseID  uuid.UUID
	ActorID    string
	IsAdmin    bool
	Amount     *float64
	Category   *string
	Title      *string
	Date       *time.Time
	ReceiptURL *string
}

// UpdateExpenseOutput represents the output of editing an expense.
type UpdateExpenseOutput struct {
	Expense *entity.Expense
}

// UpdateExpenseUseCase handles expense edits.
type UpdateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	clock       adapter.Clock
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(expenseRepo adapter.ExpenseRepository, clock adapter.Clock) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		expenseRepo: expenseRepo,
		clock:       clock,
	}
}

// Execute applies the changes after checking ownership.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	expense, err := findOwned(ctx, uc.expenseRepo, input.ExpenseID, input.ActorID, input.IsAdmin)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		expense.Amount = *input.Amount
	}

	if input.Category != nil {
		category, err := parseCategory(*input.Category)
		if err != nil {
			return nil, err
		}
		expense.Category = category
	}

	if input.Title != nil {
		expense.Title = *input.Title
		if expense.Title == "" {
			expense.Title = entity.DefaultExpenseTitle
		}
	}

	if input.Date != nil {
		expense.Date = *input.Date
	}

	if input.ReceiptURL != nil {
		expense.ReceiptURL = input.ReceiptURL
	}

	expense.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.expenseRepo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return &UpdateExpenseOutput{
		Expense: expense,
	}, nil
}

// findOwned loads an expense and checks that actorID may change it.
func findOwned(ctx context.Context, repo adapter.ExpenseRepository, id uuid.UUID, actorID string, isAdmin bool) (*entity.Expense, error) {
	expense, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpenseNotFound) {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeExpenseNotFound,
				"expense not found",
				domainerror.ErrExpenseNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}

	if !isAdmin && !expense.BelongsTo(actorID) {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeUnauthorizedExpenseAccess,
			"you can only change your own expenses",
			domainerror.ErrUnauthorizedExpenseAccess,
		)
	}

	return expense, nil
}
