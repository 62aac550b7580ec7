// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/entity"
	domainerror "github.com/spendsync/backend/internal/domain/error"
)

// CreateExpenseInput represents the input for logging an expense.
type CreateExpenseInput struct {
	Amount     float64
	Category   string
	Title      string
	Date       *time.Time // Optional, defaults to now
	UserID     *string
	Username   *string
	ReceiptURL *string
}

// CreateExpenseOutput represents the output of logging an expense.
type CreateExpenseOutput struct {
	Expense *entity.Expense
}

// CreateExpenseUseCase handles expense creation logic.
type CreateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	budgetRepo  adapter.BudgetRepository
	clock       adapter.Clock
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	budgetRepo adapter.BudgetRepository,
	clock adapter.Clock,
) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo: expenseRepo,
		budgetRepo:  budgetRepo,
		clock:       clock,
	}
}

// Execute validates and stores an expense.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	category, err := parseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	date := uc.clock.Now()
	if input.Date != nil {
		date = *input.Date
	}

	expense := entity.NewExpense(input.Amount, category, input.Title, date, input.UserID, input.Username, input.ReceiptURL)
	if err := uc.Store(ctx, expense); err != nil {
		return nil, err
	}

	return &CreateExpenseOutput{
		Expense: expense,
	}, nil
}

// Store persists an already built expense and makes sure its owner has a
// budget record.
func (uc *CreateExpenseUseCase) Store(ctx context.Context, expense *entity.Expense) error {
	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	// A missing record only hides the user from the alert pass until the
	// next expense retries it.
	if userID := expense.OwnerID(); userID != "" {
		if err := uc.budgetRepo.EnsureExists(ctx, userID, expense.OwnerName()); err != nil {
			slog.Warn("Failed to ensure budget record",
				"user_id", userID,
				"error", err,
			)
		}
	}

	return nil
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"amount must be a number greater than zero",
			domainerror.ErrInvalidExpenseAmount,
		)
	}
	return nil
}

func parseCategory(raw string) (entity.Category, error) {
	category, ok := entity.ParseCategory(raw)
	if !ok {
		return "", domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidCategory,
			fmt.Sprintf("category must be one of %v", entity.Categories),
			domainerror.ErrInvalidCategory,
		)
	}
	return category, nil
}
