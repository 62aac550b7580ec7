package expense

import (
	"context"
	"fmt"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/entity"
	"github.com/spendsync/backend/internal/domain/valueobject"
)

// ListExpensesInput represents the input for listing expenses.
type ListExpensesInput struct {
	ActorID string
	IsAdmin bool
	Month   *valueobject.Month // Optional
}

// ListExpensesOutput represents the listed expenses, newest first.
type ListExpensesOutput struct {
	Expenses []*entity.Expense
	Total    float64
}

// ListExpensesUseCase handles expense listing. Admins see every expense.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
	clock       adapter.Clock
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository, clock adapter.Clock) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo: expenseRepo,
		clock:       clock,
	}
}

// Execute lists expenses visible to the actor.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	var filter entity.ExpenseFilter
	if !input.IsAdmin {
		actor := input.ActorID
		filter.UserID = &actor
	}

	if input.Month != nil {
		loc := uc.clock.Now().Location()
		from := input.Month.Start(loc)
		to := input.Month.Next().Start(loc)
		filter.From = &from
		filter.To = &to
	}

	expenses, err := uc.expenseRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	var total float64
	for _, e := range expenses {
		total += e.Amount
	}

	return &ListExpensesOutput{
		Expenses: expenses,
		Total:    total,
	}, nil
}
