package budget

import (
	"context"
	"fmt"
	"sort"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/entity"
)

// ListMonthlyBudgetsInput represents the input for listing overrides.
type ListMonthlyBudgetsInput struct {
	ActorID      string
	IsAdmin      bool
	TargetUserID *string
}

// ListMonthlyBudgetsOutput represents the overrides, newest month first.
type ListMonthlyBudgetsOutput struct {
	UserID    string
	Overrides []*entity.MonthlyBudget
}

// ListMonthlyBudgetsUseCase handles listing monthly overrides.
type ListMonthlyBudgetsUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewListMonthlyBudgetsUseCase creates a new ListMonthlyBudgetsUseCase instance.
func NewListMonthlyBudgetsUseCase(budgetRepo adapter.BudgetRepository) *ListMonthlyBudgetsUseCase {
	return &ListMonthlyBudgetsUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute lists the user's overrides.
func (uc *ListMonthlyBudgetsUseCase) Execute(ctx context.Context, input ListMonthlyBudgetsInput) (*ListMonthlyBudgetsOutput, error) {
	userID, err := resolveTarget(input.ActorID, input.IsAdmin, input.TargetUserID)
	if err != nil {
		return nil, err
	}

	overrides, err := uc.budgetRepo.ListMonthlyBudgets(ctx, &userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly budgets: %w", err)
	}

	sort.Slice(overrides, func(i, j int) bool {
		return overrides[j].Month.Before(overrides[i].Month)
	})

	return &ListMonthlyBudgetsOutput{
		UserID:    userID,
		Overrides: overrides,
	}, nil
}
