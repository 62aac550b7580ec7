package budget

import (
	"context"
	"fmt"

	"github.com/spendsync/backend/internal/application/adapter"
	domainerror "github.com/spendsync/backend/internal/domain/error"
	"github.com/spendsync/backend/internal/domain/valueobject"
)

// SetMonthlyBudgetInput represents the input for a single-month override.
type SetMonthlyBudgetInput struct {
	ActorID      string
	IsAdmin      bool
	TargetUserID *string
	Month        string // YYYY-MM
	Amount       float64
}

// SetMonthlyBudgetOutput represents the stored override.
type SetMonthlyBudgetOutput struct {
	UserID string
	Month  valueobject.Month
	Amount float64
}

// SetMonthlyBudgetUseCase handles monthly budget overrides.
type SetMonthlyBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewSetMonthlyBudgetUseCase creates a new SetMonthlyBudgetUseCase instance.
func NewSetMonthlyBudgetUseCase(budgetRepo adapter.BudgetRepository) *SetMonthlyBudgetUseCase {
	return &SetMonthlyBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute upserts the override for (user, month).
func (uc *SetMonthlyBudgetUseCase) Execute(ctx context.Context, input SetMonthlyBudgetInput) (*SetMonthlyBudgetOutput, error) {
	month, err := valueobject.ParseMonth(input.Month)
	if err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidMonth,
			"month must be in YYYY-MM format",
			domainerror.ErrInvalidMonth,
		)
	}

	if err := validateBudgetAmount(input.Amount); err != nil {
		return nil, err
	}

	userID, err := resolveTarget(input.ActorID, input.IsAdmin, input.TargetUserID)
	if err != nil {
		return nil, err
	}

	if err := uc.budgetRepo.UpsertMonthlyBudget(ctx, userID, month, input.Amount); err != nil {
		return nil, fmt.Errorf("failed to set monthly budget: %w", err)
	}

	return &SetMonthlyBudgetOutput{
		UserID: userID,
		Month:  month,
		Amount: input.Amount,
	}, nil
}
