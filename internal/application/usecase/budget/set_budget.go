package budget

import (
	"context"
	"fmt"
	"math"

	"github.com/spendsync/backend/internal/application/adapter"
	domainerror "github.com/spendsync/backend/internal/domain/error"
)

// SetBudgetInput represents the input for setting a default monthly budget.
type SetBudgetInput struct {
	ActorID        string
	ActorName      string
	IsAdmin        bool
	TargetUserID   *string // Optional, admins only
	TargetUsername *string
	Amount         float64
}

// SetBudgetOutput represents the output of setting a budget.
type SetBudgetOutput struct {
	UserID string
	Amount float64
}

// SetBudgetUseCase handles default budget updates.
type SetBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewSetBudgetUseCase creates a new SetBudgetUseCase instance.
func NewSetBudgetUseCase(budgetRepo adapter.BudgetRepository) *SetBudgetUseCase {
	return &SetBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute upserts the default budget. Alert state is left untouched.
func (uc *SetBudgetUseCase) Execute(ctx context.Context, input SetBudgetInput) (*SetBudgetOutput, error) {
	if err := validateBudgetAmount(input.Amount); err != nil {
		return nil, err
	}

	userID, err := resolveTarget(input.ActorID, input.IsAdmin, input.TargetUserID)
	if err != nil {
		return nil, err
	}

	username := input.ActorName
	if userID != input.ActorID {
		username = ""
		if input.TargetUsername != nil {
			username = *input.TargetUsername
		}
	}

	if err := uc.budgetRepo.Upsert(ctx, userID, username, input.Amount); err != nil {
		return nil, fmt.Errorf("failed to set budget: %w", err)
	}

	return &SetBudgetOutput{
		UserID: userID,
		Amount: input.Amount,
	}, nil
}

func validateBudgetAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"budget amount must be zero or greater",
			domainerror.ErrInvalidBudgetAmount,
		)
	}
	return nil
}
