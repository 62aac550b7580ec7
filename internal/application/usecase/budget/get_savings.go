package budget

import (
	"context"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/valueobject"
)

// GetSavingsInput represents the input for the savings view.
type GetSavingsInput struct {
	ActorID      string
	IsAdmin      bool
	TargetUserID *string
}

// GetSavingsOutput represents the savings position of a user.
type GetSavingsOutput struct {
	UserID             string
	AccumulatedSavings float64
	RemainingThisMonth float64
	CurrentMonth       valueobject.Month
}

// GetSavingsUseCase handles the accumulated savings view.
type GetSavingsUseCase struct {
	loader *LedgerLoader
	clock  adapter.Clock
}

// NewGetSavingsUseCase creates a new GetSavingsUseCase instance.
func NewGetSavingsUseCase(loader *LedgerLoader, clock adapter.Clock) *GetSavingsUseCase {
	return &GetSavingsUseCase{
		loader: loader,
		clock:  clock,
	}
}

// Execute sums savings over closed months and the open month's remainder.
func (uc *GetSavingsUseCase) Execute(ctx context.Context, input GetSavingsInput) (*GetSavingsOutput, error) {
	userID, err := resolveTarget(input.ActorID, input.IsAdmin, input.TargetUserID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	ledger, err := uc.loader.LoadUser(ctx, now.Location(), userID)
	if err != nil {
		return nil, err
	}

	return &GetSavingsOutput{
		UserID:             userID,
		AccumulatedSavings: ledger.AccumulatedSavings(userID, now),
		RemainingThisMonth: ledger.RemainingThisMonth(userID, now),
		CurrentMonth:       valueobject.MonthOf(now),
	}, nil
}
