package budget

import (
	"context"

	"github.com/spendsync/backend/internal/application/adapter"
)

// GetHistoryInput represents the input for the per-month budget history.
type GetHistoryInput struct {
	ActorID      string
	IsAdmin      bool
	TargetUserID *string
}

// GetHistoryOutput represents the per-month history, newest first.
type GetHistoryOutput struct {
	UserID string
	Months []Summary
}

// GetHistoryUseCase handles the budget history view.
type GetHistoryUseCase struct {
	loader *LedgerLoader
	clock  adapter.Clock
}

// NewGetHistoryUseCase creates a new GetHistoryUseCase instance.
func NewGetHistoryUseCase(loader *LedgerLoader, clock adapter.Clock) *GetHistoryUseCase {
	return &GetHistoryUseCase{
		loader: loader,
		clock:  clock,
	}
}

// Execute lists one summary per month with activity.
func (uc *GetHistoryUseCase) Execute(ctx context.Context, input GetHistoryInput) (*GetHistoryOutput, error) {
	userID, err := resolveTarget(input.ActorID, input.IsAdmin, input.TargetUserID)
	if err != nil {
		return nil, err
	}

	ledger, err := uc.loader.LoadUser(ctx, uc.clock.Now().Location(), userID)
	if err != nil {
		return nil, err
	}

	return &GetHistoryOutput{
		UserID: userID,
		Months: ledger.History(userID),
	}, nil
}
