package budget

import (
	"context"

	"github.com/spendsync/backend/internal/application/adapter"
	domainerror "github.com/spendsync/backend/internal/domain/error"
	"github.com/spendsync/backend/internal/domain/valueobject"
)

// GetSummaryInput represents the input for a monthly budget summary.
type GetSummaryInput struct {
	ActorID      string
	IsAdmin      bool
	TargetUserID *string            // Optional, admins only
	Month        *valueobject.Month // Optional, defaults to the current month
}

// GetSummaryOutput represents the output of a monthly budget summary.
type GetSummaryOutput struct {
	UserID  string
	Summary Summary
}

// GetSummaryUseCase handles the monthly budget summary of one user.
type GetSummaryUseCase struct {
	loader *LedgerLoader
	clock  adapter.Clock
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(loader *LedgerLoader, clock adapter.Clock) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		loader: loader,
		clock:  clock,
	}
}

// Execute computes budget, spend, remaining and percentage.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	userID, err := resolveTarget(input.ActorID, input.IsAdmin, input.TargetUserID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	month := valueobject.MonthOf(now)
	if input.Month != nil {
		month = *input.Month
	}

	ledger, err := uc.loader.LoadUser(ctx, now.Location(), userID)
	if err != nil {
		return nil, err
	}

	return &GetSummaryOutput{
		UserID:  userID,
		Summary: ledger.Summary(userID, month),
	}, nil
}

// resolveTarget returns the user an operation acts on. Only admins may act
// on someone else.
func resolveTarget(actorID string, isAdmin bool, target *string) (string, error) {
	if target == nil || *target == "" || *target == actorID {
		if actorID == "" {
			return "", domainerror.NewBudgetError(
				domainerror.ErrCodeMissingBudgetFields,
				"user id is required",
				domainerror.ErrMissingUserID,
			)
		}
		return actorID, nil
	}
	if !isAdmin {
		return "", domainerror.NewBudgetError(
			domainerror.ErrCodeAdminRequired,
			"only admins can access another user's budget",
			domainerror.ErrAdminRequired,
		)
	}
	return *target, nil
}
