package budget

import (
	"context"

	"github.com/spendsync/backend/internal/application/adapter"
	domainerror "github.com/spendsync/backend/internal/domain/error"
	"github.com/spendsync/backend/internal/domain/valueobject"
)

// GetGroupSummaryInput represents the input for the group budget view.
type GetGroupSummaryInput struct {
	IsAdmin bool
	Month   *valueobject.Month
}

// GetGroupSummaryOutput represents the combined budget of every member.
type GetGroupSummaryOutput struct {
	Summary Summary
	Members []Member
}

// GetGroupSummaryUseCase handles the admin-only group budget view.
type GetGroupSummaryUseCase struct {
	loader *LedgerLoader
	clock  adapter.Clock
}

// NewGetGroupSummaryUseCase creates a new GetGroupSummaryUseCase instance.
func NewGetGroupSummaryUseCase(loader *LedgerLoader, clock adapter.Clock) *GetGroupSummaryUseCase {
	return &GetGroupSummaryUseCase{
		loader: loader,
		clock:  clock,
	}
}

// Execute sums the effective budgets and spend of the whole group.
func (uc *GetGroupSummaryUseCase) Execute(ctx context.Context, input GetGroupSummaryInput) (*GetGroupSummaryOutput, error) {
	if !input.IsAdmin {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeAdminRequired,
			"only admins can view the group budget",
			domainerror.ErrAdminRequired,
		)
	}

	now := uc.clock.Now()
	month := valueobject.MonthOf(now)
	if input.Month != nil {
		month = *input.Month
	}

	ledger, err := uc.loader.LoadAll(ctx, now.Location())
	if err != nil {
		return nil, err
	}

	summary, members := ledger.GroupSummary(month)
	return &GetGroupSummaryOutput{
		Summary: summary,
		Members: members,
	}, nil
}
