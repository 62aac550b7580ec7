// Package currency contains the display exchange rate use case.
package currency

import (
	"context"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/entity"
)

// GetRateOutput represents the output of the get rate use case.
type GetRateOutput struct {
	Rate *entity.ExchangeRate
}

// GetRateUseCase returns the rate between the base and display currencies.
type GetRateUseCase struct {
	provider adapter.ExchangeRateProvider
	base     string
	display  string
}

// NewGetRateUseCase creates a new GetRateUseCase instance.
func NewGetRateUseCase(provider adapter.ExchangeRateProvider, base, display string) *GetRateUseCase {
	return &GetRateUseCase{
		provider: provider,
		base:     base,
		display:  display,
	}
}

// Execute fetches the current base to display currency rate.
func (uc *GetRateUseCase) Execute(ctx context.Context) (*GetRateOutput, error) {
	rate, err := uc.provider.Rate(ctx, uc.base, uc.display)
	if err != nil {
		return nil, err
	}
	return &GetRateOutput{Rate: rate}, nil
}
