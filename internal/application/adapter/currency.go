// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/spendsync/backend/internal/domain/entity"
)

// ExchangeRateProvider returns the rate used to display base-currency amounts.
type ExchangeRateProvider interface {
	// Rate returns how many quote units one base unit buys.
	Rate(ctx context.Context, base, quote string) (*entity.ExchangeRate, error)
}

// MoneyFormatter renders base-currency amounts for people.
type MoneyFormatter interface {
	// Format converts amount into the display currency and formats it.
	Format(ctx context.Context, amount float64) string

	// DisplayCurrency returns the ISO code amounts are rendered in.
	DisplayCurrency() string
}
