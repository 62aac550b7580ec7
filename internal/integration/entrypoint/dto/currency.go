package dto

import (
	"time"

	"github.com/spendsync/backend/internal/domain/entity"
)

// ExchangeRateResponse represents the display exchange rate.
type ExchangeRateResponse struct {
	Base      string    `json:"base"`
	Quote     string    `json:"quote"`
	Rate      float64   `json:"rate"`
	FetchedAt time.Time `json:"fetched_at"`
	Fallback  bool      `json:"fallback"`
}

// ToExchangeRateResponse converts an ExchangeRate to a DTO.
func ToExchangeRateResponse(r *entity.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		Base:      r.Base,
		Quote:     r.Quote,
		Rate:      r.Rate,
		FetchedAt: r.FetchedAt,
		Fallback:  r.Fallback,
	}
}
