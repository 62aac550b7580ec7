// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// ExchangeRate converts one unit of Base into Rate units of Quote.
type ExchangeRate struct {
	Base      string
	Quote     string
	Rate      float64
	FetchedAt time.Time
	Fallback  bool
}
