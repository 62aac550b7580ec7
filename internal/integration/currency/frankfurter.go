// Package currency provides the display exchange rate and money formatting.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainerror "github.com/spendsync/backend/internal/domain/error"
)

// RateFetcher loads a live rate from an upstream source.
type RateFetcher interface {
	Fetch(ctx context.Context, base, quote string) (float64, error)
}

// FrankfurterClient fetches rates from the frankfurter.app API.
type FrankfurterClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFrankfurterClient creates a client for baseURL (e.g. https://api.frankfurter.app).
func NewFrankfurterClient(baseURL string, timeout time.Duration) *FrankfurterClient {
	return &FrankfurterClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type latestResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Fetch returns how many quote units one base unit buys.
func (c *FrankfurterClient) Fetch(ctx context.Context, base, quote string) (float64, error) {
	query := url.Values{}
	query.Set("from", base)
	query.Set("to", quote)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/latest?"+query.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate request returned status %d", resp.StatusCode)
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode rate response: %w", err)
	}

	rate, ok := body.Rates[quote]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("%w: no %s rate in response", domainerror.ErrExchangeRateUnavailable, quote)
	}
	return rate, nil
}
