//go:build integration

package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

// RateAPI serves GET /latest in the shape of the exchange rate provider.
type RateAPI struct {
	mu       sync.Mutex
	server   *httptest.Server
	rates    map[string]float64
	status   int
	requests int
}

func NewRateAPI() *RateAPI {
	a := &RateAPI{rates: map[string]float64{}, status: http.StatusOK}
	a.server = httptest.NewServer(http.HandlerFunc(a.serve))
	return a
}

func (a *RateAPI) serve(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests++

	if r.URL.Path != "/latest" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if a.status != http.StatusOK {
		w.WriteHeader(a.status)
		return
	}

	quote := r.URL.Query().Get("to")
	body := map[string]any{
		"base":  r.URL.Query().Get("from"),
		"rates": map[string]float64{},
	}
	if rate, ok := a.rates[quote]; ok {
		body["rates"] = map[string]float64{quote: rate}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func (a *RateAPI) GetUrl() string {
	return a.server.URL
}

func (a *RateAPI) SetRate(quote string, rate float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rates[quote] = rate
	a.status = http.StatusOK
}

// SetStatus makes every request answer with status.
func (a *RateAPI) SetStatus(status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = status
}

func (a *RateAPI) Requests() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.requests
}

func (a *RateAPI) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rates = map[string]float64{}
	a.status = http.StatusOK
	a.requests = 0
}

func (a *RateAPI) Close() {
	a.server.Close()
}
