package currency_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/spendsync/backend/internal/domain/error"
	"github.com/spendsync/backend/internal/integration/currency"
	"github.com/spendsync/backend/test/integration/mock/memory"
)

type stubFetcher struct {
	rate  float64
	err   error
	calls int
}

func (s *stubFetcher) Fetch(_ context.Context, _, _ string) (float64, error) {
	s.calls++
	return s.rate, s.err
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestFrankfurterClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("from"))
		if r.URL.Query().Get("to") == "EUR" {
			_, _ = w.Write([]byte(`{"base":"USD","rates":{}}`))
			return
		}
		_, _ = w.Write([]byte(`{"base":"USD","date":"2024-06-01","rates":{"IDR":16250.5}}`))
	}))
	defer server.Close()

	client := currency.NewFrankfurterClient(server.URL+"/", time.Second)

	rate, err := client.Fetch(context.Background(), "USD", "IDR")
	require.NoError(t, err)
	assert.Equal(t, 16250.5, rate)

	_, err = client.Fetch(context.Background(), "USD", "EUR")
	assert.Error(t, err)
}

func TestCachedProvider_Rate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

	t.Run("caches live rates", func(t *testing.T) {
		_, client := newRedis(t)
		fetcher := &stubFetcher{rate: 16000}
		p := currency.NewCachedProvider(fetcher, client, memory.NewClock(now), currency.ProviderConfig{TTL: time.Hour, FallbackRate: 15000})

		first, err := p.Rate(ctx, "usd", "idr")
		require.NoError(t, err)
		second, err := p.Rate(ctx, "USD", "IDR")
		require.NoError(t, err)

		assert.Equal(t, 16000.0, first.Rate)
		assert.Equal(t, 16000.0, second.Rate)
		assert.False(t, second.Fallback)
		assert.Equal(t, 1, fetcher.calls)
	})

	t.Run("uses the stale copy after expiry when upstream fails", func(t *testing.T) {
		mr, client := newRedis(t)
		fetcher := &stubFetcher{rate: 16100}
		p := currency.NewCachedProvider(fetcher, client, memory.NewClock(now), currency.ProviderConfig{TTL: time.Hour, FallbackRate: 15000})

		_, err := p.Rate(ctx, "USD", "IDR")
		require.NoError(t, err)

		mr.FastForward(2 * time.Hour)
		fetcher.err = errors.New("upstream down")

		rate, err := p.Rate(ctx, "USD", "IDR")
		require.NoError(t, err)
		assert.Equal(t, 16100.0, rate.Rate)
		assert.False(t, rate.Fallback)
		assert.Equal(t, 2, fetcher.calls)
	})

	t.Run("keeps rates in process without redis", func(t *testing.T) {
		clock := memory.NewClock(now)
		fetcher := &stubFetcher{rate: 16200}
		p := currency.NewCachedProvider(fetcher, nil, clock, currency.ProviderConfig{TTL: time.Hour, FallbackRate: 15000})
		formatter := currency.NewFormatter(p, "USD", "IDR")

		for i := 0; i < 30; i++ {
			assert.Equal(t, "Rp 162.000", formatter.Format(ctx, 10))
		}
		assert.Equal(t, 1, fetcher.calls)

		clock.Set(now.Add(59 * time.Minute))
		formatter.Format(ctx, 10)
		assert.Equal(t, 1, fetcher.calls)

		clock.Set(now.Add(61 * time.Minute))
		formatter.Format(ctx, 10)
		assert.Equal(t, 2, fetcher.calls)

		clock.Set(now.Add(3 * time.Hour))
		fetcher.err = errors.New("upstream down")

		rate, err := p.Rate(ctx, "USD", "IDR")
		require.NoError(t, err)
		assert.Equal(t, 16200.0, rate.Rate)
		assert.False(t, rate.Fallback)
		assert.Equal(t, now.Add(61*time.Minute), rate.FetchedAt)
		assert.Equal(t, 3, fetcher.calls)
	})

	t.Run("uses the in-process copy when redis lost the stale key", func(t *testing.T) {
		mr, client := newRedis(t)
		fetcher := &stubFetcher{rate: 16300}
		p := currency.NewCachedProvider(fetcher, client, memory.NewClock(now), currency.ProviderConfig{TTL: time.Hour, FallbackRate: 15000})

		_, err := p.Rate(ctx, "USD", "IDR")
		require.NoError(t, err)

		mr.FlushAll()
		fetcher.err = errors.New("upstream down")

		rate, err := p.Rate(ctx, "USD", "IDR")
		require.NoError(t, err)
		assert.Equal(t, 16300.0, rate.Rate)
		assert.False(t, rate.Fallback)
	})

	t.Run("falls back when nothing is cached", func(t *testing.T) {
		fetcher := &stubFetcher{err: errors.New("upstream down")}
		p := currency.NewCachedProvider(fetcher, nil, memory.NewClock(now), currency.ProviderConfig{TTL: time.Hour, FallbackRate: 16000})

		rate, err := p.Rate(ctx, "USD", "IDR")
		require.NoError(t, err)
		assert.Equal(t, 16000.0, rate.Rate)
		assert.True(t, rate.Fallback)
	})

	t.Run("errors without fallback", func(t *testing.T) {
		fetcher := &stubFetcher{err: errors.New("upstream down")}
		p := currency.NewCachedProvider(fetcher, nil, memory.NewClock(now), currency.ProviderConfig{TTL: time.Hour})

		_, err := p.Rate(ctx, "USD", "IDR")
		var currencyErr *domainerror.CurrencyError
		require.ErrorAs(t, err, &currencyErr)
		assert.Equal(t, domainerror.ErrCodeRateFetchFailed, currencyErr.Code)
		assert.ErrorIs(t, err, domainerror.ErrExchangeRateUnavailable)
	})

	t.Run("rejects an empty currency code", func(t *testing.T) {
		p := currency.NewCachedProvider(&stubFetcher{}, nil, memory.NewClock(now), currency.ProviderConfig{})

		_, err := p.Rate(ctx, "", "IDR")
		var currencyErr *domainerror.CurrencyError
		require.ErrorAs(t, err, &currencyErr)
		assert.Equal(t, domainerror.ErrCodeUnsupportedCurrency, currencyErr.Code)
	})

	t.Run("same currency needs no fetch", func(t *testing.T) {
		fetcher := &stubFetcher{}
		p := currency.NewCachedProvider(fetcher, nil, memory.NewClock(now), currency.ProviderConfig{})

		rate, err := p.Rate(ctx, "USD", "usd")
		require.NoError(t, err)
		assert.Equal(t, 1.0, rate.Rate)
		assert.Zero(t, fetcher.calls)
	})
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		value string
		code  string
		want  string
	}{
		{"1234.56", "USD", "$1,234.56"},
		{"0", "USD", "$0.00"},
		{"999", "USD", "$999.00"},
		{"-12.5", "USD", "-$12.50"},
		{"1000000", "IDR", "Rp 1.000.000"},
		{"16249.6", "IDR", "Rp 16.250"},
		{"100", "IDR", "Rp 100"},
		{"1234567.891", "EUR", "EUR 1,234,567.89"},
	}

	for _, tt := range tests {
		t.Run(tt.code+" "+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, currency.FormatAmount(decimal.RequireFromString(tt.value), tt.code))
		})
	}
}

func TestFormatter_Format(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	provider := currency.NewCachedProvider(&stubFetcher{rate: 16000}, nil, memory.NewClock(now), currency.ProviderConfig{})

	idr := currency.NewFormatter(provider, "USD", "IDR")
	assert.Equal(t, "IDR", idr.DisplayCurrency())
	assert.Equal(t, "Rp 1.600.000", idr.Format(ctx, 100))

	usd := currency.NewFormatter(provider, "USD", "USD")
	assert.Equal(t, "$1,200.00", usd.Format(ctx, 1200))

	broken := currency.NewFormatter(
		currency.NewCachedProvider(&stubFetcher{err: errors.New("down")}, nil, memory.NewClock(now), currency.ProviderConfig{}),
		"USD", "IDR",
	)
	assert.Equal(t, "$12.00", broken.Format(ctx, 12))
}
