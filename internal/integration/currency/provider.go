package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spendsync/backend/internal/application/adapter"
	"github.com/spendsync/backend/internal/domain/entity"
	domainerror "github.com/spendsync/backend/internal/domain/error"
)

// ProviderConfig holds the cache and fallback settings of a CachedProvider.
type ProviderConfig struct {
	TTL          time.Duration
	FallbackRate float64
}

const defaultRateTTL = time.Hour

// CachedProvider implements adapter.ExchangeRateProvider on top of a
// RateFetcher with a Redis cache. Every successful fetch is also kept
// without expiry as a stale copy for when the upstream is down.
//
// The last good rate per pair is held in process too. It serves as the
// fresh cache when there is no Redis client and as the stale copy when
// Redis has none.
type CachedProvider struct {
	fetcher RateFetcher
	cache   *redis.Client
	clock   adapter.Clock
	config  ProviderConfig

	mu       sync.Mutex
	lastGood map[string]cachedRate
}

// NewCachedProvider creates a provider. cache may be nil. A non-positive
// TTL means one hour.
func NewCachedProvider(fetcher RateFetcher, cache *redis.Client, clock adapter.Clock, config ProviderConfig) *CachedProvider {
	if config.TTL <= 0 {
		config.TTL = defaultRateTTL
	}
	return &CachedProvider{
		fetcher:  fetcher,
		cache:    cache,
		clock:    clock,
		config:   config,
		lastGood: make(map[string]cachedRate),
	}
}

type cachedRate struct {
	Rate      float64   `json:"rate"`
	FetchedAt time.Time `json:"fetched_at"`
}

func freshKey(base, quote string) string {
	return fmt.Sprintf("fx:rate:%s:%s", base, quote)
}

func staleKey(base, quote string) string {
	return fmt.Sprintf("fx:rate:%s:%s:stale", base, quote)
}

// Rate returns the base->quote rate: cached, live, stale, or the configured
// fallback, in that order.
func (p *CachedProvider) Rate(ctx context.Context, base, quote string) (*entity.ExchangeRate, error) {
	base = strings.ToUpper(base)
	quote = strings.ToUpper(quote)
	if base == "" || quote == "" {
		return nil, domainerror.NewCurrencyError(
			domainerror.ErrCodeUnsupportedCurrency,
			"currency code is required",
			domainerror.ErrUnsupportedCurrency,
		)
	}

	if base == quote {
		return &entity.ExchangeRate{Base: base, Quote: quote, Rate: 1, FetchedAt: p.clock.Now()}, nil
	}

	if p.cache == nil {
		if last, ok := p.last(freshKey(base, quote)); ok && p.clock.Now().Sub(last.FetchedAt) < p.config.TTL {
			return toEntity(base, quote, last, false), nil
		}
	} else if cached, ok := p.read(ctx, freshKey(base, quote)); ok {
		return toEntity(base, quote, cached, false), nil
	}

	rate, err := p.fetcher.Fetch(ctx, base, quote)
	if err == nil {
		fresh := cachedRate{Rate: rate, FetchedAt: p.clock.Now()}
		p.remember(freshKey(base, quote), fresh)
		p.write(ctx, freshKey(base, quote), fresh, p.config.TTL)
		p.write(ctx, staleKey(base, quote), fresh, 0)
		return toEntity(base, quote, fresh, false), nil
	}

	slog.Warn("Failed to fetch exchange rate", "base", base, "quote", quote, "error", err)

	if stale, ok := p.read(ctx, staleKey(base, quote)); ok {
		return toEntity(base, quote, stale, false), nil
	}
	if stale, ok := p.last(freshKey(base, quote)); ok {
		return toEntity(base, quote, stale, false), nil
	}

	if p.config.FallbackRate > 0 {
		slog.Warn("Using fallback exchange rate", "base", base, "quote", quote, "rate", p.config.FallbackRate)
		return &entity.ExchangeRate{
			Base:      base,
			Quote:     quote,
			Rate:      p.config.FallbackRate,
			FetchedAt: p.clock.Now(),
			Fallback:  true,
		}, nil
	}

	return nil, domainerror.NewCurrencyError(
		domainerror.ErrCodeRateFetchFailed,
		"exchange rate unavailable",
		errors.Join(domainerror.ErrExchangeRateUnavailable, err),
	)
}

func (p *CachedProvider) last(key string) (cachedRate, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	value, ok := p.lastGood[key]
	return value, ok
}

func (p *CachedProvider) remember(key string, value cachedRate) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastGood[key] = value
}

func (p *CachedProvider) read(ctx context.Context, key string) (cachedRate, bool) {
	if p.cache == nil {
		return cachedRate{}, false
	}

	raw, err := p.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("Failed to read cached exchange rate", "key", key, "error", err)
		}
		return cachedRate{}, false
	}

	var value cachedRate
	if err := json.Unmarshal(raw, &value); err != nil || value.Rate <= 0 {
		return cachedRate{}, false
	}
	return value, true
}

func (p *CachedProvider) write(ctx context.Context, key string, value cachedRate, ttl time.Duration) {
	if p.cache == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := p.cache.Set(ctx, key, raw, ttl).Err(); err != nil {
		slog.Warn("Failed to cache exchange rate", "key", key, "error", err)
	}
}

func toEntity(base, quote string, value cachedRate, fallback bool) *entity.ExchangeRate {
	return &entity.ExchangeRate{
		Base:      base,
		Quote:     quote,
		Rate:      value.Rate,
		FetchedAt: value.FetchedAt,
		Fallback:  fallback,
	}
}

var _ adapter.ExchangeRateProvider = (*CachedProvider)(nil)
