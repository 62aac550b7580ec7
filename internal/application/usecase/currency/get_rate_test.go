package currency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendsync/backend/internal/domain/entity"
)

type stubProvider struct {
	rate *entity.ExchangeRate
	err  error
}

func (s stubProvider) Rate(_ context.Context, base, quote string) (*entity.ExchangeRate, error) {
	if s.err != nil {
		return nil, s.err
	}
	r := *s.rate
	r.Base, r.Quote = base, quote
	return &r, nil
}

func TestGetRateUseCase(t *testing.T) {
	fetched := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	uc := NewGetRateUseCase(stubProvider{rate: &entity.ExchangeRate{Rate: 16000, FetchedAt: fetched}}, "USD", "IDR")

	out, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "USD", out.Rate.Base)
	assert.Equal(t, "IDR", out.Rate.Quote)
	assert.Equal(t, 16000.0, out.Rate.Rate)

	_, err = NewGetRateUseCase(stubProvider{err: errors.New("down")}, "USD", "IDR").Execute(context.Background())
	assert.Error(t, err)
}
