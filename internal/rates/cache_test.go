package rates

import (
	"context"
	"testing"
	"time"

	"usdt-exchange-bot/internal/metrics"
	"usdt-exchange-bot/internal/types"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource отдаёт заранее заданный ответ и считает обращения
type fakeSource struct {
	raw   types.RawRate
	err   error
	calls int
}

func (f *fakeSource) FetchRate(ctx context.Context) (types.RawRate, error) {
	f.calls++
	return f.raw, f.err
}

func newTestCache(source RateSource, ttl time.Duration) *QuoteCache {
	m := metrics.NewBotMetrics(prometheus.NewRegistry())
	return NewQuoteCache(source, 0.30, ttl, m)
}

func TestBuildQuoteAppliesMargin(t *testing.T) {
	raw := types.RawRate{BidPrice: 94.30, AskPrice: 95.00}
	now := time.Now()

	quote := BuildQuote(raw, 0.30, now)

	assert.InDelta(t, 95.30, quote.BuyToClient, 1e-9)
	assert.InDelta(t, 94.00, quote.SellFromClient, 1e-9)
	assert.Equal(t, now, quote.FetchedAt)
}

func TestGetQuoteServesFromCacheWithinTTL(t *testing.T) {
	source := &fakeSource{raw: types.RawRate{BidPrice: 94.30, AskPrice: 95.00}}
	cache := newTestCache(source, time.Minute)

	base := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return base }

	first, err := cache.GetQuote(context.Background())
	require.NoError(t, err)

	// источник ломается, но кеш ещё свежий
	source.err = ErrRateUnavailable
	cache.now = func() time.Time { return base.Add(30 * time.Second) }

	second, err := cache.GetQuote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.calls)
}

func TestGetQuoteRefreshesAfterTTL(t *testing.T) {
	source := &fakeSource{raw: types.RawRate{BidPrice: 94.30, AskPrice: 95.00}}
	cache := newTestCache(source, time.Minute)

	base := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return base }

	_, err := cache.GetQuote(context.Background())
	require.NoError(t, err)

	source.raw = types.RawRate{BidPrice: 96.00, AskPrice: 96.70}
	cache.now = func() time.Time { return base.Add(time.Minute) }

	quote, err := cache.GetQuote(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 97.00, quote.BuyToClient, 1e-9)
	assert.InDelta(t, 95.70, quote.SellFromClient, 1e-9)
	assert.Equal(t, 2, source.calls)
}

func TestGetQuoteNoStaleFallback(t *testing.T) {
	source := &fakeSource{raw: types.RawRate{BidPrice: 94.30, AskPrice: 95.00}}
	cache := newTestCache(source, time.Minute)

	base := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return base }

	_, err := cache.GetQuote(context.Background())
	require.NoError(t, err)

	// кеш протух, источник лежит - устаревший курс не подсовываем
	source.err = ErrRateUnavailable
	cache.now = func() time.Time { return base.Add(2 * time.Minute) }

	_, err = cache.GetQuote(context.Background())
	assert.ErrorIs(t, err, ErrRateUnavailable)
}

func TestGetQuoteFirstCallErrorPassesThrough(t *testing.T) {
	source := &fakeSource{err: ErrRateUnavailable}
	cache := newTestCache(source, time.Minute)

	_, err := cache.GetQuote(context.Background())
	assert.ErrorIs(t, err, ErrRateUnavailable)
}
