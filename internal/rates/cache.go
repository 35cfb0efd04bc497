// internal/rates/cache.go
package rates

import (
	"context"
	"sync"
	"time"

	"usdt-exchange-bot/internal/metrics"
	"usdt-exchange-bot/internal/types"
)

// QuoteCache - сквозной кеш котировок с ограниченным временем жизни.
// Один экземпляр на процесс: курс не зависит от пользователя.
// Обновление синхронное - его оплачивает тот вызов, который промахнулся мимо кеша.
// Конкурентные промахи могут сходить к источнику параллельно, пишет последний
type QuoteCache struct {
	source  RateSource
	margin  float64
	ttl     time.Duration
	metrics *metrics.BotMetrics
	now     func() time.Time

	mu   sync.Mutex
	last *types.RateQuote
}

// NewQuoteCache создает новый кеш котировок
func NewQuoteCache(source RateSource, margin float64, ttl time.Duration, m *metrics.BotMetrics) *QuoteCache {
	return &QuoteCache{
		source:  source,
		margin:  margin,
		ttl:     ttl,
		metrics: m,
		now:     time.Now,
	}
}

// GetQuote возвращает кешированную котировку, пока она не устарела,
// иначе запрашивает источник. Ошибка обновления отдаётся вызывающему как есть:
// откат на устаревшее значение не делаем
func (c *QuoteCache) GetQuote(ctx context.Context) (types.RateQuote, error) {
	now := c.now()

	c.mu.Lock()
	if c.last != nil && now.Sub(c.last.FetchedAt) < c.ttl {
		quote := *c.last
		c.mu.Unlock()
		c.metrics.RecordQuoteCacheHit()
		return quote, nil
	}
	c.mu.Unlock()

	c.metrics.RecordQuoteCacheMiss()

	raw, err := c.source.FetchRate(ctx)
	if err != nil {
		c.metrics.RecordRateFetchError()
		return types.RateQuote{}, err
	}

	quote := BuildQuote(raw, c.margin, now)

	c.mu.Lock()
	c.last = &quote
	c.mu.Unlock()

	return quote, nil
}
