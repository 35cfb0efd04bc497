package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BotMetrics содержит все метрики бота
type BotMetrics struct {
	// Заявки
	OrdersCreatedTotal      *prometheus.CounterVec
	OrdersCreatedFiatTotal  *prometheus.CounterVec
	OrdersCreatedAssetTotal *prometheus.CounterVec

	// Ошибки пользовательского ввода
	AmountParseErrorsTotal prometheus.Counter

	// Источник курсов
	RateFetchErrorsTotal  prometheus.Counter
	QuoteCacheHitsTotal   prometheus.Counter
	QuoteCacheMissesTotal prometheus.Counter

	// Уведомления администратору
	NotifySentTotal     prometheus.Counter
	NotifyFailuresTotal prometheus.Counter
}

// NewBotMetrics создает новый экземпляр метрик
func NewBotMetrics(reg prometheus.Registerer) *BotMetrics {
	factory := promauto.With(reg)

	return &BotMetrics{
		OrdersCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "Общее количество оформленных заявок",
			},
			[]string{"direction"},
		),

		OrdersCreatedFiatTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_created_fiat_total",
				Help: "Общая сумма заявок в рублях",
			},
			[]string{"direction"},
		),

		OrdersCreatedAssetTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_created_asset_total",
				Help: "Общий объём заявок в USDT",
			},
			[]string{"direction"},
		),

		AmountParseErrorsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "amount_parse_errors_total",
				Help: "Количество нераспознанных сумм от пользователей",
			},
		),

		RateFetchErrorsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_fetch_errors_total",
				Help: "Количество неудачных запросов курса",
			},
		),

		QuoteCacheHitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "quote_cache_hits_total",
				Help: "Количество котировок, отданных из кеша",
			},
		),

		QuoteCacheMissesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "quote_cache_misses_total",
				Help: "Количество обращений к внешнему источнику курсов",
			},
		),

		NotifySentTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "order_notify_sent_total",
				Help: "Количество доставленных уведомлений о заявках",
			},
		),

		NotifyFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "order_notify_failures_total",
				Help: "Количество недоставленных уведомлений о заявках",
			},
		),
	}
}

// RecordOrderCreated записывает оформленную заявку
func (m *BotMetrics) RecordOrderCreated(direction string, fiatAmount, assetAmount float64) {
	m.OrdersCreatedTotal.WithLabelValues(direction).Inc()
	m.OrdersCreatedFiatTotal.WithLabelValues(direction).Add(fiatAmount)
	m.OrdersCreatedAssetTotal.WithLabelValues(direction).Add(assetAmount)
}

// RecordAmountParseError записывает нераспознанную сумму
func (m *BotMetrics) RecordAmountParseError() {
	m.AmountParseErrorsTotal.Inc()
}

// RecordRateFetchError записывает неудачный запрос курса
func (m *BotMetrics) RecordRateFetchError() {
	m.RateFetchErrorsTotal.Inc()
}

// RecordQuoteCacheHit записывает попадание в кеш котировок
func (m *BotMetrics) RecordQuoteCacheHit() {
	m.QuoteCacheHitsTotal.Inc()
}

// RecordQuoteCacheMiss записывает обращение к внешнему источнику
func (m *BotMetrics) RecordQuoteCacheMiss() {
	m.QuoteCacheMissesTotal.Inc()
}

// RecordNotifySent записывает доставленное уведомление
func (m *BotMetrics) RecordNotifySent() {
	m.NotifySentTotal.Inc()
}

// RecordNotifyFailure записывает недоставленное уведомление
func (m *BotMetrics) RecordNotifyFailure() {
	m.NotifyFailuresTotal.Inc()
}
