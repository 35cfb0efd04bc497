// internal/notifier/console_notifier.go
package notifier

import (
	"context"

	"usdt-exchange-bot/internal/metrics"
	"usdt-exchange-bot/internal/types"
	"usdt-exchange-bot/pkg/logger"
)

// ConsoleNotifier пишет заявки в лог. Используется, когда админский чат
// не настроен, и в тестах
type ConsoleNotifier struct {
	metrics *metrics.BotMetrics
}

// NewConsoleNotifier создает консольный нотификатор
func NewConsoleNotifier(m *metrics.BotMetrics) *ConsoleNotifier {
	return &ConsoleNotifier{metrics: m}
}

// Notify пишет заявку в лог
func (c *ConsoleNotifier) Notify(ctx context.Context, order *types.Order, from types.UserRef) error {
	logger.Info("📋 %s", FormatOrder(order, from))
	c.metrics.RecordNotifySent()
	return nil
}

// Name возвращает имя
func (c *ConsoleNotifier) Name() string {
	return "console"
}
