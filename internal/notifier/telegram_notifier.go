// internal/notifier/telegram_notifier.go
package notifier

import (
	"context"

	"usdt-exchange-bot/internal/metrics"
	"usdt-exchange-bot/internal/telegram"
	"usdt-exchange-bot/internal/types"
	"usdt-exchange-bot/pkg/logger"

	"github.com/google/uuid"
)

// TelegramNotifier отправляет заявки в админский чат
type TelegramNotifier struct {
	bot         *telegram.Bot
	adminChatID int64
	metrics     *metrics.BotMetrics
}

// NewTelegramNotifier создает Telegram нотификатор
func NewTelegramNotifier(bot *telegram.Bot, adminChatID int64, m *metrics.BotMetrics) *TelegramNotifier {
	return &TelegramNotifier{
		bot:         bot,
		adminChatID: adminChatID,
		metrics:     m,
	}
}

// Notify отправляет заявку админу. Ошибка доставки логируется с delivery id,
// чтобы пропажи уведомлений были видны оператору
func (t *TelegramNotifier) Notify(ctx context.Context, order *types.Order, from types.UserRef) error {
	deliveryID := uuid.NewString()

	if err := t.bot.SendMessage(t.adminChatID, FormatOrder(order, from)); err != nil {
		t.metrics.RecordNotifyFailure()
		logger.Warn("⚠️ Уведомление о заявке %s не доставлено (delivery %s): %v",
			order.ID, deliveryID, err)
		return err
	}

	t.metrics.RecordNotifySent()
	logger.Debug("📨 Уведомление о заявке %s доставлено (delivery %s)", order.ID, deliveryID)
	return nil
}

// Name возвращает имя
func (t *TelegramNotifier) Name() string {
	return "telegram"
}
