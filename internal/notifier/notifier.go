// internal/notifier/notifier.go
package notifier

import (
	"context"
	"fmt"

	"usdt-exchange-bot/internal/texts"
	"usdt-exchange-bot/internal/types"
)

// OrderNotifier - получатель готовых заявок. Доставка best-effort:
// неудача логируется и считается в метриках, но не прерывает диалог
type OrderNotifier interface {
	Notify(ctx context.Context, order *types.Order, from types.UserRef) error
	Name() string
}

// FormatOrder собирает текст уведомления о заявке для администратора
func FormatOrder(order *types.Order, from types.UserRef) string {
	action := "ПОКУПКУ"
	if order.Direction == types.DirectionSell {
		action = "ПРОДАЖУ"
	}

	return fmt.Sprintf(
		"🆕 Новая заявка #%s на %s USDT\n\n"+
			"👤 Пользователь: %s (id: %d)\n"+
			"💬 Ввод: %s\n"+
			"💵 Сумма: %.2f ₽\n"+
			"💰 Объём: %s USDT\n"+
			"📈 Курс: %.2f\n"+
			"📄 ФИО: %s",
		order.ID, action,
		from.Handle(), from.ChatID,
		order.RawInput,
		order.FiatAmount,
		texts.FormatAsset(order.AssetAmount),
		order.Rate,
		order.Contact,
	)
}
