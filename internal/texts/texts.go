// internal/texts/texts.go
package texts

import (
	"fmt"
	"strconv"
	"strings"
)

// Статичные тексты бота
const (
	Start = "👋 Добро пожаловать в обменник USDT!\n\n" +
		"💸 Покупка и продажа USDT за рубли по актуальному курсу.\n" +
		"Выберите действие в меню ниже ⬇️"

	RateUnavailable = "⚠️ Не удалось получить курс. Попробуйте чуть позже."

	BadAmount = "❗ Пожалуйста, введите корректную сумму, например " +
		"'100000', '100000 руб' или '150 USDT'."

	BuyAskContact = "📄 Отправьте ФИО для оформления заявки на покупку."

	SellAskContact = "📄 Отправьте ФИО для оформления заявки на продажу."

	BuyFinish = "✅ Заявка на покупку USDT принята!\n" +
		"Мы свяжемся с вами в ближайшее время."

	SellFinish = "✅ Заявка на продажу USDT принята!\n" +
		"Мы свяжемся с вами в ближайшее время."
)

// BuyAskAmount - приглашение ввести сумму при покупке
func BuyAskAmount(rate float64) string {
	return fmt.Sprintf(
		"💸 <b>Покупка USDT</b>\n\n"+
			"Курс: %.2f ₽ за 1 USDT\n\n"+
			"Введите сумму в рублях или в USDT (например '100000', '100000 руб' или '150 USDT').",
		rate,
	)
}

// SellAskAmount - приглашение ввести сумму при продаже
func SellAskAmount(rate float64) string {
	return fmt.Sprintf(
		"💵 <b>Продажа USDT</b>\n\n"+
			"Курс: %.2f ₽ за 1 USDT\n\n"+
			"Введите сумму в рублях или в USDT (например '50000', '50000 руб' или '200 USDT').",
		rate,
	)
}

// ShowRate - обе стороны курса
func ShowRate(buy, sell float64) string {
	return fmt.Sprintf(
		"📊 <b>Курс USDT/RUB</b>\n\n"+
			"🟢 Покупка USDT (когда вы покупаете у нас): %.2f ₽\n"+
			"🔵 Продажа USDT (когда вы продаёте нам): %.2f ₽",
		buy, sell,
	)
}

// AmountPreview - кросс-конверсия введённой суммы
func AmountPreview(asset, fiat float64) string {
	return fmt.Sprintf("💡 Это примерно %s USDT за %.2f ₽.", FormatAsset(asset), fiat)
}

// FormatAsset печатает объём USDT с точностью до 6 знаков, без хвостовых нулей
func FormatAsset(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
