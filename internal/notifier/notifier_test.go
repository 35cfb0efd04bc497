package notifier

import (
	"testing"

	"usdt-exchange-bot/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestFormatOrderBuy(t *testing.T) {
	order := &types.Order{
		ID:          "20260102150405-abc12345",
		Direction:   types.DirectionBuy,
		RawInput:    "10000",
		FiatAmount:  10000,
		AssetAmount: 105,
		Rate:        95.30,
		Contact:     "Иван Петров",
	}
	from := types.UserRef{ChatID: 42, Username: "ivan"}

	text := FormatOrder(order, from)

	assert.Contains(t, text, "#20260102150405-abc12345")
	assert.Contains(t, text, "ПОКУПКУ")
	assert.Contains(t, text, "@ivan")
	assert.Contains(t, text, "id: 42")
	assert.Contains(t, text, "10000.00 ₽")
	assert.Contains(t, text, "105 USDT")
	assert.Contains(t, text, "95.30")
	assert.Contains(t, text, "Иван Петров")
}

func TestFormatOrderSellWithoutUsername(t *testing.T) {
	order := &types.Order{
		ID:          "20260102150405-xyz",
		Direction:   types.DirectionSell,
		RawInput:    "10.5 USDT",
		FiatAmount:  987,
		AssetAmount: 10.5,
		Rate:        94.00,
		Contact:     "Пётр Иванов",
	}
	from := types.UserRef{ChatID: 77, FirstName: "Пётр", LastName: "Иванов"}

	text := FormatOrder(order, from)

	assert.Contains(t, text, "ПРОДАЖУ")
	assert.Contains(t, text, "Пётр Иванов")
	assert.Contains(t, text, "10.5 USDT")
	assert.NotContains(t, text, "@")
}
