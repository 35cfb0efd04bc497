// internal/exchange/order.go
package exchange

import (
	"math"
	"time"

	"usdt-exchange-bot/internal/types"

	"github.com/jaevor/go-nanoid"
)

// OrderBuilder строит заявку из распознанной суммы и котировки.
// Детерминирован по входам, сам никуда не ходит
type OrderBuilder struct {
	newSuffix func() string
	now       func() time.Time
}

// NewOrderBuilder создает новый билдер заявок
func NewOrderBuilder() (*OrderBuilder, error) {
	suffix, err := nanoid.Standard(8)
	if err != nil {
		return nil, err
	}
	return &OrderBuilder{
		newSuffix: suffix,
		now:       time.Now,
	}, nil
}

// Build досчитывает недостающую сторону сделки по курсу направления и
// округляет расчётную сторону: при покупке клиент получает целое число USDT,
// при продаже - целое число рублей. Вторая сторона остаётся точной
func (b *OrderBuilder) Build(dir types.Direction, amount types.ParsedAmount, quote types.RateQuote, rawInput string) types.Order {
	rate := quote.Side(dir)

	var fiat, asset float64
	if amount.Unit == types.UnitFiat {
		fiat = amount.Value
		asset = fiat / rate
	} else {
		asset = amount.Value
		fiat = asset * rate
	}

	switch dir {
	case types.DirectionBuy:
		asset = math.Round(asset)
	case types.DirectionSell:
		fiat = math.Round(fiat)
	}

	now := b.now()

	return types.Order{
		ID:          now.Format("20060102150405") + "-" + b.newSuffix(),
		Direction:   dir,
		RawInput:    rawInput,
		FiatAmount:  fiat,
		AssetAmount: asset,
		Rate:        rate,
		CreatedAt:   now,
	}
}
