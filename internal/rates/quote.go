// internal/rates/quote.go
package rates

import (
	"time"

	"usdt-exchange-bot/internal/types"
)

// BuildQuote применяет наценку к сырым bid/ask и возвращает клиентские курсы.
// Логика:
//   - клиент отдаёт USDT нам -> мы ориентируемся на bidPrice минус маржа
//   - клиент покупает USDT у нас -> мы ориентируемся на askPrice плюс маржа
func BuildQuote(raw types.RawRate, margin float64, now time.Time) types.RateQuote {
	return types.RateQuote{
		BuyToClient:    raw.AskPrice + margin,
		SellFromClient: raw.BidPrice - margin,
		FetchedAt:      now,
	}
}
