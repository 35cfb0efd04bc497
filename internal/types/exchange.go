// internal/types/exchange.go
package types

import (
	"fmt"
	"time"
)

// Direction - направление сделки с точки зрения клиента
type Direction string

const (
	DirectionBuy  Direction = "BUY"  // клиент покупает USDT у нас
	DirectionSell Direction = "SELL" // клиент продаёт USDT нам
)

// RawRate - сырые bid/ask от внешнего источника курсов
type RawRate struct {
	BidPrice float64
	AskPrice float64
}

// RateQuote - клиентские курсы после наценки
type RateQuote struct {
	BuyToClient    float64   // курс, когда клиент покупает USDT у нас
	SellFromClient float64   // курс, когда клиент продаёт USDT нам
	FetchedAt      time.Time
}

// Side возвращает курс для заданного направления сделки
func (q RateQuote) Side(dir Direction) float64 {
	if dir == DirectionSell {
		return q.SellFromClient
	}
	return q.BuyToClient
}

// AmountUnit - единица, в которой пользователь ввёл сумму
type AmountUnit int

const (
	UnitFiat  AmountUnit = iota // рубли
	UnitAsset                   // USDT
)

// ParsedAmount - результат разбора текстовой суммы
type ParsedAmount struct {
	Value float64
	Unit  AmountUnit
}

// Order - заявка на обмен. Создаётся один раз, далее не изменяется
type Order struct {
	ID          string
	Direction   Direction
	RawInput    string  // исходный текст пользователя
	FiatAmount  float64 // сумма в рублях
	AssetAmount float64 // сумма в USDT
	Rate        float64 // курс на момент построения заявки
	Contact     string  // ФИО из финального шага
	CreatedAt   time.Time
}

// UserRef - идентификация пользователя чата
type UserRef struct {
	ChatID    int64
	Username  string
	FirstName string
	LastName  string
}

// Handle возвращает @username, либо полное имя, если username не задан
func (u UserRef) Handle() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	if name == "" {
		name = fmt.Sprintf("id%d", u.ChatID)
	}
	return name
}
