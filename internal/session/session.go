// internal/session/session.go
package session

import (
	"context"
	"time"

	"usdt-exchange-bot/internal/types"
)

// State - шаг диалога, на котором находится пользователь
type State string

const (
	StateIdle         State = "idle"
	StateAwaitAmount  State = "await_amount"
	StateAwaitContact State = "await_contact"
)

// Session - состояние одного диалога. Ключ - chat id пользователя.
// Изменяется только движком диалога, сообщения одного чата
// обрабатываются строго по очереди
type Session struct {
	ChatID       int64            `json:"chat_id"`
	State        State            `json:"state"`
	Direction    types.Direction  `json:"direction,omitempty"`
	AmountInput  string           `json:"amount_input,omitempty"`
	PendingOrder *types.Order     `json:"pending_order,omitempty"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// Store - хранилище сессий. Get возвращает nil без ошибки, если сессии нет
type Store interface {
	Get(ctx context.Context, chatID int64) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, chatID int64) error
}
