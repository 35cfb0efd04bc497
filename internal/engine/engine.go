// internal/engine/engine.go
package engine

import (
	"context"
	"strings"

	"usdt-exchange-bot/internal/config"
	"usdt-exchange-bot/internal/exchange"
	"usdt-exchange-bot/internal/metrics"
	"usdt-exchange-bot/internal/notifier"
	"usdt-exchange-bot/internal/session"
	"usdt-exchange-bot/internal/texts"
	"usdt-exchange-bot/internal/types"
	"usdt-exchange-bot/pkg/logger"
)

// QuoteProvider отдает актуальную котировку (кеш поверх внешнего источника)
type QuoteProvider interface {
	GetQuote(ctx context.Context) (types.RateQuote, error)
}

// Responder отправляет ответы пользователю в чат
type Responder interface {
	SendMessage(chatID int64, text string) error
	SendMessageWithMenu(chatID int64, text string) error
}

// Engine - машина состояний диалога. Держит сценарий
// "спросить сумму -> посчитать по курсу -> спросить ФИО -> отдать заявку".
// Кнопки меню обрабатываются из любого состояния: сессия сначала очищается,
// потом выполняется действие кнопки, так пользователь всегда может выйти
// из застрявшего диалога
type Engine struct {
	cfg       *config.Config
	quotes    QuoteProvider
	builder   *exchange.OrderBuilder
	sessions  session.Store
	notifier  notifier.OrderNotifier
	responder Responder
	metrics   *metrics.BotMetrics
}

// New создает движок диалога
func New(
	cfg *config.Config,
	quotes QuoteProvider,
	builder *exchange.OrderBuilder,
	sessions session.Store,
	orderNotifier notifier.OrderNotifier,
	responder Responder,
	m *metrics.BotMetrics,
) *Engine {
	return &Engine{
		cfg:       cfg,
		quotes:    quotes,
		builder:   builder,
		sessions:  sessions,
		notifier:  orderNotifier,
		responder: responder,
		metrics:   m,
	}
}

// HandleMessage обрабатывает одно входящее сообщение пользователя.
// Сообщения одного чата приходят сюда строго по очереди
func (e *Engine) HandleMessage(ctx context.Context, from types.UserRef, text string) error {
	cmd := e.classify(text)

	switch cmd.Kind {
	case CmdStart:
		if err := e.sessions.Delete(ctx, from.ChatID); err != nil {
			return err
		}
		return e.responder.SendMessageWithMenu(from.ChatID, texts.Start)

	case CmdBuy:
		if err := e.sessions.Delete(ctx, from.ChatID); err != nil {
			return err
		}
		return e.startDeal(ctx, from, types.DirectionBuy)

	case CmdSell:
		if err := e.sessions.Delete(ctx, from.ChatID); err != nil {
			return err
		}
		return e.startDeal(ctx, from, types.DirectionSell)

	case CmdShowRate:
		if err := e.sessions.Delete(ctx, from.ChatID); err != nil {
			return err
		}
		return e.showRate(ctx, from)
	}

	// обычный текст - отдаем текущему шагу диалога
	sess, err := e.sessions.Get(ctx, from.ChatID)
	if err != nil {
		return err
	}
	if sess == nil || sess.State == session.StateIdle {
		// вне сценария свободный текст не обрабатываем
		logger.Debug("💤 Текст вне сценария от %s, игнорируем", from.Handle())
		return nil
	}

	switch sess.State {
	case session.StateAwaitAmount:
		return e.handleAmount(ctx, from, sess, text)
	case session.StateAwaitContact:
		return e.handleContact(ctx, from, sess, text)
	}

	return nil
}

// startDeal показывает курс направления и спрашивает сумму
func (e *Engine) startDeal(ctx context.Context, from types.UserRef, dir types.Direction) error {
	quote, err := e.quotes.GetQuote(ctx)
	if err != nil {
		logger.Warn("⚠️ Курс недоступен для %s: %v", from.Handle(), err)
		return e.responder.SendMessage(from.ChatID, texts.RateUnavailable)
	}

	ask := texts.BuyAskAmount(quote.Side(dir))
	if dir == types.DirectionSell {
		ask = texts.SellAskAmount(quote.Side(dir))
	}

	if err := e.responder.SendMessage(from.ChatID, ask); err != nil {
		return err
	}

	return e.sessions.Put(ctx, &session.Session{
		ChatID:    from.ChatID,
		State:     session.StateAwaitAmount,
		Direction: dir,
	})
}

// showRate показывает обе стороны курса, состояние не меняется
func (e *Engine) showRate(ctx context.Context, from types.UserRef) error {
	quote, err := e.quotes.GetQuote(ctx)
	if err != nil {
		logger.Warn("⚠️ Курс недоступен для %s: %v", from.Handle(), err)
		return e.responder.SendMessage(from.ChatID, texts.RateUnavailable)
	}

	return e.responder.SendMessageWithMenu(from.ChatID,
		texts.ShowRate(quote.BuyToClient, quote.SellFromClient))
}

// handleAmount разбирает сумму, строит каркас заявки по свежей котировке
// и переводит диалог на шаг ФИО. При ошибке разбора или курса пользователь
// остаётся на этом же шаге и может повторить ввод
func (e *Engine) handleAmount(ctx context.Context, from types.UserRef, sess *session.Session, text string) error {
	quote, err := e.quotes.GetQuote(ctx)
	if err != nil {
		logger.Warn("⚠️ Курс недоступен для %s: %v", from.Handle(), err)
		return e.responder.SendMessage(from.ChatID, texts.RateUnavailable)
	}

	parsed, err := exchange.ParseAmount(text)
	if err != nil {
		e.metrics.RecordAmountParseError()
		return e.responder.SendMessage(from.ChatID, texts.BadAmount)
	}

	order := e.builder.Build(sess.Direction, parsed, quote, text)

	preview := texts.AmountPreview(order.AssetAmount, order.FiatAmount)
	if err := e.responder.SendMessage(from.ChatID, preview); err != nil {
		return err
	}

	askContact := texts.BuyAskContact
	if sess.Direction == types.DirectionSell {
		askContact = texts.SellAskContact
	}
	if err := e.responder.SendMessage(from.ChatID, askContact); err != nil {
		return err
	}

	sess.State = session.StateAwaitContact
	sess.AmountInput = text
	sess.PendingOrder = &order
	return e.sessions.Put(ctx, sess)
}

// handleContact закрывает сделку: дописывает ФИО, отдает заявку нотификатору
// и возвращает диалог в начальное состояние. Недоставка уведомления
// не мешает пользователю - заявка для него принята
func (e *Engine) handleContact(ctx context.Context, from types.UserRef, sess *session.Session, text string) error {
	if sess.PendingOrder == nil {
		// повреждённая сессия, начинаем сценарий заново
		if err := e.sessions.Delete(ctx, from.ChatID); err != nil {
			return err
		}
		return e.responder.SendMessageWithMenu(from.ChatID, texts.Start)
	}

	order := *sess.PendingOrder
	order.Contact = strings.TrimSpace(text)

	// best-effort: ошибка уже залогирована и посчитана нотификатором
	_ = e.notifier.Notify(ctx, &order, from)

	e.metrics.RecordOrderCreated(string(order.Direction), order.FiatAmount, order.AssetAmount)
	logger.Order(order.ID, string(order.Direction), order.FiatAmount, order.AssetAmount, order.Rate)

	if err := e.sessions.Delete(ctx, from.ChatID); err != nil {
		return err
	}

	finish := texts.BuyFinish
	if order.Direction == types.DirectionSell {
		finish = texts.SellFinish
	}
	return e.responder.SendMessageWithMenu(from.ChatID, finish)
}
