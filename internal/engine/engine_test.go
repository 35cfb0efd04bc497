package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"usdt-exchange-bot/internal/config"
	"usdt-exchange-bot/internal/exchange"
	"usdt-exchange-bot/internal/metrics"
	"usdt-exchange-bot/internal/session"
	"usdt-exchange-bot/internal/texts"
	"usdt-exchange-bot/internal/types"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuotes struct {
	quote types.RateQuote
	err   error
}

func (f *fakeQuotes) GetQuote(ctx context.Context) (types.RateQuote, error) {
	return f.quote, f.err
}

type sentMessage struct {
	chatID int64
	text   string
	menu   bool
}

type fakeResponder struct {
	sent []sentMessage
}

func (f *fakeResponder) SendMessage(chatID int64, text string) error {
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func (f *fakeResponder) SendMessageWithMenu(chatID int64, text string) error {
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text, menu: true})
	return nil
}

func (f *fakeResponder) last() sentMessage {
	return f.sent[len(f.sent)-1]
}

type fakeNotifier struct {
	orders []types.Order
	users  []types.UserRef
	err    error
}

func (f *fakeNotifier) Notify(ctx context.Context, order *types.Order, from types.UserRef) error {
	f.orders = append(f.orders, *order)
	f.users = append(f.users, from)
	return f.err
}

func (f *fakeNotifier) Name() string { return "fake" }

type engineFixture struct {
	engine    *Engine
	quotes    *fakeQuotes
	responder *fakeResponder
	notifier  *fakeNotifier
	sessions  *session.MemoryStore
	user      types.UserRef
}

func newFixture(t *testing.T) *engineFixture {
	t.Helper()

	cfg := &config.Config{
		ButtonBuy:      "💸 Купить USDT",
		ButtonSell:     "💵 Продать USDT",
		ButtonShowRate: "📊 Курс покупки / продажи",
	}

	quotes := &fakeQuotes{quote: types.RateQuote{
		BuyToClient:    95.30,
		SellFromClient: 94.00,
		FetchedAt:      time.Now(),
	}}
	responder := &fakeResponder{}
	orderNotifier := &fakeNotifier{}
	sessions := session.NewMemoryStore(time.Hour)

	builder, err := exchange.NewOrderBuilder()
	require.NoError(t, err)

	m := metrics.NewBotMetrics(prometheus.NewRegistry())

	return &engineFixture{
		engine:    New(cfg, quotes, builder, sessions, orderNotifier, responder, m),
		quotes:    quotes,
		responder: responder,
		notifier:  orderNotifier,
		sessions:  sessions,
		user:      types.UserRef{ChatID: 42, Username: "ivan"},
	}
}

func (f *engineFixture) handle(t *testing.T, text string) {
	t.Helper()
	require.NoError(t, f.engine.HandleMessage(context.Background(), f.user, text))
}

func (f *engineFixture) sessionState(t *testing.T) *session.Session {
	t.Helper()
	sess, err := f.sessions.Get(context.Background(), f.user.ChatID)
	require.NoError(t, err)
	return sess
}

func TestStartGreetsAndClearsSession(t *testing.T) {
	f := newFixture(t)

	f.handle(t, "💸 Купить USDT")
	require.NotNil(t, f.sessionState(t))

	f.handle(t, "/start")

	assert.Nil(t, f.sessionState(t))
	last := f.responder.last()
	assert.Equal(t, texts.Start, last.text)
	assert.True(t, last.menu)
}

func TestBuyFullFlow(t *testing.T) {
	f := newFixture(t)

	f.handle(t, "💸 Купить USDT")

	sess := f.sessionState(t)
	require.NotNil(t, sess)
	assert.Equal(t, session.StateAwaitAmount, sess.State)
	assert.Equal(t, types.DirectionBuy, sess.Direction)
	assert.Contains(t, f.responder.last().text, "95.30")

	f.handle(t, "10000")

	sess = f.sessionState(t)
	require.NotNil(t, sess)
	assert.Equal(t, session.StateAwaitContact, sess.State)
	require.NotNil(t, sess.PendingOrder)
	assert.Equal(t, 10000.0, sess.PendingOrder.FiatAmount)
	assert.Equal(t, 105.0, sess.PendingOrder.AssetAmount)
	assert.Equal(t, texts.BuyAskContact, f.responder.last().text)

	f.handle(t, "  Иван Петров  ")

	require.Len(t, f.notifier.orders, 1)
	order := f.notifier.orders[0]
	assert.Equal(t, types.DirectionBuy, order.Direction)
	assert.Equal(t, 95.30, order.Rate)
	assert.Equal(t, 10000.0, order.FiatAmount)
	assert.Equal(t, 105.0, order.AssetAmount)
	assert.Equal(t, "Иван Петров", order.Contact)
	assert.Equal(t, "10000", order.RawInput)
	assert.NotEmpty(t, order.ID)

	assert.Nil(t, f.sessionState(t))
	last := f.responder.last()
	assert.Equal(t, texts.BuyFinish, last.text)
	assert.True(t, last.menu)
}

func TestSellFlowRoundsFiat(t *testing.T) {
	f := newFixture(t)

	f.handle(t, "💵 Продать USDT")
	f.handle(t, "10.5 USDT")
	f.handle(t, "Пётр Иванов")

	require.Len(t, f.notifier.orders, 1)
	order := f.notifier.orders[0]
	assert.Equal(t, types.DirectionSell, order.Direction)
	assert.Equal(t, 94.00, order.Rate)
	assert.Equal(t, 10.5, order.AssetAmount)
	assert.Equal(t, 987.0, order.FiatAmount)

	assert.Equal(t, texts.SellFinish, f.responder.last().text)
}

func TestBadAmountKeepsAwaitingAmount(t *testing.T) {
	f := newFixture(t)

	f.handle(t, "💸 Купить USDT")
	f.handle(t, "сто тыщ")

	sess := f.sessionState(t)
	require.NotNil(t, sess)
	assert.Equal(t, session.StateAwaitAmount, sess.State)
	assert.Equal(t, texts.BadAmount, f.responder.last().text)

	// после ошибки можно повторить ввод
	f.handle(t, "10000")
	sess = f.sessionState(t)
	require.NotNil(t, sess)
	assert.Equal(t, session.StateAwaitContact, sess.State)
}

func TestRateFailureOnButtonStaysIdle(t *testing.T) {
	f := newFixture(t)
	f.quotes.err = context.DeadlineExceeded

	f.handle(t, "💸 Купить USDT")

	assert.Nil(t, f.sessionState(t))
	assert.Equal(t, texts.RateUnavailable, f.responder.last().text)
}

func TestRateFailureOnAmountKeepsState(t *testing.T) {
	f := newFixture(t)

	f.handle(t, "💸 Купить USDT")

	f.quotes.err = context.DeadlineExceeded
	f.handle(t, "10000")

	sess := f.sessionState(t)
	require.NotNil(t, sess)
	assert.Equal(t, session.StateAwaitAmount, sess.State)
	assert.Equal(t, texts.RateUnavailable, f.responder.last().text)
}

func TestMenuButtonInterruptsDialog(t *testing.T) {
	f := newFixture(t)

	f.handle(t, "💸 Купить USDT")
	f.handle(t, "10000")

	// кнопка меню из середины диалога начинает новый сценарий
	f.handle(t, "💵 Продать USDT")

	sess := f.sessionState(t)
	require.NotNil(t, sess)
	assert.Equal(t, session.StateAwaitAmount, sess.State)
	assert.Equal(t, types.DirectionSell, sess.Direction)
	assert.Nil(t, sess.PendingOrder)
	assert.Empty(t, f.notifier.orders)
}

func TestIdleFreeTextIgnored(t *testing.T) {
	f := newFixture(t)

	f.handle(t, "привет")

	assert.Empty(t, f.responder.sent)
	assert.Nil(t, f.sessionState(t))
}

func TestShowRateSendsBothSides(t *testing.T) {
	f := newFixture(t)

	f.handle(t, "📊 Курс покупки / продажи")

	last := f.responder.last()
	assert.Contains(t, last.text, "95.30")
	assert.Contains(t, last.text, "94.00")
	assert.True(t, last.menu)
	assert.Nil(t, f.sessionState(t))
}

func TestNotifierFailureDoesNotBreakFlow(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = context.DeadlineExceeded

	f.handle(t, "💸 Купить USDT")
	f.handle(t, "10000")
	f.handle(t, "Иван Петров")

	// заявка для пользователя принята, несмотря на недоставку
	assert.Equal(t, texts.BuyFinish, f.responder.last().text)
	assert.Nil(t, f.sessionState(t))
}

func TestCorruptedContactStateResets(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.sessions.Put(context.Background(), &session.Session{
		ChatID: f.user.ChatID,
		State:  session.StateAwaitContact,
	}))

	f.handle(t, "Иван Петров")

	assert.Nil(t, f.sessionState(t))
	assert.Equal(t, texts.Start, f.responder.last().text)
	assert.Empty(t, f.notifier.orders)
}

func TestClassify(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		text string
		kind CommandKind
	}{
		{"/start", CmdStart},
		{"/start deep_link", CmdStart},
		{"💸 Купить USDT", CmdBuy},
		{"💵 Продать USDT", CmdSell},
		{"📊 Курс покупки / продажи", CmdShowRate},
		{"просто текст", CmdText},
		{strings.ToLower("💸 купить usdt"), CmdText}, // кнопки сравниваются дословно
	}

	for _, tc := range cases {
		assert.Equal(t, tc.kind, f.engine.classify(tc.text).Kind, tc.text)
	}
}
