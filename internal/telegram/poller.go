// internal/telegram/poller.go
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"usdt-exchange-bot/internal/types"
	"usdt-exchange-bot/pkg/logger"
)

// UpdateHandler - получатель входящих сообщений (движок диалога)
type UpdateHandler interface {
	HandleMessage(ctx context.Context, from types.UserRef, text string) error
}

// Poller - опрашивает Telegram API на наличие обновлений (long polling)
type Poller struct {
	bot          *Bot
	handler      UpdateHandler
	httpClient   *http.Client
	lastUpdateID int64
}

// NewPoller создает новый обработчик обновлений
func NewPoller(bot *Bot, handler UpdateHandler) *Poller {
	return &Poller{
		bot:     bot,
		handler: handler,
		httpClient: &http.Client{
			// дольше long poll timeout, чтобы запрос не обрывался раньше ответа
			Timeout: 40 * time.Second,
		},
	}
}

// Run опрашивает обновления до отмены контекста
func (p *Poller) Run(ctx context.Context) {
	logger.Info("🔄 Начало polling обновлений...")

	for {
		select {
		case <-ctx.Done():
			logger.Info("🛑 Polling остановлен")
			return
		default:
		}

		updates, err := p.getUpdates(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("🛑 Polling остановлен")
				return
			}
			logger.Error("❌ Ошибка получения обновлений: %v", err)
			time.Sleep(time.Second)
			continue
		}

		for _, update := range updates {
			p.processUpdate(ctx, update)
			p.lastUpdateID = update.UpdateID + 1
		}
	}
}

// getUpdates получает обновления от Telegram API
func (p *Poller) getUpdates(ctx context.Context) ([]Update, error) {
	url := p.bot.baseURL + "getUpdates"

	params := map[string]interface{}{
		"offset":  p.lastUpdateID,
		"timeout": 30,
		"limit":   100,
	}

	jsonData, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get updates: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var response struct {
		OK     bool     `json:"ok"`
		Result []Update `json:"result"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if !response.OK {
		return nil, fmt.Errorf("telegram API error: %s", string(body))
	}

	return response.Result, nil
}

// isOldUpdate проверяет, старое ли обновление
func (p *Poller) isOldUpdate(update Update) bool {
	if update.Message == nil || update.Message.Date == 0 {
		return false // Не можем определить - обрабатываем
	}

	// Игнорируем сообщения старше 5 минут
	return time.Since(time.Unix(update.Message.Date, 0)) > 5*time.Minute
}

// processUpdate обрабатывает одно обновление
func (p *Poller) processUpdate(ctx context.Context, update Update) {
	if p.isOldUpdate(update) {
		logger.Debug("⏰ Пропускаем старое обновление ID %d", update.UpdateID)
		return
	}

	// любое обновление без текста игнорируем, отдельной ветки для них нет
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	msg := update.Message
	text := strings.TrimSpace(msg.Text)

	from := types.UserRef{ChatID: msg.Chat.ID}
	if msg.From != nil {
		from.Username = msg.From.Username
		from.FirstName = msg.From.FirstName
		from.LastName = msg.From.LastName
	}

	logger.Debug("💬 Сообщение от %s: '%s'", from.Handle(), text)

	if err := p.handler.HandleMessage(ctx, from, text); err != nil {
		logger.Error("❌ Ошибка обработки сообщения: %v", err)
	}
}
