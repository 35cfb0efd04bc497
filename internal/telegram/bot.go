// internal/telegram/bot.go
package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"usdt-exchange-bot/internal/config"
	"usdt-exchange-bot/pkg/logger"
)

// Bot - клиент Telegram Bot API
type Bot struct {
	config     *config.Config
	httpClient *http.Client
	baseURL    string
}

// NewBot создает новый экземпляр Telegram бота
func NewBot(cfg *config.Config) *Bot {
	return &Bot{
		config:     cfg,
		httpClient: &http.Client{Timeout: 35 * time.Second},
		baseURL:    fmt.Sprintf("https://api.telegram.org/bot%s/", cfg.TelegramBotToken),
	}
}

// SendMessage отправляет текстовое сообщение в чат
func (b *Bot) SendMessage(chatID int64, text string) error {
	return b.sendTelegramRequest("sendMessage", sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
}

// SendMessageWithMenu отправляет сообщение и возвращает главное меню
func (b *Bot) SendMessageWithMenu(chatID int64, text string) error {
	return b.sendTelegramRequest("sendMessage", sendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   "HTML",
		ReplyMarkup: MainKeyboard(b.config),
	})
}

// sendTelegramRequest - общая функция для отправки запросов к Telegram API
func (b *Bot) sendTelegramRequest(method string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	resp, err := b.httpClient.Post(
		b.baseURL+method,
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var telegramResp struct {
		OK          bool   `json:"ok"`
		ErrorCode   int    `json:"error_code,omitempty"`
		Description string `json:"description,omitempty"`
	}

	if err := json.Unmarshal(body, &telegramResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if !telegramResp.OK {
		// Если ошибка 429, ждем указанное время и пробуем снова один раз
		if telegramResp.ErrorCode == 429 {
			retryAfter := 5 // по умолчанию 5 секунд
			var retryResp struct {
				Parameters struct {
					RetryAfter int `json:"retry_after"`
				} `json:"parameters"`
			}
			if json.Unmarshal(body, &retryResp) == nil && retryResp.Parameters.RetryAfter > 0 {
				retryAfter = retryResp.Parameters.RetryAfter
			}
			logger.Warn("⚠️ Telegram API лимит, ждем %d секунд", retryAfter)
			time.Sleep(time.Duration(retryAfter) * time.Second)
			return b.sendTelegramRequest(method, payload)
		}
		return fmt.Errorf("telegram API error %d: %s", telegramResp.ErrorCode, telegramResp.Description)
	}

	return nil
}
