// config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура конфигурации приложения
type Config struct {
	// Telegram
	TelegramBotToken string
	AdminChatID      int64

	// Источник курсов
	RapiraBaseURL  string
	TradingPair    string
	RequestTimeout time.Duration

	// Котировки
	ClientMargin float64       // наша наценка к bid/ask
	RateCacheTTL time.Duration // время жизни кеша курса

	// Сессии
	SessionTTL    time.Duration
	RedisAddr     string // если пусто - сессии держим в памяти
	RedisPassword string
	RedisDB       int

	// Кнопки главного меню (сравниваются дословно)
	ButtonBuy      string
	ButtonSell     string
	ButtonShowRate string

	// Logging
	LogLevel string
	LogFile  string

	// HTTP Server (метрики)
	HttpPort    string
	HttpEnabled bool
}

// LoadConfig загружает конфигурацию из .env файла
func LoadConfig(envPath string) (*Config, error) {
	// Загружаем .env файл
	if err := godotenv.Load(envPath); err != nil {
		log.Printf("Warning: Could not load %s file: %v", envPath, err)
	}

	config := &Config{
		// Telegram
		TelegramBotToken: getEnvString("BOT_TOKEN", ""),
		AdminChatID:      getEnvInt64("ADMIN_CHAT_ID", 0),

		// Источник курсов
		RapiraBaseURL:  getEnvString("RAPIRA_BASE_URL", "https://api.rapira.net"),
		TradingPair:    getEnvString("TRADING_PAIR", "USDT/RUB"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT", 10)) * time.Second,

		// Котировки
		ClientMargin: getEnvFloat("CLIENT_MARGIN", 0.30),
		RateCacheTTL: time.Duration(getEnvInt("RATE_CACHE_TTL", 60)) * time.Second,

		// Сессии
		SessionTTL:    time.Duration(getEnvInt("SESSION_TTL", 86400)) * time.Second,
		RedisAddr:     getEnvString("REDIS_ADDR", ""),
		RedisPassword: getEnvString("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		// Кнопки меню
		ButtonBuy:      getEnvString("BUTTON_BUY", "💸 Купить USDT"),
		ButtonSell:     getEnvString("BUTTON_SELL", "💵 Продать USDT"),
		ButtonShowRate: getEnvString("BUTTON_RATE", "📊 Курс покупки / продажи"),

		// Logging
		LogLevel: getEnvString("LOG_LEVEL", "info"),
		LogFile:  getEnvString("LOG_FILE", "logs/bot.log"),

		// HTTP Server
		HttpPort:    getEnvString("HTTP_PORT", "8080"),
		HttpEnabled: getEnvBool("HTTP_ENABLED", true),
	}

	return config, nil
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}

	if c.TradingPair == "" {
		return fmt.Errorf("trading pair is required")
	}

	if c.ClientMargin < 0 {
		return fmt.Errorf("client margin must not be negative")
	}

	if c.RateCacheTTL < time.Second {
		return fmt.Errorf("rate cache TTL must be at least 1 second")
	}

	if c.RequestTimeout < time.Second {
		return fmt.Errorf("request timeout must be at least 1 second")
	}

	if c.AdminChatID == 0 {
		log.Printf("Warning: ADMIN_CHAT_ID is not set, order notifications go to console")
	}

	return nil
}

// Вспомогательные функции для парсинга переменных окружения
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
