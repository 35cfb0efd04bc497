// cmd/bot/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"usdt-exchange-bot/internal/config"
	"usdt-exchange-bot/internal/engine"
	"usdt-exchange-bot/internal/exchange"
	"usdt-exchange-bot/internal/metrics"
	"usdt-exchange-bot/internal/notifier"
	"usdt-exchange-bot/internal/rates"
	"usdt-exchange-bot/internal/session"
	"usdt-exchange-bot/internal/telegram"
	"usdt-exchange-bot/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Reading config
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// Init logger
	if err := logger.InitGlobal(cfg.LogFile, cfg.LogLevel, false); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.GetLogger().Close()

	logger.Info("🔥 USDT EXCHANGE BOT запускается...")
	logger.Info("⚙️ Пара: %s, маржа: %.2f, TTL кеша курса: %s",
		cfg.TradingPair, cfg.ClientMargin, cfg.RateCacheTTL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Метрики
	botMetrics := metrics.NewBotMetrics(prometheus.DefaultRegisterer)

	// Источник курсов и кеш котировок
	rateClient := rates.NewRapiraClient(cfg.RapiraBaseURL, cfg.TradingPair, cfg.RequestTimeout)
	quoteCache := rates.NewQuoteCache(rateClient, cfg.ClientMargin, cfg.RateCacheTTL, botMetrics)

	// Билдер заявок
	orderBuilder, err := exchange.NewOrderBuilder()
	if err != nil {
		logger.GetLogger().Fatal("failed to init order builder: %v", err)
	}

	// Хранилище сессий: Redis, если настроен, иначе память процесса
	var sessions session.Store
	if cfg.RedisAddr != "" {
		redisStore, err := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SessionTTL)
		if err != nil {
			logger.GetLogger().Fatal("failed to init redis session store: %v", err)
		}
		defer redisStore.Close()
		sessions = redisStore
		logger.Info("✅ Сессии хранятся в Redis (%s)", cfg.RedisAddr)
	} else {
		memStore := session.NewMemoryStore(cfg.SessionTTL)
		memStore.StartJanitor(time.Minute)
		defer memStore.Stop()
		sessions = memStore
		logger.Info("✅ Сессии хранятся в памяти процесса")
	}

	// Telegram
	bot := telegram.NewBot(cfg)

	// Нотификатор заявок
	var orderNotifier notifier.OrderNotifier
	if cfg.AdminChatID != 0 {
		orderNotifier = notifier.NewTelegramNotifier(bot, cfg.AdminChatID, botMetrics)
	} else {
		orderNotifier = notifier.NewConsoleNotifier(botMetrics)
	}
	logger.Info("✅ Нотификатор заявок: %s", orderNotifier.Name())

	// Движок диалога
	conversation := engine.New(cfg, quoteCache, orderBuilder, sessions, orderNotifier, bot, botMetrics)

	// HTTP сервер метрик
	if cfg.HttpEnabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			logger.Info("📊 Метрики на :%s/metrics", cfg.HttpPort)
			if err := http.ListenAndServe(":"+cfg.HttpPort, mux); err != nil {
				logger.Error("❌ HTTP сервер метрик: %v", err)
			}
		}()
	}

	// Long polling до SIGINT/SIGTERM
	poller := telegram.NewPoller(bot, conversation)
	poller.Run(ctx)

	logger.Info("🛑 USDT EXCHANGE BOT остановлен")
}
