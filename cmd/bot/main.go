package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/domain/history"
	"homework_status_bot/internal/infra/config"
	idb "homework_status_bot/internal/infra/database"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	infraTelegram "homework_status_bot/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

func main() {
	// The credential check runs exactly once, before anything else starts.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	mainLog := logger.Log.WithField("component", "main")
	mainLog.Infof("Configuration loaded. Endpoint: %s, PollInterval: %s, Environment: %s",
		cfg.Endpoint, cfg.PollInterval, cfg.Environment)

	// Notification history: PostgreSQL when configured, in-memory otherwise.
	var historyRepo history.Repository
	if cfg.DatabaseURL != "" {
		db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			mainLog.Fatalf("FATAL: Could not connect to database: %v", err)
		}
		defer db.Close()
		historyRepo = idb.NewPostgresHistoryRepository(db)
		mainLog.Info("Notification history stored in PostgreSQL.")
	} else {
		historyRepo = idb.NewMemoryHistoryRepository()
		mainLog.Info("DATABASE_URL is not set, notification history kept in memory.")
	}

	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := logger.Log.WithError(err)
			if c != nil && c.Sender() != nil {
				entry = entry.WithField("sender_id", c.Sender().ID)
			}
			entry.Error("telebot error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLog.Fatalf("FATAL: Could not create Telegram bot: %v", err)
	}

	apiClient := practicum.NewClient(cfg.Endpoint, cfg.PracticumToken, logger.Log.WithField("component", "practicum"))
	notifier := app.NewNotifier(
		infraTelegram.NewTelebotAdapter(bot),
		cfg.TelegramChatID,
		logger.Log.WithField("component", "notifier"),
	)
	poller := app.NewPoller(apiClient, notifier, historyRepo, logger.Log.WithField("component", "poller"), cfg.PollInterval)
	summaries := app.NewSummaryService(historyRepo, notifier, logger.Log.WithField("component", "summary"))

	summaryScheduler := scheduler.NewSummaryScheduler(summaries, logger.Log.WithField("component", "scheduler"), cfg.CronSpecDailySummary)
	summaryScheduler.Start()

	ctx, cancel := context.WithCancel(context.Background())
	infraTelegram.RegisterBotCommands(ctx, bot, cfg, poller, logger.Log.WithField("component", "telegram"))
	mainLog.Info("Bot command handlers registered.")

	go bot.Start()
	go poller.Run(ctx)
	mainLog.Info("Application setup complete. Bot and poller are running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	mainLog.Info("Shutting down application...")
	cancel()
	summaryScheduler.Stop()
	bot.Stop()
	mainLog.Info("Application shut down gracefully.")
}
