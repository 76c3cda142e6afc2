package telegram

import (
	"context"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterBotCommands registers the /start, /help and /status handlers.
// Commands are only honored in the configured chat; anything else is logged
// and ignored.
func RegisterBotCommands(
	ctx context.Context,
	b *telebot.Bot,
	cfg *config.AppConfig,
	poller *app.Poller,
	baseLogger *logrus.Entry,
) {
	fromConfiguredChat := func(c telebot.Context, logCtx *logrus.Entry) bool {
		if c.Chat() == nil || c.Chat().ID != cfg.TelegramChatID {
			logCtx.Warn("Command from an unknown chat ignored")
			return false
		}
		return true
	}

	b.Handle("/start", func(c telebot.Context) error {
		logCtx := baseLogger.WithFields(logrus.Fields{
			"command":   "/start",
			"sender_id": c.Sender().ID,
		})
		if !fromConfiguredChat(c, logCtx) {
			return nil
		}
		logCtx.Info("Processing /start command")
		return c.Send("Привет! Я слежу за статусом проверки твоих домашних работ и пришлю сообщение, как только он изменится. Используй /help для списка команд.")
	})

	b.Handle("/help", func(c telebot.Context) error {
		logCtx := baseLogger.WithFields(logrus.Fields{
			"command":   "/help",
			"sender_id": c.Sender().ID,
		})
		if !fromConfiguredChat(c, logCtx) {
			return nil
		}
		logCtx.Info("Processing /help command")
		return c.Send("Доступные команды:\n\n" +
			"`/status` - Проверить статус домашней работы прямо сейчас, не дожидаясь следующего цикла.\n\n" +
			"`/help` - Показать это справочное сообщение.",
			&telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})

	b.Handle("/status", func(c telebot.Context) error {
		logCtx := baseLogger.WithFields(logrus.Fields{
			"command":   "/status",
			"sender_id": c.Sender().ID,
		})
		if !fromConfiguredChat(c, logCtx) {
			return nil
		}
		logCtx.Info("Processing /status command, triggering an immediate poll")

		if err := c.Send("Проверяю статус домашней работы..."); err != nil {
			logCtx.WithError(err).Error("Failed to acknowledge /status command")
		}
		// The poll outcome arrives as a regular notification in this chat.
		poller.RunOnce(ctx)
		return nil
	})
}
