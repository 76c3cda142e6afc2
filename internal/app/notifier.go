package app

import (
	"fmt"

	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// MessageSendingError reports a notification that could not be delivered.
// It is recoverable: the loop logs it and moves on.
type MessageSendingError struct {
	Message string
	Err     error
}

func (e *MessageSendingError) Error() string {
	return fmt.Sprintf("failed to send message %q: %v", e.Message, e.Err)
}

func (e *MessageSendingError) Unwrap() error { return e.Err }

// MessageSender delivers a text notification to the configured destination.
type MessageSender interface {
	Send(text string) error
}

// Notifier delivers notifications to the single configured chat via the
// Telegram client.
type Notifier struct {
	client domainTelegram.Client
	chatID int64
	logger *logrus.Entry
}

func NewNotifier(client domainTelegram.Client, chatID int64, logger *logrus.Entry) *Notifier {
	return &Notifier{
		client: client,
		chatID: chatID,
		logger: logger,
	}
}

func (n *Notifier) Send(text string) error {
	if err := n.client.SendMessage(n.chatID, text, nil); err != nil {
		return &MessageSendingError{Message: text, Err: err}
	}
	n.logger.WithField("message", text).Info("Message sent")
	return nil
}
