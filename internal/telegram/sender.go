package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ReminderSender pushes reminder messages to a fixed chat. It is built
// before the bot so the notification service can be wired into the app.
type ReminderSender struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewReminderSender creates a sender targeting the given chat.
func NewReminderSender(api *tgbotapi.BotAPI, chatID int64) *ReminderSender {
	return &ReminderSender{api: api, chatID: chatID}
}

// SendReminder implements notify.Sender.
func (r *ReminderSender) SendReminder(text string) error {
	if r.chatID == 0 {
		return fmt.Errorf("no reminder chat configured")
	}
	if _, err := r.api.Send(tgbotapi.NewMessage(r.chatID, text)); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}
