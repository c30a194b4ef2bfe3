package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// TelegramSink mirrors due reminders to a Telegram chat, with a button that
// opens the WhatsApp deep link. Sends are rate-limited so a burst of due
// reminders cannot trip Telegram's flood control.
type TelegramSink struct {
	api     *tgbotapi.BotAPI
	chatID  int64
	limiter *rate.Limiter
}

func NewTelegramSink(token string, chatID int64) (*TelegramSink, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram API: %w", err)
	}
	return &TelegramSink{
		api:     api,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Limit(1), 5),
	}, nil
}

func (s *TelegramSink) Name() string { return "telegram" }

func (s *TelegramSink) Deliver(ctx context.Context, n Notification) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	text := fmt.Sprintf("⏰ Reminder: %s\n\n%s", n.Reminder.ContactName, n.Reminder.Message)
	msg := tgbotapi.NewMessage(s.chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Open WhatsApp", n.Link),
		),
	)
	if _, err := s.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send Telegram notification: %w", err)
	}
	return nil
}
