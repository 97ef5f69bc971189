package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"freetrack/internal/pipeline"
)

// TelegramNotifier pushes step outcomes to a Telegram chat. It is an
// optional integration: a nil notifier (no token configured) drops every
// message, and delivery failures are logged, never propagated.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (t *TelegramNotifier) NotifyStepOutcome(role, clientName string, stage pipeline.Stage, status pipeline.Status) {
	if t == nil || t.bot == nil {
		return
	}
	var text string
	switch status {
	case pipeline.StatusValidated:
		text = fmt.Sprintf("✅ %s validated — %s @ %s", stage, role, clientName)
	case pipeline.StatusFailed:
		text = fmt.Sprintf("❌ %s failed — %s @ %s", stage, role, clientName)
	default:
		return
	}
	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		log.Printf("[tg][send] failed: %v", err)
	}
}
