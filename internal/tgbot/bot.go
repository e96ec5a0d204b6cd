package tgbot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/bigredeye/roster/api"
	"github.com/bigredeye/roster/internal/config"
	lf "github.com/bigredeye/roster/internal/logfield"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot posts a message to one chat for every recorded absence.
type Bot struct {
	bot  sender
	chat int64
	log  *zap.Logger
}

// NewBot returns nil when no token is configured.
func NewBot(conf *config.Config, log *zap.Logger) (*Bot, error) {
	if conf.Telegram.BotToken == "" {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(conf.Telegram.BotToken)
	if err != nil {
		return nil, err
	}
	log.Info("Authorized on telegram", zap.String("username", bot.Self.UserName))
	return &Bot{bot, conf.Telegram.ChatID, log}, nil
}

func formatAbsence(record *api.AttendanceRecord) string {
	name := record.StudentName
	if name == "" {
		name = fmt.Sprintf("student #%d", record.StudentID)
	}
	return fmt.Sprintf("%s was absent on %s", name, record.Date)
}

func (b *Bot) NotifyAbsence(ctx context.Context, record *api.AttendanceRecord) error {
	if b == nil {
		return nil
	}

	msg := tgbotapi.NewMessage(b.chat, formatAbsence(record))
	_, err := b.bot.Send(msg)
	if err != nil {
		return err
	}

	b.log.Debug("Sent absence notification", lf.AttendanceID(record.ID), lf.StudentID(record.StudentID))
	return nil
}
