package storage

import (
	"context"
	"fmt"
	"os"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	appconfig "github.com/dbshield/dbshield/internal/config"
)

// Telegram's bot API rejects document uploads above 50 MB.
const telegramFileLimit = 50 * 1024 * 1024

// TelegramStorage delivers kept artifacts, or a notification about them, to
// a Telegram chat.
type TelegramStorage struct {
	bot        *tgbotapi.BotAPI
	chatID     int64
	sendFile   bool
	notifyOnly bool
}

func NewTelegram(cfg *appconfig.UploadTargetConfig) (*TelegramStorage, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	chatID, err := strconv.ParseInt(cfg.ChatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse telegram chat_id %q: %w", cfg.ChatID, err)
	}

	return &TelegramStorage{
		bot:        bot,
		chatID:     chatID,
		sendFile:   cfg.SendFile,
		notifyOnly: cfg.NotifyOnly,
	}, nil
}

func (t *TelegramStorage) Upload(ctx context.Context, localPath string, remoteName string) error {
	info, err := os.Stat(localPath)
	if err != nil {
		return fmt.Errorf("stat artifact: %w", err)
	}

	sizeMB := float64(info.Size()) / (1024 * 1024)

	if t.notifyOnly || !t.sendFile || info.Size() > telegramFileLimit {
		text := fmt.Sprintf("Backup created\n\nFile: %s\nSize: %.2f MB\nTime: %s",
			remoteName, sizeMB, info.ModTime().Format("2006-01-02 15:04:05"))
		if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
			return fmt.Errorf("send telegram notification: %w", err)
		}
		return nil
	}

	doc := tgbotapi.NewDocument(t.chatID, tgbotapi.FilePath(localPath))
	doc.Caption = fmt.Sprintf("Backup: %s (%.2f MB)", remoteName, sizeMB)
	if _, err := t.bot.Send(doc); err != nil {
		return fmt.Errorf("send telegram document: %w", err)
	}
	return nil
}
