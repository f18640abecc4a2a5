package config

import (
	"fmt"
	"os"
)

// Config holds the configuration for the application.
type Config struct {
	GeminiAPIKey string

	// Storage
	DatabasePath string

	// Telegram Config
	TelegramBotToken    string
	TelegramWebhookURL  string
	TelegramAllowUserID int64
	AdminTelegramID     int64

	// Cron expression for the daily task reminder
	ReminderCron string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		databasePath = "data/capillaire.db"
	}

	reminderCron := os.Getenv("REMINDER_CRON")
	if reminderCron == "" {
		reminderCron = "0 9 * * *" // every day at 09:00
	}

	// Telegram Config (Optional for CLI, required for Bot)
	telegramBotToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	telegramWebhookURL := os.Getenv("TELEGRAM_WEBHOOK_URL")

	var telegramAllowUserID int64
	if v := os.Getenv("TELEGRAM_ALLOW_USER_ID"); v != "" {
		fmt.Sscanf(v, "%d", &telegramAllowUserID)
	}

	var adminTelegramID int64
	if v := os.Getenv("ADMIN_TELEGRAM_ID"); v != "" {
		fmt.Sscanf(v, "%d", &adminTelegramID)
	}

	return &Config{
		GeminiAPIKey:        geminiAPIKey,
		DatabasePath:        databasePath,
		TelegramBotToken:    telegramBotToken,
		TelegramWebhookURL:  telegramWebhookURL,
		TelegramAllowUserID: telegramAllowUserID,
		AdminTelegramID:     adminTelegramID,
		ReminderCron:        reminderCron,
	}, nil
}
