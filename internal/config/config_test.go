package config

import (
	"os"
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "gemini_key")
		t.Setenv("TELEGRAM_BOT_TOKEN", "bot_token")
		t.Setenv("TELEGRAM_ALLOW_USER_ID", "12345")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.GeminiAPIKey != "gemini_key" {
			t.Errorf("Expected GeminiAPIKey to be 'gemini_key', got '%s'", cfg.GeminiAPIKey)
		}
		if cfg.TelegramBotToken != "bot_token" {
			t.Errorf("Expected TelegramBotToken to be 'bot_token', got '%s'", cfg.TelegramBotToken)
		}
		if cfg.TelegramAllowUserID != 12345 {
			t.Errorf("Expected TelegramAllowUserID to be 12345, got %d", cfg.TelegramAllowUserID)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "gemini_key")
		os.Unsetenv("DATABASE_PATH")
		os.Unsetenv("REMINDER_CRON")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "data/capillaire.db" {
			t.Errorf("Expected default DatabasePath, got '%s'", cfg.DatabasePath)
		}
		if cfg.ReminderCron != "0 9 * * *" {
			t.Errorf("Expected default ReminderCron, got '%s'", cfg.ReminderCron)
		}
	})

	t.Run("MissingGeminiAPIKey", func(t *testing.T) {
		os.Unsetenv("GEMINI_API_KEY")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing GEMINI_API_KEY, got nil")
		}
		expectedError := "GEMINI_API_KEY environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})
}
