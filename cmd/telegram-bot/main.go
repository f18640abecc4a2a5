package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"capillaire-ai/internal/advisor"
	"capillaire-ai/internal/app"
	"capillaire-ai/internal/config"
	"capillaire-ai/internal/llm"
	"capillaire-ai/internal/metrics"
	"capillaire-ai/internal/notify"
	"capillaire-ai/internal/plan"
	"capillaire-ai/internal/ritual"
	"capillaire-ai/internal/storage"
	"capillaire-ai/internal/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Configuration
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. Initialize Infrastructure (LLM + storage)
	geminiClient, err := llm.NewGeminiClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	defer geminiClient.Close()

	kv, err := storage.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer kv.Close()

	metricsStore, err := metrics.NewStore(kv.DB())
	if err != nil {
		log.Fatalf("Failed to initialize metrics store: %v", err)
	}

	// 3. Initialize Services
	planStore := plan.NewStore(kv)
	generator := plan.NewGenerator(geminiClient.PlanGenerator())
	adv := advisor.NewAdvisor(geminiClient.TipGenerator(), metricsStore)
	assistant := advisor.NewAssistant(geminiClient, metricsStore)
	rituals := ritual.NewChecklist(kv)

	// 4. Initialize Telegram API and the reminder channel. The API client
	// is created here so the notification service can reuse it.
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatalf("Failed to create Telegram API client: %v", err)
	}
	sender := telegram.NewReminderSender(api, cfg.TelegramAllowUserID)
	notifySvc := notify.NewService(kv, sender, planStore)

	application := app.NewApp(generator, planStore, adv, assistant, rituals, notifySvc, metricsStore)

	if err := application.StartReminders(cfg.ReminderCron); err != nil {
		log.Fatalf("Failed to start reminder scheduler: %v", err)
	}
	defer application.StopReminders()

	// 5. Initialize Telegram Bot
	bot, err := telegram.NewBot(cfg, api, application, metricsStore)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	// 6. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Capillaire Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
