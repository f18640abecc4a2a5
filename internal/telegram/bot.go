// Package telegram is the presentation layer: a webhook bot exposing the
// regimen flows (diagnosis, schedule, progress, rituals, tips, chat).
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"capillaire-ai/internal/app"
	"capillaire-ai/internal/config"
	"capillaire-ai/internal/metrics"
	"capillaire-ai/internal/plan"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API and the application facade.
type Bot struct {
	api          *tgbotapi.BotAPI
	app          *app.App
	metricsStore *metrics.Store
	cfg          *config.Config

	mu       sync.Mutex
	sessions map[int64]*diagSession
}

// NewBot initializes the bot over an existing API client and sets the
// webhook. The API client is created by the caller so the reminder sender
// can share it.
func NewBot(cfg *config.Config, api *tgbotapi.BotAPI, application *app.App, metricsStore *metrics.Store) (*Bot, error) {
	log.Printf("Authorized on account %s", api.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          api,
		app:          application,
		metricsStore: metricsStore,
		cfg:          cfg,
		sessions:     make(map[int64]*diagSession),
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.CallbackQuery != nil {
		if !b.isAllowed(update.CallbackQuery.From.ID) {
			return
		}
		go b.handleCallbackQuery(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	if !b.isAllowed(update.Message.From.ID) {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) isAllowed(userID int64) bool {
	return userID == b.cfg.TelegramAllowUserID || (b.cfg.AdminTelegramID != 0 && userID == b.cfg.AdminTelegramID)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.send(msg.Chat.ID, welcomeText)
	case "diagnostico":
		b.startDiagnosis(msg.Chat.ID)
	case "cronograma":
		b.handleSchedule(msg.Chat.ID)
	case "dia":
		b.handleDay(msg.Chat.ID, msg.CommandArguments())
	case "progresso":
		b.handleProgress(msg.Chat.ID)
	case "rituais":
		b.handleRituals(msg.Chat.ID)
	case "dica":
		b.handleTip(msg.Chat.ID, msg.CommandArguments())
	case "lembretes":
		b.handleNotifications(msg.Chat.ID)
	case "reiniciar":
		b.handleResetPrompt(msg.Chat.ID)
	case "metrics":
		b.handleMetricsRequest(msg)
	case "":
		b.handleChat(msg.Chat.ID, msg.Text)
	default:
		b.send(msg.Chat.ID, "Comando desconhecido. Use /start para ver as opções.")
	}
}

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	parts := strings.SplitN(query.Data, "|", 3)
	if len(parts) < 2 {
		return
	}

	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	switch parts[0] {
	case "diag":
		if len(parts) == 3 {
			b.advanceDiagnosis(query, parts[1], parts[2])
		}
	case "toggle":
		day, err := strconv.Atoi(parts[1])
		if err != nil {
			return
		}
		b.handleToggle(query, chatID, messageID, day)
	case "ritual":
		b.handleRitualToggle(query, chatID, messageID, parts[1])
	case "tip":
		b.answerCallback(query.ID, "")
		b.handleTip(chatID, parts[1])
	case "reset":
		b.answerCallback(query.ID, "")
		if parts[1] == "yes" {
			b.handleReset(chatID, messageID)
		} else {
			b.edit(chatID, messageID, "Reinício cancelado. Seu progresso está seguro. 🌿")
		}
	}
}

func (b *Bot) handleSchedule(chatID int64) {
	p := b.app.CurrentPlan()
	if p == nil {
		b.send(chatID, noPlanText)
		return
	}
	b.send(chatID, formatSchedule(p, time.Now()))
}

func (b *Bot) handleDay(chatID int64, arg string) {
	p := b.app.CurrentPlan()
	if p == nil {
		b.send(chatID, noPlanText)
		return
	}

	day, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		b.send(chatID, "Informe o dia, por exemplo: /dia 12")
		return
	}

	task, ok := p.Task(day)
	if !ok {
		b.send(chatID, fmt.Sprintf("O cronograma não tem o dia %d.", day))
		return
	}

	reply := tgbotapi.NewMessage(chatID, formatTaskDetail(task, p.Diagnosis))
	reply.ParseMode = "Markdown"
	reply.ReplyMarkup = toggleKeyboard(task)
	if _, err := b.api.Send(reply); err != nil {
		log.Printf("Failed to send task detail: %v", err)
	}
}

func (b *Bot) handleToggle(query *tgbotapi.CallbackQuery, chatID int64, messageID int, day int) {
	updated, err := b.app.ToggleTask(day)
	if err != nil {
		var dayErr *plan.InvalidDayError
		switch {
		case errors.Is(err, plan.ErrNoActivePlan):
			b.answerCallback(query.ID, "Nenhum cronograma ativo.")
		case errors.As(err, &dayErr):
			b.answerCallback(query.ID, fmt.Sprintf("O cronograma não tem o dia %d.", dayErr.Day))
		default:
			log.Printf("Error toggling task: %v", err)
			b.answerCallback(query.ID, "Não foi possível atualizar a tarefa.")
		}
		return
	}

	task, _ := updated.Task(day)
	if task.Completed {
		b.answerCallback(query.ID, fmt.Sprintf("Dia %d concluído! ✨", day))
	} else {
		b.answerCallback(query.ID, fmt.Sprintf("Dia %d reaberto.", day))
	}

	edit := tgbotapi.NewEditMessageText(chatID, messageID, formatTaskDetail(task, updated.Diagnosis))
	edit.ParseMode = "Markdown"
	keyboard := toggleKeyboard(task)
	edit.ReplyMarkup = &keyboard
	b.api.Send(edit)
}

func (b *Bot) handleProgress(chatID int64) {
	p := b.app.CurrentPlan()
	if p == nil {
		b.send(chatID, noPlanText)
		return
	}
	b.send(chatID, formatProgress(b.app.Progress(time.Now()), p))
}

func (b *Bot) handleRituals(chatID int64) {
	items, err := b.app.Rituals()
	if err != nil {
		log.Printf("Error loading rituals: %v", err)
		b.send(chatID, "Não foi possível carregar seus rituais.")
		return
	}

	reply := tgbotapi.NewMessage(chatID, ritualsHeader)
	reply.ParseMode = "Markdown"
	reply.ReplyMarkup = ritualsKeyboard(items)
	b.api.Send(reply)
}

func (b *Bot) handleRitualToggle(query *tgbotapi.CallbackQuery, chatID int64, messageID int, id string) {
	items, err := b.app.ToggleRitual(id)
	if err != nil {
		log.Printf("Error toggling ritual: %v", err)
		b.answerCallback(query.ID, "Não foi possível atualizar o ritual.")
		return
	}
	b.answerCallback(query.ID, "")

	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, ritualsKeyboard(items))
	b.api.Send(edit)
}

func (b *Bot) handleTip(chatID int64, problem string) {
	problem = strings.TrimSpace(problem)
	if problem == "" {
		reply := tgbotapi.NewMessage(chatID, "Qual o problema de hoje?")
		reply.ReplyMarkup = tipKeyboard()
		b.api.Send(reply)
		return
	}

	sent := b.sendAndKeep(chatID, "🍃 *Sintonizando Natureza...*")

	tip := b.app.Tip(context.Background(), problem)
	text := fmt.Sprintf("💡 *Sua Dica AI — %s*\n\n_%s_", problem, tip)
	if sent != nil {
		b.edit(chatID, sent.MessageID, text)
	} else {
		b.send(chatID, text)
	}
}

func (b *Bot) handleNotifications(chatID int64) {
	enable := !b.app.NotificationsEnabled()
	if err := b.app.SetNotifications(enable); err != nil {
		log.Printf("Error updating notifications: %v", err)
		b.send(chatID, "Não foi possível atualizar os lembretes.")
		return
	}
	if enable {
		b.send(chatID, "🔔 Lembretes diários ativados.")
	} else {
		b.send(chatID, "🔕 Lembretes diários desativados.")
	}
}

func (b *Bot) handleResetPrompt(chatID int64) {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Sim, apagar tudo", "reset|yes"),
			tgbotapi.NewInlineKeyboardButtonData("Cancelar", "reset|no"),
		),
	)
	reply := tgbotapi.NewMessage(chatID, "Deseja realmente apagar seu progresso?")
	reply.ReplyMarkup = keyboard
	b.api.Send(reply)
}

func (b *Bot) handleReset(chatID int64, messageID int) {
	if err := b.app.Reset(); err != nil {
		log.Printf("Error resetting app: %v", err)
		b.edit(chatID, messageID, "Não foi possível reiniciar. Tente novamente.")
		return
	}
	b.edit(chatID, messageID, "Tudo limpo! Use /diagnostico quando quiser recomeçar. 🌱")
}

func (b *Bot) handleChat(chatID int64, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))
	reply := b.app.Chat(context.Background(), text)
	b.send(chatID, reply)
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.send(msg.Chat.ID, "⛔ *Access Denied*: Admin only.")
		return
	}

	usage, err := b.metricsStore.GetDailyUsage(7)
	if err != nil {
		log.Printf("Error fetching metrics: %v", err)
		b.send(msg.Chat.ID, "❌ Error fetching metrics.")
		return
	}
	b.send(msg.Chat.ID, formatMetrics(usage))
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

// sendAndKeep sends a status message and returns it so it can be edited
// in place once the slow operation finishes.
func (b *Bot) sendAndKeep(chatID int64, text string) *tgbotapi.Message {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	sent, err := b.api.Send(msg)
	if err != nil {
		log.Printf("Failed to send status message: %v", err)
		return nil
	}
	return &sent
}

func (b *Bot) edit(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = "Markdown"
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Failed to edit message: %v", err)
	}
}

func (b *Bot) answerCallback(id, text string) {
	b.api.Request(tgbotapi.NewCallback(id, text))
}
