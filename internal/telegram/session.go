package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"

	"capillaire-ai/internal/app"
	"capillaire-ai/internal/diagnosis"
	"capillaire-ai/internal/plan"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// diagSession tracks one chat's progress through the diagnosis questions.
// The flow is button-driven; answers arrive as "diag|<step>|<value>"
// callbacks.
type diagSession struct {
	step string
	d    diagnosis.Diagnosis
}

const (
	stepGoal      = "goal"
	stepHair      = "hair"
	stepScalp     = "scalp"
	stepPorosity  = "porosity"
	stepChemicals = "chemicals"
	stepBudget    = "budget"
)

func (b *Bot) startDiagnosis(chatID int64) {
	b.mu.Lock()
	b.sessions[chatID] = &diagSession{step: stepGoal}
	b.mu.Unlock()

	reply := tgbotapi.NewMessage(chatID, "🌿 *Diagnóstico Capilar*\n\nQual seu objetivo principal?")
	reply.ParseMode = "Markdown"
	reply.ReplyMarkup = optionsKeyboard(stepGoal,
		string(diagnosis.GoalGrowth),
		string(diagnosis.GoalHydration),
		string(diagnosis.GoalReconstruction),
		string(diagnosis.GoalShine),
	)
	b.api.Send(reply)
}

func (b *Bot) advanceDiagnosis(query *tgbotapi.CallbackQuery, step, value string) {
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	b.mu.Lock()
	session, ok := b.sessions[chatID]
	b.mu.Unlock()
	if !ok || session.step != step {
		b.answerCallback(query.ID, "Use /diagnostico para começar um novo diagnóstico.")
		return
	}
	b.answerCallback(query.ID, "")

	switch step {
	case stepGoal:
		session.d.MainGoal = diagnosis.MainGoal(value)
		session.step = stepHair
		b.askOptions(chatID, messageID, "Qual seu tipo de cabelo?", stepHair,
			string(diagnosis.HairStraight),
			string(diagnosis.HairWavy),
			string(diagnosis.HairCurly),
			string(diagnosis.HairCoily),
		)
	case stepHair:
		session.d.HairType = diagnosis.HairType(value)
		session.step = stepScalp
		b.askOptions(chatID, messageID, "Como é seu couro cabeludo?", stepScalp,
			string(diagnosis.ScalpOily),
			string(diagnosis.ScalpNormal),
			string(diagnosis.ScalpDry),
		)
	case stepScalp:
		session.d.ScalpType = diagnosis.ScalpType(value)
		session.step = stepPorosity
		b.askOptions(chatID, messageID, "Qual a porosidade dos fios?", stepPorosity,
			string(diagnosis.PorosityLow),
			string(diagnosis.PorosityMedium),
			string(diagnosis.PorosityHigh),
		)
	case stepPorosity:
		session.d.Porosity = diagnosis.Porosity(value)
		session.step = stepChemicals
		b.askOptions(chatID, messageID, "Tem química nos fios (tintura, alisamento)?", stepChemicals,
			"Sim", "Não",
		)
	case stepChemicals:
		session.d.HasChemicals = value == "Sim"
		session.step = stepBudget
		b.askOptions(chatID, messageID, "Qual seu orçamento para produtos?", stepBudget,
			string(diagnosis.BudgetLow),
			string(diagnosis.BudgetMedium),
			string(diagnosis.BudgetPremium),
		)
	case stepBudget:
		session.d.BudgetLevel = diagnosis.BudgetLevel(value)
		b.mu.Lock()
		delete(b.sessions, chatID)
		b.mu.Unlock()
		b.edit(chatID, messageID, "🧬 *Criando sua jornada personalizada...*\n\n_Isso pode levar alguns segundos._")
		b.runGeneration(chatID, messageID, session.d)
	}
}

// runGeneration calls the model and edits the status message in place with
// the result. It runs on the callback goroutine, which is already detached
// from the webhook handler.
func (b *Bot) runGeneration(chatID int64, messageID int, d diagnosis.Diagnosis) {
	p, err := b.app.GeneratePlan(context.Background(), d)
	if err != nil {
		log.Printf("Error generating plan: %v", err)
		if errors.Is(err, app.ErrGenerationInFlight) {
			b.edit(chatID, messageID, "⏳ Já existe uma geração em andamento. Aguarde ela terminar.")
			return
		}
		b.edit(chatID, messageID, "❌ Não foi possível criar seu cronograma agora. Tente novamente em instantes.")
		return
	}

	task, _ := p.Task(1)
	text := fmt.Sprintf(
		"✨ *Sua jornada de %d dias está pronta!*\n\n_%s_\n\n*Dia 1 — %s*\n%s\n\nUse /cronograma para ver todos os dias e /lembretes para receber avisos diários.",
		plan.Length, p.Summary, task.Title, task.Description,
	)
	b.edit(chatID, messageID, text)
}

// askOptions replaces the current question with the next one.
func (b *Bot) askOptions(chatID int64, messageID int, question, step string, options ...string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, question)
	keyboard := optionsKeyboard(step, options...)
	edit.ReplyMarkup = &keyboard
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Failed to edit diagnosis question: %v", err)
	}
}

// optionsKeyboard lays one option per row so long Portuguese labels stay
// readable on mobile.
func optionsKeyboard(step string, options ...string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options))
	for _, opt := range options {
		data := fmt.Sprintf("diag|%s|%s", step, opt)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(opt, data)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
