package telegram

import (
	"fmt"
	"strings"
	"time"

	"capillaire-ai/internal/diagnosis"
	"capillaire-ai/internal/metrics"
	"capillaire-ai/internal/plan"
	"capillaire-ai/internal/ritual"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const welcomeText = `🌿 *Capillaire AI*

Sua jornada de 30 dias para um cabelo mais saudável, com receitas naturais personalizadas.

/diagnostico — criar seu cronograma personalizado
/cronograma — ver os 30 dias
/dia N — detalhes e receita de um dia
/progresso — acompanhar sua evolução
/rituais — checklist de rituais diários
/dica problema — dica rápida da AI
/lembretes — ativar ou desativar avisos diários
/reiniciar — apagar tudo e recomeçar

Também pode me mandar qualquer pergunta sobre cuidados capilares. 💬`

const noPlanText = "Você ainda não tem um cronograma. Use /diagnostico para criar o seu. 🌱"

const ritualsHeader = "🕯 *Rituais Diários*\n\nToque para marcar ou desmarcar:"

func categoryEmoji(c plan.Category) string {
	switch c {
	case plan.CategoryHydration:
		return "💧"
	case plan.CategoryNutrition:
		return "🥑"
	case plan.CategoryReconstruction:
		return "🧬"
	case plan.CategoryDetox:
		return "🍃"
	}
	return "🌿"
}

// formatSchedule renders the full 30-day grid, marking today and completed
// days.
func formatSchedule(p *plan.Plan, now time.Time) string {
	current := plan.CurrentDay(p, now)

	var sb strings.Builder
	sb.WriteString("📅 *Seu Cronograma de 30 Dias*\n\n")
	for _, t := range p.Tasks {
		mark := "▫️"
		if t.Completed {
			mark = "✅"
		}
		pointer := ""
		if t.Day == current {
			pointer = " ← hoje"
		}
		fmt.Fprintf(&sb, "%s %s Dia %d: %s%s\n", mark, categoryEmoji(t.Category), t.Day, t.Title, pointer)
	}
	sb.WriteString("\nUse /dia N para ver a receita de um dia.")
	return sb.String()
}

// formatTaskDetail renders one day's card, filling in a fallback recipe
// when the plan came back without one.
func formatTaskDetail(t plan.DayTask, d diagnosis.Diagnosis) string {
	recipe := t.Recipe
	if recipe == "" {
		recipe = plan.FallbackRecipe(t.Category, d.BudgetLevel)
	}

	status := "Pendente"
	if t.Completed {
		status = "Concluído ✅"
	}

	return fmt.Sprintf(
		"%s *Dia %d — %s*\n_%s_\n\n%s\n\n📖 *Receita*\n%s\n\nStatus: %s",
		categoryEmoji(t.Category), t.Day, t.Title, t.Category, t.Description, recipe, status,
	)
}

func toggleKeyboard(t plan.DayTask) tgbotapi.InlineKeyboardMarkup {
	label := "✅ Marcar como feito"
	if t.Completed {
		label = "↩️ Desmarcar"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("toggle|%d", t.Day)),
		),
	)
}

// formatProgress renders the progress card with a ten-segment bar.
func formatProgress(prog plan.Progress, p *plan.Plan) string {
	filled := prog.Percent / 10
	bar := strings.Repeat("🟩", filled) + strings.Repeat("⬜", 10-filled)

	var sb strings.Builder
	sb.WriteString("📈 *Seu Progresso*\n\n")
	fmt.Fprintf(&sb, "%s %d%%\n", bar, prog.Percent)
	fmt.Fprintf(&sb, "Dia atual: %d de %d\n", prog.CurrentDay, plan.Length)
	fmt.Fprintf(&sb, "Tarefas concluídas: %d\n", prog.CompletedCount)
	fmt.Fprintf(&sb, "Objetivo: %s\n", p.Diagnosis.MainGoal)

	if prog.TodayTask != nil {
		fmt.Fprintf(&sb, "\n*Hoje:* %s %s", categoryEmoji(prog.TodayTask.Category), prog.TodayTask.Title)
		if prog.TodayTask.Completed {
			sb.WriteString(" ✅")
		}
	}
	if len(prog.Upcoming) > 0 {
		sb.WriteString("\n\n*Próximos dias:*\n")
		for _, t := range prog.Upcoming {
			fmt.Fprintf(&sb, "%s Dia %d: %s\n", categoryEmoji(t.Category), t.Day, t.Title)
		}
	}
	return sb.String()
}

func ritualsKeyboard(items []ritual.Item) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(items))
	for _, item := range items {
		label := "⬜ " + item.Text
		if item.Completed {
			label = "✅ " + item.Text
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "ritual|"+item.ID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// tipKeyboard offers the common complaints as one-tap shortcuts.
func tipKeyboard() tgbotapi.InlineKeyboardMarkup {
	problems := []string{"Frizz", "Queda", "Pontas duplas", "Oleosidade", "Ressecamento"}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(problems))
	for _, p := range problems {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(p, "tip|"+p),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// formatMetrics renders the admin token-usage report.
func formatMetrics(usage []metrics.DailyUsage) string {
	if len(usage) == 0 {
		return "📊 *LLM Usage*\n\nNo executions recorded in the last 7 days."
	}

	var sb strings.Builder
	sb.WriteString("📊 *LLM Usage (last 7 days)*\n\n")
	for _, u := range usage {
		fmt.Fprintf(&sb, "*%s* — %d calls\n  prompt: %d | completion: %d\n", u.Date, u.TotalExecution, u.TotalPrompt, u.TotalCompletion)
	}
	return sb.String()
}
