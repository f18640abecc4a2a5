package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"capillaire-ai/internal/diagnosis"
	"capillaire-ai/internal/llm"

	"github.com/google/uuid"
)

// GenerationError reports a failed plan generation. Callers must leave any
// previously committed plan untouched when they receive one.
type GenerationError struct {
	Stage string // "request", "decode" or "normalize"
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("plan generation failed (%s): %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Generator turns a diagnosis into a full plan by delegating content
// creation to the text service. It does not write to the Store; committing
// the result is the caller's responsibility.
type Generator struct {
	textGen llm.TextGenerator

	now   func() time.Time
	newID func() string
}

// NewGenerator creates a new Generator instance.
func NewGenerator(textGen llm.TextGenerator) *Generator {
	return &Generator{
		textGen: textGen,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// planResponse mirrors the JSON schema the model is constrained to.
type planResponse struct {
	Summary string         `json:"summary"`
	Tasks   []taskResponse `json:"tasks"`
}

type taskResponse struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Recipe      string `json:"recipe"`
	Completed   bool   `json:"completed"`
}

// Generate requests a 30-day plan for the diagnosis and normalizes the
// response. The returned usage covers the single model call.
func (g *Generator) Generate(ctx context.Context, d diagnosis.Diagnosis) (*Plan, llm.TokenUsage, error) {
	if err := d.Validate(); err != nil {
		return nil, llm.TokenUsage{}, &GenerationError{Stage: "request", Err: err}
	}

	resp, err := g.textGen.GenerateContent(ctx, buildPlanPrompt(d))
	if err != nil {
		return nil, llm.TokenUsage{}, &GenerationError{Stage: "request", Err: err}
	}

	decoder := json.NewDecoder(strings.NewReader(resp.Content))
	decoder.DisallowUnknownFields()
	var decoded planResponse
	if err := decoder.Decode(&decoded); err != nil {
		return nil, resp.Usage, &GenerationError{Stage: "decode", Err: err}
	}

	tasks, err := normalizeTasks(decoded.Tasks)
	if err != nil {
		return nil, resp.Usage, &GenerationError{Stage: "normalize", Err: err}
	}

	summary := decoded.Summary
	if summary == "" {
		summary = "Seu plano personalizado está pronto."
	}

	return &Plan{
		ID:        g.newID(),
		CreatedAt: g.now().UTC(),
		Diagnosis: d,
		Summary:   summary,
		Tasks:     tasks,
	}, resp.Usage, nil
}

// buildPlanPrompt serializes the diagnosis into the trichologist
// instruction the model responds to.
func buildPlanPrompt(d diagnosis.Diagnosis) string {
	chemicals := "Não"
	if d.HasChemicals {
		chemicals = "Sim"
	}

	return fmt.Sprintf(`Aja como um renomado Tricologista e Terapeuta Capilar Natural.
Seu objetivo é criar um Cronograma Capilar de 30 dias focado em: %s.

PERFIL TÉCNICO:
- Curvatura: %s
- Couro Cabeludo: %s
- Porosidade: %s
- Histórico de Química: %s
- Orçamento: %s

DIRETRIZES:
1. Plano de exatos 30 dias.
2. Alterne Hidratação, Nutrição e Reconstrução com base na porosidade %s.
3. Receitas 100%% naturais e adequadas ao orçamento %s.
4. Formato estritamente JSON.`,
		d.MainGoal, d.HairType, d.ScalpType, d.Porosity, chemicals, d.BudgetLevel,
		d.Porosity, d.BudgetLevel)
}

// normalizeTasks sorts the returned tasks by day and verifies they form a
// dense 1..30 range. Anything else is rejected: a partially shaped plan is
// worse than asking the user to retry. Completion flags from the service
// are discarded; every task starts not completed.
func normalizeTasks(in []taskResponse) ([]DayTask, error) {
	if len(in) != Length {
		return nil, fmt.Errorf("expected %d tasks, got %d", Length, len(in))
	}

	tasks := make([]DayTask, len(in))
	for i, t := range in {
		tasks[i] = DayTask{
			Day:         t.Day,
			Title:       t.Title,
			Category:    Category(t.Category),
			Description: t.Description,
			Recipe:      t.Recipe,
			Completed:   false,
		}
	}

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Day < tasks[j].Day })

	for i, t := range tasks {
		if t.Day != i+1 {
			return nil, fmt.Errorf("task days are not a dense 1..%d range: got day %d at position %d", Length, t.Day, i+1)
		}
	}

	return tasks, nil
}
