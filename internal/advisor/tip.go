// Package advisor covers the secondary advice paths: single-shot quick
// tips and the assistant chat. Failures on these paths are absorbed with a
// graceful substitute so the user is never blocked.
package advisor

import (
	"context"
	"fmt"
	"log"
	"time"

	"capillaire-ai/internal/diagnosis"
	"capillaire-ai/internal/llm"
	"capillaire-ai/internal/metrics"
)

// fallbackTip is returned whenever the tip service fails.
const fallbackTip = "Tente massagear o couro cabeludo com movimentos circulares para estimular a saúde dos fios."

// Advisor requests short natural-care advice for a specific problem.
type Advisor struct {
	tips         llm.TextGenerator
	metricsStore *metrics.Store // optional
}

// NewAdvisor creates a new Advisor instance.
func NewAdvisor(tips llm.TextGenerator, metricsStore *metrics.Store) *Advisor {
	return &Advisor{tips: tips, metricsStore: metricsStore}
}

// Tip returns a two-sentence natural tip for the problem, contextualized
// with the diagnosis when one is available. It never fails: any transport
// or service error is replaced by a fixed suggestion.
func (a *Advisor) Tip(ctx context.Context, problem string, d *diagnosis.Diagnosis) string {
	prompt := fmt.Sprintf("Dê uma dica natural de 2 frases para o problema: %s.", problem)
	if d != nil {
		prompt += fmt.Sprintf(" Para um cabelo %s e porosidade %s.", d.HairType, d.Porosity)
	}

	start := time.Now()
	resp, err := a.tips.GenerateContent(ctx, prompt)
	if err != nil {
		log.Printf("Warning: quick tip request failed, using fallback: %v", err)
		return fallbackTip
	}

	if a.metricsStore != nil {
		if err := a.metricsStore.RecordUsage("quick-tip", resp.Usage, time.Since(start)); err != nil {
			log.Printf("Warning: failed to record tip metrics: %v", err)
		}
	}

	return resp.Content
}
