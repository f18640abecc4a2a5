package advisor

import (
	"context"
	"log"
	"sync"
	"time"

	"capillaire-ai/internal/llm"
	"capillaire-ai/internal/metrics"
)

const (
	greeting = "Olá! Sou seu guia Capillaire. Como posso ajudar na sua rotina natural hoje?"
	apology  = "Ops, algo deu errado. Tente novamente em instantes."
)

// Assistant holds the session-only dialogue with the Capillaire persona.
// History lives in memory and is lost on restart.
type Assistant struct {
	mu           sync.Mutex
	chatter      llm.Chatter
	metricsStore *metrics.Store // optional
	history      []llm.ChatMessage
}

// NewAssistant creates an Assistant with the opening greeting in place.
func NewAssistant(chatter llm.Chatter, metricsStore *metrics.Store) *Assistant {
	a := &Assistant{chatter: chatter, metricsStore: metricsStore}
	a.reset()
	return a
}

func (a *Assistant) reset() {
	a.history = []llm.ChatMessage{{
		Role:      llm.RoleModel,
		Content:   greeting,
		Timestamp: time.Now(),
	}}
}

// Send appends the user message, asks the model for a reply and appends
// it to the transcript. A failed call is replaced by a single apologetic
// message instead of an error.
func (a *Assistant) Send(ctx context.Context, text string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	prior := make([]llm.ChatMessage, len(a.history))
	copy(prior, a.history)

	a.history = append(a.history, llm.ChatMessage{
		Role:      llm.RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	})

	start := time.Now()
	resp, err := a.chatter.SendChat(ctx, prior, text)
	reply := resp.Content
	if err != nil {
		log.Printf("Warning: chat request failed: %v", err)
		reply = apology
	} else if a.metricsStore != nil {
		if err := a.metricsStore.RecordUsage("assistant-chat", resp.Usage, time.Since(start)); err != nil {
			log.Printf("Warning: failed to record chat metrics: %v", err)
		}
	}

	a.history = append(a.history, llm.ChatMessage{
		Role:      llm.RoleModel,
		Content:   reply,
		Timestamp: time.Now(),
	})
	return reply
}

// History returns a copy of the transcript.
func (a *Assistant) History() []llm.ChatMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]llm.ChatMessage, len(a.history))
	copy(out, a.history)
	return out
}

// Reset discards the transcript and restores the greeting.
func (a *Assistant) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reset()
}
