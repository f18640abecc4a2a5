package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"capillaire-ai/internal/diagnosis"
	"capillaire-ai/internal/llm"
)

type MockTextGenerator struct {
	Response   string
	Err        error
	LastPrompt string
}

func (m *MockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.LastPrompt = prompt
	if m.Err != nil {
		return llm.ContentResponse{}, m.Err
	}
	return llm.ContentResponse{Content: m.Response}, nil
}

type MockChatter struct {
	Response    string
	Err         error
	LastHistory []llm.ChatMessage
}

func (m *MockChatter) SendChat(ctx context.Context, history []llm.ChatMessage, message string) (llm.ContentResponse, error) {
	m.LastHistory = history
	if m.Err != nil {
		return llm.ContentResponse{}, m.Err
	}
	return llm.ContentResponse{Content: m.Response}, nil
}

func TestTip(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		gen := &MockTextGenerator{Response: "Use babosa duas vezes por semana."}
		advisor := NewAdvisor(gen, nil)

		tip := advisor.Tip(ctx, "Frizz", nil)
		if tip != "Use babosa duas vezes por semana." {
			t.Errorf("Unexpected tip: '%s'", tip)
		}
		if !strings.Contains(gen.LastPrompt, "Frizz") {
			t.Errorf("Expected the problem in the prompt, got: %s", gen.LastPrompt)
		}
	})

	t.Run("DiagnosisContext", func(t *testing.T) {
		gen := &MockTextGenerator{Response: "ok"}
		advisor := NewAdvisor(gen, nil)

		d := diagnosis.Diagnosis{HairType: diagnosis.HairCurly, Porosity: diagnosis.PorosityHigh}
		advisor.Tip(ctx, "Queda", &d)
		if !strings.Contains(gen.LastPrompt, "Cacheado") || !strings.Contains(gen.LastPrompt, "Alta") {
			t.Errorf("Expected hair type and porosity in the prompt, got: %s", gen.LastPrompt)
		}
	})

	t.Run("FailureUsesFallback", func(t *testing.T) {
		advisor := NewAdvisor(&MockTextGenerator{Err: errors.New("quota exceeded")}, nil)

		tip := advisor.Tip(ctx, "Caspa", nil)
		if tip != fallbackTip {
			t.Errorf("Expected the fixed fallback sentence, got: '%s'", tip)
		}
	})
}

func TestAssistant(t *testing.T) {
	ctx := context.Background()

	t.Run("StartsWithGreeting", func(t *testing.T) {
		assistant := NewAssistant(&MockChatter{}, nil)

		history := assistant.History()
		if len(history) != 1 {
			t.Fatalf("Expected only the greeting, got %d messages", len(history))
		}
		if history[0].Role != llm.RoleModel || history[0].Content != greeting {
			t.Errorf("Unexpected opening message: %+v", history[0])
		}
	})

	t.Run("SendAppendsBothTurns", func(t *testing.T) {
		chatter := &MockChatter{Response: "Experimente um chá de alecrim."}
		assistant := NewAssistant(chatter, nil)

		reply := assistant.Send(ctx, "Como reduzo a oleosidade?")
		if reply != "Experimente um chá de alecrim." {
			t.Errorf("Unexpected reply: '%s'", reply)
		}

		history := assistant.History()
		if len(history) != 3 {
			t.Fatalf("Expected 3 messages, got %d", len(history))
		}
		if history[1].Role != llm.RoleUser || history[2].Role != llm.RoleModel {
			t.Error("Expected user then model turns after the greeting")
		}

		// The model call receives the transcript prior to the new message.
		if len(chatter.LastHistory) != 1 {
			t.Errorf("Expected 1 prior message in the sent history, got %d", len(chatter.LastHistory))
		}
	})

	t.Run("FailureAppendsApology", func(t *testing.T) {
		assistant := NewAssistant(&MockChatter{Err: errors.New("unavailable")}, nil)

		reply := assistant.Send(ctx, "Oi")
		if reply != apology {
			t.Errorf("Expected the apologetic message, got: '%s'", reply)
		}

		history := assistant.History()
		last := history[len(history)-1]
		if last.Role != llm.RoleModel || last.Content != apology {
			t.Error("Expected the apology appended to the transcript")
		}
	})

	t.Run("Reset", func(t *testing.T) {
		assistant := NewAssistant(&MockChatter{Response: "oi"}, nil)
		assistant.Send(ctx, "mensagem")
		assistant.Reset()

		if history := assistant.History(); len(history) != 1 {
			t.Errorf("Expected only the greeting after reset, got %d messages", len(history))
		}
	})
}
