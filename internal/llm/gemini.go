package llm

import (
	"context"
	"fmt"

	"capillaire-ai/internal/config"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	planModelName = "gemini-1.5-pro"
	tipModelName  = "gemini-1.5-flash-8b"
	chatModelName = "gemini-1.5-flash"
)

// chatPersona constrains the assistant to natural remedies only.
const chatPersona = "Você é o Assistente Capillaire. Especialista em terapias naturais (Babosa, Óleos, Argilas). Ajude o usuário com seu cronograma. Nunca sugira químicos agressivos."

// GeminiClient wraps the Google Gemini API with the three model
// configurations the app needs: plan generation (JSON mode), quick tips
// and the assistant chat.
type GeminiClient struct {
	client    *genai.Client
	planModel *genai.GenerativeModel
	tipModel  *genai.GenerativeModel
	chatModel *genai.GenerativeModel
}

// NewGeminiClient creates a new Gemini API client.
func NewGeminiClient(ctx context.Context, cfg *config.Config) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	planModel := client.GenerativeModel(planModelName)
	planModel.ResponseMIMEType = "application/json"
	planModel.ResponseSchema = planSchema()

	tipModel := client.GenerativeModel(tipModelName)

	chatModel := client.GenerativeModel(chatModelName)
	chatModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(chatPersona)},
	}

	return &GeminiClient{
		client:    client,
		planModel: planModel,
		tipModel:  tipModel,
		chatModel: chatModel,
	}, nil
}

// planSchema is the strict response schema for plan generation: an object
// with a summary and a tasks array of {day, title, category, description,
// recipe?}.
func planSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {Type: genai.TypeString},
			"tasks": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"day":         {Type: genai.TypeInteger},
						"title":       {Type: genai.TypeString},
						"category":    {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
						"recipe":      {Type: genai.TypeString},
					},
					Required: []string{"day", "title", "category", "description"},
				},
			},
		},
		Required: []string{"summary", "tasks"},
	}
}

// geminiModel adapts a single configured model to the TextGenerator
// interface.
type geminiModel struct {
	name  string
	model *genai.GenerativeModel
}

// PlanGenerator returns the JSON-mode model used for plan generation.
func (c *GeminiClient) PlanGenerator() TextGenerator {
	return &geminiModel{name: planModelName, model: c.planModel}
}

// TipGenerator returns the lightweight model used for quick tips.
func (c *GeminiClient) TipGenerator() TextGenerator {
	return &geminiModel{name: tipModelName, model: c.tipModel}
}

// GenerateContent sends a prompt to the model and returns the generated text.
func (m *geminiModel) GenerateContent(ctx context.Context, prompt string) (ContentResponse, error) {
	resp, err := m.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to generate content: %w", err)
	}
	return toContentResponse(resp, m.name)
}

// SendChat replays the session history into a chat session and sends the
// new user message.
func (c *GeminiClient) SendChat(ctx context.Context, history []ChatMessage, message string) (ContentResponse, error) {
	cs := c.chatModel.StartChat()
	for _, msg := range history {
		cs.History = append(cs.History, &genai.Content{
			Role:  string(msg.Role),
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to send chat message: %w", err)
	}
	return toContentResponse(resp, chatModelName)
}

func toContentResponse(resp *genai.GenerateContentResponse, model string) (ContentResponse, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ContentResponse{}, fmt.Errorf("no content generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return ContentResponse{}, fmt.Errorf("generated content is not text")
	}

	out := ContentResponse{Content: string(text)}
	out.Usage.Model = model
	if resp.UsageMetadata != nil {
		out.Usage.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		out.Usage.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		out.Usage.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	return out, nil
}

// Close closes the underlying Gemini client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}
