package service

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/smartchef/backend/config"
)

// generateTimeout bounds a single model call. The external API has no upper
// bound of its own; a timed-out call falls into the fallback path.
const generateTimeout = 60 * time.Second

// TextModel is the boundary around the external generative model. The
// production implementation talks to Gemini; tests substitute fakes.
type TextModel interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiModel calls the Gemini API with an environment-configured model id.
type GeminiModel struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiModel creates a Gemini-backed TextModel from the application
// configuration.
func NewGeminiModel(ctx context.Context, cfg *config.Config) (*GeminiModel, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY or GEMINI_API_KEY_FILE must be set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  cfg.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiModel{
		client:  client,
		model:   cfg.GenModel,
		timeout: generateTimeout,
	}, nil
}

// GenerateText sends the prompt to the configured model and returns the raw
// response text. Markdown wrapping and other noise are left to the caller.
func (m *GeminiModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	res, err := m.client.Models.GenerateContent(ctx, m.model, []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from model")
	}

	text := res.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return text, nil
}
