package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/nikbrunner/inbox/internal/model"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiParams configures a Gemini client.
type GeminiParams struct {
	APIKey   string
	Model    string
	Language Language
}

// GeminiClient analyzes notes with the Gemini API.
type GeminiClient struct {
	client   *genai.Client
	model    string
	language Language
}

// NewGeminiClient creates a Gemini-backed analyzer.
// Returns ErrNoAPIKey if params.APIKey is empty.
func NewGeminiClient(ctx context.Context, params GeminiParams) (*GeminiClient, error) {
	if params.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  params.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	g := &GeminiClient{
		client:   client,
		model:    params.Model,
		language: params.Language,
	}
	if g.model == "" || strings.Contains(g.model, "/") {
		// OpenRouter-style ids such as "anthropic/..." mean nothing here
		g.model = DefaultGeminiModel
	}
	if g.language == "" {
		g.language = English
	}
	return g, nil
}

// Model returns the Gemini model name.
func (g *GeminiClient) Model() string {
	return g.model
}

// Analyze classifies one note. Error semantics match Client.Analyze.
func (g *GeminiClient) Analyze(ctx context.Context, content string, allTags []string, folderTree string) (model.Analysis, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: SystemPrompt(g.language)}},
		},
		ResponseMIMEType: "application/json",
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(BuildUserPrompt(content, allTags, folderTree)), config)
	if err != nil {
		return model.Analysis{}, fmt.Errorf("%w: %v", ErrAPIRequest, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return model.Analysis{}, ErrInvalidResponse
	}

	return ParseAnalysis(resp.Candidates[0].Content.Parts[0].Text), nil
}
