package ai

import (
	"context"
	"fmt"

	"github.com/nikbrunner/inbox/internal/model"
)

// Provider names an analyzer backend.
type Provider string

const (
	ProviderOpenRouter Provider = "openrouter"
	ProviderGemini     Provider = "gemini"
)

// Analyzer classifies a note against the vault's tags and folder tree.
type Analyzer interface {
	Analyze(ctx context.Context, content string, allTags []string, folderTree string) (model.Analysis, error)
	Model() string
}

// AnalyzerParams selects and configures a backend.
type AnalyzerParams struct {
	Provider Provider
	APIKey   string
	BaseURL  string
	Model    string
	Language Language
}

// NewAnalyzer builds the analyzer for params.Provider. An empty provider
// means OpenRouter.
func NewAnalyzer(ctx context.Context, params AnalyzerParams) (Analyzer, error) {
	switch params.Provider {
	case "", ProviderOpenRouter:
		c, err := NewClient(ClientParams{
			APIKey:   params.APIKey,
			BaseURL:  params.BaseURL,
			Model:    params.Model,
			Language: params.Language,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case ProviderGemini:
		g, err := NewGeminiClient(ctx, GeminiParams{
			APIKey:   params.APIKey,
			Model:    params.Model,
			Language: params.Language,
		})
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", params.Provider)
	}
}
