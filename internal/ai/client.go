package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nikbrunner/inbox/internal/model"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "anthropic/claude-3.5-sonnet"

	maxTokens = 1024
	appTitle  = "inbox"
)

// ClientParams configures an OpenRouter client.
type ClientParams struct {
	APIKey     string
	BaseURL    string
	Model      string
	Language   Language
	HTTPClient *http.Client
}

// Client analyzes notes through an OpenAI-compatible chat completions
// endpoint, OpenRouter by default.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	language   Language
	httpClient *http.Client
}

// NewClient creates a new OpenRouter client.
// Returns ErrNoAPIKey if params.APIKey is empty.
func NewClient(params ClientParams) (*Client, error) {
	if params.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	c := &Client{
		apiKey:     params.APIKey,
		baseURL:    strings.TrimRight(params.BaseURL, "/"),
		model:      params.Model,
		language:   params.Language,
		httpClient: params.HTTPClient,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.language == "" {
		c.language = English
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return c, nil
}

// Model returns the model identifier requests are sent with.
func (c *Client) Model() string {
	return c.model
}

// Analyze asks the model to classify one note. Transport and HTTP errors
// are returned; a reply that is not valid JSON is not an error and comes
// back as an empty Analysis with a parse-failure reason.
func (c *Client) Analyze(ctx context.Context, content string, allTags []string, folderTree string) (model.Analysis, error) {
	reqBody := chatRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt(c.language)},
			{Role: "user", Content: BuildUserPrompt(content, allTags, folderTree)},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return model.Analysis{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return model.Analysis{}, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Title", appTitle)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Analysis{}, fmt.Errorf("%w: %v", ErrAPIRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Analysis{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return model.Analysis{}, fmt.Errorf("%w: status %d: %s", ErrAPIRequest, resp.StatusCode, string(body))
	}

	var apiResp chatResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return model.Analysis{}, fmt.Errorf("unmarshal response: %w", err)
	}
	if apiResp.Error != nil {
		return model.Analysis{}, fmt.Errorf("%w: %s", ErrAPIRequest, apiResp.Error.Message)
	}
	if len(apiResp.Choices) == 0 {
		return model.Analysis{}, ErrInvalidResponse
	}

	return ParseAnalysis(apiResp.Choices[0].Message.Content), nil
}
