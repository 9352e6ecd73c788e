package ai

// chatRequest is the OpenAI-compatible chat completions request body
// accepted by OpenRouter.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the chat completions response we read.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *chatError   `json:"error,omitempty"`
}

type chatChoice struct {
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatError struct {
	Message string `json:"message"`
	Code    any    `json:"code"`
}

// rawAnalysis mirrors the JSON object the model is asked to produce.
// Fields are loosely typed so that a partially wrong answer still maps.
type rawAnalysis struct {
	FolderSuggestions any `json:"folderSuggestions"`
	Tags              any `json:"tags"`
	NewTags           any `json:"newTags"`
	Area              any `json:"area"`
	Reason            any `json:"reason"`
}
