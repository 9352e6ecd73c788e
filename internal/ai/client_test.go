package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T, status int, content string) (*httptest.Server, *chatRequest) {
	t.Helper()
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(content))
			return
		}
		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: content}}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(ClientParams{})
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(ClientParams{APIKey: "k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.baseURL != DefaultBaseURL {
		t.Errorf("got base URL %q, want %q", c.baseURL, DefaultBaseURL)
	}
	if c.Model() != DefaultModel {
		t.Errorf("got model %q, want %q", c.Model(), DefaultModel)
	}
	if c.language != English {
		t.Errorf("got language %q, want %q", c.language, English)
	}
}

func TestClient_Analyze(t *testing.T) {
	reply := "```json\n" + `{
  "folderSuggestions": [
    {"folder": "1. Projects/Project-Alpha", "isNew": false, "reason": "project meeting"},
    {"folder": "2. Areas/Work", "isNew": false, "reason": "work related"},
    {"folder": "1. Projects/Project-Beta", "isNew": true, "reason": "new project"}
  ],
  "tags": ["#meeting", "#project-alpha"],
  "newTags": ["#project-alpha"],
  "reason": "Meeting notes about project Alpha"
}` + "\n```"
	srv, req := newTestServer(t, http.StatusOK, reply)

	c, _ := NewClient(ClientParams{APIKey: "test-key", BaseURL: srv.URL + "/", Model: "test/model"})
	got, err := c.Analyze(context.Background(), "Meeting notes about project Alpha", []string{"#meeting"}, "- 1. Projects/\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Model != "test/model" {
		t.Errorf("got model %q", req.Model)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
		t.Fatalf("unexpected messages %+v", req.Messages)
	}
	if !strings.Contains(req.Messages[1].Content, "Meeting notes about project Alpha") {
		t.Error("expected document content in user prompt")
	}

	if len(got.FolderSuggestions) != 3 {
		t.Fatalf("expected 3 folder suggestions, got %d", len(got.FolderSuggestions))
	}
	if got.FolderSuggestions[2].Folder != "1. Projects/Project-Beta" || !got.FolderSuggestions[2].IsNew {
		t.Errorf("unexpected third suggestion %+v", got.FolderSuggestions[2])
	}
	if got.Reason != "Meeting notes about project Alpha" {
		t.Errorf("got reason %q", got.Reason)
	}
}

func TestClient_Analyze_HTTPError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusUnauthorized, `{"error":{"message":"bad key"}}`)

	c, _ := NewClient(ClientParams{APIKey: "test-key", BaseURL: srv.URL})
	_, err := c.Analyze(context.Background(), "x", nil, "")

	if !errors.Is(err, ErrAPIRequest) {
		t.Errorf("expected ErrAPIRequest, got %v", err)
	}
	if DescribeError(err) != "Authentication failed" {
		t.Errorf("got description %q", DescribeError(err))
	}
}

func TestClient_Analyze_MalformedReplyIsNotAnError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, "I think this belongs in Projects.")

	c, _ := NewClient(ClientParams{APIKey: "test-key", BaseURL: srv.URL})
	got, err := c.Analyze(context.Background(), "x", nil, "")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.FolderSuggestions) != 0 {
		t.Errorf("expected no suggestions, got %d", len(got.FolderSuggestions))
	}
	if got.Reason != ParseFailureReason {
		t.Errorf("got reason %q", got.Reason)
	}
}

func TestClient_Analyze_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c, _ := NewClient(ClientParams{APIKey: "k", BaseURL: srv.URL})
	_, err := c.Analyze(context.Background(), "x", nil, "")

	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestNewAnalyzer_UnknownProvider(t *testing.T) {
	_, err := NewAnalyzer(context.Background(), AnalyzerParams{Provider: "acme", APIKey: "k"})
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewAnalyzer_DefaultsToOpenRouter(t *testing.T) {
	a, err := NewAnalyzer(context.Background(), AnalyzerParams{APIKey: "k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := a.(*Client); !ok {
		t.Errorf("expected *Client, got %T", a)
	}
}

func TestNewAnalyzer_MissingKey(t *testing.T) {
	for _, p := range []Provider{ProviderOpenRouter, ProviderGemini} {
		a, err := NewAnalyzer(context.Background(), AnalyzerParams{Provider: p})
		if !errors.Is(err, ErrNoAPIKey) {
			t.Errorf("%s: expected ErrNoAPIKey, got %v", p, err)
		}
		if a != nil {
			t.Errorf("%s: expected nil analyzer", p)
		}
	}
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrNoAPIKey, "No API key configured"},
		{errors.New("dial tcp: lookup openrouter.ai: no such host"), "DNS failure"},
		{errors.New("context deadline exceeded"), "Timeout"},
		{errors.New("API request failed: status 429: slow down"), "Rate limited"},
		{errors.New("something else"), "something else"},
	}
	for _, tt := range tests {
		if got := DescribeError(tt.err); got != tt.want {
			t.Errorf("DescribeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
