package ai

import (
	"encoding/json"
	"strings"

	"github.com/nikbrunner/inbox/internal/model"
)

// ParseFailureReason is the reason reported when a response is not JSON.
const ParseFailureReason = "Unable to parse the AI response as JSON"

// ParseAnalysis turns a model response into an Analysis. Markdown code
// fences are stripped first. Fields of the wrong type are dropped rather
// than failing the whole response; text that is not JSON at all yields an
// empty Analysis carrying ParseFailureReason.
func ParseAnalysis(text string) model.Analysis {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return emptyAnalysis(ParseFailureReason)
	}

	return model.Analysis{
		FolderSuggestions: folderSuggestions(raw.FolderSuggestions),
		Tags:              stringList(raw.Tags),
		NewTags:           stringList(raw.NewTags),
		Area:              str(raw.Area),
		Reason:            str(raw.Reason),
	}
}

func emptyAnalysis(reason string) model.Analysis {
	return model.Analysis{
		FolderSuggestions: []model.FolderSuggestion{},
		Tags:              []string{},
		NewTags:           []string{},
		Reason:            reason,
	}
}

func folderSuggestions(v any) []model.FolderSuggestion {
	items, ok := v.([]any)
	if !ok {
		return []model.FolderSuggestion{}
	}
	out := make([]model.FolderSuggestion, 0, len(items))
	for _, item := range items {
		obj, _ := item.(map[string]any)
		out = append(out, model.FolderSuggestion{
			Folder: str(obj["folder"]),
			Reason: str(obj["reason"]),
			IsNew:  truthy(obj["isNew"]),
		})
	}
	return out
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	}
	return false
}
