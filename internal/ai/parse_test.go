package ai

import (
	"strings"
	"testing"
)

func TestParseAnalysis(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantFolders int
		wantTags    int
		wantReason  string
	}{
		{
			name:        "plain json",
			input:       `{"folderSuggestions":[{"folder":"A"}],"tags":["#a"],"reason":"r"}`,
			wantFolders: 1,
			wantTags:    1,
			wantReason:  "r",
		},
		{
			name:        "fenced json",
			input:       "```json\n{\"folderSuggestions\":[],\"tags\":[\"#a\",\"#b\"],\"reason\":\"fenced\"}\n```",
			wantFolders: 0,
			wantTags:    2,
			wantReason:  "fenced",
		},
		{
			name:        "bare fence",
			input:       "```\n{\"reason\":\"bare\"}\n```",
			wantReason:  "bare",
		},
		{
			name:       "prose",
			input:      "Sure! Here is my answer.",
			wantReason: ParseFailureReason,
		},
		{
			name:       "empty",
			input:      "",
			wantReason: ParseFailureReason,
		},
		{
			name:        "wrong field types",
			input:       `{"folderSuggestions":"A","tags":[1,"#ok",true],"reason":42}`,
			wantFolders: 0,
			wantTags:    1,
			wantReason:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAnalysis(tt.input)

			if len(got.FolderSuggestions) != tt.wantFolders {
				t.Errorf("got %d folders, want %d", len(got.FolderSuggestions), tt.wantFolders)
			}
			if len(got.Tags) != tt.wantTags {
				t.Errorf("got %d tags, want %d", len(got.Tags), tt.wantTags)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("got reason %q, want %q", got.Reason, tt.wantReason)
			}
			if got.FolderSuggestions == nil || got.Tags == nil || got.NewTags == nil {
				t.Error("expected non-nil slices")
			}
		})
	}
}

func TestParseAnalysis_FolderFields(t *testing.T) {
	got := ParseAnalysis(`{"folderSuggestions":[{"folder":"Projects/X","isNew":true,"reason":"new"},{"reason":"no folder"},"junk"]}`)

	if len(got.FolderSuggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(got.FolderSuggestions))
	}
	first := got.FolderSuggestions[0]
	if first.Folder != "Projects/X" || !first.IsNew || first.Reason != "new" {
		t.Errorf("unexpected first suggestion %+v", first)
	}
	if got.FolderSuggestions[1].Folder != "" || got.FolderSuggestions[1].IsNew {
		t.Errorf("missing fields should default, got %+v", got.FolderSuggestions[1])
	}
	if got.FolderSuggestions[2].Folder != "" {
		t.Errorf("non-object entry should map to empty, got %+v", got.FolderSuggestions[2])
	}
}

func TestParseAnalysis_Area(t *testing.T) {
	if got := ParseAnalysis(`{"area":"Health","reason":"r"}`); got.Area != "Health" {
		t.Errorf("expected area Health, got %q", got.Area)
	}
	if got := ParseAnalysis(`{"area":3}`); got.Area != "" {
		t.Errorf("non-string area should be dropped, got %q", got.Area)
	}
}

func TestSystemPrompt_Language(t *testing.T) {
	en := SystemPrompt(English)
	zh := SystemPrompt(Chinese)

	if !strings.Contains(en, "in English") {
		t.Error("expected English instruction")
	}
	if !strings.Contains(zh, "中文") {
		t.Error("expected Chinese instruction")
	}
	for _, p := range []string{en, zh} {
		if !strings.Contains(p, "exactly 3 folder suggestions") {
			t.Error("expected folder count rule")
		}
	}
}

func TestBuildUserPrompt(t *testing.T) {
	got := BuildUserPrompt("Buy milk and eggs", []string{"#todo", "#personal"}, "- 2. Areas/\n")

	for _, want := range []string{"#todo, #personal", "- 2. Areas/", "Buy milk and eggs", "```markdown"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}

	empty := BuildUserPrompt("x", nil, "")
	if !strings.Contains(empty, "(no tags yet)") || !strings.Contains(empty, "(no folders yet)") {
		t.Error("expected placeholders for empty vault")
	}
}
