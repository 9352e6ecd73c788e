package exporter

import (
	"strings"
	"testing"
	"time"

	"github.com/nikbrunner/inbox/internal/model"
)

func TestExportHTML_Empty(t *testing.T) {
	out := ExportHTML(Report{Vault: "/notes", GeneratedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)})

	if !strings.Contains(out, "<!DOCTYPE html>") {
		t.Error("expected DOCTYPE declaration")
	}
	if !strings.Contains(out, "<title>Inbox review</title>") {
		t.Error("expected title element")
	}
	if !strings.Contains(out, "/notes &middot; 2026-01-02 03:04 &middot; 0 notes") {
		t.Error("expected summary line")
	}
}

func TestExportHTML_Entries(t *testing.T) {
	sug := &model.OrganizationSuggestion{
		Path: "Inbox/Note1.md",
		FolderSuggestions: []model.FolderSuggestion{
			{Folder: "Projects/Alpha"},
			{Folder: "Areas/Work"},
			{Folder: "Projects/Beta", IsNew: true},
		},
		SelectedFolderIndex: 1,
		Tags:                []string{"#work", "#beta"},
		NewTags:             []string{"#beta"},
		Reason:              "Meeting <notes>",
	}

	out := ExportHTML(Report{
		Vault: "/notes",
		Entries: []Entry{
			{Path: "Inbox/Note1.md", Suggestion: sug, Target: "Areas/Work", Tags: sug.Tags},
			{Path: "Inbox/Idea.md", Target: "Resources/Notes", Manual: true, Tags: []string{"#todo"}},
			{Path: "Inbox/Fresh.md"},
		},
	})

	for _, want := range []string{
		"<td>Inbox/Note1.md</td><td>Areas/Work</td>",
		"<b>Areas/Work</b>",
		"Projects/Beta <span class=\"new\">(new)</span>",
		"<span class=\"new\">#beta</span>",
		"Meeting &lt;notes&gt;",
		"Resources/Notes <span class=\"muted\">(manual)</span>",
		"<td>Inbox/Fresh.md</td><td><span class=\"muted\">not scanned</span></td>",
		"3 notes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestExportHTML_SuggestionWithoutFolder(t *testing.T) {
	out := ExportHTML(Report{Entries: []Entry{
		{Path: "Inbox/x.md", Suggestion: &model.OrganizationSuggestion{Reason: "Unable to parse"}},
	}})

	if !strings.Contains(out, "no folder") {
		t.Error("expected no-folder marker")
	}
}

func TestDefaultExportPath(t *testing.T) {
	path, err := DefaultExportPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(path, ".html") || !strings.Contains(path, "inbox-review-") {
		t.Errorf("unexpected path %q", path)
	}
}
