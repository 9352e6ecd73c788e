package tui_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/inbox/internal/demo"
	"github.com/nikbrunner/inbox/internal/inbox"
	"github.com/nikbrunner/inbox/internal/tui"
	"github.com/nikbrunner/inbox/internal/tui/layout"
)

func viewText(app tui.App) string {
	return layout.StripANSI(app.View())
}

func assertContains(t *testing.T, output string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("view is missing %q:\n%s", w, output)
		}
	}
}

func TestView_NormalMode(t *testing.T) {
	app, _ := newTestApp(t)
	output := viewText(app)

	assertContains(t, output,
		"inbox",
		"Inbox/",
		"2 notes",
		"2 unscanned",
		"Idea.md",
		"Note1.md",
		"not scanned",
		"Not scanned yet",
		"Buy milk and eggs",
	)
}

func TestView_AfterScan(t *testing.T) {
	app, _ := newTestApp(t)
	app, _ = press(app, runes("j"))
	app, cmd := press(app, runes("s"))
	app = drain(app, cmd)

	output := viewText(app)
	assertContains(t, output,
		"1 unscanned",
		"> 1. 1. Projects/Project-Alpha/",
		"2. 2. Areas/Work/",
		"Mentions an active project",
		"#work",
		"demo-mock",
	)
}

func TestView_NewFolderMarked(t *testing.T) {
	app, _ := newTestApp(t)
	app, cmd := press(app, runes("s"))
	app = drain(app, cmd)

	assertContains(t, viewText(app), "2. Areas/Personal/Errands/ (new)")
}

func TestView_EmptyInbox(t *testing.T) {
	v := demo.NewVault()
	table := inbox.NewTable(inbox.TableParams{Provider: v, InboxPath: "Elsewhere"})
	if err := table.Refresh(); err != nil {
		t.Fatal(err)
	}
	app := tui.NewApp(tui.AppParams{Table: table, PreviewStyle: "notty"}).WithDimensions(80, 24)

	assertContains(t, viewText(app), "(inbox is empty)", "(no note selected)", "0 notes")
}

func TestView_PickerMode(t *testing.T) {
	app, _ := newTestApp(t)
	app, _ = press(app, runes("m"), runes("Proj"))

	output := viewText(app)
	assertContains(t, output, "Move Idea.md to", "1. Projects/Project-Alpha", "Proj")
}

func TestView_TagsMode(t *testing.T) {
	app, _ := newTestApp(t)
	app, _ = press(app, runes("t"), runes("errand"), tea.KeyMsg{Type: tea.KeyEnter})

	assertContains(t, viewText(app), "Tags for Idea.md", "#errand")
}

func TestView_FilterHighlightsMatch(t *testing.T) {
	app, _ := newTestApp(t)
	app, _ = press(app, runes("/"), runes("idea"), tea.KeyMsg{Type: tea.KeyEnter})

	output := viewText(app)
	assertContains(t, output, "/idea", "Idea.md")
	if strings.Contains(output, "Note1.md") {
		t.Errorf("filtered view should not list Note1.md:\n%s", output)
	}
}

func TestView_Help(t *testing.T) {
	app, _ := newTestApp(t)
	app, _ = press(app, runes("?"))

	assertContains(t, viewText(app), "Keys", "scan all", "pick folder", "yank path")
}
