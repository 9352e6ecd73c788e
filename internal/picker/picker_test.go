package picker

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var paraFolders = []string{
	"1. Projects",
	"1. Projects/Project-Alpha",
	"2. Areas",
	"2. Areas/Health",
	"3. Resources",
	"4. Archive",
}

func openPicker(folders []string, search string) *FolderPicker {
	p := New(folders, nil)
	p.Open(nil)
	p.SetSearch(search)
	return p
}

func TestFolderPicker_InitialState(t *testing.T) {
	p := New(paraFolders, nil)

	if p.IsOpen() {
		t.Error("expected picker to start closed")
	}
	if p.Highlight() != -1 {
		t.Errorf("expected highlight -1, got %d", p.Highlight())
	}
	if got := p.HandleKey(KeyEnter); got.Action != ActionNone {
		t.Errorf("closed picker should ignore keys, got %v", got.Action)
	}
}

func TestFolderPicker_FilterIsCaseInsensitiveSubstring(t *testing.T) {
	p := openPicker(paraFolders, "PROJ")

	got := p.Filtered()
	want := []string{"1. Projects", "1. Projects/Project-Alpha"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFolderPicker_FilterCap(t *testing.T) {
	var folders []string
	for i := 0; i < 20; i++ {
		folders = append(folders, fmt.Sprintf("Projects/P%02d", i))
	}
	p := openPicker(folders, "projects/p")

	if got := len(p.Filtered()); got != MaxResults {
		t.Errorf("expected %d filtered, got %d", MaxResults, got)
	}
	opts := p.Options()
	if len(opts) != MaxResults+1 {
		t.Errorf("expected %d options with create, got %d", MaxResults+1, len(opts))
	}
	if !opts[0].Create {
		t.Error("expected create option first")
	}
	if opts[1].Folder != "Projects/P00" || opts[MaxResults].Folder != "Projects/P14" {
		t.Errorf("expected original order, got %q..%q", opts[1].Folder, opts[MaxResults].Folder)
	}
}

func TestFolderPicker_CreateOption(t *testing.T) {
	tests := []struct {
		search string
		want   bool
	}{
		{"", false},
		{"2. areas", false},
		{"2. Areas", false},
		{"2. Are", true},
		{"Brand/New", true},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			p := openPicker(paraFolders, tt.search)
			if got := p.HasCreateOption(); got != tt.want {
				t.Errorf("HasCreateOption(%q) = %v, want %v", tt.search, got, tt.want)
			}
		})
	}
}

func TestFolderPicker_ArrowDownClampsAtLastItem(t *testing.T) {
	p := openPicker(paraFolders, "areas")
	// options: create("areas"), "2. Areas", "2. Areas/Health"

	for i, want := range []int{0, 1, 2, 2} {
		p.HandleKey(KeyDown)
		if p.Highlight() != want {
			t.Errorf("press %d: expected highlight %d, got %d", i+1, want, p.Highlight())
		}
	}
}

func TestFolderPicker_ArrowUpNeverReturnsToNone(t *testing.T) {
	p := openPicker(paraFolders, "")

	p.HandleKey(KeyUp)
	if p.Highlight() != 0 {
		t.Errorf("up from none: expected 0, got %d", p.Highlight())
	}

	p.HandleKey(KeyDown)
	p.HandleKey(KeyUp)
	p.HandleKey(KeyUp)
	if p.Highlight() != 0 {
		t.Errorf("expected highlight to stay at 0, got %d", p.Highlight())
	}
}

func TestFolderPicker_ArrowDownWithNoOptions(t *testing.T) {
	p := openPicker(nil, "")

	p.HandleKey(KeyDown)
	if p.Highlight() != -1 {
		t.Errorf("expected highlight -1 with no options, got %d", p.Highlight())
	}
}

func TestFolderPicker_TypingResetsHighlight(t *testing.T) {
	p := openPicker(paraFolders, "")
	p.HandleKey(KeyDown)
	p.HandleKey(KeyDown)

	p.HandleMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	if p.Search() != "a" {
		t.Errorf("expected search %q, got %q", "a", p.Search())
	}
	if p.Highlight() != -1 {
		t.Errorf("expected highlight reset to -1, got %d", p.Highlight())
	}
}

func TestFolderPicker_Backspace(t *testing.T) {
	p := openPicker(paraFolders, "héa")

	p.HandleMsg(tea.KeyMsg{Type: tea.KeyBackspace})

	if p.Search() != "hé" {
		t.Errorf("got %q, want %q", p.Search(), "hé")
	}
}

func TestFolderPicker_Enter(t *testing.T) {
	tests := []struct {
		name   string
		search string
		downs  int
		want   string
	}{
		{"highlighted create option", "Areas", 1, "Areas"},
		{"highlighted folder after create", "Areas", 2, "2. Areas"},
		{"no highlight commits create", "Areas", 0, "Areas"},
		{"no highlight no create commits first", "2. areas", 0, "2. Areas"},
		{"highlighted folder without create", "2. areas", 2, "2. Areas/Health"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := openPicker(paraFolders, tt.search)
			for i := 0; i < tt.downs; i++ {
				p.HandleKey(KeyDown)
			}

			got := p.HandleKey(KeyEnter)

			if got.Action != ActionCommit {
				t.Fatalf("expected commit, got %v", got.Action)
			}
			if got.Folder != tt.want {
				t.Errorf("got %q, want %q", got.Folder, tt.want)
			}
			if p.IsOpen() || p.Search() != "" || p.Highlight() != -1 {
				t.Error("expected picker closed and reset after commit")
			}
		})
	}
}

func TestFolderPicker_EnterWithNothingToCommit(t *testing.T) {
	p := openPicker(nil, "")

	got := p.HandleKey(KeyEnter)

	if got.Action != ActionNone {
		t.Errorf("expected no action, got %v", got.Action)
	}
	if !p.IsOpen() {
		t.Error("expected picker to stay open")
	}
}

func TestFolderPicker_TabCompletesFirstMatch(t *testing.T) {
	p := openPicker(paraFolders, "health")
	// create option present, so highlight jumps past it

	got := p.HandleKey(KeyTab)

	if got.Action != ActionNone {
		t.Errorf("tab must not commit, got %v", got.Action)
	}
	if p.Search() != "2. Areas/Health" {
		t.Errorf("got search %q", p.Search())
	}
	if p.Highlight() != 1 {
		t.Errorf("expected highlight 1, got %d", p.Highlight())
	}
	if !p.IsOpen() {
		t.Error("tab must keep the picker open")
	}
}

func TestFolderPicker_TabWithoutCreateOption(t *testing.T) {
	p := openPicker(paraFolders, "")

	p.HandleKey(KeyTab)

	if p.Search() != "1. Projects" {
		t.Errorf("got search %q", p.Search())
	}
	if p.Highlight() != 0 {
		t.Errorf("expected highlight 0, got %d", p.Highlight())
	}
}

func TestFolderPicker_TabCompletesHighlighted(t *testing.T) {
	p := openPicker(paraFolders, "areas")
	p.HandleKey(KeyDown)
	p.HandleKey(KeyDown)
	p.HandleKey(KeyDown)

	p.HandleKey(KeyTab)

	if p.Search() != "2. Areas/Health" {
		t.Errorf("got search %q", p.Search())
	}
	if p.Highlight() != 2 {
		t.Errorf("highlight should be unchanged, got %d", p.Highlight())
	}
}

func TestFolderPicker_EscClosesWithoutCommit(t *testing.T) {
	p := openPicker(paraFolders, "proj")
	p.HandleKey(KeyDown)

	got := p.HandleMsg(tea.KeyMsg{Type: tea.KeyEsc})

	if got.Action != ActionClose {
		t.Errorf("expected close, got %v", got.Action)
	}
	if p.IsOpen() || p.Search() != "" {
		t.Error("expected closed picker with cleared search")
	}
}

func TestFolderPicker_Choose(t *testing.T) {
	p := openPicker(paraFolders, "archive")

	got := p.Choose(1)

	if got.Action != ActionCommit || got.Folder != "4. Archive" {
		t.Errorf("got %+v", got)
	}
	if got := p.Choose(0); got.Action != ActionNone {
		t.Errorf("closed picker should not commit, got %+v", got)
	}
}

func TestFolderPicker_OpenResetsTransientState(t *testing.T) {
	p := openPicker(paraFolders, "proj")
	p.HandleKey(KeyDown)
	p.Close()

	p.Open(nil)

	if p.Search() != "" || p.Highlight() != -1 {
		t.Errorf("expected reset state, got search %q highlight %d", p.Search(), p.Highlight())
	}
}

func TestKeyFromMsg(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want Key
	}{
		{tea.KeyMsg{Type: tea.KeyDown}, KeyDown},
		{tea.KeyMsg{Type: tea.KeyCtrlN}, KeyDown},
		{tea.KeyMsg{Type: tea.KeyUp}, KeyUp},
		{tea.KeyMsg{Type: tea.KeyEnter}, KeyEnter},
		{tea.KeyMsg{Type: tea.KeyTab}, KeyTab},
		{tea.KeyMsg{Type: tea.KeyEsc}, KeyEsc},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, KeyNone},
	}
	for _, tt := range tests {
		if got := KeyFromMsg(tt.msg); got != tt.want {
			t.Errorf("KeyFromMsg(%v) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}
