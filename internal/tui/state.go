package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/inbox/internal/review"
	"github.com/nikbrunner/inbox/internal/tui/layout"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModePicker
	ModeTags
	ModeHelp
)

// FilterState holds state for the fuzzy row filter.
type FilterState struct {
	Input textinput.Model
	Query string            // active filter query (persists after closing filter)
	Match map[string][]int // matched rune indexes per path
}

// NewFilterState creates a FilterState with an initialized input.
func NewFilterState(cfg layout.LayoutConfig) FilterState {
	input := textinput.New()
	input.Placeholder = "Filter notes..."
	input.CharLimit = cfg.Input.FilterCharLimit
	input.Width = cfg.Input.FilterWidth
	return FilterState{Input: input}
}

// Reset clears the filter.
func (f *FilterState) Reset() {
	f.Input.Reset()
	f.Query = ""
	f.Match = nil
}

// TagState holds state for editing one row's tags.
type TagState struct {
	Input  textinput.Model
	Editor *review.TagEditor
	Path   string
	Cursor int // highlighted tag, -1 = input
}

// NewTagState creates a TagState with an initialized input.
func NewTagState(cfg layout.LayoutConfig) TagState {
	input := textinput.New()
	input.Placeholder = "new tag"
	input.CharLimit = cfg.Input.TagCharLimit
	input.Width = cfg.Input.StandardWidth
	return TagState{Input: input, Cursor: -1}
}

// Reset ends the edit session.
func (t *TagState) Reset() {
	t.Input.Reset()
	t.Input.Blur()
	t.Editor = nil
	t.Path = ""
	t.Cursor = -1
}

// ScanState tracks a running scan-all.
type ScanState struct {
	Active    bool
	Completed int
	Total     int
}

// StatusState is the one-line message under the table.
type StatusState struct {
	Text  string
	Error bool
}
