package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "accept")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "j/k:move s:scan a:accept"
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "Enter confirm  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint
	Edit   []Hint
	Action []Hint
	System []Hint
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		return a.getNormalModeHints()
	case ModeFilter:
		return HintSet{
			Nav:    []Hint{{Key: "type", Desc: "filter"}},
			Action: []Hint{{Key: "Enter", Desc: "apply"}},
			System: []Hint{{Key: "Esc", Desc: "clear"}},
		}
	case ModePicker:
		return HintSet{
			Nav: []Hint{
				{Key: "↑/↓", Desc: "nav"},
				{Key: "Tab", Desc: "complete"},
				{Key: "type", Desc: "search"},
			},
			Action: []Hint{{Key: "Enter", Desc: "choose"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeTags:
		return HintSet{
			Nav: []Hint{{Key: "←/→", Desc: "select tag"}},
			Action: []Hint{
				{Key: "Enter", Desc: "add"},
				{Key: "Bksp", Desc: "remove"},
			},
			System: []Hint{{Key: "Esc", Desc: "done"}},
		}
	case ModeHelp:
		return HintSet{
			System: []Hint{{Key: "?/q/Esc", Desc: "close"}},
		}
	default:
		return HintSet{}
	}
}

// getNormalModeHints returns hints for ModeNormal, depending on what the
// selected row allows.
func (a App) getNormalModeHints() HintSet {
	hints := HintSet{
		Nav: []Hint{{Key: "j/k", Desc: "move"}},
		Edit: []Hint{
			{Key: "m", Desc: "folder"},
			{Key: "t", Desc: "tags"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}

	row, ok := a.selectedRow()
	if !ok {
		hints.Edit = nil
		hints.Action = []Hint{{Key: "r", Desc: "refresh"}}
		return hints
	}
	if row.Suggestion != nil && len(row.Suggestion.FolderSuggestions) > 1 && row.Row.ManualFolderPath == "" {
		hints.Nav = append(hints.Nav, Hint{Key: "h/l", Desc: "candidate"})
	}
	if row.CanScan {
		hints.Action = append(hints.Action, Hint{Key: "s", Desc: "scan"})
	}
	if row.Target != "" {
		hints.Action = append(hints.Action, Hint{Key: "a", Desc: "accept"})
	}
	if row.Suggestion != nil {
		hints.Action = append(hints.Action, Hint{Key: "x", Desc: "ignore"})
	}
	hints.Action = append(hints.Action, Hint{Key: "/", Desc: "filter"})
	return hints
}
