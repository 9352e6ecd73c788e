package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/inbox/internal/inbox"
	"github.com/nikbrunner/inbox/internal/tui/layout"
)

// renderView creates the complete review table view.
func (a App) renderView() string {
	if a.mode == ModeHelp {
		return a.renderHelp()
	}

	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	panes := layout.CalculatePaneWidths(a.width, a.layoutConfig.Pane)

	left := a.renderListPane(panes.ListWidth, paneHeight)
	var right string
	switch a.mode {
	case ModePicker:
		right = a.renderPickerPane(panes.DetailWidth, paneHeight)
	case ModeTags:
		right = a.renderTagsPane(panes.DetailWidth, paneHeight)
	default:
		right = a.renderDetailPane(panes.DetailWidth, paneHeight)
	}

	columns := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), columns, a.renderStatusBar()),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders the inbox path, counts and scan progress.
func (a App) renderHeader() string {
	total := len(a.table.Files())
	pending := a.table.PendingCount()

	parts := []string{
		a.styles.Title.Render("inbox"),
		a.table.InboxPath() + "/",
		fmt.Sprintf("%d notes", total),
		fmt.Sprintf("%d unscanned", pending),
	}
	if a.scan.Active {
		parts = append(parts, a.styles.Scanning.Render(
			fmt.Sprintf("scanning %d/%d", a.scan.Completed, a.scan.Total)))
	}
	if a.filter.Query != "" && a.mode != ModeFilter {
		parts = append(parts, a.styles.Match.Render("/"+a.filter.Query))
	}
	return strings.Join(parts, "  ")
}

// renderListPane renders one line per inbox note.
func (a App) renderListPane(width, height int) string {
	var content strings.Builder

	if a.mode == ModeFilter {
		content.WriteString(a.filter.Input.View() + "\n\n")
	} else {
		content.WriteString(a.styles.Title.Render("Notes") + "\n\n")
	}

	visible := layout.CalculateVisibleHeight(height, 2)
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	if len(a.rows) == 0 {
		if a.filter.Query != "" {
			content.WriteString(a.styles.Empty.Render("(no matches)"))
		} else {
			content.WriteString(a.styles.Empty.Render("(inbox is empty)"))
		}
	} else {
		offset := layout.CalculateViewportOffset(a.cursor, len(a.rows), visible)
		end := min(offset+visible, len(a.rows))
		for i := offset; i < end; i++ {
			line := a.renderRow(a.rows[i], itemWidth)
			if i == a.cursor {
				content.WriteString(a.styles.RowSelected.Render(layout.StripANSI(line)))
			} else {
				content.WriteString(a.styles.Row.Render(line))
			}
			if i < end-1 {
				content.WriteString("\n")
			}
		}
	}

	style := a.styles.PaneActive
	if a.mode == ModePicker || a.mode == ModeTags {
		style = a.styles.Pane
	}
	return style.Width(width).Height(height).Render(content.String())
}

// rowGlyph marks the row's review state.
func (a App) rowGlyph(row inbox.RowView) string {
	switch {
	case row.Scanning:
		return a.styles.Scanning.Render("~")
	case row.Row.HasManualFolder():
		return a.styles.Manual.Render("*")
	case row.Suggestion != nil:
		return a.styles.Target.Render("+")
	default:
		return a.styles.Pending.Render(".")
	}
}

// renderRow renders "glyph name  target  tags" fitted to maxWidth.
func (a App) renderRow(row inbox.RowView, maxWidth int) string {
	cfg := a.layoutConfig
	nameWidth, targetWidth, tagWidth := layout.CalculateColumns(maxWidth-2, cfg.Table)

	name := a.displayName(row.File.Path)
	if idx, ok := a.filter.Match[row.File.Path]; ok {
		name = layout.HighlightMatches(name, a.shiftMatches(row.File.Path, idx), func(s string) string {
			return a.styles.Match.Render(s)
		})
		name = layout.TruncateANSIAware(name, nameWidth-1, cfg.Text)
	} else {
		name, _ = layout.TruncateText(name, nameWidth-1, cfg.Text)
	}

	var target string
	switch {
	case row.Target == "" && row.Suggestion == nil:
		target = a.styles.Pending.Render("not scanned")
	case row.Target == "":
		target = a.styles.Pending.Render("no folder")
	default:
		t, _ := layout.TruncateWithPrefixSuffix(row.Target, targetWidth-1, "> ", "/", cfg.Text)
		switch {
		case row.Row.HasManualFolder():
			target = a.styles.Manual.Render(t)
		case a.targetIsNew(row):
			target = a.styles.NewFolder.Render(t)
		default:
			target = a.styles.Target.Render(t)
		}
	}

	tags, _ := layout.TruncateText(strings.Join(row.Row.Tags, " "), tagWidth, cfg.Text)

	return a.rowGlyph(row) + " " +
		layout.PadRight(name, nameWidth) +
		layout.PadRight(target, targetWidth) +
		a.styles.Tag.Render(tags)
}

// displayName strips the inbox folder from a note path.
func (a App) displayName(path string) string {
	return strings.TrimPrefix(path, a.table.InboxPath()+"/")
}

// shiftMatches moves fuzzy match offsets from the full path onto the
// display name.
func (a App) shiftMatches(path string, idx []int) []int {
	cut := len(path) - len(a.displayName(path))
	out := make([]int, 0, len(idx))
	for _, i := range idx {
		if i >= cut {
			out = append(out, i-cut)
		}
	}
	return out
}

func (a App) targetIsNew(row inbox.RowView) bool {
	if row.Suggestion == nil || row.Row.HasManualFolder() {
		return false
	}
	c, ok := row.Suggestion.Candidate(row.Row.SelectedFolderIndex)
	return ok && c.IsNew && c.Folder == row.Target
}

// renderDetailPane renders the selected row's suggestion and a Markdown
// preview of the note.
func (a App) renderDetailPane(width, height int) string {
	var content strings.Builder
	row, ok := a.selectedRow()
	if !ok {
		content.WriteString(a.styles.Empty.Render("(no note selected)"))
		return a.styles.Pane.Width(width).Height(height).Render(content.String())
	}

	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
	lines := a.detailLines(row, itemWidth)
	for _, l := range lines {
		content.WriteString(l + "\n")
	}

	remaining := height - len(lines) - 1
	if remaining > 0 && strings.TrimSpace(row.File.Content) != "" {
		content.WriteString("\n")
		preview := a.preview.render(row.File.Content, itemWidth)
		previewLines := strings.Split(strings.Trim(preview, "\n"), "\n")
		if len(previewLines) > remaining {
			previewLines = previewLines[:remaining]
		}
		content.WriteString(strings.Join(previewLines, "\n"))
	}

	return a.styles.Pane.Width(width).Height(height).MaxHeight(height + 2).Render(content.String())
}

func (a App) detailLines(row inbox.RowView, width int) []string {
	cfg := a.layoutConfig.Text
	label := a.styles.Label.Render

	title, _ := layout.TruncateText(row.File.Path, width, cfg)
	lines := []string{a.styles.Title.Render(title), ""}

	switch {
	case row.Scanning:
		lines = append(lines, a.styles.Scanning.Render("Scanning..."))
	case row.Suggestion == nil && !row.Row.HasManualFolder():
		lines = append(lines, a.styles.Pending.Render("Not scanned yet. Press s to scan or m to pick a folder."))
	}

	if row.Row.HasManualFolder() {
		lines = append(lines, label("Folder")+a.styles.Manual.Render(row.Row.ManualFolderPath+"/ (manual)"))
	}

	if s := row.Suggestion; s != nil {
		for i, c := range s.FolderSuggestions {
			marker := "  "
			if i == row.Row.SelectedFolderIndex && !row.Row.HasManualFolder() {
				marker = "> "
			}
			text := fmt.Sprintf("%s%d. %s/", marker, i+1, c.Folder)
			if c.IsNew {
				text += " (new)"
			}
			line, _ := layout.TruncateText(text, width, cfg)
			if c.IsNew {
				line = a.styles.NewFolder.Render(line)
			}
			lines = append(lines, line)
			if c.Reason != "" {
				reason, _ := layout.TruncateText("     "+c.Reason, width, cfg)
				lines = append(lines, a.styles.Empty.Render(reason))
			}
		}
		if len(s.FolderSuggestions) == 0 {
			lines = append(lines, a.styles.Empty.Render("(no folder suggested)"))
		}
		lines = append(lines, "")
		if s.Reason != "" {
			reason, _ := layout.TruncateText(s.Reason, width-10, cfg)
			lines = append(lines, label("Reason")+reason)
		}
		if s.Model != "" {
			lines = append(lines, label("Model")+a.styles.Empty.Render(s.Model))
		}
	}

	lines = append(lines, label("Tags")+a.renderTagList(row.Row.Tags, row.NewTags, -1))
	return lines
}

// renderTagList renders tags, marking AI-introduced tags and the
// highlighted one.
func (a App) renderTagList(tags, fresh []string, highlight int) string {
	if len(tags) == 0 {
		return a.styles.Empty.Render("(none)")
	}
	isNew := make(map[string]bool, len(fresh))
	for _, t := range fresh {
		isNew[t] = true
	}
	parts := make([]string, len(tags))
	for i, t := range tags {
		switch {
		case i == highlight:
			parts[i] = a.styles.RowSelected.Render(t)
		case isNew[t]:
			parts[i] = a.styles.NewTag.Render(t + "*")
		default:
			parts[i] = a.styles.Tag.Render(t)
		}
	}
	return strings.Join(parts, " ")
}

func (a App) renderPickerPane(width, height int) string {
	var content strings.Builder
	row, _ := a.selectedRow()

	title, _ := layout.TruncateText("Move "+a.displayName(row.File.Path)+" to", layout.CalculateItemWidth(width, a.layoutConfig.Pane), a.layoutConfig.Text)
	content.WriteString(a.styles.Title.Render(title) + "\n\n")
	content.WriteString(a.table.PickerView(row.File.Path))
	content.WriteString("\n\n")
	content.WriteString(a.renderHintsInline([]Hint{
		{Key: "Enter", Desc: "choose"},
		{Key: "Tab", Desc: "complete"},
		{Key: "Esc", Desc: "cancel"},
	}))

	return a.styles.PaneActive.Width(width).Height(height).Render(content.String())
}

func (a App) renderTagsPane(width, height int) string {
	var content strings.Builder
	row, _ := a.selectedRow()

	content.WriteString(a.styles.Title.Render("Tags for "+a.displayName(row.File.Path)) + "\n\n")
	if ed := a.tags.Editor; ed != nil {
		content.WriteString(a.renderTagList(ed.Tags(), row.NewTags, a.tags.Cursor) + "\n\n")
	}
	content.WriteString(a.tags.Input.View())
	content.WriteString("\n\n")
	content.WriteString(a.renderHintsInline([]Hint{
		{Key: "Enter", Desc: "add"},
		{Key: "Bksp", Desc: "remove"},
		{Key: "Esc", Desc: "done"},
	}))

	return a.styles.PaneActive.Width(width).Height(height).Render(content.String())
}

// renderStatusBar renders the status message above the contextual hints.
func (a App) renderStatusBar() string {
	status := a.status.Text
	if a.status.Error {
		status = a.styles.Error.Render(status)
	}
	return status + "\n" + a.renderHints(a.getContextualHints())
}

// renderHelp renders the key binding overlay.
func (a App) renderHelp() string {
	cfg := a.layoutConfig.Modal
	width := layout.CalculateModalWidth(a.width, cfg)
	bindings := a.keys.HelpBindings()
	shown := layout.CalculateHelpRows(a.height, len(bindings), cfg)

	var content strings.Builder
	content.WriteString(a.styles.Title.Render("Keys") + "\n\n")
	for _, b := range bindings[:shown] {
		h := b.Help()
		content.WriteString(layout.PadRight(a.styles.HintKey.Render(h.Key), cfg.HelpKeyColumnWidth))
		content.WriteString(h.Desc + "\n")
	}
	if shown < len(bindings) {
		content.WriteString(a.styles.Empty.Render(fmt.Sprintf("+%d more", len(bindings)-shown)) + "\n")
	}
	content.WriteString("\n")
	content.WriteString(a.renderHints(a.getContextualHints()))

	modal := a.styles.Modal.Width(width).Render(content.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
}

// previewCache renders note content with glamour, reusing the renderer
// while the width stays the same.
type previewCache struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
	rendered map[string]string
}

func newPreviewCache(style string) *previewCache {
	return &previewCache{style: style}
}

func (p *previewCache) render(content string, width int) string {
	if p.renderer == nil || p.width != width {
		styleOpt := glamour.WithAutoStyle()
		if p.style != "" {
			styleOpt = glamour.WithStandardStyle(p.style)
		}
		r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
		if err != nil {
			return content
		}
		p.renderer = r
		p.width = width
		p.rendered = make(map[string]string)
	}
	if out, ok := p.rendered[content]; ok {
		return out
	}
	out, err := p.renderer.Render(content)
	if err != nil {
		return content
	}
	p.rendered[content] = out
	return out
}
