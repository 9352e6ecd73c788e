package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/inbox/internal/picker"
	"github.com/nikbrunner/inbox/internal/tui/layout"
)

// Top-left corner of the pane row: the app padding plus the header line.
const (
	paneOriginX = 2
	paneOriginY = 2
)

// pickerOptionsTop is the number of picker pane lines above the first
// option: border, title, blank line and the search line.
const pickerOptionsTop = 4

func (a App) detailPaneRect() layout.Rect {
	return layout.CalculateDetailPaneRect(a.width, a.height, paneOriginX, paneOriginY, a.layoutConfig.Pane)
}

// pickerOptionAt maps a screen cell to an option of the open picker.
func (a App) pickerOptionAt(path string, x, y int) (int, bool) {
	r := a.detailPaneRect()
	if !r.Contains(x, y) || x == r.X || x == r.X+r.W-1 {
		return -1, false
	}
	_, _, opts := a.table.PickerState(path)
	i := y - r.Y - pickerOptionsTop
	if i < 0 || i >= len(opts) {
		return -1, false
	}
	return i, true
}

// handlePickerMouse chooses or highlights the option under the pointer.
// A press anywhere outside the picker pane counts as an outside
// interaction and closes every open picker.
func (a App) handlePickerMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	row, ok := a.selectedRow()
	if !ok {
		a.mode = ModeNormal
		return a, nil
	}
	path := row.File.Path

	if !a.detailPaneRect().Contains(msg.X, msg.Y) {
		if msg.Action == tea.MouseActionPress {
			a.table.NotifyOutside()
			a.syncPickerMode()
			a.refreshRows()
		}
		return a, nil
	}

	i, ok := a.pickerOptionAt(path, msg.X, msg.Y)
	if !ok {
		return a, nil
	}
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if res := a.table.PickerChoose(path, i); res.Action == picker.ActionCommit {
			a.setStatus("Folder: %s", res.Folder)
		}
		a.syncPickerMode()
		a.refreshRows()
	case msg.Action == tea.MouseActionMotion:
		a.table.PickerHover(path, i)
	}
	return a, nil
}
