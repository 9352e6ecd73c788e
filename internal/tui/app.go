package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/inbox/internal/ai"
	"github.com/nikbrunner/inbox/internal/inbox"
	"github.com/nikbrunner/inbox/internal/model"
	"github.com/nikbrunner/inbox/internal/picker"
	"github.com/nikbrunner/inbox/internal/review"
	"github.com/nikbrunner/inbox/internal/search"
	"github.com/nikbrunner/inbox/internal/tui/layout"
)

// App is the main bubbletea model for the inbox review table.
type App struct {
	table        *inbox.Table
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig
	log          *slog.Logger
	ctx          context.Context

	mode   Mode
	rows   []inbox.RowView // visible rows after filtering
	cursor int

	// For gg command
	lastKeyWasG bool

	filter FilterState
	tags   TagState
	scan   ScanState
	status StatusState

	changes   chan struct{}
	progress  chan tea.Msg
	preview   *previewCache
	clipboard func(string) error

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Table        *inbox.Table
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
	Logger       *slog.Logger
	Context      context.Context
	PreviewStyle string             // glamour style name, empty for auto
	Clipboard    func(string) error // optional, uses the system clipboard if nil
}

type (
	inboxChangedMsg struct{}
	scanDoneMsg     struct {
		path string
		err  error
	}
	scanProgressMsg struct{ completed, total int }
	scanAllDoneMsg  struct {
		suggested int
		err       error
	}
	acceptDoneMsg struct {
		path   string
		target string
		err    error
	}
)

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	log := params.Logger
	if log == nil {
		log = slog.Default()
	}
	ctx := params.Context
	if ctx == nil {
		ctx = context.Background()
	}
	clip := params.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}

	app := App{
		table:        params.Table,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutCfg,
		log:          log,
		ctx:          ctx,
		filter:       NewFilterState(layoutCfg),
		tags:         NewTagState(layoutCfg),
		changes:      make(chan struct{}, 1),
		preview:      newPreviewCache(params.PreviewStyle),
		clipboard:    clip,
		width:        80,
		height:       24,
	}

	changes := app.changes
	app.table.SetOnChange(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	app.refreshRows()
	return app
}

// WithDimensions returns a copy of the app sized to width x height.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Rows returns the visible rows.
func (a App) Rows() []inbox.RowView {
	return a.rows
}

// Status returns the current status line text.
func (a App) Status() string {
	return a.status.Text
}

// refreshRows rebuilds the visible rows from the table and the active
// filter, keeping the cursor on the same file when it is still visible.
func (a *App) refreshRows() {
	var current string
	if row, ok := a.selectedRow(); ok {
		current = row.File.Path
	}

	a.table.Sync()
	all := a.table.Rows()
	if a.filter.Query == "" {
		a.rows = all
		a.filter.Match = nil
	} else {
		files := make([]model.File, len(all))
		for i, r := range all {
			files[i] = r.File
		}
		results := search.FuzzyFilterFiles(files, a.filter.Query)
		a.rows = make([]inbox.RowView, len(results))
		a.filter.Match = make(map[string][]int, len(results))
		for i, res := range results {
			a.rows[i] = all[res.Index]
			a.filter.Match[res.File.Path] = res.MatchedIndexes
		}
	}

	for i, r := range a.rows {
		if r.File.Path == current {
			a.cursor = i
			return
		}
	}
	if a.cursor >= len(a.rows) {
		a.cursor = max(len(a.rows)-1, 0)
	}
}

func (a App) selectedRow() (inbox.RowView, bool) {
	if a.cursor < 0 || a.cursor >= len(a.rows) {
		return inbox.RowView{}, false
	}
	return a.rows[a.cursor], true
}

func (a *App) setStatus(format string, args ...any) {
	a.status = StatusState{Text: fmt.Sprintf(format, args...)}
}

func (a *App) setError(format string, args ...any) {
	a.status = StatusState{Text: fmt.Sprintf(format, args...), Error: true}
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return inboxChangedMsg{}
	}
}

func waitForProgress(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return waitForChange(a.changes)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case inboxChangedMsg:
		a.refreshRows()
		return a, waitForChange(a.changes)

	case scanDoneMsg:
		if msg.err != nil {
			a.setError("Scan failed: %s", ai.DescribeError(msg.err))
		} else {
			a.setStatus("Scanned %s", msg.path)
		}
		a.refreshRows()
		a.reseedTagEditor()
		return a, nil

	case scanProgressMsg:
		a.scan.Completed = msg.completed
		a.scan.Total = msg.total
		a.refreshRows()
		return a, waitForProgress(a.progress)

	case scanAllDoneMsg:
		a.scan = ScanState{}
		a.progress = nil
		if msg.err != nil {
			a.setError("Scan all failed: %s", ai.DescribeError(msg.err))
		} else {
			a.setStatus("Scanned %d notes", msg.suggested)
		}
		a.refreshRows()
		a.reseedTagEditor()
		return a, nil

	case acceptDoneMsg:
		if msg.err != nil {
			a.setError("%s", inbox.Notice(msg.err))
		} else {
			a.setStatus("Moved %s to %s", msg.path, msg.target)
		}
		a.refreshRows()
		return a, nil

	case tea.MouseMsg:
		if a.mode == ModePicker {
			return a.handlePickerMouse(msg)
		}
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeFilter:
			return a.handleFilterKey(msg)
		case ModePicker:
			return a.handlePickerKey(msg)
		case ModeTags:
			return a.handleTagsKey(msg)
		case ModeHelp:
			if key.Matches(msg, a.keys.Help, a.keys.Quit) || msg.Type == tea.KeyEsc {
				a.mode = ModeNormal
			}
			return a, nil
		default:
			return a.handleNormalKey(msg)
		}
	}

	return a, nil
}

func (a App) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.moveCursor(0)
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	row, hasRow := a.selectedRow()
	path := row.File.Path

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.rows)-1 {
			a.moveCursor(a.cursor + 1)
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.moveCursor(a.cursor - 1)
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.rows) > 0 {
			a.moveCursor(len(a.rows) - 1)
		}

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp

	case key.Matches(msg, a.keys.Filter):
		a.mode = ModeFilter
		a.filter.Input.SetValue(a.filter.Query)
		a.filter.Input.Focus()

	case key.Matches(msg, a.keys.Refresh):
		if err := a.table.Refresh(); err != nil {
			a.setError("Refresh failed: %v", err)
		} else {
			a.setStatus("Refreshed")
		}
		a.refreshRows()

	case key.Matches(msg, a.keys.ScanAll):
		if a.scan.Active {
			return a, nil
		}
		pending := a.table.PendingCount()
		if pending == 0 {
			a.setStatus("Nothing left to scan")
			return a, nil
		}
		a.scan = ScanState{Active: true, Total: pending}
		a.setStatus("Scanning %d notes...", pending)
		return a, a.scanAllCmd()

	case !hasRow:
		return a, nil

	case key.Matches(msg, a.keys.NextCandidate), key.Matches(msg, a.keys.PrevCandidate):
		if row.Suggestion == nil || row.Row.HasManualFolder() || len(row.Suggestion.FolderSuggestions) == 0 {
			return a, nil
		}
		idx := row.Row.SelectedFolderIndex
		if key.Matches(msg, a.keys.NextCandidate) {
			idx = min(idx+1, len(row.Suggestion.FolderSuggestions)-1)
		} else {
			idx = max(idx-1, 0)
		}
		a.table.SelectCandidate(path, idx)
		a.refreshRows()

	case key.Matches(msg, a.keys.Scan):
		if !row.CanScan {
			return a, nil
		}
		a.setStatus("Scanning %s...", path)
		return a, a.scanCmd(path)

	case key.Matches(msg, a.keys.Accept):
		if row.Target == "" {
			a.setError("Pick a folder first")
			return a, nil
		}
		return a, a.acceptCmd(path, row.Target)

	case key.Matches(msg, a.keys.Ignore):
		if row.Suggestion == nil {
			return a, nil
		}
		a.table.Ignore(path)
		a.setStatus("Ignored suggestion for %s", path)
		a.refreshRows()

	case key.Matches(msg, a.keys.Move):
		a.table.OpenPicker(path)
		if a.table.PickerOpen(path) {
			a.mode = ModePicker
		}

	case key.Matches(msg, a.keys.ClearFolder):
		a.table.ClearManualFolder(path)
		a.refreshRows()

	case key.Matches(msg, a.keys.EditTags):
		a.tags.Path = path
		a.tags.Editor = a.newTagEditor(path, row.Row.Tags)
		a.tags.Cursor = -1
		a.tags.Input.Focus()
		a.mode = ModeTags

	case key.Matches(msg, a.keys.Open):
		if err := a.table.OpenFile(path); err != nil {
			a.setError("Open failed: %v", err)
		}

	case key.Matches(msg, a.keys.Yank):
		if err := a.clipboard(path); err != nil {
			a.setError("Yank failed: %v", err)
		} else {
			a.setStatus("Yanked: %s", path)
		}
	}

	return a, nil
}

// moveCursor changes the focused row. Focus changes count as an outside
// interaction for any open picker.
func (a *App) moveCursor(i int) {
	if i == a.cursor {
		return
	}
	a.cursor = i
	a.table.NotifyOutside()
}

func (a App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.filter.Reset()
		a.filter.Input.Blur()
		a.mode = ModeNormal
		a.refreshRows()
		return a, nil
	case tea.KeyEnter:
		a.filter.Query = a.filter.Input.Value()
		a.filter.Input.Blur()
		a.mode = ModeNormal
		a.refreshRows()
		return a, nil
	}

	var cmd tea.Cmd
	a.filter.Input, cmd = a.filter.Input.Update(msg)
	a.filter.Query = a.filter.Input.Value()
	a.cursor = 0
	a.refreshRows()
	return a, cmd
}

func (a App) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	row, ok := a.selectedRow()
	if !ok {
		a.mode = ModeNormal
		return a, nil
	}
	res := a.table.PickerKey(row.File.Path, msg)
	if res.Action == picker.ActionCommit {
		a.setStatus("Folder: %s", res.Folder)
	}
	a.syncPickerMode()
	a.refreshRows()
	return a, nil
}

// syncPickerMode leaves picker mode once the selected row's picker closed.
func (a *App) syncPickerMode() {
	if a.mode != ModePicker {
		return
	}
	row, ok := a.selectedRow()
	if !ok || !a.table.PickerOpen(row.File.Path) {
		a.mode = ModeNormal
	}
}

func (a *App) newTagEditor(path string, tags []string) *review.TagEditor {
	table := a.table
	return review.NewTagEditor(tags, func(tags []string) {
		table.SetTags(path, tags)
	})
}

// reseedTagEditor reloads the open tag editor from the table after a scan
// replaced the row's tags.
func (a *App) reseedTagEditor() {
	if a.mode != ModeTags || a.tags.Editor == nil {
		return
	}
	row, ok := a.table.Row(a.tags.Path)
	if !ok {
		return
	}
	a.tags.Editor = a.newTagEditor(a.tags.Path, row.Row.Tags)
	a.tags.Cursor = -1
}

func (a App) handleTagsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed := a.tags.Editor
	if ed == nil {
		a.mode = ModeNormal
		return a, nil
	}
	n := len(ed.Tags())

	switch msg.Type {
	case tea.KeyEsc:
		a.tags.Reset()
		a.mode = ModeNormal
		a.refreshRows()
		return a, nil

	case tea.KeyEnter:
		ed.SetInput(a.tags.Input.Value())
		ed.Submit()
		a.tags.Input.SetValue(ed.Input())
		a.tags.Cursor = -1
		a.refreshRows()
		return a, nil

	case tea.KeyLeft:
		if a.tags.Input.Value() == "" && n > 0 {
			if a.tags.Cursor < 0 {
				a.tags.Cursor = n - 1
			} else {
				a.tags.Cursor = max(a.tags.Cursor-1, 0)
			}
			return a, nil
		}

	case tea.KeyRight:
		if a.tags.Cursor >= 0 {
			a.tags.Cursor++
			if a.tags.Cursor >= n {
				a.tags.Cursor = -1
			}
			return a, nil
		}

	case tea.KeyBackspace:
		if a.tags.Cursor >= 0 {
			ed.Remove(a.tags.Cursor)
			n = len(ed.Tags())
			if a.tags.Cursor >= n {
				a.tags.Cursor = n - 1
			}
			a.refreshRows()
			return a, nil
		}
		if a.tags.Input.Value() == "" && n > 0 {
			ed.Remove(n - 1)
			a.refreshRows()
			return a, nil
		}
	}

	a.tags.Cursor = -1
	var cmd tea.Cmd
	a.tags.Input, cmd = a.tags.Input.Update(msg)
	return a, cmd
}

func (a App) scanCmd(path string) tea.Cmd {
	table, ctx := a.table, a.ctx
	return func() tea.Msg {
		return scanDoneMsg{path: path, err: table.Scan(ctx, path)}
	}
}

// scanAllCmd starts a batched scan on its own goroutine. Progress and the
// final result arrive through a.progress.
func (a *App) scanAllCmd() tea.Cmd {
	ch := make(chan tea.Msg, 8)
	a.progress = ch
	table, ctx, log := a.table, a.ctx, a.log

	return func() tea.Msg {
		go func() {
			defer close(ch)
			n, err := table.ScanAll(ctx, func(completed, total int) {
				ch <- scanProgressMsg{completed: completed, total: total}
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("scan all failed", "err", err)
			}
			ch <- scanAllDoneMsg{suggested: n, err: err}
		}()
		return <-ch
	}
}

func (a App) acceptCmd(path, target string) tea.Cmd {
	table, ctx := a.table, a.ctx
	return func() tea.Msg {
		return acceptDoneMsg{path: path, target: target, err: table.Accept(ctx, path)}
	}
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
