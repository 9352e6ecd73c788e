// Package inbox ties the inbox file list, AI suggestions and per-row
// review state together and dispatches scan, accept and ignore actions.
package inbox

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/inbox/internal/batch"
	"github.com/nikbrunner/inbox/internal/model"
	"github.com/nikbrunner/inbox/internal/picker"
	"github.com/nikbrunner/inbox/internal/review"
)

// TableParams holds parameters for creating a Table.
type TableParams struct {
	Provider  DataProvider
	Analyzer  Analyzer        // nil disables scanning
	Cache     SuggestionCache // optional
	VaultKey  string          // cache namespace, usually the vault root
	InboxPath string
	BatchSize int
	Logger    *slog.Logger
}

type suggestionEntry struct {
	suggestion model.OrganizationSuggestion
	gen        uint64
}

// Table is the review table for one inbox. It is safe for concurrent use;
// scans run on their own goroutines and report back through the same
// methods the UI calls.
type Table struct {
	mu sync.Mutex

	provider  DataProvider
	analyzer  Analyzer
	cache     SuggestionCache
	vaultKey  string
	inboxPath string
	batchSize int
	log       *slog.Logger

	files       []model.File
	suggestions map[string]suggestionEntry
	applied     map[string]uint64
	gen         uint64
	store       *review.Store
	folders     []string
	scanning    map[string]bool
	accepting   map[string]bool
	pickers     map[string]*picker.FolderPicker
	outside     *picker.Outside
	cacheLoaded bool

	onChange  func()
	stopWatch func()
}

// NewTable creates a Table. Call Refresh to load the inbox.
func NewTable(params TableParams) *Table {
	log := params.Logger
	if log == nil {
		log = slog.Default()
	}
	size := params.BatchSize
	if size <= 0 {
		size = batch.DefaultSize
	}
	return &Table{
		provider:    params.Provider,
		analyzer:    params.Analyzer,
		cache:       params.Cache,
		vaultKey:    params.VaultKey,
		inboxPath:   params.InboxPath,
		batchSize:   size,
		log:         log,
		suggestions: make(map[string]suggestionEntry),
		applied:     make(map[string]uint64),
		store:       review.NewStore(),
		scanning:    make(map[string]bool),
		accepting:   make(map[string]bool),
		pickers:     make(map[string]*picker.FolderPicker),
		outside:     picker.NewOutside(),
	}
}

// SetOnChange registers fn to run after state changes that did not come
// from a direct call, such as a watcher refresh.
func (t *Table) SetOnChange(fn func()) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

func (t *Table) changed() {
	t.mu.Lock()
	fn := t.onChange
	t.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// InboxPath returns the vault-relative inbox folder.
func (t *Table) InboxPath() string {
	return t.inboxPath
}

// Refresh reloads the inbox file list and folder list from the provider.
// The file list is replaced wholesale. Cached suggestions are loaded on
// the first call.
func (t *Table) Refresh() error {
	files, err := t.provider.LoadInboxFiles(t.inboxPath)
	if err != nil {
		return fmt.Errorf("load inbox: %w", err)
	}
	folders, err := t.provider.AllFolders()
	if err != nil {
		return fmt.Errorf("list folders: %w", err)
	}

	var cached []model.OrganizationSuggestion
	t.mu.Lock()
	needCache := !t.cacheLoaded && t.cache != nil
	t.cacheLoaded = true
	t.mu.Unlock()
	if needCache {
		cached, err = t.cache.Load(t.vaultKey)
		if err != nil {
			t.log.Warn("suggestion cache unavailable", "err", err)
		}
	}

	t.mu.Lock()
	t.files = files
	t.folders = folders
	for _, p := range t.pickers {
		p.SetFolders(folders)
	}
	present := t.filePathsLocked()
	for _, s := range cached {
		if present[s.Path] {
			t.putSuggestionLocked(s)
		}
	}
	// suggestions for files that left the inbox outside this table
	var stale []string
	for p := range t.suggestions {
		if !present[p] && !t.accepting[p] {
			stale = append(stale, p)
		}
	}
	for _, p := range stale {
		t.dropSuggestionLocked(p)
	}
	t.syncLocked()
	t.mu.Unlock()

	for _, p := range stale {
		t.forget(p)
	}
	t.log.Debug("inbox refreshed", "files", len(files), "folders", len(folders), "cached", len(cached))
	return nil
}

// PutSuggestion adds or replaces the suggestion for s.Path and applies it
// to the row.
func (t *Table) PutSuggestion(s model.OrganizationSuggestion) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.putSuggestionLocked(s)
	t.syncLocked()
}

func (t *Table) putSuggestionLocked(s model.OrganizationSuggestion) {
	t.gen++
	t.suggestions[s.Path] = suggestionEntry{suggestion: s, gen: t.gen}
}

func (t *Table) dropSuggestionLocked(p string) {
	delete(t.suggestions, p)
	delete(t.applied, p)
}

func (t *Table) filePathsLocked() map[string]bool {
	present := make(map[string]bool, len(t.files))
	for _, f := range t.files {
		present[f.Path] = true
	}
	return present
}

// Sync reconciles row state with the current files and suggestions:
// every file gets a row and every suggestion not yet applied overwrites
// its row's candidate index and tags. Manual folders are never touched.
func (t *Table) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.syncLocked()
}

func (t *Table) syncLocked() {
	keep := make(map[string]bool, len(t.files)+len(t.suggestions))
	for _, f := range t.files {
		t.store.EnsureRow(f.Path)
		keep[f.Path] = true
	}
	for p, e := range t.suggestions {
		if t.applied[p] != e.gen {
			t.store.ApplySuggestion(p, e.suggestion)
			t.applied[p] = e.gen
		}
		keep[p] = true
	}
	t.store.Retain(keep)
	for p, pk := range t.pickers {
		if !keep[p] {
			pk.Close()
			delete(t.pickers, p)
		}
	}
}

// RowView is a read-only snapshot of one table row.
type RowView struct {
	File       model.File
	Row        review.Row
	Suggestion *model.OrganizationSuggestion
	Target     string // effective accept target, "" if none
	NewTags    []string
	Scanning   bool
	CanScan    bool
}

// Rows returns one snapshot per inbox file, in file order.
func (t *Table) Rows() []RowView {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]RowView, 0, len(t.files))
	for _, f := range t.files {
		out = append(out, t.rowLocked(f))
	}
	return out
}

// Row returns the snapshot for path.
func (t *Table) Row(p string) (RowView, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, ok := t.fileLocked(p)
	if !ok {
		return RowView{}, false
	}
	return t.rowLocked(f), true
}

func (t *Table) rowLocked(f model.File) RowView {
	row, _ := t.store.Row(f.Path)
	v := RowView{
		File:     f,
		Row:      row,
		Scanning: t.scanning[f.Path],
	}
	if e, ok := t.suggestions[f.Path]; ok {
		s := e.suggestion
		v.Suggestion = &s
		v.NewTags = review.HighlightedTags(row.Tags, s.NewTags)
	}
	v.Target = t.store.ComputeAcceptTarget(f.Path, v.Suggestion)
	v.CanScan = t.canScanLocked(f.Path)
	return v
}

func (t *Table) fileLocked(p string) (model.File, bool) {
	for _, f := range t.files {
		if f.Path == p {
			return f, true
		}
	}
	return model.File{}, false
}

// Files returns the current working file list.
func (t *Table) Files() []model.File {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]model.File(nil), t.files...)
}

// Suggestion returns a copy of the live suggestion for path.
func (t *Table) Suggestion(p string) (model.OrganizationSuggestion, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.suggestions[p]
	return e.suggestion, ok
}

// PendingCount reports how many files still have no suggestion.
func (t *Table) PendingCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, f := range t.files {
		if _, ok := t.suggestions[f.Path]; !ok {
			n++
		}
	}
	return n
}

// CanScan reports whether the scan action is offered for path: the file
// is in the inbox, has no suggestion and no manual folder, and is not
// already being scanned.
func (t *Table) CanScan(p string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canScanLocked(p)
}

func (t *Table) canScanLocked(p string) bool {
	if t.analyzer == nil || t.scanning[p] {
		return false
	}
	if _, ok := t.fileLocked(p); !ok {
		return false
	}
	if _, ok := t.suggestions[p]; ok {
		return false
	}
	row, _ := t.store.Row(p)
	return !row.HasManualFolder()
}

// vaultContext is what every analysis of one scan run shares.
type vaultContext struct {
	tags []string
	tree string
}

func (t *Table) loadVaultContext() (vaultContext, error) {
	tags, err := t.provider.AllTags()
	if err != nil {
		return vaultContext{}, fmt.Errorf("collect tags: %w", err)
	}
	tree, err := t.provider.FolderTree()
	if err != nil {
		return vaultContext{}, fmt.Errorf("folder tree: %w", err)
	}
	return vaultContext{tags: tags, tree: tree}, nil
}

// Scan analyzes one file and stores the resulting suggestion. On error
// the row is left exactly as it was before the scan.
func (t *Table) Scan(ctx context.Context, p string) error {
	if t.analyzer == nil {
		return ErrNoAnalyzer
	}
	vc, err := t.loadVaultContext()
	if err != nil {
		return err
	}
	return t.scan(ctx, p, vc)
}

func (t *Table) scan(ctx context.Context, p string, vc vaultContext) error {
	t.mu.Lock()
	f, ok := t.fileLocked(p)
	if !ok {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownFile, p)
	}
	if t.scanning[p] {
		t.mu.Unlock()
		return nil
	}
	t.scanning[p] = true
	t.mu.Unlock()

	scanID := model.NewScanID()
	log := t.log.With("path", p, "scan_id", scanID)
	log.Debug("scan started")

	analysis, err := t.analyzer.Analyze(ctx, f.Content, vc.tags, vc.tree)

	t.mu.Lock()
	delete(t.scanning, p)
	if err != nil {
		t.mu.Unlock()
		log.Warn("scan failed", "err", err)
		return err
	}

	modelName := ""
	if n, ok := t.analyzer.(modelNamer); ok {
		modelName = n.Model()
	}
	s := model.NewSuggestion(model.NewSuggestionParams{
		Path:     p,
		Analysis: analysis,
		ScanID:   scanID,
		Model:    modelName,
	})

	if _, still := t.fileLocked(p); !still {
		t.mu.Unlock()
		log.Debug("scan finished for a file that left the inbox")
		return nil
	}
	t.putSuggestionLocked(s)
	t.syncLocked()
	t.mu.Unlock()

	if t.cache != nil {
		if err := t.cache.Put(t.vaultKey, s); err != nil {
			log.Warn("cache write failed", "err", err)
		}
	}
	log.Debug("scan finished", "candidates", len(s.FolderSuggestions), "tags", len(s.Tags))
	return nil
}

// ScanAll scans every file that has no suggestion yet, BatchSize files at
// a time, waiting for each batch to finish before starting the next.
// Individual failures are logged and leave their rows unscanned; the
// returned count is the number of files that produced a suggestion.
func (t *Table) ScanAll(ctx context.Context, onProgress batch.ProgressFunc) (int, error) {
	if t.analyzer == nil {
		return 0, ErrNoAnalyzer
	}

	t.mu.Lock()
	var targets []string
	for _, f := range t.files {
		if _, ok := t.suggestions[f.Path]; !ok && !t.scanning[f.Path] {
			targets = append(targets, f.Path)
		}
	}
	t.mu.Unlock()

	if len(targets) == 0 {
		return 0, nil
	}

	vc, err := t.loadVaultContext()
	if err != nil {
		return 0, err
	}

	var mu sync.Mutex
	done := 0
	err = batch.Run(ctx, targets, t.batchSize, func(ctx context.Context, p string) {
		if err := t.scan(ctx, p, vc); err == nil {
			if _, ok := t.Suggestion(p); ok {
				mu.Lock()
				done++
				mu.Unlock()
			}
		}
	}, onProgress)

	t.log.Info("scan all finished", "files", len(targets), "suggested", done)
	return done, err
}

// Accept writes the row's tags and reason into the file's frontmatter and
// moves it to <target>/<name>. On success the file and its suggestion
// leave the table. On failure nothing in the table changes.
func (t *Table) Accept(ctx context.Context, p string) error {
	t.mu.Lock()
	if _, ok := t.fileLocked(p); !ok {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownFile, p)
	}
	if t.accepting[p] {
		t.mu.Unlock()
		return nil
	}
	var live *model.OrganizationSuggestion
	if e, ok := t.suggestions[p]; ok {
		s := e.suggestion
		live = &s
	}
	payload, ok := t.store.BuildAcceptPayload(p, live)
	if !ok {
		t.mu.Unlock()
		return ErrNothingToAccept
	}
	t.accepting[p] = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		delete(t.accepting, p)
		t.mu.Unlock()
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	dst := path.Join(payload.ResolvedFolder(), path.Base(p))
	log := t.log.With("path", p, "target", dst)

	if err := t.provider.UpdateFrontmatter(p, model.FrontmatterFor(payload)); err != nil {
		log.Warn("frontmatter update failed", "err", err)
		return fmt.Errorf("update frontmatter: %w", err)
	}
	if err := t.provider.MoveFile(p, dst); err != nil {
		log.Warn("move failed", "err", err)
		return err
	}

	t.mu.Lock()
	files := t.files[:0:0]
	for _, f := range t.files {
		if f.Path != p {
			files = append(files, f)
		}
	}
	t.files = files
	t.dropSuggestionLocked(p)
	t.syncLocked()
	t.mu.Unlock()

	t.forget(p)
	log.Info("accepted")
	return nil
}

// Ignore discards the suggestion for path. The file stays in the inbox
// and its row keeps its state.
func (t *Table) Ignore(p string) {
	t.mu.Lock()
	_, had := t.suggestions[p]
	t.dropSuggestionLocked(p)
	t.syncLocked()
	t.mu.Unlock()

	if had {
		t.forget(p)
	}
}

func (t *Table) forget(p string) {
	if t.cache == nil {
		return
	}
	if err := t.cache.Delete(t.vaultKey, p); err != nil {
		t.log.Warn("cache delete failed", "path", p, "err", err)
	}
}

// SelectCandidate chooses the AI folder candidate at index.
func (t *Table) SelectCandidate(p string, index int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.store.SelectCandidate(p, index)
}

// SetManualFolder overrides the destination for path and closes its picker.
func (t *Table) SetManualFolder(p, folder string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setManualFolderLocked(p, folder)
}

func (t *Table) setManualFolderLocked(p, folder string) {
	t.store.SetManualFolder(p, folder)
	if pk, ok := t.pickers[p]; ok && folder != "" {
		pk.Close()
	}
}

// ClearManualFolder drops the override so the AI candidate applies again.
func (t *Table) ClearManualFolder(p string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.store.ClearManualFolder(p)
}

// AddTag adds raw as a tag on path's row.
func (t *Table) AddTag(p, raw string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.store.Row(p)
	if !ok {
		return
	}
	t.store.SetTags(p, review.AddTag(row.Tags, raw))
}

// RemoveTag removes the tag at index from path's row.
func (t *Table) RemoveTag(p string, index int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.store.Row(p)
	if !ok {
		return
	}
	t.store.SetTags(p, review.RemoveTag(row.Tags, index))
}

// SetTags replaces path's tags.
func (t *Table) SetTags(p string, tags []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.store.SetTags(p, tags)
}

// OpenPicker opens the folder picker for path. It closes again when the
// outside notifier fires.
func (t *Table) OpenPicker(p string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.store.Has(p) {
		return
	}
	pk, ok := t.pickers[p]
	if !ok {
		pk = picker.New(t.folders, t.outside)
		t.pickers[p] = pk
	}
	pk.Open(func() { t.ClosePicker(p) })
	t.store.SetPickerOpen(p, true)
}

// ClosePicker closes path's picker without choosing a folder.
func (t *Table) ClosePicker(p string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if pk, ok := t.pickers[p]; ok {
		pk.Close()
	}
	t.store.SetPickerOpen(p, false)
}

// NotifyOutside reports an interaction outside any picker, closing every
// open picker.
func (t *Table) NotifyOutside() {
	t.log.Debug("outside interaction", "pickers", t.outside.Len())
	t.outside.Notify()
}

// PickerOpen reports whether path's picker is open.
func (t *Table) PickerOpen(p string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, _ := t.store.Row(p)
	return row.PickerOpen
}

// PickerKey feeds a key press to path's open picker. A commit sets the
// manual folder.
func (t *Table) PickerKey(p string, msg tea.KeyMsg) picker.Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	pk, ok := t.pickers[p]
	if !ok || !pk.IsOpen() {
		return picker.Result{}
	}
	return t.resolvePickerLocked(p, pk.HandleMsg(msg))
}

// PickerChoose commits option i of path's picker.
func (t *Table) PickerChoose(p string, i int) picker.Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	pk, ok := t.pickers[p]
	if !ok {
		return picker.Result{}
	}
	return t.resolvePickerLocked(p, pk.Choose(i))
}

// PickerHover highlights option i of path's open picker.
func (t *Table) PickerHover(p string, i int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if pk, ok := t.pickers[p]; ok && pk.IsOpen() {
		pk.Hover(i)
	}
}

func (t *Table) resolvePickerLocked(p string, res picker.Result) picker.Result {
	switch res.Action {
	case picker.ActionCommit:
		t.setManualFolderLocked(p, res.Folder)
		t.store.SetPickerOpen(p, false)
	case picker.ActionClose:
		t.store.SetPickerOpen(p, false)
	}
	return res
}

// PickerView renders path's picker, or "" when it is closed.
func (t *Table) PickerView(p string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	pk, ok := t.pickers[p]
	if !ok || !pk.IsOpen() {
		return ""
	}
	return pk.View()
}

// PickerState returns the search text and highlight of path's picker.
func (t *Table) PickerState(p string) (search string, highlight int, options []picker.Option) {
	t.mu.Lock()
	defer t.mu.Unlock()
	pk, ok := t.pickers[p]
	if !ok {
		return "", -1, nil
	}
	return pk.Search(), pk.Highlight(), pk.Options()
}

// OpenFile opens path with the provider.
func (t *Table) OpenFile(p string) error {
	return t.provider.OpenFile(p)
}

// Watch refreshes the table whenever the provider reports an inbox
// change, then calls the OnChange callback.
func (t *Table) Watch() error {
	stop, err := t.provider.OnInboxChange(t.inboxPath, func() {
		if err := t.Refresh(); err != nil {
			t.log.Warn("refresh after inbox change failed", "err", err)
			return
		}
		t.changed()
	})
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.stopWatch = stop
	t.mu.Unlock()
	return nil
}

// Close stops watching and releases every picker subscription.
func (t *Table) Close() {
	t.mu.Lock()
	stop := t.stopWatch
	t.stopWatch = nil
	for _, pk := range t.pickers {
		pk.Close()
	}
	t.mu.Unlock()
	if stop != nil {
		stop()
	}
}

