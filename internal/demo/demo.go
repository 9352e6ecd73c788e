// Package demo provides an in-memory vault and a keyword-based mock
// analyzer so the review table can run without a real vault or API key.
package demo

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nikbrunner/inbox/internal/model"
)

const InboxPath = "Inbox"

const folderTree = `- 1. Projects/
  - Project-Alpha/
  - Project-Beta/
- 2. Areas/
  - Work/
  - Personal/
  - Health/
- 3. Resources/
  - Notes/
  - Templates/
  - References/
- 4. Archive/
  - 2024/
  - 2025/
`

var defaultTags = []string{"#project", "#personal", "#work", "#todo", "#reference", "#archive", "#meeting", "#idea"}

var defaultFolders = []string{
	"1. Projects",
	"1. Projects/Project-Alpha",
	"1. Projects/Project-Beta",
	"2. Areas",
	"2. Areas/Health",
	"2. Areas/Personal",
	"2. Areas/Work",
	"3. Resources",
	"3. Resources/Notes",
	"3. Resources/References",
	"3. Resources/Templates",
	"4. Archive",
	"4. Archive/2024",
	"4. Archive/2025",
}

// Move records one completed move.
type Move struct {
	From string
	To   string
}

// Vault is an in-memory note store. Moves and frontmatter writes are
// recorded rather than persisted anywhere.
type Vault struct {
	mu          sync.Mutex
	files       map[string]model.File
	folders     []string
	tags        []string
	frontmatter map[string]model.FrontmatterUpdate
	moves       []Move
	opened      []string
	watchers    map[int]func()
	nextWatch   int
}

// NewVault returns a vault seeded with two inbox notes and a PARA folder
// layout.
func NewVault() *Vault {
	v := &Vault{
		files:       make(map[string]model.File),
		folders:     append([]string(nil), defaultFolders...),
		tags:        append([]string(nil), defaultTags...),
		frontmatter: make(map[string]model.FrontmatterUpdate),
		watchers:    make(map[int]func()),
	}
	v.files["Inbox/Note1.md"] = model.File{Path: "Inbox/Note1.md", Name: "Note1.md", Content: "Meeting notes about project Alpha"}
	v.files["Inbox/Idea.md"] = model.File{Path: "Inbox/Idea.md", Name: "Idea.md", Content: "Buy milk and eggs"}
	return v
}

// AddNote drops a new note into the vault and notifies inbox watchers.
func (v *Vault) AddNote(p, content string) {
	v.mu.Lock()
	v.files[p] = model.File{Path: p, Name: path.Base(p), Content: content}
	fns := v.watchersLocked()
	v.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (v *Vault) watchersLocked() []func() {
	fns := make([]func(), 0, len(v.watchers))
	for _, fn := range v.watchers {
		fns = append(fns, fn)
	}
	return fns
}

func (v *Vault) LoadInboxFiles(inboxPath string) ([]model.File, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	prefix := strings.TrimSuffix(inboxPath, "/") + "/"
	var files []model.File
	for p, f := range v.files {
		if strings.HasPrefix(p, prefix) {
			files = append(files, f)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// MoveFile renames src to dst. It fails with a DuplicateTargetError when
// dst is already taken. A new parent folder is added to the folder list.
func (v *Vault) MoveFile(src, dst string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	f, ok := v.files[src]
	if !ok {
		return fmt.Errorf("%s: %w", src, fs.ErrNotExist)
	}
	if _, taken := v.files[dst]; taken {
		return &model.DuplicateTargetError{Path: dst}
	}
	delete(v.files, src)
	f.Path = dst
	f.Name = path.Base(dst)
	v.files[dst] = f
	v.moves = append(v.moves, Move{From: src, To: dst})

	if dir := path.Dir(dst); dir != "." && !v.hasFolderLocked(dir) {
		v.folders = append(v.folders, dir)
		sort.Strings(v.folders)
	}
	return nil
}

func (v *Vault) hasFolderLocked(dir string) bool {
	for _, f := range v.folders {
		if f == dir {
			return true
		}
	}
	return false
}

// UpdateFrontmatter records upd, merging tags with any earlier write.
func (v *Vault) UpdateFrontmatter(p string, upd model.FrontmatterUpdate) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.files[p]; !ok {
		return fmt.Errorf("%s: %w", p, fs.ErrNotExist)
	}
	prev := v.frontmatter[p]
	tags := append([]string(nil), prev.Tags...)
	for _, t := range upd.Tags {
		if !contains(tags, t) {
			tags = append(tags, t)
		}
	}
	fields := make(map[string]any, len(prev.Fields)+len(upd.Fields))
	for k, val := range prev.Fields {
		fields[k] = val
	}
	for k, val := range upd.Fields {
		if val != nil {
			fields[k] = val
		}
	}
	v.frontmatter[p] = model.FrontmatterUpdate{Tags: tags, Fields: fields}
	for _, t := range tags {
		if !contains(v.tags, t) {
			v.tags = append(v.tags, t)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func (v *Vault) AllTags() ([]string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.tags...), nil
}

func (v *Vault) FolderTree() (string, error) {
	return folderTree, nil
}

func (v *Vault) AllFolders() ([]string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.folders...), nil
}

// OnInboxChange registers fn to run after AddNote.
func (v *Vault) OnInboxChange(_ string, fn func()) (func(), error) {
	v.mu.Lock()
	id := v.nextWatch
	v.nextWatch++
	v.watchers[id] = fn
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.watchers, id)
			v.mu.Unlock()
		})
	}, nil
}

// OpenFile records p; there is nothing to launch in memory.
func (v *Vault) OpenFile(p string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.opened = append(v.opened, p)
	return nil
}

// Moves returns the moves performed so far.
func (v *Vault) Moves() []Move {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]Move(nil), v.moves...)
}

// Opened returns every path passed to OpenFile.
func (v *Vault) Opened() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.opened...)
}

// Frontmatter returns the accumulated frontmatter for p.
func (v *Vault) Frontmatter(p string) (model.FrontmatterUpdate, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	upd, ok := v.frontmatter[p]
	return upd, ok
}

// Analyzer returns canned suggestions based on keywords in the note.
type Analyzer struct {
	Delay time.Duration // simulated latency per call
}

// Model identifies the mock in cached suggestions.
func (a *Analyzer) Model() string {
	return "demo-mock"
}

func (a *Analyzer) Analyze(ctx context.Context, content string, allTags []string, _ string) (model.Analysis, error) {
	if a.Delay > 0 {
		select {
		case <-time.After(a.Delay):
		case <-ctx.Done():
			return model.Analysis{}, ctx.Err()
		}
	}

	lower := strings.ToLower(content)
	isProject := strings.Contains(lower, "project")
	isPersonal := strings.Contains(lower, "milk") || strings.Contains(lower, "personal")

	first := model.FolderSuggestion{Folder: "3. Resources/Notes", Reason: "General note, best kept with resources"}
	if isProject {
		first = model.FolderSuggestion{Folder: "1. Projects/Project-Alpha", Reason: "Mentions an active project"}
	}
	second := model.FolderSuggestion{Folder: "2. Areas/Work", Reason: "Possibly work related"}
	if isPersonal {
		second = model.FolderSuggestion{Folder: "2. Areas/Personal/Errands", Reason: "Personal everyday task", IsNew: true}
	}
	third := model.FolderSuggestion{Folder: "4. Archive/2024", Reason: "Archive it if the content is old"}

	tags := []string{"#work", "#meeting"}
	reason := "Work note"
	if isPersonal {
		tags = []string{"#personal", "#todo", "#shopping"}
		reason = "Personal to-do"
	}
	var newTags []string
	for _, t := range tags {
		if !contains(allTags, t) {
			newTags = append(newTags, t)
		}
	}

	area := ""
	if isProject {
		area = "Project Alpha"
	}

	return model.Analysis{
		FolderSuggestions: []model.FolderSuggestion{first, second, third},
		Tags:              tags,
		NewTags:           newTags,
		Area:              area,
		Reason:            reason,
	}, nil
}
