// Package picker implements the searchable folder selector used to
// override a note's destination folder.
package picker

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxResults caps the number of existing folders a search exposes.
const MaxResults = 15

// Key is a navigation key understood by the picker.
type Key int

const (
	KeyNone Key = iota
	KeyDown
	KeyUp
	KeyEnter
	KeyTab
	KeyEsc
)

// Action tells the caller what a key press resolved to.
type Action int

const (
	ActionNone Action = iota
	// ActionCommit means Folder was chosen and the picker closed.
	ActionCommit
	// ActionClose means the picker closed without a choice.
	ActionClose
)

// Result is returned from key handling.
type Result struct {
	Action Action
	Folder string
}

// Option is one navigable entry. Create marks the synthesized
// "create new folder" entry whose Folder is the raw search text.
type Option struct {
	Folder string
	Create bool
}

// FolderPicker holds the open state, search text and highlight of one
// row's picker. Highlight is -1 when nothing is highlighted.
type FolderPicker struct {
	folders   []string
	outside   *Outside
	open      bool
	search    string
	highlight int
	release   func()
}

// New creates a closed picker over folders. outside may be nil.
func New(folders []string, outside *Outside) *FolderPicker {
	return &FolderPicker{
		folders:   folders,
		outside:   outside,
		highlight: -1,
	}
}

// SetFolders replaces the known folder list.
func (p *FolderPicker) SetFolders(folders []string) {
	p.folders = folders
	p.clampHighlight()
}

// Open opens the picker with empty search and no highlight. While open,
// onOutside runs whenever the shared Outside notifier fires.
func (p *FolderPicker) Open(onOutside func()) {
	if p.open {
		return
	}
	p.open = true
	p.search = ""
	p.highlight = -1
	if p.outside != nil && onOutside != nil {
		p.release = p.outside.Subscribe(onOutside)
	}
}

// Close closes the picker, resets its transient state and releases the
// outside subscription.
func (p *FolderPicker) Close() {
	p.open = false
	p.search = ""
	p.highlight = -1
	if p.release != nil {
		p.release()
		p.release = nil
	}
}

func (p *FolderPicker) IsOpen() bool  { return p.open }
func (p *FolderPicker) Search() string { return p.search }
func (p *FolderPicker) Highlight() int { return p.highlight }

// SetSearch replaces the search text. Typing drops the highlight.
func (p *FolderPicker) SetSearch(s string) {
	p.search = s
	p.highlight = -1
}

// Hover highlights option i, as a mouse-over would.
func (p *FolderPicker) Hover(i int) {
	if i >= 0 && i < p.total() {
		p.highlight = i
	}
}

// Filtered returns up to MaxResults folders containing the search text,
// case-insensitively, in their original order.
func (p *FolderPicker) Filtered() []string {
	q := strings.ToLower(p.search)
	out := make([]string, 0, MaxResults)
	for _, f := range p.folders {
		if strings.Contains(strings.ToLower(f), q) {
			out = append(out, f)
			if len(out) == MaxResults {
				break
			}
		}
	}
	return out
}

// HasCreateOption reports whether the search text names a folder that
// does not exist yet.
func (p *FolderPicker) HasCreateOption() bool {
	if p.search == "" {
		return false
	}
	for _, f := range p.folders {
		if strings.EqualFold(f, p.search) {
			return false
		}
	}
	return true
}

// Options returns the navigable entries, create option first.
func (p *FolderPicker) Options() []Option {
	filtered := p.Filtered()
	opts := make([]Option, 0, len(filtered)+1)
	if p.HasCreateOption() {
		opts = append(opts, Option{Folder: p.search, Create: true})
	}
	for _, f := range filtered {
		opts = append(opts, Option{Folder: f})
	}
	return opts
}

func (p *FolderPicker) total() int {
	n := len(p.Filtered())
	if p.HasCreateOption() {
		n++
	}
	return n
}

func (p *FolderPicker) clampHighlight() {
	if p.highlight >= p.total() {
		p.highlight = p.total() - 1
	}
}

// HandleKey applies one navigation key.
func (p *FolderPicker) HandleKey(k Key) Result {
	if !p.open {
		return Result{}
	}
	switch k {
	case KeyDown:
		p.highlight = min(p.highlight+1, p.total()-1)
	case KeyUp:
		p.highlight = max(p.highlight-1, 0)
	case KeyTab:
		p.complete()
	case KeyEnter:
		return p.commitDefault()
	case KeyEsc:
		p.Close()
		return Result{Action: ActionClose}
	}
	return Result{}
}

// HandleMsg routes a bubbletea key press: navigation keys go to
// HandleKey, everything else edits the search text.
func (p *FolderPicker) HandleMsg(msg tea.KeyMsg) Result {
	if k := KeyFromMsg(msg); k != KeyNone {
		return p.HandleKey(k)
	}
	if !p.open {
		return Result{}
	}
	switch msg.Type {
	case tea.KeyBackspace:
		if r := []rune(p.search); len(r) > 0 {
			p.SetSearch(string(r[:len(r)-1]))
		}
	case tea.KeyCtrlU:
		p.SetSearch("")
	case tea.KeySpace:
		p.SetSearch(p.search + " ")
	case tea.KeyRunes:
		p.SetSearch(p.search + string(msg.Runes))
	}
	return Result{}
}

// Choose commits option i directly, as a click would.
func (p *FolderPicker) Choose(i int) Result {
	opts := p.Options()
	if !p.open || i < 0 || i >= len(opts) {
		return Result{}
	}
	return p.commit(opts[i].Folder)
}

func (p *FolderPicker) complete() {
	opts := p.Options()
	if p.highlight >= 0 && p.highlight < len(opts) {
		p.search = opts[p.highlight].Folder
		return
	}
	filtered := p.Filtered()
	if len(filtered) == 0 {
		return
	}
	hadCreate := p.HasCreateOption()
	p.search = filtered[0]
	if hadCreate {
		p.highlight = 1
	} else {
		p.highlight = 0
	}
}

func (p *FolderPicker) commitDefault() Result {
	opts := p.Options()
	if p.highlight >= 0 && p.highlight < len(opts) {
		return p.commit(opts[p.highlight].Folder)
	}
	if len(opts) > 0 {
		// create option first, otherwise the first filtered folder
		return p.commit(opts[0].Folder)
	}
	return Result{}
}

func (p *FolderPicker) commit(folder string) Result {
	p.Close()
	return Result{Action: ActionCommit, Folder: folder}
}

// KeyFromMsg maps a key press to a navigation key.
func KeyFromMsg(msg tea.KeyMsg) Key {
	switch msg.Type {
	case tea.KeyDown, tea.KeyCtrlN:
		return KeyDown
	case tea.KeyUp, tea.KeyCtrlP:
		return KeyUp
	case tea.KeyEnter:
		return KeyEnter
	case tea.KeyTab:
		return KeyTab
	case tea.KeyEsc:
		return KeyEsc
	}
	return KeyNone
}
