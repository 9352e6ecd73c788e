// Package review holds the per-file editable state behind the inbox
// review table: which AI candidate is chosen, the row's tags, and an
// optional hand-picked folder that always wins over the AI.
package review

import "github.com/nikbrunner/inbox/internal/model"

// Row is the editable state for one file path.
type Row struct {
	SelectedFolderIndex int
	Tags                []string
	ManualFolderPath    string // non-empty overrides every AI candidate
	PickerOpen          bool   // transient
}

// HasManualFolder reports whether the user picked a folder by hand.
func (r Row) HasManualFolder() bool {
	return r.ManualFolderPath != ""
}

func (r Row) clone() Row {
	r.Tags = append([]string(nil), r.Tags...)
	if r.Tags == nil {
		r.Tags = []string{}
	}
	return r
}

// Store maps file paths to row state. Paths are opaque, case-sensitive
// keys and no operation depends on iteration order.
//
// Every mutation on an unknown path is a no-op; EnsureRow and
// ApplySuggestion are the only operations that create rows.
type Store struct {
	rows map[string]*Row
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{rows: make(map[string]*Row)}
}

// EnsureRow creates default row state for path if none exists.
func (s *Store) EnsureRow(path string) {
	if _, ok := s.rows[path]; ok {
		return
	}
	s.rows[path] = &Row{
		SelectedFolderIndex: 0,
		Tags:                []string{},
	}
}

// Row returns a copy of the row state for path.
func (s *Store) Row(path string) (Row, bool) {
	r, ok := s.rows[path]
	if !ok {
		return Row{}, false
	}
	return r.clone(), true
}

// Has reports whether row state exists for path.
func (s *Store) Has(path string) bool {
	_, ok := s.rows[path]
	return ok
}

// Len returns the number of rows.
func (s *Store) Len() int {
	return len(s.rows)
}

// ApplySuggestion refreshes the AI-derived fields of a row from an
// incoming suggestion. The manual folder and picker state are never
// touched. A missing row is created seeded from the suggestion.
func (s *Store) ApplySuggestion(path string, suggestion model.OrganizationSuggestion) {
	index := suggestion.SelectedFolderIndex
	if index < 0 {
		index = 0
	}
	tags := append([]string{}, suggestion.Tags...)

	r, ok := s.rows[path]
	if !ok {
		s.rows[path] = &Row{SelectedFolderIndex: index, Tags: tags}
		return
	}
	r.SelectedFolderIndex = index
	r.Tags = tags
}

// SelectCandidate chooses one of the AI folder candidates. The index is
// trusted; range checking happens when the accept target is computed.
func (s *Store) SelectCandidate(path string, index int) {
	if r, ok := s.rows[path]; ok {
		r.SelectedFolderIndex = index
	}
}

// SetTags replaces the row's tag list.
func (s *Store) SetTags(path string, tags []string) {
	if r, ok := s.rows[path]; ok {
		r.Tags = append([]string{}, tags...)
	}
}

// SetManualFolder records a hand-picked folder and closes the row's picker.
func (s *Store) SetManualFolder(path, folder string) {
	if folder == "" {
		return
	}
	if r, ok := s.rows[path]; ok {
		r.ManualFolderPath = folder
		r.PickerOpen = false
	}
}

// ClearManualFolder drops the hand-picked folder. The selected AI
// candidate is left as is.
func (s *Store) ClearManualFolder(path string) {
	if r, ok := s.rows[path]; ok {
		r.ManualFolderPath = ""
	}
}

// SetPickerOpen sets the transient picker flag.
func (s *Store) SetPickerOpen(path string, open bool) {
	if r, ok := s.rows[path]; ok {
		r.PickerOpen = open
	}
}

// Retain discards every row whose path is not in keep.
func (s *Store) Retain(keep map[string]bool) {
	for path := range s.rows {
		if !keep[path] {
			delete(s.rows, path)
		}
	}
}

// ComputeAcceptTarget returns the folder an accept should move the file
// to: the manual folder when set, otherwise the suggestion's legacy
// target folder, otherwise the selected candidate. Empty means there is
// nothing to accept yet.
func (s *Store) ComputeAcceptTarget(path string, suggestion *model.OrganizationSuggestion) string {
	r, ok := s.rows[path]
	if !ok {
		return ""
	}
	if r.ManualFolderPath != "" {
		return r.ManualFolderPath
	}
	if suggestion == nil {
		return ""
	}
	sel := *suggestion
	sel.SelectedFolderIndex = r.SelectedFolderIndex
	return sel.ResolvedFolder()
}

// BuildAcceptPayload returns a suggestion carrying the resolved target and
// the row's current tags. Without a real suggestion a single manual
// candidate is synthesized. The second result is false when there is
// nothing to accept.
func (s *Store) BuildAcceptPayload(path string, suggestion *model.OrganizationSuggestion) (model.OrganizationSuggestion, bool) {
	target := s.ComputeAcceptTarget(path, suggestion)
	if target == "" {
		return model.OrganizationSuggestion{}, false
	}
	r := s.rows[path]
	tags := append([]string{}, r.Tags...)

	if suggestion == nil {
		return model.OrganizationSuggestion{
			Path: path,
			FolderSuggestions: []model.FolderSuggestion{
				{Folder: target, Reason: model.ManualSelectionReason},
			},
			SelectedFolderIndex: 0,
			Tags:                tags,
			TargetFolder:        target,
		}, true
	}

	payload := *suggestion
	payload.FolderSuggestions = append([]model.FolderSuggestion(nil), suggestion.FolderSuggestions...)
	payload.SelectedFolderIndex = r.SelectedFolderIndex
	payload.Tags = tags
	payload.TargetFolder = target
	return payload, true
}
