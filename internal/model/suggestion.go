package model

import "time"

// ManualSelectionReason marks a synthesized candidate that came from a
// hand-picked folder rather than the analyzer.
const ManualSelectionReason = "Manual selection"

// FolderSuggestion is one ranked folder candidate.
type FolderSuggestion struct {
	Folder string `json:"folder"`
	Reason string `json:"reason"`
	IsNew  bool   `json:"isNew,omitempty"` // folder does not exist yet
}

// OrganizationSuggestion is the live classification for one file path.
type OrganizationSuggestion struct {
	Path                string             `json:"path"`
	FolderSuggestions   []FolderSuggestion `json:"folderSuggestions"`
	SelectedFolderIndex int                `json:"selectedFolderIndex"`
	Tags                []string           `json:"tags"`
	NewTags             []string           `json:"newTags,omitempty"` // tags the analyzer introduced
	Area                string             `json:"area,omitempty"`
	Reason              string             `json:"reason,omitempty"`
	TargetFolder        string             `json:"targetFolder,omitempty"` // legacy flat override
	ScanID              string             `json:"scanId,omitempty"`
	Model               string             `json:"model,omitempty"` // analyzer model that produced it
	CreatedAt           time.Time          `json:"createdAt"`
}

// Candidate returns the folder suggestion at index, or false when the
// index is out of range.
func (s OrganizationSuggestion) Candidate(index int) (FolderSuggestion, bool) {
	if index < 0 || index >= len(s.FolderSuggestions) {
		return FolderSuggestion{}, false
	}
	return s.FolderSuggestions[index], true
}

// ResolvedFolder returns the folder a mover should use: TargetFolder when
// set, otherwise the selected candidate. Empty means nothing to move to.
func (s OrganizationSuggestion) ResolvedFolder() string {
	if s.TargetFolder != "" {
		return s.TargetFolder
	}
	c, ok := s.Candidate(s.SelectedFolderIndex)
	if !ok {
		return ""
	}
	return c.Folder
}

// IsNewTag reports whether tag was introduced by the analyzer.
func (s OrganizationSuggestion) IsNewTag(tag string) bool {
	for _, t := range s.NewTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Analysis is the analyzer's raw classification of one document.
type Analysis struct {
	FolderSuggestions []FolderSuggestion `json:"folderSuggestions"`
	Tags              []string           `json:"tags"`
	NewTags           []string           `json:"newTags,omitempty"`
	Area              string             `json:"area,omitempty"` // PARA area the note belongs to, optional
	Reason            string             `json:"reason"`
}

// NewSuggestionParams holds parameters for creating a suggestion from an analysis.
type NewSuggestionParams struct {
	Path     string
	Analysis Analysis
	ScanID   string
	Model    string
}

// NewSuggestion builds the suggestion for a completed scan. The first
// candidate is selected by default.
func NewSuggestion(params NewSuggestionParams) OrganizationSuggestion {
	folders := params.Analysis.FolderSuggestions
	if folders == nil {
		folders = []FolderSuggestion{}
	}
	tags := params.Analysis.Tags
	if tags == nil {
		tags = []string{}
	}

	return OrganizationSuggestion{
		Path:                params.Path,
		FolderSuggestions:   folders,
		SelectedFolderIndex: 0,
		Tags:                tags,
		NewTags:             params.Analysis.NewTags,
		Area:                params.Analysis.Area,
		Reason:              params.Analysis.Reason,
		ScanID:              params.ScanID,
		Model:               params.Model,
		CreatedAt:           time.Now(),
	}
}
