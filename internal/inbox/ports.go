package inbox

import (
	"context"

	"github.com/nikbrunner/inbox/internal/model"
)

// DataProvider is the note storage the table reads from and writes to.
// Paths are vault-relative.
type DataProvider interface {
	LoadInboxFiles(inboxPath string) ([]model.File, error)
	// MoveFile fails with *model.DuplicateTargetError when dst exists.
	MoveFile(src, dst string) error
	// UpdateFrontmatter unions tags and overwrites the other fields.
	UpdateFrontmatter(path string, upd model.FrontmatterUpdate) error
	AllTags() ([]string, error)
	FolderTree() (string, error)
	AllFolders() ([]string, error)
	OnInboxChange(inboxPath string, fn func()) (stop func(), err error)
	OpenFile(path string) error
}

// Analyzer classifies one note. A returned error means no suggestion was
// produced; malformed model output is reported as an Analysis with no
// folder candidates instead.
type Analyzer interface {
	Analyze(ctx context.Context, content string, allTags []string, folderTree string) (model.Analysis, error)
}

// SuggestionCache persists completed scans. storage.SuggestionStore
// satisfies it.
type SuggestionCache interface {
	Load(vault string) ([]model.OrganizationSuggestion, error)
	Put(vault string, s model.OrganizationSuggestion) error
	Delete(vault, path string) error
}

type modelNamer interface {
	Model() string
}
