package search

import (
	"github.com/nikbrunner/inbox/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	File           *model.File
	Index          int // position in the searched slice
	MatchedIndexes []int
	Score          int
}

// filePaths implements fuzzy.Source over inbox files.
type filePaths []model.File

func (fp filePaths) String(i int) string {
	return fp[i].Path
}

func (fp filePaths) Len() int {
	return len(fp)
}

// FuzzyFilterFiles matches query against file paths.
// Returns results sorted by match score (best first). An empty query
// returns nil.
func FuzzyFilterFiles(files []model.File, query string) []SearchResult {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, filePaths(files))

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			File:           &files[m.Index],
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}

