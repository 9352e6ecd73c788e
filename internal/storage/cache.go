package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/nikbrunner/inbox/internal/model"
)

// SuggestionStore persists completed scans per vault so they survive a
// restart. Paths are vault-relative.
type SuggestionStore interface {
	Load(vault string) ([]model.OrganizationSuggestion, error)
	Put(vault string, s model.OrganizationSuggestion) error
	Delete(vault, path string) error
	Close() error
}

// cacheFile is the on-disk layout of JSONCache.
type cacheFile struct {
	Vaults map[string]map[string]model.OrganizationSuggestion `json:"vaults"`
}

// JSONCache implements SuggestionStore using a JSON file.
type JSONCache struct {
	mu   sync.Mutex
	path string
}

// NewJSONCache creates a new JSONCache with the given file path.
func NewJSONCache(path string) *JSONCache {
	return &JSONCache{path: path}
}

// Path returns the cache file path.
func (c *JSONCache) Path() string {
	return c.path
}

func (c *JSONCache) read() (*cacheFile, error) {
	f := &cacheFile{Vaults: map[string]map[string]model.OrganizationSuggestion{}}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, f); err != nil {
		return nil, err
	}
	if f.Vaults == nil {
		f.Vaults = map[string]map[string]model.OrganizationSuggestion{}
	}
	return f, nil
}

func (c *JSONCache) write(f *cacheFile) error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.path, data, 0644)
}

// Load returns the cached suggestions for vault, sorted by path.
// Returns nothing if the file doesn't exist.
func (c *JSONCache) Load(vault string) ([]model.OrganizationSuggestion, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := c.read()
	if err != nil {
		return nil, err
	}

	out := make([]model.OrganizationSuggestion, 0, len(f.Vaults[vault]))
	for _, s := range f.Vaults[vault] {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Put stores s, replacing any earlier suggestion for the same path.
func (c *JSONCache) Put(vault string, s model.OrganizationSuggestion) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := c.read()
	if err != nil {
		return err
	}
	if f.Vaults[vault] == nil {
		f.Vaults[vault] = map[string]model.OrganizationSuggestion{}
	}
	f.Vaults[vault][s.Path] = s
	return c.write(f)
}

// Delete removes the suggestion for path. Unknown paths are ignored.
func (c *JSONCache) Delete(vault, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := c.read()
	if err != nil {
		return err
	}
	if _, ok := f.Vaults[vault][path]; !ok {
		return nil
	}
	delete(f.Vaults[vault], path)
	if len(f.Vaults[vault]) == 0 {
		delete(f.Vaults, vault)
	}
	return c.write(f)
}

// Close is a no-op for the JSON backend.
func (c *JSONCache) Close() error {
	return nil
}

// DefaultJSONCachePath returns ~/.config/inbox/suggestions.json
func DefaultJSONCachePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "suggestions.json"), nil
}

// OpenCache opens the appropriate cache backend.
// Prefers SQLite if the database file exists, otherwise falls back to JSON.
func OpenCache() (SuggestionStore, error) {
	sqlitePath, err := DefaultSQLitePath()
	if err != nil {
		return nil, err
	}

	// If SQLite database exists, use it
	if _, err := os.Stat(sqlitePath); err == nil {
		return NewSQLiteCache(sqlitePath)
	}

	// Fall back to JSON
	jsonPath, err := DefaultJSONCachePath()
	if err != nil {
		return nil, err
	}
	return NewJSONCache(jsonPath), nil
}
