package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/inbox/internal/model"
)

const currentSchemaVersion = 2

// SQLiteCache implements SuggestionStore using a SQLite database.
type SQLiteCache struct {
	db   *sql.DB
	path string
}

// NewSQLiteCache creates a new SQLiteCache with the given database path.
func NewSQLiteCache(path string) (*SQLiteCache, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	c := &SQLiteCache{db: db, path: path}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return c, nil
}

// Path returns the database file path.
func (c *SQLiteCache) Path() string {
	return c.path
}

// Close closes the database connection.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

// SchemaVersion reports the migrated schema version.
func (c *SQLiteCache) SchemaVersion() (int, error) {
	var version int
	err := c.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

// migrate runs database migrations.
func (c *SQLiteCache) migrate() error {
	version, err := c.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := c.migrateV1(); err != nil {
			return err
		}
	}

	if version < 2 {
		if err := c.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (c *SQLiteCache) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS suggestions (
			vault TEXT NOT NULL,
			path TEXT NOT NULL,
			scan_id TEXT NOT NULL DEFAULT '',
			data TEXT NOT NULL,
			created_at TEXT NOT NULL,
			PRIMARY KEY (vault, path)
		);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := c.db.Exec(schema)
	return err
}

// migrateV2 records which analyzer model produced each suggestion.
func (c *SQLiteCache) migrateV2() error {
	migration := `
		ALTER TABLE suggestions ADD COLUMN model TEXT NOT NULL DEFAULT '';
		CREATE INDEX IF NOT EXISTS idx_suggestions_scan_id ON suggestions(scan_id);
		UPDATE schema_version SET version = 2;
	`
	_, err := c.db.Exec(migration)
	return err
}

// Load returns the cached suggestions for vault, sorted by path.
func (c *SQLiteCache) Load(vault string) ([]model.OrganizationSuggestion, error) {
	rows, err := c.db.Query(`
		SELECT path, data, scan_id, model, created_at
		FROM suggestions
		WHERE vault = ?
		ORDER BY path
	`, vault)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.OrganizationSuggestion{}
	for rows.Next() {
		var path, data, scanID, modelName, createdAt string
		if err := rows.Scan(&path, &data, &scanID, &modelName, &createdAt); err != nil {
			return nil, err
		}

		var s model.OrganizationSuggestion
		if err := json.Unmarshal([]byte(data), &s); err != nil {
			// skip rows written by an incompatible version
			continue
		}
		s.Path = path
		s.ScanID = scanID
		s.Model = modelName
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Put stores s, replacing any earlier suggestion for the same path.
func (c *SQLiteCache) Put(vault string, s model.OrganizationSuggestion) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = c.db.Exec(`
		INSERT OR REPLACE INTO suggestions (vault, path, scan_id, data, created_at, model)
		VALUES (?, ?, ?, ?, ?, ?)
	`, vault, s.Path, s.ScanID, string(data), createdAt.Format(time.RFC3339), s.Model)
	return err
}

// Delete removes the suggestion for path. Unknown paths are ignored.
func (c *SQLiteCache) Delete(vault, path string) error {
	_, err := c.db.Exec("DELETE FROM suggestions WHERE vault = ? AND path = ?", vault, path)
	return err
}

// DefaultSQLitePath returns the default SQLite database path: ~/.config/inbox/suggestions.db
func DefaultSQLitePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "suggestions.db"), nil
}
