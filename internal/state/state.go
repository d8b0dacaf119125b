// Package state persists the small amount of client-local UI state:
// the sidebar collapsed flag and one-shot navigation flags that are
// consumed on first read. Entity data is never persisted here.
package state

import (
	"database/sql"
	_ "embed"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// Navigation flag keys. Each is set by one page and consumed (deleted)
// by the next on its first read.
const (
	FlagOpenNewTask      = "openNewTask"
	FlagOpenNewProject   = "openNewProject"
	FlagOpenNewObjective = "openNewObjective"
	FlagOpenTaskID       = "openTaskId"
	FlagEditMemberID     = "editMemberId"
)

// KeySidebarCollapsed stores the sidebar collapse state across runs.
const KeySidebarCollapsed = "sidebarCollapsed"

// DB wraps the state database connection.
type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the state database. An empty path
// uses the default XDG data location.
func Open(path string) (*DB, error) {
	if path == "" {
		var err error
		path, err = defaultPath()
		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{db}, nil
}

func defaultPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "taskdeck")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(appDir, "taskdeck.db"), nil
}

// GetSetting retrieves a setting value by key. A missing key reads as
// the empty string.
func (db *DB) GetSetting(key string) (string, error) {
	var value string
	err := db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetSetting sets a setting value.
func (db *DB) SetSetting(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// SidebarCollapsed reads the persisted sidebar state.
func (db *DB) SidebarCollapsed() bool {
	v, err := db.GetSetting(KeySidebarCollapsed)
	return err == nil && v == "true"
}

// SetSidebarCollapsed persists the sidebar state.
func (db *DB) SetSidebarCollapsed(collapsed bool) error {
	v := "false"
	if collapsed {
		v = "true"
	}
	return db.SetSetting(KeySidebarCollapsed, v)
}

// PutFlag sets a one-shot navigation flag.
func (db *DB) PutFlag(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO flags (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// TakeFlag reads and deletes a one-shot flag. The second return is
// false when the flag was not set.
func (db *DB) TakeFlag(key string) (string, bool) {
	var value string
	err := db.QueryRow("SELECT value FROM flags WHERE key = ?", key).Scan(&value)
	if err != nil {
		return "", false
	}
	db.Exec("DELETE FROM flags WHERE key = ?", key)
	return value, true
}
