package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/mindflow/internal/logger"
	"github.com/julianstephens/mindflow/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	kind  TEXT NOT NULL,
	value TEXT NOT NULL
)`

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

// Init opens the database, creating the file and table when missing. Calling it
// again on an open store is a no-op.
func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// One writer at a time; the write queue already serializes us.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to create kv table: %w", err)
	}

	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// LoadAll reads every row. Rows whose text does not parse for their kind are
// skipped and logged rather than failing the whole load.
func (s *Store) LoadAll() (map[string]models.Value, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query("SELECT key, kind, value FROM kv")
	if err != nil {
		return nil, fmt.Errorf("failed to query kv: %w", err)
	}
	defer rows.Close()

	values := make(map[string]models.Value)
	for rows.Next() {
		var key, kind, text string
		if err := rows.Scan(&key, &kind, &text); err != nil {
			return nil, err
		}
		v, err := models.ParseValue(kind, text)
		if err != nil {
			logger.Warn("Skipping unreadable stored value", "key", key, "error", err)
			continue
		}
		values[key] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return values, nil
}

func (s *Store) Put(key string, value models.Value) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Exec("INSERT OR REPLACE INTO kv (key, kind, value) VALUES (?, ?, ?)", key, string(value.Kind), value.Text())
	return err
}

func (s *Store) Delete(key string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key)
	return err
}

func (s *Store) Clear() error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Exec("DELETE FROM kv")
	return err
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection.
// Returns nil if the database has not been initialized.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
