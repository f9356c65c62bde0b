package storage

import (
	"strings"

	"github.com/julianstephens/mindflow/internal/storage/postgres"
	"github.com/julianstephens/mindflow/internal/storage/sqlite"
)

// NewSQLiteStore creates a SQLite backed store at path.
func NewSQLiteStore(path string) *sqlite.Store {
	return sqlite.NewStore(path)
}

// NewPostgresStore creates a PostgreSQL backed store. The connection string
// should not carry a password; see postgres.ValidateConnString.
func NewPostgresStore(connStr string) *postgres.Store {
	return postgres.New(connStr)
}

// IsPostgresConnString reports whether s looks like a PostgreSQL URL or DSN
// rather than a file path.
func IsPostgresConnString(s string) bool {
	if strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://") {
		return true
	}
	return strings.Contains(s, "host=") || strings.Contains(s, "dbname=")
}

// NewBackend picks a backend from the shape of location: a PostgreSQL
// connection string, a .json file, or otherwise a SQLite database file.
func NewBackend(location string) Backend {
	switch {
	case IsPostgresConnString(location):
		return NewPostgresStore(location)
	case strings.HasSuffix(strings.ToLower(location), ".json"):
		return NewJSONStore(location)
	default:
		return NewSQLiteStore(location)
	}
}
