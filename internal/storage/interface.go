package storage

import "github.com/julianstephens/mindflow/internal/models"

// Backend is the durable side of the key-value store. Implementations are only
// ever called from one goroutine at a time.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Rows
	LoadAll() (map[string]models.Value, error)
	Put(key string, value models.Value) error
	Delete(key string) error
	Clear() error

	// Utils
	GetConfigPath() string
}
