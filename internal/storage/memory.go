package storage

import (
	"errors"
	"sync"

	"github.com/julianstephens/mindflow/internal/models"
)

var errInjected = errors.New("injected backend failure")

// MemoryStore is a Backend that lives only in process memory. Failures can be
// switched on to exercise error paths.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]models.Value
	puts   int

	FailInit   bool
	FailLoad   bool
	FailWrites bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]models.Value)}
}

// Seed stores values directly, bypassing failure injection.
func (m *MemoryStore) Seed(values map[string]models.Value) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range values {
		m.values[k] = v
	}
}

// Snapshot copies the current contents.
func (m *MemoryStore) Snapshot() map[string]models.Value {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]models.Value, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// Puts counts successful Put calls.
func (m *MemoryStore) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

func (m *MemoryStore) SetFailWrites(fail bool) {
	m.mu.Lock()
	m.FailWrites = fail
	m.mu.Unlock()
}

func (m *MemoryStore) Init() error {
	if m.FailInit {
		return errInjected
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) LoadAll() (map[string]models.Value, error) {
	if m.FailLoad {
		return nil, errInjected
	}
	return m.Snapshot(), nil
}

func (m *MemoryStore) Put(key string, value models.Value) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errInjected
	}
	m.values[key] = value
	m.puts++
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errInjected
	}
	delete(m.values, key)
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errInjected
	}
	m.values = make(map[string]models.Value)
	return nil
}

func (m *MemoryStore) GetConfigPath() string { return ":memory:" }
