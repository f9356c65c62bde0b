package storage

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/julianstephens/mindflow/internal/constants"
	"github.com/julianstephens/mindflow/internal/logger"
	"github.com/julianstephens/mindflow/internal/models"
	"github.com/julianstephens/mindflow/internal/writequeue"
)

// KeyValueStore keeps every key in process memory and mirrors changes to a
// Backend through a single-consumer write queue. Reads never touch the backend
// after the first load, so a Get always sees the latest Put from this process
// even while the write is still queued.
type KeyValueStore struct {
	backend Backend
	queue   *writequeue.Queue

	loadOnce sync.Once

	mu  sync.RWMutex
	mem map[string]models.Value
}

// Option configures a KeyValueStore
type Option func(*KeyValueStore)

// WithQueue replaces the default write queue.
func WithQueue(q *writequeue.Queue) Option {
	return func(s *KeyValueStore) {
		s.queue = q
	}
}

// NewKeyValueStore wraps backend. Nothing is read until the first access.
func NewKeyValueStore(backend Backend, opts ...Option) *KeyValueStore {
	s := &KeyValueStore{
		backend: backend,
		mem:     make(map[string]models.Value),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.queue == nil {
		s.queue = writequeue.New(constants.WriteQueueSize)
	}
	return s
}

// load reads the backend once. A failed load leaves the store empty so every
// read falls back to its default.
func (s *KeyValueStore) load() {
	s.loadOnce.Do(func() {
		if s.backend == nil {
			return
		}
		if err := s.backend.Init(); err != nil {
			logger.Warn("Failed to initialize storage backend", "path", s.backend.GetConfigPath(), "error", err)
			return
		}
		rows, err := s.backend.LoadAll()
		if err != nil {
			logger.Warn("Failed to load stored values", "path", s.backend.GetConfigPath(), "error", err)
			return
		}
		s.mu.Lock()
		for k, v := range rows {
			s.mem[k] = v
		}
		s.mu.Unlock()
		logger.Debug("Loaded stored values", "count", len(rows))
	})
}

// Put stores value under key.
func (s *KeyValueStore) Put(key string, value models.Value) {
	s.load()
	s.mu.Lock()
	s.mem[key] = value
	s.mu.Unlock()
	s.enqueueSync(key)
}

func (s *KeyValueStore) PutBool(key string, b bool)     { s.Put(key, models.BoolValue(b)) }
func (s *KeyValueStore) PutInt(key string, i int)       { s.Put(key, models.IntValue(i)) }
func (s *KeyValueStore) PutInt64(key string, i int64)   { s.Put(key, models.Int64Value(i)) }
func (s *KeyValueStore) PutString(key string, v string) { s.Put(key, models.StringValue(v)) }

// Get returns the value under key, or def when absent.
func (s *KeyValueStore) Get(key string, def models.Value) models.Value {
	v, ok := s.Lookup(key)
	if !ok {
		return def
	}
	return v
}

// Lookup returns the value under key and whether it exists.
func (s *KeyValueStore) Lookup(key string) (models.Value, bool) {
	s.load()
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.mem[key]
	return v, ok
}

// typed reads fall back to def when the key is missing or holds another kind
func (s *KeyValueStore) typed(key string, kind models.Kind) (models.Value, bool) {
	v, ok := s.Lookup(key)
	if !ok {
		return models.Value{}, false
	}
	if v.Kind != kind {
		logger.Warn("Stored value has unexpected type", "key", key, "want", kind, "got", v.Kind)
		return models.Value{}, false
	}
	return v, true
}

func (s *KeyValueStore) GetBool(key string, def bool) bool {
	if v, ok := s.typed(key, models.KindBool); ok {
		return v.Bool
	}
	return def
}

func (s *KeyValueStore) GetInt(key string, def int) int {
	if v, ok := s.typed(key, models.KindInt); ok {
		return v.Int
	}
	return def
}

func (s *KeyValueStore) GetInt64(key string, def int64) int64 {
	if v, ok := s.typed(key, models.KindInt64); ok {
		return v.Int64
	}
	return def
}

func (s *KeyValueStore) GetString(key string, def string) string {
	if v, ok := s.typed(key, models.KindString); ok {
		return v.Str
	}
	return def
}

// Delete removes key.
func (s *KeyValueStore) Delete(key string) {
	s.load()
	s.mu.Lock()
	delete(s.mem, key)
	s.mu.Unlock()
	s.enqueueSync(key)
}

// Clear removes every key.
func (s *KeyValueStore) Clear() {
	s.load()
	s.mu.Lock()
	s.mem = make(map[string]models.Value)
	s.mu.Unlock()
	s.enqueueReset()
}

// Keys lists stored keys in lexical order.
func (s *KeyValueStore) Keys() []string {
	s.load()
	s.mu.RLock()
	keys := make([]string, 0, len(s.mem))
	for k := range s.mem {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// enqueueSync schedules a write that copies the current in-memory state of key
// to the backend. The task reads memory when it runs, so tasks for the same key
// converge on the latest value whatever order they execute in.
func (s *KeyValueStore) enqueueSync(key string) {
	if s.backend == nil {
		return
	}
	s.queue.Submit(func() {
		s.mu.RLock()
		v, ok := s.mem[key]
		s.mu.RUnlock()

		var err error
		if ok {
			err = s.backend.Put(key, v)
		} else {
			err = s.backend.Delete(key)
		}
		if err != nil {
			logger.Warn("Failed to persist value", "key", key, "error", err)
		}
	})
}

// enqueueReset schedules a full rewrite of the backend from memory.
func (s *KeyValueStore) enqueueReset() {
	if s.backend == nil {
		return
	}
	s.queue.Submit(func() {
		if err := s.backend.Clear(); err != nil {
			logger.Warn("Failed to clear stored values", "error", err)
			return
		}
		s.mu.RLock()
		snapshot := make(map[string]models.Value, len(s.mem))
		for k, v := range s.mem {
			snapshot[k] = v
		}
		s.mu.RUnlock()
		for k, v := range snapshot {
			if err := s.backend.Put(k, v); err != nil {
				logger.Warn("Failed to persist value", "key", k, "error", err)
			}
		}
	})
}

// Reload replaces the in-memory view with the backend's current rows once
// queued writes have landed. It lets a long-running reader see changes made
// by other processes; writes from this process must not race with it.
func (s *KeyValueStore) Reload() error {
	s.load()
	if s.backend == nil {
		return nil
	}

	var err error
	s.queue.Submit(func() {
		var rows map[string]models.Value
		if rows, err = s.backend.LoadAll(); err != nil {
			return
		}
		mem := make(map[string]models.Value, len(rows))
		for k, v := range rows {
			mem[k] = v
		}
		s.mu.Lock()
		s.mem = mem
		s.mu.Unlock()
	})
	s.queue.Flush()
	if err != nil {
		return fmt.Errorf("failed to reload stored values: %w", err)
	}
	return nil
}

// Flush waits for queued writes to reach the backend.
func (s *KeyValueStore) Flush() {
	s.queue.Flush()
}

// Close drains pending writes and closes the backend.
func (s *KeyValueStore) Close() error {
	var result *multierror.Error
	if err := s.queue.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	if s.backend != nil {
		if err := s.backend.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
