package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/mindflow/internal/models"
)

// jsonFile is the on-disk layout of a JSONStore.
type jsonFile struct {
	Version int                     `json:"version"`
	Values  map[string]models.Value `json:"values"`
}

// JSONStore keeps every key in a single JSON file that is rewritten on each
// change. It suits small installs and makes the stored state easy to inspect.
type JSONStore struct {
	path   string
	values map[string]models.Value
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	if s.values != nil {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	values, err := s.read()
	if err != nil {
		if os.IsNotExist(err) {
			s.values = make(map[string]models.Value)
			return s.save()
		}
		return err
	}
	s.values = values
	return nil
}

// read parses the file as it is on disk now.
func (s *JSONStore) read() (map[string]models.Value, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}

	var f jsonFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse storage: %w", err)
	}
	if f.Values == nil {
		f.Values = make(map[string]models.Value)
	}
	return f.Values, nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(jsonFile{Version: 1, Values: s.values}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

// LoadAll re-reads the file so writes from other processes are picked up.
func (s *JSONStore) LoadAll() (map[string]models.Value, error) {
	if s.values == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	values, err := s.read()
	switch {
	case os.IsNotExist(err):
		values = make(map[string]models.Value)
	case err != nil:
		return nil, err
	}
	s.values = values

	out := make(map[string]models.Value, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out, nil
}

func (s *JSONStore) Put(key string, value models.Value) error {
	if s.values == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.values[key] = value
	return s.save()
}

func (s *JSONStore) Delete(key string) error {
	if s.values == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.save()
}

func (s *JSONStore) Clear() error {
	if s.values == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.values = make(map[string]models.Value)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
