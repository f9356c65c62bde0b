// Package codec turns entity collections into the JSON text held by the
// key-value store and back.
package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/julianstephens/mindflow/internal/errors"
)

// Encode renders items as a JSON array. A nil slice encodes as "[]".
func Encode[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode collection: %w", err)
	}
	return string(data), nil
}

// Decode parses a JSON array. Blank text or a JSON null yields an empty
// collection with no error. Anything unparseable yields an empty collection
// and an error wrapping ErrCorrupt, so callers can log it and carry on.
func Decode[T any](text string) ([]T, error) {
	if strings.TrimSpace(text) == "" {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return []T{}, fmt.Errorf("%w: %v", apperrors.ErrCorrupt, err)
	}
	if items == nil {
		return []T{}, nil
	}
	return items, nil
}

// EncodeOne renders a single record.
func EncodeOne[T any](item T) (string, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return "", fmt.Errorf("failed to encode record: %w", err)
	}
	return string(data), nil
}

// DecodeOne parses a single record. ok is false when text is blank or null.
// A malformed record returns an error wrapping ErrCorrupt.
func DecodeOne[T any](text string) (item T, ok bool, err error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed == "null" {
		return item, false, nil
	}
	if err := json.Unmarshal([]byte(trimmed), &item); err != nil {
		var zero T
		return zero, false, fmt.Errorf("%w: %v", apperrors.ErrCorrupt, err)
	}
	return item, true, nil
}
