package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind tags the primitive type held by a stored Value
type Kind string

const (
	KindBool   Kind = "bool"
	KindInt    Kind = "int"
	KindInt64  Kind = "int64"
	KindString Kind = "string"
)

// Value is one primitive stored under a key.
type Value struct {
	Kind  Kind
	Bool  bool
	Int   int
	Int64 int64
	Str   string
}

func BoolValue(b bool) Value     { return Value{Kind: KindBool, Bool: b} }
func IntValue(i int) Value       { return Value{Kind: KindInt, Int: i} }
func Int64Value(i int64) Value   { return Value{Kind: KindInt64, Int64: i} }
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// Text renders the value for a text column.
func (v Value) Text() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInt:
		return strconv.Itoa(v.Int)
	case KindInt64:
		return strconv.FormatInt(v.Int64, 10)
	default:
		return v.Str
	}
}

// ParseValue rebuilds a value from its kind tag and text form.
func ParseValue(kind, text string) (Value, error) {
	switch Kind(kind) {
	case KindBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return Value{}, fmt.Errorf("parsing bool %q: %w", text, err)
		}
		return BoolValue(b), nil
	case KindInt:
		i, err := strconv.Atoi(text)
		if err != nil {
			return Value{}, fmt.Errorf("parsing int %q: %w", text, err)
		}
		return IntValue(i), nil
	case KindInt64:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parsing int64 %q: %w", text, err)
		}
		return Int64Value(i), nil
	case KindString:
		return StringValue(text), nil
	}
	return Value{}, fmt.Errorf("unknown value kind %q", kind)
}

type valueJSON struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value"`
}

// MarshalJSON writes the value as its kind tag plus text form.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(valueJSON{Kind: v.Kind, Value: v.Text()})
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw valueJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseValue(string(raw.Kind), raw.Value)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
