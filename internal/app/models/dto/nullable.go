package dto

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Nullable is a patch field that tells an absent key apart from an explicit null.
// Set is true whenever the key was present in the body; Value is nil for null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// NullableOf returns a supplied, non-null field
func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null returns a supplied field holding null
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// UnmarshalJSON is only called when the key is present
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// MarshalJSON writes the value or null
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// NullableStringValue exposes the inner value to the validator so that
// tags such as "omitempty,max=150" apply to the string itself.
func NullableStringValue(field reflect.Value) interface{} {
	n, ok := field.Interface().(Nullable[string])
	if !ok || n.Value == nil {
		return nil
	}
	return *n.Value
}
