// Package optional models patch fields that tell "absent" apart from "explicitly null".
package optional

import (
	"bytes"
	"encoding/json"
)

// Value is a patch field.
//
//   - zero value: the field was not sent and must be left untouched
//   - Null(): the field was sent as null
//   - Of(v): the field was sent with a value
type Value[T any] struct {
	set bool
	val *T
}

func Of[T any](v T) Value[T] {
	return Value[T]{set: true, val: &v}
}

func Null[T any]() Value[T] {
	return Value[T]{set: true}
}

// IsSet reports whether the field was present at all.
func (v Value[T]) IsSet() bool {
	return v.set
}

// IsNull reports whether the field was present with a null value.
func (v Value[T]) IsNull() bool {
	return v.set && v.val == nil
}

// Get returns the carried value, nil when absent or null.
func (v Value[T]) Get() *T {
	return v.val
}

// Map converts the carried value while keeping its presence.
func Map[T, U any](v Value[T], fn func(T) U) Value[U] {
	switch {
	case !v.set:
		return Value[U]{}
	case v.val == nil:
		return Null[U]()
	default:
		return Of(fn(*v.val))
	}
}

// UnmarshalJSON is only invoked for keys present in the payload,
// which is what marks the field as set.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	v.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		v.val = nil
		return nil
	}

	var val T
	if err := json.Unmarshal(data, &val); err != nil {
		return err
	}
	v.val = &val
	return nil
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	if v.val == nil {
		return []byte("null"), nil
	}
	return json.Marshal(v.val)
}
