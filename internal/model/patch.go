package model

import "encoding/json"

// Patch is a JSON field that tells an omitted key apart from an explicit null.
//
//	{}                 -> Set=false
//	{"city": null}     -> Set=true, Null=true
//	{"city": "Lyon"}   -> Set=true, Value="Lyon"
type Patch[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON is only invoked when the key is present
func (p *Patch[T]) UnmarshalJSON(data []byte) error {
	p.Set = true
	if string(data) == "null" {
		var zero T
		p.Null = true
		p.Value = zero
		return nil
	}
	p.Null = false
	return json.Unmarshal(data, &p.Value)
}

// MarshalJSON writes null for unset or null patches
func (p Patch[T]) MarshalJSON() ([]byte, error) {
	if !p.Set || p.Null {
		return []byte("null"), nil
	}
	return json.Marshal(p.Value)
}

// Present reports whether the key carried a non-null value
func (p Patch[T]) Present() bool {
	return p.Set && !p.Null
}

// Some builds a patch holding v
func Some[T any](v T) Patch[T] {
	return Patch[T]{Set: true, Value: v}
}

// Null builds an explicit-null patch
func Null[T any]() Patch[T] {
	return Patch[T]{Set: true, Null: true}
}
