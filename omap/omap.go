// Package omap provides a generic insertion-ordered map.
//
// Breeze profile snapshots and joined snapshot pairs are order-sensitive:
// reports read in the order fields and people were recorded, so the plain
// Go map is not enough. Map keeps the usual O(1) lookup while remembering
// the order keys were first set.
package omap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Map is a map that remembers the order in which keys were first inserted.
// The zero value is not usable; create instances with New.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// New creates an empty ordered map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		values: make(map[K]V),
	}
}

// Set stores value under key. Updating an existing key keeps its
// original position in the insertion order.
func (m *Map[K, V]) Set(key K, value V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key and whether it was present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.values[key]
	return ok
}

// Len returns the number of stored keys.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// MarshalJSON encodes the map as a JSON object with keys emitted in
// insertion order. Keys must marshal to JSON strings (string keys or
// types whose JSON form is a string).
func (m *Map[K, V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		if len(kb) == 0 || kb[0] != '"' {
			return nil, fmt.Errorf("omap: key %v does not marshal to a JSON string", k)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving the document order of
// its keys.
func (m *Map[K, V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("omap: expected JSON object, got %v", tok)
	}

	m.keys = nil
	m.values = make(map[K]V)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		keyStr, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("omap: expected string key, got %v", keyTok)
		}
		var key K
		if err := json.Unmarshal([]byte(strconv.Quote(keyStr)), &key); err != nil {
			return fmt.Errorf("omap: key %q: %w", keyStr, err)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var value V
		if err := json.Unmarshal(raw, &value); err != nil {
			return fmt.Errorf("omap: value for key %q: %w", keyStr, err)
		}
		m.Set(key, value)
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
