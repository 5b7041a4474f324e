package profile

import (
	"encoding/json"
	"fmt"
)

// Value is a normalized profile field value: one string or an ordered
// list of strings. A nil or empty Value means "absent" and is never
// stored in a normalized profile.
//
// Its JSON form mirrors the snapshot format: a bare string when it holds
// exactly one entry, an array otherwise.
type Value []string

// Scalar reports whether the value renders as a single string.
func (v Value) Scalar() bool {
	return len(v) == 1
}

// Empty reports whether the value is absent.
func (v Value) Empty() bool {
	return len(v) == 0
}

// MarshalJSON encodes single-entry values as a JSON string and
// multi-entry values as a JSON array.
func (v Value) MarshalJSON() ([]byte, error) {
	if len(v) == 1 {
		return json.Marshal(v[0])
	}
	return json.Marshal([]string(v))
}

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Value{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*v = Value(list)
		return nil
	}
	return fmt.Errorf("profile: value must be a string or an array of strings: %s", data)
}
