package bids

import (
	"bytes"
	"encoding/json"
)

// FieldSet is an insertion-ordered mapping of BIDS field names to values.
//
// Iteration order is first-insertion order. Replacing a value keeps the
// name's original position, so the order new keys land in a sidecar is the
// order the engine inferred them, independent of how often a field was
// revised along the way.
//
// Values are restricted to bool, int64, float64, string and []float64.
// The typed setters enforce this at compile time; Set is for callers that
// already hold a vetted value.
type FieldSet struct {
	names  []string
	values map[string]any
}

// NewFieldSet creates an empty FieldSet.
func NewFieldSet() *FieldSet {
	return &FieldSet{values: make(map[string]any)}
}

// Set stores a value under name, appending the name on first insertion.
func (fs *FieldSet) Set(name string, value any) {
	if _, ok := fs.values[name]; !ok {
		fs.names = append(fs.names, name)
	}
	fs.values[name] = value
}

// SetFloat stores a float64 field.
func (fs *FieldSet) SetFloat(name string, v float64) { fs.Set(name, v) }

// SetInt stores an integer field.
func (fs *FieldSet) SetInt(name string, v int64) { fs.Set(name, v) }

// SetString stores a string field.
func (fs *FieldSet) SetString(name, v string) { fs.Set(name, v) }

// SetBool stores a boolean field.
func (fs *FieldSet) SetBool(name string, v bool) { fs.Set(name, v) }

// SetFloats stores a float64 array field. The slice is copied.
func (fs *FieldSet) SetFloats(name string, v []float64) {
	fs.Set(name, append([]float64(nil), v...))
}

// Get returns the value stored under name.
func (fs *FieldSet) Get(name string) (any, bool) {
	v, ok := fs.values[name]
	return v, ok
}

// Has reports whether name is present.
func (fs *FieldSet) Has(name string) bool {
	_, ok := fs.values[name]
	return ok
}

// Float returns the field as a float64, accepting int64 values too.
func (fs *FieldSet) Float(name string) (float64, bool) {
	switch v := fs.values[name].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Int returns the field as an int64.
func (fs *FieldSet) Int(name string) (int64, bool) {
	v, ok := fs.values[name].(int64)
	return v, ok
}

// String returns the field as a string.
func (fs *FieldSet) String(name string) (string, bool) {
	v, ok := fs.values[name].(string)
	return v, ok
}

// Bool returns the field as a bool.
func (fs *FieldSet) Bool(name string) (bool, bool) {
	v, ok := fs.values[name].(bool)
	return v, ok
}

// Floats returns the field as a float64 slice.
func (fs *FieldSet) Floats(name string) ([]float64, bool) {
	v, ok := fs.values[name].([]float64)
	return v, ok
}

// MarshalJSON encodes the set as a JSON object in insertion order.
func (fs *FieldSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range fs.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(fs.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Names returns the field names in insertion order. The slice is a copy.
func (fs *FieldSet) Names() []string {
	return append([]string(nil), fs.names...)
}

// Len returns the number of fields.
func (fs *FieldSet) Len() int {
	return len(fs.names)
}
