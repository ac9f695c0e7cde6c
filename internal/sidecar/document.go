// Package sidecar reads, merges and writes BIDS JSON sidecar files.
//
// Sidecars are working documents: curators hand-edit them and other tools
// append to them. Everything here is built around not disturbing what is
// already there. An Object keeps document key order and the exact numeric
// literals of keys the merge does not touch; Merge only adds missing
// fields or overwrites fields whose value actually differs.
package sidecar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Value is one JSON value inside a sidecar: nil, bool, json.Number,
// float64, int64, string, []Value or *Object. Parsing produces
// json.Number for all numeric literals; merged fields carry the typed
// values the inference engine emits.
type Value = any

// Object is a JSON object that preserves key order. Replacing a value
// keeps the key's position; new keys append.
type Object struct {
	keys   []string
	values map[string]Value
}

func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

func (o *Object) Set(key string, v Value) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Keys returns the keys in document order. The slice is a copy.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

func (o *Object) Len() int {
	return len(o.keys)
}

// Parse decodes a JSON document whose root must be an object. Numeric
// literals are kept verbatim as json.Number so rewriting the file cannot
// reformat numbers the merge never touched.
func Parse(data []byte) (*Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("root is %v, expected an object", tok)
	}

	obj, err := parseObject(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing content after the root object")
	}
	return obj, nil
}

func parseObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding JSON: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %v, expected a string", tok)
		}
		v, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	return obj, nil
}

func parseArray(dec *json.Decoder) ([]Value, error) {
	arr := []Value{}
	for dec.More() {
		v, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	return arr, nil
}

func parseValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); ok {
		switch d {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %v", d)
	}
	// string, bool, json.Number or nil.
	return tok, nil
}
