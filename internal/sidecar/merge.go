package sidecar

import (
	"encoding/json"
	"strings"

	"github.com/JulianGaviriaL/parbids/internal/bids"
)

// MergeResult lists what a merge changed, in field emission order.
type MergeResult struct {
	Added   []string
	Updated []string
}

// Changed reports how many fields the merge touched.
func (r MergeResult) Changed() int {
	return len(r.Added) + len(r.Updated)
}

// Merge applies inferred fields to a sidecar document. Missing keys are
// added, keys holding a different value are overwritten, equal values are
// left byte-for-byte alone. Keys the document has that the field set does
// not are never removed, and reserved (underscore-prefixed) field names
// are never merged as data.
//
// Equality is by value, not literal: 2.50 in the document equals 2.5 from
// the engine, so rerunning a merge is a no-op.
func Merge(doc *Object, fields *bids.FieldSet) MergeResult {
	var res MergeResult
	for _, name := range fields.Names() {
		if strings.HasPrefix(name, bids.ReservedPrefix) {
			continue
		}
		val, _ := fields.Get(name)

		old, ok := doc.Get(name)
		if !ok {
			doc.Set(name, fieldValue(val))
			res.Added = append(res.Added, name)
			continue
		}
		if valuesEqual(old, val) {
			continue
		}
		doc.Set(name, fieldValue(val))
		res.Updated = append(res.Updated, name)
	}
	return res
}

// fieldValue converts an engine value to the document representation.
func fieldValue(v any) Value {
	if fs, ok := v.([]float64); ok {
		arr := make([]Value, len(fs))
		for i, f := range fs {
			arr[i] = f
		}
		return arr
	}
	return v
}

// valuesEqual compares a document value against an engine value.
func valuesEqual(old Value, val any) bool {
	switch v := val.(type) {
	case float64:
		n, ok := asNumber(old)
		return ok && n == v
	case int64:
		n, ok := asNumber(old)
		return ok && n == float64(v)
	case string:
		s, ok := old.(string)
		return ok && s == v
	case bool:
		b, ok := old.(bool)
		return ok && b == v
	case []float64:
		arr, ok := old.([]Value)
		if !ok || len(arr) != len(v) {
			return false
		}
		for i, el := range arr {
			n, ok := asNumber(el)
			if !ok || n != v[i] {
				return false
			}
		}
		return true
	}
	return false
}

func asNumber(v Value) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int64:
		return float64(n), true
	}
	return 0, false
}
