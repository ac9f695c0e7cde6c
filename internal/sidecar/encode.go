package sidecar

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the object compactly in document order. json.Number
// values are written verbatim, so untouched literals like 2.50 survive a
// rewrite.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := appendValue(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode renders the document the way the sidecars are stored on disk:
// two-space indent, no HTML escaping, trailing newline.
func (o *Object) Encode() ([]byte, error) {
	compact, err := o.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func appendValue(buf *bytes.Buffer, v Value) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")

	case json.Number:
		buf.WriteString(t.String())

	case *Object:
		buf.WriteByte('{')
		for i, key := range t.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendLeaf(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := appendValue(buf, t.values[key]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')

	case []Value:
		buf.WriteByte('[')
		for i, el := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendValue(buf, el); err != nil {
				return err
			}
		}
		buf.WriteByte(']')

	default:
		return appendLeaf(buf, v)
	}
	return nil
}

// appendLeaf marshals a scalar without HTML escaping. Strings in these
// files carry protocol names and free-text comments; escaping & or < would
// show up as a spurious diff to anyone eyeballing the sidecar.
func appendLeaf(buf *bytes.Buffer, v Value) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %T value: %w", v, err)
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
