package par

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Read loads and decodes a PAR header file.
//
// Export tooling has produced headers in UTF-8 (with and without BOM),
// UTF-16 and Latin-1 over the years, so decoding is tolerant: BOMs are
// honored, valid UTF-8 is taken as-is, and anything else falls back to
// Latin-1 (in which every byte sequence is decodable). An unreadable file
// is the per-file fatal error; the caller must not write anything for it.
func Read(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading PAR header: %w", err)
	}
	text, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding PAR header %s: %w", path, err)
	}
	return Parse(text), nil
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

func decode(raw []byte) (string, error) {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return string(raw[len(bomUTF8):]), nil

	case bytes.HasPrefix(raw, bomUTF16LE), bytes.HasPrefix(raw, bomUTF16BE):
		// UseBOM consumes the marker and selects the endianness from it.
		dec := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, raw)
		if err != nil {
			return "", fmt.Errorf("UTF-16 decode: %w", err)
		}
		return string(out), nil

	case utf8.Valid(raw):
		return string(raw), nil

	default:
		out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
		if err != nil {
			return "", fmt.Errorf("Latin-1 decode: %w", err)
		}
		return string(out), nil
	}
}
