// Package par reads Philips PAR headers as plain text documents.
//
// A Document is raw decoded text plus line access; no field inference
// happens here. The image-information table is exposed as raw column rows
// so callers can apply a version-specific column map.
package par

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// imageBanner opens the image-information section. The section definition
// banner ("# === IMAGE INFORMATION DEFINITION ...") must not match, so the
// text after the prefix has to start with the '=' padding.
const imageBanner = "# === IMAGE INFORMATION"

// Document is a decoded PAR header.
type Document struct {
	text  string
	lines []string
}

// Parse builds a Document from header text. Line endings are normalized to
// LF and the text is NFC-normalized so pattern scanning sees one spelling
// of any accented patient or protocol names.
func Parse(text string) *Document {
	text = norm.NFC.String(strings.ReplaceAll(text, "\r\n", "\n"))
	return &Document{
		text:  text,
		lines: strings.Split(text, "\n"),
	}
}

// Text returns the full normalized header text.
func (d *Document) Text() string {
	return d.text
}

// Lines returns the header lines. The slice must not be mutated.
func (d *Document) Lines() []string {
	return d.lines
}

// ImageRows returns up to max data rows of the image-information table,
// each split into whitespace-separated columns. A data row is a line whose
// first token is all digits; the scan stops at the next "# ===" banner or
// end of file. Returns nil when the header has no image table.
func (d *Document) ImageRows(max int) [][]string {
	start := -1
	for i, line := range d.lines {
		rest, ok := strings.CutPrefix(line, imageBanner)
		if ok && strings.HasPrefix(strings.TrimLeft(rest, " "), "=") {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	var rows [][]string
	for _, line := range d.lines[start:] {
		if strings.HasPrefix(line, "# ===") {
			break
		}
		cols := strings.Fields(line)
		if len(cols) == 0 || !allDigits(cols[0]) {
			continue
		}
		rows = append(rows, cols)
		if max > 0 && len(rows) >= max {
			break
		}
	}
	return rows
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
