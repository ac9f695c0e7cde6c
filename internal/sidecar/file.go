package sidecar

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// backupTimestamp is the layout for backup file suffixes.
const backupTimestamp = "20060102150405"

// ParseError reports a sidecar that exists but could not be read as a
// JSON object. The file is left untouched; the caller must not write
// anything for it.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sidecar %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads and parses a sidecar file. A missing file is reported with
// the underlying os error (callers starting a fresh sidecar check for it
// with errors.Is(err, fs.ErrNotExist)); malformed content is a ParseError.
func Load(path string) (*Object, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sidecar: %w", err)
	}
	obj, err := Parse(raw)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return obj, nil
}

// Backup copies the file to <path>.backup_<timestamp> and returns the
// backup path. The original is read, not moved, so a failed run still
// leaves the sidecar in place.
func Backup(path string, at time.Time) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading sidecar for backup: %w", err)
	}
	backup := path + ".backup_" + at.Format(backupTimestamp)
	if err := os.WriteFile(backup, raw, 0o644); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}
	return backup, nil
}

// WriteFile encodes the document and replaces the file all-or-nothing:
// the encoded bytes go to a temp file in the same directory and the temp
// file is renamed over the original. A failure at any point leaves the
// original bytes intact.
func (o *Object) WriteFile(path string) error {
	data, err := o.Encode()
	if err != nil {
		return fmt.Errorf("encoding sidecar: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing sidecar: %w", err)
	}
	return nil
}
