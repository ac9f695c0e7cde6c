package sidecar

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("valid sidecar", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sub-01_bold.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"TaskName": "rest"}`), 0o644))

		obj, err := Load(path)
		require.NoError(t, err)
		assert.True(t, obj.Has("TaskName"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, fs.ErrNotExist))

		var perr *ParseError
		assert.False(t, errors.As(err, &perr))
	})

	t.Run("malformed sidecar", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"TaskName": `), 0o644))

		_, err := Load(path)
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, path, perr.Path)
	})

	t.Run("array root is malformed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "array.json")
		require.NoError(t, os.WriteFile(path, []byte(`[1, 2]`), 0o644))

		_, err := Load(path)
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
	})
}

func TestBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub-01_bold.json")
	content := []byte(`{"TaskName": "rest"}`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	at := time.Date(2026, 8, 25, 9, 30, 15, 0, time.UTC)
	backup, err := Backup(path, at)
	require.NoError(t, err)
	assert.Equal(t, path+".backup_20260825093015", backup)

	copied, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, content, copied)

	// Original untouched.
	orig, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, orig)
}

func TestBackup_MissingFile(t *testing.T) {
	_, err := Backup(filepath.Join(t.TempDir(), "absent.json"), time.Now())
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub-01_bold.json")

	obj := NewObject()
	obj.Set("TaskName", "rest")
	obj.Set("RepetitionTime", 2.5)
	require.NoError(t, obj.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"TaskName\": \"rest\",\n  \"RepetitionTime\": 2.5\n}\n", string(data))

	// Rewrite replaces the content and leaves no temp files behind.
	obj.Set("TaskName", "nback")
	require.NoError(t, obj.WriteFile(path))

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"nback"`)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
