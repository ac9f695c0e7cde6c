package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulianGaviriaL/parbids/internal/ledger"
)

// seedHistoryLedger records one successful Amsterdam run and one failed
// Leiden run, an hour apart.
func seedHistoryLedger(t *testing.T, path string) {
	t.Helper()

	store, err := ledger.Open(path)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Record(ctx, ledger.Run{
		ID:            "0190f1e2-0000-7000-8000-000000000001",
		StartedAt:     time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC),
		HeaderPath:    "sub-0042.PAR",
		SidecarPath:   "sub-0042.json",
		Site:          "Amsterdam",
		Confidence:    "high",
		ToolVersion:   "0.2.0",
		FieldsAdded:   12,
		FieldsUpdated: 1,
		BackupPath:    "sub-0042.json.backup_20260825090000",
		Status:        ledger.StatusOK,
	}))
	require.NoError(t, store.Record(ctx, ledger.Run{
		ID:          "0190f1e2-0000-7000-8000-000000000002",
		StartedAt:   time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
		HeaderPath:  "sub-0101.PAR",
		SidecarPath: "sub-0101.json",
		Site:        "Leiden",
		Confidence:  "medium",
		ToolVersion: "0.2.0",
		Status:      ledger.StatusFailed,
		Error:       "sidecar sub-0101.json: invalid character 'n'",
	}))
}

func TestHistoryEmptyLedger(t *testing.T) {
	tmpDir := t.TempDir()
	ledgerPath := filepath.Join(tmpDir, "runs.db")

	buf := &bytes.Buffer{}
	cmd := NewHistoryCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--ledger", ledgerPath})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no runs recorded")
}

func TestHistoryListsNewestFirst(t *testing.T) {
	tmpDir := t.TempDir()
	ledgerPath := filepath.Join(tmpDir, "runs.db")
	seedHistoryLedger(t, ledgerPath)

	buf := &bytes.Buffer{}
	cmd := NewHistoryCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--ledger", ledgerPath})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "2 run(s)")
	assert.Contains(t, output, "Amsterdam")
	assert.Contains(t, output, "+12 ~1")
	assert.Contains(t, output, "invalid character")

	failedAt := strings.Index(output, "2026-08-25T10:00:00Z")
	okAt := strings.Index(output, "2026-08-25T09:00:00Z")
	require.NotEqual(t, -1, failedAt)
	require.NotEqual(t, -1, okAt)
	assert.Less(t, failedAt, okAt, "newest run must come first")
}

func TestHistoryFilters(t *testing.T) {
	tmpDir := t.TempDir()
	ledgerPath := filepath.Join(tmpDir, "runs.db")
	seedHistoryLedger(t, ledgerPath)

	tests := []struct {
		name        string
		args        []string
		wantCount   string
		wantPresent string
		wantAbsent  string
	}{
		{
			name:        "by_site",
			args:        []string{"--ledger", ledgerPath, "--site", "Amsterdam"},
			wantCount:   "1 run(s)",
			wantPresent: "sub-0042.json",
			wantAbsent:  "sub-0101.json",
		},
		{
			name:        "by_status",
			args:        []string{"--ledger", ledgerPath, "--status", "failed"},
			wantCount:   "1 run(s)",
			wantPresent: "sub-0101.json",
			wantAbsent:  "sub-0042.json",
		},
		{
			name:        "limit",
			args:        []string{"--ledger", ledgerPath, "--limit", "1"},
			wantCount:   "1 run(s)",
			wantPresent: "sub-0101.json",
			wantAbsent:  "sub-0042.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			cmd := NewHistoryCommand(&RootOptions{Format: "text"})
			cmd.SetOut(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			require.NoError(t, err)
			assert.Contains(t, buf.String(), tt.wantCount)
			assert.Contains(t, buf.String(), tt.wantPresent)
			assert.NotContains(t, buf.String(), tt.wantAbsent)
		})
	}
}

func TestHistoryJSON(t *testing.T) {
	tmpDir := t.TempDir()
	ledgerPath := filepath.Join(tmpDir, "runs.db")
	seedHistoryLedger(t, ledgerPath)

	buf := &bytes.Buffer{}
	cmd := NewHistoryCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--ledger", ledgerPath})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), data["count"])

	runs, ok := data["runs"].([]interface{})
	require.True(t, ok)
	require.Len(t, runs, 2)

	newest, ok := runs[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "failed", newest["status"])
	assert.Equal(t, "Leiden", newest["site"])
}

func TestHistoryInvalidStatus(t *testing.T) {
	tmpDir := t.TempDir()
	ledgerPath := filepath.Join(tmpDir, "runs.db")

	cmd := NewHistoryCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--ledger", ledgerPath, "--status", "partial"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid status")
}

func TestHistoryUnopenableLedger(t *testing.T) {
	cmd := NewHistoryCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--ledger", "/nonexistent/directory/runs.db"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to open ledger")
}
