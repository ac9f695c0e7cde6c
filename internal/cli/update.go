package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/JulianGaviriaL/parbids/internal/bids"
	"github.com/JulianGaviriaL/parbids/internal/ledger"
	"github.com/JulianGaviriaL/parbids/internal/profile"
	"github.com/JulianGaviriaL/parbids/internal/sidecar"
)

// UpdateOptions holds flags for the update command.
type UpdateOptions struct {
	*RootOptions
	Config string
	Ledger string

	// Now returns the run start time. If nil, defaults to time.Now.
	// Overridable for tests that need stable backup names.
	Now func() time.Time

	// NewRunID mints the run identifier. If nil, defaults to a UUIDv7.
	NewRunID func() string
}

// UpdateResult is the machine-readable outcome of one update run.
type UpdateResult struct {
	Header            string   `json:"header"`
	Sidecar           string   `json:"sidecar"`
	Site              string   `json:"site,omitempty"`
	Confidence        string   `json:"confidence,omitempty"`
	ExportToolVersion string   `json:"export_tool_version,omitempty"`
	FieldsAdded       []string `json:"fields_added"`
	FieldsUpdated     []string `json:"fields_updated"`
	Backup            string   `json:"backup,omitempty"`
	Created           bool     `json:"created,omitempty"`
	RunID             string   `json:"run_id"`
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UpdateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update <header.PAR> <sidecar.json>",
		Short: "Merge inferred BIDS fields into a sidecar",
		Long: `Infer BIDS metadata from a Philips PAR header and merge it into the
JSON sidecar next to it.

The sidecar is backed up before it is replaced, existing entries are
never deleted, and entries that already hold the inferred value are
left byte-for-byte alone. Each run stamps a processing provenance
block recording what was detected and what changed. If the sidecar
does not exist yet, a fresh one is created.

Example:
  parbids update sub-0042.PAR sub-0042.json
  parbids update sub-0042.PAR sub-0042.json --ledger runs.db --verbose`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to YAML config overrides")
	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "path to SQLite run ledger (optional)")

	return cmd
}

func runUpdate(opts *UpdateOptions, headerPath, sidecarPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return outputCommandError(formatter, ErrCodeConfig, err)
	}

	var store *ledger.Store
	if opts.Ledger != "" {
		store, err = ledger.Open(opts.Ledger)
		if err != nil {
			return outputCommandError(formatter, ErrCodeLedger, fmt.Errorf("opening ledger: %w", err))
		}
		defer store.Close()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newRunID := opts.NewRunID
	if newRunID == nil {
		newRunID = sidecar.NewRunID
	}

	startedAt := now()
	result, updateErr := applyUpdate(cfg, headerPath, sidecarPath, newRunID(), startedAt, formatter)

	// A failed run is still recorded; the error column says why.
	if store != nil {
		if err := recordRun(store, result, startedAt, updateErr); err != nil {
			return outputCommandError(formatter, ErrCodeLedger, fmt.Errorf("recording run: %w", err))
		}
	}

	if updateErr != nil {
		return outputUpdateFailure(formatter, result, updateErr)
	}
	return outputUpdateSuccess(formatter, result)
}

// applyUpdate runs the per-file pipeline: read header, infer fields, load
// the sidecar, back it up, merge, stamp provenance, replace atomically.
// On a FileError the sidecar on disk is untouched. The partially filled
// result is returned either way so failures can be reported and ledgered.
func applyUpdate(cfg profile.Config, headerPath, sidecarPath, runID string, startedAt time.Time, formatter *OutputFormatter) (UpdateResult, *FileError) {
	result := UpdateResult{
		Header:        headerPath,
		Sidecar:       sidecarPath,
		RunID:         runID,
		FieldsAdded:   []string{},
		FieldsUpdated: []string{},
	}

	res, err := extractHeader(cfg, headerPath, formatter)
	if err != nil {
		return result, &FileError{Code: ErrCodeHeaderRead, Err: err}
	}
	result.Site = res.Site.Site.String()
	result.Confidence = res.Site.Confidence.String()
	result.ExportToolVersion = res.Site.ToolVersion

	doc, err := sidecar.Load(sidecarPath)
	switch {
	case err == nil:
		backup, backupErr := sidecar.Backup(sidecarPath, startedAt)
		if backupErr != nil {
			return result, &FileError{Code: ErrCodeBackupFailed, Err: backupErr}
		}
		result.Backup = backup
		formatter.VerboseLog("Backed up sidecar to %s", backup)
	case errors.Is(err, fs.ErrNotExist):
		doc = sidecar.NewObject()
		result.Created = true
		formatter.VerboseLog("Sidecar %s does not exist, starting fresh", sidecarPath)
	default:
		var parseErr *sidecar.ParseError
		if errors.As(err, &parseErr) {
			return result, &FileError{Code: ErrCodeSidecarParse, Err: err}
		}
		return result, &FileError{Code: ErrCodeSidecarRead, Err: err}
	}

	merged := sidecar.Merge(doc, res.Fields)
	if merged.Added != nil {
		result.FieldsAdded = merged.Added
	}
	if merged.Updated != nil {
		result.FieldsUpdated = merged.Updated
	}

	sidecar.Stamp(doc, sidecar.Provenance{
		RunID:                 runID,
		Tool:                  bids.ToolName,
		ToolVersion:           bids.ToolVersion,
		Timestamp:             startedAt.UTC().Format(time.RFC3339),
		ExportToolVersion:     res.Site.ToolVersion,
		Site:                  res.Site.Site.String(),
		Confidence:            res.Site.Confidence.String(),
		Characteristics:       res.Site.Characteristics,
		SliceTimingAlgorithm:  res.Report.SliceTimingAlgorithm,
		SliceEncodingStrategy: res.Report.SliceEncodingStrategy,
		PhaseEncodingSource:   res.Report.PhaseEncodingSource,
		FieldsAdded:           result.FieldsAdded,
		FieldsUpdated:         result.FieldsUpdated,
	})

	if err := doc.WriteFile(sidecarPath); err != nil {
		return result, &FileError{Code: ErrCodeWriteFailed, Err: err}
	}
	return result, nil
}

// recordRun writes one ledger row for the run, successful or not.
func recordRun(store *ledger.Store, result UpdateResult, startedAt time.Time, updateErr *FileError) error {
	run := ledger.Run{
		ID:            result.RunID,
		StartedAt:     startedAt,
		HeaderPath:    result.Header,
		SidecarPath:   result.Sidecar,
		Site:          result.Site,
		Confidence:    result.Confidence,
		ToolVersion:   bids.ToolVersion,
		FieldsAdded:   len(result.FieldsAdded),
		FieldsUpdated: len(result.FieldsUpdated),
		BackupPath:    result.Backup,
		Status:        ledger.StatusOK,
	}
	if updateErr != nil {
		run.Status = ledger.StatusFailed
		run.Error = updateErr.Error()
	}
	return store.Record(context.Background(), run)
}

// outputUpdateSuccess reports a finished run.
func outputUpdateSuccess(formatter *OutputFormatter, result UpdateResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	if result.Created {
		fmt.Fprintf(w, "✓ %s created\n", result.Sidecar)
	} else {
		fmt.Fprintf(w, "✓ %s updated\n", result.Sidecar)
	}
	fmt.Fprintf(w, "site: %s (%s confidence)\n", result.Site, result.Confidence)
	fmt.Fprintf(w, "added (%d): %s\n", len(result.FieldsAdded), joinOrDash(result.FieldsAdded))
	fmt.Fprintf(w, "updated (%d): %s\n", len(result.FieldsUpdated), joinOrDash(result.FieldsUpdated))
	if result.Backup != "" {
		fmt.Fprintf(w, "backup: %s\n", result.Backup)
	}
	return nil
}

// outputUpdateFailure reports a per-file failure (exit code 1).
func outputUpdateFailure(formatter *OutputFormatter, result UpdateResult, fileErr *FileError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    fileErr.Code,
				Message: fileErr.Error(),
			},
			RunID: result.RunID,
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return WrapExitError(ExitFailure, "update failed", fileErr)
	}

	fmt.Fprintf(formatter.Writer, "✗ %s not updated\n", result.Sidecar)
	fmt.Fprintf(formatter.Writer, "  %s: %s\n", fileErr.Code, fileErr.Error())
	return WrapExitError(ExitFailure, "update failed", fileErr)
}

// joinOrDash renders a name list for text output.
func joinOrDash(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
