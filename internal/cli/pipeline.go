package cli

import (
	"github.com/JulianGaviriaL/parbids/internal/infer"
	"github.com/JulianGaviriaL/parbids/internal/par"
	"github.com/JulianGaviriaL/parbids/internal/profile"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeHeaderRead   = "E002" // PAR header unreadable or undecodable
	ErrCodeSidecarRead  = "E003" // Sidecar exists but could not be read
	ErrCodeSidecarParse = "E004" // Sidecar is not a JSON object
	ErrCodeBackupFailed = "E005" // Backup copy could not be written
	ErrCodeWriteFailed  = "E006" // Sidecar replace failed

	// Command-setup errors - exit code 2, no file has been touched yet
	ErrCodeConfig = "E101" // Config unreadable or rejected by the schema
	ErrCodeLedger = "E102" // Ledger unavailable
)

// FileError is a per-file failure: the pipeline stopped and the sidecar
// on disk was left exactly as it was.
type FileError struct {
	Code string
	Err  error
}

func (e *FileError) Error() string {
	return e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// loadConfig returns the built-in configuration table, or the table with a
// YAML override file applied when path is non-empty. A bad override is a
// command error; nothing has been read or written at that point.
func loadConfig(path string) (profile.Config, error) {
	if path == "" {
		return profile.Default(), nil
	}
	return profile.Load(path)
}

// extractHeader reads and decodes a PAR header, then runs inference over
// it. The header path doubles as the site path hint.
func extractHeader(cfg profile.Config, headerPath string, formatter *OutputFormatter) (infer.Result, error) {
	doc, err := par.Read(headerPath)
	if err != nil {
		return infer.Result{}, err
	}

	res := infer.New(cfg).Extract(doc, headerPath)

	formatter.VerboseLog("Detected site: %s (%s confidence)", res.Site.Site, res.Site.Confidence)
	formatter.VerboseLog("Extraction profile: %s", res.Report.Profile)
	if res.Report.SliceTimingAlgorithm != "" {
		formatter.VerboseLog("Slice timing: %s", res.Report.SliceTimingAlgorithm)
	}
	if res.Report.SliceEncodingStrategy != "" {
		formatter.VerboseLog("Slice encoding strategy: %s", res.Report.SliceEncodingStrategy)
	}
	if res.Report.PhaseEncodingSource != "" {
		formatter.VerboseLog("Phase encoding source: %s", res.Report.PhaseEncodingSource)
	}
	if res.Report.EchoSpacingSource != "" {
		formatter.VerboseLog("Echo spacing source: %s", res.Report.EchoSpacingSource)
	}
	formatter.VerboseLog("Inferred %d field(s) from %s", res.Fields.Len(), headerPath)

	return res, nil
}

// outputCommandError reports a command-level error and returns the exit
// code 2 error for it.
func outputCommandError(formatter *OutputFormatter, code string, err error) error {
	_ = formatter.Error(code, err.Error(), nil)
	return WrapExitError(ExitCommandError, code, err)
}
