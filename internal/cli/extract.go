package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JulianGaviriaL/parbids/internal/bids"
	"github.com/JulianGaviriaL/parbids/internal/infer"
)

// ExtractResult is the machine-readable outcome of a dry-run extraction.
type ExtractResult struct {
	Header            string         `json:"header"`
	Site              string         `json:"site"`
	Confidence        string         `json:"confidence"`
	ExportToolVersion string         `json:"export_tool_version,omitempty"`
	Characteristics   []string       `json:"characteristics,omitempty"`
	Report            ExtractReport  `json:"report"`
	Fields            *bids.FieldSet `json:"fields"`
}

// ExtractReport says which heuristic produced each ambiguous field.
// Empty entries mean the field was not emitted.
type ExtractReport struct {
	Profile               string `json:"profile"`
	SliceTimingAlgorithm  string `json:"slice_timing_algorithm,omitempty"`
	SliceEncodingStrategy string `json:"slice_encoding_strategy,omitempty"`
	PhaseEncodingSource   string `json:"phase_encoding_source,omitempty"`
	EchoSpacingSource     string `json:"echo_spacing_source,omitempty"`
	EchoTimeSource        string `json:"echo_time_source,omitempty"`
}

// NewExtractCommand creates the extract command.
func NewExtractCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExtractOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "extract <header.PAR>",
		Short: "Show inferred BIDS fields without writing anything",
		Long: `Read a Philips PAR header and print the site detection and every
BIDS field the engine would merge, in emission order. Nothing is
written; this is the dry run for update.

Example:
  parbids extract sub-0042.PAR
  parbids extract sub-0042.PAR --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to YAML config overrides")

	return cmd
}

// ExtractOptions holds flags for the extract command.
type ExtractOptions struct {
	*RootOptions
	Config string
}

func runExtract(opts *ExtractOptions, headerPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return outputCommandError(formatter, ErrCodeConfig, err)
	}

	res, err := extractHeader(cfg, headerPath, formatter)
	if err != nil {
		_ = formatter.Error(ErrCodeHeaderRead, err.Error(), nil)
		return WrapExitError(ExitFailure, "extract failed", err)
	}

	result := ExtractResult{
		Header:            headerPath,
		Site:              res.Site.Site.String(),
		Confidence:        res.Site.Confidence.String(),
		ExportToolVersion: res.Site.ToolVersion,
		Characteristics:   res.Site.Characteristics,
		Report: ExtractReport{
			Profile:               res.Report.Profile.String(),
			SliceTimingAlgorithm:  res.Report.SliceTimingAlgorithm,
			SliceEncodingStrategy: res.Report.SliceEncodingStrategy,
			PhaseEncodingSource:   res.Report.PhaseEncodingSource,
			EchoSpacingSource:     res.Report.EchoSpacingSource,
			EchoTimeSource:        res.Report.EchoTimeSource,
		},
		Fields: res.Fields,
	}

	if formatter.Format == "json" {
		response := CLIResponse{Status: "ok", Data: result}
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(response)
	}

	return outputExtractText(formatter, result, res)
}

// outputExtractText renders the dry-run listing.
func outputExtractText(formatter *OutputFormatter, result ExtractResult, res infer.Result) error {
	w := formatter.Writer

	fmt.Fprintf(w, "header: %s\n", result.Header)
	fmt.Fprintf(w, "site: %s (%s confidence)\n", result.Site, result.Confidence)
	if result.ExportToolVersion != "" {
		fmt.Fprintf(w, "export tool: V%s\n", result.ExportToolVersion)
	}
	if len(result.Characteristics) > 0 {
		fmt.Fprintf(w, "characteristics: %s\n", strings.Join(result.Characteristics, ", "))
	}
	fmt.Fprintf(w, "fields (%d):\n", res.Fields.Len())
	for _, name := range res.Fields.Names() {
		val, _ := res.Fields.Get(name)
		fmt.Fprintf(w, "  %s: %s\n", name, formatFieldValue(val))
	}
	return nil
}

// formatFieldValue renders one field value for the text listing.
func formatFieldValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []float64:
		parts := make([]string, len(val))
		for i, f := range val {
			parts[i] = fmt.Sprintf("%v", f)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}
