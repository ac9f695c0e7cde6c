package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JulianGaviriaL/parbids/internal/bids"
)

// VersionInfo is the version payload for JSON output.
type VersionInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "version",
		Short:         "Print version information",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(rootOpts, cmd)
		},
	}

	return cmd
}

func runVersion(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if formatter.Format == "json" {
		return formatter.Success(VersionInfo{Name: bids.ToolName, Version: bids.ToolVersion})
	}

	fmt.Fprintf(formatter.Writer, "%s %s\n", bids.ToolName, bids.ToolVersion)
	return nil
}
