package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/JulianGaviriaL/parbids/internal/ledger"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Ledger string
	Site   string
	Status string
	Limit  int
}

// HistoryResult holds the listed runs, newest first.
type HistoryResult struct {
	Count int          `json:"count"`
	Runs  []ledger.Run `json:"runs"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded update runs",
		Long: `List the runs recorded in a ledger database, newest first.

Example:
  parbids history --ledger runs.db
  parbids history --ledger runs.db --site Amsterdam --status failed
  parbids history --ledger runs.db --limit 10 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "path to SQLite run ledger (required)")
	_ = cmd.MarkFlagRequired("ledger")
	cmd.Flags().StringVar(&opts.Site, "site", "", "only runs for this site")
	cmd.Flags().StringVar(&opts.Status, "status", "", "only runs with this status (ok|failed)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of runs (0 = all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	if opts.Status != "" && opts.Status != ledger.StatusOK && opts.Status != ledger.StatusFailed {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid status %q: must be %q or %q", opts.Status, ledger.StatusOK, ledger.StatusFailed))
	}

	store, err := ledger.Open(opts.Ledger)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	defer store.Close()

	runs, err := store.List(context.Background(), ledger.Filter{
		Site:   opts.Site,
		Status: opts.Status,
		Limit:  opts.Limit,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	result := HistoryResult{Count: len(runs), Runs: runs}

	if opts.Format == "json" {
		response := CLIResponse{Status: "ok", Data: result}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(response)
	}

	return outputHistoryText(cmd, result)
}

// outputHistoryText renders the run listing.
func outputHistoryText(cmd *cobra.Command, result HistoryResult) error {
	w := cmd.OutOrStdout()

	if result.Count == 0 {
		fmt.Fprintln(w, "no runs recorded")
		return nil
	}

	fmt.Fprintf(w, "%d run(s)\n", result.Count)
	for _, r := range result.Runs {
		fmt.Fprintf(w, "%s  %-6s  %-18s  +%d ~%d  %s\n",
			r.StartedAt.UTC().Format(time.RFC3339),
			r.Status,
			r.Site,
			r.FieldsAdded,
			r.FieldsUpdated,
			r.SidecarPath)
		if r.Error != "" {
			fmt.Fprintf(w, "    %s\n", r.Error)
		}
	}
	return nil
}
