package cmd

import (
	"encoding/json"
	"fmt"

	reportadapter "github.com/bnema/petwatch/internal/adapters/render/report"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *app) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent observations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, app, limit, asJSON)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum observations to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func runHistory(cmd *cobra.Command, app *app, limit int, asJSON bool) error {
	observations, err := app.monitor.History(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(observations)
	}

	rendered, err := app.historyRenderer(observations, reportadapter.RenderOptions{Now: app.now()})
	if err != nil {
		return fmt.Errorf("render history: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
