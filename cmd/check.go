package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	reportadapter "github.com/bnema/petwatch/internal/adapters/render/report"
	"github.com/bnema/petwatch/internal/application"
	"github.com/spf13/cobra"
)

func newCheckCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Capture and analyze one snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, app, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func runCheck(cmd *cobra.Command, app *app, asJSON bool) error {
	var report application.Report
	cycle := func(ctx context.Context) error {
		var err error
		report, err = app.monitor.RunCycle(ctx)
		return err
	}

	if asJSON {
		if err := cycle(cmd.Context()); err != nil {
			return err
		}
		return writeReportJSON(cmd, report)
	}

	if err := runCheckSpinner(cmd.Context(), cmd.ErrOrStderr(), cycle); err != nil {
		return err
	}

	return writeReportOutput(cmd, app, report)
}

func writeReportOutput(cmd *cobra.Command, app *app, report application.Report) error {
	rendered, err := app.reportRenderer(report, reportadapter.RenderOptions{Now: app.now()})
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func writeReportJSON(cmd *cobra.Command, report application.Report) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
