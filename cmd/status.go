package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/petwatch/internal/application"
	"github.com/bnema/petwatch/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the latest recorded observation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, app, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func runStatus(cmd *cobra.Command, app *app, asJSON bool) error {
	observation, err := app.monitor.LatestObservation(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrObservationNotFound) {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "No observations recorded yet. Run `petwatch check` first.")
			return err
		}
		return err
	}

	report := application.Report{
		Observation:    observation,
		AlertsDisabled: !app.monitor.AlertsEnabled(),
	}

	if asJSON {
		return writeReportJSON(cmd, report)
	}

	return writeReportOutput(cmd, app, report)
}
