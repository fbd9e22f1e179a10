package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newWatchCmd(app *app) *cobra.Command {
	var intervalMinutes int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Monitor continuously on a fixed interval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if intervalMinutes < 1 {
				return fmt.Errorf("interval must be at least 1 minute, got %d", intervalMinutes)
			}
			return runWatch(cmd, app, time.Duration(intervalMinutes)*time.Minute, asJSON)
		},
	}

	cmd.Flags().IntVar(&intervalMinutes, "interval", 5, "Minutes between checks")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func runWatch(cmd *cobra.Command, app *app, interval time.Duration, asJSON bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "watching every %s, press ctrl+c to stop\n", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		// A failed cycle is reported and the loop keeps ticking.
		if err := watchCycle(ctx, cmd, app, asJSON); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "check failed: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func watchCycle(ctx context.Context, cmd *cobra.Command, app *app, asJSON bool) error {
	report, err := app.monitor.RunCycle(ctx)
	if err != nil {
		return err
	}

	if asJSON {
		return writeReportJSON(cmd, report)
	}

	return writeReportOutput(cmd, app, report)
}
