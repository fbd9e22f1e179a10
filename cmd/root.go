package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "petwatch",
		Short:         "Pet camera monitor: snapshot analysis and safety alerts",
		Long:          "petwatch polls a camera snapshot endpoint, asks a vision model what the pet is doing, keeps a local observation journal, and pushes an alert when the model reports danger or an obstruction.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newCheckCmd(app),
		newWatchCmd(app),
		newStatusCmd(app),
		newHistoryCmd(app),
	)

	return rootCmd
}
