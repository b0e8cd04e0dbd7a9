package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ct",
		Short:         "Crewmeister time clock (ct): punch the clock and watch your status",
		Long:          "ct talks to the Crewmeister time-tracking API: clock in and out, take breaks, inspect your current work status, and list upcoming absences from the terminal.",
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
		newLoginCmd(app),
		newStatusCmd(app),
		newClockCmd(app),
		newStampCmd(app),
		newAbsencesCmd(app),
		newWatchCmd(app),
	)

	return rootCmd
}
