package cmd

import (
	"fmt"

	"github.com/bnema/crewtime-cli/internal/application"
	"github.com/bnema/crewtime-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newClockCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clock",
		Short: "Punch the clock",
	}

	cmd.AddCommand(
		newPunchCmd(app, "in", "Clock in (start or resume a shift)", domain.StampStartWork),
		newPunchCmd(app, "break", "Start a break", domain.StampStartBreak),
		newPunchCmd(app, "out", "Clock out", domain.StampClockOut),
	)

	return cmd
}

func newPunchCmd(app *app, use, short string, stampType domain.StampType) *cobra.Command {
	var (
		note        string
		location    string
		timeAccount int64
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := app.tracker(cmd.Context())
			if err != nil {
				return err
			}

			stamp, err := service.Punch(cmd.Context(), stampType, application.PunchOverrides{
				Note:          note,
				Location:      location,
				TimeAccountID: timeAccount,
			})
			if err != nil {
				return err
			}

			// Re-derive the status from the write result so the reply
			// reflects the stamp that was just created.
			status := domain.DeriveStatus(stamp)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %s\n", status)
			return err
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Note to attach to the stamp")
	cmd.Flags().StringVar(&location, "location", "", "Location to attach to the stamp")
	cmd.Flags().Int64Var(&timeAccount, "time-account", 0, "Time account id for the stamp")

	return cmd
}
