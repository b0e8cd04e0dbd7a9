package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newAbsencesCmd(app *app) *cobra.Command {
	var (
		days   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "absences",
		Short: "List upcoming absences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := app.tracker(cmd.Context())
			if err != nil {
				return err
			}

			events, err := service.UpcomingAbsences(cmd.Context(), time.Duration(days)*24*time.Hour)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(events)
			}

			if len(events) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "No upcoming absences.")
				return err
			}
			for _, event := range events {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s – %s  [%s]\n",
					event.Summary,
					event.Start.Format("2006-01-02"),
					event.End.Format("2006-01-02"),
					event.State,
				)
				if err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Lookahead window in days (default 120)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}
