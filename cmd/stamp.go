package cmd

import (
	"fmt"
	"time"

	"github.com/bnema/crewtime-cli/internal/domain"
	"github.com/spf13/cobra"
)

// newStampCmd is the raw create-stamp surface: no transition validation,
// every wire parameter exposed. It mirrors the automation service call the
// hosted integration registers.
func newStampCmd(app *app) *cobra.Command {
	var (
		stampType      string
		timestamp      string
		note           string
		location       string
		timeAccount    int64
		chainStart     int64
		allocationDate string
	)

	cmd := &cobra.Command{
		Use:   "stamp",
		Short: "Create a stamp with explicit parameters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := domain.StampRequest{
				Type:           domain.StampType(stampType),
				Note:           note,
				Location:       location,
				TimeAccountID:  timeAccount,
				AllocationDate: allocationDate,
			}
			if !req.Type.Valid() {
				return fmt.Errorf("%w: %q (want START_WORK, START_BREAK or CLOCK_OUT)",
					domain.ErrUnsupportedStampType, stampType)
			}
			if timestamp != "" {
				parsed, err := time.Parse(time.RFC3339, timestamp)
				if err != nil {
					return fmt.Errorf("parse --timestamp: %w", err)
				}
				req.Timestamp = parsed
			}
			if chainStart > 0 {
				req.ChainStartStampID = &chainStart
			}

			service, err := app.tracker(cmd.Context())
			if err != nil {
				return err
			}

			stamp, err := service.CreateStamp(cmd.Context(), req)
			if err != nil {
				return err
			}

			if id, ok := stamp.ID(); ok {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "created stamp %d (%s)\n", id, stamp.Type())
			} else {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "created stamp (%s)\n", stamp.Type())
			}
			return err
		},
	}

	cmd.Flags().StringVar(&stampType, "type", "", "Stamp type: START_WORK, START_BREAK or CLOCK_OUT")
	cmd.Flags().StringVar(&timestamp, "timestamp", "", "Stamp timestamp (RFC 3339, default now)")
	cmd.Flags().StringVar(&note, "note", "", "Note to attach")
	cmd.Flags().StringVar(&location, "location", "", "Location to attach")
	cmd.Flags().Int64Var(&timeAccount, "time-account", 0, "Time account id")
	cmd.Flags().Int64Var(&chainStart, "chain-start", 0, "Chain start stamp id for follow-up stamps")
	cmd.Flags().StringVar(&allocationDate, "allocation-date", "", "Allocation date (YYYY-MM-DD, default timestamp's date)")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}
