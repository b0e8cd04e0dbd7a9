package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	statusadapter "github.com/bnema/crewtime-cli/internal/adapters/render/status"
	"github.com/bnema/crewtime-cli/internal/application"
	"github.com/bnema/crewtime-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var (
		asJSON       bool
		withAbsences bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current work status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := app.tracker(cmd.Context())
			if err != nil {
				return err
			}

			snapshot, err := service.Refresh(cmd.Context())
			if err != nil {
				return err
			}

			var events []domain.AbsenceEvent
			if withAbsences {
				events, err = service.UpcomingAbsences(cmd.Context(), 0)
				if err != nil {
					// Absence data is decoration on the status view; the
					// snapshot itself is already here.
					app.logger.Debug("absence lookup failed", "error", err)
					events = nil
				}
			}

			if asJSON {
				return writeStatusJSON(cmd, snapshot, events)
			}

			rendered := statusadapter.Render(
				application.RefreshState{Snapshot: snapshot, HasData: true},
				events,
				statusadapter.RenderOptions{Now: app.now()},
			)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&withAbsences, "absences", false, "Include upcoming absences")

	return cmd
}

type statusOutput struct {
	Status      domain.WorkStatus     `json:"status"`
	IsClockedIn bool                  `json:"is_clocked_in"`
	IsOnBreak   bool                  `json:"is_on_break"`
	Identity    domain.Identity       `json:"identity"`
	LatestStamp map[string]any        `json:"latest_stamp,omitempty"`
	UpdatedAt   time.Time             `json:"updated_at"`
	Absences    []domain.AbsenceEvent `json:"absences,omitempty"`
}

func writeStatusJSON(cmd *cobra.Command, snapshot application.Snapshot, events []domain.AbsenceEvent) error {
	out := statusOutput{
		Status:      snapshot.Status,
		IsClockedIn: snapshot.Status == domain.StatusClockedIn,
		IsOnBreak:   snapshot.Status == domain.StatusOnBreak,
		Identity:    snapshot.Identity,
		UpdatedAt:   snapshot.UpdatedAt,
		Absences:    events,
	}
	if snapshot.LatestStamp != nil {
		out.LatestStamp = snapshot.LatestStamp.Raw
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
