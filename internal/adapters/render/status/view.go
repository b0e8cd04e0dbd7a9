package status

import (
	"fmt"
	"time"

	"github.com/bnema/crewtime-cli/internal/application"
	"github.com/bnema/crewtime-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now time.Time
}

// Render produces the terminal view of the current tracking state plus any
// upcoming absences.
func Render(state application.RefreshState, events []domain.AbsenceEvent, opts RenderOptions) string {
	return renderView(state, events, opts, newStyles())
}

func renderView(state application.RefreshState, events []domain.AbsenceEvent, opts RenderOptions, s styles) string {
	lines := []string{s.title.Render("Crewmeister Time Clock")}

	if !state.HasData {
		if state.LastErr != nil {
			lines = append(lines, s.warning.Render("refresh failed: "+state.LastErr.Error()))
		} else {
			lines = append(lines, s.empty.Render("No status available yet."))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	snapshot := state.Snapshot
	lines = append(lines,
		s.header.Render(identityLine(snapshot.Identity)),
		statusLine(snapshot, opts.Now, s),
	)
	if detail := stampLine(snapshot.LatestStamp); detail != "" {
		lines = append(lines, s.detail.Render(detail))
	}
	if state.LastErr != nil {
		lines = append(lines, s.warning.Render("last refresh failed: "+state.LastErr.Error()))
	}

	if len(events) > 0 {
		lines = append(lines, s.section.Render(renderEvents(events, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func identityLine(identity domain.Identity) string {
	name := identity.FullName
	if name == "" {
		name = identity.Email
	}
	if name == "" {
		return fmt.Sprintf("user %d (crew %d)", identity.UserID, identity.CrewID)
	}
	return fmt.Sprintf("%s (user %d, crew %d)", name, identity.UserID, identity.CrewID)
}

func statusLine(snapshot application.Snapshot, now time.Time, s styles) string {
	var badge string
	switch snapshot.Status {
	case domain.StatusClockedIn:
		badge = s.clockedIn.Render("CLOCKED IN")
	case domain.StatusOnBreak:
		badge = s.onBreak.Render("ON BREAK")
	default:
		badge = s.clockedOut.Render("CLOCKED OUT")
	}

	if snapshot.LatestStamp != nil {
		if ts, ok := snapshot.LatestStamp.Timestamp(); ok && snapshot.Status != domain.StatusClockedOut {
			return badge + s.eventMeta.Render(fmt.Sprintf(" since %s (%s)",
				ts.Local().Format("15:04"), formatRelative(now.Sub(ts))))
		}
	}
	return badge
}

func stampLine(stamp *domain.Stamp) string {
	if stamp == nil {
		return ""
	}

	parts := fmt.Sprintf("last stamp: %s", stamp.Type())
	if ts, ok := stamp.Timestamp(); ok {
		parts += " at " + ts.Local().Format("2006-01-02 15:04:05")
	}
	if alloc := stamp.AllocationDate(); alloc != "" {
		parts += " (allocated to " + alloc + ")"
	}
	return parts
}

func renderEvents(events []domain.AbsenceEvent, s styles) string {
	lines := []string{s.header.Render(fmt.Sprintf("upcoming absences: %d", len(events)))}
	for _, event := range events {
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.eventKey.Render(event.Summary),
			" ",
			s.eventMeta.Render(fmt.Sprintf("%s – %s [%s]",
				event.Start.Format("2006-01-02"), event.End.Format("2006-01-02"), event.State)),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatRelative(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed < time.Minute {
		return "just now"
	}
	if elapsed < time.Hour {
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	}
	hours := int(elapsed.Hours())
	minutes := int(elapsed.Minutes()) % 60
	if minutes == 0 {
		return fmt.Sprintf("%dh ago", hours)
	}
	return fmt.Sprintf("%dh%02dm ago", hours, minutes)
}
