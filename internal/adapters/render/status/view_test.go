package status

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/crewtime-cli/internal/application"
	"github.com/bnema/crewtime-cli/internal/domain"
)

func TestRenderClockedInStatus(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 5, 0, 0, time.UTC)

	output := Render(application.RefreshState{
		HasData: true,
		Snapshot: application.Snapshot{
			Identity: domain.Identity{UserID: 101, CrewID: 7, FullName: "Jo Example"},
			LatestStamp: &domain.Stamp{Raw: map[string]any{
				"stampType":      "START_WORK",
				"stampStatus":    "OPEN",
				"timestamp":      "2024-05-01T09:00:00Z",
				"allocationDate": "2024-05-01",
			}},
			Status: domain.StatusClockedIn,
		},
	}, nil, RenderOptions{Now: now})

	assert.Contains(t, output, "Crewmeister Time Clock")
	assert.Contains(t, output, "Jo Example (user 101, crew 7)")
	assert.Contains(t, output, "CLOCKED IN")
	assert.Contains(t, output, "5m ago")
	assert.Contains(t, output, "last stamp: START_WORK")
	assert.Contains(t, output, "allocated to 2024-05-01")
}

func TestRenderWithoutData(t *testing.T) {
	output := Render(application.RefreshState{}, nil, RenderOptions{Now: time.Now()})
	assert.Contains(t, output, "No status available yet.")

	output = Render(application.RefreshState{LastErr: errors.New("boom")}, nil, RenderOptions{Now: time.Now()})
	assert.Contains(t, output, "refresh failed: boom")
}

func TestRenderStaleSnapshotShowsWarning(t *testing.T) {
	output := Render(application.RefreshState{
		HasData: true,
		Snapshot: application.Snapshot{
			Identity: domain.Identity{UserID: 101, CrewID: 7},
			Status:   domain.StatusClockedOut,
		},
		LastErr: errors.New("connection refused"),
	}, nil, RenderOptions{Now: time.Now()})

	assert.Contains(t, output, "CLOCKED OUT")
	assert.Contains(t, output, "last refresh failed: connection refused")
}

func TestRenderUpcomingAbsences(t *testing.T) {
	events := []domain.AbsenceEvent{
		{
			Summary: "Vacation",
			Start:   time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			End:     time.Date(2024, 6, 5, 23, 59, 59, 0, time.UTC),
			State:   "APPROVED",
		},
		{
			Summary: "Absence 9",
			Start:   time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC),
			End:     time.Date(2024, 6, 10, 23, 59, 59, 0, time.UTC),
			State:   "PRE_APPROVED",
		},
	}

	output := Render(application.RefreshState{
		HasData: true,
		Snapshot: application.Snapshot{
			Identity: domain.Identity{UserID: 101, CrewID: 7},
			Status:   domain.StatusClockedOut,
		},
	}, events, RenderOptions{Now: time.Now()})

	assert.Contains(t, output, "upcoming absences: 2")
	assert.Contains(t, output, "Vacation")
	assert.Contains(t, output, "2024-06-03 – 2024-06-05 [APPROVED]")
	assert.Contains(t, output, "Absence 9")
}

func TestFormatRelative(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{elapsed: 30 * time.Second, want: "just now"},
		{elapsed: -time.Minute, want: "just now"},
		{elapsed: 5 * time.Minute, want: "5m ago"},
		{elapsed: time.Hour, want: "1h ago"},
		{elapsed: 90 * time.Minute, want: "1h30m ago"},
		{elapsed: 25*time.Hour + 5*time.Minute, want: "25h05m ago"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatRelative(tt.elapsed))
	}
}
