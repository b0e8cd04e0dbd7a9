package cmd

import (
	"context"
	"fmt"
	"time"

	statusadapter "github.com/bnema/crewtime-cli/internal/adapters/render/status"
	"github.com/bnema/crewtime-cli/internal/application"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the work status, refreshed periodically",
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := app.tracker(cmd.Context())
			if err != nil {
				return err
			}

			interval := app.settings.UpdateInterval
			if interval <= 0 {
				interval = time.Minute
			}
			refresher := application.NewRefresher(service, interval)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go func() { _ = refresher.Run(ctx) }()

			model := newWatchModel(refresher, app.now)
			program := tea.NewProgram(model,
				tea.WithContext(ctx),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithInput(cmd.InOrStdin()),
			)
			if _, err := program.Run(); err != nil && ctx.Err() == nil {
				return fmt.Errorf("run watch view: %w", err)
			}
			return nil
		},
	}

	return cmd
}

type refreshedMsg struct{}

type watchModel struct {
	spinner   spinner.Model
	refresher *application.Refresher
	now       func() time.Time
	state     application.RefreshState
}

func newWatchModel(refresher *application.Refresher, now func() time.Time) watchModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return watchModel{
		spinner:   s,
		refresher: refresher,
		now:       now,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForRefresh(m.refresher))
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case refreshedMsg:
		m.state = m.refresher.State()
		return m, waitForRefresh(m.refresher)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	if !m.state.HasData && m.state.LastErr == nil {
		return fmt.Sprintf("%s fetching status...\n", m.spinner.View())
	}

	rendered := statusadapter.Render(m.state, nil, statusadapter.RenderOptions{Now: m.now()})
	return rendered + "\n\npress q to quit\n"
}

func waitForRefresh(refresher *application.Refresher) tea.Cmd {
	return func() tea.Msg {
		<-refresher.Updated()
		return refreshedMsg{}
	}
}
