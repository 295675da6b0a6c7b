package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/imkarma/tasks/internal/tui"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive project and task list",
	Long:  "Opens the two-pane list: projects, and the tasks of the project you enter.\nThis is also what `tasks` does without a subcommand.",
	Args:  cobra.NoArgs,
	RunE:  runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}

	model := tui.New(s, tui.Options{
		ConfirmDelete: cfg.ShouldConfirmDelete(),
		DateFormat:    cfg.DateFormat,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	log.WithFields(log.Fields{"path": s.Path(), "projects": s.ProjectCount()}).Info("ui started")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	log.Info("ui closed")

	return nil
}
