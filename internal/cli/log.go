package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log [project] [task]",
	Short: "Show event log for a task",
	Args:  cobra.ExactArgs(2),
	RunE:  runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	s, err := mustStore()
	if err != nil {
		return err
	}
	p, t, err := taskArgs(s, args)
	if err != nil {
		return err
	}

	task := s.Task(p, t)
	fmt.Fprintf(out, "Events for task %d of project %d: %s\n", t+1, p+1, task.Description())
	fmt.Fprintf(out, "  %sid %s, created %s, updated %s%s\n\n", colorDim, task.ID,
		task.CreatedAt.Local().Format(cfg.DateFormat), task.UpdatedAt().Local().Format(cfg.DateFormat), colorReset)
	for _, e := range task.Events {
		fmt.Fprintf(out, "  %s  %-12s %s\n", e.DateTime.Local().Format(cfg.DateFormat), e.Kind, e.Data())
	}
	return nil
}
