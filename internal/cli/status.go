package cli

import (
	"fmt"

	"github.com/imkarma/tasks/internal/store"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Quick status overview",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	s, err := mustStore()
	if err != nil {
		return err
	}

	if s.ProjectCount() == 0 {
		fmt.Fprintf(out, "No projects. Run: %stasks project add \"description\"%s\n", colorCyan, colorReset)
		return nil
	}

	counts := map[store.State]int{}
	total := 0
	for _, p := range s.Projects() {
		for st, n := range p.CountByState() {
			counts[st] += n
			total += n
		}
	}

	fmt.Fprintf(out, "%sProjects: %d%s\n", colorBold, s.ProjectCount(), colorReset)
	fmt.Fprintf(out, "%sTasks: %d total%s\n", colorBold, total, colorReset)
	for _, st := range store.AllStates {
		fmt.Fprintf(out, "  %-10s %s%d%s\n", st.String()+":", stateColor(st), counts[st], colorReset)
	}

	return nil
}
