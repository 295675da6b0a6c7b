package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/imkarma/tasks/internal/store"
	"github.com/spf13/cobra"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

func stateColor(st store.State) string {
	switch st {
	case store.StateTodo:
		return colorRed
	case store.StateOngoing:
		return colorYellow
	case store.StateDone:
		return colorGreen
	}
	return colorReset
}

var boardCmd = &cobra.Command{
	Use:   "board [project]",
	Short: "Show projects with their tasks grouped by state",
	Long:  "Prints every project, or only the given 1-based project, with tasks grouped TODO, ONGOING, DONE.\nTask numbers are the ones the other commands take.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBoard,
}

func runBoard(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	s, err := mustStore()
	if err != nil {
		return err
	}

	if s.ProjectCount() == 0 {
		fmt.Fprintf(out, "%sBoard is empty.%s Create a project: %stasks project add \"description\"%s\n",
			colorDim, colorReset, colorCyan, colorReset)
		return nil
	}

	if len(args) == 1 {
		p, err := parseProject(s, args[0])
		if err != nil {
			return err
		}
		printProject(out, p, s.Project(p))
		return nil
	}

	for i, p := range s.Projects() {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printProject(out, i, p)
	}
	return nil
}

func printProject(out io.Writer, idx int, p store.Project) {
	fmt.Fprintf(out, "%s%d. %s%s %s(%d tasks)%s\n",
		colorBold, idx+1, p.Description, colorReset, colorDim, len(p.Tasks), colorReset)
	if p.Notes != "" {
		fmt.Fprintf(out, "   %s%s%s\n", colorDim, p.Notes, colorReset)
	}

	for _, st := range store.AllStates {
		var lines []string
		for i, t := range p.Tasks {
			if t.State() == st {
				lines = append(lines, fmt.Sprintf("     %s%3d%s  %s", colorCyan, i+1, colorReset, t.Description()))
			}
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(out, "   %s%s%s\n", stateColor(st), st, colorReset)
		fmt.Fprintln(out, strings.Join(lines, "\n"))
	}
}
