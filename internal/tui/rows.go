package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/imkarma/tasks/internal/store"
)

// listable produces the display line for one list row.
type listable interface {
	view(width int) string
}

const (
	stateColWidth   = 7
	countColWidth   = 5
	createdColWidth = 19
	// Fixed columns around the description: row number, dividers, and
	// the state and created-at columns.
	taskFixedWidth    = 37
	projectFixedWidth = 13
)

var (
	divStyle   = lipgloss.NewStyle().Foreground(clrBlue)
	countStyle = lipgloss.NewStyle().Width(countColWidth).Align(lipgloss.Center)
	dateStyle  = lipgloss.NewStyle().Foreground(clrPink)

	stateStyles = map[store.State]lipgloss.Style{
		store.StateTodo:    lipgloss.NewStyle().Foreground(clrRed).Width(stateColWidth).Align(lipgloss.Right),
		store.StateOngoing: lipgloss.NewStyle().Foreground(clrYellow).Width(stateColWidth).Align(lipgloss.Right),
		store.StateDone:    lipgloss.NewStyle().Foreground(clrGreen).Width(stateColWidth).Align(lipgloss.Right),
	}
)

func divLeft() string { return divStyle.Render(" |") }
func div() string     { return divStyle.Render(" | ") }

type projectRow struct {
	project store.Project
}

func (r projectRow) view(width int) string {
	desc := truncate(r.project.Description, width-projectFixedWidth)
	return divLeft() + countStyle.Render(strconv.Itoa(len(r.project.Tasks))) + div() + desc
}

type taskRow struct {
	task       store.Task
	dateFormat string
}

func (r taskRow) view(width int) string {
	state := r.task.State()
	descWidth := width - taskFixedWidth
	desc := truncate(r.task.Description(), descWidth)
	if pad := descWidth - lipgloss.Width(desc); pad > 0 {
		desc += strings.Repeat(" ", pad)
	}
	created := r.task.CreatedAt.Local().Format(r.dateFormat)
	return divLeft() + stateStyles[state].Render(state.String()) + div() + desc + div() + dateStyle.Render(created)
}

// projectHeader and taskHeader are the column titles drawn on the first
// screen row.
func projectHeader() string {
	return divLeft() + countStyle.Render("Tasks") + div() + "Description"
}

func taskHeader(width int) string {
	descWidth := max(width-taskFixedWidth, 0)
	title := "Description" + strings.Repeat(" ", max(descWidth-len("Description"), 0))
	return divLeft() + lipgloss.NewStyle().Width(stateColWidth).Align(lipgloss.Center).Render("State") +
		div() + title + div() + "Created At"
}

// paneDivider is the second header row: a rule with crossings under the
// column separators.
func paneDivider(width int, inTasks bool) string {
	n := max(width-3, 1)
	var cross []int
	if inTasks {
		cross = []int{1, 2 + stateColWidth, width - taskFixedWidth + 2 + stateColWidth + 3}
	} else {
		cross = []int{1, 2 + countColWidth}
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		if containsInt(cross, i) {
			b.WriteString("╋")
		} else {
			b.WriteString("━")
		}
	}
	return divStyle.Render(b.String())
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// truncate shortens s to at most width cells, marking the cut with "…".
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
