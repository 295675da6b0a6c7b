package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/imkarma/tasks/internal/nav"
	"github.com/imkarma/tasks/internal/store"
)

// --- Color palette ---
var (
	clrSubtle    = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#666666"}
	clrHighlight = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"}
	clrGreen     = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	clrYellow    = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	clrRed       = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	clrBlue      = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	clrPink      = lipgloss.AdaptiveColor{Light: "#BE185D", Dark: "#F472B6"}
	clrCyan      = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"}
	clrDim       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#555555"}
)

// --- Styles ---
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)
	dimStyle    = lipgloss.NewStyle().Foreground(clrDim)
	subtleStyle = lipgloss.NewStyle().Foreground(clrSubtle)
	promptStyle = lipgloss.NewStyle().Foreground(clrHighlight)

	numStyle      = lipgloss.NewStyle().Foreground(clrSubtle)
	numFocusStyle = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)

	statusStyle  = lipgloss.NewStyle().Foreground(clrGreen).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(clrRed).Bold(true)
	confirmStyle = lipgloss.NewStyle().Foreground(clrYellow).Bold(true)

	footerKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)
	footerDescStyle = lipgloss.NewStyle().Foreground(clrSubtle)
)

// numWidth is the row-number gutter left of every line.
const numWidth = 3

// chromeLines is the number of lines below the list: notes, status,
// input and help.
const chromeLines = 4

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == modeHistory {
		return m.viewHistory()
	}
	return m.viewList()
}

// ════════════════════════════════════════════════
// LIST VIEW: header, divider, numbered rows
// ════════════════════════════════════════════════

func (m Model) viewList() string {
	var b strings.Builder
	inTasks := m.nav.InTasks()
	gutter := strings.Repeat(" ", numWidth)

	if inTasks {
		b.WriteString(gutter + taskHeader(m.width) + "\n")
	} else {
		b.WriteString(gutter + projectHeader() + "\n")
	}
	b.WriteString(gutter + paneDivider(m.width, inTasks) + "\n")

	rows := m.rows()
	if len(rows) == 0 {
		what := "projects"
		if inTasks {
			what = "tasks"
		}
		b.WriteString(dimStyle.Render(fmt.Sprintf("  No %s yet. Press ", what)) +
			footerKeyStyle.Render("+") +
			dimStyle.Render(" to add one.") + "\n")
	}

	cursor := m.nav.Active.Index()
	start, end := visibleRange(len(rows), cursor, m.height-nav.HeaderOffset-chromeLines)
	for i := start; i < end; i++ {
		b.WriteString(rowNumber(i, i == cursor) + rows[i].view(m.width) + "\n")
	}

	b.WriteString(m.viewContextLine() + "\n")
	b.WriteString(m.viewStatusLine() + "\n")
	b.WriteString(m.viewBottomLine())
	return b.String()
}

// visibleRange picks the slice of rows that fits in height lines while
// keeping the cursor on screen.
func visibleRange(n, cursor, height int) (int, int) {
	if height < 1 {
		height = 1
	}
	if n <= height {
		return 0, n
	}
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	return start, min(start+height, n)
}

func rowNumber(i int, focused bool) string {
	if focused {
		return numFocusStyle.Render(fmt.Sprintf("▸%*d", numWidth-1, i+1))
	}
	return numStyle.Render(fmt.Sprintf("%*d", numWidth, i+1))
}

// viewContextLine names the open project in the task pane and shows the
// selected project's notes in the project pane.
func (m Model) viewContextLine() string {
	p, ok := m.selectedProject()
	if !ok {
		return ""
	}
	if m.nav.InTasks() {
		counts := p.CountByState()
		line := titleStyle.Render("  "+truncate(p.Description, max(m.width/2, 10))) +
			dimStyle.Render(fmt.Sprintf("  %d todo · %d ongoing · %d done", counts[store.StateTodo], counts[store.StateOngoing], counts[store.StateDone]))
		return line
	}
	if p.Notes == "" {
		return ""
	}
	return subtleStyle.Render("  " + truncate(p.Notes, max(m.width-2, 1)))
}

func (m Model) viewStatusLine() string {
	if m.statusMsg == "" {
		return ""
	}
	if m.statusErr {
		return errorStyle.Render("  " + m.statusMsg)
	}
	return statusStyle.Render("  " + m.statusMsg)
}

// viewBottomLine is the input line, the delete prompt or the key help.
func (m Model) viewBottomLine() string {
	switch m.mode {
	case modeInput:
		return "  " + m.input.View() + "\n" +
			renderFooter([]struct{ key, desc string }{{"enter", "save"}, {"esc", "cancel"}})
	case modeConfirm:
		what := "project"
		if m.nav.InTasks() {
			what = "task"
		}
		return confirmStyle.Render(fmt.Sprintf("  Delete %s %d? [y/N]", what, m.nav.Active.Index()+1))
	}
	return "  " + m.help.View(m.keys.forPane(m.nav.InTasks()))
}

// ════════════════════════════════════════════════
// HISTORY VIEW
// ════════════════════════════════════════════════

func (m Model) viewHistory() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("History"))
	b.WriteString("\n\n")

	b.WriteString(m.history.View())
	b.WriteString("\n\n")

	keys := []struct{ key, desc string }{
		{"↑↓", "scroll"},
		{"esc", "back"},
	}
	b.WriteString(renderFooter(keys))

	return b.String()
}

// ════════════════════════════════════════════════
// SHARED HELPERS
// ════════════════════════════════════════════════

func renderFooter(keys []struct{ key, desc string }) string {
	var parts []string
	for _, k := range keys {
		key := footerKeyStyle.Render(k.key)
		desc := footerDescStyle.Render(k.desc)
		parts = append(parts, key+" "+desc)
	}
	return "  " + strings.Join(parts, "  ")
}
