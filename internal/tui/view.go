package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dcoutinho/tempora/internal/report"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	user := m.currentUser()
	if user == nil {
		return errorStyle.Render("user not found") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("tempora") + dimStyle.Render("  "+user.Name) + "\n\n")

	if len(user.Tasks) == 0 {
		b.WriteString(dimStyle.Render("no tasks yet") + "\n")
	}

	for i, task := range user.Tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%-20s %s", cursor, task.Name, m.trk.Display(task.Name))
		switch {
		case m.trk.IsRunning(task.Name):
			line = runningStyle.Render(line + "  ● tracking")
		case i == m.cursor:
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if task := m.selectedTask(); task != nil {
		rep := report.Aggregate(user, task, m.period, m.now())
		box := fmt.Sprintf("%s report\ntracked   %s\ngoal      %s\n%s %d%%",
			rep.Period, rep.FormattedTotal, rep.GoalDisplay,
			progressBar(rep.ProductivityPercent, 20), rep.ProductivityPercent)
		b.WriteString("\n" + reportBoxStyle.Render(box) + "\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("✗ "+m.errMsg) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func progressBar(percent, width int) string {
	filled := min(percent*width/100, width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Render(bar)
}
