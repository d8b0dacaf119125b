package report

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/derive"
	"taskdeck/internal/models"
)

var (
	tableHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7"))
	tableOverdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e"))
	tableDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a"))
)

// Table renders the rows as a fixed-column terminal table. Description
// markup is left as-is here; only the text and CSV renderers strip it.
func Table(rows []models.Task, now time.Time) string {
	cols := []struct {
		name  string
		width int
	}{
		{"Title", 32}, {"Customer", 16}, {"Assigned", 16},
		{"Status", 12}, {"Priority", 8}, {"Due", 10},
	}

	var b strings.Builder
	var header []string
	for _, c := range cols {
		header = append(header, pad(c.name, c.width))
	}
	b.WriteString(tableHeaderStyle.Render(strings.Join(header, " ")))
	b.WriteString("\n")

	for _, t := range rows {
		cells := []string{
			pad(t.Title, 32),
			pad(t.CustomerName, 16),
			pad(t.AssignedTo, 16),
			pad(t.Status, 12),
			pad(t.Priority, 8),
			pad(t.FollowUpDate, 10),
		}
		line := strings.Join(cells, " ")
		switch {
		case derive.IsOverdue(t, now):
			line = tableOverdueStyle.Render(line)
		case t.IsCompleted():
			line = tableDoneStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func pad(s string, w int) string {
	runes := []rune(s)
	if len(runes) > w {
		return string(runes[:w-1]) + "…"
	}
	return s + strings.Repeat(" ", w-len(runes))
}
