package report

import (
	"fmt"
	"strings"
	"time"

	"taskdeck/internal/models"
)

// Text renders the rows as a plain-text report: a fixed header block
// followed by numbered entries. Markup-bearing fields are stripped to
// text.
func Text(rows []models.Task, opts Options, now time.Time) string {
	var b strings.Builder

	b.WriteString("TASK REPORT\n")
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Report Type: %s\n", opts.Type)
	if opts.Value != "" {
		fmt.Fprintf(&b, "Filter: %s\n", opts.Value)
	}
	fmt.Fprintf(&b, "Total Tasks: %d\n", len(rows))
	b.WriteString(strings.Repeat("=", 80))
	b.WriteString("\n\n")

	for i, t := range rows {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t.Title)
		fmt.Fprintf(&b, "   Customer: %s\n", orNA(t.CustomerName))
		fmt.Fprintf(&b, "   Assigned To: %s\n", orNA(t.AssignedTo))
		fmt.Fprintf(&b, "   Status: %s | Priority: %s\n", t.Status, t.Priority)
		fmt.Fprintf(&b, "   Due Date: %s\n", orNA(t.FollowUpDate))

		if t.Description != "" {
			fmt.Fprintf(&b, "   Description: %s\n", truncate(StripHTML(t.Description), 200))
		}
		if len(t.Comments) > 0 {
			fmt.Fprintf(&b, "   Comments (%d):\n", len(t.Comments))
			for _, c := range t.Comments {
				fmt.Fprintf(&b, "     - [%s] %s\n", commentDate(c.Timestamp), StripHTML(c.Text))
			}
		}
		if t.Tags != "" {
			fmt.Fprintf(&b, "   Tags: %s\n", t.Tags)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func commentDate(timestamp string) string {
	if len(timestamp) >= 10 {
		return timestamp[:10]
	}
	return timestamp
}
