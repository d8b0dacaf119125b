package report

import (
	"fmt"
	"strings"
	"time"

	"taskdeck/internal/models"
)

// TopicsText renders a plain-text summary of the topics collection:
// counts per status followed by the topic list.
func TopicsText(topics []models.Topic, now time.Time) string {
	var b strings.Builder

	b.WriteString("TOPICS REPORT\n")
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total Topics: %d\n", len(topics))
	b.WriteString(strings.Repeat("=", 80))
	b.WriteString("\n\n")

	byStatus := make(map[string]int)
	var order []string
	for _, t := range topics {
		status := t.Status
		if status == "" {
			status = "Unspecified"
		}
		if byStatus[status] == 0 {
			order = append(order, status)
		}
		byStatus[status]++
	}
	for _, status := range order {
		fmt.Fprintf(&b, "%s: %d\n", status, byStatus[status])
	}
	b.WriteString("\n")

	for i, t := range topics {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t.Title)
		if t.Status != "" {
			fmt.Fprintf(&b, "   Status: %s\n", t.Status)
		}
		if t.Notes != "" {
			fmt.Fprintf(&b, "   Notes: %s\n", truncate(StripHTML(t.Notes), 200))
		}
		b.WriteString("\n")
	}
	return b.String()
}
