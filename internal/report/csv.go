package report

import (
	"strings"

	"taskdeck/internal/models"
)

var csvHeader = []string{
	"Task Title", "Customer", "Assigned To", "Status",
	"Priority", "Due Date", "Description", "Comments", "Tags",
}

// CSV renders the rows as RFC-4180 CSV. Every field is quoted
// unconditionally and embedded quotes are doubled, so a standard
// parser recovers the original values. Descriptions and comment bodies
// are stripped of markup first.
func CSV(rows []models.Task) string {
	var b strings.Builder
	writeRecord(&b, csvHeader)

	for _, t := range rows {
		var comments []string
		for _, c := range t.Comments {
			comments = append(comments, "["+commentDate(c.Timestamp)+"] "+StripHTML(c.Text))
		}
		writeRecord(&b, []string{
			t.Title,
			t.CustomerName,
			t.AssignedTo,
			t.Status,
			t.Priority,
			t.FollowUpDate,
			StripHTML(t.Description),
			strings.Join(comments, "; "),
			t.Tags,
		})
	}
	return b.String()
}

func writeRecord(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
}
