package report

import (
	"encoding/csv"
	"strings"
	"testing"

	"taskdeck/internal/models"
)

func TestCSVRoundTripsThroughStandardParser(t *testing.T) {
	rows := []models.Task{
		{
			Title:        `Fix "urgent" bug`,
			CustomerName: "Acme, Inc.",
			AssignedTo:   "Jane Doe",
			Status:       models.StatusOpen,
			Priority:     "High",
			FollowUpDate: "2024-06-15",
			Description:  "<p>Multi\nline</p>",
			Tags:         "bug,urgent",
			Comments: []models.Comment{
				{Text: "done <b>soon</b>", Timestamp: "2024-06-01T10:00:00"},
			},
		},
	}

	out := CSV(rows)

	r := csv.NewReader(strings.NewReader(out))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("standard parser rejected output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("parsed %d records, want header + 1 row", len(records))
	}

	header := records[0]
	if len(header) != 9 || header[0] != "Task Title" || header[8] != "Tags" {
		t.Fatalf("header = %v", header)
	}

	row := records[1]
	if row[0] != `Fix "urgent" bug` {
		t.Errorf("title = %q: embedded quotes not recovered", row[0])
	}
	if row[1] != "Acme, Inc." {
		t.Errorf("customer = %q: embedded comma not recovered", row[1])
	}
	if strings.Contains(row[6], "<p>") {
		t.Errorf("description = %q: markup not stripped", row[6])
	}
	if !strings.HasPrefix(row[7], "[2024-06-01]") {
		t.Errorf("comments = %q, want [2024-06-01] prefix", row[7])
	}
	if strings.Contains(row[7], "<b>") {
		t.Errorf("comments = %q: markup not stripped", row[7])
	}
}

func TestCSVQuotesEveryField(t *testing.T) {
	out := CSV([]models.Task{{Title: "plain", Status: "Open"}})

	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (CRLF terminated)", len(lines))
	}
	for _, field := range strings.Split(lines[1], ",") {
		if !strings.HasPrefix(field, `"`) || !strings.HasSuffix(field, `"`) {
			t.Errorf("field %q is not quoted", field)
		}
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"<p>hello <b>world</b></p>", "hello world"},
		{"a &amp; b", "a &amp; b"}, // no markup, passes through untouched
		{"<span>a &amp; b</span>", "a & b"},
		{"<script>alert(1)</script>safe", "safe"},
	}
	for _, tt := range tests {
		if got := StripHTML(tt.in); got != tt.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
