package report

import (
	"strings"
	"testing"
	"time"

	"taskdeck/internal/derive"
	"taskdeck/internal/models"
)

var reportNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)

func reportTasks() []models.Task {
	return []models.Task{
		{ID: "t1", Title: "Alpha", AssignedTo: "Jane Doe", CustomerName: "Acme", Status: models.StatusOpen, Priority: "High", FollowUpDate: "2024-06-01"},
		{ID: "t2", Title: "Beta", AssignedTo: "Jane Doe", CustomerName: "Globex", Status: models.StatusCompleted, Priority: "Low"},
		{ID: "t3", Title: "Gamma", AssignedTo: "Bob", CustomerName: "Acme", Status: models.StatusInProgress, Priority: "High", FollowUpDate: "2024-06-15"},
	}
}

func TestBuildByType(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{"all", Options{Type: TypeAll}, []string{"t1", "t2", "t3"}},
		{"assignee", Options{Type: TypeAssignee, Value: "Jane Doe"}, []string{"t1", "t2"}},
		{"customer", Options{Type: TypeCustomer, Value: "Acme"}, []string{"t1", "t3"}},
		{"status", Options{Type: TypeStatus, Status: models.StatusCompleted}, []string{"t2"}},
		{"priority", Options{Type: TypePriority, Value: "High"}, []string{"t1", "t3"}},
	}

	for _, tt := range tests {
		rows := Build(reportTasks(), tt.opts, reportNow)
		if len(rows) != len(tt.want) {
			t.Errorf("%s: got %d rows, want %d", tt.name, len(rows), len(tt.want))
			continue
		}
		for i, row := range rows {
			if row.ID != tt.want[i] {
				t.Errorf("%s: rows[%d] = %s, want %s", tt.name, i, row.ID, tt.want[i])
			}
		}
	}
}

func TestBuildSecondaryStatusFilter(t *testing.T) {
	rows := Build(reportTasks(), Options{
		Type: TypeAssignee, Value: "Jane Doe", Status: models.StatusOpen,
	}, reportNow)
	if len(rows) != 1 || rows[0].ID != "t1" {
		t.Fatalf("rows = %v, want just t1", rows)
	}
}

func TestBuildDateRange(t *testing.T) {
	rows := Build(reportTasks(), Options{
		Type: TypeAll, Range: derive.RangeOverdue,
	}, reportNow)
	if len(rows) != 1 || rows[0].ID != "t1" {
		t.Fatalf("overdue rows = %v, want just t1", rows)
	}
}

func TestSummarize(t *testing.T) {
	sum := Summarize(reportTasks(), reportNow)
	if sum.Total != 3 || sum.Completed != 1 || sum.Active != 2 || sum.Overdue != 1 {
		t.Fatalf("summary = %+v, want 3/1/2/1", sum)
	}
}

func TestFilterValuesDistinctSorted(t *testing.T) {
	got := FilterValues(reportTasks(), TypeCustomer)
	want := []string{"Acme", "Globex"}
	if len(got) != len(want) {
		t.Fatalf("values = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("values = %v, want %v", got, want)
		}
	}
}

func TestTextHeaderAndNumbering(t *testing.T) {
	out := Text(reportTasks(), Options{Type: TypeAll}, reportNow)

	for _, want := range []string{
		"TASK REPORT",
		"Generated: 2024-06-15 12:00:00",
		"Report Type: all",
		"Total Tasks: 3",
		strings.Repeat("=", 80),
		"1. Alpha",
		"3. Gamma",
		"Customer: Acme",
		"Assigned To: Jane Doe",
		"Status: Open | Priority: High",
		"Due Date: N/A",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text report missing %q", want)
		}
	}
}

func TestTextFilterLineOnlyWithValue(t *testing.T) {
	without := Text(nil, Options{Type: TypeAll}, reportNow)
	if strings.Contains(without, "Filter:") {
		t.Error("Filter line present without a filter value")
	}
	with := Text(nil, Options{Type: TypeAssignee, Value: "Jane Doe"}, reportNow)
	if !strings.Contains(with, "Filter: Jane Doe") {
		t.Error("Filter line missing")
	}
}

func TestTopicsText(t *testing.T) {
	topics := []models.Topic{
		{Title: "Roadmap", Status: "Open"},
		{Title: "Budget", Status: "Open"},
		{Title: "Hiring"},
	}
	out := TopicsText(topics, reportNow)

	for _, want := range []string{
		"TOPICS REPORT",
		"Total Topics: 3",
		"Open: 2",
		"Unspecified: 1",
		"1. Roadmap",
		"3. Hiring",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("topics report missing %q", want)
		}
	}
}
