package derive

import (
	"testing"

	"taskdeck/internal/models"
)

func TestResolveTasksPreservesOrderAndOmitsUnknown(t *testing.T) {
	tasks := []models.Task{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B"},
		{ID: "c", Title: "C"},
	}

	out := ResolveTasks([]string{"c", "missing", "a"}, tasks)
	if len(out) != 2 {
		t.Fatalf("resolved %d tasks, want 2", len(out))
	}
	if out[0].ID != "c" || out[1].ID != "a" {
		t.Errorf("resolved order = [%s %s], want [c a]", out[0].ID, out[1].ID)
	}
}

func TestDependencyCandidates(t *testing.T) {
	tasks := []models.Task{
		{ID: "self", Status: models.StatusOpen},
		{ID: "open", Status: models.StatusOpen},
		{ID: "done", Status: models.StatusCompleted},
		{ID: "cancelled", Status: models.StatusCancelled},
	}

	out := DependencyCandidates(tasks, "self")
	if len(out) != 2 {
		t.Fatalf("candidates = %d, want 2", len(out))
	}
	for _, c := range out {
		if c.ID == "self" {
			t.Error("task offered as its own dependency")
		}
		if c.IsCompleted() {
			t.Error("completed task offered as a new dependency")
		}
	}
}

func TestSortHistoryNewestFirst(t *testing.T) {
	history := []models.HistoryEntry{
		{Action: models.ActionCreated, Timestamp: "2024-01-01T10:00:00"},
		{Action: models.ActionModified, Timestamp: "2024-03-01T10:00:00"},
		{Action: models.ActionCommentAdded, Timestamp: "2024-02-01T10:00:00"},
	}

	out := SortHistory(history)
	if out[0].Action != models.ActionModified || out[2].Action != models.ActionCreated {
		t.Errorf("order = [%s %s %s], want newest first",
			out[0].Action, out[1].Action, out[2].Action)
	}
	// Input must stay untouched.
	if history[0].Action != models.ActionCreated {
		t.Error("SortHistory mutated its input")
	}
}

func TestSortHistoryUnparseableTimestampsLast(t *testing.T) {
	history := []models.HistoryEntry{
		{Action: "first-bad", Timestamp: "???"},
		{Action: "good", Timestamp: "2024-01-01T10:00:00"},
		{Action: "second-bad", Timestamp: ""},
	}

	out := SortHistory(history)
	if out[0].Action != "good" {
		t.Fatalf("out[0] = %s, want good", out[0].Action)
	}
	if out[1].Action != "first-bad" || out[2].Action != "second-bad" {
		t.Errorf("bad timestamps reordered: [%s %s]", out[1].Action, out[2].Action)
	}
}

func TestHistoryLabel(t *testing.T) {
	tests := []struct {
		entry models.HistoryEntry
		want  string
	}{
		{models.HistoryEntry{Action: models.ActionCreated}, "Task created"},
		{
			models.HistoryEntry{Action: models.ActionModified, Field: "status", OldValue: "Open", NewValue: "Completed"},
			`Changed status: "Open" -> "Completed"`,
		},
		{
			models.HistoryEntry{Action: models.ActionModified, Field: "priority", NewValue: "High"},
			`Changed priority: "empty" -> "High"`,
		},
		{
			models.HistoryEntry{Action: models.ActionCommentAdded, NewValue: "looks good"},
			`Added comment: "looks good"`,
		},
		{
			models.HistoryEntry{Action: models.ActionAttachmentAdded, NewValue: "spec.pdf"},
			"Added attachment: spec.pdf",
		},
		{models.HistoryEntry{Action: "custom_event"}, "custom_event"},
	}

	for _, tt := range tests {
		if got := HistoryLabel(tt.entry); got != tt.want {
			t.Errorf("HistoryLabel(%s) = %q, want %q", tt.entry.Action, got, tt.want)
		}
	}
}
