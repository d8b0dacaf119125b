package derive

import (
	"testing"
	"time"

	"taskdeck/internal/models"
)

var filterNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)

func taggedTasks() []MemberTask {
	return []MemberTask{
		{Task: models.Task{ID: "open", Status: models.StatusOpen}, Relation: RelationAssigned},
		{Task: models.Task{ID: "progress", Status: models.StatusInProgress}, Relation: RelationRelated},
		{Task: models.Task{ID: "done", Status: models.StatusCompleted, FollowUpDate: "2020-01-01"}},
		{Task: models.Task{ID: "late", Status: models.StatusOpen, FollowUpDate: "2020-01-01"}},
		{Task: models.Task{ID: "cancelled", Status: models.StatusCancelled}},
	}
}

func ids(tasks []MemberTask) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestFilterModes(t *testing.T) {
	tests := []struct {
		mode FilterMode
		want []string
	}{
		{FilterAll, []string{"open", "progress", "done", "late", "cancelled"}},
		{FilterMode(""), []string{"open", "progress", "done", "late", "cancelled"}},
		{FilterAssigned, []string{"open"}},
		{FilterRelated, []string{"progress"}},
		{FilterActive, []string{"open", "progress", "late"}},
		{FilterCompleted, []string{"done"}},
		{FilterOverdue, []string{"late"}},
	}

	for _, tt := range tests {
		got := ids(Filter(taggedTasks(), tt.mode, filterNow))
		if len(got) != len(tt.want) {
			t.Errorf("Filter(%q) = %v, want %v", tt.mode, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Filter(%q) = %v, want %v", tt.mode, got, tt.want)
				break
			}
		}
	}
}

func TestIsOverdue(t *testing.T) {
	tests := []struct {
		name string
		task models.Task
		want bool
	}{
		{"past due open", models.Task{Status: models.StatusOpen, FollowUpDate: "2020-01-01"}, true},
		{"past due completed", models.Task{Status: models.StatusCompleted, FollowUpDate: "2020-01-01"}, false},
		{"future due", models.Task{Status: models.StatusOpen, FollowUpDate: "2030-01-01"}, false},
		{"no date", models.Task{Status: models.StatusOpen}, false},
		{"garbage date", models.Task{Status: models.StatusOpen, FollowUpDate: "soon"}, false},
		{"cancelled still overdue", models.Task{Status: models.StatusCancelled, FollowUpDate: "2020-01-01"}, true},
	}

	for _, tt := range tests {
		if got := IsOverdue(tt.task, filterNow); got != tt.want {
			t.Errorf("%s: IsOverdue = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestInDateRange(t *testing.T) {
	tests := []struct {
		name string
		task models.Task
		r    DateRange
		want bool
	}{
		{"any matches everything", models.Task{FollowUpDate: "1999-01-01"}, RangeAny, true},
		{"no date passes today", models.Task{}, RangeToday, true},
		{"no date passes week", models.Task{}, RangeWeek, true},
		{"no date fails overdue", models.Task{}, RangeOverdue, false},
		{"today exact", models.Task{FollowUpDate: "2024-06-15"}, RangeToday, true},
		{"today other day", models.Task{FollowUpDate: "2024-06-14"}, RangeToday, false},
		{"week recent", models.Task{FollowUpDate: "2024-06-10"}, RangeWeek, true},
		{"week future", models.Task{FollowUpDate: "2024-07-01"}, RangeWeek, true},
		{"week too old", models.Task{FollowUpDate: "2024-06-01"}, RangeWeek, false},
		{"month recent", models.Task{FollowUpDate: "2024-05-20"}, RangeMonth, true},
		{"month too old", models.Task{FollowUpDate: "2024-05-01"}, RangeMonth, false},
		{"overdue past open", models.Task{Status: models.StatusOpen, FollowUpDate: "2024-06-01"}, RangeOverdue, true},
		{"overdue past completed", models.Task{Status: models.StatusCompleted, FollowUpDate: "2024-06-01"}, RangeOverdue, false},
		{"overdue today not yet", models.Task{Status: models.StatusOpen, FollowUpDate: "2024-06-15"}, RangeOverdue, false},
	}

	for _, tt := range tests {
		if got := InDateRange(tt.task, tt.r, filterNow); got != tt.want {
			t.Errorf("%s: InDateRange(%q, %q) = %v, want %v",
				tt.name, tt.task.FollowUpDate, tt.r, got, tt.want)
		}
	}
}

func TestParseDateLayouts(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"2024-06-15", true},
		{"2024-06-15T10:30:00", true},
		{"2024-06-15T10:30:00.123456", true},
		{"2024-06-15T10:30:00Z", true},
		{"", false},
		{"not a date", false},
	}
	for _, tt := range tests {
		if _, ok := ParseDate(tt.in); ok != tt.ok {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
	}
}
