package derive

import (
	"time"

	"taskdeck/internal/models"
)

// FilterMode selects a task subset in the member and report views.
type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterAssigned  FilterMode = "assigned"
	FilterRelated   FilterMode = "related"
	FilterActive    FilterMode = "active"
	FilterCompleted FilterMode = "completed"
	FilterOverdue   FilterMode = "overdue"
)

// MemberTask is a task tagged with its relationship to a member.
type MemberTask struct {
	models.Task
	Relation Relation
}

// MergeRelationship combines the two relationship partitions into one
// tagged list, assigned tasks first.
func MergeRelationship(assigned, related []models.Task) []MemberTask {
	merged := make([]MemberTask, 0, len(assigned)+len(related))
	for _, t := range assigned {
		merged = append(merged, MemberTask{Task: t, Relation: RelationAssigned})
	}
	for _, t := range related {
		merged = append(merged, MemberTask{Task: t, Relation: RelationRelated})
	}
	return merged
}

// Filter applies a filter mode to a tagged task list. Overdue means a
// follow-up date strictly before now on a task that is not Completed;
// "now" is wall-clock time at render time.
func Filter(tasks []MemberTask, mode FilterMode, now time.Time) []MemberTask {
	if mode == FilterAll || mode == "" {
		return tasks
	}
	var out []MemberTask
	for _, t := range tasks {
		if matches(t, mode, now) {
			out = append(out, t)
		}
	}
	return out
}

func matches(t MemberTask, mode FilterMode, now time.Time) bool {
	switch mode {
	case FilterAssigned:
		return t.Relation == RelationAssigned
	case FilterRelated:
		return t.Relation == RelationRelated
	case FilterActive:
		return t.IsActive()
	case FilterCompleted:
		return t.IsCompleted()
	case FilterOverdue:
		return !t.IsCompleted() && overdueAt(t.FollowUpDate, now)
	}
	return true
}

// IsOverdue reports whether a task shows as overdue at now.
func IsOverdue(t models.Task, now time.Time) bool {
	return !t.IsCompleted() && overdueAt(t.FollowUpDate, now)
}

// DateRange buckets tasks by follow-up date in the report view.
type DateRange string

const (
	RangeAny     DateRange = ""
	RangeToday   DateRange = "today"
	RangeWeek    DateRange = "week"
	RangeMonth   DateRange = "month"
	RangeOverdue DateRange = "overdue"
)

// InDateRange reports whether the task falls in the bucket. Tasks
// without a follow-up date pass every bucket except overdue. Week and
// month cover follow-ups since seven days and one month before today.
func InDateRange(t models.Task, r DateRange, now time.Time) bool {
	if r == RangeAny {
		return true
	}
	due, ok := ParseDate(t.FollowUpDate)
	if !ok {
		return r != RangeOverdue
	}

	today := startOfDay(now)
	switch r {
	case RangeToday:
		y1, m1, d1 := due.Date()
		y2, m2, d2 := today.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case RangeWeek:
		return !due.Before(today.AddDate(0, 0, -7))
	case RangeMonth:
		return !due.Before(today.AddDate(0, -1, 0))
	case RangeOverdue:
		return due.Before(today) && !t.IsCompleted()
	}
	return true
}
