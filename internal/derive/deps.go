package derive

import (
	"sort"

	"taskdeck/internal/models"
)

// ResolveTasks maps a list of task ids to the matching tasks in the
// loaded collection, preserving order. Ids with no loaded task are
// silently omitted; dependency links are informational only and never
// validated for cycles.
func ResolveTasks(ids []string, tasks []models.Task) []models.Task {
	byID := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	var out []models.Task
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// DependencyCandidates returns the tasks that may be offered as new
// dependencies for the task with currentID: everything except the task
// itself and tasks already Completed. Completed tasks that are already
// persisted dependencies are not candidates but remain part of the
// picker's initial selection.
func DependencyCandidates(tasks []models.Task, currentID string) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.ID == currentID || t.IsCompleted() {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SortHistory returns the history entries ordered newest first.
// Entries with unparseable timestamps sort last, keeping their
// relative order.
func SortHistory(history []models.HistoryEntry) []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(history))
	copy(out, history)
	sort.SliceStable(out, func(i, j int) bool {
		ti, iok := ParseDate(out[i].Timestamp)
		tj, jok := ParseDate(out[j].Timestamp)
		if iok != jok {
			return iok
		}
		return ti.After(tj)
	})
	return out
}

// HistoryLabel renders a history entry the way the task detail view
// displays it.
func HistoryLabel(e models.HistoryEntry) string {
	switch e.Action {
	case models.ActionCreated:
		return "Task created"
	case models.ActionModified:
		old := e.OldValue
		if old == "" {
			old = "empty"
		}
		return "Changed " + e.Field + ": \"" + old + "\" -> \"" + e.NewValue + "\""
	case models.ActionCommentAdded:
		return "Added comment: \"" + e.NewValue + "\""
	case models.ActionAttachmentAdded:
		return "Added attachment: " + e.NewValue
	default:
		return e.Action
	}
}
