// Package report derives filtered task sets and renders them as a
// terminal table, a plain-text report or CSV. All three renderers
// consume the same filtered row list.
package report

import (
	"sort"
	"time"

	"taskdeck/internal/derive"
	"taskdeck/internal/models"
)

// Report types. Exactly one applies per report; secondary filters are
// conjunctive.
type Type string

const (
	TypeAll      Type = "all"
	TypeAssignee Type = "assignee"
	TypeCustomer Type = "customer"
	TypeStatus   Type = "status"
	TypePriority Type = "priority"
)

// Options select the report rows.
type Options struct {
	Type   Type
	Value  string // exact match for assignee/customer/priority types
	Status string // secondary status filter (primary for TypeStatus)
	Range  derive.DateRange
}

// Build applies the report-type filter, then the secondary status and
// date-range filters, and returns the resulting row list in collection
// order.
func Build(tasks []models.Task, opts Options, now time.Time) []models.Task {
	rows := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !typeMatches(t, opts) {
			continue
		}
		if opts.Status != "" && opts.Type != TypeStatus && t.Status != opts.Status {
			continue
		}
		if !derive.InDateRange(t, opts.Range, now) {
			continue
		}
		rows = append(rows, t)
	}
	return rows
}

func typeMatches(t models.Task, opts Options) bool {
	switch opts.Type {
	case TypeAssignee:
		return opts.Value == "" || t.AssignedTo == opts.Value
	case TypeCustomer:
		return opts.Value == "" || t.CustomerName == opts.Value
	case TypeStatus:
		return opts.Status == "" || t.Status == opts.Status
	case TypePriority:
		return opts.Value == "" || t.Priority == opts.Value
	}
	return true
}

// Summary aggregates the filtered rows for the report header widgets.
type Summary struct {
	Total     int
	Completed int
	Active    int
	Overdue   int
}

// Summarize computes the row summary at now.
func Summarize(rows []models.Task, now time.Time) Summary {
	var s Summary
	s.Total = len(rows)
	for _, t := range rows {
		if t.IsCompleted() {
			s.Completed++
		}
		if t.IsActive() {
			s.Active++
		}
		if derive.IsOverdue(t, now) {
			s.Overdue++
		}
	}
	return s
}

// FilterValues collects the distinct, sorted values available for the
// assignee and customer report types.
func FilterValues(tasks []models.Task, typ Type) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tasks {
		var v string
		switch typ {
		case TypeAssignee:
			v = t.AssignedTo
		case TypeCustomer:
			v = t.CustomerName
		case TypePriority:
			v = t.Priority
		}
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
