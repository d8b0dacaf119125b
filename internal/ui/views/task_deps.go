package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/derive"
	"taskdeck/internal/models"
)

// depPicker is the dependency selection overlay. Confirming replaces
// the task's persisted dependency list with exactly the current
// selection; cancelling discards every toggle.
type depPicker struct {
	taskID   string
	items    []models.Task
	cursor   int
	selected map[string]bool
}

// openDeps builds the picker for the task currently shown in detail
// mode. Candidates are all non-completed tasks except the task itself;
// already-persisted dependencies stay listed even when completed, so
// they can be deselected.
func (v *TaskListView) openDeps() {
	task, ok := v.store.Task(v.detailID)
	if !ok {
		return
	}

	items := derive.DependencyCandidates(v.store.Tasks(), task.ID)
	listed := make(map[string]bool, len(items))
	for _, t := range items {
		listed[t.ID] = true
	}
	for _, dep := range derive.ResolveTasks(task.Dependencies, v.store.Tasks()) {
		if !listed[dep.ID] {
			items = append(items, dep)
			listed[dep.ID] = true
		}
	}

	selected := make(map[string]bool, len(task.Dependencies))
	for _, id := range task.Dependencies {
		if listed[id] {
			selected[id] = true
		}
	}

	v.deps = depPicker{
		taskID:   task.ID,
		items:    items,
		selected: selected,
	}
	v.mode = taskModeDeps
}

type depsSavedMsg struct{}

// confirmDeps persists the current selection wholesale.
func (v *TaskListView) confirmDeps() tea.Cmd {
	p := &v.deps
	var ids []string
	for _, t := range p.items {
		if p.selected[t.ID] {
			ids = append(ids, t.ID)
		}
	}
	taskID := p.taskID
	return func() tea.Msg {
		ctx := context.Background()
		if err := v.store.Client().SetDependencies(ctx, taskID, ids); err != nil {
			return AlertMsg{Text: "Error saving dependencies: " + err.Error()}
		}
		if err := v.store.ReloadTasks(ctx); err != nil {
			logErr("reload tasks", err)
		}
		return depsSavedMsg{}
	}
}

func (v *TaskListView) updateDeps(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(depsSavedMsg); ok {
		v.mode = taskModeDetail
		v.syncList()
		v.refreshDetail()
		return v, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	p := &v.deps

	switch {
	case key.Matches(keyMsg, v.keys.Back):
		v.mode = taskModeDetail
		return v, nil
	case key.Matches(keyMsg, v.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(keyMsg, v.keys.Down):
		if p.cursor < len(p.items)-1 {
			p.cursor++
		}
	case keyMsg.String() == " ":
		if p.cursor < len(p.items) {
			id := p.items[p.cursor].ID
			p.selected[id] = !p.selected[id]
		}
	case key.Matches(keyMsg, v.keys.Enter):
		return v, v.confirmDeps()
	}
	return v, nil
}

func (v *TaskListView) renderDeps() string {
	s := v.styles
	p := &v.deps

	var b strings.Builder
	b.WriteString(s.Title.Render("Dependencies"))
	b.WriteString("\n\n")

	if len(p.items) == 0 {
		b.WriteString(s.TitleMuted.Render("No other tasks available."))
	}
	for i, t := range p.items {
		mark := "[ ]"
		if p.selected[t.ID] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, t.Title)
		if t.IsCompleted() {
			line += "  (completed)"
		}
		if i == p.cursor {
			line = s.ListSelected.Render("> " + line)
		} else {
			line = s.ListItem.Render("  " + line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Help.Render("Space: toggle • Enter: save • Esc: cancel"))

	box := s.Modal.Render(b.String())
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, box)
}
