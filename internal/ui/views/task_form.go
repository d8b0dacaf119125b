package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/api"
	"taskdeck/internal/models"
	"taskdeck/internal/store"
)

// similarDebounce is the trailing-edge delay before the similarity
// service is asked about the in-progress task.
const similarDebounce = 500 * time.Millisecond

// similarMinTitle is the minimum title length before similarity
// checking kicks in.
const similarMinTitle = 3

var taskPriorities = []string{"", "Low", "Medium", "High", "Urgent"}

var taskStatuses = []string{
	models.StatusOpen, models.StatusInProgress, models.StatusCompleted,
	models.StatusCancelled, models.StatusClosed,
}

// Form focus positions, in tab order.
const (
	focusTemplate = iota
	focusTitle
	focusCustomer
	focusAssignee
	focusRelated
	focusCategory
	focusPriority
	focusStatus
	focusProject
	focusFollowUp
	focusTags
	focusDescription
	focusSave
	focusCount
)

// taskForm is the create/edit task form. Selector fields cycle through
// backend-provided value lists; the description goes through the
// Editor capability.
type taskForm struct {
	editingID string

	title    textinput.Model
	customer textinput.Model
	assignee textinput.Model
	related  textinput.Model
	followUp textinput.Model
	tags     textinput.Model
	editor   Editor

	templateIdx int // 0 = none
	categoryIdx int // 0 = none
	priorityIdx int
	statusIdx   int
	projectIdx  int // 0 = none

	focusIdx int

	// Similar-task panel. Every request carries a generation number;
	// only the latest generation's response is applied, so a stale
	// in-flight result can never overwrite a newer one.
	similarSeq int
	similar    []models.SimilarTask
}

func newTaskForm() taskForm {
	mk := func(placeholder string, limit int) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = limit
		return in
	}
	return taskForm{
		title:    mk("Task title", 200),
		customer: mk("Customer", 100),
		assignee: mk("Assigned to", 100),
		related:  mk("Related to", 100),
		followUp: mk("YYYY-MM-DD", 20),
		tags:     mk("comma,separated,tags", 200),
		editor:   newTextAreaEditor("Description"),
	}
}

func (f *taskForm) setSize(width, height int) {
	w := clamp(width-10, 30, 70)
	f.editor.SetSize(w, clamp(height/4, 3, 8))
}

func (f *taskForm) focusCmd() tea.Cmd {
	return textinput.Blink
}

// load fills the form from a task, or resets it for creation.
func (f *taskForm) load(task models.Task, st *store.Store) {
	f.editingID = task.ID
	f.title.SetValue(task.Title)
	f.customer.SetValue(task.CustomerName)
	f.assignee.SetValue(task.AssignedTo)
	f.related.SetValue(task.RelatedTo)
	f.followUp.SetValue(task.FollowUpDate)
	f.tags.SetValue(task.Tags)
	f.editor.SetHTML(task.Description)

	f.templateIdx = 0
	f.categoryIdx = indexOf(st.Categories(), task.Category) + 1
	f.priorityIdx = maxInt(indexOf(taskPriorities[1:], task.Priority)+1, 0)
	f.statusIdx = maxInt(indexOf(taskStatuses, task.Status), 0)
	f.projectIdx = 0
	for i, p := range st.Projects() {
		if p.ID == task.ProjectID {
			f.projectIdx = i + 1
			break
		}
	}

	f.similar = nil
	f.similarSeq++
	f.focusIdx = focusTitle
	f.setFocus()
}

func indexOf(values []string, v string) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return -1
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// OpenNew jumps straight into the create form, used by the app's
// quick-action menu.
func (v *TaskListView) OpenNew() {
	v.detailID = ""
	v.openForm("")
}

// openForm switches the view into form mode. An empty id starts a new
// task.
func (v *TaskListView) openForm(id string) {
	v.mode = taskModeForm
	task := models.Task{Status: models.StatusOpen}
	if id != "" {
		if existing, ok := v.store.Task(id); ok {
			task = existing
		}
	}
	v.form.load(task, v.store)
	v.form.setSize(v.width, v.height)
}

func (f *taskForm) setFocus() {
	f.title.Blur()
	f.customer.Blur()
	f.assignee.Blur()
	f.related.Blur()
	f.followUp.Blur()
	f.tags.Blur()
	f.editor.Blur()

	switch f.focusIdx {
	case focusTitle:
		f.title.Focus()
	case focusCustomer:
		f.customer.Focus()
	case focusAssignee:
		f.assignee.Focus()
	case focusRelated:
		f.related.Focus()
	case focusFollowUp:
		f.followUp.Focus()
	case focusTags:
		f.tags.Focus()
	case focusDescription:
		f.editor.Focus()
	}
}

// applyTemplate copies the selected template's default values into the
// form verbatim.
func (f *taskForm) applyTemplate(st *store.Store) tea.Cmd {
	if f.templateIdx == 0 || f.templateIdx > len(st.Templates()) {
		return nil
	}
	tpl := st.Templates()[f.templateIdx-1]

	if tpl.TitlePattern != "" {
		f.title.SetValue(tpl.TitlePattern)
	}
	if tpl.Description != "" {
		f.editor.SetText(tpl.Description)
	}
	if tpl.Category != "" {
		f.categoryIdx = indexOf(st.Categories(), tpl.Category) + 1
	}
	if tpl.Priority != "" {
		f.priorityIdx = maxInt(indexOf(taskPriorities, tpl.Priority), 0)
	}
	if tpl.Tags != "" {
		f.tags.SetValue(tpl.Tags)
	}
	// Applying a template counts as title input, so the similarity
	// check runs against the new values.
	return f.scheduleSimilar()
}

type similarTickMsg struct{ seq int }

type similarResultMsg struct {
	seq     int
	matches []models.SimilarTask
}

type enhanceResultMsg struct{ text string }

// scheduleSimilar restarts the debounce timer. Each keystroke bumps
// the generation, so only the last timer to fire issues a request.
func (f *taskForm) scheduleSimilar() tea.Cmd {
	f.similarSeq++
	seq := f.similarSeq
	return tea.Tick(similarDebounce, func(time.Time) tea.Msg {
		return similarTickMsg{seq: seq}
	})
}

// handleAsync processes the debounce/similarity/enhance messages.
func (f *taskForm) handleAsync(msg tea.Msg, st *store.Store) tea.Cmd {
	switch msg := msg.(type) {
	case similarTickMsg:
		if msg.seq != f.similarSeq {
			return nil // superseded by a later keystroke
		}
		title := strings.TrimSpace(f.title.Value())
		if len(title) <= similarMinTitle {
			f.similar = nil
			return nil
		}
		description := f.editor.GetText()
		customer := strings.TrimSpace(f.customer.Value())
		seq := msg.seq
		return func() tea.Msg {
			matches, err := st.Client().SimilarTasks(context.Background(), title, description, customer)
			if err != nil {
				logErr("similar tasks", err)
				return similarResultMsg{seq: seq}
			}
			return similarResultMsg{seq: seq, matches: matches}
		}

	case similarResultMsg:
		// Only the latest issued request's result is authoritative.
		if msg.seq == f.similarSeq {
			f.similar = msg.matches
		}
		return nil

	case enhanceResultMsg:
		f.editor.SetText(msg.text)
		return nil
	}
	return nil
}

// enhanceDescription runs the description through the backend's AI
// text service.
func (f *taskForm) enhanceDescription(st *store.Store) tea.Cmd {
	text := f.editor.GetText()
	if strings.TrimSpace(text) == "" {
		return alertf("Nothing to enhance")
	}
	taskCtx := &api.TaskContext{
		Title:        strings.TrimSpace(f.title.Value()),
		CustomerName: strings.TrimSpace(f.customer.Value()),
		Priority:     taskPriorities[f.priorityIdx],
	}
	return func() tea.Msg {
		enhanced, err := st.Client().EnhanceText(context.Background(), text, api.EnhanceImprove, taskCtx)
		if err != nil {
			return AlertMsg{Text: "Error enhancing text: " + err.Error()}
		}
		return enhanceResultMsg{text: enhanced}
	}
}

// collect builds the task record from the form fields.
func (f *taskForm) collect(st *store.Store) models.Task {
	task := models.Task{
		ID:           f.editingID,
		Title:        strings.TrimSpace(f.title.Value()),
		Description:  f.editor.GetHTML(),
		Status:       taskStatuses[f.statusIdx],
		Priority:     taskPriorities[f.priorityIdx],
		AssignedTo:   strings.TrimSpace(f.assignee.Value()),
		RelatedTo:    strings.TrimSpace(f.related.Value()),
		CustomerName: strings.TrimSpace(f.customer.Value()),
		Tags:         strings.TrimSpace(f.tags.Value()),
		FollowUpDate: strings.TrimSpace(f.followUp.Value()),
	}
	if f.categoryIdx > 0 && f.categoryIdx <= len(st.Categories()) {
		task.Category = st.Categories()[f.categoryIdx-1]
	}
	if f.projectIdx > 0 && f.projectIdx <= len(st.Projects()) {
		task.ProjectID = st.Projects()[f.projectIdx-1].ID
	}
	return task
}

type formSavedMsg struct{}

func (v *TaskListView) saveForm() tea.Cmd {
	task := v.form.collect(v.store)
	// Validation failures never issue a request.
	if task.Title == "" {
		return alertf("Task title is required")
	}

	creating := task.ID == ""
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if creating {
			_, _, err = v.store.Client().CreateTask(ctx, task)
		} else {
			_, err = v.store.Client().UpdateTask(ctx, task)
		}
		if err != nil {
			return AlertMsg{Text: "Error saving task: " + err.Error()}
		}
		// Save, then reload, then re-render: sequenced so the
		// re-render always sees post-mutation state.
		if err := v.store.ReloadTasks(ctx); err != nil {
			logErr("reload tasks", err)
		}
		return formSavedMsg{}
	}
}

func (v *TaskListView) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(formSavedMsg); ok {
		if v.detailID != "" {
			v.mode = taskModeDetail
			v.refreshDetail()
		} else {
			v.mode = taskModeList
		}
		v.syncList()
		return v, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	f := &v.form

	switch {
	case key.Matches(keyMsg, v.keys.Back):
		if v.detailID != "" {
			v.mode = taskModeDetail
		} else {
			v.mode = taskModeList
		}
		return v, nil

	case keyMsg.String() == "ctrl+s":
		return v, v.saveForm()

	case keyMsg.String() == "ctrl+e":
		return v, f.enhanceDescription(v.store)

	case keyMsg.String() == "shift+tab":
		f.focusIdx = (f.focusIdx + focusCount - 1) % focusCount
		f.setFocus()
		return v, nil

	case key.Matches(keyMsg, v.keys.Tab):
		f.focusIdx = (f.focusIdx + 1) % focusCount
		f.setFocus()
		return v, nil

	case key.Matches(keyMsg, v.keys.Enter):
		switch f.focusIdx {
		case focusTemplate:
			return v, f.applyTemplate(v.store)
		case focusSave:
			return v, v.saveForm()
		case focusDescription:
			// Newline inside the editor.
		default:
			f.focusIdx++
			f.setFocus()
			return v, nil
		}
	}

	// Selector fields cycle with left/right.
	if f.focusIdx == focusTemplate || f.focusIdx == focusCategory ||
		f.focusIdx == focusPriority || f.focusIdx == focusStatus ||
		f.focusIdx == focusProject {
		switch keyMsg.String() {
		case "left", "h":
			f.cycleSelector(v.store, -1)
			return v, nil
		case "right", "l", " ":
			f.cycleSelector(v.store, 1)
			return v, nil
		}
		return v, nil
	}

	var cmd tea.Cmd
	switch f.focusIdx {
	case focusTitle:
		f.title, cmd = f.title.Update(keyMsg)
	case focusCustomer:
		f.customer, cmd = f.customer.Update(keyMsg)
	case focusAssignee:
		f.assignee, cmd = f.assignee.Update(keyMsg)
	case focusRelated:
		f.related, cmd = f.related.Update(keyMsg)
	case focusFollowUp:
		f.followUp, cmd = f.followUp.Update(keyMsg)
	case focusTags:
		f.tags, cmd = f.tags.Update(keyMsg)
	case focusDescription:
		cmd = f.editor.Update(keyMsg)
	}

	// Title, customer and description feed the similarity check.
	switch f.focusIdx {
	case focusTitle, focusCustomer, focusDescription:
		return v, tea.Batch(cmd, f.scheduleSimilar())
	}
	return v, cmd
}

func (f *taskForm) cycleSelector(st *store.Store, delta int) {
	cycle := func(idx, n int) int {
		if n == 0 {
			return 0
		}
		return (idx + delta + n) % n
	}
	switch f.focusIdx {
	case focusTemplate:
		f.templateIdx = cycle(f.templateIdx, len(st.Templates())+1)
	case focusCategory:
		f.categoryIdx = cycle(f.categoryIdx, len(st.Categories())+1)
	case focusPriority:
		f.priorityIdx = cycle(f.priorityIdx, len(taskPriorities))
	case focusStatus:
		f.statusIdx = cycle(f.statusIdx, len(taskStatuses))
	case focusProject:
		f.projectIdx = cycle(f.projectIdx, len(st.Projects())+1)
	}
}

func (f *taskForm) selectorLabel(st *store.Store, focus int) string {
	switch focus {
	case focusTemplate:
		if f.templateIdx == 0 || f.templateIdx > len(st.Templates()) {
			return "-- Select Template --"
		}
		return st.Templates()[f.templateIdx-1].Name
	case focusCategory:
		if f.categoryIdx == 0 || f.categoryIdx > len(st.Categories()) {
			return "(none)"
		}
		return st.Categories()[f.categoryIdx-1]
	case focusPriority:
		if taskPriorities[f.priorityIdx] == "" {
			return "(none)"
		}
		return taskPriorities[f.priorityIdx]
	case focusStatus:
		return taskStatuses[f.statusIdx]
	case focusProject:
		if f.projectIdx == 0 || f.projectIdx > len(st.Projects()) {
			return "(none)"
		}
		return st.Projects()[f.projectIdx-1].Title
	}
	return ""
}

func (v *TaskListView) renderFormRow(label string, focus int, field string) string {
	s := v.styles
	style := s.Input
	if v.form.focusIdx == focus {
		style = s.InputFocused
	}
	return s.TitleMuted.Render(label) + "\n" + style.Render(field)
}

func (v *TaskListView) renderForm() string {
	s := v.styles
	f := &v.form

	title := "New Task"
	if f.editingID != "" {
		title = "Edit Task"
	}

	sel := func(focus int, label string) string {
		style := s.Input
		if f.focusIdx == focus {
			style = s.InputFocused
		}
		return s.TitleMuted.Render(label) + " " + style.Render("< "+f.selectorLabel(v.store, focus)+" >")
	}

	rows := []string{
		s.Title.Render(title),
		"",
		sel(focusTemplate, "Template:"),
		v.renderFormRow("Title:", focusTitle, f.title.View()),
		v.renderFormRow("Customer:", focusCustomer, f.customer.View()),
		v.renderFormRow("Assigned to:", focusAssignee, f.assignee.View()),
		v.renderFormRow("Related to:", focusRelated, f.related.View()),
		sel(focusCategory, "Category:"),
		sel(focusPriority, "Priority:"),
		sel(focusStatus, "Status:"),
		sel(focusProject, "Project:"),
		v.renderFormRow("Follow-up date:", focusFollowUp, f.followUp.View()),
		v.renderFormRow("Tags:", focusTags, f.tags.View()),
		v.renderFormRow("Description:", focusDescription, f.editor.View()),
	}

	if len(f.similar) > 0 {
		var warn strings.Builder
		warn.WriteString("Similar tasks found:\n")
		for i, m := range f.similar {
			if i == 3 {
				break
			}
			fmt.Fprintf(&warn, "  %d%% match  %s", int(m.Score+0.5), m.Task.Title)
			if m.Task.CustomerName != "" {
				fmt.Fprintf(&warn, "  (%s)", m.Task.CustomerName)
			}
			warn.WriteString("\n")
		}
		rows = append(rows, s.Warning.Render(strings.TrimRight(warn.String(), "\n")))
	}

	btn := s.Button
	if f.focusIdx == focusSave {
		btn = s.ButtonFocused
	}
	rows = append(rows,
		btn.Render(" Save "),
		s.Help.Render("Tab: next • ←/→: change value • Ctrl+E: enhance • Ctrl+S: save • Esc: cancel"),
	)

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Top, form)
}
