package views

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/derive"
	"taskdeck/internal/models"
	"taskdeck/internal/state"
	"taskdeck/internal/store"
	"taskdeck/internal/ui/keys"
	"taskdeck/internal/ui/styles"
)

type taskMode int

const (
	taskModeList taskMode = iota
	taskModeDetail
	taskModeForm
	taskModeDeps
	taskModeConfirmDelete
)

type taskItem struct {
	task models.Task
}

func (i taskItem) Title() string       { return i.task.Title }
func (i taskItem) Description() string { return i.task.Status }
func (i taskItem) FilterValue() string { return i.task.Title }

type taskDelegate struct {
	styles *styles.Styles
	width  int
}

func (d taskDelegate) Height() int                               { return 2 }
func (d taskDelegate) Spacing() int                              { return 1 }
func (d taskDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	if !ok {
		return
	}
	t := it.task
	selected := index == m.Index()
	width := max(d.width-4, 20)

	titleStyle := d.styles.ListItem
	if selected {
		titleStyle = d.styles.ListSelected
	}

	meta := styles.StatusStyle(t.Status).Render(t.Status)
	if t.FollowUpDate != "" {
		meta += d.styles.TitleMuted.Render("  due " + t.FollowUpDate)
	}
	if t.Priority != "" {
		meta += d.styles.TitleMuted.Render("  " + t.Priority)
	}
	if derive.IsOverdue(t, time.Now()) {
		meta += " " + d.styles.BadgeOverdue.Render("overdue")
	}

	fmt.Fprintf(w, "%s\n  %s", titleStyle.Width(width).Render(t.Title), meta)
}

// TaskListView is the tasks page: the full task list plus the task
// detail, form and dependency picker modes.
type TaskListView struct {
	store  *store.Store
	state  *state.DB
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	mode     taskMode
	list     list.Model
	delegate *taskDelegate
	loaded   bool
	filter   derive.FilterMode

	// Detail mode
	detailID       string
	detailView     viewport.Model
	commentInput   textarea.Model
	commentFocused bool
	commentEditIdx int // -1 when not editing an existing comment
	attachInput    textinput.Model
	attachFocused  bool

	// Form mode (create/edit)
	form taskForm

	// Dependency picker
	deps depPicker

	// Delete confirmation
	deleteTargetID    string
	deleteTargetTitle string
}

// NewTaskListView creates the tasks page.
func NewTaskListView(st *store.Store, stateDB *state.DB) *TaskListView {
	s := styles.NewStyles()
	delegate := &taskDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Tasks"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = s.Title

	commentInput := textarea.New()
	commentInput.Placeholder = "Add a comment..."
	commentInput.CharLimit = 2000
	commentInput.SetWidth(50)
	commentInput.SetHeight(3)
	commentInput.ShowLineNumbers = false

	attachInput := textinput.New()
	attachInput.Placeholder = "Path to file..."
	attachInput.CharLimit = 300

	return &TaskListView{
		store:          st,
		state:          stateDB,
		styles:         s,
		keys:           keys.DefaultKeyMap(),
		list:           l,
		delegate:       delegate,
		filter:         derive.FilterAll,
		commentInput:   commentInput,
		commentEditIdx: -1,
		attachInput:    attachInput,
		form:           newTaskForm(),
	}
}

func (v *TaskListView) Init() tea.Cmd {
	return v.reloadAll
}

type tasksLoadedMsg struct{}

// reloadAll re-fetches every collection the tasks page renders from.
// Failed fetches are logged and leave the prior snapshots in place.
func (v *TaskListView) reloadAll() tea.Msg {
	ctx := context.Background()
	if err := v.store.ReloadTasks(ctx); err != nil {
		logErr("load tasks", err)
	}
	if err := v.store.ReloadProjects(ctx); err != nil {
		logErr("load projects", err)
	}
	if err := v.store.ReloadTemplates(ctx); err != nil {
		logErr("load templates", err)
	}
	if err := v.store.ReloadCategories(ctx); err != nil {
		logErr("load categories", err)
	}
	return tasksLoadedMsg{}
}

// reloadTasks re-fetches only the task collection, after a mutation.
func (v *TaskListView) reloadTasks() tea.Msg {
	if err := v.store.ReloadTasks(context.Background()); err != nil {
		logErr("reload tasks", err)
	}
	return tasksLoadedMsg{}
}

func (v *TaskListView) syncList() {
	tagged := make([]derive.MemberTask, len(v.store.Tasks()))
	for i, t := range v.store.Tasks() {
		tagged[i] = derive.MemberTask{Task: t}
	}
	filtered := derive.Filter(tagged, v.filter, time.Now())

	items := make([]list.Item, len(filtered))
	for i, t := range filtered {
		items[i] = taskItem{task: t.Task}
	}
	v.list.SetItems(items)
}

func (v *TaskListView) cycleFilter() {
	order := []derive.FilterMode{
		derive.FilterAll, derive.FilterActive,
		derive.FilterCompleted, derive.FilterOverdue,
	}
	for i, m := range order {
		if m == v.filter {
			v.filter = order[(i+1)%len(order)]
			v.syncList()
			return
		}
	}
	v.filter = derive.FilterAll
	v.syncList()
}

// consumeFlags handles one-shot navigation flags after the first load.
func (v *TaskListView) consumeFlags() {
	if v.state == nil {
		return
	}
	if id, ok := v.state.TakeFlag(state.FlagOpenTaskID); ok {
		if _, found := v.store.Task(id); found {
			v.openDetail(id)
		}
		return
	}
	if _, ok := v.state.TakeFlag(state.FlagOpenNewTask); ok {
		v.openForm("")
	}
}

// OpenDetail jumps straight to a task's detail view.
func (v *TaskListView) OpenDetail(id string) {
	if _, ok := v.store.Task(id); ok {
		v.openDetail(id)
	}
}

func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.delegate.width = msg.Width
		v.list.SetSize(msg.Width-2, msg.Height-4)
		v.detailView = viewport.New(msg.Width-2, max(msg.Height-10, 5))
		if v.detailID != "" {
			v.refreshDetail()
		}
		v.form.setSize(msg.Width, msg.Height)
		return v, nil

	case tasksLoadedMsg:
		first := !v.loaded
		v.loaded = true
		v.syncList()
		if v.detailID != "" {
			v.refreshDetail()
		}
		if first {
			v.consumeFlags()
		}
		return v, nil

	case similarTickMsg, similarResultMsg, enhanceResultMsg:
		return v, v.form.handleAsync(msg, v.store)
	}

	switch v.mode {
	case taskModeDetail:
		return v.updateDetail(msg)
	case taskModeForm:
		return v.updateForm(msg)
	case taskModeDeps:
		return v.updateDeps(msg)
	case taskModeConfirmDelete:
		return v.updateConfirmDelete(msg)
	}
	return v.updateList(msg)
}

func (v *TaskListView) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		// Let the list's fuzzy filter consume keys while active.
		if v.list.FilterState() == list.Filtering {
			var cmd tea.Cmd
			v.list, cmd = v.list.Update(msg)
			return v, cmd
		}

		switch {
		case key.Matches(msg, v.keys.Enter):
			if item, ok := v.list.SelectedItem().(taskItem); ok {
				v.openDetail(item.task.ID)
			}
			return v, nil
		case key.Matches(msg, v.keys.New):
			v.openForm("")
			return v, v.form.focusCmd()
		case key.Matches(msg, v.keys.Edit):
			if item, ok := v.list.SelectedItem().(taskItem); ok {
				v.openForm(item.task.ID)
				return v, v.form.focusCmd()
			}
			return v, nil
		case key.Matches(msg, v.keys.Delete):
			if item, ok := v.list.SelectedItem().(taskItem); ok {
				v.mode = taskModeConfirmDelete
				v.deleteTargetID = item.task.ID
				v.deleteTargetTitle = item.task.Title
			}
			return v, nil
		case key.Matches(msg, v.keys.Filter):
			v.cycleFilter()
			return v, nil
		case key.Matches(msg, v.keys.Refresh):
			return v, v.reloadTasks
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *TaskListView) openDetail(id string) {
	v.mode = taskModeDetail
	v.detailID = id
	v.commentFocused = false
	v.attachFocused = false
	v.commentEditIdx = -1
	v.commentInput.Reset()
	v.attachInput.Reset()
	if v.detailView.Width == 0 {
		v.detailView = viewport.New(max(v.width-2, 40), max(v.height-10, 5))
	}
	v.refreshDetail()
}

func (v *TaskListView) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		v.detailView, cmd = v.detailView.Update(msg)
		return v, cmd
	}

	if v.commentFocused {
		return v.updateDetailComment(keyMsg)
	}
	if v.attachFocused {
		return v.updateDetailAttach(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, v.keys.Back):
		v.mode = taskModeList
		v.detailID = ""
		return v, nil
	case key.Matches(keyMsg, v.keys.Edit):
		v.openForm(v.detailID)
		return v, v.form.focusCmd()
	case keyMsg.String() == "c":
		v.commentFocused = true
		v.commentEditIdx = -1
		v.commentInput.Reset()
		return v, v.commentInput.Focus()
	case keyMsg.String() == "a":
		v.attachFocused = true
		v.attachInput.Reset()
		return v, v.attachInput.Focus()
	case keyMsg.String() == "u":
		task, ok := v.store.Task(v.detailID)
		if !ok || len(task.Comments) == 0 {
			return v, nil
		}
		v.commentFocused = true
		v.commentEditIdx = len(task.Comments) - 1
		v.commentInput.SetValue(task.Comments[v.commentEditIdx].Text)
		return v, v.commentInput.Focus()
	case keyMsg.String() == "x":
		return v, v.deleteLastComment()
	case keyMsg.String() == "X":
		return v, v.deleteLastAttachment()
	case keyMsg.String() == "o":
		return v, v.downloadLastAttachment()
	case keyMsg.String() == "m":
		task, ok := v.store.Task(v.detailID)
		if !ok || task.AssignedToID == "" {
			return v, nil
		}
		id := task.AssignedToID
		return v, func() tea.Msg { return OpenMemberMsg{MemberID: id} }
	case keyMsg.String() == "p":
		v.openDeps()
		return v, nil
	case key.Matches(keyMsg, v.keys.Refresh):
		return v, v.reloadTasks
	}

	var cmd tea.Cmd
	v.detailView, cmd = v.detailView.Update(msg)
	return v, cmd
}

func (v *TaskListView) updateDetailComment(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.commentFocused = false
		v.commentInput.Blur()
		return v, nil
	case msg.String() == "ctrl+s":
		text := strings.TrimSpace(v.commentInput.Value())
		if text == "" {
			return v, alertf("Comment text is required")
		}
		v.commentFocused = false
		v.commentInput.Blur()
		taskID := v.detailID
		editIdx := v.commentEditIdx
		v.commentEditIdx = -1
		return v, func() tea.Msg {
			ctx := context.Background()
			var err error
			if editIdx >= 0 {
				err = v.store.Client().UpdateComment(ctx, taskID, editIdx, text)
			} else {
				err = v.store.Client().AddComment(ctx, taskID, text, "")
			}
			if err != nil {
				return AlertMsg{Text: "Error saving comment: " + err.Error()}
			}
			return v.reloadTasks()
		}
	}

	var cmd tea.Cmd
	v.commentInput, cmd = v.commentInput.Update(msg)
	return v, cmd
}

func (v *TaskListView) updateDetailAttach(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.attachFocused = false
		v.attachInput.Blur()
		return v, nil
	case key.Matches(msg, v.keys.Enter):
		path := strings.TrimSpace(v.attachInput.Value())
		if path == "" {
			return v, alertf("File path is required")
		}
		v.attachFocused = false
		v.attachInput.Blur()
		taskID := v.detailID
		return v, func() tea.Msg {
			if err := v.store.Client().UploadAttachment(context.Background(), taskID, path); err != nil {
				return AlertMsg{Text: "Error uploading attachment: " + err.Error()}
			}
			return v.reloadTasks()
		}
	}

	var cmd tea.Cmd
	v.attachInput, cmd = v.attachInput.Update(msg)
	return v, cmd
}

func (v *TaskListView) deleteLastComment() tea.Cmd {
	task, ok := v.store.Task(v.detailID)
	if !ok || len(task.Comments) == 0 {
		return nil
	}
	taskID := v.detailID
	idx := len(task.Comments) - 1
	return func() tea.Msg {
		if err := v.store.Client().DeleteComment(context.Background(), taskID, idx); err != nil {
			return AlertMsg{Text: "Error deleting comment: " + err.Error()}
		}
		return v.reloadTasks()
	}
}

func (v *TaskListView) deleteLastAttachment() tea.Cmd {
	task, ok := v.store.Task(v.detailID)
	if !ok || len(task.Attachments) == 0 {
		return nil
	}
	taskID := v.detailID
	attachmentID := task.Attachments[len(task.Attachments)-1].ID
	return func() tea.Msg {
		if err := v.store.Client().DeleteAttachment(context.Background(), taskID, attachmentID); err != nil {
			return AlertMsg{Text: "Error deleting attachment: " + err.Error()}
		}
		return v.reloadTasks()
	}
}

// downloadLastAttachment saves the newest attachment under its own
// filename in the working directory.
func (v *TaskListView) downloadLastAttachment() tea.Cmd {
	task, ok := v.store.Task(v.detailID)
	if !ok || len(task.Attachments) == 0 {
		return nil
	}
	taskID := v.detailID
	att := task.Attachments[len(task.Attachments)-1]
	return func() tea.Msg {
		if err := v.store.Client().DownloadAttachment(context.Background(), taskID, att.ID, att.Filename); err != nil {
			return AlertMsg{Text: "Error downloading attachment: " + err.Error()}
		}
		return AlertMsg{Text: "Saved " + att.Filename}
	}
}

func (v *TaskListView) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		v.mode = taskModeList
		id := v.deleteTargetID
		return v, func() tea.Msg {
			if err := v.store.Client().DeleteTask(context.Background(), id); err != nil {
				return AlertMsg{Text: "Error deleting task: " + err.Error()}
			}
			return v.reloadTasks()
		}
	case "n", "N", "esc":
		v.mode = taskModeList
		return v, nil
	}
	return v, nil
}

// refreshDetail rebuilds the detail viewport from the current task
// snapshot. Reads immediately follow a reload, so the snapshot is
// fresh by sequencing, not by any lock.
func (v *TaskListView) refreshDetail() {
	task, ok := v.store.Task(v.detailID)
	if !ok {
		v.detailView.SetContent(v.styles.TitleMuted.Render("Task no longer exists"))
		return
	}
	v.detailView.SetContent(v.renderDetailContent(task))
}

func (v *TaskListView) renderDetailContent(task models.Task) string {
	s := v.styles
	now := time.Now()
	width := max(v.width-6, 40)
	var b strings.Builder

	meta := styles.StatusStyle(task.Status).Render(task.Status)
	if task.Priority != "" {
		meta += s.TitleMuted.Render(" | " + task.Priority)
	}
	if task.FollowUpDate != "" {
		due := "due " + task.FollowUpDate
		if derive.IsOverdue(task, now) {
			due += " (overdue)"
		}
		meta += s.TitleMuted.Render(" | " + due)
	}
	b.WriteString(meta + "\n")

	var who []string
	if task.AssignedTo != "" {
		who = append(who, "Assigned: "+task.AssignedTo)
	}
	if task.RelatedTo != "" {
		who = append(who, "Related: "+task.RelatedTo)
	}
	if task.CustomerName != "" {
		who = append(who, "Customer: "+task.CustomerName)
	}
	if len(who) > 0 {
		b.WriteString(s.TitleMuted.Render(strings.Join(who, "  ")) + "\n")
	}
	if task.Tags != "" {
		b.WriteString(s.TitleMuted.Render("Tags: "+task.Tags) + "\n")
	}
	b.WriteString("\n")

	if task.Description != "" {
		b.WriteString(renderMarkup(task.Description, width) + "\n\n")
	}

	// Dependencies and blocked tasks: direct neighbors only; ids with
	// no loaded task are omitted.
	tasks := v.store.Tasks()
	b.WriteString(s.Title.Render("Dependencies") + "\n")
	depTasks := derive.ResolveTasks(task.Dependencies, tasks)
	if len(depTasks) == 0 {
		b.WriteString(s.TitleMuted.Render("No dependencies") + "\n")
	}
	for _, d := range depTasks {
		b.WriteString(fmt.Sprintf("  %s %s\n", styles.StatusStyle(d.Status).Render("["+d.Status+"]"), d.Title))
	}
	blockTasks := derive.ResolveTasks(task.Blocks, tasks)
	if len(blockTasks) > 0 {
		b.WriteString(s.Title.Render("Blocks") + "\n")
		for _, d := range blockTasks {
			b.WriteString("  " + d.Title + "\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(s.Title.Render(fmt.Sprintf("Comments (%d)", len(task.Comments))) + "\n")
	if len(task.Comments) == 0 {
		b.WriteString(s.TitleMuted.Render("No comments yet") + "\n")
	}
	for _, c := range task.Comments {
		author := c.Author
		if author == "" {
			author = "Anonymous"
		}
		b.WriteString(s.HelpKey.Render(author) + s.TitleMuted.Render("  "+c.Timestamp) + "\n")
		b.WriteString(renderMarkup(c.Text, width) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(s.Title.Render(fmt.Sprintf("Attachments (%d)", len(task.Attachments))) + "\n")
	if len(task.Attachments) == 0 {
		b.WriteString(s.TitleMuted.Render("No attachments") + "\n")
	}
	for _, a := range task.Attachments {
		url := v.store.Client().AttachmentURL(task.ID, a.ID)
		b.WriteString(fmt.Sprintf("  %s (%s)  %s\n", a.Filename, formatSize(a.Size), s.TitleMuted.Render(url)))
	}
	b.WriteString("\n")

	b.WriteString(s.Title.Render("History") + "\n")
	history := derive.SortHistory(task.History)
	if len(history) == 0 {
		b.WriteString(s.TitleMuted.Render("No history available") + "\n")
	}
	for _, e := range history {
		b.WriteString(s.TitleMuted.Render(e.Timestamp) + "  " + derive.HistoryLabel(e) + "\n")
	}

	return b.String()
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	}
	return fmt.Sprintf("%d B", size)
}

func (v *TaskListView) View() string {
	switch v.mode {
	case taskModeDetail:
		return v.renderDetail()
	case taskModeForm:
		return v.renderForm()
	case taskModeDeps:
		return v.renderDeps()
	case taskModeConfirmDelete:
		return v.renderConfirmDelete()
	}
	return v.renderList()
}

func (v *TaskListView) renderList() string {
	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}
	help := v.styles.Help.Render(fmt.Sprintf(
		"%s open • %s new • %s edit • %s del • %s filter (%s) • %s refresh",
		v.styles.HelpKey.Render("↵"),
		v.styles.HelpKey.Render("n"),
		v.styles.HelpKey.Render("e"),
		v.styles.HelpKey.Render("d"),
		v.styles.HelpKey.Render("f"),
		string(v.filter),
		v.styles.HelpKey.Render("r"),
	))
	return v.list.View() + "\n" + help
}

func (v *TaskListView) renderDetail() string {
	task, ok := v.store.Task(v.detailID)
	if !ok {
		return v.styles.TitleMuted.Render("Task no longer exists")
	}

	header := v.styles.Title.Render(task.Title)
	body := v.detailView.View()

	var footer string
	switch {
	case v.commentFocused:
		label := "New comment"
		if v.commentEditIdx >= 0 {
			label = fmt.Sprintf("Edit comment %d", v.commentEditIdx+1)
		}
		footer = v.styles.TitleMuted.Render(label) + "\n" +
			v.styles.InputFocused.Render(v.commentInput.View()) + "\n" +
			v.styles.Help.Render("Ctrl+S: save • Esc: cancel")
	case v.attachFocused:
		footer = v.styles.TitleMuted.Render("Attach file") + "\n" +
			v.styles.InputFocused.Render(v.attachInput.View()) + "\n" +
			v.styles.Help.Render("↵: upload • Esc: cancel")
	default:
		footer = v.styles.Help.Render(fmt.Sprintf(
			"%s edit • %s comment • %s edit last • %s attach • %s deps • %s assignee • %s refresh • %s back",
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("c"),
			v.styles.HelpKey.Render("u"),
			v.styles.HelpKey.Render("a"),
			v.styles.HelpKey.Render("p"),
			v.styles.HelpKey.Render("m"),
			v.styles.HelpKey.Render("r"),
			v.styles.HelpKey.Render("esc"),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (v *TaskListView) renderConfirmDelete() string {
	s := v.styles
	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(v.deleteTargetTitle),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, content)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// clamp returns val clamped between minVal and maxVal.
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}
