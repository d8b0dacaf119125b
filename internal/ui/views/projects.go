package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/derive"
	"taskdeck/internal/models"
	"taskdeck/internal/report"
	"taskdeck/internal/store"
	"taskdeck/internal/ui/keys"
	"taskdeck/internal/ui/styles"
)

var projectStatuses = []string{"Planning", "Active", "On Hold", "Completed", "Cancelled"}

type projectItem struct {
	project models.Project
}

func (i projectItem) Title() string { return i.project.Title }
func (i projectItem) Description() string {
	return fmt.Sprintf("%s • %d tasks (%d open, %d done)",
		i.project.Status, i.project.TaskCount, i.project.OpenTasks, i.project.CompletedTasks)
}
func (i projectItem) FilterValue() string { return i.project.Title }

type projectDelegate struct {
	styles *styles.Styles
	width  int
}

func (d projectDelegate) Height() int                               { return 2 }
func (d projectDelegate) Spacing() int                              { return 1 }
func (d projectDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d projectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	p, ok := item.(projectItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	var titleStyle, descStyle lipgloss.Style
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.StatusColor(p.project.Status)).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.StatusColor(p.project.Status)).Width(width)
	}

	title := p.Title()
	if p.project.TargetDate != "" {
		title += "  " + d.styles.TitleMuted.Render("due "+p.project.TargetDate)
	}

	fmt.Fprintf(w, "%s\n%s", titleStyle.Render(title), descStyle.Render(p.Description()))
}

// ProjectListView is the project cards page: list, create/edit form
// and delete confirmation.
type ProjectListView struct {
	store    *store.Store
	list     list.Model
	delegate *projectDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int
	loaded   bool

	editing   bool
	editingID string
	title     textinput.Model
	desc      Editor
	target    textinput.Model
	statusIdx int
	focusIdx  int // 0=title, 1=desc, 2=status, 3=target, 4=save

	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string
}

func NewProjectListView(st *store.Store) *ProjectListView {
	s := styles.NewStyles()

	title := textinput.New()
	title.Placeholder = "Project title"
	title.CharLimit = 150

	target := textinput.New()
	target.Placeholder = "YYYY-MM-DD (optional)"
	target.CharLimit = 20

	delegate := &projectDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Projects"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	return &ProjectListView{
		store:    st,
		list:     l,
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		title:    title,
		desc:     newTextAreaEditor("Project description"),
		target:   target,
	}
}

func (v *ProjectListView) Init() tea.Cmd {
	return v.loadProjects
}

type projectsLoadedMsg struct{}

func (v *ProjectListView) loadProjects() tea.Msg {
	ctx := context.Background()
	if err := v.store.ReloadProjects(ctx); err != nil {
		logErr("load projects", err)
	}
	if err := v.store.ReloadTasks(ctx); err != nil {
		logErr("load tasks", err)
	}
	return projectsLoadedMsg{}
}

// syncList rebuilds the card list with counters derived from the
// current task snapshot.
func (v *ProjectListView) syncList() {
	projects := derive.ProjectCounts(v.store.Projects(), v.store.Tasks())
	items := make([]list.Item, len(projects))
	for i, p := range projects {
		items[i] = projectItem{project: p}
	}
	v.list.SetItems(items)
}

func (v *ProjectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.delegate.width = msg.Width
		v.list.SetSize(msg.Width-4, msg.Height-6)
		v.desc.SetSize(clamp(msg.Width-10, 30, 70), clamp(msg.Height/4, 3, 8))
		return v, nil

	case projectsLoadedMsg:
		v.loaded = true
		v.syncList()
		return v, nil

	case projectSavedMsg:
		v.editing = false
		v.syncList()
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.editing {
			return v.updateEditing(msg)
		}

		if v.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, v.keys.New):
			v.OpenForm("")
			return v, textinput.Blink
		case key.Matches(msg, v.keys.Edit), key.Matches(msg, v.keys.Enter):
			if item, ok := v.list.SelectedItem().(projectItem); ok {
				v.OpenForm(item.project.ID)
				return v, textinput.Blink
			}
		case key.Matches(msg, v.keys.Delete):
			if item, ok := v.list.SelectedItem().(projectItem); ok {
				v.confirmingDelete = true
				v.deleteTargetID = item.project.ID
				v.deleteTargetName = item.project.Title
				return v, nil
			}
		case key.Matches(msg, v.keys.Refresh):
			return v, v.loadProjects
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// OpenForm opens the create (empty id) or edit form.
func (v *ProjectListView) OpenForm(id string) {
	v.editing = true
	v.editingID = id
	v.focusIdx = 0
	v.title.Reset()
	v.desc.SetHTML("")
	v.target.Reset()
	v.statusIdx = 0 // Planning

	if id != "" {
		for _, p := range v.store.Projects() {
			if p.ID != id {
				continue
			}
			v.title.SetValue(p.Title)
			v.desc.SetHTML(p.Description)
			v.target.SetValue(p.TargetDate)
			if idx := indexOf(projectStatuses, p.Status); idx >= 0 {
				v.statusIdx = idx
			}
			break
		}
	}
	v.updateFocus()
}

func (v *ProjectListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		id := v.deleteTargetID
		return v, func() tea.Msg {
			if err := v.store.Client().DeleteProject(context.Background(), id); err != nil {
				return AlertMsg{Text: "Error deleting project: " + err.Error()}
			}
			return v.loadProjects()
		}
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

type projectSavedMsg struct{}

func (v *ProjectListView) saveProject() tea.Cmd {
	project := models.Project{
		ID:          v.editingID,
		Title:       strings.TrimSpace(v.title.Value()),
		Description: v.desc.GetHTML(),
		Status:      projectStatuses[v.statusIdx],
		TargetDate:  strings.TrimSpace(v.target.Value()),
	}
	// Markup that renders to whitespace counts as empty. Checked
	// before any request goes out.
	if strings.TrimSpace(report.StripHTML(project.Description)) == "" {
		return alertf("Please provide a description for the project")
	}
	if project.Title == "" {
		return alertf("Project title is required")
	}

	creating := v.editingID == ""
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if creating {
			_, err = v.store.Client().CreateProject(ctx, project)
		} else {
			_, err = v.store.Client().UpdateProject(ctx, project)
		}
		if err != nil {
			return AlertMsg{Text: "Error saving project: " + err.Error()}
		}
		if err := v.store.ReloadProjects(ctx); err != nil {
			logErr("reload projects", err)
		}
		return projectSavedMsg{}
	}
}

func (v *ProjectListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.saveProject()

	case msg.String() == "shift+tab":
		v.focusIdx = (v.focusIdx + 4) % 5
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % 5
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		switch v.focusIdx {
		case 1:
			// Newline inside the description editor.
		case 4:
			return v, v.saveProject()
		default:
			v.focusIdx++
			v.updateFocus()
			return v, nil
		}
	}

	if v.focusIdx == 2 {
		switch msg.String() {
		case "left", "h":
			v.statusIdx = (v.statusIdx + len(projectStatuses) - 1) % len(projectStatuses)
		case "right", "l", " ":
			v.statusIdx = (v.statusIdx + 1) % len(projectStatuses)
		}
		return v, nil
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.title, cmd = v.title.Update(msg)
	case 1:
		cmd = v.desc.Update(msg)
	case 3:
		v.target, cmd = v.target.Update(msg)
	}
	return v, cmd
}

func (v *ProjectListView) updateFocus() {
	v.title.Blur()
	v.desc.Blur()
	v.target.Blur()
	switch v.focusIdx {
	case 0:
		v.title.Focus()
	case 1:
		v.desc.Focus()
	case 3:
		v.target.Focus()
	}
}

func (v *ProjectListView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.editing {
		return v.renderForm()
	}
	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}
	if len(v.list.Items()) == 0 {
		return v.renderEmpty()
	}
	return v.list.View() + "\n" + v.renderHelp()
}

func (v *ProjectListView) renderEmpty() string {
	s := v.styles
	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("No Projects"),
		"",
		s.TitleMuted.Render("Press 'n' to create your first project"),
		"",
		s.ButtonPrimary.Render(" New Project "),
	)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, content)
}

func (v *ProjectListView) renderForm() string {
	s := v.styles

	titleStyle := s.Input
	descStyle := s.Input
	targetStyle := s.Input
	statusStyle := s.Input
	btnStyle := s.Button

	switch v.focusIdx {
	case 0:
		titleStyle = s.InputFocused
	case 1:
		descStyle = s.InputFocused
	case 2:
		statusStyle = s.InputFocused
	case 3:
		targetStyle = s.InputFocused
	case 4:
		btnStyle = s.ButtonFocused
	}

	heading := "New Project"
	if v.editingID != "" {
		heading = "Edit Project"
	}

	inputWidth := clamp(v.width-10, 20, 60)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(heading),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(v.title.View()),
		"",
		"Description:",
		descStyle.Render(v.desc.View()),
		"",
		"Status: "+statusStyle.Render("< "+projectStatuses[v.statusIdx]+" >"),
		"",
		"Target date:",
		targetStyle.Width(inputWidth).Render(v.target.View()),
		"",
		btnStyle.Render(" Save "),
		"",
		s.TitleMuted.Render("Tab: next • ←/→: status • Ctrl+S: save • Esc: cancel"),
	)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, form)
}

func (v *ProjectListView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s edit • %s new • %s del • %s refresh",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("r"),
		),
	)
}

func (v *ProjectListView) renderDeleteConfirm() string {
	s := v.styles
	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Project?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("Delete %q? Tasks keep their project reference.", v.deleteTargetName)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, content)
}
