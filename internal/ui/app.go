package ui

import (
	"log"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/state"
	"taskdeck/internal/store"
	"taskdeck/internal/ui/styles"
	"taskdeck/internal/ui/views"
)

// Page is the active sidebar destination.
type Page int

const (
	PageTasks Page = iota
	PageProjects
	PageMember
	PageReports
	PageDeals
	PageTopics
)

var pageLabels = []string{"Tasks", "Projects", "Member", "Reports", "Deals", "Topics"}

// App is the root model: sidebar chrome, page routing, the quick-action
// overlay and the blocking alert modal.
type App struct {
	store  *store.Store
	state  *state.DB
	styles *styles.Styles

	page     Page
	tasks    *views.TaskListView
	projects *views.ProjectListView
	member   *views.MemberView
	reports  *views.ReportView
	deals    *views.DealsView
	topics   *views.TopicsView

	sidebarCollapsed bool

	// Quick-action overlay
	quickOpen bool
	quickIdx  int

	// Member id prompt
	promptOpen  bool
	memberInput textinput.Model

	alertText string

	width  int
	height int
}

var quickActions = []string{"New Task", "New Project", "New Objective", "View Member"}

func NewApp(st *store.Store, stateDB *state.DB) *App {
	memberInput := textinput.New()
	memberInput.Placeholder = "Member id"
	memberInput.CharLimit = 64

	return &App{
		store:            st,
		state:            stateDB,
		styles:           styles.NewStyles(),
		tasks:            views.NewTaskListView(st, stateDB),
		projects:         views.NewProjectListView(st),
		member:           views.NewMemberView(st),
		reports:          views.NewReportView(st),
		deals:            views.NewDealsView(st),
		topics:           views.NewTopicsView(st),
		sidebarCollapsed: stateDB.SidebarCollapsed(),
		memberInput:      memberInput,
	}
}

func (a *App) Init() tea.Cmd {
	// A pending member flag wins over the default landing page; the
	// remaining one-shot flags are consumed by the tasks page itself.
	if id, ok := a.state.TakeFlag(state.FlagEditMemberID); ok && id != "" {
		a.page = PageMember
		return tea.Batch(a.tasks.Init(), a.member.Open(id))
	}
	if _, ok := a.state.TakeFlag(state.FlagOpenNewProject); ok {
		a.page = PageProjects
		return tea.Batch(a.projects.Init(), func() tea.Msg {
			return openNewProjectMsg{}
		})
	}
	// Objectives are read-only here; the flag lands on the topics page.
	if _, ok := a.state.TakeFlag(state.FlagOpenNewObjective); ok {
		a.page = PageTopics
		return a.topics.Init()
	}
	return a.tasks.Init()
}

type openNewProjectMsg struct{}

// contentSize returns the area left for the active page beside the
// sidebar.
func (a *App) contentSize() tea.WindowSizeMsg {
	w := a.width - styles.SidebarWidth
	if a.sidebarCollapsed {
		w = a.width - styles.SidebarCollapsedWidth
	}
	return tea.WindowSizeMsg{Width: max(w, 20), Height: a.height}
}

// switchPage activates a page, initializing it lazily and replaying
// the current window size.
func (a *App) switchPage(p Page) tea.Cmd {
	a.page = p
	size := a.contentSize()
	resize := func() tea.Msg { return size }

	var initCmd tea.Cmd
	switch p {
	case PageTasks:
		initCmd = a.tasks.Init()
	case PageProjects:
		initCmd = a.projects.Init()
	case PageReports:
		initCmd = a.reports.Init()
	case PageDeals:
		initCmd = a.deals.Init()
	case PageTopics:
		initCmd = a.topics.Init()
	}
	return tea.Batch(initCmd, resize)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, a.forward(a.contentSize())

	case views.AlertMsg:
		a.alertText = msg.Text
		return a, nil

	case views.OpenTaskMsg:
		a.page = PageTasks
		a.tasks.OpenDetail(msg.TaskID)
		return a, a.forward(a.contentSize())

	case views.OpenMemberMsg:
		a.page = PageMember
		return a, tea.Batch(a.member.Open(msg.MemberID), a.forward(a.contentSize()))

	case openNewProjectMsg:
		a.projects.OpenForm("")
		return a, nil

	case tea.KeyMsg:
		// The alert modal blocks everything until dismissed.
		if a.alertText != "" {
			a.alertText = ""
			return a, nil
		}
		if a.quickOpen {
			return a.updateQuickMenu(msg)
		}
		if a.promptOpen {
			return a.updateMemberPrompt(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "esc":
			// The member page has no inner modes; esc leaves it.
			if a.page == PageMember {
				return a, a.switchPage(PageTasks)
			}
		case "ctrl+b":
			a.sidebarCollapsed = !a.sidebarCollapsed
			if err := a.state.SetSidebarCollapsed(a.sidebarCollapsed); err != nil {
				logSidebarErr(err)
			}
			return a, a.forward(a.contentSize())
		case "ctrl+a":
			a.quickOpen = true
			a.quickIdx = 0
			return a, nil
		case "ctrl+t":
			return a, a.switchPage(PageTasks)
		case "ctrl+p":
			return a, a.switchPage(PageProjects)
		case "ctrl+g":
			a.promptOpen = true
			a.memberInput.Reset()
			a.memberInput.Focus()
			return a, textinput.Blink
		case "ctrl+o":
			return a, a.switchPage(PageReports)
		case "ctrl+d":
			return a, a.switchPage(PageDeals)
		case "ctrl+y":
			return a, a.switchPage(PageTopics)
		}
	}

	return a, a.forward(msg)
}

// forward delivers a message to the active page only.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.page {
	case PageTasks:
		_, cmd = a.tasks.Update(msg)
	case PageProjects:
		_, cmd = a.projects.Update(msg)
	case PageMember:
		_, cmd = a.member.Update(msg)
	case PageReports:
		_, cmd = a.reports.Update(msg)
	case PageDeals:
		_, cmd = a.deals.Update(msg)
	case PageTopics:
		_, cmd = a.topics.Update(msg)
	}
	return cmd
}

func (a *App) updateQuickMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+a":
		a.quickOpen = false
		return a, nil
	case "up", "k":
		if a.quickIdx > 0 {
			a.quickIdx--
		}
		return a, nil
	case "down", "j":
		if a.quickIdx < len(quickActions)-1 {
			a.quickIdx++
		}
		return a, nil
	case "enter":
		a.quickOpen = false
		switch a.quickIdx {
		case 0:
			cmd := a.switchPage(PageTasks)
			a.tasks.OpenNew()
			return a, cmd
		case 1:
			cmd := a.switchPage(PageProjects)
			a.projects.OpenForm("")
			return a, cmd
		case 2:
			return a, a.switchPage(PageTopics)
		case 3:
			a.promptOpen = true
			a.memberInput.Reset()
			a.memberInput.Focus()
			return a, textinput.Blink
		}
	}
	return a, nil
}

func (a *App) updateMemberPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.promptOpen = false
		return a, nil
	case "enter":
		a.promptOpen = false
		id := a.memberInput.Value()
		if id == "" {
			return a, nil
		}
		a.page = PageMember
		return a, tea.Batch(a.member.Open(id), a.forward(a.contentSize()))
	}
	var cmd tea.Cmd
	a.memberInput, cmd = a.memberInput.Update(msg)
	return a, cmd
}

func (a *App) pageView() string {
	switch a.page {
	case PageProjects:
		return a.projects.View()
	case PageMember:
		return a.member.View()
	case PageReports:
		return a.reports.View()
	case PageDeals:
		return a.deals.View()
	case PageTopics:
		return a.topics.View()
	}
	return a.tasks.View()
}

func (a *App) renderSidebar() string {
	s := a.styles

	if a.sidebarCollapsed {
		var rows []string
		for i, label := range pageLabels {
			item := s.SidebarItem
			if Page(i) == a.page {
				item = s.SidebarSelected
			}
			rows = append(rows, item.Render(label[:1]))
		}
		return s.Sidebar.Width(styles.SidebarCollapsedWidth - 1).Height(max(a.height-2, 1)).
			Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	rows := []string{s.Title.Render("taskdeck"), ""}
	for i, label := range pageLabels {
		item := s.SidebarItem
		if Page(i) == a.page {
			item = s.SidebarSelected
		}
		rows = append(rows, item.Render(label))
	}
	rows = append(rows, "", s.TitleMuted.Render("^T ^P ^G ^O ^D ^Y"),
		s.TitleMuted.Render("^A quick  ^B hide"))

	return s.Sidebar.Width(styles.SidebarWidth - 1).Height(max(a.height-2, 1)).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a *App) View() string {
	base := lipgloss.JoinHorizontal(lipgloss.Top, a.renderSidebar(), a.pageView())

	if a.alertText != "" {
		modal := a.styles.ErrorBox.Render(a.alertText + "\n\nPress any key to dismiss")
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
	}

	if a.quickOpen {
		var rows []string
		rows = append(rows, a.styles.Title.Render("Quick Actions"), "")
		for i, action := range quickActions {
			if i == a.quickIdx {
				rows = append(rows, a.styles.ListSelected.Render("> "+action))
			} else {
				rows = append(rows, a.styles.ListItem.Render("  "+action))
			}
		}
		modal := a.styles.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
	}

	if a.promptOpen {
		modal := a.styles.Modal.Render(
			a.styles.Title.Render("View Member") + "\n\n" +
				a.styles.InputFocused.Render(a.memberInput.View()) + "\n\n" +
				a.styles.TitleMuted.Render("Enter: open • Esc: cancel"))
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
	}

	return base
}

func logSidebarErr(err error) {
	log.Printf("save sidebar state: %v", err)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
