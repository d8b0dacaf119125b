package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/derive"
	"taskdeck/internal/models"
	"taskdeck/internal/store"
	"taskdeck/internal/ui/keys"
	"taskdeck/internal/ui/styles"
)

var memberFilters = []derive.FilterMode{
	derive.FilterAll, derive.FilterAssigned, derive.FilterRelated,
	derive.FilterActive, derive.FilterCompleted, derive.FilterOverdue,
}

// MemberView shows one team member with their task relationships. The
// task list is partitioned into assigned and related sets; a task
// never appears in both.
type MemberView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap

	memberID string
	member   models.Member
	loaded   bool
	errText  string

	filterIdx int
	tasks     []derive.MemberTask
	cursor    int
	body      viewport.Model

	width  int
	height int
}

func NewMemberView(st *store.Store) *MemberView {
	return &MemberView{
		store:  st,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		body:   viewport.New(0, 0),
	}
}

// Open points the view at a member and triggers the load.
func (v *MemberView) Open(id string) tea.Cmd {
	v.memberID = id
	v.loaded = false
	v.errText = ""
	v.filterIdx = 0
	v.cursor = 0
	return v.loadMember
}

func (v *MemberView) Init() tea.Cmd {
	return nil
}

type memberLoadedMsg struct {
	member models.Member
}

func (v *MemberView) loadMember() tea.Msg {
	ctx := context.Background()
	member, err := v.store.Client().GetMember(ctx, v.memberID)
	if err != nil {
		logErr("load member", err)
		return memberErrMsg{err: err}
	}
	if err := v.store.ReloadTasks(ctx); err != nil {
		logErr("load tasks", err)
	}
	return memberLoadedMsg{member: member}
}

type memberErrMsg struct{ err error }

// refresh recomputes the partition and applies the active filter.
func (v *MemberView) refresh() {
	assigned, related := derive.Relationship(v.member, v.store.Tasks())
	merged := derive.MergeRelationship(assigned, related)
	v.tasks = derive.Filter(merged, memberFilters[v.filterIdx], time.Now())
	if v.cursor >= len(v.tasks) {
		v.cursor = max(len(v.tasks)-1, 0)
	}
	v.body.SetContent(v.renderTasks())
}

func (v *MemberView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.body.Width = msg.Width - 4
		v.body.Height = max(msg.Height-10, 3)
		if v.loaded {
			v.refresh()
		}
		return v, nil

	case memberLoadedMsg:
		v.member = msg.member
		v.loaded = true
		v.refresh()
		return v, nil

	case memberErrMsg:
		v.errText = msg.err.Error()
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Filter):
			v.filterIdx = (v.filterIdx + 1) % len(memberFilters)
			v.refresh()
			return v, nil
		case key.Matches(msg, v.keys.Up):
			if v.cursor > 0 {
				v.cursor--
				v.body.SetContent(v.renderTasks())
			}
			return v, nil
		case key.Matches(msg, v.keys.Down):
			if v.cursor < len(v.tasks)-1 {
				v.cursor++
				v.body.SetContent(v.renderTasks())
			}
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			if v.cursor < len(v.tasks) {
				id := v.tasks[v.cursor].ID
				return v, func() tea.Msg { return OpenTaskMsg{TaskID: id} }
			}
			return v, nil
		case key.Matches(msg, v.keys.Refresh):
			return v, v.loadMember
		}
	}

	var cmd tea.Cmd
	v.body, cmd = v.body.Update(msg)
	return v, cmd
}

func (v *MemberView) renderTasks() string {
	s := v.styles
	now := time.Now()

	if len(v.tasks) == 0 {
		return s.TitleMuted.Render("No tasks for this filter.")
	}

	var b strings.Builder
	for i, t := range v.tasks {
		badge := s.BadgeRelated.Render("related")
		if t.Relation == derive.RelationAssigned {
			badge = s.BadgeAssigned.Render("assigned")
		}

		line := fmt.Sprintf("%s %s  %s", badge, t.Title,
			styles.StatusStyle(t.Status).Render(t.Status))
		if derive.IsOverdue(t.Task, now) {
			line += "  " + s.BadgeOverdue.Render("overdue")
		}
		if t.FollowUpDate != "" {
			line += "  " + s.TitleMuted.Render("due "+t.FollowUpDate)
		}

		if i == v.cursor {
			line = s.ListSelected.Render("> " + line)
		} else {
			line = s.ListItem.Render("  " + line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (v *MemberView) View() string {
	s := v.styles

	if v.errText != "" {
		return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center,
			s.ErrorBox.Render("Could not load member: "+v.errText))
	}
	if !v.loaded {
		return s.TitleMuted.Render("Loading...")
	}

	avatar := lipgloss.NewStyle().
		Foreground(styles.Current.Background).
		Background(lipgloss.Color(v.member.Color())).
		Padding(0, 1).
		Bold(true).
		Render(v.member.Initials())

	header := fmt.Sprintf("%s %s", avatar, s.Title.Render(v.member.Name))
	meta := v.member.Role
	if v.member.Department != "" {
		if meta != "" {
			meta += " • "
		}
		meta += v.member.Department
	}
	if v.member.Email != "" {
		if meta != "" {
			meta += " • "
		}
		meta += v.member.Email
	}

	assigned, related := derive.Relationship(v.member, v.store.Tasks())
	counts := fmt.Sprintf("%d assigned, %d related", len(assigned), len(related))

	filterLine := s.StatusBar.Render(fmt.Sprintf("Filter: %s (%d tasks)",
		memberFilters[v.filterIdx], len(v.tasks)))

	help := s.Help.Render(fmt.Sprintf("%s open task • %s filter • %s refresh • %s back",
		s.HelpKey.Render("↵"), s.HelpKey.Render("f"),
		s.HelpKey.Render("r"), s.HelpKey.Render("esc")))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		s.TitleMuted.Render(meta),
		s.TitleMuted.Render(counts),
		filterLine,
		"",
		v.body.View(),
		help,
	)
}
