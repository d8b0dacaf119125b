package views

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/models"
	"taskdeck/internal/store"
	"taskdeck/internal/ui/keys"
	"taskdeck/internal/ui/styles"
)

type topicItem struct {
	topic models.Topic
}

func (i topicItem) Title() string { return i.topic.Title }
func (i topicItem) Description() string {
	desc := i.topic.Status
	if desc == "" {
		desc = "Open"
	}
	if i.topic.Notes != "" {
		desc += " • " + i.topic.Notes
	}
	return desc
}
func (i topicItem) FilterValue() string { return i.topic.Title }

type topicDelegate struct {
	styles *styles.Styles
	width  int
}

func (d topicDelegate) Height() int                               { return 2 }
func (d topicDelegate) Spacing() int                              { return 1 }
func (d topicDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d topicDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(topicItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	titleStyle := d.styles.ListItem.Width(width)
	descStyle := d.styles.ListItem.Foreground(styles.StatusColor(i.topic.Status)).Width(width)
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.StatusColor(i.topic.Status)).Width(width)
	}

	fmt.Fprintf(w, "%s\n%s", titleStyle.Render(i.Title()), descStyle.Render(i.Description()))
}

// TopicsView is the read-only discussion topics page. Topics are
// created outside this client; the backend only exposes the list.
type TopicsView struct {
	store    *store.Store
	styles   *styles.Styles
	keys     keys.KeyMap
	list     list.Model
	delegate *topicDelegate
	loaded   bool
	width    int
	height   int
}

func NewTopicsView(st *store.Store) *TopicsView {
	s := styles.NewStyles()
	delegate := &topicDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Topics"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	return &TopicsView{
		store:    st,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		list:     l,
		delegate: delegate,
	}
}

func (v *TopicsView) Init() tea.Cmd {
	return v.loadTopics
}

type topicsLoadedMsg struct{}

func (v *TopicsView) loadTopics() tea.Msg {
	if err := v.store.ReloadTopics(context.Background()); err != nil {
		logErr("load topics", err)
	}
	return topicsLoadedMsg{}
}

func (v *TopicsView) syncList() {
	topics := v.store.Topics()
	items := make([]list.Item, len(topics))
	for i, t := range topics {
		items[i] = topicItem{topic: t}
	}
	v.list.SetItems(items)
}

func (v *TopicsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.delegate.width = msg.Width
		v.list.SetSize(msg.Width-4, msg.Height-7)
		return v, nil

	case topicsLoadedMsg:
		v.loaded = true
		v.syncList()
		return v, nil

	case tea.KeyMsg:
		if v.list.FilterState() == list.Filtering {
			break
		}
		if key.Matches(msg, v.keys.Refresh) {
			return v, v.loadTopics
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *TopicsView) View() string {
	s := v.styles
	if !v.loaded {
		return s.TitleMuted.Render("Loading...")
	}

	if len(v.list.Items()) == 0 {
		return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center,
			s.TitleMuted.Render("No topics yet."))
	}

	help := s.Help.Render(s.HelpKey.Render("r") + " refresh")
	return lipgloss.JoinVertical(lipgloss.Left, v.list.View(), help)
}
