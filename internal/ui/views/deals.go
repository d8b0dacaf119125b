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

type dealItem struct {
	deal models.Deal
}

func (i dealItem) Title() string { return i.deal.Title }
func (i dealItem) Description() string {
	desc := i.deal.Status
	if i.deal.CustomerName != "" {
		desc += " • " + i.deal.CustomerName
	}
	if i.deal.Value != 0 {
		desc += fmt.Sprintf(" • $%.0f", i.deal.Value)
	}
	if i.deal.FinancialYear != "" {
		desc += " • FY " + i.deal.FinancialYear
	}
	return desc
}
func (i dealItem) FilterValue() string { return i.deal.Title + " " + i.deal.CustomerName }

type dealDelegate struct {
	styles *styles.Styles
	width  int
}

func (d dealDelegate) Height() int                               { return 2 }
func (d dealDelegate) Spacing() int                              { return 1 }
func (d dealDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d dealDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(dealItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	titleStyle := d.styles.ListItem.Width(width)
	descStyle := d.styles.ListItem.Foreground(styles.StatusColor(i.deal.Status)).Width(width)
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.StatusColor(i.deal.Status)).Width(width)
	}

	fmt.Fprintf(w, "%s\n%s", titleStyle.Render(i.Title()), descStyle.Render(i.Description()))
}

// DealsView is the read-only deals pipeline page.
type DealsView struct {
	store    *store.Store
	styles   *styles.Styles
	keys     keys.KeyMap
	list     list.Model
	delegate *dealDelegate
	loaded   bool
	width    int
	height   int
}

func NewDealsView(st *store.Store) *DealsView {
	s := styles.NewStyles()
	delegate := &dealDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Deals"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	return &DealsView{
		store:    st,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		list:     l,
		delegate: delegate,
	}
}

func (v *DealsView) Init() tea.Cmd {
	return v.loadDeals
}

type dealsLoadedMsg struct{}

func (v *DealsView) loadDeals() tea.Msg {
	if err := v.store.ReloadDeals(context.Background()); err != nil {
		logErr("load deals", err)
	}
	return dealsLoadedMsg{}
}

func (v *DealsView) syncList() {
	deals := v.store.Deals()
	items := make([]list.Item, len(deals))
	for i, d := range deals {
		items[i] = dealItem{deal: d}
	}
	v.list.SetItems(items)
}

func (v *DealsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.delegate.width = msg.Width
		v.list.SetSize(msg.Width-4, msg.Height-7)
		return v, nil

	case dealsLoadedMsg:
		v.loaded = true
		v.syncList()
		return v, nil

	case tea.KeyMsg:
		if v.list.FilterState() == list.Filtering {
			break
		}
		if key.Matches(msg, v.keys.Refresh) {
			return v, v.loadDeals
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *DealsView) View() string {
	s := v.styles
	if !v.loaded {
		return s.TitleMuted.Render("Loading...")
	}

	userLine := ""
	if user := v.store.CurrentUser(); user != nil {
		userLine = s.StatusBar.Render("Signed in as " + user.Name)
	}

	if len(v.list.Items()) == 0 {
		empty := lipgloss.Place(v.width, v.height-2, lipgloss.Center, lipgloss.Center,
			s.TitleMuted.Render("No deals in the pipeline."))
		return lipgloss.JoinVertical(lipgloss.Left, userLine, empty)
	}

	help := s.Help.Render(s.HelpKey.Render("r") + " refresh")
	return lipgloss.JoinVertical(lipgloss.Left, userLine, v.list.View(), help)
}
