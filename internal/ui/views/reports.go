package views

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/derive"
	"taskdeck/internal/report"
	"taskdeck/internal/store"
	"taskdeck/internal/ui/keys"
	"taskdeck/internal/ui/styles"
)

var reportTypes = []report.Type{
	report.TypeAll, report.TypeAssignee, report.TypeCustomer,
	report.TypeStatus, report.TypePriority,
}

var reportStatuses = []string{"", "Open", "In Progress", "Completed", "Cancelled", "Closed"}

var reportRanges = []derive.DateRange{
	derive.RangeAny, derive.RangeToday, derive.RangeWeek,
	derive.RangeMonth, derive.RangeOverdue,
}

// Option rows in the report form.
const (
	optType = iota
	optValue
	optStatus
	optRange
	optCount
)

// ReportView is the report builder: pick type/value/status/range,
// preview the result table, export as CSV or plain text.
type ReportView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap

	typeIdx   int
	valueIdx  int // into values(); 0 = all
	statusIdx int
	rangeIdx  int
	optIdx    int

	preview viewport.Model
	notice  string
	width   int
	height  int
	loaded  bool
}

func NewReportView(st *store.Store) *ReportView {
	return &ReportView{
		store:   st,
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
		preview: viewport.New(0, 0),
	}
}

func (v *ReportView) Init() tea.Cmd {
	return func() tea.Msg {
		if err := v.store.ReloadTasks(context.Background()); err != nil {
			logErr("load tasks", err)
		}
		return reportReadyMsg{}
	}
}

type reportReadyMsg struct{}

// values returns the distinct filter values for the selected type, or
// nil when the type takes no value.
func (v *ReportView) values() []string {
	switch reportTypes[v.typeIdx] {
	case report.TypeAssignee, report.TypeCustomer, report.TypePriority:
		return report.FilterValues(v.store.Tasks(), reportTypes[v.typeIdx])
	}
	return nil
}

func (v *ReportView) options() report.Options {
	opts := report.Options{
		Type:  reportTypes[v.typeIdx],
		Range: reportRanges[v.rangeIdx],
	}
	if values := v.values(); v.valueIdx > 0 && v.valueIdx <= len(values) {
		opts.Value = values[v.valueIdx-1]
	}
	// Status is the primary filter for the status report type and a
	// secondary filter for every other type.
	if v.statusIdx > 0 {
		opts.Status = reportStatuses[v.statusIdx]
	}
	return opts
}

func (v *ReportView) refresh() {
	now := time.Now()
	rows := report.Build(v.store.Tasks(), v.options(), now)
	sum := report.Summarize(rows, now)

	header := fmt.Sprintf("%d tasks • %d completed • %d active • %d overdue",
		sum.Total, sum.Completed, sum.Active, sum.Overdue)
	v.preview.SetContent(v.styles.TitleMuted.Render(header) + "\n\n" +
		report.Table(rows, now))
}

func (v *ReportView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.preview.Width = msg.Width - 4
		v.preview.Height = max(msg.Height-12, 3)
		if v.loaded {
			v.refresh()
		}
		return v, nil

	case reportReadyMsg:
		v.loaded = true
		v.refresh()
		return v, nil

	case reportExportedMsg:
		v.notice = "Report written to " + msg.path
		return v, nil

	case tea.KeyMsg:
		v.notice = ""
		switch {
		case key.Matches(msg, v.keys.Up):
			v.optIdx = (v.optIdx + optCount - 1) % optCount
			return v, nil
		case key.Matches(msg, v.keys.Down), key.Matches(msg, v.keys.Tab):
			v.optIdx = (v.optIdx + 1) % optCount
			return v, nil
		case msg.String() == "left" || msg.String() == "h":
			v.cycle(-1)
			v.refresh()
			return v, nil
		case msg.String() == "right" || msg.String() == "l" || key.Matches(msg, v.keys.Enter):
			v.cycle(1)
			v.refresh()
			return v, nil
		case msg.String() == "c":
			return v, v.export("csv")
		case msg.String() == "t":
			return v, v.export("txt")
		case key.Matches(msg, v.keys.Refresh):
			return v, v.Init()
		}
	}

	var cmd tea.Cmd
	v.preview, cmd = v.preview.Update(msg)
	return v, cmd
}

func (v *ReportView) cycle(delta int) {
	wrap := func(idx, n int) int {
		if n == 0 {
			return 0
		}
		return (idx + delta + n) % n
	}
	switch v.optIdx {
	case optType:
		v.typeIdx = wrap(v.typeIdx, len(reportTypes))
		v.valueIdx = 0
	case optValue:
		v.valueIdx = wrap(v.valueIdx, len(v.values())+1)
	case optStatus:
		v.statusIdx = wrap(v.statusIdx, len(reportStatuses))
	case optRange:
		v.rangeIdx = wrap(v.rangeIdx, len(reportRanges))
	}
}

// export writes the current report to a timestamped file in the
// working directory.
func (v *ReportView) export(format string) tea.Cmd {
	now := time.Now()
	rows := report.Build(v.store.Tasks(), v.options(), now)
	opts := v.options()

	var content string
	switch format {
	case "csv":
		content = report.CSV(rows)
	default:
		content = report.Text(rows, opts, now)
	}

	name := fmt.Sprintf("task_report_%s.%s", now.Format("2006-01-02_150405"), format)
	return func() tea.Msg {
		if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
			return AlertMsg{Text: "Error exporting report: " + err.Error()}
		}
		return reportExportedMsg{path: name}
	}
}

type reportExportedMsg struct{ path string }

func (v *ReportView) View() string {
	s := v.styles
	if !v.loaded {
		return s.TitleMuted.Render("Loading...")
	}

	row := func(opt int, label, value string) string {
		style := s.Input
		if v.optIdx == opt {
			style = s.InputFocused
		}
		return s.TitleMuted.Render(label) + " " + style.Render("< "+value+" >")
	}

	valueLabel := "(all)"
	if values := v.values(); v.valueIdx > 0 && v.valueIdx <= len(values) {
		valueLabel = values[v.valueIdx-1]
	} else if values == nil {
		valueLabel = "n/a"
	}
	statusLabel := reportStatuses[v.statusIdx]
	if statusLabel == "" {
		statusLabel = "(any)"
	}
	rangeLabel := string(reportRanges[v.rangeIdx])
	if rangeLabel == "" {
		rangeLabel = "(any)"
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Reports"),
		"",
		row(optType, "Type:  ", string(reportTypes[v.typeIdx])),
		row(optValue, "Value: ", valueLabel),
		row(optStatus, "Status:", statusLabel),
		row(optRange, "Range: ", rangeLabel),
	)

	help := s.Help.Render(fmt.Sprintf("%s/%s option • %s/%s value • %s export CSV • %s export text • %s refresh",
		s.HelpKey.Render("↑"), s.HelpKey.Render("↓"),
		s.HelpKey.Render("←"), s.HelpKey.Render("→"),
		s.HelpKey.Render("c"), s.HelpKey.Render("t"),
		s.HelpKey.Render("r")))

	parts := []string{form, "", v.preview.View()}
	if v.notice != "" {
		parts = append(parts, s.StatusBar.Render(v.notice))
	}
	parts = append(parts, help)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
