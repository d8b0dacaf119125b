package views

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// Editor is the description-editing capability used by the task and
// project forms. It is resolved once at view construction; there is no
// runtime probing for alternative implementations.
type Editor interface {
	GetText() string
	SetText(string)
	GetHTML() string
	SetHTML(string)
	Focus() tea.Cmd
	Blur()
	Update(tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
}

// textAreaEditor is the default Editor: a plain textarea holding the
// markup source verbatim. GetHTML/SetHTML are pass-throughs, so markup
// typed by the user survives round trips unchanged.
type textAreaEditor struct {
	area textarea.Model
}

func newTextAreaEditor(placeholder string) *textAreaEditor {
	area := textarea.New()
	area.Placeholder = placeholder
	area.CharLimit = 5000
	area.SetWidth(50)
	area.SetHeight(5)
	area.ShowLineNumbers = false
	return &textAreaEditor{area: area}
}

func (e *textAreaEditor) GetText() string  { return e.area.Value() }
func (e *textAreaEditor) SetText(s string) { e.area.SetValue(s) }
func (e *textAreaEditor) GetHTML() string  { return e.area.Value() }
func (e *textAreaEditor) SetHTML(s string) { e.area.SetValue(s) }

func (e *textAreaEditor) Focus() tea.Cmd { return e.area.Focus() }
func (e *textAreaEditor) Blur()          { e.area.Blur() }

func (e *textAreaEditor) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.area, cmd = e.area.Update(msg)
	return cmd
}

func (e *textAreaEditor) View() string { return e.area.View() }

func (e *textAreaEditor) SetSize(width, height int) {
	e.area.SetWidth(width)
	e.area.SetHeight(height)
}
