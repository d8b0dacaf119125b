package views

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
)

// AlertMsg surfaces a blocking, user-visible error or notice. The app
// shows it as a modal until dismissed; nothing is retried
// automatically.
type AlertMsg struct {
	Text string
}

func alertf(format string, args ...any) tea.Cmd {
	text := fmt.Sprintf(format, args...)
	return func() tea.Msg { return AlertMsg{Text: text} }
}

// OpenTaskMsg asks the app to open the tasks page on a specific task.
type OpenTaskMsg struct {
	TaskID string
}

// OpenMemberMsg asks the app to open the member page for an id.
type OpenMemberMsg struct {
	MemberID string
}

// logErr records a transport-level failure. Per the error policy these
// are logged, the stale snapshot is kept, and the user is not
// interrupted.
func logErr(context string, err error) {
	log.Printf("%s: %v", context, err)
}
