package models

import "strings"

// Task statuses as the backend reports them. The set is owned by the
// backend; unknown values pass through untouched.
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
	StatusClosed     = "Closed"
)

// History entry action kinds.
const (
	ActionCreated         = "created"
	ActionModified        = "modified"
	ActionCommentAdded    = "comment_added"
	ActionAttachmentAdded = "attachment_added"
)

// PlaceholderAuthor is used for comments while the backend has no
// session identity.
const PlaceholderAuthor = "Current User"

// Task is a task record as received from the backend. The client never
// invents identity; ids come from the server verbatim.
type Task struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	Status       string         `json:"status"`
	Priority     string         `json:"priority,omitempty"`
	AssignedTo   string         `json:"assigned_to,omitempty"`
	AssignedToID string         `json:"assigned_to_id,omitempty"`
	RelatedTo    string         `json:"related_to,omitempty"`
	CustomerName string         `json:"customer_name,omitempty"`
	Category     string         `json:"category,omitempty"`
	Tags         string         `json:"tags,omitempty"`
	FollowUpDate string         `json:"follow_up_date,omitempty"`
	CreatedDate  string         `json:"created_date,omitempty"`
	ProjectID    string         `json:"project_id,omitempty"`
	Comments     []Comment      `json:"comments,omitempty"`
	Attachments  []Attachment   `json:"attachments,omitempty"`
	History      []HistoryEntry `json:"history,omitempty"`
	Dependencies []string       `json:"dependencies,omitempty"`
	Blocks       []string       `json:"blocks,omitempty"`
}

// IsCompleted reports whether the task has reached the Completed status.
func (t Task) IsCompleted() bool { return t.Status == StatusCompleted }

// IsActive reports whether the task is still open in any sense:
// not Completed, Cancelled or Closed.
func (t Task) IsActive() bool {
	switch t.Status {
	case StatusCompleted, StatusCancelled, StatusClosed:
		return false
	}
	return true
}

// Comment is a comment on a task, in server-provided order.
type Comment struct {
	ID        string `json:"id,omitempty"`
	Author    string `json:"author,omitempty"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Attachment is a file attached to a task. The download URL is derived
// from the task and attachment ids, not stored.
type Attachment struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// HistoryEntry records one change to a task.
type HistoryEntry struct {
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Field     string `json:"field,omitempty"`
	OldValue  string `json:"old_value,omitempty"`
	NewValue  string `json:"new_value,omitempty"`
}

// Project is a project record. The task counters are computed
// client-side from the task collection and never persisted.
type Project struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	TargetDate  string `json:"target_date,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`

	TaskCount      int `json:"-"`
	OpenTasks      int `json:"-"`
	CompletedTasks int `json:"-"`
}

// Member is a team member record.
type Member struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role,omitempty"`
	Department  string `json:"department,omitempty"`
	AvatarColor string `json:"avatar_color,omitempty"`
}

// avatarPalette matches the backend's avatar color pool.
var avatarPalette = []string{
	"#7aa2f7", "#bb9af7", "#7dcfff", "#9ece6a",
	"#e0af68", "#f7768e", "#2ac3de", "#c0caf5",
}

// Color returns the member's avatar color, deriving one
// deterministically from the name when the backend sent none.
func (m Member) Color() string {
	if m.AvatarColor != "" {
		return m.AvatarColor
	}
	var sum int
	for _, r := range m.Name {
		sum += int(r)
	}
	return avatarPalette[sum%len(avatarPalette)]
}

// Initials returns up to two initials for the member's name.
func (m Member) Initials() string {
	fields := strings.Fields(m.Name)
	var b strings.Builder
	for i, f := range fields {
		if i == 2 {
			break
		}
		b.WriteString(strings.ToUpper(f[:1]))
	}
	return b.String()
}

// Template holds default field values applied verbatim into a new-task
// form.
type Template struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	TitlePattern string `json:"title_pattern,omitempty"`
	Description  string `json:"description,omitempty"`
	Category     string `json:"category,omitempty"`
	Priority     string `json:"priority,omitempty"`
	Tags         string `json:"tags,omitempty"`
}

// Deal is a deal record from the CRM side of the backend.
type Deal struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	CustomerName  string  `json:"customer_name,omitempty"`
	Status        string  `json:"status,omitempty"`
	Value         float64 `json:"value,omitempty"`
	FinancialYear string  `json:"financial_year,omitempty"`
}

// Topic is a discussion/objective topic.
type Topic struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// SimilarTask is a similarity-service result: an existing task plus a
// percentage score.
type SimilarTask struct {
	Score float64 `json:"score"`
	Task  Task    `json:"task"`
}
