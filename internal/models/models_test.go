package models

import "testing"

func TestTaskStatusHelpers(t *testing.T) {
	tests := []struct {
		status    string
		completed bool
		active    bool
	}{
		{StatusOpen, false, true},
		{StatusInProgress, false, true},
		{StatusCompleted, true, false},
		{StatusCancelled, false, false},
		{StatusClosed, false, false},
		{"SomeFutureStatus", false, true},
	}
	for _, tt := range tests {
		task := Task{Status: tt.status}
		if got := task.IsCompleted(); got != tt.completed {
			t.Errorf("IsCompleted(%q) = %v, want %v", tt.status, got, tt.completed)
		}
		if got := task.IsActive(); got != tt.active {
			t.Errorf("IsActive(%q) = %v, want %v", tt.status, got, tt.active)
		}
	}
}

func TestMemberColor(t *testing.T) {
	explicit := Member{Name: "Jane Doe", AvatarColor: "#123456"}
	if explicit.Color() != "#123456" {
		t.Errorf("explicit color not used: %q", explicit.Color())
	}

	derived := Member{Name: "Jane Doe"}
	first := derived.Color()
	if first == "" {
		t.Fatal("derived color is empty")
	}
	if derived.Color() != first {
		t.Error("derived color is not deterministic")
	}
	if other := (Member{Name: "Completely Different Name"}); other.Color() == "" {
		t.Error("derived color empty for other name")
	}
}

func TestMemberInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Jane Doe", "JD"},
		{"Prince", "P"},
		{"Ana Maria da Silva", "AM"},
		{"", ""},
	}
	for _, tt := range tests {
		m := Member{Name: tt.name}
		if got := m.Initials(); got != tt.want {
			t.Errorf("Initials(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
