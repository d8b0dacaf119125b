package derive

import (
	"testing"

	"taskdeck/internal/models"
)

func TestProjectCounts(t *testing.T) {
	projects := []models.Project{
		{ID: "p1", Title: "Rollout"},
		{ID: "p2", Title: "Empty"},
	}
	tasks := []models.Task{
		{ID: "t1", ProjectID: "p1", Status: models.StatusOpen},
		{ID: "t2", ProjectID: "p1", Status: models.StatusCompleted},
		{ID: "t3", ProjectID: "p1", Status: models.StatusInProgress},
		{ID: "t4", ProjectID: "", Status: models.StatusOpen},
		{ID: "t5", ProjectID: "unknown", Status: models.StatusOpen},
	}

	out := ProjectCounts(projects, tasks)

	p1 := out[0]
	if p1.TaskCount != 3 || p1.OpenTasks != 1 || p1.CompletedTasks != 1 {
		t.Errorf("p1 counts = %d/%d/%d, want 3/1/1", p1.TaskCount, p1.OpenTasks, p1.CompletedTasks)
	}
	// In Progress counts toward total but neither open nor completed,
	// so open+completed may be less than total.
	if p1.OpenTasks+p1.CompletedTasks >= p1.TaskCount {
		t.Errorf("expected open+completed < total for p1, got %d+%d vs %d",
			p1.OpenTasks, p1.CompletedTasks, p1.TaskCount)
	}

	p2 := out[1]
	if p2.TaskCount != 0 || p2.OpenTasks != 0 || p2.CompletedTasks != 0 {
		t.Errorf("empty project counts = %d/%d/%d, want zeros", p2.TaskCount, p2.OpenTasks, p2.CompletedTasks)
	}
}

func TestProjectCountsDoesNotMutateInput(t *testing.T) {
	projects := []models.Project{{ID: "p1"}}
	tasks := []models.Task{{ID: "t1", ProjectID: "p1", Status: models.StatusOpen}}

	out := ProjectCounts(projects, tasks)
	if out[0].TaskCount != 1 {
		t.Fatalf("TaskCount = %d, want 1", out[0].TaskCount)
	}
}
