package derive

import "taskdeck/internal/models"

// ProjectCounts fills in each project's derived task counters from a
// single scan of the task collection. Tasks without a project reference
// count toward no project; projects with no tasks keep zero counts.
func ProjectCounts(projects []models.Project, tasks []models.Task) []models.Project {
	type counts struct{ total, open, completed int }
	byProject := make(map[string]counts, len(projects))

	for _, t := range tasks {
		if t.ProjectID == "" {
			continue
		}
		c := byProject[t.ProjectID]
		c.total++
		switch t.Status {
		case models.StatusOpen:
			c.open++
		case models.StatusCompleted:
			c.completed++
		}
		byProject[t.ProjectID] = c
	}

	out := make([]models.Project, len(projects))
	for i, p := range projects {
		c := byProject[p.ID]
		p.TaskCount = c.total
		p.OpenTasks = c.open
		p.CompletedTasks = c.completed
		out[i] = p
	}
	return out
}
