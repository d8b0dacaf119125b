package api

import (
	"context"
	"net/http"

	"taskdeck/internal/models"
)

// ListTasks fetches the full task collection.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.get(ctx, "/api/tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// createTaskResponse wraps the created task; the backend may attach
// similarity matches found at creation time.
type createTaskResponse struct {
	Task         models.Task          `json:"task"`
	SimilarTasks []models.SimilarTask `json:"similar_tasks,omitempty"`
}

// CreateTask creates a task and returns it along with any similar
// tasks the backend flagged.
func (c *Client) CreateTask(ctx context.Context, task models.Task) (models.Task, []models.SimilarTask, error) {
	var resp createTaskResponse
	if err := c.send(ctx, http.MethodPost, "/api/tasks", task, &resp); err != nil {
		return models.Task{}, nil, err
	}
	return resp.Task, resp.SimilarTasks, nil
}

// UpdateTask updates a task and returns the server's record.
func (c *Client) UpdateTask(ctx context.Context, task models.Task) (models.Task, error) {
	var updated models.Task
	if err := c.send(ctx, http.MethodPut, "/api/tasks/"+task.ID, task, &updated); err != nil {
		return models.Task{}, err
	}
	return updated, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

// SetDependencies replaces the task's dependency list with exactly
// deps. The backend recomputes the reverse blocks references.
func (c *Client) SetDependencies(ctx context.Context, taskID string, deps []string) error {
	if deps == nil {
		deps = []string{}
	}
	body := map[string][]string{"dependencies": deps}
	return c.send(ctx, http.MethodPut, "/api/tasks/"+taskID+"/dependencies", body, nil)
}

// SimilarTasks asks the backend to score existing tasks against the
// in-progress (title, description, customer) triple.
func (c *Client) SimilarTasks(ctx context.Context, title, description, customer string) ([]models.SimilarTask, error) {
	body := map[string]string{
		"title":       title,
		"description": description,
		"customer":    customer,
	}
	var similar []models.SimilarTask
	if err := c.send(ctx, http.MethodPost, "/api/tasks/similar", body, &similar); err != nil {
		return nil, err
	}
	return similar, nil
}
