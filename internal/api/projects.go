package api

import (
	"context"
	"net/http"

	"taskdeck/internal/models"
)

// ListProjects fetches the full project collection.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := c.get(ctx, "/api/projects", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches one project by id.
func (c *Client) GetProject(ctx context.Context, id string) (models.Project, error) {
	var p models.Project
	if err := c.get(ctx, "/api/projects/"+id, &p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// CreateProject creates a project and returns the server's record.
func (c *Client) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	var created models.Project
	if err := c.send(ctx, http.MethodPost, "/api/projects", p, &created); err != nil {
		return models.Project{}, err
	}
	return created, nil
}

// UpdateProject updates a project.
func (c *Client) UpdateProject(ctx context.Context, p models.Project) (models.Project, error) {
	var updated models.Project
	if err := c.send(ctx, http.MethodPut, "/api/projects/"+p.ID, p, &updated); err != nil {
		return models.Project{}, err
	}
	return updated, nil
}

// DeleteProject deletes a project.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/projects/"+id, nil, nil)
}
