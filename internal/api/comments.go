package api

import (
	"context"
	"net/http"
	"strconv"

	"taskdeck/internal/models"
)

// AddComment posts a comment on a task. The author defaults to the
// placeholder identity when empty; there is no real session.
func (c *Client) AddComment(ctx context.Context, taskID, text, author string) error {
	if author == "" {
		author = models.PlaceholderAuthor
	}
	body := map[string]string{"text": text, "author": author}
	return c.send(ctx, http.MethodPost, "/api/tasks/"+taskID+"/comments", body, nil)
}

// UpdateComment replaces the text of the comment at index.
func (c *Client) UpdateComment(ctx context.Context, taskID string, index int, text string) error {
	body := map[string]string{"text": text}
	path := "/api/tasks/" + taskID + "/comments/" + strconv.Itoa(index)
	return c.send(ctx, http.MethodPut, path, body, nil)
}

// DeleteComment removes the comment at index.
func (c *Client) DeleteComment(ctx context.Context, taskID string, index int) error {
	path := "/api/tasks/" + taskID + "/comments/" + strconv.Itoa(index)
	return c.send(ctx, http.MethodDelete, path, nil, nil)
}
