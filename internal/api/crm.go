package api

import (
	"context"
	"encoding/json"

	"taskdeck/internal/models"
)

// GetMember fetches one team member by id.
func (c *Client) GetMember(ctx context.Context, id string) (models.Member, error) {
	var m models.Member
	if err := c.get(ctx, "/api/members/"+id, &m); err != nil {
		return models.Member{}, err
	}
	return m, nil
}

// ListTemplates fetches the task templates. The endpoint returns a
// bare array.
func (c *Client) ListTemplates(ctx context.Context) ([]models.Template, error) {
	var templates []models.Template
	if err := c.get(ctx, "/api/templates", &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// ListTopics fetches the topics collection.
func (c *Client) ListTopics(ctx context.Context) ([]models.Topic, error) {
	var topics []models.Topic
	if err := c.get(ctx, "/api/topics", &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

// Categories fetches the configured task category list.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var cfg struct {
		Categories []string `json:"categories"`
	}
	if err := c.get(ctx, "/api/config", &cfg); err != nil {
		return nil, err
	}
	return cfg.Categories, nil
}

// DealsResult is the deals collection plus the requesting user when
// the backend reports one.
type DealsResult struct {
	Deals       []models.Deal
	CurrentUser *models.Member
}

// UnmarshalJSON accepts both response shapes: a bare array of deals,
// or {"deals": [...], "current_user": {...}}.
func (r *DealsResult) UnmarshalJSON(data []byte) error {
	var bare []models.Deal
	if err := json.Unmarshal(data, &bare); err == nil {
		r.Deals = bare
		r.CurrentUser = nil
		return nil
	}

	var wrapped struct {
		Deals       []models.Deal  `json:"deals"`
		CurrentUser *models.Member `json:"current_user"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	r.Deals = wrapped.Deals
	r.CurrentUser = wrapped.CurrentUser
	return nil
}

// ListDeals fetches the deals collection.
func (c *Client) ListDeals(ctx context.Context) (DealsResult, error) {
	var result DealsResult
	if err := c.get(ctx, "/api/deals", &result); err != nil {
		return DealsResult{}, err
	}
	return result, nil
}
