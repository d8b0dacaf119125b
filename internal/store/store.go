// Package store holds the client's in-memory entity collections. Each
// collection is a read-mostly snapshot replaced wholesale by a full
// re-fetch; there is no merging, diffing or pagination. A failed reload
// keeps the previous snapshot (stale but consistent) and returns the
// error for logging.
package store

import (
	"context"

	"taskdeck/internal/api"
	"taskdeck/internal/models"
)

// Store caches one snapshot per entity kind. It is confined to the UI
// event loop; callers sequence mutate-then-reload explicitly, so no
// locking is needed.
type Store struct {
	client *api.Client

	tasks      []models.Task
	projects   []models.Project
	templates  []models.Template
	topics     []models.Topic
	deals      []models.Deal
	user       *models.Member
	categories []string
}

// New creates an empty store backed by the given API client.
func New(client *api.Client) *Store {
	return &Store{client: client}
}

// Client exposes the underlying API client for mutating calls.
func (s *Store) Client() *api.Client { return s.client }

// ReloadTasks replaces the task snapshot with a full re-fetch.
func (s *Store) ReloadTasks(ctx context.Context) error {
	tasks, err := s.client.ListTasks(ctx)
	if err != nil {
		return err
	}
	s.tasks = tasks
	return nil
}

// ReloadProjects replaces the project snapshot.
func (s *Store) ReloadProjects(ctx context.Context) error {
	projects, err := s.client.ListProjects(ctx)
	if err != nil {
		return err
	}
	s.projects = projects
	return nil
}

// ReloadTemplates replaces the template snapshot.
func (s *Store) ReloadTemplates(ctx context.Context) error {
	templates, err := s.client.ListTemplates(ctx)
	if err != nil {
		return err
	}
	s.templates = templates
	return nil
}

// ReloadTopics replaces the topic snapshot.
func (s *Store) ReloadTopics(ctx context.Context) error {
	topics, err := s.client.ListTopics(ctx)
	if err != nil {
		return err
	}
	s.topics = topics
	return nil
}

// ReloadDeals replaces the deal snapshot and the reported user.
func (s *Store) ReloadDeals(ctx context.Context) error {
	result, err := s.client.ListDeals(ctx)
	if err != nil {
		return err
	}
	s.deals = result.Deals
	s.user = result.CurrentUser
	return nil
}

// ReloadCategories replaces the category list.
func (s *Store) ReloadCategories(ctx context.Context) error {
	categories, err := s.client.Categories(ctx)
	if err != nil {
		return err
	}
	s.categories = categories
	return nil
}

// Tasks returns the current task snapshot.
func (s *Store) Tasks() []models.Task { return s.tasks }

// Task looks up a task by id in the current snapshot.
func (s *Store) Task(id string) (models.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// Projects returns the current project snapshot.
func (s *Store) Projects() []models.Project { return s.projects }

// Templates returns the current template snapshot.
func (s *Store) Templates() []models.Template { return s.templates }

// Topics returns the current topic snapshot.
func (s *Store) Topics() []models.Topic { return s.topics }

// Deals returns the current deal snapshot.
func (s *Store) Deals() []models.Deal { return s.deals }

// CurrentUser returns the user reported by the deals endpoint, if any.
func (s *Store) CurrentUser() *models.Member { return s.user }

// Categories returns the configured task categories.
func (s *Store) Categories() []string { return s.categories }
