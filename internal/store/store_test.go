package store

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskdeck/internal/api"
)

// flakyBackend serves tasks until failing is set, then returns 500s.
type flakyBackend struct {
	failing bool
	payload string
}

func (b *flakyBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if b.failing {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":"backend down"}`)
		return
	}
	io.WriteString(w, b.payload)
}

func newTestStore(t *testing.T, backend *flakyBackend) *Store {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	return New(api.New(srv.URL, 5*time.Second))
}

func TestReloadTasksReplacesSnapshot(t *testing.T) {
	backend := &flakyBackend{payload: `[{"id":"t1","title":"First"}]`}
	st := newTestStore(t, backend)
	ctx := context.Background()

	if err := st.ReloadTasks(ctx); err != nil {
		t.Fatal(err)
	}
	if len(st.Tasks()) != 1 || st.Tasks()[0].ID != "t1" {
		t.Fatalf("tasks = %+v", st.Tasks())
	}

	// A re-fetch replaces wholesale, it does not merge.
	backend.payload = `[{"id":"t2","title":"Second"}]`
	if err := st.ReloadTasks(ctx); err != nil {
		t.Fatal(err)
	}
	if len(st.Tasks()) != 1 || st.Tasks()[0].ID != "t2" {
		t.Fatalf("tasks after reload = %+v", st.Tasks())
	}
}

func TestReloadFailureKeepsSnapshot(t *testing.T) {
	backend := &flakyBackend{payload: `[{"id":"t1","title":"First"}]`}
	st := newTestStore(t, backend)
	ctx := context.Background()

	if err := st.ReloadTasks(ctx); err != nil {
		t.Fatal(err)
	}

	backend.failing = true
	if err := st.ReloadTasks(ctx); err == nil {
		t.Fatal("expected error from failing backend")
	}
	// Stale but consistent: the prior snapshot survives.
	if len(st.Tasks()) != 1 || st.Tasks()[0].ID != "t1" {
		t.Fatalf("tasks after failed reload = %+v", st.Tasks())
	}
}

func TestTaskLookup(t *testing.T) {
	backend := &flakyBackend{payload: `[{"id":"t1","title":"First"},{"id":"t2","title":"Second"}]`}
	st := newTestStore(t, backend)

	if err := st.ReloadTasks(context.Background()); err != nil {
		t.Fatal(err)
	}
	if task, ok := st.Task("t2"); !ok || task.Title != "Second" {
		t.Fatalf("Task(t2) = %+v, %v", task, ok)
	}
	if _, ok := st.Task("missing"); ok {
		t.Fatal("Task(missing) reported found")
	}
}

func TestReloadDealsTracksUser(t *testing.T) {
	backend := &flakyBackend{payload: `{"deals":[{"id":"d1","title":"Renewal"}],"current_user":{"id":"m1","name":"Jane Doe"}}`}
	st := newTestStore(t, backend)

	if err := st.ReloadDeals(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(st.Deals()) != 1 {
		t.Fatalf("deals = %+v", st.Deals())
	}
	if user := st.CurrentUser(); user == nil || user.Name != "Jane Doe" {
		t.Fatalf("user = %+v", st.CurrentUser())
	}
}
