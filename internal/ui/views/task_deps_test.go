package views

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskdeck/internal/api"
	"taskdeck/internal/store"
)

const depsFixture = `[
	{"id":"cur","title":"Current","status":"Open","dependencies":["done","open1"]},
	{"id":"open1","title":"Open one","status":"Open"},
	{"id":"open2","title":"Open two","status":"In Progress"},
	{"id":"done","title":"Finished","status":"Completed"},
	{"id":"other-done","title":"Also finished","status":"Completed"}
]`

func newDepsView(t *testing.T, handler http.HandlerFunc) *TaskListView {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	st := store.New(api.New(srv.URL, 5*time.Second))
	if err := st.ReloadTasks(context.Background()); err != nil {
		t.Fatal(err)
	}
	v := NewTaskListView(st, nil)
	v.detailID = "cur"
	return v
}

func TestOpenDepsListsCandidatesAndPersistedCompleted(t *testing.T) {
	v := newDepsView(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, depsFixture)
	})

	v.openDeps()
	if v.mode != taskModeDeps {
		t.Fatalf("mode = %v, want deps picker", v.mode)
	}

	var ids []string
	for _, item := range v.deps.items {
		ids = append(ids, item.ID)
	}
	// open1 and open2 are candidates; "done" stays listed because it
	// is a persisted dependency, "other-done" does not.
	want := map[string]bool{"open1": true, "open2": true, "done": true}
	if len(ids) != len(want) {
		t.Fatalf("picker items = %v", ids)
	}
	for _, id := range ids {
		if !want[id] {
			t.Errorf("unexpected picker item %s", id)
		}
	}

	if !v.deps.selected["done"] || !v.deps.selected["open1"] {
		t.Error("persisted dependencies not pre-selected")
	}
	if v.deps.selected["open2"] {
		t.Error("non-dependency pre-selected")
	}
}

func TestConfirmDepsReplacesSelectionWholesale(t *testing.T) {
	var putBody map[string][]string
	v := newDepsView(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			json.NewDecoder(r.Body).Decode(&putBody)
			w.WriteHeader(http.StatusOK)
			return
		}
		io.WriteString(w, depsFixture)
	})

	v.openDeps()
	// Deselect both persisted deps, select open2 instead.
	v.deps.selected["done"] = false
	v.deps.selected["open1"] = false
	v.deps.selected["open2"] = true

	msg := v.confirmDeps()()
	if _, ok := msg.(depsSavedMsg); !ok {
		t.Fatalf("confirm returned %T: %v", msg, msg)
	}

	got := putBody["dependencies"]
	if len(got) != 1 || got[0] != "open2" {
		t.Fatalf("PUT body = %v, want exactly [open2]: confirm replaces, never merges", got)
	}
}
