package views

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"taskdeck/internal/api"
	"taskdeck/internal/models"
	"taskdeck/internal/store"
)

func TestSaveFormEmptyTitleIssuesNoRequest(t *testing.T) {
	var mutations int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			atomic.AddInt32(&mutations, 1)
		}
		io.WriteString(w, `[]`)
	}))
	t.Cleanup(srv.Close)

	st := store.New(api.New(srv.URL, 5*time.Second))
	v := NewTaskListView(st, nil)
	v.openForm("")
	v.form.title.SetValue("   ")

	msg := v.saveForm()()
	alert, ok := msg.(AlertMsg)
	if !ok {
		t.Fatalf("saveForm returned %T, want AlertMsg", msg)
	}
	if alert.Text == "" {
		t.Error("alert text is empty")
	}
	if atomic.LoadInt32(&mutations) != 0 {
		t.Error("validation failure still issued a request")
	}
}

func TestHandleAsyncDiscardsStaleGenerations(t *testing.T) {
	f := newTaskForm()
	f.title.SetValue("Fix the login flow")

	// Two keystrokes: the first timer is superseded before it fires.
	_ = f.scheduleSimilar()
	staleSeq := f.similarSeq
	_ = f.scheduleSimilar()

	if cmd := f.handleAsync(similarTickMsg{seq: staleSeq}, nil); cmd != nil {
		t.Error("stale tick still triggered a request")
	}

	f.similar = []models.SimilarTask{{Score: 50}}
	f.handleAsync(similarResultMsg{seq: staleSeq, matches: nil}, nil)
	if len(f.similar) != 1 {
		t.Error("stale result overwrote the current matches")
	}

	f.handleAsync(similarResultMsg{seq: f.similarSeq, matches: nil}, nil)
	if f.similar != nil {
		t.Error("current result not applied")
	}
}

func TestHandleAsyncShortTitleClearsMatches(t *testing.T) {
	f := newTaskForm()
	f.title.SetValue("abc") // at the minimum, not above it
	f.similar = []models.SimilarTask{{Score: 50}}

	_ = f.scheduleSimilar()
	if cmd := f.handleAsync(similarTickMsg{seq: f.similarSeq}, nil); cmd != nil {
		t.Error("short title still triggered a request")
	}
	if f.similar != nil {
		t.Error("matches not hidden for short title")
	}
}

func TestApplyTemplateFillsFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/templates":
			io.WriteString(w, `[{"id":"tpl1","name":"Bug report","title_pattern":"Bug: ","description":"Steps to reproduce:","category":"Support","priority":"High","tags":"bug"}]`)
		case "/api/config":
			io.WriteString(w, `{"categories":["Support","Sales"]}`)
		default:
			io.WriteString(w, `[]`)
		}
	}))
	t.Cleanup(srv.Close)

	st := store.New(api.New(srv.URL, 5*time.Second))
	ctx := context.Background()
	if err := st.ReloadTemplates(ctx); err != nil {
		t.Fatal(err)
	}
	if err := st.ReloadCategories(ctx); err != nil {
		t.Fatal(err)
	}

	f := newTaskForm()
	f.templateIdx = 1
	cmd := f.applyTemplate(st)

	if f.title.Value() != "Bug: " {
		t.Errorf("title = %q", f.title.Value())
	}
	if f.editor.GetText() != "Steps to reproduce:" {
		t.Errorf("description = %q", f.editor.GetText())
	}
	if f.tags.Value() != "bug" {
		t.Errorf("tags = %q", f.tags.Value())
	}
	if got := taskPriorities[f.priorityIdx]; got != "High" {
		t.Errorf("priority = %q", got)
	}
	if cmd == nil {
		t.Error("applying a template did not restart the similarity check")
	}
}
