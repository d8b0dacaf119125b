package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskdeck/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestErrorDecodesBodyField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error": "title is required"}`)
	})

	_, _, err := client.CreateTask(context.Background(), models.Task{})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *api.Error", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "title is required" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}

func TestErrorDefaultsWithoutBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.ListTasks(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *api.Error", err)
	}
	if apiErr.Message != "request failed" {
		t.Fatalf("message = %q, want default", apiErr.Message)
	}
}

func TestSetDependenciesBody(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})

	if err := client.SetDependencies(context.Background(), "t1", []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/tasks/t1/dependencies" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if len(gotBody["dependencies"]) != 2 || gotBody["dependencies"][0] != "a" {
		t.Errorf("body = %v", gotBody)
	}
}

func TestSetDependenciesNilSendsEmptyList(t *testing.T) {
	var raw []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	})

	if err := client.SetDependencies(context.Background(), "t1", nil); err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"dependencies":[]}` {
		t.Errorf("body = %s, want explicit empty list", raw)
	}
}

func TestListDealsBareArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":"d1","title":"Renewal","status":"Won","value":1200}]`)
	})

	result, err := client.ListDeals(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Deals) != 1 || result.Deals[0].Title != "Renewal" {
		t.Fatalf("deals = %+v", result.Deals)
	}
	if result.CurrentUser != nil {
		t.Errorf("CurrentUser = %+v, want nil for bare array", result.CurrentUser)
	}
}

func TestListDealsWrappedShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"deals":[{"id":"d1","title":"Renewal"}],"current_user":{"id":"m1","name":"Jane Doe"}}`)
	})

	result, err := client.ListDeals(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Deals) != 1 {
		t.Fatalf("deals = %+v", result.Deals)
	}
	if result.CurrentUser == nil || result.CurrentUser.Name != "Jane Doe" {
		t.Fatalf("CurrentUser = %+v", result.CurrentUser)
	}
}

func TestCreateTaskReturnsSimilar(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"task":{"id":"t9","title":"New"},"similar_tasks":[{"score":87.5,"task":{"id":"t1","title":"Old"}}]}`)
	})

	task, similar, err := client.CreateTask(context.Background(), models.Task{Title: "New"})
	if err != nil {
		t.Fatal(err)
	}
	if task.ID != "t9" {
		t.Errorf("task.ID = %q", task.ID)
	}
	if len(similar) != 1 || similar[0].Score != 87.5 || similar[0].Task.ID != "t1" {
		t.Errorf("similar = %+v", similar)
	}
}

func TestGetProject(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects/p1" {
			t.Errorf("path = %s", r.URL.Path)
		}
		io.WriteString(w, `{"id":"p1","title":"Rollout","status":"Active"}`)
	})

	got, err := client.GetProject(context.Background(), "p1")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "p1" || got.Status != "Active" {
		t.Fatalf("project = %+v", got)
	}
}

func TestCategoriesUnwrapsConfig(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/config" {
			t.Errorf("path = %s", r.URL.Path)
		}
		io.WriteString(w, `{"categories":["Support","Sales"],"other":"ignored"}`)
	})

	got, err := client.Categories(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "Support" {
		t.Fatalf("categories = %v", got)
	}
}

func TestEnhanceTextSendsContext(t *testing.T) {
	var gotBody struct {
		Text        string `json:"text"`
		Type        string `json:"type"`
		TaskContext *struct {
			Title string `json:"title"`
		} `json:"task_context"`
	}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		io.WriteString(w, `{"enhanced_text":"Polished."}`)
	})

	out, err := client.EnhanceText(context.Background(), "rough", EnhanceImprove,
		&TaskContext{Title: "Fix login"})
	if err != nil {
		t.Fatal(err)
	}
	if out != "Polished." {
		t.Errorf("enhanced = %q", out)
	}
	if gotBody.Type != EnhanceImprove || gotBody.TaskContext == nil || gotBody.TaskContext.Title != "Fix login" {
		t.Errorf("request body = %+v", gotBody)
	}
}

func TestAttachmentURL(t *testing.T) {
	client := New("http://backend:5000/", time.Second)
	got := client.AttachmentURL("t1", "a1")
	want := "http://backend:5000/api/tasks/t1/attachments/a1"
	if got != want {
		t.Errorf("AttachmentURL = %q, want %q", got, want)
	}
}
