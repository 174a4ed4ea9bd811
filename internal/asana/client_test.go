package asana

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestClient returns a Client pointed at a test server
func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient()
	c.baseURL = srv.URL
	return c, srv
}

func TestProjects(t *testing.T) {
	var gotPath, gotAuth string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Query().Get("opt_fields") != "name,gid" {
			t.Errorf("unexpected opt_fields: %s", r.URL.Query().Get("opt_fields"))
		}
		w.Write([]byte(`{"data": [{"gid": "p1", "name": "Launch"}, {"gid": "p2", "name": "Ops"}]}`))
	})
	defer srv.Close()

	projects, err := c.Projects(context.Background(), "tok-1", "ws-1")
	if err != nil {
		t.Fatalf("Projects failed: %v", err)
	}

	if gotPath != "/workspaces/ws-1/projects" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("unexpected auth header: %s", gotAuth)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].GID != "p1" || projects[0].Name != "Launch" {
		t.Errorf("unexpected first project: %+v", projects[0])
	}
}

func TestProjectTasks(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("project") != "p1" {
			t.Errorf("unexpected project param: %s", r.URL.Query().Get("project"))
		}
		w.Write([]byte(`{"data": [
			{"gid": "t1", "name": "Ship it", "permalink_url": "https://app.asana.com/0/1/t1",
			 "created_at": "2025-06-01T10:00:00.000Z", "due_on": "2025-06-10",
			 "assignee": {"gid": "u9", "name": "Riley"},
			 "custom_fields": [{"gid": "f1", "name": "Status", "type": "enum", "enum_value": {"gid": "e1", "name": "On Track"}}]}
		]}`))
	})
	defer srv.Close()

	tasks, err := c.ProjectTasks(context.Background(), "tok", "p1")
	if err != nil {
		t.Fatalf("ProjectTasks failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}

	task := tasks[0]
	if task.Assignee == nil || task.Assignee.Name != "Riley" {
		t.Errorf("unexpected assignee: %+v", task.Assignee)
	}
	if len(task.CustomFields) != 1 || task.CustomFields[0].EnumValue.Name != "On Track" {
		t.Errorf("unexpected custom fields: %+v", task.CustomFields)
	}
}

func TestMe(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/me" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"data": {"gid": "u1", "name": "Sam"}}`))
	})
	defer srv.Close()

	user, err := c.Me(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if user.GID != "u1" || user.Name != "Sam" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestUserTaskListGID(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/u1/user_task_list" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("workspace") != "ws-1" {
			t.Errorf("unexpected workspace param: %s", r.URL.Query().Get("workspace"))
		}
		w.Write([]byte(`{"data": {"gid": "utl-5"}}`))
	})
	defer srv.Close()

	gid, err := c.UserTaskListGID(context.Background(), "tok", "u1", "ws-1")
	if err != nil {
		t.Fatalf("UserTaskListGID failed: %v", err)
	}
	if gid != "utl-5" {
		t.Errorf("expected 'utl-5', got '%s'", gid)
	}
}

func TestCreateWebhook(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/webhooks" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var payload struct {
			Data map[string]string `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if payload.Data["resource"] != "p1" {
			t.Errorf("unexpected resource: %s", payload.Data["resource"])
		}
		if payload.Data["target"] != "https://bridge.example.com/api/webhooks/asana" {
			t.Errorf("unexpected target: %s", payload.Data["target"])
		}

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data": {"gid": "wh-1", "active": true, "target": "https://bridge.example.com/api/webhooks/asana"}}`))
	})
	defer srv.Close()

	webhook, err := c.CreateWebhook(context.Background(), "tok", "p1", "https://bridge.example.com/api/webhooks/asana")
	if err != nil {
		t.Fatalf("CreateWebhook failed: %v", err)
	}
	if webhook.GID != "wh-1" || !webhook.Active {
		t.Errorf("unexpected webhook: %+v", webhook)
	}
}

func TestNon200ReturnsStatusError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors": [{"message": "Not Authorized"}]}`))
	})
	defer srv.Close()

	_, err := c.Projects(context.Background(), "bad-tok", "ws-1")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", statusErr.StatusCode)
	}
	if statusErr.Body == "" {
		t.Error("expected body to be captured")
	}
}

func TestMissingDataField(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	})
	defer srv.Close()

	_, err := c.Projects(context.Background(), "tok", "ws-1")
	if err == nil {
		t.Fatal("expected error for response without data field")
	}
}

func TestMalformedResponse(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})
	defer srv.Close()

	_, err := c.Me(context.Background(), "tok")
	if err == nil {
		t.Fatal("expected error for malformed response")
	}
}
