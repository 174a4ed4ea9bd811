package asana

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const defaultBaseURL = "https://app.asana.com/api/1.0"

// Field sets requested from the API. Task queries always include
// created_at so the same response shape serves listing and feed
// filtering.
const (
	projectOptFields = "name,gid"
	taskOptFields    = "name,permalink_url,created_at,assignee.name,due_on,custom_fields"
)

// StatusError is returned for non-200 API responses. Callers treat it
// as recoverable: log the status and body, notify the user, move on.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("asana API error (%d): %s", e.StatusCode, e.Body)
}

// Client issues authenticated requests against the Asana REST API.
// Every call takes the caller's bearer token; the client itself holds
// no credentials.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new Asana API client
func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		client:  &http.Client{},
	}
}

// Projects lists all projects in a workspace
func (c *Client) Projects(ctx context.Context, token, workspaceGID string) ([]Project, error) {
	u := fmt.Sprintf("%s/workspaces/%s/projects?opt_fields=%s&limit=100",
		c.baseURL, url.PathEscape(workspaceGID), projectOptFields)

	var projects []Project
	if err := c.get(ctx, token, u, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// ProjectTasks lists the tasks of a project
func (c *Client) ProjectTasks(ctx context.Context, token, projectGID string) ([]Task, error) {
	u := fmt.Sprintf("%s/tasks?project=%s&opt_fields=%s&limit=100",
		c.baseURL, url.QueryEscape(projectGID), taskOptFields)

	var tasks []Task
	if err := c.get(ctx, token, u, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Me returns the user the token belongs to
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.get(ctx, token, c.baseURL+"/users/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserTaskListGID resolves the "My Tasks" list of a user within a workspace
func (c *Client) UserTaskListGID(ctx context.Context, token, userGID, workspaceGID string) (string, error) {
	u := fmt.Sprintf("%s/users/%s/user_task_list?workspace=%s",
		c.baseURL, url.PathEscape(userGID), url.QueryEscape(workspaceGID))

	var list struct {
		GID string `json:"gid"`
	}
	if err := c.get(ctx, token, u, &list); err != nil {
		return "", err
	}
	return list.GID, nil
}

// UserTaskListTasks lists the tasks in a user task list
func (c *Client) UserTaskListTasks(ctx context.Context, token, listGID string) ([]Task, error) {
	u := fmt.Sprintf("%s/user_task_lists/%s/tasks?opt_fields=%s&limit=100",
		c.baseURL, url.PathEscape(listGID), taskOptFields)

	var tasks []Task
	if err := c.get(ctx, token, u, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateWebhook registers a webhook for a resource, delivering events
// to target. Asana performs the handshake against target before the
// call returns.
func (c *Client) CreateWebhook(ctx context.Context, token, resourceGID, target string) (*Webhook, error) {
	payload := map[string]any{
		"data": map[string]string{
			"resource": resourceGID,
			"target":   target,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/webhooks", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	respBody, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var webhook Webhook
	if err := decodeData(respBody, &webhook); err != nil {
		return nil, err
	}
	return &webhook, nil
}

// get issues an authenticated GET and decodes the data envelope into out
func (c *Client) get(ctx context.Context, token, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	body, err := c.do(req)
	if err != nil {
		return err
	}

	return decodeData(body, out)
}

// do executes a request and returns the body of a 200/201 response,
// or a StatusError for anything else
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// decodeData unwraps the top-level data envelope every Asana response
// carries. A response without it is malformed.
func decodeData(body []byte, out any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if envelope.Data == nil {
		return fmt.Errorf("response missing data field")
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode data field: %w", err)
	}
	return nil
}
