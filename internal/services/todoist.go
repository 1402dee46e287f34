// Todoist REST v2 implementation of [TodoistAPI]
//
// Request/response shapes based on https://developer.todoist.com/rest/v2/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"
)

const defaultTodoistBaseURL = "https://api.todoist.com/rest/v2"

// Todoist throttles aggressively; a few requests per second keeps a full
// sync pass under its limits.
const todoistRequestsPerSecond = 3

// TodoistTask represents a Todoist task, as returned by the REST API and as
// carried in webhook event_data payloads.
type TodoistTask struct {
	ID          string      `json:"id"`
	Content     string      `json:"content"`
	Description string      `json:"description"`
	Priority    int         `json:"priority"`
	ProjectID   string      `json:"project_id"`
	ProjectName string      `json:"project_name,omitempty"`
	Due         *TodoistDue `json:"due"`
	Completed   bool        `json:"completed"`
}

// TodoistDue represents a task due value. Datetime is set only when the task
// carries a wall-clock time in addition to the calendar date.
type TodoistDue struct {
	Date     string `json:"date"`
	Datetime string `json:"datetime,omitempty"`
}

// TodoistProject represents a Todoist project.
type TodoistProject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateTaskArgs contains the fields for creating a task.
//
// ProjectName is resolved to a project id before the request is sent; an
// unknown or empty name leaves the task in the account's inbox.
type CreateTaskArgs struct {
	Content     string  `json:"content"`
	Description string  `json:"description"`
	Priority    int     `json:"priority"`
	DueDatetime *string `json:"due_datetime,omitempty"`
	ProjectID   *string `json:"project_id,omitempty"`
	ProjectName string  `json:"-"`
}

// UpdateTaskArgs contains the fields for a partial task update. Nil fields
// are omitted and left untouched on the remote record.
type UpdateTaskArgs struct {
	Content     *string `json:"content,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *int    `json:"priority,omitempty"`
	DueDatetime *string `json:"due_datetime,omitempty"`
	ProjectID   *string `json:"project_id,omitempty"`
	ProjectName string  `json:"-"`
}

// TodoistClient implements [TodoistAPI] against the REST v2 API.
type TodoistClient struct {
	token      string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewTodoistClient creates a Todoist client authenticated with the given API
// token. baseURL defaults to the production REST endpoint when empty.
func NewTodoistClient(token, baseURL string, client *http.Client) *TodoistClient {
	if baseURL == "" {
		baseURL = defaultTodoistBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &TodoistClient{
		token:      token,
		baseURL:    baseURL,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(todoistRequestsPerSecond), todoistRequestsPerSecond),
	}
}

func (t *TodoistClient) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+t.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		if len(data) > 0 {
			return fmt.Errorf("todoist API error (status %d): %s", resp.StatusCode, string(data))
		}
		return fmt.Errorf("todoist API error: status %d", resp.StatusCode)
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// resolveProject looks up a project id by name. Returns nil for the empty
// name, the default "Inbox", and names with no matching project, leaving
// project assignment to the service's own default.
func (t *TodoistClient) resolveProject(ctx context.Context, name string) (*string, error) {
	if name == "" || name == "Inbox" {
		return nil, nil
	}

	projects, err := t.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range projects {
		if p.Name == name {
			id := p.ID
			return &id, nil
		}
	}

	return nil, nil
}

// CreateTask creates a task. Implements [TodoistAPI].
//
// Calls POST /tasks.
func (t *TodoistClient) CreateTask(ctx context.Context, args CreateTaskArgs) (*TodoistTask, error) {
	if args.ProjectID == nil && args.ProjectName != "" {
		projectID, err := t.resolveProject(ctx, args.ProjectName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve project %q: %w", args.ProjectName, err)
		}
		args.ProjectID = projectID
	}

	var created TodoistTask
	if err := t.doRequest(ctx, http.MethodPost, "/tasks", args, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateTask applies a partial update. Implements [TodoistAPI].
//
// Calls POST /tasks/{id}.
func (t *TodoistClient) UpdateTask(ctx context.Context, taskID string, args UpdateTaskArgs) error {
	if args.ProjectID == nil && args.ProjectName != "" {
		projectID, err := t.resolveProject(ctx, args.ProjectName)
		if err != nil {
			return fmt.Errorf("failed to resolve project %q: %w", args.ProjectName, err)
		}
		args.ProjectID = projectID
	}

	return t.doRequest(ctx, http.MethodPost, "/tasks/"+taskID, args, nil)
}

// DeleteTask removes a task permanently. Implements [TodoistAPI].
//
// Calls DELETE /tasks/{id}.
func (t *TodoistClient) DeleteTask(ctx context.Context, taskID string) error {
	return t.doRequest(ctx, http.MethodDelete, "/tasks/"+taskID, nil, nil)
}

// GetTask retrieves a single task. Implements [TodoistAPI].
//
// Calls GET /tasks/{id}.
func (t *TodoistClient) GetTask(ctx context.Context, taskID string) (*TodoistTask, error) {
	var task TodoistTask
	if err := t.doRequest(ctx, http.MethodGet, "/tasks/"+taskID, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks retrieves all active tasks. Implements [TodoistAPI].
//
// Calls GET /tasks.
func (t *TodoistClient) ListTasks(ctx context.Context) ([]TodoistTask, error) {
	var tasks []TodoistTask
	if err := t.doRequest(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListProjects retrieves all projects. Implements [TodoistAPI].
//
// Calls GET /projects.
func (t *TodoistClient) ListProjects(ctx context.Context) ([]TodoistProject, error) {
	var projects []TodoistProject
	if err := t.doRequest(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}
