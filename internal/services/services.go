// package services defines accessors for the two remote task APIs
//
// Todoist (REST v2), Notion (database pages)
package services

import (
	"context"
)

// TodoistAPI is the contract for the list-based task service.
//
// Implementations resolve project names to ids where an operation accepts a
// name, and surface remote failures as errors wrapped with context.
type TodoistAPI interface {
	// CreateTask creates a task and returns the created record with its id.
	CreateTask(ctx context.Context, args CreateTaskArgs) (*TodoistTask, error)

	// UpdateTask applies a partial update to an existing task.
	UpdateTask(ctx context.Context, taskID string, args UpdateTaskArgs) error

	// DeleteTask permanently removes a task.
	DeleteTask(ctx context.Context, taskID string) error

	// GetTask retrieves a single task by id.
	GetTask(ctx context.Context, taskID string) (*TodoistTask, error)

	// ListTasks retrieves all active tasks.
	ListTasks(ctx context.Context) ([]TodoistTask, error)

	// ListProjects retrieves all projects as {id, name} pairs.
	ListProjects(ctx context.Context) ([]TodoistProject, error)
}

// NotionAPI is the contract for the document-database task service.
//
// All page operations target the single configured database.
type NotionAPI interface {
	// CreatePage creates a page with the supplied property groups.
	CreatePage(ctx context.Context, props *PageProperties) (*Page, error)

	// UpdatePage overwrites the supplied property groups on an existing
	// page; nil groups are left untouched.
	UpdatePage(ctx context.Context, pageID string, props *PageProperties) (*Page, error)

	// ArchivePage archives (soft-deletes) a page.
	ArchivePage(ctx context.Context, pageID string) error

	// Query returns every page in the database, following pagination.
	Query(ctx context.Context) ([]Page, error)

	// FindByTaskID locates the page whose "Task ID" property equals the
	// given Todoist id. Returns (nil, nil) when no page matches; absence
	// is an expected outcome, not an error.
	FindByTaskID(ctx context.Context, todoistID string) (*Page, error)
}
