// Package services implements HTTP clients for the two remote task APIs.
//
// [TodoistAPI] and [NotionAPI] define the operations the sync engine
// consumes; [TodoistClient] and [NotionClient] are the concrete
// implementations. Both clients:
//
//   - take a context on every operation and build requests with
//     [net/http.NewRequestWithContext]
//   - throttle outbound calls with [golang.org/x/time/rate] to respect each
//     service's rate limits
//   - model optional native fields as explicit pointers, never missing keys
//
// Native record types live next to their client: Todoist task/project shapes
// in todoist.go, Notion page/property shapes in notion.go. Neither client
// contains sync logic; create-vs-update decisions belong to internal/tasks.
package services
