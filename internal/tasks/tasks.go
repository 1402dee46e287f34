// package tasks implements the bidirectional sync between Todoist and Notion.
//
// The core abstraction is [Bridge], which owns both directional procedures:
// SyncEvent mirrors a single Todoist record into Notion (webhook direction)
// and SyncAll scans the Notion database and mirrors unsynced pages into
// Todoist (polling direction). Long passes emit progress updates via
// channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/taskbridge/internal/services"
	"github.com/desertthunder/taskbridge/internal/shared"
)

// Action classifies what a sync decision did with one record.
type Action int

const (
	ActionCreated   Action = iota // mirror record created on the destination
	ActionUpdated                 // existing mirror overwritten
	ActionSkipped                 // already synced, nothing to do
	ActionCollapsed               // redundant source record removed (duplicate)
	ActionFailed                  // record processing aborted, see Err
)

func (a Action) String() string {
	switch a {
	case ActionCreated:
		return "created"
	case ActionUpdated:
		return "updated"
	case ActionSkipped:
		return "skipped"
	case ActionCollapsed:
		return "collapsed"
	case ActionFailed:
		return "failed"
	default:
		return ""
	}
}

// RecordResult is the outcome of processing a single source record during a
// polling pass. Failures are values here, not panics or aborts; one record's
// failure never stops the pass.
type RecordResult struct {
	PageID string // Notion page id of the source record
	Title  string // task title, when it could be derived
	Action Action
	TaskID string // Todoist id created for, or matched against, this record
	Err    error  // set only when Action is ActionFailed
}

// PassReport summarizes one full polling pass over the Notion database.
type PassReport struct {
	Started  time.Time
	Finished time.Time
	Total    int // source records observed
	Created, Skipped, Collapsed, Failed int
	Results  []RecordResult
}

// EventResult is the outcome of one event-driven sync.
type EventResult struct {
	Action Action
	PageID string // Notion page created or updated
}

// Bridge orchestrates both sync directions over injected service accessors.
//
// A single mutex serializes the event-driven and polling paths: a webhook
// arriving mid-pass for a not-yet-polled record would otherwise race the
// pass into creating two mirrors for one logical task.
type Bridge struct {
	todoist        services.TodoistAPI
	notion         services.NotionAPI
	defaultProject string
	logger         *log.Logger

	mu sync.Mutex
}

// NewBridge creates a Bridge over the given accessors. defaultProject is
// used for records without a project and defaults to "Inbox"; a nil logger
// falls back to stderr.
func NewBridge(todoist services.TodoistAPI, notion services.NotionAPI, defaultProject string, logger *log.Logger) *Bridge {
	if defaultProject == "" {
		defaultProject = "Inbox"
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Bridge{
		todoist:        todoist,
		notion:         notion,
		defaultProject: defaultProject,
		logger:         logger,
	}
}

// SetLogger replaces the bridge's logger.
func (b *Bridge) SetLogger(l *log.Logger) {
	if l != nil {
		b.logger = l
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks the pass.
func (b *Bridge) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// SyncEvent mirrors one Todoist record into Notion (webhook direction).
//
// The Notion mirror is resolved through the "Task ID" cross-reference: when
// it exists every mapped property group is overwritten (completion state
// included) while the cross-reference itself is left untouched; when it
// doesn't, a page is created with the cross-reference embedded.
func (b *Bridge) SyncEvent(ctx context.Context, src services.TodoistTask) (*EventResult, error) {
	if b.notion == nil {
		return nil, fmt.Errorf("%w: notion accessor not initialized", shared.ErrServiceUnavailable)
	}
	if src.ID == "" {
		return nil, fmt.Errorf("%w: event record has no id", shared.ErrInvalidWebhook)
	}

	task, err := TaskFromTodoist(src)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	page, err := b.notion.FindByTaskID(ctx, src.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: cross-reference lookup: %v", shared.ErrAPIRequest, err)
	}

	props := MirrorProperties(task)

	if page != nil {
		b.logger.Debug("updating mirror page", "task", src.ID, "page", page.ID)
		if _, err := b.notion.UpdatePage(ctx, page.ID, props); err != nil {
			return nil, fmt.Errorf("%w: update page %s: %v", shared.ErrAPIRequest, page.ID, err)
		}
		return &EventResult{Action: ActionUpdated, PageID: page.ID}, nil
	}

	props.TaskID = services.NewRichText(src.ID)
	created, err := b.notion.CreatePage(ctx, props)
	if err != nil {
		return nil, fmt.Errorf("%w: create page: %v", shared.ErrAPIRequest, err)
	}

	b.logger.Debug("created mirror page", "task", src.ID, "page", created.ID)
	return &EventResult{Action: ActionCreated, PageID: created.ID}, nil
}

// SyncAll runs one polling pass: every Notion page without a "Task ID" is
// mirrored into Todoist and the created id written back.
//
// Pages are processed strictly sequentially so each duplicate check sees the
// destination state left by the previous record. Per-record failures are
// recorded and logged; only a failure to list the source aborts the pass.
func (b *Bridge) SyncAll(ctx context.Context, progress chan<- ProgressUpdate) (*PassReport, error) {
	if b.todoist == nil || b.notion == nil {
		return nil, fmt.Errorf("%w: accessor not initialized", shared.ErrServiceUnavailable)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	report := &PassReport{Started: time.Now()}

	b.sendProgress(progress, fetchPagesUpdate())

	pages, err := b.notion.Query(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list source pages: %v", shared.ErrAPIRequest, err)
	}

	report.Total = len(pages)
	report.Results = make([]RecordResult, 0, len(pages))

	for i, page := range pages {
		b.sendProgress(progress, processPageUpdate(i+1, len(pages), page.Properties.TaskName.Text()))

		res := b.syncPage(ctx, page)
		report.Results = append(report.Results, res)

		switch res.Action {
		case ActionCreated:
			report.Created++
		case ActionSkipped:
			report.Skipped++
		case ActionCollapsed:
			report.Collapsed++
		case ActionFailed:
			report.Failed++
			b.logger.Error("page sync failed", "page", res.PageID, "title", res.Title, "error", res.Err)
		}
	}

	report.Finished = time.Now()
	b.sendProgress(progress, passCompleteUpdate(report))
	return report, nil
}

// syncPage processes one source page in isolation; every failure path
// returns a result instead of propagating.
func (b *Bridge) syncPage(ctx context.Context, page services.Page) RecordResult {
	res := RecordResult{PageID: page.ID}

	if page.Properties.TaskID.Text() != "" {
		res.Action = ActionSkipped
		res.TaskID = page.Properties.TaskID.Text()
		return res
	}

	task, err := TaskFromPage(page)
	if err != nil {
		res.Action = ActionFailed
		res.Err = err
		return res
	}
	res.Title = task.Title

	// The duplicate check must see the destination as of this record, so
	// the list is fetched fresh each time rather than once per pass.
	destTasks, err := b.todoist.ListTasks(ctx)
	if err != nil {
		res.Action = ActionFailed
		res.Err = fmt.Errorf("%w: list destination tasks: %v", shared.ErrAPIRequest, err)
		return res
	}

	if dup := findDuplicate(destTasks, task.Title, task.Description); dup != nil {
		// The page was mirrored by an earlier pass whose write-back failed.
		// The source page is the redundant copy: archive it, keep the
		// destination task.
		if err := b.notion.ArchivePage(ctx, page.ID); err != nil {
			res.Action = ActionFailed
			res.Err = fmt.Errorf("%w: archive duplicate page: %v", shared.ErrAPIRequest, err)
			return res
		}
		b.logger.Info("collapsed duplicate page", "page", page.ID, "task", dup.ID, "title", task.Title)
		res.Action = ActionCollapsed
		res.TaskID = dup.ID
		return res
	}

	created, err := b.todoist.CreateTask(ctx, TodoistFields(task, b.defaultProject))
	if err != nil {
		res.Action = ActionFailed
		res.Err = fmt.Errorf("%w: create destination task: %v", shared.ErrAPIRequest, err)
		return res
	}
	res.TaskID = created.ID

	// A failed write-back leaves the created task without a back-reference;
	// the next pass's duplicate check collapses the page instead of
	// creating a second task.
	writeBack := &services.PageProperties{TaskID: services.NewRichText(created.ID)}
	if _, err := b.notion.UpdatePage(ctx, page.ID, writeBack); err != nil {
		res.Action = ActionFailed
		res.Err = fmt.Errorf("%w: write back task id %s: %v", shared.ErrAPIRequest, created.ID, err)
		return res
	}

	b.logger.Debug("mirrored page", "page", page.ID, "task", created.ID, "title", task.Title)
	res.Action = ActionCreated
	return res
}

// findDuplicate returns the first destination task matching exactly on
// (title, description), or nil. When several match, the first wins.
func findDuplicate(tasks []services.TodoistTask, title, description string) *services.TodoistTask {
	for i := range tasks {
		if tasks[i].Content == title && tasks[i].Description == description {
			return &tasks[i]
		}
	}
	return nil
}
