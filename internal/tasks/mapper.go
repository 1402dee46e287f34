package tasks

import (
	"fmt"
	"time"

	"github.com/desertthunder/taskbridge/internal/models"
	"github.com/desertthunder/taskbridge/internal/services"
	"github.com/desertthunder/taskbridge/internal/shared"
)

// Layouts Todoist uses for due.datetime values. Floating times come without
// an offset; fixed times are RFC 3339.
var todoistDatetimeLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// TaskFromTodoist derives the canonical task from a native Todoist record.
//
// A datetime due value is split into its calendar date and "HH:MM" wall
// clock; a bare date yields no time. The record's own id is not carried
// here — it travels with the native record.
func TaskFromTodoist(t services.TodoistTask) (models.Task, error) {
	if t.Content == "" {
		return models.Task{}, fmt.Errorf("%w: todoist task %s has no content", shared.ErrMissingTitle, t.ID)
	}

	task := models.Task{
		Title:       t.Content,
		Description: t.Description,
		Priority:    models.Priority(t.Priority).Normalize(),
		Completed:   t.Completed,
	}

	if t.ProjectID != "" {
		name := t.ProjectName
		if name == "" {
			name = "Inbox"
		}
		task.Project = &name
	}

	if t.Due != nil {
		date, clock := splitDue(*t.Due)
		if date != "" {
			task.DueDate = &date
		}
		if clock != "" && date != "" {
			task.DueTime = &clock
		}
	}

	return task, nil
}

// splitDue separates a Todoist due value into date and "HH:MM" components.
// An unparseable datetime degrades to the bare date with no time.
func splitDue(due services.TodoistDue) (date, clock string) {
	if due.Datetime == "" {
		return due.Date, ""
	}

	for _, layout := range todoistDatetimeLayouts {
		if parsed, err := time.Parse(layout, due.Datetime); err == nil {
			return parsed.Format("2006-01-02"), parsed.Format("15:04")
		}
	}

	return due.Date, ""
}

// TaskFromPage derives the canonical task from a Notion page.
//
// Missing optional properties degrade to canonical defaults; a missing
// title is a required-field failure. The "Task ID" property becomes the
// canonical foreign id.
func TaskFromPage(p services.Page) (models.Task, error) {
	props := p.Properties

	title := props.TaskName.Text()
	if title == "" {
		return models.Task{}, fmt.Errorf("%w: page %s", shared.ErrMissingTitle, p.ID)
	}

	task := models.Task{
		Title:       title,
		Description: props.Description.Text(),
		Priority:    models.PriorityFromLabel(props.Priority.Name()),
		Completed:   props.Completed.Value(),
		ForeignID:   props.TaskID.Text(),
	}

	if name := props.Project.Name(); name != "" {
		task.Project = &name
	}

	if start := props.DueDate.Start(); start != "" {
		task.DueDate = &start
		// A stored time is only meaningful alongside a date.
		if clock := props.Time.Text(); clock != "" {
			task.DueTime = &clock
		}
	}

	return task, nil
}

// MirrorProperties converts a canonical task into the full set of Notion
// property groups, always writing each service-empty value for absent
// options so an update clears stale fields. The "Task ID" group is never
// included; the cross-reference is written only on create (see
// [Bridge.SyncEvent]).
func MirrorProperties(task models.Task) *services.PageProperties {
	project := ""
	if task.Project != nil {
		project = *task.Project
	}
	date := ""
	if task.DueDate != nil {
		date = *task.DueDate
	}
	clock := ""
	if task.DueTime != nil {
		clock = *task.DueTime
	}

	return &services.PageProperties{
		TaskName:    services.NewTitle(task.Title),
		Description: services.NewRichText(task.Description),
		Priority:    services.NewSelect(task.Priority.Label()),
		Project:     services.NewSelect(project),
		DueDate:     services.NewDate(date),
		Time:        services.NewRichText(clock),
		Completed:   services.NewCheckbox(task.Completed),
	}
}

// CombineDue joins a canonical date and time into the single due-datetime
// literal Todoist accepts: "2006-01-02T15:04:00" when both are present, the
// bare date when only the date is set, nil when neither.
func CombineDue(task models.Task) *string {
	if task.DueDate == nil {
		return nil
	}
	if task.DueTime != nil {
		combined := fmt.Sprintf("%sT%s:00", *task.DueDate, *task.DueTime)
		return &combined
	}
	return task.DueDate
}

// TodoistFields converts a canonical task into Todoist create arguments.
// An unset project falls back to defaultProject.
func TodoistFields(task models.Task, defaultProject string) services.CreateTaskArgs {
	project := defaultProject
	if task.Project != nil {
		project = *task.Project
	}

	return services.CreateTaskArgs{
		Content:     task.Title,
		Description: task.Description,
		Priority:    int(task.Priority.Normalize()),
		DueDatetime: CombineDue(task),
		ProjectName: project,
	}
}
