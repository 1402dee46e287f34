package ui

import (
	"github.com/desertthunder/taskbridge/internal/services"
	"github.com/desertthunder/taskbridge/internal/tasks"
)

// pagesFetchedMsg carries the Notion database contents into the model.
type pagesFetchedMsg struct {
	pages []services.Page
	err   error
}

// progressUpdateMsg wraps one bridge progress update.
type progressUpdateMsg tasks.ProgressUpdate

// passCompleteMsg carries the finished pass report.
type passCompleteMsg struct {
	report *tasks.PassReport
	err    error
}
