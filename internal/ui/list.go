package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/taskbridge/internal/services"
)

var _ list.Item = pageItem{}

// pageItem wraps [services.Page] to implement [list.Item].
type pageItem struct {
	page services.Page
}

func (i pageItem) FilterValue() string { return i.page.Properties.TaskName.Text() }
func (i pageItem) Title() string       { return i.page.Properties.TaskName.Text() }
func (i pageItem) Description() string {
	if taskID := i.page.Properties.TaskID.Text(); taskID != "" {
		return fmt.Sprintf("synced • task %s", taskID)
	}

	desc := "pending"
	if text := i.page.Properties.Description.Text(); text != "" {
		desc = fmt.Sprintf("%s • %s", desc, text)
	}
	return desc
}

// pendingCount counts pages that the next pass would mirror.
func pendingCount(pages []services.Page) int {
	count := 0
	for _, p := range pages {
		if p.Properties.TaskID.Text() == "" {
			count++
		}
	}
	return count
}
