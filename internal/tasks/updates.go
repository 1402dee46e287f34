package tasks

import "fmt"

// ProgressUpdate represents a progress event during a sync pass.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Pass phase
	Step    int    // Current record number within the pass
	Total   int    // Total records in the pass
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Phase enumerates the stages of a polling pass.
type Phase int

const (
	FetchPages Phase = iota
	ProcessPage
	PassComplete
)

func (p Phase) String() string {
	switch p {
	case FetchPages:
		return "fetch_pages"
	case ProcessPage:
		return "process_page"
	case PassComplete:
		return "pass_complete"
	default:
		return ""
	}
}

func fetchPagesUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPages,
		Step:    1,
		Total:   1,
		Message: "Fetching pages from Notion...",
	}
}

func processPageUpdate(step, total int, title string) ProgressUpdate {
	msg := fmt.Sprintf("Processing page %d/%d", step, total)
	if title != "" {
		msg = fmt.Sprintf("%s: %s", msg, title)
	}
	return ProgressUpdate{
		Phase:   ProcessPage,
		Step:    step,
		Total:   total,
		Message: msg,
	}
}

func passCompleteUpdate(report *PassReport) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PassComplete,
		Step:    report.Total,
		Total:   report.Total,
		Message: fmt.Sprintf("Pass complete: %d created, %d skipped, %d collapsed, %d failed", report.Created, report.Skipped, report.Collapsed, report.Failed),
		Data:    report,
	}
}
