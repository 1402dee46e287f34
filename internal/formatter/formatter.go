// package formatter renders sync pass reports to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/desertthunder/taskbridge/internal/shared"
	"github.com/desertthunder/taskbridge/internal/tasks"
)

// Formats accepted by [Format].
const (
	FormatText     = "text"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// recordView is the serializable shape of one record result.
type recordView struct {
	Page   string `json:"page"`
	Title  string `json:"title,omitempty"`
	Action string `json:"action"`
	TaskID string `json:"task_id,omitempty"`
	Error  string `json:"error,omitempty"`
}

// reportView is the serializable shape of a pass report.
type reportView struct {
	Started   time.Time    `json:"started"`
	Finished  time.Time    `json:"finished"`
	Total     int          `json:"total"`
	Created   int          `json:"created"`
	Skipped   int          `json:"skipped"`
	Collapsed int          `json:"collapsed"`
	Failed    int          `json:"failed"`
	Results   []recordView `json:"results"`
}

func viewOf(report *tasks.PassReport) reportView {
	view := reportView{
		Started:   report.Started,
		Finished:  report.Finished,
		Total:     report.Total,
		Created:   report.Created,
		Skipped:   report.Skipped,
		Collapsed: report.Collapsed,
		Failed:    report.Failed,
		Results:   make([]recordView, 0, len(report.Results)),
	}

	for _, res := range report.Results {
		row := recordView{
			Page:   res.PageID,
			Title:  res.Title,
			Action: res.Action.String(),
			TaskID: res.TaskID,
		}
		if res.Err != nil {
			row.Error = res.Err.Error()
		}
		view.Results = append(view.Results, row)
	}

	return view
}

// Format renders a pass report in the named format.
func Format(report *tasks.PassReport, format string) ([]byte, error) {
	switch format {
	case FormatText, "":
		return ReportToText(report)
	case FormatCSV:
		return ReportToCSV(report)
	case FormatMarkdown:
		return ReportToMarkdown(report)
	case FormatJSON:
		return ReportToJSON(report)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// ReportToCSV converts a pass report to CSV with columns: Page, Title, Action, Task ID, Error
func ReportToCSV(report *tasks.PassReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Page", "Title", "Action", "Task ID", "Error"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range viewOf(report).Results {
		record := []string{row.Page, row.Title, row.Action, row.TaskID, row.Error}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ReportToMarkdown converts a pass report to Markdown with a summary and a result table
func ReportToMarkdown(report *tasks.PassReport) ([]byte, error) {
	var buf bytes.Buffer
	view := viewOf(report)

	buf.WriteString("# Sync Pass\n\n")
	buf.WriteString(fmt.Sprintf("**Finished**: %s\n", view.Finished.Format(time.RFC3339)))
	buf.WriteString(fmt.Sprintf("**Elapsed**: %s\n\n", elapsed(report)))

	buf.WriteString(fmt.Sprintf("**Pages**: %d\n", view.Total))
	buf.WriteString(fmt.Sprintf("**Created**: %d | **Skipped**: %d | **Collapsed**: %d | **Failed**: %d\n\n",
		view.Created, view.Skipped, view.Collapsed, view.Failed))

	if len(view.Results) > 0 {
		buf.WriteString("## Results\n\n")
		buf.WriteString("| Page | Title | Action | Task ID | Error |\n")
		buf.WriteString("| --- | --- | --- | --- | --- |\n")
		for _, row := range view.Results {
			buf.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				row.Page, row.Title, row.Action, row.TaskID, row.Error))
		}
	}

	return buf.Bytes(), nil
}

// ReportToText converts a pass report to plain text
func ReportToText(report *tasks.PassReport) ([]byte, error) {
	var buf bytes.Buffer
	view := viewOf(report)

	buf.WriteString(fmt.Sprintf("Sync pass: %d pages in %s\n", view.Total, elapsed(report)))
	buf.WriteString(fmt.Sprintf("Created: %d  Skipped: %d  Collapsed: %d  Failed: %d\n\n",
		view.Created, view.Skipped, view.Collapsed, view.Failed))

	for i, row := range view.Results {
		line := fmt.Sprintf("%d. [%s] %s", i+1, row.Action, row.Title)
		if row.TaskID != "" {
			line += fmt.Sprintf(" (task %s)", row.TaskID)
		}
		if row.Error != "" {
			line += fmt.Sprintf(": %s", row.Error)
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// ReportToJSON generates an indented JSON representation of a pass report
func ReportToJSON(report *tasks.PassReport) ([]byte, error) {
	return shared.MarshalJSON(viewOf(report), true)
}

// WriteReport renders a pass report and writes it to path.
//
// The filename defaults to sync_report.{ext} for the chosen format.
func WriteReport(report *tasks.PassReport, format, path string) (string, error) {
	data, err := Format(report, format)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = "sync_report." + extensionFor(format)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return path, nil
}

func extensionFor(format string) string {
	switch format {
	case FormatCSV:
		return "csv"
	case FormatMarkdown:
		return "md"
	case FormatJSON:
		return "json"
	default:
		return "txt"
	}
}

func elapsed(report *tasks.PassReport) time.Duration {
	return report.Finished.Sub(report.Started).Round(time.Millisecond)
}
