package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/taskbridge/internal/services"
	"github.com/desertthunder/taskbridge/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PageListView ViewState = iota
	ConfirmView
	SyncView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	notion       services.NotionAPI
	bridge       *tasks.Bridge
	width        int
	height       int
	pageList     list.Model
	pages        []services.Page
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	report       *tasks.PassReport
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, notion services.NotionAPI, bridge *tasks.Bridge) *Model {
	return &Model{
		ctx:    ctx,
		view:   PageListView,
		notion: notion,
		bridge: bridge,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init initializes the TUI by fetching the Notion database contents.
func (m *Model) Init() tea.Cmd {
	return m.fetchPages()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.pageList.Width() == 0 {
			m.pageList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PageListView:
			return m.handlePageListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case pagesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.pages = msg.pages
		items := make([]list.Item, len(msg.pages))
		for i, page := range msg.pages {
			items[i] = pageItem{page: page}
		}
		m.pageList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.pageList.Title = "Notion Tasks"
		m.pageList.SetSize(m.width-4, m.height-8)
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case passCompleteMsg:
		m.report = msg.report
		m.err = msg.err
		m.view = ResultView
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case PageListView:
		return m.renderPageList()
	case ConfirmView:
		return m.renderConfirm()
	case SyncView:
		return m.renderSync()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handlePageListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		return m, m.fetchPages()
	case "enter":
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.pageList, cmd = m.pageList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = PageListView
		return m, nil
	case "y":
		m.view = SyncView
		return m, m.startSync()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = PageListView
		m.report = nil
		m.err = nil
		return m, m.fetchPages()
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == PageListView {
		m.pageList, cmd = m.pageList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchPages() tea.Cmd {
	return func() tea.Msg {
		pages, err := m.notion.Query(m.ctx)
		return pagesFetchedMsg{pages: pages, err: err}
	}
}

func (m *Model) startSync() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	go func() {
		report, err := m.bridge.SyncAll(m.ctx, m.progressChan)
		m.report = report
		m.err = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return passCompleteMsg{report: m.report, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			m.progressChan = nil
			return passCompleteMsg{report: m.report, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderPageList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.pageList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	pending := pendingCount(m.pages)
	title := styles.title.Render("Run a sync pass?")
	info := fmt.Sprintf("\nPages: %d\nPending: %d\n", len(m.pages), pending)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderSync() string {
	title := styles.title.Render("Syncing Tasks")

	var phase string
	switch m.progress.Phase {
	case tasks.FetchPages:
		phase = "Fetching Notion pages..."
	case tasks.ProcessPage:
		phase = fmt.Sprintf("Processing pages (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.PassComplete:
		phase = "Finishing up..."
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Sync failed: %v\n\nPress r to go back, q to quit", m.err))
	}

	if m.report == nil {
		return styles.err.Render("No report available\n\nPress r to go back, q to quit")
	}

	title := styles.ok.Render("✓ Sync Pass Complete")
	info := fmt.Sprintf(
		"\nPages: %d\nCreated: %d\nSkipped: %d\nCollapsed: %d\nFailed: %d",
		m.report.Total,
		m.report.Created,
		m.report.Skipped,
		m.report.Collapsed,
		m.report.Failed,
	)

	var failed string
	if m.report.Failed > 0 {
		failed = fmt.Sprintf("\n\n%s", styles.warn.Render(fmt.Sprintf("Failed records (%d):", m.report.Failed)))
		for _, res := range m.report.Results {
			if res.Err != nil {
				failed += fmt.Sprintf("\n  • %s: %v", res.Title, res.Err)
			}
		}
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failed, helpView)
}
