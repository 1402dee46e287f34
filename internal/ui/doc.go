// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for running a sync pass:
//  1. [PageListView] : Browse the Notion database and see which pages are already mirrored
//  2. [ConfirmView] : Confirm the sync pass
//  3. [SyncView] : Monitor real-time progress updates
//  4. [ResultView] : Display the pass tallies and failed records
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the Bridge, providing non-blocking status reporting during passes.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
