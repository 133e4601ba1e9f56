// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for contact migration:
//  1. [RosterListView] : Browse the roster of contacts queued for migration
//  2. [ConfirmView] : Confirm the migration run
//  3. [MigrateView] : Monitor real-time progress updates
//  4. [ResultView] : Display per-contact results and failures
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the migrate engine, providing non-blocking status reporting during runs.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
