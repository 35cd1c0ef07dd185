// Package ui implements the voltaview terminal interface on Bubble Tea.
//
// # Overview
//
// The UI is a thin shell over the store layer. It never talks to the API
// directly: user actions become store calls issued as Bubble Tea commands,
// and every frame renders from store snapshots. Background sync keeps the
// snapshots fresh, so a periodic tick is all the UI needs to stay current.
//
// # Views
//
//   - Workspaces: the entry point, every workspace visible to the user
//   - Files: a folder browser; each opened folder pushes a new store onto
//     the navigation stack and popping stops its sync
//   - Tasks: background server tasks with dismiss actions
//
// # List Behavior
//
// Lists render in three states: a spinner before the first page has ever
// landed, a "no items" placeholder for a loaded-but-empty list, and rows
// otherwise. Moving the selection into the tail of a list prefetches the
// next page. Pressing "/" starts a live search; keystrokes flow into the
// store, which debounces and reloads on its own schedule.
//
// # Preferences
//
// Theme and file view mode changes persist immediately through the prefs
// package.
package ui
