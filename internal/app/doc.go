// Package app provides the orchestration layer for the voltaview
// application.
//
// # Overview
//
// This package wires together configuration, the API client, the list
// stores, and the UI to create the complete voltaview TUI experience. It is
// the composition root where all dependencies are initialized and
// connected.
//
// # Architecture
//
// Run follows a simple initialization pattern:
//
//  1. Load configuration from ~/.config/voltaview/config.toml
//  2. Open the structured log file (the terminal belongs to the TUI)
//  3. Load user preferences (theme, file view mode)
//  4. Initialize the HTTP client for the Voltaserve API
//  5. Create the workspace and task stores and start their background sync
//  6. Start the TUI and block until the user exits or the context cancels
//
// # Credential Handling
//
// Stores report credential rejections through the OnAuthError callback. The
// app latches the first such error in an authWatcher; the UI polls it and
// shows a persistent banner. voltaview never acquires or refreshes tokens
// itself; the access key comes from configuration or the environment.
package app
