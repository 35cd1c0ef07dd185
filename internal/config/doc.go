// Package config handles loading and parsing voltaview configuration files.
//
// # Overview
//
// This package reads voltaview's TOML configuration to discover the
// Voltaserve API endpoint, the access key, and tuning knobs for the list
// stores. A missing config file is not an error; sensible defaults apply.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/voltaview/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. Apply VOLTAVIEW_API_URL and VOLTAVIEW_ACCESS_KEY overrides last
//
// # Default Values
//
//   - Config file: ~/.config/voltaview/config.toml
//   - API endpoint: http://localhost:8080
//   - Page size: 50
//   - Sync interval: 5 seconds
//   - Log directory: ~/.local/share/voltaview/logs
//   - Log file: <log_dir>/voltaview.log
//
// # TOML Format
//
// Example config.toml:
//
//	api_url = "https://console.example.com"
//	access_key = "..."
//	page_size = 50
//	sync_interval_seconds = 5
//	log_dir = "~/.local/share/voltaview/logs"
//
// All fields are optional. Tilde expansion is performed automatically. The
// access key is usually better kept in the VOLTAVIEW_ACCESS_KEY environment
// variable than on disk.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//		log.Fatal().Err(err).Msg("failed to load config")
//	}
//
//	client, err := api.NewClient(api.Config{
//		BaseURL:   cfg.APIURL,
//		AccessKey: cfg.AccessKey,
//	})
//
// The config package is read-only and stateless. It loads configuration once
// at startup and returns an immutable Config struct.
package config
