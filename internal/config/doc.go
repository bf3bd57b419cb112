// Package config handles loading and parsing the foodbites configuration file.
//
// # Overview
//
// foodbites reads a small TOML file to discover the backend API root, where to
// keep its local data (cart database, bearer token), where to write its log
// file, and the timings used by the storefront choreography.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. A .env file in the working directory is loaded (existing variables win)
//  2. If a path is explicitly provided, use it
//  3. Otherwise, use ~/.config/foodbites/config.toml (default)
//  4. If the config file doesn't exist, fall back to hardcoded defaults
//  5. If the file exists but fields are missing/empty, use defaults
//  6. FOODBITES_API_BASE, when set, overrides api_base
//
// # Default Values
//
//   - API base: http://localhost:5000
//   - Data directory: ~/.local/share/foodbites (cart.db, token)
//   - Log directory: ~/.local/state/foodbites (foodbites.log)
//   - Account poll: 30 seconds
//   - Request pacing: 10 requests/second, burst 20
//   - Timings: debounce 500ms, reveal 300ms, scroll 300ms, add 300ms,
//     flight clear 800ms, menu fetch timeout 10s, notices 3s
//
// # TOML Format
//
//	api_base = "http://localhost:5000"
//	data_dir = "~/.local/share/foodbites"
//	log_dir = "~/.local/state/foodbites"
//	log_level = "info"
//	poll_seconds = 30
//	requests_per_second = 10
//	request_burst = 20
//	metrics_addr = "127.0.0.1:9464"
//
//	[timings]
//	debounce_ms = 500
//	reveal_ms = 300
//	scroll_ms = 300
//	add_latency_ms = 300
//	flight_clear_ms = 800
//	fetch_timeout_ms = 10000
//	notice_ms = 3000
//
// Every field is optional. Tilde expansion is performed for directories.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, and TOML parse errors. A missing config file is not an error.
package config
