// Package config loads listsync's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/listsync/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	source = "~/lists/queue.txt"   # file path or http(s):// URL
//	poll_seconds = 2
//	watch = true                   # fsnotify for file sources
//	asynchronous = false           # diff on the buffer's worker goroutine
//	order = "asc"                  # none | asc | desc
//	equality = "fold"              # exact | fold | trim
//	max_items = 500                # keep the last N items, 0 = all
//	history = 200                  # change log entries kept for the UI
//	theme = "Dracula"
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//   - Unknown order or equality values
//
// Missing config files are NOT an error. listsync runs without one as long as
// a source is given on the command line.
//
// Order and Equality translate directly into the buffer's pre-diff transform
// and equality predicate (see Order.Transform and Equality.Func).
package config
