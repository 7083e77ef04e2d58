// Package app provides the orchestration layer for listsync.
//
// # Overview
//
// This package wires together configuration, the list source, the observable
// buffer, the state store and the UI. It is the composition root where all
// dependencies are initialized and connected.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read config.toml, apply flag overrides
//	       ├─────> source.Open()        File or HTTP source
//	       ├─────> buffer.NewFunc()     Equality, transform, scheduling mode
//	       ├─────> state.NewStore()     Registered as a buffer subscriber
//	       ├─────> source.Watch()       fsnotify events for file sources
//	       ├─────> Poller.Start()       Owner goroutine of the buffer
//	       └─────> ui.Run()             Start TUI (blocks), or headless printing
//
//	Poller Loop:
//	┌─────────────────────────────────────────┐
//	│ Poller.Run() goroutine                  │
//	│  ├─> Source.Fetch()                     │
//	│  ├─> Buffer.Submit()  (whole list)      │
//	│  │     └─> Store.OnChange() per edit    │
//	│  └─> Store.RecordSuccess/RecordError()  │
//	│      └─> UI reads store.Snapshot()      │
//	└─────────────────────────────────────────┘
//
// # Polling Behavior
//
// The poller fetches at a fixed interval (default: 2 seconds) and immediately
// whenever the file watcher signals. Failed fetches are recorded in the store
// and the next attempt is delayed by calculateBackoff, doubling per failure up
// to 30 seconds. The buffer is only ever submitted to from the poller
// goroutine; when the poller stops it flushes and closes the buffer.
//
// # Headless Mode
//
// With Headless set, every batch is printed instead of drawn:
//
//	will change
//	INSERT 2 at index: 0
//	did change
//
// Once fetches a single time, prints the batch and returns.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file invalid
//   - No source configured, or an invalid source URL
//
// Recoverable errors (logged, polling continues):
//   - Fetch failures, timeouts, malformed responses
//   - Watcher setup failures (falls back to interval polling)
package app
