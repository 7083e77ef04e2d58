// Package state holds the consumer's view of the synchronized list.
//
// # Overview
//
// Store subscribes to a buffer.Buffer[string] and rebuilds the list purely
// from the edit notifications it receives. It never reads the buffer's
// collection directly, which makes it both the UI's data source and a live
// check that the edit stream is complete.
//
//	Poller (owner goroutine)        Buffer                    Store                 UI
//	┌──────────────────┐      ┌──────────────────┐     ┌──────────────────┐    ┌─────────────┐
//	│ src.Fetch()      │      │ diff + notify    │     │ OnBatchWillChange│    │             │
//	│ buf.Submit(items)│────→ │                  │───→ │ OnChange → Patch │    │ Snapshot()  │
//	│ RecordError(err) │──────┼──────────────────┼───→ │ OnBatchDidChange │───→│ render      │
//	└──────────────────┘      └──────────────────┘     └──────────────────┘    └─────────────┘
//
// # Core Types
//
// Store:
//   - Implements buffer.Subscriber[string] and buffer.BatchSubscriber
//   - Uses sync.RWMutex; callbacks take the write lock, Snapshot the read lock
//   - Changed() is a one-slot channel the UI can block on
//
// Snapshot:
//   - Items: the replica, in order
//   - Changes: a bounded log of recent edits, oldest first, each tagged with
//     the ULID of its batch so the UI can group them
//   - LastError / ConsecutiveFailures: poll health, as recorded by the poller
//
// # Replica Maintenance
//
// Edits arrive in emission order (end of the list toward the start) with
// indices in pre-batch coordinates. Applied one at a time with diff.Patch
// they need no index shifting, so OnChange is a single slice operation.
//
// # Error Propagation
//
// RecordError keeps the replica untouched and bumps ConsecutiveFailures;
// RecordSuccess resets it. IsOffline reports two or more failures in a row.
//
// # Defensive Copying
//
// Snapshot clones the items, the change log and the error value, so the UI
// can hold on to a snapshot while further batches arrive.
package state
