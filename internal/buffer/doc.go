// Package buffer provides an observable collection that reports element-level
// changes whenever it is replaced wholesale.
//
// # Overview
//
// A producer hands complete collections to Submit. The buffer diffs each one
// against the collection it published last (see package diff) and tells its
// subscribers exactly which elements were inserted, deleted or substituted.
// Consumers keep their own view in sync without the producer ever computing a
// delta.
//
//	Producer (owner goroutine):       Buffer:                      Subscribers:
//	┌──────────────────┐        ┌─────────────────────┐       ┌──────────────────┐
//	│ items := fetch() │        │ pending (atomic)    │       │ OnBatchWillChange│
//	│ buf.Submit(items)│──────→ │   ↓ recompute pass  │─────→ │ OnChange × edits │
//	│ repeat...        │        │ diff(published, new)│       │ OnBatchDidChange │
//	└──────────────────┘        │ published = new     │       └──────────────────┘
//	                            └─────────────────────┘
//
// # Recompute Pass
//
// A pass runs with the compute mutex held from start to finish:
//
//  1. Load the latest pending version; stop if it is already published
//  2. Copy it and apply the transform (for example a sort)
//  3. Diff the published collection against the candidate
//  4. Non-empty diff: OnBatchWillChange on every BatchSubscriber
//  5. Replace the published collection
//  6. Deliver every edit, in emission order, to every subscriber
//  7. Non-empty diff: OnBatchDidChange
//  8. Record the version and wake Flush callers
//  9. Repeat from 1
//
// Step 9 is the coalescing guarantee. If collections B and C are submitted
// while the pass for A is running, exactly one more pass runs and it diffs A
// straight against C. B is never diffed and never observed.
//
// # Scheduling
//
// Synchronous mode (the default) runs the pass inside Submit, so the caller
// blocks for the O(m·n) diff and every callback. Asynchronous mode hands the
// work to a single worker goroutine started by New and returns immediately.
// The hand-off is a one-slot channel: a kick that finds the slot full is
// dropped because the queued kick will pick up the newest version anyway.
//
// Use Flush to wait for the worker to catch up, and Close to drain and stop it.
//
// # Owner Goroutine
//
// Submit and the Set* methods belong to one producer goroutine. Two Submit
// calls that overlap, or a Submit issued from inside a synchronous callback,
// panic. Collection, Len, Stats, Register and Unregister are safe from any
// goroutine.
//
// # Subscribers
//
// Subscribers are compared by identity, so register pointers. Registering
// twice has no effect; unregistering an unknown subscriber is a no-op.
// Each pass notifies the subscribers that were registered when the pass
// began. A subscriber that unregisters itself from a callback still receives
// the rest of the current batch, including OnBatchDidChange, and nothing after.
//
// Callbacks run on the goroutine executing the pass: the Submit caller in
// synchronous mode, the worker in asynchronous mode.
//
// # Usage Example
//
//	buf := buffer.New[int](buffer.WithTransform(func(v []int) []int {
//		slices.Sort(v)
//		return v
//	}))
//	defer buf.Close()
//
//	buf.Register(buffer.NewSubscriberFunc(func(e diff.Edit[int]) {
//		fmt.Printf("%s %d at index: %d\n", e.Kind, e.Value, e.Index)
//	}))
//
//	buf.Submit([]int{1, 5, 3, 2})
//	buf.Submit([]int{1, 3, 2, 6, 6})
package buffer
