// Package source produces the lists that listsync feeds into its buffer.
//
// Every Source returns the complete current list on each Fetch; computing
// what changed is the buffer's job, not the source's.
//
//   - File: a text file with one item per non-empty line, or a YAML file
//     holding a sequence of scalars. A missing file is an empty list, so a
//     list that is deleted shows up as every item being removed.
//   - HTTP: a GET returning a JSON array of strings or {"items": [...]}.
//
// Both honour a MaxItems limit that keeps only the trailing items, using the
// same ring buffer approach a log tail would.
//
// Watch turns filesystem notifications (fsnotify) for a File into a
// coalescing signal channel so the poller can refetch immediately instead of
// waiting for the next tick.
package source
